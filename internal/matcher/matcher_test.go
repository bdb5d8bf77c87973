package matcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashwch/nmenu/internal/rules"
	"github.com/ashwch/nmenu/internal/trie"
)

type fakeGenerators map[string][]string

func (f fakeGenerators) Generate(call rules.Value) ([]string, error) {
	paths, ok := f[call.Head()]
	if !ok {
		return nil, fmt.Errorf("unknown generator %s", call.Head())
	}
	return paths, nil
}

func buildTrie(t *testing.T, src string, gens fakeGenerators) *trie.Node {
	t.Helper()
	prog, err := rules.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if gens == nil {
		gens = fakeGenerators{}
	}
	root, err := trie.Build(prog, gens)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	root.Optimize()
	return root
}

func texts(t *testing.T, root *trie.Node, input string) []string {
	t.Helper()
	suggestions, err := Match(root, input)
	if err != nil {
		t.Fatalf("Match(%q) failed: %v", input, err)
	}
	out := []string{}
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestExactMatchDescendsIntoLeaf(t *testing.T) {
	root := buildTrie(t, `(action ("foo") (run))`, nil)
	if got := texts(t, root, "foo"); len(got) != 0 {
		t.Fatalf("expected no suggestions below a leaf, got %v", got)
	}
}

func TestPrefixSuggestsLiteral(t *testing.T) {
	root := buildTrie(t, `(action ("foo") (run))`, nil)
	suggestions, err := Match(root, "fo")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Text != "foo" {
		t.Fatalf("expected single foo suggestion, got %+v", suggestions)
	}
	if !suggestions[0].Runnable() || suggestions[0].Node.Command.Head() != "run" {
		t.Fatalf("expected foo suggestion to carry its command")
	}
}

func TestEmptyInputListsOneOfAlternatives(t *testing.T) {
	root := buildTrie(t, `(action ((one-of "a" "b")) (run))`, nil)
	if diff := cmp.Diff([]string{"a", "b"}, texts(t, root, "")); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
}

func TestDescentListsNextLevel(t *testing.T) {
	root := buildTrie(t, `
(action ("git" (one-of "status" "stash" "log")) ("git" last))
(action ("grep") ("grep"))`, nil)

	cases := []struct {
		input string
		want  []string
	}{
		{input: "", want: []string{"git", "grep"}},
		{input: "g", want: []string{"git", "grep"}},
		{input: "gi", want: []string{"git"}},
		{input: "  git  ", want: []string{"status", "stash", "log"}},
		{input: "git st", want: []string{"status", "stash"}},
		{input: "git sta", want: []string{"status", "stash"}},
		{input: "git stas", want: []string{"stash"}},
		{input: "git l", want: []string{"log"}},
		{input: "git x", want: []string{}},
		{input: "x", want: []string{}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, texts(t, root, tc.input)); diff != "" {
			t.Fatalf("input %q: unexpected suggestions (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestMatchingIgnoresCase(t *testing.T) {
	root := buildTrie(t, `(action ("Firefox") ("firefox") ) (action ("Łódź") ("echo"))`, nil)
	if diff := cmp.Diff([]string{"Firefox"}, texts(t, root, "FIRE")); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Łódź"}, texts(t, root, "ŁÓ")); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
}

func TestPathSubstringAndFilters(t *testing.T) {
	gens := fakeGenerators{"find-dirs": {"/data/alpha.txt", "/data/beta.txt", "/data/Gamma.md"}}
	root := buildTrie(t, `(action ((find-dirs "/data")) ("cat" last))`, gens)

	cases := []struct {
		input string
		want  []string
	}{
		{input: "", want: []string{"alpha.txt", "beta.txt", "Gamma.md"}},
		{input: "al", want: []string{"alpha.txt"}},
		// substring matching: "a" is in every name, see DESIGN.md decision 15
		{input: "a", want: []string{"alpha.txt", "beta.txt", "Gamma.md"}},
		{input: "GAM", want: []string{"Gamma.md"}},
		{input: "ph t", want: []string{"alpha.txt"}},
		{input: "ph zzz", want: []string{}},
		{input: "txt et", want: []string{"beta.txt"}},
		{input: "txt a md", want: []string{}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, texts(t, root, tc.input)); diff != "" {
			t.Fatalf("input %q: unexpected suggestions (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestFiltersCarryAcrossNonLiteralTokens(t *testing.T) {
	gens := fakeGenerators{"find-dirs": {"/src/api-server", "/src/api-client", "/src/web"}}
	root := buildTrie(t, `(action ("open" (find-dirs "/src")) ("code" last))`, gens)

	if diff := cmp.Diff([]string{"api-server", "api-client", "web"}, texts(t, root, "open")); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"api-server"}, texts(t, root, "open api serv")); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
}

func TestLiteralOverrunFails(t *testing.T) {
	root := buildTrie(t, `(action ("foo") (run))`, nil)
	_, err := Match(root, "foox")
	if !errors.Is(err, ErrLiteralOverrun) {
		t.Fatalf("expected ErrLiteralOverrun, got %v", err)
	}
}

func TestLiteralOverrunYieldsToMatchingSibling(t *testing.T) {
	root := buildTrie(t, `
(action ("git") ("git"))
(action ("gitk") ("gitk"))
(action ("gitkraken") ("gitkraken"))`, nil)

	cases := []struct {
		input string
		want  []string
	}{
		{input: "gitk", want: []string{}},
		{input: "gitkr", want: []string{"gitkraken"}},
		{input: "GITKRAKEN", want: []string{}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, texts(t, root, tc.input)); diff != "" {
			t.Fatalf("input %q: unexpected suggestions (-want +got):\n%s", tc.input, diff)
		}
	}

	suggestions, err := Match(root, "gitkr")
	if err != nil || len(suggestions) != 1 || suggestions[0].Node.Text != "gitkraken" {
		t.Fatalf("expected gitkraken suggestion, got %+v, %v", suggestions, err)
	}
	if _, err := Match(root, "gitkrakens"); !errors.Is(err, ErrLiteralOverrun) {
		t.Fatalf("expected ErrLiteralOverrun past every literal, got %v", err)
	}
}

func TestSuggestionKeepsNode(t *testing.T) {
	root := buildTrie(t, `(action ("say" (one-of "hi" "bye")) ("echo" last))`, nil)
	suggestions, err := Match(root, "say h")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %+v", suggestions)
	}
	node := suggestions[0].Node
	if node.Value() != "hi" || node.Command == nil || node.Command.String() != `("echo" last)` {
		t.Fatalf("unexpected node behind suggestion: %+v", node)
	}
}

func TestFold(t *testing.T) {
	cases := map[string]string{
		"ABC xyz":       "abc xyz",
		"ZAŻÓŁĆ GĘŚLĄ":  "zażółć gęślą",
		"ÄÖÜ":           "ÄÖÜ",
		"Ńaa\xffB":      "ńaa\xffb",
		"":              "",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitToken(t *testing.T) {
	cases := []struct {
		in, token, rest string
	}{
		{in: "", token: "", rest: ""},
		{in: "one", token: "one", rest: ""},
		{in: "  one   two three ", token: "one", rest: "two three"},
		{in: "a\tb", token: "a", rest: "b"},
	}
	for _, tc := range cases {
		token, rest := SplitToken(tc.in)
		if token != tc.token || rest != tc.rest {
			t.Fatalf("SplitToken(%q) = (%q, %q), want (%q, %q)", tc.in, token, rest, tc.token, tc.rest)
		}
	}
}
