package generate

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashwch/nmenu/internal/rules"
)

func mustParseCall(t *testing.T, src string) rules.Value {
	t.Helper()
	values, err := rules.ReadAll(src)
	if err != nil {
		t.Fatalf("could not read %q: %v", src, err)
	}
	if len(values) != 1 {
		t.Fatalf("expected one value from %q, got %d", src, len(values))
	}
	return values[0]
}

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), mode); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestResolveHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolveHome("~/bin")
	if err != nil {
		t.Fatalf("ResolveHome failed: %v", err)
	}
	if got != filepath.Join(home, "bin") {
		t.Fatalf("expected %s, got %s", filepath.Join(home, "bin"), got)
	}
	if got, _ := ResolveHome("~"); got != home {
		t.Fatalf("expected bare ~ to resolve to %s, got %s", home, got)
	}
	if got, _ := ResolveHome("/etc/~x"); got != "/etc/~x" {
		t.Fatalf("expected non-home path untouched, got %s", got)
	}
}

func TestFindDirsListsImmediateSubdirectories(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"b", "a", filepath.Join("a", "nested")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
	}
	writeFile(t, filepath.Join(root, "file.txt"), 0o644)

	r := NewRegistry(nil)
	got, err := r.Generate(mustParseCall(t, `(find-dirs "`+root+`")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected dirs (-want +got):\n%s", diff)
	}
}

func TestFindDirsResolvesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.Mkdir(filepath.Join(home, "projects"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	got, err := NewRegistry(nil).Generate(mustParseCall(t, `(find-dirs "~")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(home, "projects") {
		t.Fatalf("unexpected dirs: %v", got)
	}
}

func TestFindAllExecutableRecurses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tool"), 0o755)
	writeFile(t, filepath.Join(root, "deep", "er", "script"), 0o700)
	writeFile(t, filepath.Join(root, "deep", "notes.txt"), 0o644)

	got, err := NewRegistry(nil).Generate(mustParseCall(t, `(find-all-executable "`+root+`")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{filepath.Join(root, "deep", "er", "script"), filepath.Join(root, "tool")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected executables (-want +got):\n%s", diff)
	}
}

func TestFindAllWithExtensionIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 0o644)
	writeFile(t, filepath.Join(root, "b.TXT"), 0o644)
	writeFile(t, filepath.Join(root, "sub", "c.md"), 0o644)
	writeFile(t, filepath.Join(root, "sub", "d.go"), 0o644)
	writeFile(t, filepath.Join(root, "noext"), 0o644)

	got, err := NewRegistry(nil).Generate(mustParseCall(t, `(find-all-with-extension ("txt" "md") "`+root+`")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "sub", "c.md")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected files (-want +got):\n%s", diff)
	}
}

func TestRecursiveGeneratorsFollowSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	writeFile(t, filepath.Join(target, "tool"), 0o755)
	writeFile(t, filepath.Join(target, "a.txt"), 0o644)
	link := filepath.Join(dir, "bin")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	r := NewRegistry(nil)
	got, err := r.Generate(mustParseCall(t, `(find-all-executable "`+link+`")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(link, "tool")}, got); diff != "" {
		t.Fatalf("unexpected executables (-want +got):\n%s", diff)
	}

	got, err = r.Generate(mustParseCall(t, `(find-all-with-extension ("txt") "`+link+`")`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(link, "a.txt")}, got); diff != "" {
		t.Fatalf("unexpected files (-want +got):\n%s", diff)
	}
}

func TestFindAllWithExtensionRejectsNonStringExtension(t *testing.T) {
	_, err := NewRegistry(nil).Generate(mustParseCall(t, `(find-all-with-extension ("txt" 3) "/tmp")`))
	if err == nil {
		t.Fatalf("expected error for numeric extension")
	}
}

func TestMissingRootYieldsNoPaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	for _, src := range []string{
		`(find-dirs "` + missing + `")`,
		`(find-all-executable "` + missing + `")`,
	} {
		got, err := NewRegistry(nil).Generate(mustParseCall(t, src))
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", src, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s: expected no paths, got %v", src, got)
		}
	}
}

func TestProcessesDedupesAndSkipsBrokenLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks are not portable on windows")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	writeFile(t, filepath.Join(bin, "zsh"), 0o755)
	writeFile(t, filepath.Join(bin, "vim"), 0o755)

	proc := filepath.Join(dir, "proc")
	links := map[string]string{
		"1":   filepath.Join(bin, "zsh"),
		"20":  filepath.Join(bin, "vim"),
		"300": filepath.Join(bin, "zsh"),
		"400": filepath.Join(bin, "gone"),
	}
	for pid, target := range links {
		if err := os.MkdirAll(filepath.Join(proc, pid), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.Symlink(target, filepath.Join(proc, pid, "exe")); err != nil {
			t.Fatalf("symlink failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(proc, "self"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	r := NewRegistry(nil)
	r.ProcRoot = proc
	got, err := r.Generate(mustParseCall(t, `(processes)`))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	canonicalBin, err := filepath.EvalSymlinks(bin)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	want := []string{filepath.Join(canonicalBin, "vim"), filepath.Join(canonicalBin, "zsh")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected processes (-want +got):\n%s", diff)
	}
}

func TestGenerateUnknownCall(t *testing.T) {
	_, err := NewRegistry(nil).Generate(mustParseCall(t, `(find-everything "/")`))
	if !errors.Is(err, ErrUnknownGenerator) {
		t.Fatalf("expected ErrUnknownGenerator, got %v", err)
	}
	if !strings.Contains(err.Error(), "known: find-all-executable, find-all-with-extension, find-dirs, processes") {
		t.Fatalf("expected known generators in diagnostic, got %v", err)
	}
}

func TestGenerateCachesPerCall(t *testing.T) {
	calls := 0
	r := NewRegistry(nil)
	r.Register("count", func(args []rules.Value) ([]string, error) {
		calls++
		return []string{"/x"}, nil
	})
	call := mustParseCall(t, `(count "a")`)
	for i := 0; i < 3; i++ {
		if _, err := r.Generate(call); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one generator invocation, got %d", calls)
	}
	if _, err := r.Generate(mustParseCall(t, `(count "b")`)); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected distinct arguments to miss the cache, got %d calls", calls)
	}

	r.CacheEnabled = false
	if _, err := r.Generate(call); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected disabled cache to invoke generator, got %d calls", calls)
	}
}
