// Package engine owns one chooser session: it builds the suggestion trie once
// and tracks the suggestions and selection for the latest input.
package engine

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ashwch/nmenu/internal/command"
	"github.com/ashwch/nmenu/internal/generate"
	"github.com/ashwch/nmenu/internal/matcher"
	"github.com/ashwch/nmenu/internal/rules"
	"github.com/ashwch/nmenu/internal/safety"
	"github.com/ashwch/nmenu/internal/trie"
)

var ErrNoSelection = errors.New("no suggestion selected")

type Options struct {
	// RulesPath is read when Source is nil.
	RulesPath  string
	Source     []byte
	Generators *generate.Registry
	Logger     *zap.Logger
}

// Stats describes the one-time build.
type Stats struct {
	Actions     int
	NodesBefore int
	NodesAfter  int
	Passes      int
	Duration    time.Duration
}

// Engine is not safe for concurrent input handling; the built trie is read-only
// and Build may be called from any goroutine.
type Engine struct {
	opts   Options
	logger *zap.Logger

	once    sync.Once
	err     error
	program *rules.Program
	root    *trie.Node
	stats   Stats

	suggestions []matcher.Suggestion
	selected    int
}

func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Generators == nil {
		opts.Generators = generate.NewRegistry(logger)
	}
	return &Engine{opts: opts, logger: logger, selected: -1}
}

// Build reads the rules and constructs the optimized trie. Only the first call
// does any work; later calls return its result.
func (e *Engine) Build() error {
	e.once.Do(func() {
		e.err = e.build()
	})
	return e.err
}

func (e *Engine) build() error {
	start := time.Now()
	src := e.opts.Source
	if src == nil {
		data, err := os.ReadFile(e.opts.RulesPath)
		if err != nil {
			return fmt.Errorf("could not read rules file: %w", err)
		}
		src = data
		e.logger.Info("rules loaded", zap.String("path", e.opts.RulesPath), zap.Int("bytes", len(src)))
	}

	program, err := rules.Parse(string(src))
	if err != nil {
		return fmt.Errorf("could not parse rules: %w", err)
	}
	root, err := trie.Build(program, e.opts.Generators)
	if err != nil {
		return fmt.Errorf("could not build suggestion tree: %w", err)
	}

	e.stats.Actions = len(program.Actions)
	e.stats.NodesBefore = root.Count()
	e.stats.Passes = root.Optimize()
	e.stats.NodesAfter = root.Count()
	e.stats.Duration = time.Since(start)
	e.program = program
	e.root = root

	e.logger.Info("suggestion tree built",
		zap.Int("actions", e.stats.Actions),
		zap.Int("nodes_before", e.stats.NodesBefore),
		zap.Int("nodes_after", e.stats.NodesAfter),
		zap.Int("passes", e.stats.Passes),
		zap.Duration("duration", e.stats.Duration),
	)
	return nil
}

// Program returns the parsed rules, building them first if needed.
func (e *Engine) Program() (*rules.Program, error) {
	if err := e.Build(); err != nil {
		return nil, err
	}
	return e.program, nil
}

// Root returns the optimized trie, building it first if needed.
func (e *Engine) Root() (*trie.Node, error) {
	if err := e.Build(); err != nil {
		return nil, err
	}
	return e.root, nil
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// OnInput recomputes the suggestions for the full text typed so far and moves
// the selection to the first suggestion.
func (e *Engine) OnInput(text string) error {
	root, err := e.Root()
	if err != nil {
		return err
	}
	suggestions, err := matcher.Match(root, text)
	if err != nil {
		return err
	}

	e.suggestions = suggestions
	e.selected = -1
	if len(suggestions) > 0 {
		e.selected = 0
	}
	e.logger.Debug("input", zap.Int("suggestions", len(suggestions)))
	return nil
}

func (e *Engine) Suggestions() []matcher.Suggestion {
	return e.suggestions
}

// Labels returns the display text of the current suggestions.
func (e *Engine) Labels() []string {
	labels := make([]string, len(e.suggestions))
	for i, s := range e.suggestions {
		labels[i] = s.Text
	}
	return labels
}

// Selected is the index of the selected suggestion, or -1.
func (e *Engine) Selected() int {
	return e.selected
}

func (e *Engine) Select(i int) error {
	if i < 0 || i >= len(e.suggestions) {
		return fmt.Errorf("selection %d out of range [0,%d)", i, len(e.suggestions))
	}
	e.selected = i
	return nil
}

// Move shifts the selection by delta, wrapping around the list.
func (e *Engine) Move(delta int) {
	n := len(e.suggestions)
	if n == 0 {
		return
	}
	e.selected = ((e.selected+delta)%n + n) % n
}

// Choose resolves the selected suggestion into a shell command line.
func (e *Engine) Choose() (string, error) {
	if e.selected < 0 || e.selected >= len(e.suggestions) {
		return "", ErrNoSelection
	}
	chosen := e.suggestions[e.selected]
	line, err := command.Eval(chosen.Node)
	if err != nil {
		return "", fmt.Errorf("could not resolve %q: %w", chosen.Text, err)
	}
	e.logger.Info("selected", zap.String("suggestion", chosen.Text), safety.Command(line))
	return line, nil
}
