package generate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ashwch/nmenu/internal/rules"
)

var ErrUnknownGenerator = errors.New("unrecognized function call")

const (
	FindDirs             = "find-dirs"
	FindAllExecutable    = "find-all-executable"
	FindAllWithExtension = "find-all-with-extension"
	Processes            = "processes"
)

// Generator enumerates candidate paths for the arguments of a rule call.
type Generator func(args []rules.Value) ([]string, error)

// Registry maps rule-language call names to generators. Results are cached per
// call for the lifetime of the registry, since the trie is built once.
type Registry struct {
	ProcRoot     string
	CacheEnabled bool

	logger     *zap.Logger
	generators map[string]Generator

	mu    sync.Mutex
	cache map[string][]string
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		ProcRoot:     "/proc",
		CacheEnabled: true,
		logger:       logger,
		generators:   map[string]Generator{},
		cache:        map[string][]string{},
	}
	r.Register(FindDirs, r.findDirs)
	r.Register(FindAllExecutable, r.findAllExecutable)
	r.Register(FindAllWithExtension, r.findAllWithExtension)
	r.Register(Processes, r.processes)
	return r
}

func (r *Registry) Register(name string, gen Generator) {
	if r.generators == nil {
		r.generators = map[string]Generator{}
	}
	r.generators[name] = gen
}

// Names lists the registered generator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs the generator named by the head of call.
func (r *Registry) Generate(call rules.Value) ([]string, error) {
	name := call.Head()
	gen, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownGenerator, call, strings.Join(r.Names(), ", "))
	}

	key := call.String()
	if r.CacheEnabled {
		r.mu.Lock()
		cached, hit := r.cache[key]
		r.mu.Unlock()
		if hit {
			r.logger.Debug("generator cache hit", zap.String("call", key), zap.Int("paths", len(cached)))
			return cached, nil
		}
	}

	paths, err := gen(call.Args())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.logger.Info("generator finished", zap.String("call", key), zap.Int("paths", len(paths)))

	if r.CacheEnabled {
		r.mu.Lock()
		r.cache[key] = paths
		r.mu.Unlock()
	}
	return paths, nil
}

func stringArg(args []rules.Value, idx int, what string) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("missing %s argument", what)
	}
	if args[idx].Kind != rules.KindString {
		return "", fmt.Errorf("%s must be a string, got %s", what, args[idx].Kind)
	}
	return args[idx].Str, nil
}
