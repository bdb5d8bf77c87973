package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/ashwch/nmenu/internal/rules"
)

// processes returns the canonical executable of every visible process, sorted and
// deduplicated. Processes whose exe link cannot be resolved are skipped.
func (r *Registry) processes(args []rules.Value) ([]string, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("processes takes no arguments")
	}
	entries, err := os.ReadDir(r.ProcRoot)
	if err != nil {
		return nil, fmt.Errorf("could not list process table: %w", err)
	}

	seen := map[string]struct{}{}
	for _, entry := range entries {
		if !isPID(entry.Name()) {
			continue
		}
		link := filepath.Join(r.ProcRoot, entry.Name(), "exe")
		canonical, err := filepath.EvalSymlinks(link)
		if err != nil {
			r.logger.Debug("skipping process", zap.String("link", link), zap.Error(err))
			continue
		}
		seen[canonical] = struct{}{}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func isPID(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
