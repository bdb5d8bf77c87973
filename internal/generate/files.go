package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwch/nmenu/internal/rules"
)

// ResolveHome expands a leading ~ path element against the home directory.
func ResolveHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (r *Registry) root(args []rules.Value, idx int) (string, error) {
	raw, err := stringArg(args, idx, "root")
	if err != nil {
		return "", err
	}
	resolved, err := ResolveHome(raw)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", raw, err)
	}
	return abs, nil
}

func (r *Registry) findDirs(args []rules.Value) ([]string, error) {
	root, err := r.root(args, 0)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("generator root does not exist", zap.String("root", root))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", root, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			r.logger.Debug("skipping entry", zap.String("path", path), zap.Error(err))
			continue
		}
		if info.IsDir() {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func (r *Registry) findAllExecutable(args []rules.Value) ([]string, error) {
	root, err := r.root(args, 0)
	if err != nil {
		return nil, err
	}
	return r.walkFiles(root, func(path string, info fs.FileInfo) bool {
		return info.Mode().Perm()&0o100 != 0
	})
}

func (r *Registry) findAllWithExtension(args []rules.Value) ([]string, error) {
	if len(args) == 0 || args[0].Kind != rules.KindList {
		return nil, fmt.Errorf("expected extensions list as first argument")
	}
	extensions := map[string]struct{}{}
	for _, ext := range args[0].List {
		if ext.Kind != rules.KindString {
			return nil, fmt.Errorf("extensions group must be all strings, got %s", ext)
		}
		extensions[ext.Str] = struct{}{}
	}
	root, err := r.root(args, 1)
	if err != nil {
		return nil, err
	}
	return r.walkFiles(root, func(path string, _ fs.FileInfo) bool {
		ext := filepath.Ext(path)
		if len(ext) < 2 {
			return false
		}
		_, ok := extensions[ext[1:]]
		return ok
	})
}

// walkFiles collects regular files under root accepted by keep. A symlinked root
// is followed and results are reported under root as given. Unreadable entries
// below root are skipped; symlinked directories below root are not followed.
func (r *Registry) walkFiles(root string, keep func(path string, info fs.FileInfo) bool) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("generator root does not exist", zap.String("root", root))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", root, err)
	}
	if resolved != root {
		r.logger.Debug("following symlinked root", zap.String("root", root), zap.String("target", resolved))
	}

	var paths []string
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == resolved {
				return err
			}
			r.logger.Debug("skipping entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			r.logger.Debug("skipping entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() || !keep(path, info) {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.Join(root, rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("generator root does not exist", zap.String("root", root))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}
	return paths, nil
}
