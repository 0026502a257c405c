package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Local is the local-filesystem driver.
type Local struct {
	root string
}

// NewLocal roots a disk at dir; a relative dir is resolved against the
// working directory.
func NewLocal(dir string) *Local {
	if !filepath.IsAbs(dir) {
		if cwd, err := os.Getwd(); err == nil {
			dir = filepath.Join(cwd, dir)
		}
	}
	return &Local{root: dir}
}

func (d *Local) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(p))
}

func (d *Local) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *Local) Put(_ context.Context, p string, content []byte) error {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	return nil
}

func (d *Local) Exists(_ context.Context, p string) bool {
	info, err := os.Stat(d.abs(p))
	return err == nil && !info.IsDir()
}

func (d *Local) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(directory, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
