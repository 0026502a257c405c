// Package seeders loads the initial data set into the store.
//
// Seeders register from init() and run in registration order, so tables
// holding references load after the tables they point at:
//
//	func init() {
//	    seeders.Register("users", seedUsers)
//	}
//
// Run via CLI: offerdesk seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/storage"
)

// Source locates seed files: <Dir>/<name>.json on Disk.
type Source struct {
	Disk storage.Disk
	Dir  string
}

// File returns the path of the named seed file.
func (s Source) File(name string) string { return path.Join(s.Dir, name+".json") }

// Read returns the content of the named seed file.
func (s Source) Read(ctx context.Context, name string) ([]byte, error) {
	return s.Disk.Get(ctx, s.File(name))
}

// SeederFunc loads one table and returns how many rows it inserted.
type SeederFunc func(ctx context.Context, db *gorm.DB, src Source) (int, error)

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// RunAll executes every registered seeder in registration order, writing a
// progress line per seeder to out. It stops on the first error.
func RunAll(ctx context.Context, db *gorm.DB, src Source, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		n, err := e.fn(ctx, db, src)
		if err != nil {
			fmt.Fprintf(out, "  Seeding %s: FAILED\n", e.name)
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintf(out, "  Seeded %s: %d rows\n", e.name, n)
		logger.Info("seed: loaded", "table", e.name, "rows", n, "file", src.File(e.name))
	}
	return nil
}
