// Package migration provides a database migration runner.
//
// Migrations register themselves from init() (see database/migrations):
//
//	func init() {
//	    migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
//	}
//
// Run from CLI:
//
//	offerdesk migrate             // run all pending
//	offerdesk migrate:rollback    // rollback last batch
//	offerdesk migrate:status
package migration

import (
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "offerdesk_migrations" }

// ------------------- Registry -------------------

type registeredMigration struct {
	name string
	m    Migration
}

var (
	registryMu sync.Mutex
	registry   []registeredMigration
)

// Register adds a migration to the global registry. name is
// timestamp-prefixed so it sorts chronologically.
func Register(name string, m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registeredMigration{name: name, m: m})
}

func registered() []registeredMigration {
	registryMu.Lock()
	out := make([]registeredMigration, len(registry))
	copy(out, registry)
	registryMu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations. Progress lines go to Out.
type Runner struct {
	db  *gorm.DB
	Out io.Writer
}

// New creates a Runner backed by db that reports to io.Discard.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db, Out: io.Discard}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

// Pending returns the names of migrations that have not yet been run.
func (r *Runner) Pending() ([]string, error) {
	pending, err := r.pending()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pending))
	for i, p := range pending {
		names[i] = p.name
	}
	return names, nil
}

func (r *Runner) pending() ([]registeredMigration, error) {
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	var pending []registeredMigration
	for _, reg := range registered() {
		if _, ok := ran[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	return pending, nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run executes all pending migrations in a single batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.Out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return fmt.Errorf("migration: last batch: %w", err)
	}
	batch++

	for _, reg := range pending {
		logger.Debug("migration: running", "name", reg.name)

		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", reg.name, err)
		}

		fmt.Fprintf(r.Out, "  Migrated:  %s\n", reg.name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses all migrations from the most recent batch.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return fmt.Errorf("migration: last batch: %w", err)
	}
	if batch == 0 {
		fmt.Fprintln(r.Out, "Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration)
	for _, reg := range registered() {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		logger.Debug("migration: rolling back", "name", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&migrationRecord{}, rec.ID).Error; err != nil {
			return fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}

		fmt.Fprintf(r.Out, "  Rolled back:  %s\n", rec.Name)
	}

	return nil
}

// Status writes a table of all migrations and whether each has been run.
func (r *Runner) Status(w io.Writer) error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	ran, err := r.ran()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-50s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	for _, reg := range registered() {
		if rec, ok := ran[reg.name]; ok {
			fmt.Fprintf(w, "%-50s  %-8s  %d\n", reg.name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(w, "%-50s  %-8s  -\n", reg.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) lastBatch() (int, error) {
	var max sql.NullInt64
	if err := r.db.Model(&migrationRecord{}).Select("MAX(batch)").Row().Scan(&max); err != nil {
		return 0, err
	}
	return int(max.Int64), nil
}
