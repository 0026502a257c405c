// Package repositories is the store: one generic repository per table.
//
// Every mutation is a single SQL statement, so concurrent requests touching
// the same row never observe a half-applied write.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/pkg/cache"
	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/metrics"
)

// Record is a stored entity keyed by a caller-supplied integer id.
type Record interface {
	models.User | models.Order | models.Offer
	PrimaryKey() int
	TableName() string
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	cache cache.Store
	ttl   time.Duration
}

// WithCache serves All from store, keyed "offerdesk:<table>:all". Every
// write through the repository drops the key.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = store
		o.ttl = ttl
	}
}

// Repository reads and writes one table.
type Repository[T Record] struct {
	db    *gorm.DB
	table string
	opts  options

	// gen counts invalidations; All only caches a listing read under the
	// generation that is still current after the write to the cache.
	gen atomic.Uint64
}

func New[T Record](db *gorm.DB, opts ...Option) *Repository[T] {
	var zero T
	r := &Repository[T]{db: db, table: zero.TableName(), opts: options{cache: cache.Nop{}}}
	for _, o := range opts {
		o(&r.opts)
	}
	return r
}

// Table returns the table name.
func (r *Repository[T]) Table() string { return r.table }

func (r *Repository[T]) cacheKey() string { return "offerdesk:" + r.table + ":all" }

// All returns every row ordered by id. The slice is never nil.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if r.opts.cache.Get(ctx, r.cacheKey(), &out) {
		return out, nil
	}

	defer metrics.ObserveDBQuery(r.table, "select", time.Now())

	gen := r.gen.Load()
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%s: all: %w", r.table, err)
	}

	r.remember(ctx, gen, out)
	return out, nil
}

// remember caches rows read under generation gen. A write that lands
// between the read and the Set bumps gen, and the stale entry is dropped.
func (r *Repository[T]) remember(ctx context.Context, gen uint64, rows []T) {
	if r.gen.Load() != gen {
		return
	}
	if err := r.opts.cache.Set(ctx, r.cacheKey(), rows, r.opts.ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set failed", "key", r.cacheKey(), "error", err)
		return
	}
	if r.gen.Load() != gen {
		r.forget(ctx)
	}
}

// Find returns the row with the given id.
func (r *Repository[T]) Find(ctx context.Context, id int) (T, error) {
	defer metrics.ObserveDBQuery(r.table, "select", time.Now())

	var rec T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("%s: find %d: %w", r.table, id, err)
	}
	return rec, nil
}

// Create inserts rec. When its id is taken the existing row is left
// untouched and ErrDuplicate is returned.
func (r *Repository[T]) Create(ctx context.Context, rec T) error {
	defer metrics.ObserveDBQuery(r.table, "insert", time.Now())

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("%s: create: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}

	r.forget(ctx)
	return nil
}

// CreateMany inserts recs in batches and fails on the first taken id.
// Callers wanting all-or-nothing run it on a transaction handle.
func (r *Repository[T]) CreateMany(ctx context.Context, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	defer metrics.ObserveDBQuery(r.table, "insert", time.Now())

	err := r.db.WithContext(ctx).CreateInBatches(&recs, 100).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("%s: create many: %w", r.table, err)
	}

	r.forget(ctx)
	return nil
}

// Replace overwrites every column of row id with rec, zero values included.
// rec may carry a different id, which moves the row; ErrDuplicate is
// returned when that id is taken.
func (r *Repository[T]) Replace(ctx context.Context, id int, rec T) error {
	defer metrics.ObserveDBQuery(r.table, "update", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if next := rec.PrimaryKey(); next != id {
			taken, err := exists[T](tx, next)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicate
			}
		}

		res := tx.Model(new(T)).Where("id = ?", id).Select("*").Updates(&rec)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// MySQL counts changed rows only; an identical rewrite reports 0.
		found, err := exists[T](tx, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err
	case err != nil:
		return fmt.Errorf("%s: replace %d: %w", r.table, id, err)
	}

	r.forget(ctx)
	return nil
}

// Delete removes row id. Rows referencing it are left as they are.
func (r *Repository[T]) Delete(ctx context.Context, id int) error {
	defer metrics.ObserveDBQuery(r.table, "delete", time.Now())

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("%s: delete %d: %w", r.table, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	r.forget(ctx)
	return nil
}

// Count returns the number of rows.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery(r.table, "select", time.Now())

	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: count: %w", r.table, err)
	}
	return n, nil
}

func (r *Repository[T]) forget(ctx context.Context) {
	r.gen.Add(1)
	if err := r.opts.cache.Del(ctx, r.cacheKey()); err != nil {
		logger.WithCtx(ctx).Warn("cache: invalidate failed", "key", r.cacheKey(), "error", err)
	}
}

func exists[T Record](tx *gorm.DB, id int) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
