package seeders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/app/requests"
	"github.com/shashiranjanraj/offerdesk/pkg/metrics"
	"github.com/shashiranjanraj/offerdesk/pkg/validate"
)

func init() {
	Register("users", seedUsers)
	Register("orders", seedOrders)
	Register("offers", seedOffers)
}

func seedUsers(ctx context.Context, db *gorm.DB, src Source) (int, error) {
	return load(ctx, db, src, "users", func(in requests.User) (models.User, map[string]string) {
		return in.ToModel(), nil
	})
}

func seedOrders(ctx context.Context, db *gorm.DB, src Source) (int, error) {
	return load(ctx, db, src, "orders", requests.CreateOrder.ToModel)
}

func seedOffers(ctx context.Context, db *gorm.DB, src Source) (int, error) {
	return load(ctx, db, src, "offers", func(in requests.CreateOffer) (models.Offer, map[string]string) {
		return in.ToModel(), nil
	})
}

// load decodes <table>.json into request rows, converts each to a record
// and inserts them all in one transaction.
func load[In any, T repositories.Record](
	ctx context.Context,
	db *gorm.DB,
	src Source,
	table string,
	convert func(In) (T, map[string]string),
) (int, error) {
	raw, err := src.Read(ctx, table)
	if err != nil {
		return 0, err
	}

	var rows []In
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&rows); err != nil {
		return 0, fmt.Errorf("%s: decode: %w", src.File(table), err)
	}

	recs := make([]T, 0, len(rows))
	for i, row := range rows {
		if errs := validate.Struct(row); validate.HasErrors(errs) {
			return 0, fmt.Errorf("%s: record %d: %s", src.File(table), i, describe(errs))
		}
		rec, errs := convert(row)
		if len(errs) > 0 {
			return 0, fmt.Errorf("%s: record %d: %s", src.File(table), i, describe(errs))
		}
		recs = append(recs, rec)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repositories.New[T](tx).CreateMany(ctx, recs)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", src.File(table), err)
	}

	metrics.SeededRows.WithLabelValues(table).Add(float64(len(recs)))
	return len(recs), nil
}

func describe(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = errs[k]
	}
	return strings.Join(parts, "; ")
}
