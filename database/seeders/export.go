package seeders

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/app/requests"
)

// Export writes the current contents of every table to src in the seed file
// format, so a later seed run reproduces them.
func Export(ctx context.Context, db *gorm.DB, src Source) error {
	users, err := repositories.New[models.User](db).All(ctx)
	if err != nil {
		return err
	}
	if err := write(ctx, src, "users", users); err != nil {
		return err
	}

	orders, err := repositories.New[models.Order](db).All(ctx)
	if err != nil {
		return err
	}
	rows := make([]requests.CreateOrder, len(orders))
	for i, o := range orders {
		rows[i] = requests.FromOrder(o)
	}
	if err := write(ctx, src, "orders", rows); err != nil {
		return err
	}

	offers, err := repositories.New[models.Offer](db).All(ctx)
	if err != nil {
		return err
	}
	return write(ctx, src, "offers", offers)
}

func write(ctx context.Context, src Source, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encode: %w", src.File(name), err)
	}
	return src.Disk.Put(ctx, src.File(name), append(data, '\n'))
}
