// Package resources shapes records for API responses. Collections return
// full records; single-record lookups return a reduced projection.
package resources

import (
	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/pkg/resource"
)

var (
	User = resource.TransformerFunc[models.User](func(u models.User) resource.Map {
		return resource.Map{
			"id":         u.ID,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"age":        u.Age,
			"email":      u.Email,
			"role":       u.Role,
			"phone":      u.Phone,
		}
	})

	UserSummary = resource.TransformerFunc[models.User](func(u models.User) resource.Map {
		return resource.Map{"id": u.ID, "first_name": u.FirstName}
	})

	Order = resource.TransformerFunc[models.Order](func(o models.Order) resource.Map {
		return resource.Map{
			"id":          o.ID,
			"name":        o.Name,
			"description": o.Description,
			"start_date":  o.StartDate,
			"end_date":    o.EndDate,
			"address":     o.Address,
			"price":       o.Price,
			"customer_id": o.CustomerID,
			"executor_id": o.ExecutorID,
		}
	})

	OrderSummary = resource.TransformerFunc[models.Order](func(o models.Order) resource.Map {
		return resource.Map{"id": o.ID, "name": o.Name}
	})

	// Offer is both the full and the single-record shape.
	Offer = resource.TransformerFunc[models.Offer](func(o models.Offer) resource.Map {
		return resource.Map{"id": o.ID, "order_id": o.OrderID, "executor_id": o.ExecutorID}
	})
)
