// Package graphql exposes the store through a read-only GraphQL schema.
//
//	{ order(id: 1) { name start_date customer { first_name } } }
package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	gql "github.com/shashiranjanraj/offerdesk/pkg/graphql"
)

// Stores are the repositories the schema reads from.
type Stores struct {
	Users  *repositories.Repository[models.User]
	Orders *repositories.Repository[models.Order]
	Offers *repositories.Repository[models.Offer]
}

// NewSchema builds the query root over s.
func NewSchema(s Stores) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"first_name": &graphql.Field{Type: graphql.String},
			"last_name":  &graphql.Field{Type: graphql.String},
			"age":        &graphql.Field{Type: graphql.Int},
			"email":      &graphql.Field{Type: graphql.String},
			"role":       &graphql.Field{Type: graphql.String},
			"phone":      &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"start_date":  &graphql.Field{Type: graphql.DateTime},
			"end_date":    &graphql.Field{Type: graphql.DateTime},
			"address":     &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Int},
			"customer_id": &graphql.Field{Type: graphql.Int},
			"executor_id": &graphql.Field{Type: graphql.Int},
			"customer": &graphql.Field{
				Type:    userType,
				Resolve: reference(s.Users, "customer_id", userFields),
			},
			"executor": &graphql.Field{
				Type:    userType,
				Resolve: reference(s.Users, "executor_id", userFields),
			},
		},
	})

	offerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Offer",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"order_id":    &graphql.Field{Type: graphql.Int},
			"executor_id": &graphql.Field{Type: graphql.Int},
			"order": &graphql.Field{
				Type:    orderType,
				Resolve: reference(s.Orders, "order_id", orderFields),
			},
			"executor": &graphql.Field{
				Type:    userType,
				Resolve: reference(s.Users, "executor_id", userFields),
			},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users":  &graphql.Field{Type: graphql.NewList(userType), Resolve: list(s.Users, userFields)},
			"user":   &graphql.Field{Type: userType, Args: idArg, Resolve: one(s.Users, userFields)},
			"orders": &graphql.Field{Type: graphql.NewList(orderType), Resolve: list(s.Orders, orderFields)},
			"order":  &graphql.Field{Type: orderType, Args: idArg, Resolve: one(s.Orders, orderFields)},
			"offers": &graphql.Field{Type: graphql.NewList(offerType), Resolve: list(s.Offers, offerFields)},
			"offer":  &graphql.Field{Type: offerType, Args: idArg, Resolve: one(s.Offers, offerFields)},
		},
	})

	return gql.NewSchema(query)
}

type fields = map[string]interface{}

func userFields(u models.User) fields {
	return fields{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"age":        u.Age,
		"email":      u.Email,
		"role":       u.Role,
		"phone":      u.Phone,
	}
}

func orderFields(o models.Order) fields {
	return fields{
		"id":          o.ID,
		"name":        o.Name,
		"description": o.Description,
		"start_date":  time.Time(o.StartDate),
		"end_date":    time.Time(o.EndDate),
		"address":     o.Address,
		"price":       o.Price,
		"customer_id": o.CustomerID,
		"executor_id": o.ExecutorID,
	}
}

func offerFields(o models.Offer) fields {
	return fields{"id": o.ID, "order_id": o.OrderID, "executor_id": o.ExecutorID}
}

func list[T repositories.Record](repo *repositories.Repository[T], shape func(T) fields) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		recs, err := repo.All(p.Context)
		if err != nil {
			return nil, err
		}
		out := make([]fields, len(recs))
		for i, rec := range recs {
			out[i] = shape(rec)
		}
		return out, nil
	}
}

func one[T repositories.Record](repo *repositories.Repository[T], shape func(T) fields) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, _ := p.Args["id"].(int)
		return find(p.Context, repo, id, shape)
	}
}

// reference resolves an id column of the parent object. Dangling ids
// resolve to null.
func reference[T repositories.Record](repo *repositories.Repository[T], column string, shape func(T) fields) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		parent, ok := p.Source.(fields)
		if !ok {
			return nil, nil
		}
		id, ok := parent[column].(int)
		if !ok {
			return nil, nil
		}
		return find(p.Context, repo, id, shape)
	}
}

func find[T repositories.Record](ctx context.Context, repo *repositories.Repository[T], id int, shape func(T) fields) (interface{}, error) {
	rec, err := repo.Find(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return shape(rec), nil
}
