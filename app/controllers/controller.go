// Package controllers implements the HTTP handlers for users, orders and
// offers. Each handler performs at most one store mutation.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/pkg/ctx"
	"github.com/shashiranjanraj/offerdesk/pkg/event"
)

// StatusUpdated is returned by PUT and DELETE with an empty body.
const StatusUpdated = http.StatusNonAuthoritativeInfo

func pathID(c *ctx.Context) (int, bool) {
	id, ok := c.IntParam("id")
	if !ok {
		// digits that overflow int
		c.NotFound()
	}
	return id, ok
}

// fail maps a store error to its HTTP response.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.NotFound()
	case errors.Is(err, repositories.ErrDuplicate):
		c.Conflict("A record with this id already exists")
	default:
		c.Log().Error("store failure", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

func emit(events *event.Dispatcher, resource, action string, id int) {
	if events == nil {
		return
	}
	events.Fire(event.Changed, event.Change{Resource: resource, Action: action, ID: id})
}
