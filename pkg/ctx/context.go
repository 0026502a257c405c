// Package ctx provides a small request context for controllers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func (c *OrderController) Show(x *ctx.Context) {
//	    id, ok := x.IntParam("id")
//	    ...
//	    x.JSON(http.StatusOK, order)
//	}
//
//	router.Get("/orders/{id:[0-9]+}", "orders.show", ctx.Wrap(c.Show))
package ctx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/offerdesk/pkg/bind"
	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/response"
	"github.com/shashiranjanraj/offerdesk/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/users/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// IntParam parses a URL path parameter as an int.
func (c *Context) IntParam(key string) (int, bool) {
	n, err := strconv.Atoi(c.Param(key))
	return n, err == nil
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. On failure it
// sends a 400 (with field errors when validation failed) and returns false.
//
//	var input requests.CreateUser
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Status writes just the HTTP status code with an empty body.
func (c *Context) Status(code int) {
	response.Empty(c.W, code)
}

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// ValidationError sends a 400 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	response.ValidationError(c.W, errs)
}

// NotFound sends a 404.
func (c *Context) NotFound() {
	response.NotFound(c.W)
}

// Conflict sends a 409.
func (c *Context) Conflict(message string) {
	response.Conflict(c.W, message)
}
