// Package kernel assembles the HTTP handler: the global middleware stack,
// operational endpoints and the API routes.
package kernel

import (
	"net/http"
	"time"

	gqlgo "github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/routes"
	"github.com/shashiranjanraj/offerdesk/config"
	"github.com/shashiranjanraj/offerdesk/pkg/database"
	"github.com/shashiranjanraj/offerdesk/pkg/event"
	"github.com/shashiranjanraj/offerdesk/pkg/graphql"
	"github.com/shashiranjanraj/offerdesk/pkg/metrics"
	"github.com/shashiranjanraj/offerdesk/pkg/middleware"
	"github.com/shashiranjanraj/offerdesk/pkg/reqid"
	"github.com/shashiranjanraj/offerdesk/pkg/response"
	"github.com/shashiranjanraj/offerdesk/pkg/router"
	"github.com/shashiranjanraj/offerdesk/pkg/sse"
)

// Deps are the collaborators the kernel mounts. A nil Schema, Socket or
// Changes leaves the matching endpoint unmounted.
type Deps struct {
	DB      *gorm.DB
	API     routes.Controllers
	Schema  *gqlgo.Schema
	Socket  http.Handler
	Changes *event.Dispatcher
}

// HTTPKernel owns the router.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Middleware order, outermost first:
// metrics, recovery, request id, logger, CORS, rate limit.
func NewHTTPKernel(d Deps) *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins()...)))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "health", health(d.DB))

	if d.Schema != nil {
		r.HandleFunc("/graphql", graphql.Handler(*d.Schema))
	}
	if d.Socket != nil {
		r.Get("/ws/events", "events.socket", d.Socket.ServeHTTP)
	}
	if d.Changes != nil {
		r.Get("/events", "events.stream", sse.Feed(d.Changes, 15*time.Second))
	}

	routes.RegisterAPI(r, d.API)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table, used by route:list.
func (k *HTTPKernel) Router() *router.Router { return k.router }

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			response.Error(w, http.StatusServiceUnavailable, "database not configured")
			return
		}
		if err := database.Ping(r.Context(), db); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
