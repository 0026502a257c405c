package routes

import (
	"github.com/shashiranjanraj/offerdesk/app/controllers"
	"github.com/shashiranjanraj/offerdesk/pkg/ctx"
	"github.com/shashiranjanraj/offerdesk/pkg/router"
)

// Controllers groups the handlers mounted by RegisterAPI.
type Controllers struct {
	Users  *controllers.UserController
	Orders *controllers.OrderController
	Offers *controllers.OfferController
}

// crud is the handler set of one resource.
type crud interface {
	Index(c *ctx.Context)
	Show(c *ctx.Context)
	Store(c *ctx.Context)
	Update(c *ctx.Context)
	Destroy(c *ctx.Context)
}

// RegisterAPI mounts the user, order and offer routes. Non-numeric ids do
// not match and fall through to 404.
func RegisterAPI(r *router.Router, c Controllers) {
	resource(r, "users", c.Users)
	resource(r, "orders", c.Orders)
	resource(r, "offers", c.Offers)
}

func resource(r *router.Router, name string, h crud) {
	g := r.Group("/" + name)
	g.Get("/", name+".index", ctx.Wrap(h.Index))
	g.Post("/", name+".store", ctx.Wrap(h.Store))
	g.Get("/{id:[0-9]+}", name+".show", ctx.Wrap(h.Show))
	g.Put("/{id:[0-9]+}", name+".update", ctx.Wrap(h.Update))
	g.Delete("/{id:[0-9]+}", name+".destroy", ctx.Wrap(h.Destroy))
}
