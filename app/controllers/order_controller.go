package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/app/requests"
	"github.com/shashiranjanraj/offerdesk/app/resources"
	"github.com/shashiranjanraj/offerdesk/pkg/ctx"
	"github.com/shashiranjanraj/offerdesk/pkg/event"
	"github.com/shashiranjanraj/offerdesk/pkg/resource"
)

type OrderController struct {
	orders *repositories.Repository[models.Order]
	events *event.Dispatcher
}

func NewOrderController(orders *repositories.Repository[models.Order], events *event.Dispatcher) *OrderController {
	return &OrderController{orders: orders, events: events}
}

func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.orders.All(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.Collect(resources.Order, orders))
}

func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := oc.orders.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resources.OrderSummary.ToArray(order))
}

func (oc *OrderController) Store(c *ctx.Context) {
	var in requests.CreateOrder
	if !c.BindJSON(&in) {
		return
	}
	order, errs := in.ToModel()
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}
	if err := oc.orders.Create(c.Context(), order); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "orders", event.Created, order.ID)
	c.Status(http.StatusCreated)
}

// Update replaces every field but the id, which comes from the path.
func (oc *OrderController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in requests.OrderFields
	if !c.BindJSON(&in) {
		return
	}
	order, errs := in.ToModel(id)
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}
	if err := oc.orders.Replace(c.Context(), id, order); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "orders", event.Updated, id)
	c.Status(StatusUpdated)
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := oc.orders.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "orders", event.Deleted, id)
	c.Status(StatusUpdated)
}
