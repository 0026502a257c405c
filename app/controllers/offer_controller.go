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

type OfferController struct {
	offers *repositories.Repository[models.Offer]
	events *event.Dispatcher
}

func NewOfferController(offers *repositories.Repository[models.Offer], events *event.Dispatcher) *OfferController {
	return &OfferController{offers: offers, events: events}
}

func (oc *OfferController) Index(c *ctx.Context) {
	offers, err := oc.offers.All(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.Collect(resources.Offer, offers))
}

func (oc *OfferController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	offer, err := oc.offers.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resources.Offer.ToArray(offer))
}

func (oc *OfferController) Store(c *ctx.Context) {
	var in requests.CreateOffer
	if !c.BindJSON(&in) {
		return
	}
	offer := in.ToModel()
	if err := oc.offers.Create(c.Context(), offer); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "offers", event.Created, offer.ID)
	c.Status(http.StatusCreated)
}

func (oc *OfferController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in requests.OfferFields
	if !c.BindJSON(&in) {
		return
	}
	if err := oc.offers.Replace(c.Context(), id, in.ToModel(id)); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "offers", event.Updated, id)
	c.Status(StatusUpdated)
}

func (oc *OfferController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := oc.offers.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	emit(oc.events, "offers", event.Deleted, id)
	c.Status(StatusUpdated)
}
