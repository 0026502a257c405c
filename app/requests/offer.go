package requests

import "github.com/shashiranjanraj/offerdesk/app/models"

// OfferFields is the body of PUT /offers/{id}.
type OfferFields struct {
	OrderID    *int `json:"order_id"    validate:"required"`
	ExecutorID *int `json:"executor_id" validate:"required"`
}

// CreateOffer is the body of POST /offers and a row of offers.json.
type CreateOffer struct {
	ID *int `json:"id" validate:"required"`
	OfferFields
}

func (o OfferFields) ToModel(id int) models.Offer {
	return models.Offer{ID: id, OrderID: *o.OrderID, ExecutorID: *o.ExecutorID}
}

func (o CreateOffer) ToModel() models.Offer {
	return o.OfferFields.ToModel(*o.ID)
}
