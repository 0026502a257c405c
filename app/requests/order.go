package requests

import "github.com/shashiranjanraj/offerdesk/app/models"

// OrderFields is the body of PUT /orders/{id}. Dates are MM/DD/YYYY.
type OrderFields struct {
	Name        *string `json:"name"        validate:"required"`
	Description *string `json:"description" validate:"required"`
	StartDate   *string `json:"start_date"  validate:"required"`
	EndDate     *string `json:"end_date"    validate:"required"`
	Address     *string `json:"address"     validate:"required"`
	Price       *int    `json:"price"       validate:"required"`
	CustomerID  *int    `json:"customer_id" validate:"required"`
	ExecutorID  *int    `json:"executor_id" validate:"required"`
}

// CreateOrder is the body of POST /orders and a row of orders.json.
type CreateOrder struct {
	ID *int `json:"id" validate:"required"`
	OrderFields
}

// ToModel builds the order stored under id. Unparseable dates are reported
// per field.
func (o OrderFields) ToModel(id int) (models.Order, map[string]string) {
	errs := map[string]string{}

	start, err := models.ParseDate(*o.StartDate)
	if err != nil {
		errs["start_date"] = err.Error()
	}
	end, err := models.ParseDate(*o.EndDate)
	if err != nil {
		errs["end_date"] = err.Error()
	}
	if len(errs) > 0 {
		return models.Order{}, errs
	}

	return models.Order{
		ID:          id,
		Name:        *o.Name,
		Description: *o.Description,
		StartDate:   start,
		EndDate:     end,
		Address:     *o.Address,
		Price:       *o.Price,
		CustomerID:  *o.CustomerID,
		ExecutorID:  *o.ExecutorID,
	}, nil
}

func (o CreateOrder) ToModel() (models.Order, map[string]string) {
	return o.OrderFields.ToModel(*o.ID)
}

// FromOrder renders an order in the request shape, dates as MM/DD/YYYY.
func FromOrder(m models.Order) CreateOrder {
	start, end := models.FormatDate(m.StartDate), models.FormatDate(m.EndDate)
	return CreateOrder{
		ID: &m.ID,
		OrderFields: OrderFields{
			Name:        &m.Name,
			Description: &m.Description,
			StartDate:   &start,
			EndDate:     &end,
			Address:     &m.Address,
			Price:       &m.Price,
			CustomerID:  &m.CustomerID,
			ExecutorID:  &m.ExecutorID,
		},
	}
}
