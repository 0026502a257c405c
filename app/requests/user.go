// Package requests defines the JSON bodies the API accepts.
//
// Every field is a pointer tagged `validate:"required"`: a key that is
// absent fails, while any value of the right JSON type (0, "") passes.
package requests

import "github.com/shashiranjanraj/offerdesk/app/models"

// User is the body of POST /users and PUT /users/{id}. On PUT the id is
// applied to the row too.
type User struct {
	ID        *int    `json:"id"         validate:"required"`
	FirstName *string `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name"  validate:"required"`
	Age       *int    `json:"age"        validate:"required"`
	Email     *string `json:"email"      validate:"required"`
	Role      *string `json:"role"       validate:"required"`
	Phone     *string `json:"phone"      validate:"required"`
}

// ToModel assumes the request has passed validation.
func (u User) ToModel() models.User {
	return models.User{
		ID:        *u.ID,
		FirstName: *u.FirstName,
		LastName:  *u.LastName,
		Age:       *u.Age,
		Email:     *u.Email,
		Role:      *u.Role,
		Phone:     *u.Phone,
	}
}
