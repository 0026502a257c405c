package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/offerdesk/pkg/validate"
)

type userInput struct {
	ID    *int    `json:"id"         validate:"required"`
	First *string `json:"first_name" validate:"required,max=5"`
	Email *string `json:"email"      validate:"required,email"`
	Age   *int    `json:"age"        validate:"required,gte=0"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(userInput{
		ID:    ptr(1),
		First: ptr("Ann"),
		Email: ptr("ann@example.com"),
		Age:   ptr(0),
	})
	assert.False(t, validate.HasErrors(errs), "got %v", errs)
}

func TestRequiredIsPresenceCheck(t *testing.T) {
	errs := validate.Struct(userInput{ID: ptr(0), First: ptr("")})

	assert.NotContains(t, errs, "id")
	assert.Equal(t, "The email field is required.", errs["email"])
	assert.Equal(t, "The age field is required.", errs["age"])
}

func TestKeysUseJSONNames(t *testing.T) {
	errs := validate.Struct(userInput{
		ID:    ptr(1),
		First: ptr("Annabelle"),
		Email: ptr("not-an-email"),
		Age:   ptr(-1),
	})

	assert.Equal(t, "The first_name may not be greater than 5 characters.", errs["first_name"])
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
	assert.Equal(t, "The age must be greater than or equal to 0.", errs["age"])
}
