package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type validationFixture struct {
	Name   string `validate:"required"`
	Email  string `validate:"omitempty,email"`
	Status string `validate:"omitempty,oneof=active inactive"`
	Budget int    `validate:"omitempty,gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(validationFixture{Name: "Acme"}))

	err := ValidateStruct(validationFixture{})
	assert.EqualError(t, err, "name is required")

	err = ValidateStruct(validationFixture{Name: "Acme", Email: "not-an-email"})
	assert.EqualError(t, err, "email must be a valid email")

	err = ValidateStruct(validationFixture{Name: "Acme", Status: "archived"})
	assert.EqualError(t, err, "status must be one of: active inactive")

	err = ValidateStruct(validationFixture{Name: "Acme", Budget: -1})
	assert.EqualError(t, err, "budget must be greater than 0")
}
