package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Login  string `validate:"required,max=64"`
	Name   string `validate:"required,max=128"`
	Secret string `validate:"required,max=72"`
}

func ValidateRegister(req RegisterRequest) error {
	return validate.Struct(req)
}
