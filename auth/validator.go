package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"skillswap/errors"
)

var validate = validator.New()

// MinPasswordLength is the fixed minimum; shorter passwords always fail,
// regardless of the email value.
const MinPasswordLength = 6

type SignInRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type SignUpRequest struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func ValidateSignIn(req SignInRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	return nil
}

func ValidateSignUp(req SignUpRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrAuth, err)
	}
	return nil
}
