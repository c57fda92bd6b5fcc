package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ethioagri/gebeya/app/clients"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates v's struct tags and converts failures into a
// *clients.ValidationError so callers see one error kind for every local
// precondition failure.
func checkInput(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &clients.ValidationError{Message: err.Error()}
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email address", strings.ToLower(fe.Field())))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must not be negative", strings.ToLower(fe.Field())))
		case "min":
			parts = append(parts, fmt.Sprintf("%s is too short", strings.ToLower(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return &clients.ValidationError{Message: strings.Join(parts, "; ")}
}
