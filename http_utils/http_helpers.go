package http_utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// ValidationError turns a binding or validation error into a response
// listing every failed field. Errors that are not validation errors
// (bad JSON, wrong types) are reported as a single entry.
func ValidationError(err error) ValidationErrorResponse {
	response := ValidationErrorResponse{
		BaseResponse: NewBaseResponse("error", "invalid body, validation failed"),
	}

	var verrs validator.ValidationErrors

	if errors.As(err, &verrs) {
		response.Errors = lo.Map(verrs, func(item validator.FieldError, index int) string {
			return item.Error()
		})
		return response
	}

	response.Errors = []string{err.Error()}

	return response
}
