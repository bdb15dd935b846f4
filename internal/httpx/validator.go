package httpx

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/isbn"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("isbn", validateISBN)
}

// validateISBN runs the full normalizer, so the tag rejects checksum
// failures, not just malformed shapes.
func validateISBN(fl validator.FieldLevel) bool {
	_, err := isbn.Normalize(fl.Field().String())
	return err == nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateStruct validates s against its validate tags and returns one entry
// per failing field, or nil.
func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors []ValidationError
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "isbn":
			message = fmt.Sprintf("%s must be a valid ISBN-10 or ISBN-13", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: message,
		})
	}

	return errors
}
