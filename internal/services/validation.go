package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Kind    Kind              `json:"kind,omitempty"`    // Error kind
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a validator that reports fields by their json name
// and understands the `password` tag.
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic(err)
	}

	return &ValidationHelper{validator: v}
}

// ValidateStruct validates a struct and returns a validation *Error with
// field-level details, or nil.
func (vh *ValidationHelper) ValidateStruct(s any) error {
	err := vh.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	return NewValidationError("Validation failed", fieldErrors(validationErrs))
}

func fieldErrors(validationErrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrs))
	for _, err := range validationErrs {
		details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
	}
	return details
}

// validatePassword requires at least 8 characters with an upper case letter, a
// lower case letter and a digit.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		var domainErr *Error
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(validationErr, &domainErr):
			errorResp.Kind = domainErr.Kind
			errorResp.Details = domainErr.Fields
		case errors.As(validationErr, &validationErrs):
			errorResp.Kind = KindValidation
			errorResp.Details = fieldErrors(validationErrs)
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}

// WriteError renders any error returned by a service. Domain errors keep their
// message; everything else is logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		log.Printf("[HTTP] Internal error: %v", err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	SendErrorResponse(w, domainErr.Message, StatusCode(domainErr), domainErr)
}
