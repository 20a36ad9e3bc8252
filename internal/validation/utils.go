package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/deppfellow/user-service/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with binding tags (`param:"id"`)
// - Implement Validate() error that checks and normalizes the bound values
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// ErrInvalidUserID is returned by ParseUserID when no id can be read.
var ErrInvalidUserID = errors.New("invalid id")

// ParseUserID reads a user id from a raw path segment.
//
// The reading is a loose leading-integer one: leading whitespace and a single '+' are skipped, then the longest run of
// ASCII digits is read as a base-10 number and anything after it is ignored.
//
//	"42"    -> 42
//	"7abc"  -> 7
//	"+7"    -> 7
//	"abc"   -> ErrInvalidUserID
//	"-5"    -> ErrInvalidUserID (ids are never negative)
//
// A digit run too large for int64 is also ErrInvalidUserID.
func ParseUserID(raw string) (int64, error) {
	s := strings.TrimLeft(raw, " \t\n\v\f\r")
	s = strings.TrimPrefix(s, "+")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, ErrInvalidUserID
	}

	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, ErrInvalidUserID
	}

	return id, nil
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) Path params are bound into the payload. Query string and body are
//    never read, so a GET with a body answers exactly like one without.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with field-level errors if validation fails.
//
// NOTE: the binder expects a pointer to a struct. If payload is not a pointer,
// binding will fail or behave unexpectedly.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := pathBinder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

var pathBinder = &echo.DefaultBinder{}

// bindErrorMessage pulls the client-facing message out of Echo's bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "invalid request"
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError converts the error of a Validate() call into field errors.
//
// The returned message is the single field's message when only one field
// failed (so GET /users/abc answers {"error":"invalid id"}), and the
// generic "Validation failed" otherwise.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &customValidationErrors):
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}

	case errors.As(err, &validationErrors):
		// Convert validator.ValidationErrors into user-friendly messages.
		for _, err := range validationErrors {
			field := strings.ToLower(err.Field())
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: field,
				Error: field + " " + tagMessage(err),
			})
		}

	default:
		// Something that is not a validation error at all.
		fieldErrors = append(fieldErrors, errs.FieldError{Error: err.Error()})
	}

	if len(fieldErrors) == 1 {
		return fieldErrors[0].Error, fieldErrors
	}

	return "Validation failed", fieldErrors
}

// tagMessage renders one validator tag failure.
func tagMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "numeric":
		return "must be numeric"

	case "min":
		// min tag means:
		// - for strings: minimum length
		// - for numbers: minimum value
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	default:
		// Fallback for tags not explicitly handled above.
		if err.Param() != "" {
			return fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
		}
		return fmt.Sprintf("failed %s", err.Tag())
	}
}
