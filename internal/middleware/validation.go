package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrTrailingData is returned when a request body holds more than one JSON value
var ErrTrailingData = errors.New("request body must contain a single JSON value")

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateRequest validates the request body against a struct with validation tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return ValidateRequest(v)
}

// ValidationError represents a field validation error. Loc is the path to the
// offending value, starting with where it came from: body, query or path.
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// FormatValidationErrors converts decode and validator errors to a readable
// format. Errors of any other kind produce nil.
func FormatValidationErrors(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := make([]ValidationError, 0, len(validationErrors))
		for _, e := range validationErrors {
			out = append(out, ValidationError{
				Loc:  bodyLoc(e.Namespace()),
				Msg:  getErrorMessage(e),
				Type: e.Tag(),
			})
		}
		return out
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []ValidationError{{
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("JSON decode error at offset %d", syntaxErr.Offset),
			Type: "json_invalid",
		}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []ValidationError{{
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.String()),
			Type: "type_error",
		}}
	}

	if errors.Is(err, ErrTrailingData) {
		return []ValidationError{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error: unexpected data after the request body",
			Type: "json_invalid",
		}}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []ValidationError{{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}}
	}

	return nil
}

// bodyLoc turns a validator namespace such as "CreateOrderRequest.items[0].qty"
// into a location below the request body.
func bodyLoc(namespace string) []string {
	parts := strings.Split(namespace, ".")
	return append([]string{"body"}, parts[1:]...)
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Field required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
