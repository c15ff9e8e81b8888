package validation

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Struct validates a value using `validate` struct tags.
// Returns an *Error carrying one FieldError per violation.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Field: "_", Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, FieldError{
			Field:   e.Field(),
			Message: formatTag(e),
		})
	}
	return &Error{Fields: fields}
}

// StructValidator checks that a response body decodes into T and satisfies
// T's validate tags. It implements httpclient.ResponseValidator.
type StructValidator[T any] struct{}

// Schema returns a response validator for type T.
func Schema[T any]() StructValidator[T] {
	return StructValidator[T]{}
}

// Validate decodes body into T and validates it.
func (StructValidator[T]) Validate(body []byte) error {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return &Error{Fields: []FieldError{{Field: "_", Message: "body is not valid JSON: " + err.Error()}}}
	}
	return Struct(v)
}

// formatTag creates a human-readable message for a failed tag.
func formatTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of " + e.Param()
	case "gte":
		return "must be >= " + e.Param()
	case "lte":
		return "must be <= " + e.Param()
	default:
		return "failed " + e.Tag() + " validation"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
