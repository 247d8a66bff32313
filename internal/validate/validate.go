// Package validate declares the create/update payload schemas for books
// and turns violations into one human-readable message per constraint.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateBook is the POST payload schema: every field required.
type CreateBook struct {
	ISBN      *string `json:"isbn" validate:"required,isbn"`
	AmazonURL *string `json:"amazon_url" validate:"required,url"`
	Author    *string `json:"author" validate:"required"`
	Language  *string `json:"language" validate:"required"`
	Pages     *int    `json:"pages" validate:"required,gt=0"`
	Publisher *string `json:"publisher" validate:"required"`
	Title     *string `json:"title" validate:"required"`
	Year      *int    `json:"year" validate:"required"`
}

// UpdateBook is the PUT payload schema: every field optional, isbn absent.
// The "no isbn in body" rule is a handler precondition, not part of the schema.
type UpdateBook struct {
	AmazonURL *string `json:"amazon_url" validate:"omitempty,url"`
	Author    *string `json:"author"`
	Language  *string `json:"language"`
	Pages     *int    `json:"pages" validate:"omitempty,gt=0"`
	Publisher *string `json:"publisher"`
	Title     *string `json:"title"`
	Year      *int    `json:"year"`
}

var (
	validate *validator.Validate

	isbn10Re = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Re = regexp.MustCompile(`^\d{13}$`)
)

func init() {
	validate = validator.New()

	// Report fields by their wire names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("isbn", validISBN)
}

// validISBN accepts ISBN-10/13 shapes (hyphens and spaces ignored).
// Check digits are not verified; the store does not care either.
func validISBN(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	return isbn10Re.MatchString(isbn) || isbn13Re.MatchString(isbn)
}

// DecodeJSON decodes r into dst (one of the schema structs above) and
// returns every violation message of the payload at once: per-field type
// mismatches, constraint violations, and unknown properties. Messages for
// declared fields follow schema declaration order, with unknown-property
// messages (sorted by name) last. A nil return means the payload is valid.
func DecodeJSON(r io.Reader, dst any) []string {
	data, err := io.ReadAll(r)
	if err != nil {
		return []string{"invalid JSON"}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return []string{"invalid JSON"}
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	// Decode field by field so one mistyped value never hides the rest.
	known := make(map[string]struct{}, t.NumField())
	typeErrs := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		known[name] = struct{}{}
		raw, ok := payload[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, v.Field(i).Addr().Interface()); err != nil {
			typeErrs[name] = name + " must be of type " + jsonTypeName(f.Type)
		}
	}

	// First constraint violation per well-typed field.
	constraintErrs := map[string]string{}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{"invalid payload"}
		}
		for _, e := range verrs {
			if _, ok := constraintErrs[e.Field()]; !ok {
				constraintErrs[e.Field()] = message(e)
			}
		}
	}

	var msgs []string
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		// A mistyped field reports its type violation only; the field
		// stayed nil, so any required/format message would be noise.
		if m, ok := typeErrs[name]; ok {
			msgs = append(msgs, m)
			continue
		}
		if m, ok := constraintErrs[name]; ok {
			msgs = append(msgs, m)
		}
	}

	var unknown []string
	for k := range payload {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		msgs = append(msgs, k+" is not an allowed field")
	}

	return msgs
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "isbn":
		return field + " must be a valid ISBN (10 or 13 digits)"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	default:
		return field + " is invalid"
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
