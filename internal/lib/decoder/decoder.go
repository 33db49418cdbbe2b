// Package decoder fills structs from url-encoded form values.
package decoder

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gorilla/schema"
)

type FormDecoder struct {
	schema *schema.Decoder
}

func New() *FormDecoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return &FormDecoder{schema: d}
}

// Decode fills dst, a pointer to struct, from src. Fields are matched by their
// `schema` tag.
func (d *FormDecoder) Decode(dst any, src map[string][]string) error {
	return d.schema.Decode(dst, src)
}

// FieldErrors turns per-field conversion failures into user facing messages.
// It returns nil when err is not a decoding error of individual fields.
func FieldErrors(err error) map[string]string {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return nil
	}
	fieldErrs := make(map[string]string, len(multi))
	for key, e := range multi {
		var conversionErr schema.ConversionError
		var emptyErr schema.EmptyFieldError
		switch {
		case errors.As(e, &conversionErr):
			fieldErrs[key] = fmt.Sprintf("Value must be a valid %s", typeName(conversionErr.Type))
		case errors.As(e, &emptyErr):
			fieldErrs[key] = "This field is required"
		default:
			fieldErrs[key] = "This field is invalid"
		}
	}
	return fieldErrs
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
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
	default:
		return t.String()
	}
}
