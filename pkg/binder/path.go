package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Path creates a path parameter binder using the router's extractor.
//
// Fields are bound by their `path:"name"` tag; untagged fields and `path:"-"`
// are skipped. Supported field kinds are string, signed and unsigned integers
// and bool. Missing parameters leave the field at its zero value.
//
// Example with chi router:
//
//	type removeRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Delete("/cities/{id}", handler.Wrap(remove,
//		handler.WithBinders[handler.Context, removeRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return ErrInvalidTarget
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, _, _ := strings.Cut(sf.Tag.Get("path"), ",")
			if name == "" || name == "-" {
				continue
			}

			raw := extractor(r, name)
			if raw == "" {
				continue
			}
			if err := setField(field, raw); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, sf.Name, err)
			}
		}

		return nil
	}
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
