package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"universo/internal/apperr"
)

// ID is an entity identifier as sent by clients: a JSON number or a numeric
// string. Anything else is kept verbatim so validation can reject it.
type ID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
	default:
		*id = ID(data)
	}
	return nil
}

// Uint returns the identifier as an unsigned integer.
func (id ID) Uint() (uint, bool) {
	n, err := strconv.ParseUint(string(id), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// IDOf formats a stored key as an ID.
func IDOf(n uint) ID {
	return ID(strconv.FormatUint(uint64(n), 10))
}

// dateLayouts are the accepted calendar date formats.
var dateLayouts = []string{"2006-01-02", "2006/01/02", time.RFC3339}

// dateTimeLayouts are the accepted meeting date-time formats.
var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

// ParseDate parses a calendar date; the result is midnight UTC of that day.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDateTime parses a meeting timestamp. Values without a zone are UTC.
func ParseDateTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// validate is shared by all services; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("date_time", func(fl validator.FieldLevel) bool {
		_, ok := ParseDateTime(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("entity_id", func(fl validator.FieldLevel) bool {
		_, ok := ID(fl.Field().String()).Uint()
		return ok
	})
	return v
}

// check validates input and converts failures into an apperr.ValidationError
// using one message per JSON field.
func check(input any, messages map[string]string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		msg, ok := messages[name]
		if !ok {
			msg = "Valor inválido"
		}
		field := apperr.FieldError{Field: name, Message: msg}
		if !secretFields[name] {
			field.Value = fieldValue(fe.Value())
		}
		fields = append(fields, field)
	}
	return apperr.NewValidationError(apperr.InvalidInputMessage, fields...)
}

// secretFields are never echoed back in validation errors.
var secretFields = map[string]bool{"password": true}

// fieldValue dereferences pointers so responses echo the rejected value.
func fieldValue(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.String && rv.Len() == 0 {
		return nil
	}
	return rv.Interface()
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

// optional turns an empty string into nil for nullable columns.
func optional(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
