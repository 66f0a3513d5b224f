package validation

import (
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"salon-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)
	colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock builds a validator whose time-window rules are evaluated
// against now.
func NewWithClock(now func() time.Time) *Validator {
	v := validator.New()
	val := &Validator{v: v, now: now}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.DateTime); ok {
			return d.Time()
		}
		return nil
	}, models.DateTime{})

	v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return emailRegex.MatchString(value)
	})

	v.RegisterValidation("themecolor", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return colorRegex.MatchString(value)
	})

	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return slices.Contains(models.Currencies, value)
	})

	v.RegisterValidation("appointmentwindow", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		// Bookable from now up to two calendar years ahead.
		now := val.now()
		return !value.Before(now) && !value.After(now.AddDate(2, 0, 0))
	})

	return val
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// StructFields validates only the top-level fields of s whose json names
// are listed, including everything nested below them.
func (v *Validator) StructFields(s interface{}, jsonFields []string) error {
	touched := goFieldNames(reflect.TypeOf(s), jsonFields)
	return v.v.StructFiltered(s, func(ns []byte) bool {
		parts := strings.Split(string(ns), ".")
		if len(parts) < 2 {
			return false
		}
		_, ok := touched[parts[1]]
		return !ok
	})
}

// goFieldNames maps json names to the Go names of the top-level fields
// carrying them. Fields promoted from an untagged embedded struct map to
// the embedded field.
func goFieldNames(typ reflect.Type, jsonFields []string) map[string]struct{} {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	wanted := make(map[string]struct{}, len(jsonFields))
	for _, f := range jsonFields {
		wanted[f] = struct{}{}
	}

	names := make(map[string]struct{})
	if typ.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Tag.Get("json") == "" && field.Type.Kind() == reflect.Struct {
			if len(goFieldNames(field.Type, jsonFields)) > 0 {
				names[field.Name] = struct{}{}
			}
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		}
		if _, ok := wanted[name]; ok {
			names[field.Name] = struct{}{}
		}
	}
	return names
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		return ve
	}
	return nil
}
