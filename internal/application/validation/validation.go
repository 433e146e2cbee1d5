// Package validation aplica el esquema declarativo de los formularios (tags validate) con
// go-playground/validator y traduce los fallos a errores por campo.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mdaskas/customer-console/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors errores por campo del formulario: nombre del campo (tag form) → mensaje.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (fe FieldErrors) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// AsFieldErrors extrae los errores por campo de err, si los hay.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator envuelve un *validator.Validate con las reglas propias de la consola.
type Validator struct {
	v *validator.Validate
}

// New construye el validador y registra email_pattern y positive_int.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("email_pattern", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		// El esquema GraphQL declara Int de 32 bits.
		n, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 32)
		return err == nil && n > 0
	})
	return &Validator{v: v}
}

// Struct valida s (struct o puntero a struct). Devuelve nil o FieldErrors; el mensaje de cada
// campo sale de su tag msg y, si falta, de un texto genérico según la regla.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(t, fe)
	}
	return out
}

func message(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email_pattern":
		return "Enter a valid email address"
	case "positive_int":
		return fe.Field() + " must be a positive integer"
	default:
		return fe.Field() + " is invalid"
	}
}
