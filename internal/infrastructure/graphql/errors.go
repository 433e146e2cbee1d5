package graphql

import (
	"strings"

	"github.com/mdaskas/customer-console/internal/domain"
)

// GQLError un elemento del arreglo "errors" de una respuesta GraphQL.
type GQLError struct {
	Message    string        `json:"message"`
	Path       []interface{} `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// ResponseError la API respondió con errores GraphQL. Error() devuelve los mensajes del
// servidor tal cual, para mostrarlos al operador.
type ResponseError struct {
	Operation string
	Errors    []GQLError
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		if ge.Message != "" {
			msgs = append(msgs, ge.Message)
		}
	}
	if len(msgs) == 0 {
		return e.Operation + ": error sin mensaje"
	}
	return strings.Join(msgs, "; ")
}

// Unwrap traduce extensions.code del primer error a un error de dominio.
func (e *ResponseError) Unwrap() error {
	if len(e.Errors) == 0 {
		return domain.ErrUpstream
	}
	switch strings.ToUpper(e.Errors[0].Extensions.Code) {
	case "NOT_FOUND":
		return domain.ErrNotFound
	case "BAD_USER_INPUT", "VALIDATION":
		return domain.ErrInvalidInput
	case "CONFLICT", "DUPLICATE":
		return domain.ErrDuplicate
	case "UNAUTHENTICATED", "FORBIDDEN":
		return domain.ErrUnauthorized
	default:
		return domain.ErrUpstream
	}
}
