// Package graphqltest levanta una API GraphQL falsa sobre httptest para probar el cliente,
// los casos de uso y los handlers sin un servidor real.
package graphqltest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Call una operación recibida por el servidor falso.
type Call struct {
	OperationName string
	Query         string
	Variables     map[string]interface{}
	Header        http.Header
}

// Responder decide status y cuerpo JSON para una llamada.
type Responder func(call Call) (status int, body interface{})

// Server API GraphQL falsa. Las operaciones sin responder registrado devuelven un error GraphQL.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	calls      []Call
	responders map[string]Responder
}

// NewServer arranca el servidor; el llamador debe invocar Close.
func NewServer() *Server {
	s := &Server{responders: make(map[string]Responder)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registra un responder para la operación.
func (s *Server) Handle(operation string, r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[operation] = r
}

// Reply responde siempre {"data": data}.
func (s *Server) Reply(operation string, data interface{}) {
	s.Handle(operation, func(Call) (int, interface{}) {
		return http.StatusOK, map[string]interface{}{"data": data}
	})
}

// Fail responde siempre con un error GraphQL con el mensaje y extensions.code dados.
func (s *Server) Fail(operation, message, code string) {
	s.Handle(operation, func(Call) (int, interface{}) {
		return http.StatusOK, map[string]interface{}{
			"data": nil,
			"errors": []map[string]interface{}{{
				"message":    message,
				"extensions": map[string]interface{}{"code": code},
			}},
		}
	})
}

// Calls devuelve las llamadas recibidas para la operación ("" = todas).
func (s *Server) Calls(operation string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, 0, len(s.calls))
	for _, c := range s.calls {
		if operation == "" || c.OperationName == operation {
			out = append(out, c)
		}
	}
	return out
}

// Count número de llamadas recibidas para la operación ("" = todas).
func (s *Server) Count(operation string) int {
	return len(s.Calls(operation))
}

// Reset olvida las llamadas registradas (los responders se mantienen).
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	// Lo registrado y lo que recibe el responder se decodifican por separado: un responder
	// que modifica Variables no altera Calls.
	recorded, err := decodeCall(raw, r.Header)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	call, _ := decodeCall(raw, r.Header)

	s.mu.Lock()
	s.calls = append(s.calls, recorded)
	responder, ok := s.responders[call.OperationName]
	s.mu.Unlock()

	status := http.StatusOK
	var body interface{} = map[string]interface{}{
		"errors": []map[string]interface{}{{"message": "unknown operation " + call.OperationName}},
	}
	if ok {
		status, body = responder(call)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeCall(raw []byte, h http.Header) (Call, error) {
	var in struct {
		OperationName string                 `json:"operationName"`
		Query         string                 `json:"query"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return Call{}, err
	}
	return Call{
		OperationName: in.OperationName,
		Query:         in.Query,
		Variables:     in.Variables,
		Header:        h.Clone(),
	}, nil
}
