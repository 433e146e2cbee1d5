package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
	"github.com/mdaskas/customer-console/pkg/logger"
)

const maxResponseBytes = 4 << 20

// TokenSource devuelve el Bearer token para una petición ("" = sin header Authorization).
type TokenSource func(ctx context.Context) (string, error)

// ClientConfig opciones del cliente.
type ClientConfig struct {
	Endpoint    string
	Timeout     time.Duration
	TokenSource TokenSource
	HTTPClient  *http.Client // opcional; si es nil se crea uno con Timeout
}

// Client manejador único hacia la API GraphQL. Se inyecta en los repositorios; no hay
// instancia global. Las queries pasan por la caché de respuestas y las mutaciones nunca.
type Client struct {
	endpoint string
	http     *http.Client
	tokens   TokenSource
	cache    ResponseCache
	log      *logger.Logger
	flight   singleflight.Group

	// mu serializa Invalidate con el guardado en caché de una query, para que un resultado
	// obtenido antes de la invalidación no se almacene después de ella.
	mu          sync.Mutex
	generations map[entity.Type]uint64
}

var _ repository.Invalidator = (*Client)(nil)

// NewClient construye el cliente.
func NewClient(cfg ClientConfig, cache ResponseCache, log *logger.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		endpoint:    cfg.Endpoint,
		http:        hc,
		tokens:      cfg.TokenSource,
		cache:       cache,
		log:         log.Named("graphql"),
		generations: make(map[entity.Type]uint64),
	}
}

type gqlRequest struct {
	OperationName string      `json:"operationName"`
	Query         string      `json:"query"`
	Variables     interface{} `json:"variables"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GQLError      `json:"errors"`
}

// Execute ejecuta una operación del catálogo y decodifica su "data" en R.
func Execute[V any, R any](ctx context.Context, c *Client, op Operation[V, R], vars V) (R, error) {
	var out R
	raw, err := c.do(ctx, op.Info(), vars)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("graphql %s: decodificar data: %w: %w", op.Name, domain.ErrUpstream, err)
	}
	return out, nil
}

// Invalidate descarta las respuestas cacheadas de los tipos indicados. La siguiente lectura
// vuelve a consultar la API.
func (c *Client) Invalidate(ctx context.Context, types ...entity.Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range types {
		c.generations[t]++
	}
	if err := c.cache.Invalidate(ctx, types...); err != nil {
		return fmt.Errorf("graphql: invalidar caché: %w", err)
	}
	c.log.Debug().Interface("types", types).Msg("caché invalidada")
	return nil
}

// Close libera las conexiones HTTP ociosas.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, info OperationInfo, vars interface{}) (json.RawMessage, error) {
	if info.Kind == KindMutation {
		return c.send(ctx, info, vars)
	}

	key, err := cacheKey(info.Name, vars)
	if err != nil {
		return nil, err
	}
	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("operation", info.Name).Msg("lectura de caché fallida, se consulta la API")
	} else if ok {
		c.log.Debug().Str("operation", info.Name).Bool("cache_hit", true).Msg("graphql query")
		return cached, nil
	}

	// La generación forma parte de la clave: una query emitida tras una invalidación nunca
	// se une a una petición iniciada antes de ella.
	gens := c.snapshot(info.Entities)
	flightKey := fmt.Sprintf("%s@%v", key, gens)
	v, err, _ := c.flight.Do(flightKey, func() (interface{}, error) {
		fctx := context.WithoutCancel(ctx)
		data, err := c.send(fctx, info, vars)
		if err != nil {
			return nil, err
		}
		c.store(fctx, key, info, gens, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (c *Client) snapshot(types []entity.Type) []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uint64, len(types))
	for i, t := range types {
		out[i] = c.generations[t]
	}
	return out
}

func (c *Client) store(ctx context.Context, key string, info OperationInfo, gens []uint64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range info.Entities {
		if c.generations[t] != gens[i] {
			return
		}
	}
	if err := c.cache.Set(ctx, key, info.Entities, data); err != nil {
		c.log.Warn().Err(err).Str("operation", info.Name).Msg("no se pudo guardar en caché")
	}
}

func (c *Client) send(ctx context.Context, info OperationInfo, vars interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(gqlRequest{OperationName: info.Name, Query: info.Document, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("graphql %s: serializar request: %w", info.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphql %s: crear HTTP request: %w", info.Name, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		tok, err := c.tokens(ctx)
		if err != nil {
			return nil, fmt.Errorf("graphql %s: token: %w", info.Name, err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("operation", info.Name).Str("request_id", requestID).Msg("graphql: llamada HTTP fallida")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("graphql %s: timeout o cancelación: %w: %w", info.Name, domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("graphql %s: llamada HTTP fallida: %w: %w", info.Name, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("graphql %s: leer respuesta: %w: %w", info.Name, domain.ErrUpstream, err)
	}

	c.log.Debug().
		Str("operation", info.Name).
		Str("kind", string(info.Kind)).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("graphql request")

	var gr gqlResponse
	decodeErr := json.Unmarshal(raw, &gr)
	if decodeErr == nil && len(gr.Errors) > 0 {
		rerr := &ResponseError{Operation: info.Name, Errors: gr.Errors}
		c.log.Warn().Str("operation", info.Name).Str("request_id", requestID).Str("error", rerr.Error()).Msg("graphql: errores en respuesta")
		return nil, rerr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("graphql %s: HTTP %d: %w", info.Name, resp.StatusCode, domain.ErrUpstream)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("graphql %s: deserializar respuesta: %w: %w", info.Name, domain.ErrUpstream, decodeErr)
	}
	if len(gr.Data) == 0 || string(gr.Data) == "null" {
		return nil, fmt.Errorf("graphql %s: respuesta sin data: %w", info.Name, domain.ErrUpstream)
	}
	return gr.Data, nil
}

func cacheKey(name string, vars interface{}) (string, error) {
	b, err := json.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("graphql %s: serializar variables: %w", name, err)
	}
	return name + ":" + string(b), nil
}
