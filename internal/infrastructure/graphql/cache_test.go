package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

func TestMemoryCache_InvalidaSoloElTipoIndicado(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(ctx, "billing", []entity.Type{entity.TypeBillingTerm}, []byte(`{"a":1}`)))
	require.NoError(t, c.Set(ctx, "shipping", []entity.Type{entity.TypeShippingTerm}, []byte(`{"b":2}`)))

	require.NoError(t, c.Invalidate(ctx, entity.TypeBillingTerm))

	_, ok, err := c.Get(ctx, "billing")
	require.NoError(t, err)
	assert.False(t, ok, "la entrada de billing debe desaparecer")

	data, ok, err := c.Get(ctx, "shipping")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"b":2}`, string(data))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_EntradaConVariosTipos(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(ctx, "k", []entity.Type{entity.TypeCustomer, entity.TypeBillingTerm}, []byte(`{}`)))

	require.NoError(t, c.Invalidate(ctx, entity.TypeBillingTerm))

	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []entity.Type{entity.TypeCustomer}, []byte(`{}`)))
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok, "la entrada expirada no debe servirse")
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_ExpiradaNoBorraEntradaRecienEscrita(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "k", []entity.Type{entity.TypeCustomer}, []byte(`{"v":1}`)))

	now = now.Add(2 * time.Minute)
	// Otra goroutine reescribe la clave justo después de la lectura expirada.
	rewrite := true
	c.now = func() time.Time {
		if rewrite {
			rewrite = false
			require.NoError(t, c.Set(ctx, "k", []entity.Type{entity.TypeCustomer}, []byte(`{"v":2}`)))
		}
		return now
	}

	data, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(data))

	data, ok, _ = c.Get(ctx, "k")
	assert.True(t, ok, "la entrada nueva debe sobrevivir")
	assert.JSONEq(t, `{"v":2}`, string(data))
	assert.Equal(t, 1, c.Len())
}
