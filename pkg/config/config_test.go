package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000/graphql", cfg.GraphQL.URL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL())
	assert.False(t, cfg.Auth.Enabled())
	assert.False(t, cfg.Editor.SwallowErrors)
	assert.Equal(t, 30*time.Minute, cfg.Editor.SessionTTL())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("GRAPHQL_URL", "http://api.internal/graphql")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("CACHE_TTL_SECONDS", "15")
	t.Setenv("INLINE_EDIT_SWALLOW_ERRORS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal/graphql", cfg.GraphQL.URL)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Second, cfg.Cache.TTL())
	assert.True(t, cfg.Editor.SwallowErrors)
}

func TestLoad_BackendDeCacheInvalido(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AuthSinSecretoFalla(t *testing.T) {
	t.Setenv("AUTH_OPERATOR_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	_, err := Load()
	assert.Error(t, err, "el login de operador necesita AUTH_JWT_SECRET")
}
