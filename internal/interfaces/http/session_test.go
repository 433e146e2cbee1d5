package http

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdaskas/customer-console/internal/application/editor"
)

type nopSaver struct{}

func (nopSaver) ValidateRow(editor.Buffers) error                      { return nil }
func (nopSaver) SaveRow(context.Context, string, editor.Buffers) error { return nil }

// editorApp expone el editor de la sesión: /begin/:code y /state/:code.
func editorApp(store *SessionStore) *fiber.App {
	app := fiber.New()
	app.Get("/begin/:code", func(c *fiber.Ctx) error {
		return store.Editor(c, PageBillingTerms).Begin(c.Params("code"), editor.Buffers{Description: "x"})
	})
	app.Get("/state/:code", func(c *fiber.Ctx) error {
		if _, ok := store.Editor(c, PageBillingTerms).State(c.Params("code")).(editor.Editing); ok {
			return c.SendString("editing")
		}
		return c.SendString("display")
	})
	return app
}

func body(t *testing.T, app *fiber.App, path, sid string) (string, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if sid != "" {
		req.Header.Set("Cookie", sessionCookie+"="+sid)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie {
			sid = ck.Value
		}
	}
	return string(buf), sid
}

func TestSessionStore_EditorPorSesion(t *testing.T) {
	store := NewSessionStore(time.Minute, TermEditors(nopSaver{}, nopSaver{}, editor.ErrorPolicySurface, nil))
	app := editorApp(store)

	_, sid := body(t, app, "/begin/NET30", "")
	require.NotEmpty(t, sid)

	got, _ := body(t, app, "/state/NET30", sid)
	assert.Equal(t, "editing", got)

	got, other := body(t, app, "/state/NET30", "")
	assert.Equal(t, "display", got)
	assert.NotEqual(t, sid, other)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_ExpiraPorInactividad(t *testing.T) {
	store := NewSessionStore(time.Minute, TermEditors(nopSaver{}, nopSaver{}, editor.ErrorPolicySurface, nil))
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	app := editorApp(store)

	_, sid := body(t, app, "/begin/NET30", "")
	now = now.Add(2 * time.Minute)

	got, fresh := body(t, app, "/state/NET30", sid)
	assert.Equal(t, "display", got)
	assert.NotEqual(t, sid, fresh, "la sesión expirada se reemplaza")
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_CookieDesconocidaCreaSesion(t *testing.T) {
	store := NewSessionStore(0, TermEditors(nopSaver{}, nopSaver{}, editor.ErrorPolicySurface, nil))
	app := editorApp(store)

	got, sid := body(t, app, "/state/STD", "no-existe")
	assert.Equal(t, "display", got)
	assert.NotEqual(t, "no-existe", sid)
}
