package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/pkg/logger"
)

const sessionCookie = "sid"

// Páginas con edición en línea.
const (
	PageBillingTerms  = "billing-terms"
	PageShippingTerms = "shipping-terms"
)

// EditorFactory crea el editor de una página para una sesión nueva.
type EditorFactory func() *editor.Editor

// TermEditors fábricas de editores para las páginas de condiciones de pago y de envío.
func TermEditors(billing, shipping editor.RowSaver, policy editor.ErrorPolicy, log *logger.Logger) map[string]EditorFactory {
	if log == nil {
		log = logger.Nop()
	}
	return map[string]EditorFactory{
		PageBillingTerms:  func() *editor.Editor { return editor.New(billing, policy, log.Named(PageBillingTerms)) },
		PageShippingTerms: func() *editor.Editor { return editor.New(shipping, policy, log.Named(PageShippingTerms)) },
	}
}

type session struct {
	editors  map[string]*editor.Editor
	lastSeen time.Time
}

// SessionStore estado transitorio por navegador: un editor por página, identificado por la
// cookie sid. Las sesiones inactivas más de ttl se descartan.
type SessionStore struct {
	ttl       time.Duration
	factories map[string]EditorFactory
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionStore construye el almacén; factories indica qué páginas tienen editor.
func NewSessionStore(ttl time.Duration, factories map[string]EditorFactory) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		ttl:       ttl,
		factories: factories,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// Editor devuelve el editor de la página para el navegador de la petición, creando la sesión
// (y la cookie sid) si hace falta.
func (s *SessionStore) Editor(c *fiber.Ctx, page string) *editor.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sid := c.Cookies(sessionCookie)
	sess, ok := s.sessions[sid]
	if !ok {
		sid = uuid.NewString()
		sess = &session{editors: make(map[string]*editor.Editor)}
		s.sessions[sid] = sess
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	sess.lastSeen = now

	ed, ok := sess.editors[page]
	if !ok {
		ed = s.factories[page]()
		sess.editors[page] = ed
	}
	return ed
}

// Len sesiones vivas.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for sid, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, sid)
		}
	}
}
