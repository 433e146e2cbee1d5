package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/auth"
	"github.com/mdaskas/customer-console/internal/application/dto"
)

// LocalOperator key de Locals con el operador autenticado.
const LocalOperator = "operator"

// authCookie cookie con el token de sesión del operador.
const authCookie = "console_session"

// AuthMiddleware exige sesión cuando el login está habilitado. Acepta la cookie de sesión o
// Authorization: Bearer. Sin sesión, /api responde 401 y las páginas redirigen a /login.
func AuthMiddleware(uc *auth.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !uc.Enabled() {
			return c.Next()
		}
		token := c.Cookies(authCookie)
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
			}
			token = strings.TrimSpace(parts[1])
		}
		if token == "" {
			return unauthorized(c, "MISSING_TOKEN", "sesión requerida")
		}
		operator, err := uc.Verify(token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalOperator, operator)
		c.SetUserContext(auth.WithOperator(c.UserContext(), operator))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	if isAPI(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// GetOperator devuelve el operador de la petición ("" sin login).
func GetOperator(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalOperator).(string)
	return s
}
