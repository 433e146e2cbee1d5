package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/auth"
	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/validation"
)

// AuthHandler login/logout del operador.
type AuthHandler struct {
	uc  *auth.UseCase
	val *validation.Validator
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, val *validation.Validator) *AuthHandler {
	return &AuthHandler{uc: uc, val: val}
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if !h.uc.Enabled() {
		return c.Redirect("/customers", fiber.StatusSeeOther)
	}
	return render(c, fiber.StatusOK, "login", fiber.Map{"Title": "Sign in", "Username": ""})
}

// Login POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	_ = c.BodyParser(&in)
	if err := h.val.Struct(in); err != nil {
		fe, _ := validation.AsFieldErrors(err)
		return render(c, fiber.StatusUnprocessableEntity, "login", fiber.Map{
			"Title": "Sign in", "Username": in.Username, "FieldErrors": fe,
		})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return render(c, fiber.StatusUnauthorized, "login", fiber.Map{
			"Title": "Sign in", "Username": in.Username, "FormError": "Invalid username or password",
		})
	}
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.uc.SessionTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/customers", fiber.StatusSeeOther)
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(authCookie)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// APILogin godoc
// @Summary      Login del operador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginForm  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) APILogin(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.val.Struct(in); err != nil {
		return apiError(c, err)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	return c.JSON(out)
}
