package http

import (
	"github.com/gofiber/fiber/v2"
)

// render renderiza una página con el layout principal; añade el operador para la barra
// de navegación.
func render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Operator"] = GetOperator(c)
	return c.Status(status).Render(view, data)
}

// AboutPage GET /about
func AboutPage(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "about", fiber.Map{"Title": "About"})
}
