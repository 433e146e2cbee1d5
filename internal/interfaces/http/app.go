package http

import (
	"embed"
	"errors"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/mdaskas/customer-console/pkg/logger"
)

//go:embed views
var viewsFS embed.FS

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name string
	Log  *logger.Logger
}

// NewApp construye la aplicación Fiber con las vistas embebidas, recover y log de peticiones.
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("vistas embebidas: " + err.Error())
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		Views:        engine,
		ViewsLayout:  "layouts/main",
		Immutable:    true,
		// Los códigos de término pueden llevar espacios: c.Params devuelve el valor ya decodificado.
		UnescapePath: true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}

// errorHandler errores no manejados por los handlers: JSON en /api, página de error en el resto.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
		if isAPI(c) {
			return c.Status(status).JSON(errorBody(status, err))
		}
		return c.Status(status).Render("error", fiber.Map{
			"Title":   "Error",
			"Message": err.Error(),
		})
	}
}
