package http

import (
	"context"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/infrastructure/spreadsheet"
)

type exportFunc func(ctx context.Context, w io.Writer) error

type importFunc func(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error)

// exportFile escribe el libro en el cuerpo; las cabeceras de descarga solo se fijan si la
// exportación termina bien.
func exportFile(c *fiber.Ctx, filename string, export exportFunc) error {
	if err := export(c.UserContext(), c.Response().BodyWriter()); err != nil {
		c.Response().ResetBody()
		status, _ := statusFor(err)
		return render(c, status, "error", fiber.Map{"Title": "Export", "Message": err.Error()})
	}
	c.Set(fiber.HeaderContentType, spreadsheet.ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return nil
}

// importFile lee el archivo del campo multipart "file" y muestra el resumen.
func importFile(c *fiber.Ctx, title, back string, run importFunc) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return render(c, fiber.StatusBadRequest, "import_result", fiber.Map{
			"Title": title + " Import", "Back": back, "Error": "Select a .xlsx or .csv file",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return render(c, fiber.StatusBadRequest, "import_result", fiber.Map{
			"Title": title + " Import", "Back": back, "Error": err.Error(),
		})
	}
	defer f.Close()

	res, err := run(c.UserContext(), fh.Filename, f)
	if err != nil {
		status, _ := statusFor(err)
		return render(c, status, "import_result", fiber.Map{
			"Title": title + " Import", "Back": back, "Error": err.Error(),
		})
	}
	return render(c, fiber.StatusOK, "import_result", fiber.Map{
		"Title": title + " Import", "Back": back, "Result": res,
	})
}
