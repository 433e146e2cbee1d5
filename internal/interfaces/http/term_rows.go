package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain"
)

// termRow fila de un listado de condiciones tal como la pinta la vista.
type termRow struct {
	Code        string
	Description string
	DueDays     int
	Editing     bool
	Saving      bool
	Buffers     editor.Buffers
	Error       string
	FieldErrors validation.FieldErrors
}

// withEditorState completa cada fila con el estado del editor de la sesión.
func withEditorState(rows []termRow, ed *editor.Editor) []termRow {
	for i := range rows {
		switch st := ed.State(rows[i].Code).(type) {
		case editor.Editing:
			rows[i].Editing = true
			rows[i].Buffers = st.Buffers
			if st.Err != nil {
				if fe, ok := validation.AsFieldErrors(st.Err); ok {
					rows[i].FieldErrors = fe
				} else {
					rows[i].Error = st.Err.Error()
				}
			}
		case editor.Saving:
			rows[i].Saving = true
			rows[i].Buffers = st.Buffers
		}
	}
	return rows
}

// rowBuffers lee los buffers de la fila del formulario de guardado.
func rowBuffers(c *fiber.Ctx) editor.Buffers {
	return editor.Buffers{Description: c.FormValue("description"), DueDays: c.FormValue("dueDays")}
}

// confirmKey tecla con la que se envió el guardado; el botón de confirmar no envía ninguna.
func confirmKey(c *fiber.Ctx) string {
	if c.FormValue("key") == editor.KeyEnter {
		return editor.KeyEnter
	}
	return ""
}

// saveRow Enter o botón de confirmar: ambos terminan en Confirm.
func saveRow(c *fiber.Ctx, ed *editor.Editor, code string) error {
	b := rowBuffers(c)
	if confirmKey(c) == editor.KeyEnter {
		return ed.HandleKey(c.UserContext(), code, editor.KeyEnter, b)
	}
	return ed.Confirm(c.UserContext(), code, b)
}

// cancelRow Escape o botón de cancelar.
func cancelRow(c *fiber.Ctx, ed *editor.Editor, code string) error {
	if c.FormValue("key") == editor.KeyEscape {
		return ed.HandleKey(c.UserContext(), code, editor.KeyEscape, editor.Buffers{})
	}
	return ed.Cancel(code)
}

// rowErrorStatus status con el que se vuelve a pintar el listado tras un guardado fallido.
// Una fila que ya no está en edición (sesión expirada) solo redirige.
func rowErrorStatus(err error) (int, bool) {
	if errors.Is(err, domain.ErrNotEditing) {
		return 0, false
	}
	return formStatus(err), true
}

func rowAnchor(base, code string) string {
	return base + "#row-" + url.PathEscape(code)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
