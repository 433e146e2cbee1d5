package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/terms"
	"github.com/mdaskas/customer-console/internal/application/validation"
)

const shippingBase = "/shipping-terms"

// ShippingTermHandler página de condiciones de envío: listado, alta y edición en línea.
type ShippingTermHandler struct {
	uc       *terms.ShippingUseCase
	sessions *SessionStore
}

// NewShippingTermHandler construye el handler.
func NewShippingTermHandler(uc *terms.ShippingUseCase, sessions *SessionStore) *ShippingTermHandler {
	return &ShippingTermHandler{uc: uc, sessions: sessions}
}

type shippingPage struct {
	status      int
	form        dto.ShippingTermForm
	fieldErrors validation.FieldErrors
	formError   string
}

// List GET /shipping-terms
func (h *ShippingTermHandler) List(c *fiber.Ctx) error {
	return h.render(c, shippingPage{status: fiber.StatusOK, form: dto.ShippingTermForm{}})
}

// Create POST /shipping-terms
func (h *ShippingTermHandler) Create(c *fiber.Ctx) error {
	var form dto.ShippingTermForm
	if err := c.BodyParser(&form); err != nil {
		return h.render(c, shippingPage{status: fiber.StatusBadRequest, form: form, formError: "invalid form body"})
	}
	created, err := h.uc.Create(c.UserContext(), form)
	if err != nil {
		page := shippingPage{status: formStatus(err), form: form}
		if fe, ok := validation.AsFieldErrors(err); ok {
			page.fieldErrors = fe
		} else {
			page.formError = err.Error()
		}
		return h.render(c, page)
	}
	return c.Redirect(shippingBase+"?created="+url.QueryEscape(created.Code), fiber.StatusSeeOther)
}

// Edit POST /shipping-terms/:code/edit
func (h *ShippingTermHandler) Edit(c *fiber.Ctx) error {
	code := c.Params("code")
	term, err := h.uc.Get(c.UserContext(), code)
	if err != nil {
		return h.render(c, shippingPage{status: formStatus(err), formError: err.Error()})
	}
	ed := h.sessions.Editor(c, PageShippingTerms)
	if err := ed.Begin(code, editor.Buffers{Description: term.Description}); err != nil {
		return h.render(c, shippingPage{status: formStatus(err), formError: err.Error()})
	}
	return c.Redirect(rowAnchor(shippingBase, code), fiber.StatusSeeOther)
}

// Save POST /shipping-terms/:code/save (botón de confirmar o key=Enter)
func (h *ShippingTermHandler) Save(c *fiber.Ctx) error {
	code := c.Params("code")
	ed := h.sessions.Editor(c, PageShippingTerms)
	if err := saveRow(c, ed, code); err != nil {
		if status, ok := rowErrorStatus(err); ok {
			return h.render(c, shippingPage{status: status})
		}
	}
	return c.Redirect(rowAnchor(shippingBase, code), fiber.StatusSeeOther)
}

// Cancel POST /shipping-terms/:code/cancel (botón de cancelar o key=Escape)
func (h *ShippingTermHandler) Cancel(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := cancelRow(c, h.sessions.Editor(c, PageShippingTerms), code); err != nil {
		return h.render(c, shippingPage{status: formStatus(err), formError: err.Error()})
	}
	return c.Redirect(rowAnchor(shippingBase, code), fiber.StatusSeeOther)
}

// Export GET /shipping-terms/export.xlsx
func (h *ShippingTermHandler) Export(c *fiber.Ctx) error {
	return exportFile(c, "shipping-terms.xlsx", h.uc.ExportXLSX)
}

// Import POST /shipping-terms/import
func (h *ShippingTermHandler) Import(c *fiber.Ctx) error {
	return importFile(c, "Shipping Terms", shippingBase, h.uc.Import)
}

func (h *ShippingTermHandler) render(c *fiber.Ctx, p shippingPage) error {
	data := fiber.Map{
		"Title":       "Shipping Terms",
		"Form":        p.form,
		"FieldErrors": p.fieldErrors,
		"FormError":   p.formError,
		"Notice":      c.Query("created"),
	}
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		data["Error"] = err.Error()
		if p.status < fiber.StatusBadRequest {
			p.status, _ = statusFor(err)
		}
		return render(c, p.status, "shipping_terms/list", data)
	}
	rows := make([]termRow, 0, len(list))
	for _, t := range list {
		rows = append(rows, termRow{Code: t.Code, Description: t.Description})
	}
	data["Rows"] = withEditorState(rows, h.sessions.Editor(c, PageShippingTerms))
	return render(c, p.status, "shipping_terms/list", data)
}
