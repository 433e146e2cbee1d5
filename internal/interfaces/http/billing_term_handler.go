package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/terms"
	"github.com/mdaskas/customer-console/internal/application/validation"
)

const billingBase = "/billing-terms"

// BillingTermHandler página de condiciones de pago: listado, alta y edición en línea.
type BillingTermHandler struct {
	uc       *terms.BillingUseCase
	sessions *SessionStore
}

// NewBillingTermHandler construye el handler.
func NewBillingTermHandler(uc *terms.BillingUseCase, sessions *SessionStore) *BillingTermHandler {
	return &BillingTermHandler{uc: uc, sessions: sessions}
}

type billingPage struct {
	status      int
	form        dto.BillingTermForm
	fieldErrors validation.FieldErrors
	formError   string
}

// List GET /billing-terms
func (h *BillingTermHandler) List(c *fiber.Ctx) error {
	return h.render(c, billingPage{status: fiber.StatusOK, form: dto.DefaultBillingTermForm()})
}

// Create POST /billing-terms
func (h *BillingTermHandler) Create(c *fiber.Ctx) error {
	var form dto.BillingTermForm
	if err := c.BodyParser(&form); err != nil {
		return h.render(c, billingPage{status: fiber.StatusBadRequest, form: form, formError: "invalid form body"})
	}
	created, err := h.uc.Create(c.UserContext(), form)
	if err != nil {
		page := billingPage{status: formStatus(err), form: form}
		if fe, ok := validation.AsFieldErrors(err); ok {
			page.fieldErrors = fe
		} else {
			page.formError = err.Error()
		}
		return h.render(c, page)
	}
	return c.Redirect(billingBase+"?created="+url.QueryEscape(created.Code), fiber.StatusSeeOther)
}

// Edit POST /billing-terms/:code/edit
func (h *BillingTermHandler) Edit(c *fiber.Ctx) error {
	code := c.Params("code")
	term, err := h.uc.Get(c.UserContext(), code)
	if err != nil {
		return h.render(c, billingPage{status: formStatus(err), formError: err.Error()})
	}
	ed := h.sessions.Editor(c, PageBillingTerms)
	if err := ed.Begin(code, editor.Buffers{Description: term.Description, DueDays: itoa(term.DueDays)}); err != nil {
		return h.render(c, billingPage{status: formStatus(err), formError: err.Error()})
	}
	return c.Redirect(rowAnchor(billingBase, code), fiber.StatusSeeOther)
}

// Save POST /billing-terms/:code/save (botón de confirmar o key=Enter)
func (h *BillingTermHandler) Save(c *fiber.Ctx) error {
	code := c.Params("code")
	ed := h.sessions.Editor(c, PageBillingTerms)
	if err := saveRow(c, ed, code); err != nil {
		if status, ok := rowErrorStatus(err); ok {
			return h.render(c, billingPage{status: status})
		}
	}
	return c.Redirect(rowAnchor(billingBase, code), fiber.StatusSeeOther)
}

// Cancel POST /billing-terms/:code/cancel (botón de cancelar o key=Escape)
func (h *BillingTermHandler) Cancel(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := cancelRow(c, h.sessions.Editor(c, PageBillingTerms), code); err != nil {
		return h.render(c, billingPage{status: formStatus(err), formError: err.Error()})
	}
	return c.Redirect(rowAnchor(billingBase, code), fiber.StatusSeeOther)
}

// Export GET /billing-terms/export.xlsx
func (h *BillingTermHandler) Export(c *fiber.Ctx) error {
	return exportFile(c, "billing-terms.xlsx", h.uc.ExportXLSX)
}

// Import POST /billing-terms/import
func (h *BillingTermHandler) Import(c *fiber.Ctx) error {
	return importFile(c, "Billing Terms", billingBase, h.uc.Import)
}

func (h *BillingTermHandler) render(c *fiber.Ctx, p billingPage) error {
	data := fiber.Map{
		"Title":       "Billing Terms",
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
		return render(c, p.status, "billing_terms/list", data)
	}
	rows := make([]termRow, 0, len(list))
	for _, t := range list {
		rows = append(rows, termRow{Code: t.Code, Description: t.Description, DueDays: t.DueDays})
	}
	data["Rows"] = withEditorState(rows, h.sessions.Editor(c, PageBillingTerms))
	return render(c, p.status, "billing_terms/list", data)
}
