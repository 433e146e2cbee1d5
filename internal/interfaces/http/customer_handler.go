package http

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/customers"
	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain"
)

// CustomerHandler páginas de clientes: listado, detalle, alta, ficha PDF e import/export.
type CustomerHandler struct {
	uc *customers.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		status, _ := statusFor(err)
		return render(c, status, "customers/list", fiber.Map{"Title": "Customers", "Error": err.Error()})
	}
	return render(c, fiber.StatusOK, "customers/list", fiber.Map{
		"Title":     "Customers",
		"Customers": list,
		"Notice":    c.Query("created"),
	})
}

// New GET /customers/new
func (h *CustomerHandler) New(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, dto.CustomerForm{}, nil, "")
}

// Create POST /customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var form dto.CustomerForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, form, nil, "invalid form body")
	}
	created, err := h.uc.Create(c.UserContext(), form)
	if err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			return h.renderForm(c, fiber.StatusUnprocessableEntity, form, fe, "")
		}
		return h.renderForm(c, formStatus(err), form, nil, err.Error())
	}
	return c.Redirect("/customers?created="+url.QueryEscape(created.Code), fiber.StatusSeeOther)
}

func (h *CustomerHandler) renderForm(c *fiber.Ctx, status int, form dto.CustomerForm, fe validation.FieldErrors, formErr string) error {
	opts := h.uc.FormOptions(c.UserContext())
	return render(c, status, "customers/new", fiber.Map{
		"Title":         "Create Customer",
		"Form":          form,
		"FieldErrors":   fe,
		"FormError":     formErr,
		"BillingTerms":  opts.BillingTerms,
		"ShippingTerms": opts.ShippingTerms,
	})
}

// Detail GET /customers/:id
func (h *CustomerHandler) Detail(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		status, _ := statusFor(err)
		msg := err.Error()
		if errors.Is(err, domain.ErrNotFound) {
			msg = "Customer not found"
		}
		return render(c, status, "error", fiber.Map{"Title": "Customer Detail", "Message": msg})
	}
	return render(c, fiber.StatusOK, "customers/detail", fiber.Map{
		"Title":    "Customer Detail",
		"Customer": customer,
	})
}

// PDF GET /customers/:id/pdf
func (h *CustomerHandler) PDF(c *fiber.Ctx) error {
	out, customer, err := h.uc.RenderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		status, _ := statusFor(err)
		return render(c, status, "error", fiber.Map{"Title": "Customer Sheet", "Message": err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="customer-%s.pdf"`, customer.Code))
	return c.Send(out)
}

// Export GET /customers/export.xlsx
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	return exportFile(c, "customers.xlsx", h.uc.ExportXLSX)
}

// Import POST /customers/import (multipart, campo file)
func (h *CustomerHandler) Import(c *fiber.Ctx) error {
	return importFile(c, "Customers", "/customers", h.uc.Import)
}
