package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mdaskas/customer-console/internal/application/customers"
	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/terms"
)

// APIHandler API JSON de la consola: mismos casos de uso que las páginas, con formas de
// respuesta explícitas (dto).
type APIHandler struct {
	customers *customers.UseCase
	billing   *terms.BillingUseCase
	shipping  *terms.ShippingUseCase
}

// NewAPIHandler construye el handler.
func NewAPIHandler(c *customers.UseCase, b *terms.BillingUseCase, s *terms.ShippingUseCase) *APIHandler {
	return &APIHandler{customers: c, billing: b, shipping: s}
}

// ListCustomers godoc
// @Summary      Listar clientes
// @Description  Sin parámetros devuelve todos; con ids=a,b devuelve solo esos.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        ids  query  string  false  "ids separados por coma"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *APIHandler) ListCustomers(c *fiber.Ctx) error {
	var (
		list []dto.CustomerResponse
		err  error
	)
	if ids := c.Query("ids"); ids != "" {
		list, err = h.customers.GetByIDs(c.UserContext(), splitIDs(ids))
	} else {
		list, err = h.customers.List(c.UserContext())
	}
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(dto.CustomerListResponse{Customers: list})
}

// GetCustomer godoc
// @Summary      Obtener cliente por id
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *APIHandler) GetCustomer(c *fiber.Ctx) error {
	out, err := h.customers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerForm  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *APIHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCustomer godoc
// @Summary      Actualizar cliente por código
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                     true  "código del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{code} [put]
func (h *APIHandler) UpdateCustomer(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.customers.Update(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

// ListBillingTerms godoc
// @Summary      Listar condiciones de pago
// @Tags         billing-terms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BillingTermListResponse
// @Router       /api/billing-terms [get]
func (h *APIHandler) ListBillingTerms(c *fiber.Ctx) error {
	list, err := h.billing.List(c.UserContext())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(dto.BillingTermListResponse{BillingTerms: list})
}

// GetBillingTerm godoc
// @Summary      Obtener condición de pago
// @Tags         billing-terms
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código"
// @Success      200   {object}  dto.BillingTermResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing-terms/{code} [get]
func (h *APIHandler) GetBillingTerm(c *fiber.Ctx) error {
	out, err := h.billing.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

// CreateBillingTerm godoc
// @Summary      Crear condición de pago
// @Tags         billing-terms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillingTermRequest  true  "code, description, dueDays"
// @Success      201   {object}  dto.BillingTermResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing-terms [post]
func (h *APIHandler) CreateBillingTerm(c *fiber.Ctx) error {
	var in dto.CreateBillingTermRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.billing.Create(c.UserContext(), in.ToForm())
	if err != nil {
		return apiError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateBillingTerm godoc
// @Summary      Actualizar condición de pago por código
// @Tags         billing-terms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                        true  "código"
// @Param        body  body  dto.UpdateBillingTermRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.BillingTermResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing-terms/{code} [put]
func (h *APIHandler) UpdateBillingTerm(c *fiber.Ctx) error {
	var in dto.UpdateBillingTermRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.billing.Update(c.UserContext(), c.Params("code"), in.ToPatch())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

// ListShippingTerms godoc
// @Summary      Listar condiciones de envío
// @Tags         shipping-terms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShippingTermListResponse
// @Router       /api/shipping-terms [get]
func (h *APIHandler) ListShippingTerms(c *fiber.Ctx) error {
	list, err := h.shipping.List(c.UserContext())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(dto.ShippingTermListResponse{ShippingTerms: list})
}

// GetShippingTerm godoc
// @Summary      Obtener condición de envío
// @Tags         shipping-terms
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código"
// @Success      200   {object}  dto.ShippingTermResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipping-terms/{code} [get]
func (h *APIHandler) GetShippingTerm(c *fiber.Ctx) error {
	out, err := h.shipping.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

// CreateShippingTerm godoc
// @Summary      Crear condición de envío
// @Tags         shipping-terms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShippingTermForm  true  "code, description"
// @Success      201   {object}  dto.ShippingTermResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipping-terms [post]
func (h *APIHandler) CreateShippingTerm(c *fiber.Ctx) error {
	var in dto.ShippingTermForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.shipping.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateShippingTerm godoc
// @Summary      Actualizar condición de envío por código
// @Tags         shipping-terms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                         true  "código"
// @Param        body  body  dto.UpdateShippingTermRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ShippingTermResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipping-terms/{code} [put]
func (h *APIHandler) UpdateShippingTerm(c *fiber.Ctx) error {
	var in dto.UpdateShippingTermRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.shipping.Update(c.UserContext(), c.Params("code"), in.ToPatch())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(out)
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
