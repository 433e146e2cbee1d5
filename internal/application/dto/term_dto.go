package dto

import (
	"strconv"
	"strings"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// BillingTermForm formulario de alta de condición de pago. DueDays llega como texto desde el
// formulario HTML y se valida como entero positivo antes de convertirlo.
type BillingTermForm struct {
	Code        string `form:"code" json:"code" validate:"required" msg:"Code is required"`
	Description string `form:"description" json:"description" validate:"required" msg:"Description is required"`
	DueDays     string `form:"dueDays" json:"dueDays" validate:"positive_int" msg:"Due days must be a positive integer"`
}

// DefaultBillingTermForm valores con los que se reinicia el formulario tras un alta.
func DefaultBillingTermForm() BillingTermForm {
	return BillingTermForm{}
}

// ToEntity convierte el formulario ya validado.
func (f BillingTermForm) ToEntity() *entity.BillingTerm {
	days, _ := strconv.Atoi(strings.TrimSpace(f.DueDays))
	return &entity.BillingTerm{Code: f.Code, Description: f.Description, DueDays: days}
}

// CreateBillingTermRequest body JSON de POST /api/billing-terms.
type CreateBillingTermRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DueDays     int    `json:"dueDays"`
}

// ToForm lleva la petición JSON al mismo esquema que el formulario HTML.
func (r CreateBillingTermRequest) ToForm() BillingTermForm {
	return BillingTermForm{Code: r.Code, Description: r.Description, DueDays: strconv.Itoa(r.DueDays)}
}

// BillingTermRowForm buffers de la fila en edición.
type BillingTermRowForm struct {
	Description string `form:"description" validate:"required" msg:"Description is required"`
	DueDays     string `form:"dueDays" validate:"positive_int" msg:"Due days must be a positive integer"`
}

// UpdateBillingTermRequest body de PUT /api/billing-terms/:code.
type UpdateBillingTermRequest struct {
	Description *string `json:"description" validate:"omitnil,min=1" msg:"Description is required"`
	DueDays     *int    `json:"dueDays" validate:"omitnil,gt=0,lte=2147483647" msg:"Due days must be a positive integer"`
}

func (r UpdateBillingTermRequest) ToPatch() entity.BillingTermPatch {
	return entity.BillingTermPatch{Description: r.Description, DueDays: r.DueDays}
}

// BillingTermResponse condición de pago en respuestas JSON y vistas.
type BillingTermResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	DueDays     int    `json:"dueDays"`
}

type BillingTermListResponse struct {
	BillingTerms []BillingTermResponse `json:"billingTerms"`
}

func ToBillingTermResponse(t *entity.BillingTerm) BillingTermResponse {
	return BillingTermResponse{Code: t.Code, Description: t.Description, DueDays: t.DueDays}
}

func ToBillingTermResponses(list []*entity.BillingTerm) []BillingTermResponse {
	out := make([]BillingTermResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToBillingTermResponse(t))
	}
	return out
}

// ShippingTermForm formulario de alta de condición de envío.
type ShippingTermForm struct {
	Code        string `form:"code" json:"code" validate:"required" msg:"Code is required"`
	Description string `form:"description" json:"description" validate:"required" msg:"Description is required"`
}

func (f ShippingTermForm) ToEntity() *entity.ShippingTerm {
	return &entity.ShippingTerm{Code: f.Code, Description: f.Description}
}

// ShippingTermRowForm buffers de la fila en edición.
type ShippingTermRowForm struct {
	Description string `form:"description" validate:"required" msg:"Description is required"`
}

// UpdateShippingTermRequest body de PUT /api/shipping-terms/:code.
type UpdateShippingTermRequest struct {
	Description *string `json:"description" validate:"omitnil,min=1" msg:"Description is required"`
}

func (r UpdateShippingTermRequest) ToPatch() entity.ShippingTermPatch {
	return entity.ShippingTermPatch{Description: r.Description}
}

type ShippingTermResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ShippingTermListResponse struct {
	ShippingTerms []ShippingTermResponse `json:"shippingTerms"`
}

func ToShippingTermResponse(t *entity.ShippingTerm) ShippingTermResponse {
	return ShippingTermResponse{Code: t.Code, Description: t.Description}
}

func ToShippingTermResponses(list []*entity.ShippingTerm) []ShippingTermResponse {
	out := make([]ShippingTermResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToShippingTermResponse(t))
	}
	return out
}
