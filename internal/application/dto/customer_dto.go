package dto

import "github.com/mdaskas/customer-console/internal/domain/entity"

// CustomerForm formulario de alta de cliente (HTML y POST /api/customers).
type CustomerForm struct {
	Code              string `form:"code" json:"code" validate:"required" msg:"Code is required"`
	Name              string `form:"name" json:"name" validate:"required" msg:"Name is required"`
	Email             string `form:"email" json:"email" validate:"email_pattern" msg:"Enter a valid email address"`
	Phone             string `form:"phone" json:"phone"`
	BillingTermsCode  string `form:"billingTermsCode" json:"billingTermsCode"`
	ShippingTermsCode string `form:"shippingTermsCode" json:"shippingTermsCode"`
}

// ToEntity convierte el formulario ya validado.
func (f CustomerForm) ToEntity() *entity.Customer {
	return &entity.Customer{
		Code:              f.Code,
		Name:              f.Name,
		Email:             f.Email,
		Phone:             f.Phone,
		BillingTermsCode:  f.BillingTermsCode,
		ShippingTermsCode: f.ShippingTermsCode,
	}
}

// UpdateCustomerRequest body de PUT /api/customers/:code; solo los campos presentes cambian.
type UpdateCustomerRequest struct {
	Name              *string `json:"name" validate:"omitnil,min=1" msg:"Name is required"`
	Email             *string `json:"email" validate:"omitnil,email_pattern" msg:"Enter a valid email address"`
	Phone             *string `json:"phone"`
	BillingTermsCode  *string `json:"billingTermsCode"`
	ShippingTermsCode *string `json:"shippingTermsCode"`
}

// ToPatch convierte la petición en un patch de dominio.
func (r UpdateCustomerRequest) ToPatch() entity.CustomerPatch {
	return entity.CustomerPatch{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		BillingTermsCode:  r.BillingTermsCode,
		ShippingTermsCode: r.ShippingTermsCode,
	}
}

// CustomerResponse cliente en respuestas JSON y vistas.
type CustomerResponse struct {
	ID                string `json:"id"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	BillingTermsCode  string `json:"billingTermsCode,omitempty"`
	ShippingTermsCode string `json:"shippingTermsCode,omitempty"`
}

// CustomerListResponse respuesta de GET /api/customers.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// CustomerFormOptions opciones de los selects del formulario de alta.
type CustomerFormOptions struct {
	BillingTerms  []BillingTermResponse
	ShippingTerms []ShippingTermResponse
}

func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		BillingTermsCode:  c.BillingTermsCode,
		ShippingTermsCode: c.ShippingTermsCode,
	}
}

func ToCustomerResponses(list []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out
}
