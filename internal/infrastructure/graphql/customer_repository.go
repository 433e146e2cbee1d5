package graphql

import (
	"context"
	"fmt"

	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre la API GraphQL.
type CustomerRepo struct {
	c *Client
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(c *Client) *CustomerRepo {
	return &CustomerRepo{c: c}
}

// List devuelve la colección completa (sin paginación).
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	data, err := Execute(ctx, r.c, GetCustomersForListing, NoVars{})
	if err != nil {
		return nil, err
	}
	return toCustomers(data.Customers), nil
}

// GetByID obtiene un cliente por el ID asignado por el servidor.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	data, err := Execute(ctx, r.c, GetCustomerByID, IDVars{ID: id})
	if err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return toCustomer(*data.Customer), nil
}

// GetByIDs obtiene varios clientes en una sola operación.
func (r *CustomerRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return []*entity.Customer{}, nil
	}
	data, err := Execute(ctx, r.c, GetCustomersByIDs, IDsVars{IDs: ids})
	if err != nil {
		return nil, err
	}
	return toCustomers(data.Customers), nil
}

// Create emite CreateCustomer con el registro completo.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	data, err := Execute(ctx, r.c, CreateCustomer, CreateCustomerVars{Input: CreateCustomerInput{
		Code:              customer.Code,
		Name:              customer.Name,
		Email:             customer.Email,
		Phone:             customer.Phone,
		BillingTermsCode:  customer.BillingTermsCode,
		ShippingTermsCode: customer.ShippingTermsCode,
	}})
	if err != nil {
		return nil, err
	}
	return toCustomer(data.CreateCustomer), nil
}

// Update emite UpdateCustomer dirigido por code.
func (r *CustomerRepo) Update(ctx context.Context, code string, patch entity.CustomerPatch) (*entity.Customer, error) {
	data, err := Execute(ctx, r.c, UpdateCustomer, UpdateCustomerVars{
		Code: code,
		Input: UpdateCustomerInput{
			Name:              patch.Name,
			Email:             patch.Email,
			Phone:             patch.Phone,
			BillingTermsCode:  patch.BillingTermsCode,
			ShippingTermsCode: patch.ShippingTermsCode,
		},
	})
	if err != nil {
		return nil, err
	}
	if data.UpdateCustomer == nil {
		return nil, fmt.Errorf("customer %s: %w", code, domain.ErrNotFound)
	}
	return toCustomer(*data.UpdateCustomer), nil
}

func toCustomer(n CustomerNode) *entity.Customer {
	return &entity.Customer{
		ID:                n.ID,
		Code:              n.Code,
		Name:              n.Name,
		Email:             n.Email,
		Phone:             n.Phone,
		BillingTermsCode:  n.BillingTermsCode,
		ShippingTermsCode: n.ShippingTermsCode,
	}
}

func toCustomers(nodes []CustomerNode) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toCustomer(n))
	}
	return out
}
