package graphql

import (
	"context"
	"fmt"

	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
)

var _ repository.ShippingTermRepository = (*ShippingTermRepo)(nil)

// ShippingTermRepo implementación de ShippingTermRepository sobre la API GraphQL.
type ShippingTermRepo struct {
	c *Client
}

// NewShippingTermRepository construye el adaptador.
func NewShippingTermRepository(c *Client) *ShippingTermRepo {
	return &ShippingTermRepo{c: c}
}

func (r *ShippingTermRepo) List(ctx context.Context) ([]*entity.ShippingTerm, error) {
	data, err := Execute(ctx, r.c, GetShippingTerms, NoVars{})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.ShippingTerm, 0, len(data.ShippingTerms))
	for _, n := range data.ShippingTerms {
		out = append(out, &entity.ShippingTerm{Code: n.Code, Description: n.Description})
	}
	return out, nil
}

func (r *ShippingTermRepo) GetByCode(ctx context.Context, code string) (*entity.ShippingTerm, error) {
	data, err := Execute(ctx, r.c, GetShippingTerm, CodeVars{Code: code})
	if err != nil {
		return nil, err
	}
	if data.ShippingTerm == nil {
		return nil, fmt.Errorf("shipping term %s: %w", code, domain.ErrNotFound)
	}
	return &entity.ShippingTerm{Code: data.ShippingTerm.Code, Description: data.ShippingTerm.Description}, nil
}

func (r *ShippingTermRepo) Create(ctx context.Context, term *entity.ShippingTerm) (*entity.ShippingTerm, error) {
	data, err := Execute(ctx, r.c, CreateShippingTerm, CreateShippingTermVars{Input: CreateShippingTermInput{
		Code:        term.Code,
		Description: term.Description,
	}})
	if err != nil {
		return nil, err
	}
	n := data.CreateShippingTerms
	return &entity.ShippingTerm{Code: n.Code, Description: n.Description}, nil
}

func (r *ShippingTermRepo) Update(ctx context.Context, code string, patch entity.ShippingTermPatch) (*entity.ShippingTerm, error) {
	data, err := Execute(ctx, r.c, UpdateShippingTerm, UpdateShippingTermVars{
		Code:  code,
		Input: UpdateShippingTermInput{Description: patch.Description},
	})
	if err != nil {
		return nil, err
	}
	if data.UpdateShippingTerms == nil {
		return nil, fmt.Errorf("shipping term %s: %w", code, domain.ErrNotFound)
	}
	n := data.UpdateShippingTerms
	return &entity.ShippingTerm{Code: n.Code, Description: n.Description}, nil
}
