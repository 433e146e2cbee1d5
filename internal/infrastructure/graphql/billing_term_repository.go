package graphql

import (
	"context"
	"fmt"

	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
)

var _ repository.BillingTermRepository = (*BillingTermRepo)(nil)

// BillingTermRepo implementación de BillingTermRepository sobre la API GraphQL.
type BillingTermRepo struct {
	c *Client
}

// NewBillingTermRepository construye el adaptador.
func NewBillingTermRepository(c *Client) *BillingTermRepo {
	return &BillingTermRepo{c: c}
}

func (r *BillingTermRepo) List(ctx context.Context) ([]*entity.BillingTerm, error) {
	data, err := Execute(ctx, r.c, GetBillingTerms, NoVars{})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.BillingTerm, 0, len(data.BillingTerms))
	for _, n := range data.BillingTerms {
		out = append(out, toBillingTerm(n))
	}
	return out, nil
}

func (r *BillingTermRepo) GetByCode(ctx context.Context, code string) (*entity.BillingTerm, error) {
	data, err := Execute(ctx, r.c, GetBillingTerm, CodeVars{Code: code})
	if err != nil {
		return nil, err
	}
	if data.BillingTerm == nil {
		return nil, fmt.Errorf("billing term %s: %w", code, domain.ErrNotFound)
	}
	return toBillingTerm(*data.BillingTerm), nil
}

func (r *BillingTermRepo) Create(ctx context.Context, term *entity.BillingTerm) (*entity.BillingTerm, error) {
	data, err := Execute(ctx, r.c, CreateBillingTerm, CreateBillingTermVars{Input: CreateBillingTermInput{
		Code:        term.Code,
		Description: term.Description,
		DueDays:     term.DueDays,
	}})
	if err != nil {
		return nil, err
	}
	return toBillingTerm(data.CreateBillingTerms), nil
}

func (r *BillingTermRepo) Update(ctx context.Context, code string, patch entity.BillingTermPatch) (*entity.BillingTerm, error) {
	data, err := Execute(ctx, r.c, UpdateBillingTerm, UpdateBillingTermVars{
		Code:  code,
		Input: UpdateBillingTermInput{Description: patch.Description, DueDays: patch.DueDays},
	})
	if err != nil {
		return nil, err
	}
	if data.UpdateBillingTerms == nil {
		return nil, fmt.Errorf("billing term %s: %w", code, domain.ErrNotFound)
	}
	return toBillingTerm(*data.UpdateBillingTerms), nil
}

func toBillingTerm(n BillingTermNode) *entity.BillingTerm {
	return &entity.BillingTerm{Code: n.Code, Description: n.Description, DueDays: n.DueDays}
}
