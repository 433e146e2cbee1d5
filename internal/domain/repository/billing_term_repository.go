package repository

import (
	"context"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// BillingTermRepository define el puerto de acceso a condiciones de pago.
type BillingTermRepository interface {
	List(ctx context.Context) ([]*entity.BillingTerm, error)
	GetByCode(ctx context.Context, code string) (*entity.BillingTerm, error)
	Create(ctx context.Context, term *entity.BillingTerm) (*entity.BillingTerm, error)
	Update(ctx context.Context, code string, patch entity.BillingTermPatch) (*entity.BillingTerm, error)
}
