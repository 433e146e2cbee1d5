package repository

import (
	"context"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// ShippingTermRepository define el puerto de acceso a condiciones de envío.
type ShippingTermRepository interface {
	List(ctx context.Context) ([]*entity.ShippingTerm, error)
	GetByCode(ctx context.Context, code string) (*entity.ShippingTerm, error)
	Create(ctx context.Context, term *entity.ShippingTerm) (*entity.ShippingTerm, error)
	Update(ctx context.Context, code string, patch entity.ShippingTermPatch) (*entity.ShippingTerm, error)
}
