package repository

import (
	"context"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// CustomerRepository define el puerto de acceso a clientes (implementado sobre la API GraphQL).
type CustomerRepository interface {
	List(ctx context.Context) ([]*entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, code string, patch entity.CustomerPatch) (*entity.Customer, error)
}
