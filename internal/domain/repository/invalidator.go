package repository

import (
	"context"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// Invalidator marca como obsoletas las lecturas cacheadas de uno o más tipos.
// Tras una mutación, la siguiente lectura del listado vuelve a consultar la API.
type Invalidator interface {
	Invalidate(ctx context.Context, types ...entity.Type) error
}
