package customers

import (
	"context"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// CustomerPDFGenerator genera la ficha de un cliente. billing y shipping pueden ser nil.
type CustomerPDFGenerator interface {
	GenerateCustomerPDF(ctx context.Context, customer *entity.Customer, billing *entity.BillingTerm, shipping *entity.ShippingTerm) ([]byte, error)
}
