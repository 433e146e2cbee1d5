// Package customers casos de uso de clientes: listado, detalle, alta, edición, ficha PDF e
// importación/exportación.
package customers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/importer"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
	"github.com/mdaskas/customer-console/internal/infrastructure/spreadsheet"
	"github.com/mdaskas/customer-console/pkg/logger"
)

var exportHeader = []string{"id", "code", "name", "email", "phone"}

// UseCase casos de uso de clientes.
type UseCase struct {
	customers repository.CustomerRepository
	billing   repository.BillingTermRepository
	shipping  repository.ShippingTermRepository
	inv       repository.Invalidator
	val       *validation.Validator
	pdf       CustomerPDFGenerator
	log       *logger.Logger
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	customers repository.CustomerRepository,
	billing repository.BillingTermRepository,
	shipping repository.ShippingTermRepository,
	inv repository.Invalidator,
	val *validation.Validator,
	pdf CustomerPDFGenerator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		customers: customers,
		billing:   billing,
		shipping:  shipping,
		inv:       inv,
		val:       val,
		pdf:       pdf,
		log:       log.Named("customers"),
	}
}

// List listado completo (sin paginación ni filtros).
func (uc *UseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToCustomerResponses(list), nil
}

// GetByID detalle de un cliente; ErrNotFound si la API no lo conoce.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// GetByIDs varios clientes por id.
func (uc *UseCase) GetByIDs(ctx context.Context, ids []string) ([]dto.CustomerResponse, error) {
	list, err := uc.customers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.ToCustomerResponses(list), nil
}

// Create valida el formulario y emite una única mutación con los valores validados. Si la
// validación falla devuelve validation.FieldErrors sin llamar a la API.
func (uc *UseCase) Create(ctx context.Context, form dto.CustomerForm) (*dto.CustomerResponse, error) {
	if err := uc.val.Struct(form); err != nil {
		return nil, err
	}
	created, err := uc.customers.Create(ctx, form.ToEntity())
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := dto.ToCustomerResponse(created)
	return &out, nil
}

// Update mutación identificada por code; el listado se invalida falle o no.
func (uc *UseCase) Update(ctx context.Context, code string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.val.Struct(req); err != nil {
		return nil, err
	}
	defer uc.invalidate(ctx)
	updated, err := uc.customers.Update(ctx, code, req.ToPatch())
	if err != nil {
		return nil, err
	}
	out := dto.ToCustomerResponse(updated)
	return &out, nil
}

// FormOptions carga en paralelo las condiciones de pago y de envío para los selects del
// formulario de alta. Una lista que falla se degrada a vacía.
func (uc *UseCase) FormOptions(ctx context.Context) dto.CustomerFormOptions {
	var opts dto.CustomerFormOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := uc.billing.List(gctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("opciones de condiciones de pago no disponibles")
			return nil
		}
		opts.BillingTerms = dto.ToBillingTermResponses(list)
		return nil
	})
	g.Go(func() error {
		list, err := uc.shipping.List(gctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("opciones de condiciones de envío no disponibles")
			return nil
		}
		opts.ShippingTerms = dto.ToShippingTermResponses(list)
		return nil
	})
	_ = g.Wait()
	if opts.BillingTerms == nil {
		opts.BillingTerms = []dto.BillingTermResponse{}
	}
	if opts.ShippingTerms == nil {
		opts.ShippingTerms = []dto.ShippingTermResponse{}
	}
	return opts
}

// RenderPDF genera la ficha del cliente. Las condiciones que no se puedan resolver salen vacías.
func (uc *UseCase) RenderPDF(ctx context.Context, id string) ([]byte, *dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var bt *entity.BillingTerm
	var st *entity.ShippingTerm
	g, gctx := errgroup.WithContext(ctx)
	if c.BillingTermsCode != "" {
		g.Go(func() error {
			t, err := uc.billing.GetByCode(gctx, c.BillingTermsCode)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			bt = t
			return nil
		})
	}
	if c.ShippingTermsCode != "" {
		g.Go(func() error {
			t, err := uc.shipping.GetByCode(gctx, c.ShippingTermsCode)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			st = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out, err := uc.pdf.GenerateCustomerPDF(ctx, c, bt, st)
	if err != nil {
		return nil, nil, fmt.Errorf("ficha del cliente %s: %w", c.Code, err)
	}
	resp := dto.ToCustomerResponse(c)
	return out, &resp, nil
}

// ExportXLSX escribe el listado de clientes como libro XLSX.
func (uc *UseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	list, err := uc.customers.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(list))
	for _, c := range list {
		rows = append(rows, []interface{}{c.ID, c.Code, c.Name, c.Email, c.Phone})
	}
	return spreadsheet.WriteXLSX(w, "Customers", exportHeader, rows)
}

// Import crea clientes desde un .xlsx o .csv con columnas code, name, email, phone,
// billingTermsCode y shippingTermsCode.
func (uc *UseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	records, err := spreadsheet.ReadRecords(filename, r)
	if err != nil {
		return nil, err
	}
	existing, err := uc.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar clientes existentes: %w", err)
	}
	codes := make(map[string]bool, len(existing))
	for _, c := range existing {
		codes[c.Code] = true
	}

	res := importer.Run(ctx, uc.val, records, importer.Plan[dto.CustomerForm]{
		Existing: codes,
		Form: func(rec spreadsheet.Record) (string, dto.CustomerForm) {
			f := dto.CustomerForm{
				Code:              rec.Get("code"),
				Name:              rec.Get("name"),
				Email:             rec.Get("email"),
				Phone:             rec.Get("phone"),
				BillingTermsCode:  rec.Get("billingTermsCode"),
				ShippingTermsCode: rec.Get("shippingTermsCode"),
			}
			return f.Code, f
		},
		Create: func(ctx context.Context, f dto.CustomerForm) error {
			_, err := uc.customers.Create(ctx, f.ToEntity())
			return err
		},
	})
	if res.Created > 0 {
		uc.invalidate(ctx)
	}
	uc.log.Info().Int("total", res.Total).Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("importación de clientes")
	return &res, nil
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if err := uc.inv.Invalidate(context.WithoutCancel(ctx), entity.TypeCustomer); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de clientes")
	}
}
