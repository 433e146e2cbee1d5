package terms

import (
	"context"
	"fmt"
	"io"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/importer"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
	"github.com/mdaskas/customer-console/internal/infrastructure/spreadsheet"
	"github.com/mdaskas/customer-console/pkg/logger"
)

var shippingHeader = []string{"code", "description"}

// ShippingUseCase casos de uso de condiciones de envío.
type ShippingUseCase struct {
	repo repository.ShippingTermRepository
	inv  repository.Invalidator
	val  *validation.Validator
	log  *logger.Logger
}

var _ editor.RowSaver = (*ShippingUseCase)(nil)

func NewShippingUseCase(repo repository.ShippingTermRepository, inv repository.Invalidator, val *validation.Validator, log *logger.Logger) *ShippingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ShippingUseCase{repo: repo, inv: inv, val: val, log: log.Named("shipping_terms")}
}

func (uc *ShippingUseCase) List(ctx context.Context) ([]dto.ShippingTermResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToShippingTermResponses(list), nil
}

func (uc *ShippingUseCase) Get(ctx context.Context, code string) (*dto.ShippingTermResponse, error) {
	t, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	out := dto.ToShippingTermResponse(t)
	return &out, nil
}

// Create mismo contrato que BillingUseCase.Create.
func (uc *ShippingUseCase) Create(ctx context.Context, form dto.ShippingTermForm) (*dto.ShippingTermResponse, error) {
	if err := uc.val.Struct(form); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, form.ToEntity())
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := dto.ToShippingTermResponse(created)
	return &out, nil
}

// Update invalida el listado con independencia del resultado.
func (uc *ShippingUseCase) Update(ctx context.Context, code string, patch entity.ShippingTermPatch) (*dto.ShippingTermResponse, error) {
	if err := uc.val.Struct(dto.UpdateShippingTermRequest{Description: patch.Description}); err != nil {
		return nil, err
	}
	defer uc.invalidate(ctx)
	updated, err := uc.repo.Update(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	out := dto.ToShippingTermResponse(updated)
	return &out, nil
}

func (uc *ShippingUseCase) ValidateRow(b editor.Buffers) error {
	return uc.val.Struct(dto.ShippingTermRowForm{Description: b.Description})
}

// SaveRow envía solo la descripción: {code, input:{description}}.
func (uc *ShippingUseCase) SaveRow(ctx context.Context, code string, b editor.Buffers) error {
	if err := uc.ValidateRow(b); err != nil {
		return err
	}
	desc := b.Description
	_, err := uc.Update(ctx, code, entity.ShippingTermPatch{Description: &desc})
	return err
}

func (uc *ShippingUseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(list))
	for _, t := range list {
		rows = append(rows, []interface{}{t.Code, t.Description})
	}
	return spreadsheet.WriteXLSX(w, "Shipping Terms", shippingHeader, rows)
}

func (uc *ShippingUseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	records, err := spreadsheet.ReadRecords(filename, r)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar condiciones existentes: %w", err)
	}
	codes := make(map[string]bool, len(existing))
	for _, t := range existing {
		codes[t.Code] = true
	}

	res := importer.Run(ctx, uc.val, records, importer.Plan[dto.ShippingTermForm]{
		Existing: codes,
		Form: func(rec spreadsheet.Record) (string, dto.ShippingTermForm) {
			f := dto.ShippingTermForm{Code: rec.Get("code"), Description: rec.Get("description")}
			return f.Code, f
		},
		Create: func(ctx context.Context, f dto.ShippingTermForm) error {
			_, err := uc.repo.Create(ctx, f.ToEntity())
			return err
		},
	})
	if res.Created > 0 {
		uc.invalidate(ctx)
	}
	uc.log.Info().Int("total", res.Total).Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("importación de condiciones de envío")
	return &res, nil
}

func (uc *ShippingUseCase) invalidate(ctx context.Context) {
	if err := uc.inv.Invalidate(context.WithoutCancel(ctx), entity.TypeShippingTerm); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de condiciones de envío")
	}
}
