// Package terms casos de uso de condiciones de pago y de envío: listado, alta, edición en
// línea e importación/exportación.
package terms

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/editor"
	"github.com/mdaskas/customer-console/internal/application/importer"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/domain/entity"
	"github.com/mdaskas/customer-console/internal/domain/repository"
	"github.com/mdaskas/customer-console/internal/infrastructure/spreadsheet"
	"github.com/mdaskas/customer-console/pkg/logger"
)

var billingHeader = []string{"code", "description", "dueDays"}

// BillingUseCase casos de uso de condiciones de pago.
type BillingUseCase struct {
	repo repository.BillingTermRepository
	inv  repository.Invalidator
	val  *validation.Validator
	log  *logger.Logger
}

var _ editor.RowSaver = (*BillingUseCase)(nil)

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(repo repository.BillingTermRepository, inv repository.Invalidator, val *validation.Validator, log *logger.Logger) *BillingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BillingUseCase{repo: repo, inv: inv, val: val, log: log.Named("billing_terms")}
}

// List todas las condiciones de pago.
func (uc *BillingUseCase) List(ctx context.Context) ([]dto.BillingTermResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToBillingTermResponses(list), nil
}

// Get una condición de pago por código.
func (uc *BillingUseCase) Get(ctx context.Context, code string) (*dto.BillingTermResponse, error) {
	t, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	out := dto.ToBillingTermResponse(t)
	return &out, nil
}

// Create valida el formulario y, si es válido, emite una única mutación de alta e invalida el
// listado. Un formulario inválido devuelve validation.FieldErrors sin llamar a la API.
func (uc *BillingUseCase) Create(ctx context.Context, form dto.BillingTermForm) (*dto.BillingTermResponse, error) {
	if err := uc.val.Struct(form); err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, form.ToEntity())
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	out := dto.ToBillingTermResponse(created)
	return &out, nil
}

// Update emite una mutación identificada por code con los campos del patch. El listado se
// invalida tanto si la mutación tiene éxito como si falla.
func (uc *BillingUseCase) Update(ctx context.Context, code string, patch entity.BillingTermPatch) (*dto.BillingTermResponse, error) {
	req := dto.UpdateBillingTermRequest{Description: patch.Description, DueDays: patch.DueDays}
	if err := uc.val.Struct(req); err != nil {
		return nil, err
	}
	defer uc.invalidate(ctx)
	updated, err := uc.repo.Update(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	out := dto.ToBillingTermResponse(updated)
	return &out, nil
}

// ValidateRow valida los buffers de una fila en edición.
func (uc *BillingUseCase) ValidateRow(b editor.Buffers) error {
	return uc.val.Struct(dto.BillingTermRowForm{Description: b.Description, DueDays: b.DueDays})
}

// SaveRow guarda la fila en edición (descripción y días).
func (uc *BillingUseCase) SaveRow(ctx context.Context, code string, b editor.Buffers) error {
	if err := uc.ValidateRow(b); err != nil {
		return err
	}
	days, _ := strconv.Atoi(strings.TrimSpace(b.DueDays))
	desc := b.Description
	_, err := uc.Update(ctx, code, entity.BillingTermPatch{Description: &desc, DueDays: &days})
	return err
}

// ExportXLSX escribe el listado como libro XLSX.
func (uc *BillingUseCase) ExportXLSX(ctx context.Context, w io.Writer) error {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(list))
	for _, t := range list {
		rows = append(rows, []interface{}{t.Code, t.Description, t.DueDays})
	}
	return spreadsheet.WriteXLSX(w, "Billing Terms", billingHeader, rows)
}

// Import crea las condiciones de pago de un .xlsx o .csv con columnas code, description y
// dueDays. Los códigos existentes se omiten; se invalida una vez al final.
func (uc *BillingUseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
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

	res := importer.Run(ctx, uc.val, records, importer.Plan[dto.BillingTermForm]{
		Existing: codes,
		Form: func(rec spreadsheet.Record) (string, dto.BillingTermForm) {
			f := dto.BillingTermForm{Code: rec.Get("code"), Description: rec.Get("description"), DueDays: rec.Get("dueDays")}
			return f.Code, f
		},
		Create: func(ctx context.Context, f dto.BillingTermForm) error {
			_, err := uc.repo.Create(ctx, f.ToEntity())
			return err
		},
	})
	if res.Created > 0 {
		uc.invalidate(ctx)
	}
	uc.log.Info().Int("total", res.Total).Int("created", res.Created).Int("skipped", res.Skipped).Int("failed", res.Failed).Msg("importación de condiciones de pago")
	return &res, nil
}

func (uc *BillingUseCase) invalidate(ctx context.Context) {
	if err := uc.inv.Invalidate(context.WithoutCancel(ctx), entity.TypeBillingTerm); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de condiciones de pago")
	}
}
