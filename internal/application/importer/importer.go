// Package importer recorre las filas de una hoja importada y crea los registros nuevos.
package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mdaskas/customer-console/internal/application/dto"
	"github.com/mdaskas/customer-console/internal/application/validation"
	"github.com/mdaskas/customer-console/internal/infrastructure/spreadsheet"
)

// Plan describe cómo importar un tipo de registro a partir de su formulario F.
type Plan[F any] struct {
	// Existing códigos ya presentes en la API; esas filas se omiten.
	Existing map[string]bool
	// Form arma el formulario a partir de la fila y devuelve su código.
	Form func(rec spreadsheet.Record) (code string, form F)
	// Create emite la mutación de alta para un formulario válido.
	Create func(ctx context.Context, form F) error
}

// Run valida cada fila con el mismo esquema que el formulario de alta y crea las válidas,
// una mutación por fila. Los códigos repetidos dentro del archivo cuentan como omitidos.
func Run[F any](ctx context.Context, val *validation.Validator, records []spreadsheet.Record, p Plan[F]) dto.ImportResult {
	res := dto.ImportResult{Total: len(records)}
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			res.Failed++
			res.Messages = append(res.Messages, fmt.Sprintf("Row %d: %s", rec.Line, err))
			continue
		}
		code, form := p.Form(rec)
		if err := val.Struct(form); err != nil {
			res.Failed++
			res.Messages = append(res.Messages, fmt.Sprintf("Row %d: %s", rec.Line, describe(err)))
			continue
		}
		if p.Existing[code] || seen[code] {
			res.Skipped++
			res.Messages = append(res.Messages, fmt.Sprintf("Row %d: %s already exists", rec.Line, code))
			continue
		}
		seen[code] = true
		if err := p.Create(ctx, form); err != nil {
			res.Failed++
			res.Messages = append(res.Messages, fmt.Sprintf("Row %d: %s", rec.Line, err))
			continue
		}
		res.Created++
	}
	return res
}

func describe(err error) string {
	fe, ok := validation.AsFieldErrors(err)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(fe))
	for _, m := range fe {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, ", ")
}
