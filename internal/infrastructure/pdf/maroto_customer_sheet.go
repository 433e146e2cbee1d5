// Package pdf genera la ficha de cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código + Nombre           │  "CUSTOMER SHEET"       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: Email / Teléfono                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONDICIONES: Pago (código, descripción, días) / Envío       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCustomerSheet genera la ficha de cliente con Maroto v2.
type MarotoCustomerSheet struct {
	author string
}

// NewMarotoCustomerSheet construye el generador; author se graba en los metadatos del PDF.
func NewMarotoCustomerSheet(author string) *MarotoCustomerSheet {
	return &MarotoCustomerSheet{author: author}
}

// GenerateCustomerPDF genera el PDF y devuelve sus bytes. billing y shipping pueden ser nil
// si el cliente no tiene condición asignada o no se pudo resolver.
func (g *MarotoCustomerSheet) GenerateCustomerPDF(
	_ context.Context,
	customer *entity.Customer,
	billing *entity.BillingTerm,
	shipping *entity.ShippingTerm,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Customer "+customer.Code, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("TERMS"))
	m.AddRows(billingRow(customer.BillingTermsCode, billing))
	m.AddRows(shippingRow(customer.ShippingTermsCode, shipping))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Code: "+c.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("CUSTOMER SHEET", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("id: "+nonEmpty(c.ID, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func contactRow(c *entity.Customer) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		),
	)
}

func billingRow(code string, t *entity.BillingTerm) core.Row {
	detail := "—"
	if t != nil {
		detail = fmt.Sprintf("%s (%d days)", t.Description, t.DueDays)
	}
	return termRow("Billing", nonEmpty(code, "—"), detail)
}

func shippingRow(code string, t *entity.ShippingTerm) core.Row {
	detail := "—"
	if t != nil {
		detail = t.Description
	}
	return termRow("Shipping", nonEmpty(code, "—"), detail)
}

func termRow(label, code, detail string) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(3).Add(text.New(code, props.Text{Size: 8, Top: 1})),
		col.New(6).Add(text.New(detail, props.Text{Size: 8, Top: 1, Color: colorGray})),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
