// Package pdf genera el comprobante de rol de pago de un empleado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Finca / Empresa      │  ROL DE PAGO + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: código + período + estado                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Ingresos | Descuentos                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	│  FIRMAS: empleador / empleado                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apppayroll "github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.PayrollStatusPending:  "pendiente",
	entity.PayrollStatusApproved: "aprobado",
	entity.PayrollStatusPaid:     "pagado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apppayroll.PayslipGenerator = (*MarotoPayslipGenerator)(nil)

// MarotoPayslipGenerator implementa payroll.PayslipGenerator usando Maroto v2.
type MarotoPayslipGenerator struct {
	companyName string
}

// NewMarotoPayslipGenerator construye el generador con el nombre que va en la cabecera.
func NewMarotoPayslipGenerator(companyName string) *MarotoPayslipGenerator {
	return &MarotoPayslipGenerator{companyName: companyName}
}

// GeneratePayslip genera el PDF y devuelve sus bytes.
func (g *MarotoPayslipGenerator) GeneratePayslip(_ context.Context, payLine *entity.PayrollLine) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rol de pago", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(payLine))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(payLine))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range conceptRows(payLine) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(payLine))
	if payLine.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+payLine.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(row.New(20))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPayslipGenerator) headerRow(l *entity.PayrollLine) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(cases.Upper(language.Spanish).String(g.companyName), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ROL DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha de pago: "+l.PayDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func employeeRow(l *entity.PayrollLine) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(l.EmployeeID, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Período: %s al %s   |   Estado: %s",
				l.PeriodStart.Format("02/01/2006"),
				l.PeriodEnd.Format("02/01/2006"),
				statusLabels[l.Status],
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Ingresos", 3, align.Right),
		h("Descuentos", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func conceptRows(l *entity.PayrollLine) []core.Row {
	concepts := []struct {
		label    string
		amount   decimal.Decimal
		discount bool
	}{
		{"Salario base", l.BaseSalary, false},
		{"Horas extras", l.Overtime, false},
		{"Bonificaciones", l.Bonuses, false},
		{"Deducciones", l.Deductions, true},
	}
	rows := make([]core.Row, 0, len(concepts))
	for _, c := range concepts {
		income, discount := "$"+formatMoney(c.amount), ""
		if c.discount {
			income, discount = "", "$"+formatMoney(c.amount)
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(c.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(income, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(discount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(l *entity.PayrollLine) core.Row {
	style := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", style)),
		col.New(3).Add(text.New("$"+formatMoney(l.TotalPayable), style)),
	)
}

func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 8, Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return row.New(12).Add(sign("Firma del empleador"), sign("Recibí conforme"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con dos decimales y puntos de miles.
// Ej: 1250000.5 → "1.250.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
