// Package pdf genera el kardex de un lote como documento A4: cabecera
// con los datos del lote, tabla cronológica de movimientos con saldo
// corrido y un QR de trazabilidad con el código del lote.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appledger "github.com/javrojas/Almacen-api/internal/application/ledger"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// Etiquetas de movimiento para la tabla.
var kindLabels = map[string]string{
	appledger.EntryReception:   "Recepción",
	appledger.EntryConsumption: "Consumo batch",
	appledger.EntryWaste:       "Merma",
	appledger.EntryTransferOut: "Traslado salida",
	appledger.EntryTransferIn:  "Traslado entrada",
}

var _ appledger.StatementPDFGenerator = (*KardexGenerator)(nil)

// KardexGenerator implementa ledger.StatementPDFGenerator usando Maroto v2.
type KardexGenerator struct{}

// NewKardexGenerator construye el generador.
func NewKardexGenerator() *KardexGenerator { return &KardexGenerator{} }

// GenerateStatement genera el PDF del kardex y devuelve sus bytes.
func (g *KardexGenerator) GenerateStatement(st *appledger.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de lote "+st.Lot.Code, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range entryRows(st) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(st))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: lote (izq) y fecha de corte (der).
func headerRow(st *appledger.Statement) core.Row {
	corte := "historial completo"
	if st.AsOf != nil {
		corte = "corte al " + st.AsOf.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("KARDEX DE LOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Lot.Code+" — "+st.Lot.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6,
			}),
			text.New(fmt.Sprintf("Recibido: %s %s el %s",
				st.Lot.QuantityReceived.String(), st.Lot.Unit,
				st.Lot.ReceivedAt.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(corte, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Movimiento", 3, align.Left),
		h("Referencia", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

// entryRows: una fila por movimiento. Los saldos negativos van en rojo.
func entryRows(st *appledger.Statement) []core.Row {
	result := make([]core.Row, 0, len(st.Entries))
	for _, e := range st.Entries {
		balColor := colorGray
		if e.Balance.IsNegative() {
			balColor = colorRed
		}
		label := kindLabels[e.Kind]
		if label == "" {
			label = e.Kind
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				e.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				e.Reference,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				e.Delta.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				e.Balance.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: balColor},
			)),
		))
	}
	return result
}

// balanceRow: saldo final destacado.
func balanceRow(st *appledger.Statement) core.Row {
	balColor := colorPrimary
	if st.Balance.IsNegative() {
		balColor = colorRed
	}
	return row.New(10).Add(
		col.New(8).Add(text.New("SALDO CONCILIADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(
			st.Balance.String()+" "+st.Lot.Unit,
			props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: balColor, Top: 2, Right: 1,
			},
		)),
	)
}

// footerRow: QR de trazabilidad con el identificador del lote.
func footerRow(st *appledger.Statement) core.Row {
	qrData := st.Lot.Type + ":" + st.Lot.ID
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(qrData, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanea el código QR para abrir\neste lote en la consola.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Saldo reconstruido desde el historial\nde eventos, no desde el snapshot.", props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}
