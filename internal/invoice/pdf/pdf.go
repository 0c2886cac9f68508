package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/raizsolar/backoffice/internal/invoice/domain"
)

// Render produces the printable bill sent to the client for one month.
func Render(invoice domain.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Fatura de energia", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	clientName := ""
	clientAddress := ""
	ucNumber := ""
	if invoice.Client != nil {
		clientName = invoice.Client.Name
		clientAddress = invoice.Client.Address
		ucNumber = invoice.Client.UCNumber
	}

	m.AddRow(24,
		col.New(6).Add(
			text.New("Fatura: "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Competencia: "+invoice.Month, props.Text{Top: 5}),
			text.New("Status: "+invoice.Status, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New(clientName, props.Text{Style: fontstyle.Bold}),
			text.New(clientAddress, props.Text{Top: 5}),
			text.New("UC: "+ucNumber, props.Text{Top: 10}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Descricao", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Valor", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	rows := []struct {
		label string
		value string
	}{
		{"Consumo (kWh)", fmt.Sprintf("%.2f", invoice.ConsumptionKwh)},
		{"Tarifa (R$/kWh)", fmt.Sprintf("%.4f", invoice.KwhValue)},
		{"Creditos abatidos (kWh)", fmt.Sprintf("%.2f", invoice.CreditedBalance)},
		{"Custo fixo", fmt.Sprintf("R$ %.2f", invoice.FixedCost)},
		{"Desconto", fmt.Sprintf("%.2f%%", invoice.Discount)},
		{"Valor sem desconto", fmt.Sprintf("R$ %.2f", invoice.ValueWithoutDiscount)},
	}
	for _, row := range rows {
		m.AddRow(8,
			text.NewCol(8, row.label, props.Text{Size: 9}),
			text.NewCol(4, row.value, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Total a pagar", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(3, fmt.Sprintf("R$ %.2f", invoice.TotalValue), props.Text{
			Style: fontstyle.Bold,
			Size:  10,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
