package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/render"
)

// BuildDocument turns a compiled invoice into the draw-instruction list
// consumed by the rendering collaborator. Layout follows the company's
// printed tax-invoice format.
func BuildDocument(inv *entity.CompiledInvoice, now time.Time) *render.Document {
	company := entity.Company
	customer := entity.Customer

	doc := &render.Document{
		Title:    "TAX INVOICE",
		Filename: fmt.Sprintf("Invoice_%s_%s", strings.ReplaceAll(inv.Category, " ", "_"), inv.Month),
	}

	add := func(op render.Op) { doc.Ops = append(doc.Ops, op) }

	// Header block
	add(render.Text{X: 105, Y: 8, Value: "TAX INVOICE", Size: 8, Align: render.AlignCenter})
	add(render.Text{X: 105, Y: 18, Value: company.Name, Size: 26, Bold: true, Align: render.AlignCenter})
	add(render.Text{X: 105, Y: 24, Value: company.Subtitle, Size: 10, Align: render.AlignCenter})
	add(render.Text{X: 105, Y: 29, Value: "Address : " + company.Address, Size: 9, Align: render.AlignCenter})
	add(render.Text{X: 15, Y: 37, Value: "GSTIN No. : " + company.GSTIN, Size: 9, Bold: true})
	add(render.Text{X: 105, Y: 37, Value: "State : " + company.State, Size: 9, Bold: true, Align: render.AlignCenter})
	add(render.Text{X: 195, Y: 37, Value: "State Code : " + company.StateCode, Size: 9, Bold: true, Align: render.AlignRight})

	add(render.Text{X: 15, Y: 46, Value: "Invoice For : " + inv.Month, Size: 10})
	add(render.Text{X: 195, Y: 46, Value: "Invoice Date : " + now.Format("02/01/2006"), Size: 10, Align: render.AlignRight})

	// Party details
	add(render.Text{X: 15, Y: 52, Value: "Party Name", Size: 10, Bold: true})
	add(render.Text{X: 36, Y: 52, Value: customer.Name, Size: 10, Bold: true})
	add(render.Text{X: 15, Y: 57, Value: "Address", Size: 10})
	add(render.Text{X: 36, Y: 57, Value: customer.Address, Size: 10, Bold: true})
	add(render.Text{X: 15, Y: 62, Value: "GSTIN No. : " + customer.GSTIN, Size: 10, Bold: true})
	add(render.Text{X: 115, Y: 62, Value: "State : " + customer.State, Size: 10, Bold: true})
	add(render.Text{X: 195, Y: 62, Value: "State Code " + customer.StateCode, Size: 10, Bold: true, Align: render.AlignRight})

	// Grouped line-item table. Date and challan columns stay blank on
	// the printed invoice; deliveries are identified by lorry number.
	rows := make([][]string, 0, len(inv.Rows))
	for _, row := range inv.Rows {
		rows = append(rows, []string{
			"",
			"",
			row.VehicleNumber,
			row.Description,
			fmt.Sprintf("%.2f", row.Quantity),
			fmt.Sprintf("%d", int64(row.Rate+0.5)),
			fmt.Sprintf("%d", int64(row.Amount+0.5)),
		})
	}
	add(render.Table{
		Headers: []string{"Date", "Challan No.", "Lorry No.", "DESCRIPTION", "Quantity", "RATE", "Amount Rs."},
		Rows:    rows,
		Widths:  []float64{15, 18, 28, 60, 18, 20, 30},
		Aligns: []render.Align{
			render.AlignCenter, render.AlignCenter, render.AlignCenter,
			render.AlignLeft, render.AlignCenter, render.AlignCenter, render.AlignRight,
		},
	})

	// Totals block
	add(render.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"TOTAL", fmt.Sprintf("%d", inv.RoundedSubtotal)},
			{fmt.Sprintf("SGST %g%%", inv.SGSTRate), fmt.Sprintf("%d", inv.RoundedSGST)},
			{fmt.Sprintf("CGST %g%%", inv.CGSTRate), fmt.Sprintf("%d", inv.RoundedCGST)},
			{"Round Off", fmt.Sprintf("%d", inv.RoundOff)},
			{"G. TOTAL", fmt.Sprintf("%d", inv.GrandTotal)},
		},
		Widths: []float64{50, 30},
		Aligns: []render.Align{render.AlignLeft, render.AlignRight},
	})

	// Footer
	add(render.Text{X: 12, Y: 230, Value: "Total Invoice Amount (Including GST)", Size: 9})
	add(render.Text{X: 12, Y: 235, Value: inv.TotalInWords, Size: 9, Bold: true})
	add(render.Text{X: 12, Y: 245, Value: "Bank Details", Size: 9, Bold: true})
	add(render.Text{X: 12, Y: 250, Value: "Bank Name : " + company.BankName, Size: 9})
	add(render.Text{X: 12, Y: 255, Value: "A/C No. : " + company.AccountNo, Size: 9})
	add(render.Text{X: 12, Y: 260, Value: "IFSC Code : " + company.IFSC, Size: 9})
	add(render.Text{X: 175, Y: 255, Value: "FOR " + company.Name, Size: 9, Align: render.AlignCenter})
	add(render.Text{X: 175, Y: 275, Value: "Auth. Signatory", Size: 9, Align: render.AlignCenter})

	return doc
}
