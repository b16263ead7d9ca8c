// Package invoice compiles monthly delivery records into tax invoices and
// prepares the structured layout handed to the rendering collaborator.
package invoice

import (
	"sort"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compiler aggregates delivery records into a CompiledInvoice
type Compiler struct {
	logger *zap.Logger
}

// NewCompiler creates a new invoice compiler
func NewCompiler(logger *zap.Logger) *Compiler {
	return &Compiler{logger: logger}
}

// Compile builds the invoice for a month (YYYY-MM) and billing category.
// rates overrides the default price list when non-nil; taxes is the
// category's tax configuration (zero components for an exempt category).
//
// An empty filtered set yields a zero-group, zero-total document; callers
// must reject that as "no data" before invoking the renderer.
func (c *Compiler) Compile(
	records []entity.DeliveryRecord,
	month, category string,
	rates map[string]float64,
	taxes entity.TaxRates,
) *entity.CompiledInvoice {
	if rates == nil {
		rates = entity.DefaultRates
	}

	inv := &entity.CompiledInvoice{
		Month:    month,
		Category: category,
		CGSTRate: taxes.CGST,
		SGSTRate: taxes.SGST,
	}

	subtotal := decimal.Zero
	for _, r := range records {
		if r.Month() != month || r.Category() != category {
			continue
		}

		rate, haveRate := rates[r.Material]
		amount := decimal.NewFromFloat(r.Quantity).Mul(decimal.NewFromFloat(rate))

		item := entity.InvoiceLineItem{
			ID:            r.ID,
			Date:          r.Date,
			ChallanNumber: r.ChallanNumber,
			VehicleNumber: orDash(r.VehicleNumber),
			Description:   r.Material,
			Quantity:      r.Quantity,
			Rate:          rate,
			Amount:        amount.InexactFloat64(),
			RateMissing:   !haveRate,
		}
		inv.Items = append(inv.Items, item)
		subtotal = subtotal.Add(amount)

		if !haveRate {
			// Configuration gap: zero-amount line kept on the invoice,
			// surfaced so the caller can flag it.
			inv.FlaggedItems = append(inv.FlaggedItems, item)
			c.logger.Warn("No rate configured for material",
				zap.String("material", r.Material),
				zap.String("challan_number", r.ChallanNumber))
		}
	}

	inv.Rows = groupItems(inv.Items)

	cgst := subtotal.Mul(decimal.NewFromFloat(taxes.CGST)).Div(decimal.NewFromInt(100))
	sgst := subtotal.Mul(decimal.NewFromFloat(taxes.SGST)).Div(decimal.NewFromInt(100))

	inv.Subtotal = subtotal.InexactFloat64()
	inv.CGST = cgst.InexactFloat64()
	inv.SGST = sgst.InexactFloat64()

	// Rounding happens only here, at the display boundary.
	inv.RoundedSubtotal = subtotal.Round(0).IntPart()
	inv.RoundedCGST = cgst.Round(0).IntPart()
	inv.RoundedSGST = sgst.Round(0).IntPart()
	inv.RoundOff = 0
	inv.GrandTotal = subtotal.
		Add(decimal.NewFromInt(inv.RoundedCGST)).
		Add(decimal.NewFromInt(inv.RoundedSGST)).
		Round(0).IntPart()
	inv.TotalInWords = AmountInWords(inv.GrandTotal)

	return inv
}

// groupItems merges items sharing (vehicle, description), summing quantity
// and amount. The rate is taken from the first member; callers guarantee
// rate uniformity within a group.
func groupItems(items []entity.InvoiceLineItem) []entity.GroupedInvoiceRow {
	type key struct{ vehicle, description string }

	grouped := make(map[key]*entity.GroupedInvoiceRow)
	order := make([]key, 0)

	for _, item := range items {
		k := key{item.VehicleNumber, item.Description}
		row, ok := grouped[k]
		if !ok {
			row = &entity.GroupedInvoiceRow{
				VehicleNumber: item.VehicleNumber,
				Description:   item.Description,
				Rate:          item.Rate,
			}
			grouped[k] = row
			order = append(order, k)
		}
		row.Quantity += item.Quantity
		row.Amount += item.Amount
	}

	rows := make([]entity.GroupedInvoiceRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, *grouped[k])
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].VehicleNumber != rows[j].VehicleNumber {
			return rows[i].VehicleNumber < rows[j].VehicleNumber
		}
		return rows[i].Description < rows[j].Description
	})

	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
