package invoice

import (
	"testing"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCompiler(t *testing.T) *Compiler {
	t.Helper()
	return NewCompiler(zap.NewNop())
}

func TestCompileGroupsByVehicleAndMaterial(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{ID: 1, Date: "2025-06-02", Material: entity.MaterialMetal1, Quantity: 2, VehicleNumber: "MH46BB8065"},
		{ID: 2, Date: "2025-06-09", Material: entity.MaterialMetal1, Quantity: 3, VehicleNumber: "MH46BB8065"},
	}
	rates := map[string]float64{entity.MaterialMetal1: 100}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, rates, entity.TaxRates{})

	require.Len(t, inv.Rows, 1)
	assert.Equal(t, "MH46BB8065", inv.Rows[0].VehicleNumber)
	assert.Equal(t, entity.MaterialMetal1, inv.Rows[0].Description)
	assert.Equal(t, 5.0, inv.Rows[0].Quantity)
	assert.Equal(t, 100.0, inv.Rows[0].Rate)
	assert.Equal(t, 500.0, inv.Rows[0].Amount)
}

func TestCompileGroupingIsAmountPreserving(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-01", Material: entity.MaterialWashsand, Quantity: 1.5, VehicleNumber: "MH46F3651"},
		{Date: "2025-06-03", Material: entity.MaterialWashsand, Quantity: 2.25, VehicleNumber: "MH46F3651"},
		{Date: "2025-06-05", Material: entity.MaterialMetal2, Quantity: 6.72, VehicleNumber: "MH04CX7400"},
		{Date: "2025-06-08", Material: entity.MaterialRubble, Quantity: 3.1, VehicleNumber: "MH48BB8284"},
		{Date: "2025-06-11", Material: entity.MaterialRubble, Quantity: 4.4, VehicleNumber: "MH48BB8284"},
	}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, nil,
		entity.GSTRates[entity.CategoryBuildingMaterial])

	var itemSum, rowSum float64
	for _, item := range inv.Items {
		itemSum += item.Amount
	}
	for _, row := range inv.Rows {
		rowSum += row.Amount
	}
	assert.InDelta(t, itemSum, rowSum, 1e-9)
	assert.InDelta(t, itemSum, inv.Subtotal, 1e-9)
}

func TestCompileExemptCategoryHasZeroTax(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-04", Material: entity.MaterialDrinkingWater, Quantity: 1, VehicleNumber: "MH05K8980"},
	}
	rates := map[string]float64{entity.MaterialDrinkingWater: 1000}

	inv := c.Compile(records, "2025-06", entity.CategoryWaterSupply, rates,
		entity.GSTRates[entity.CategoryWaterSupply])

	assert.Equal(t, 0.0, inv.CGST)
	assert.Equal(t, 0.0, inv.SGST)
	assert.Equal(t, int64(0), inv.RoundedCGST)
	assert.Equal(t, int64(0), inv.RoundedSGST)
	assert.Equal(t, int64(1000), inv.GrandTotal)
	assert.Equal(t, int64(0), inv.RoundOff)
}

func TestCompileAppliesCategoryTax(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-04", Material: entity.MaterialMetal1, Quantity: 10, VehicleNumber: "MH46BB8065"},
	}
	rates := map[string]float64{entity.MaterialMetal1: 100}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, rates,
		entity.TaxRates{CGST: 2.5, SGST: 2.5})

	assert.InDelta(t, 1000.0, inv.Subtotal, 1e-9)
	assert.InDelta(t, 25.0, inv.CGST, 1e-9)
	assert.InDelta(t, 25.0, inv.SGST, 1e-9)
	assert.Equal(t, int64(1050), inv.GrandTotal)
	assert.Equal(t, "One Thousand Fifty Only", inv.TotalInWords)
}

func TestCompileFiltersByMonthAndCategory(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-02", Material: entity.MaterialMetal1, Quantity: 1, VehicleNumber: "V1"},
		{Date: "2025-05-28", Material: entity.MaterialMetal1, Quantity: 1, VehicleNumber: "V1"}, // wrong month
		{Date: "2025-06-02", Material: entity.MaterialJCB, Quantity: 1, VehicleNumber: "V1"},    // wrong category
	}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, nil, entity.TaxRates{})

	require.Len(t, inv.Items, 1)
	assert.Equal(t, entity.MaterialMetal1, inv.Items[0].Description)
}

func TestCompileFlagsUnmappedMaterial(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-02", Material: entity.MaterialMetal1, Quantity: 4, VehicleNumber: "V1"},
		{Date: "2025-06-03", Material: entity.MaterialGSB, Quantity: 2, VehicleNumber: "V2"},
	}
	// GSB deliberately missing from the rate table.
	rates := map[string]float64{entity.MaterialMetal1: 100}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, rates, entity.TaxRates{})

	require.Len(t, inv.FlaggedItems, 1)
	assert.Equal(t, entity.MaterialGSB, inv.FlaggedItems[0].Description)
	assert.True(t, inv.FlaggedItems[0].RateMissing)
	assert.Equal(t, 0.0, inv.FlaggedItems[0].Amount)
	assert.InDelta(t, 400.0, inv.Subtotal, 1e-9)
}

func TestCompileSortsGroupsByVehicle(t *testing.T) {
	c := newTestCompiler(t)

	records := []entity.DeliveryRecord{
		{Date: "2025-06-01", Material: entity.MaterialMetal1, Quantity: 1, VehicleNumber: "MH48BB8284"},
		{Date: "2025-06-01", Material: entity.MaterialMetal1, Quantity: 1, VehicleNumber: "MH04CX7400"},
		{Date: "2025-06-01", Material: entity.MaterialMetal1, Quantity: 1, VehicleNumber: "MH46F3651"},
	}

	inv := c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, nil, entity.TaxRates{})

	require.Len(t, inv.Rows, 3)
	assert.Equal(t, "MH04CX7400", inv.Rows[0].VehicleNumber)
	assert.Equal(t, "MH46F3651", inv.Rows[1].VehicleNumber)
	assert.Equal(t, "MH48BB8284", inv.Rows[2].VehicleNumber)
}

func TestCompileNegativeQuantityDoesNotPanic(t *testing.T) {
	c := newTestCompiler(t)

	// Quantities are validated at the entry boundary, but a bad record
	// already in the store must still compile without panicking.
	records := []entity.DeliveryRecord{
		{Date: "2025-06-02", Material: entity.MaterialMetal1, Quantity: -2, VehicleNumber: "V1"},
	}
	rates := map[string]float64{entity.MaterialMetal1: 100}

	var inv *entity.CompiledInvoice
	require.NotPanics(t, func() {
		inv = c.Compile(records, "2025-06", entity.CategoryBuildingMaterial, rates, entity.TaxRates{})
	})
	assert.Equal(t, int64(-200), inv.GrandTotal)
	assert.Equal(t, "Minus Two Hundred Only", inv.TotalInWords)
}

func TestCompileEmptyFilterYieldsZeroDocument(t *testing.T) {
	c := newTestCompiler(t)

	inv := c.Compile(nil, "2025-06", entity.CategoryBuildingMaterial, nil,
		entity.GSTRates[entity.CategoryBuildingMaterial])

	assert.Empty(t, inv.Items)
	assert.Empty(t, inv.Rows)
	assert.Equal(t, int64(0), inv.GrandTotal)
	assert.Equal(t, "Zero", inv.TotalInWords)
}
