package calc_test

import (
	"testing"

	"brokerbook/internal/calc"
	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestCompute_DirectPercentage(t *testing.T) {
	cfg := calc.Config{
		CalculationMode:  model.CalcDirect,
		Rate:             d("100"),
		DiscountPercent:  d("0"),
		GSTPercent:       d("5"),
		BrokerageMode:    model.BrokeragePercentage,
		BrokeragePercent: d("1"),
	}

	b := calc.Compute(cfg, d("10"), nil)

	assertDecimal(t, "1000", b.AmountWithoutGST, "amount_without_gst")
	assertDecimal(t, "0", b.DiscountAmount, "discount_amount")
	assertDecimal(t, "1000", b.AmountAfterDiscount, "amount_after_discount")
	assertDecimal(t, "50", b.GSTAmount, "gst_amount")
	assertDecimal(t, "1050", b.TotalAmount, "total_amount")
	assertDecimal(t, "10", b.BrokerageAmount, "brokerage_amount")
	assertDecimal(t, "0", b.TotalKg, "total_kg")
}

func TestCompute_PerKgPerBag(t *testing.T) {
	cfg := calc.Config{
		CalculationMode: model.CalcPerKg,
		Rate:            d("40"),
		KgPerUnit:       d("50"),
		DiscountPercent: d("10"),
		GSTPercent:      d("5"),
		BrokerageMode:   model.BrokeragePerBag,
		BrokeragePerBag: d("5"),
	}

	b := calc.Compute(cfg, d("2"), nil)

	assertDecimal(t, "100", b.TotalKg, "total_kg")
	assertDecimal(t, "4000", b.AmountWithoutGST, "amount_without_gst")
	assertDecimal(t, "400", b.DiscountAmount, "discount_amount")
	assertDecimal(t, "3600", b.AmountAfterDiscount, "amount_after_discount")
	assertDecimal(t, "180", b.GSTAmount, "gst_amount")
	assertDecimal(t, "3780", b.TotalAmount, "total_amount")
	assertDecimal(t, "10", b.BrokerageAmount, "brokerage_amount")
}

func TestCompute_GSTOverride(t *testing.T) {
	cfg := calc.Config{
		CalculationMode:  model.CalcDirect,
		Rate:             d("100"),
		GSTPercent:       d("5"),
		BrokerageMode:    model.BrokeragePercentage,
		BrokeragePercent: d("0.5"),
	}
	gst := d("18")

	b := calc.Compute(cfg, d("10"), &gst)

	assertDecimal(t, "180", b.GSTAmount, "gst_amount")
	assertDecimal(t, "1180", b.TotalAmount, "total_amount")
	// brokerage ignores GST entirely
	assertDecimal(t, "5", b.BrokerageAmount, "brokerage_amount")
}

func TestCompute_ZeroQuantity(t *testing.T) {
	for _, mode := range []model.CalculationMode{model.CalcPerKg, model.CalcDirect} {
		cfg := calc.Config{
			CalculationMode:  mode,
			Rate:             d("37.5"),
			KgPerUnit:        d("50"),
			DiscountPercent:  d("3"),
			GSTPercent:       d("12"),
			BrokerageMode:    model.BrokeragePerBag,
			BrokeragePerBag:  d("7"),
			BrokeragePercent: d("2"),
		}
		b := calc.Compute(cfg, decimal.Zero, nil)
		for name, v := range map[string]decimal.Decimal{
			"amount_without_gst":    b.AmountWithoutGST,
			"discount_amount":       b.DiscountAmount,
			"amount_after_discount": b.AmountAfterDiscount,
			"gst_amount":            b.GSTAmount,
			"total_amount":          b.TotalAmount,
			"brokerage_amount":      b.BrokerageAmount,
			"total_kg":              b.TotalKg,
		} {
			assert.Truef(t, v.IsZero(), "%s/%s should be zero, got %s", mode, name, v)
		}
	}
}

func TestCompute_IdentitiesAndDeterminism(t *testing.T) {
	cfg := calc.Config{
		CalculationMode:  model.CalcPerKg,
		Rate:             d("23.17"),
		KgPerUnit:        d("48.5"),
		DiscountPercent:  d("2.75"),
		GSTPercent:       d("5"),
		BrokerageMode:    model.BrokeragePercentage,
		BrokeragePercent: d("0.5"),
	}
	qty := d("137.25")

	first := calc.Compute(cfg, qty, nil)
	second := calc.Compute(cfg, qty, nil)

	assert.True(t, first.AmountAfterDiscount.Equal(first.AmountWithoutGST.Sub(first.DiscountAmount)))
	assert.True(t, first.TotalAmount.Equal(first.AmountAfterDiscount.Add(first.GSTAmount)))
	assert.True(t, sameBreakdown(first, second), "compute must be deterministic")
}

func sameBreakdown(a, b calc.Breakdown) bool {
	return a.AmountWithoutGST.Equal(b.AmountWithoutGST) &&
		a.DiscountAmount.Equal(b.DiscountAmount) &&
		a.AmountAfterDiscount.Equal(b.AmountAfterDiscount) &&
		a.GSTAmount.Equal(b.GSTAmount) &&
		a.TotalAmount.Equal(b.TotalAmount) &&
		a.BrokerageAmount.Equal(b.BrokerageAmount) &&
		a.TotalKg.Equal(b.TotalKg)
}

func TestCompute_UnknownModesFallBack(t *testing.T) {
	cfg := calc.Config{
		CalculationMode:  "",
		Rate:             d("10"),
		KgPerUnit:        d("50"),
		GSTPercent:       d("0"),
		BrokerageMode:    "",
		BrokeragePercent: d("10"),
		BrokeragePerBag:  d("99"),
	}

	b := calc.Compute(cfg, d("3"), nil)

	assertDecimal(t, "30", b.AmountWithoutGST, "direct pricing")
	assertDecimal(t, "3", b.BrokerageAmount, "percentage brokerage")
}

func TestConfigFromDealAndApply(t *testing.T) {
	deal := model.Deal{
		CalculationMode:  model.CalcDirect,
		Rate:             d("100"),
		Quantity:         d("10"),
		GSTPercent:       d("5"),
		BrokerageMode:    model.BrokeragePercentage,
		BrokeragePercent: d("1"),
	}

	calc.Apply(&deal, calc.Compute(calc.ConfigFromDeal(deal), deal.Quantity, nil))

	assertDecimal(t, "1050", deal.TotalAmount, "total_amount")
	assertDecimal(t, "10", deal.BrokerageAmount, "brokerage_amount")
}

func TestParseAmount(t *testing.T) {
	assertDecimal(t, "0", calc.ParseAmount(""), "empty")
	assertDecimal(t, "0", calc.ParseAmount("abc"), "garbage")
	assertDecimal(t, "12.5", calc.ParseAmount(" 12.5 "), "padded")
	assertDecimal(t, "-3", calc.ParseAmount("-3"), "negative passes through")
}
