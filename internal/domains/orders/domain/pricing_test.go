package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func line(price string, discount string, qty int) PricingLine {
	return PricingLine{
		ProductID:       1,
		ProductName:     "Chew Toy",
		UnitPrice:       decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
		Quantity:        qty,
	}
}

func TestPriceSingleDiscountedLine(t *testing.T) {
	quote := Price([]PricingLine{line("200", "10", 2)})

	require.Len(t, quote.Lines, 1)
	require.True(t, quote.Lines[0].UnitPrice.Equal(decimal.RequireFromString("180.00")), quote.Lines[0].UnitPrice.String())
	require.True(t, quote.Lines[0].LineTotal.Equal(decimal.RequireFromString("360.00")), quote.Lines[0].LineTotal.String())
	require.True(t, quote.Subtotal.Equal(decimal.RequireFromString("360.00")), quote.Subtotal.String())
	require.True(t, quote.Discount.Equal(decimal.RequireFromString("40.00")), quote.Discount.String())
	require.True(t, quote.Tax.Equal(decimal.RequireFromString("64.80")), quote.Tax.String())
	require.True(t, quote.Shipping.Equal(decimal.NewFromInt(50)), quote.Shipping.String())
	require.True(t, quote.Total.Equal(decimal.RequireFromString("474.80")), quote.Total.String())
	require.Equal(t, 2, quote.ItemCount)
}

func TestPriceTaxIsEighteenPercentHalfUp(t *testing.T) {
	quote := Price([]PricingLine{line("1000", "0", 1)})
	require.True(t, quote.Tax.Equal(decimal.RequireFromString("180.00")), quote.Tax.String())

	// 33.33 * 0.18 = 5.9994, half-up to 6.00
	quote = Price([]PricingLine{line("33.33", "0", 1)})
	require.True(t, quote.Tax.Equal(decimal.RequireFromString("6.00")), quote.Tax.String())
}

func TestPriceShippingBoundary(t *testing.T) {
	exactly := Price([]PricingLine{line("500", "0", 1)})
	require.True(t, exactly.Shipping.IsZero(), exactly.Shipping.String())

	below := Price([]PricingLine{line("499.99", "0", 1)})
	require.True(t, below.Shipping.Equal(decimal.NewFromInt(50)), below.Shipping.String())

	above := Price([]PricingLine{line("250", "0", 3)})
	require.True(t, above.Shipping.IsZero(), above.Shipping.String())
}

func TestPriceLineTotalsSumToSubtotal(t *testing.T) {
	quote := Price([]PricingLine{
		line("19.99", "5", 3),
		line("149.50", "12.5", 1),
		line("7.25", "0", 10),
	})

	sum := decimal.Zero
	for _, l := range quote.Lines {
		sum = sum.Add(l.LineTotal)
	}
	require.True(t, sum.Equal(quote.Subtotal), sum.String())
	require.True(t, quote.Total.Equal(quote.Subtotal.Add(quote.Tax).Add(quote.Shipping)))
}

func TestPriceRoundsUnitDiscountBeforeMultiplying(t *testing.T) {
	// 19.99 * 7.5% = 1.49925, rounded half-up to 1.50 per unit.
	quote := Price([]PricingLine{line("19.99", "7.5", 4)})
	require.True(t, quote.Lines[0].UnitPrice.Equal(decimal.RequireFromString("18.49")), quote.Lines[0].UnitPrice.String())
	require.True(t, quote.Discount.Equal(decimal.RequireFromString("6.00")), quote.Discount.String())
}

func TestPriceEmptyCart(t *testing.T) {
	quote := Price(nil)
	require.True(t, quote.Subtotal.IsZero())
	require.True(t, quote.Tax.IsZero())
	require.True(t, quote.Shipping.Equal(decimal.NewFromInt(50)))
	require.Equal(t, 0, quote.ItemCount)
}
