package domain

import "github.com/shopspring/decimal"

var (
	taxRate           = decimal.NewFromFloat(0.18)
	freeShippingAbove = decimal.NewFromInt(500)
	flatShippingFee   = decimal.NewFromInt(50)
	oneHundred        = decimal.NewFromInt(100)
)

// PricingLine is one cart line as it enters the pricing computation.
type PricingLine struct {
	ProductID       int64
	ProductName     string
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int
	ImageURL        string
}

// QuoteLine is the priced counterpart of one PricingLine. UnitPrice is the
// per-unit price after discount; LineTotal is UnitPrice times Quantity.
type QuoteLine struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	ImageURL    string
}

// Quote carries the deterministic money breakdown for a cart. The sum of
// LineTotals always equals Subtotal, and Total equals
// Subtotal + Tax + Shipping; the discount is already netted into Subtotal.
type Quote struct {
	Lines     []QuoteLine
	ItemCount int

	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Price computes the quote for a set of lines. Per line: the unit discount is
// rounded to 2 decimal places half-up before multiplication, so the snapshot
// unit price is exactly reproducible. Tax is a flat 18% of the subtotal,
// rounded the same way. Shipping is free once the subtotal reaches 500,
// otherwise a flat 50.
func Price(lines []PricingLine) Quote {
	quote := Quote{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}
	for _, line := range lines {
		unitDiscount := line.UnitPrice.
			Mul(line.DiscountPercent).
			Div(oneHundred).
			Round(2)
		finalUnit := line.UnitPrice.Sub(unitDiscount)
		quantity := decimal.NewFromInt(int64(line.Quantity))
		lineTotal := finalUnit.Mul(quantity)

		quote.Subtotal = quote.Subtotal.Add(lineTotal)
		quote.Discount = quote.Discount.Add(unitDiscount.Mul(quantity))
		quote.ItemCount += line.Quantity
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   finalUnit,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
			ImageURL:    line.ImageURL,
		})
	}

	quote.Tax = quote.Subtotal.Mul(taxRate).Round(2)
	if quote.Subtotal.GreaterThanOrEqual(freeShippingAbove) {
		quote.Shipping = decimal.Zero
	} else {
		quote.Shipping = flatShippingFee
	}
	quote.Total = quote.Subtotal.Add(quote.Tax).Add(quote.Shipping)
	return quote
}
