package purchase

import (
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeLineTotals turns quantity, unit price and the discount/tax percents
// into the three stored amounts. The subtotal is kept at full precision;
// only the outputs are rounded, half up, to 2 places. Tax is charged on the
// pre-discount subtotal. Inputs are validated by the caller; this never
// fails.
func ComputeLineTotals(quantity int, unitPrice, discountPct, taxPct decimal.Decimal) (discountAmount, taxAmount, lineTotal decimal.Decimal) {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discountAmount = subtotal.Mul(discountPct).Div(hundred).Round(2)
	taxAmount = subtotal.Mul(taxPct).Div(hundred).Round(2)
	lineTotal = subtotal.Sub(discountAmount).Add(taxAmount).Round(2)
	return discountAmount, taxAmount, lineTotal
}

// PaymentStatusFor derives the payment status from how much of the line
// total has been paid. Callers reject paid > total before persisting.
func PaymentStatusFor(paid, total decimal.Decimal) models.PaymentStatus {
	switch {
	case paid.IsZero():
		return models.PaymentUnpaid
	case paid.GreaterThanOrEqual(total):
		return models.PaymentPaid
	default:
		return models.PaymentPartial
	}
}
