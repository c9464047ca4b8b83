package purchase_test

import (
	"testing"

	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/purchase"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineTotals(t *testing.T) {
	cases := []struct {
		name        string
		quantity    int
		unitPrice   string
		discountPct string
		taxPct      string
		discount    string
		tax         string
		total       string
	}{
		// Tax is 5% of the pre-discount subtotal 30.00, not of 27.00.
		{"worked example", 3, "10.00", "10", "5", "3.00", "1.50", "28.50"},
		{"no discount no tax", 4, "2.50", "0", "0", "0.00", "0.00", "10.00"},
		{"full discount keeps tax", 2, "5.00", "100", "10", "10.00", "1.00", "1.00"},
		{"rounds half up", 1, "0.05", "0", "50", "0.00", "0.03", "0.08"},
		{"zero quantity", 0, "9.99", "10", "5", "0.00", "0.00", "0.00"},
	}

	for _, tc := range cases {
		discount, tax, total := purchase.ComputeLineTotals(tc.quantity, dec(tc.unitPrice), dec(tc.discountPct), dec(tc.taxPct))
		if !discount.Equal(dec(tc.discount)) {
			t.Errorf("%s: discount expected %s, got %s", tc.name, tc.discount, discount)
		}
		if !tax.Equal(dec(tc.tax)) {
			t.Errorf("%s: tax expected %s, got %s", tc.name, tc.tax, tax)
		}
		if !total.Equal(dec(tc.total)) {
			t.Errorf("%s: total expected %s, got %s", tc.name, tc.total, total)
		}
	}
}

func TestComputeLineTotalsKeepsSubtotalUnrounded(t *testing.T) {
	// Subtotal 3 * 3.333 = 9.999 feeds both percentages at full precision.
	discount, tax, total := purchase.ComputeLineTotals(3, dec("3.333"), dec("10"), dec("10"))
	if !discount.Equal(dec("1.00")) {
		t.Fatalf("discount expected 1.00, got %s", discount)
	}
	if !tax.Equal(dec("1.00")) {
		t.Fatalf("tax expected 1.00, got %s", tax)
	}
	// 9.999 - 1.00 + 1.00 = 9.999 -> 10.00
	if !total.Equal(dec("10.00")) {
		t.Fatalf("total expected 10.00, got %s", total)
	}
}

func TestPaymentStatusFor(t *testing.T) {
	total := dec("28.50")

	if got := purchase.PaymentStatusFor(dec("0"), total); got != models.PaymentUnpaid {
		t.Fatalf("zero paid expected unpaid, got %s", got)
	}
	if got := purchase.PaymentStatusFor(dec("0.01"), total); got != models.PaymentPartial {
		t.Fatalf("partial paid expected partial, got %s", got)
	}
	if got := purchase.PaymentStatusFor(dec("28.49"), total); got != models.PaymentPartial {
		t.Fatalf("one cent short expected partial, got %s", got)
	}
	if got := purchase.PaymentStatusFor(dec("28.50"), total); got != models.PaymentPaid {
		t.Fatalf("exact paid expected paid, got %s", got)
	}
	if got := purchase.PaymentStatusFor(dec("0"), dec("0")); got != models.PaymentUnpaid {
		t.Fatalf("zero of zero expected unpaid, got %s", got)
	}
}
