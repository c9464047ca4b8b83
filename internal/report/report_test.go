package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type testSupplier struct {
	Name string
}

type testPurchase struct {
	ID        uint
	Supplier  *testSupplier
	LineTotal decimal.Decimal
	CreatedAt time.Time
}

func TestResolveFieldDottedPaths(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	row := testPurchase{
		ID:        7,
		Supplier:  &testSupplier{Name: "Acme Metals"},
		LineTotal: decimal.RequireFromString("28.5"),
		CreatedAt: created,
	}

	cases := []struct {
		path     string
		expected string
	}{
		{"ID", "7"},
		{"Supplier.Name", "Acme Metals"},
		{"LineTotal", "28.50"},
		{"CreatedAt", "2026-03-14 09:30"},
		{"Supplier.Missing", ""},
		{"Nope", ""},
	}
	for _, tc := range cases {
		if got := resolveField(row, tc.path); got != tc.expected {
			t.Errorf("resolveField(%q) expected %q, got %q", tc.path, tc.expected, got)
		}
	}
}

func TestResolveFieldNilLink(t *testing.T) {
	row := testPurchase{ID: 1}
	if got := resolveField(row, "Supplier.Name"); got != "" {
		t.Fatalf("nil supplier expected empty string, got %q", got)
	}
}

func TestExcelWorkbookLayout(t *testing.T) {
	columns := []Column{
		{Field: "ID", Label: "ID"},
		{Field: "Supplier.Name", Label: "Supplier"},
		{Field: "LineTotal", Label: "Total"},
	}
	rows := []testPurchase{
		{ID: 1, Supplier: &testSupplier{Name: "Acme Metals"}, LineTotal: decimal.RequireFromString("28.5")},
		{ID: 2, LineTotal: decimal.RequireFromString("10")},
	}

	buf, err := Excel("Purchases", columns, rows)
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Report", "A1"); got != "Purchases" {
		t.Fatalf("title cell expected 'Purchases', got %q", got)
	}
	if got, _ := f.GetCellValue("Report", "B2"); got != "Supplier" {
		t.Fatalf("header cell expected 'Supplier', got %q", got)
	}
	if got, _ := f.GetCellValue("Report", "B3"); got != "Acme Metals" {
		t.Fatalf("data cell expected 'Acme Metals', got %q", got)
	}
	// Deleted supplier renders as empty string
	if got, _ := f.GetCellValue("Report", "B4"); got != "" {
		t.Fatalf("missing link expected empty cell, got %q", got)
	}
	if got, _ := f.GetCellValue("Report", "A6"); !strings.Contains(got, "2 records") {
		t.Fatalf("footer expected record count, got %q", got)
	}
}

func TestPDFDocument(t *testing.T) {
	columns := []Column{
		{Field: "ID", Label: "ID"},
		{Field: "LineTotal", Label: "Total"},
	}
	rows := []testPurchase{
		{ID: 1, LineTotal: decimal.RequireFromString("28.5")},
	}

	buf, err := PDF("Purchases", columns, rows)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not look like a PDF document")
	}
}
