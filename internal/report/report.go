package report

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column maps a field path on the exported records to a display label.
// Paths are dotted and resolve through nested structs and pointers,
// e.g. "SubCategory.Name" on a Product. A nil link renders as "".
type Column struct {
	Field string
	Label string
}

func resolveField(record interface{}, path string) string {
	v := reflect.ValueOf(record)
	for _, part := range strings.Split(path, ".") {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return ""
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return ""
		}
		v = v.FieldByName(part)
		if !v.IsValid() {
			return ""
		}
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return formatValue(v.Interface())
}

func formatValue(val interface{}) string {
	switch t := val.(type) {
	case time.Time:
		return t.Format("2006-01-02 15:04")
	case decimal.Decimal:
		return t.StringFixed(2)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// rowsOf accepts any slice of records and returns the per-row cell values.
func rowsOf(records interface{}, columns []Column) [][]string {
	rv := reflect.ValueOf(records)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([][]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		record := rv.Index(i).Interface()
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = resolveField(record, col.Field)
		}
		out = append(out, cells)
	}
	return out
}
