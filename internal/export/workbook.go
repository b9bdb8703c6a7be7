package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/angelmondragon/leadflow-backend/pkg/db/models"
	"github.com/angelmondragon/leadflow-backend/pkg/normalize"
)

// SheetName is the single worksheet every export carries.
const SheetName = "Leads"

// ContentType is the xlsx MIME type.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type column struct {
	header string
	width  float64
	value  func(models.Lead) any
}

// columns is the fixed export layout, in order.
var columns = []column{
	{"Lead ID", 36, func(l models.Lead) any { return l.ID.String() }},
	{"Customer Name", 24, func(l models.Lead) any { return l.CustomerName }},
	{"Phone", 16, func(l models.Lead) any { return l.Phone }},
	{"Phone 2", 16, func(l models.Lead) any { return deref(l.Phone2) }},
	{"Source", 20, func(l models.Lead) any { return deref(l.Source) }},
	{"Country", 18, func(l models.Lead) any { return deref(l.Country) }},
	{"Product", 18, func(l models.Lead) any { return deref(l.Product) }},
	{"Qty", 10, func(l models.Lead) any {
		if l.Qty == nil {
			return ""
		}
		return *l.Qty
	}},
	{"City", 16, func(l models.Lead) any { return deref(l.City) }},
	{"Address", 30, func(l models.Lead) any { return deref(l.Address) }},
	{"Value", 12, func(l models.Lead) any {
		if l.Value == nil {
			return ""
		}
		return l.Value.StringFixed(2)
	}},
	{"Payment Method", 18, func(l models.Lead) any { return deref(l.PaymentMethod) }},
	{"Shipment Date", 18, func(l models.Lead) any { return normalize.FormatDate(l.ShipmentDate) }},
	{"Status", 16, func(l models.Lead) any { return string(l.Status) }},
	{"Last Activity", 22, func(l models.Lead) any { return normalize.FormatTimestamp(l.LastActivityAt) }},
	{"Assigned Agent", 22, func(l models.Lead) any {
		if l.User == nil {
			return ""
		}
		return l.User.Name
	}},
}

// Headers returns the header row labels.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// BuildWorkbook renders leads into an xlsx document with a bold header row.
func BuildWorkbook(leads []models.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, lead := range leads {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = c.value(lead)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
