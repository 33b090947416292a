package orders

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/gosuri/uitable"
)

// Format is an output format of the orders command.
type Format string

const (
	FormatTableName Format = "table"
	FormatCSVName   Format = "csv"
	FormatJSONName  Format = "json"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTableName, FormatCSVName, FormatJSONName}

// Render formats records as f.
func Render(f Format, records []Record) (string, error) {
	switch f {
	case FormatTableName, "":
		return FormatTable(records), nil
	case FormatCSVName:
		return FormatCSV(records)
	case FormatJSONName:
		return FormatJSON(records)
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}

// FormatTable renders an aligned two column table.
func FormatTable(records []Record) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Order#", "Company")
	for _, r := range records {
		tbl.AddRow(r.OrderNumber, r.Company)
	}
	return tbl.String()
}

// FormatCSV renders records with an order_number,company header.
func FormatCSV(records []Record) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_number", "company"}); err != nil {
		return "", err
	}
	for _, r := range records {
		if err := w.Write([]string{r.OrderNumber, r.Company}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}
	return buf.String(), nil
}

// FormatJSON renders records as an indented JSON array.
func FormatJSON(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(b), nil
}
