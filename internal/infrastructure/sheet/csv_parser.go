package sheet

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// headerAliases maps the header spellings seen in real directory
// sheets onto canonical field names
var headerAliases = map[string]string{
	"row id":         "row_id",
	"row_id":         "row_id",
	"id":             "row_id",
	"phone":          "phone",
	"phone number":   "phone",
	"mobile":         "phone",
	"mobile number":  "phone",
	"contact":        "phone",
	"business":       "business_name",
	"business name":  "business_name",
	"shop":           "business_name",
	"shop name":      "business_name",
	"firm":           "business_name",
	"firm name":      "business_name",
	"contact person": "contact_person",
	"owner":          "contact_person",
	"owner name":     "contact_person",
	"email":          "email",
	"e-mail":         "email",
	"gst":            "gst_number",
	"gstin":          "gst_number",
	"gst number":     "gst_number",
	"gst no":         "gst_number",
	"address":        "street",
	"street":         "street",
	"city":           "city",
	"state":          "state",
	"pincode":        "pincode",
	"pin code":       "pincode",
	"pin":            "pincode",
}

// Parser reads one directory sheet in CSV form. It tolerates a UTF-8
// BOM, variable column counts and unknown columns; only a phone column
// is mandatory.
type Parser struct {
	reader    *csv.Reader
	headerMap map[string]int
}

// NewParser creates a parser and consumes the header row
func NewParser(r io.Reader) (*Parser, error) {
	buf := bufio.NewReader(r)

	// Strip a UTF-8 BOM if present
	if peek, err := buf.Peek(3); err == nil && len(peek) == 3 &&
		peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("read sheet header: %w", err)
	}

	headerMap := make(map[string]int, len(header))
	for idx, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := headerMap[canonical]; !seen {
				headerMap[canonical] = idx
			}
		}
	}
	if _, ok := headerMap["phone"]; !ok {
		return nil, ErrMissingPhoneColumn
	}

	return &Parser{reader: cr, headerMap: headerMap}, nil
}

// ParseAll reads every data row, collecting per-row errors instead of
// aborting. Row numbers are 1-based over data rows, matching what sheet
// editors see below the header.
func (p *Parser) ParseAll() ([]Row, []RowError) {
	var rows []Row
	var rowErrors []RowError

	for rowNum := 1; ; rowNum++ {
		record, err := p.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, NewRowError(rowNum, "", ErrCodeSheetMalformedRow, err.Error()))
			continue
		}

		row := Row{
			RowID:         p.field(record, "row_id"),
			Phone:         p.field(record, "phone"),
			BusinessName:  p.field(record, "business_name"),
			ContactPerson: p.field(record, "contact_person"),
			Email:         p.field(record, "email"),
			GSTNumber:     p.field(record, "gst_number"),
			Street:        p.field(record, "street"),
			City:          p.field(record, "city"),
			State:         p.field(record, "state"),
			Pincode:       p.field(record, "pincode"),
		}

		// Rows without a phone or business name are incomplete source
		// entries, dropped the same way as blank lines
		if isBlank(record) || row.Phone == "" || row.BusinessName == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows, rowErrors
}

func (p *Parser) field(record []string, name string) string {
	idx, ok := p.headerMap[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
