package source

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/okian/pulse/internal/domain/model"
)

// The proposal log represents a not-awarded status with a cell that the
// export turns into the spreadsheet error marker. It is a real status,
// distinct from "no data", and loss analysis matches on it downstream.
const (
	errorSentinel    = "#N/A"
	notAwardedStatus = "NA"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseOption applies a configuration option to ParseTable.
type ParseOption func(*parseSettings)

type parseSettings struct {
	restoreStatusSentinel bool
}

// WithStatusSentinel restores "#N/A" status cells as the literal "NA"
// instead of letting the error marker leak into the status vocabulary.
func WithStatusSentinel() ParseOption {
	return func(s *parseSettings) {
		s.restoreStatusSentinel = true
	}
}

// ParseTable parses one exported CSV document into a header-driven table.
// The first record is the header row; a blank header cell gets a
// positional name. Rows may be ragged: missing cells default to the empty
// string, surplus cells are dropped.
func ParseTable(data []byte, opts ...ParseOption) (model.Table, error) {
	var settings parseSettings
	for _, opt := range opts {
		opt(&settings)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(records) == 0 {
		return model.Table{}, nil
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		if h == "" {
			h = fmt.Sprintf("Col%d", i)
		}
		columns[i] = h
	}

	table := model.Table{Columns: columns}
	for _, record := range records[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			if settings.restoreStatusSentinel && col == model.ColStatus && value == errorSentinel {
				value = notAwardedStatus
			}
			row[col] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
