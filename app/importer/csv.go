package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV splits an upload into a header row and data rows. Ragged rows are
// tolerated: short rows are padded to the header width, long rows truncated.
func parseCSV(contents []byte, maxRows int) (headers []string, rows [][]string, err error) {
	contents = bytes.TrimPrefix(contents, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(contents))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err = reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no header row: %v", ErrMalformedInput, err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: CSV parse error: %v", ErrMalformedInput, err)
		}
		if len(rows) >= maxRows {
			return nil, nil, fmt.Errorf("%w: file exceeds %d data rows", ErrMalformedInput, maxRows)
		}
		rows = append(rows, padRow(record, len(headers)))
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: file contains no data rows", ErrMalformedInput)
	}

	return headers, rows, nil
}

func padRow(record []string, width int) []string {
	row := make([]string, width)
	for i := 0; i < width && i < len(record); i++ {
		row[i] = record[i]
	}
	return row
}
