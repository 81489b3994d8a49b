package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// TimeColumn is the raw event timestamp column, in microseconds.
	TimeColumn = "Time"
	// OrdersColumn holds the cumulative operation count in latency files.
	OrdersColumn = "NumOfOrders"
	// PriceColumn holds the traded price in trade files.
	PriceColumn = "Price"
)

// LoadCSV reads path and returns its Time column paired with valueColumn.
func LoadCSV(path, valueColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Kind: InputMissing, Err: err}
	}
	defer f.Close()
	return ReadCSV(f, path, valueColumn)
}

// ReadCSV is LoadCSV over an already opened reader; name is only used in errors.
func ReadCSV(r io.Reader, name, valueColumn string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &InputError{Path: name, Kind: InputEmpty}
	}
	if err != nil {
		return nil, &InputError{Path: name, Kind: InputEmpty, Err: fmt.Errorf("read header: %w", err)}
	}
	timeIdx, valueIdx := -1, -1
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch col {
		case TimeColumn:
			timeIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, &InputError{Path: name, Kind: InputColumn, Column: TimeColumn}
	}
	if valueIdx < 0 {
		return nil, &InputError{Path: name, Kind: InputColumn, Column: valueColumn}
	}

	ds := &Dataset{TimeColumn: TimeColumn, ValueColumn: valueColumn}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			line := 0
			if errors.As(err, &perr) {
				line = perr.StartLine
			}
			return nil, &FormatError{Path: name, Row: line, Err: err}
		}
		if blank(rec) {
			continue
		}
		t, err := parseCell(rec, timeIdx)
		if err != nil {
			return nil, &FormatError{Path: name, Row: lineOf(cr, rec, timeIdx), Column: TimeColumn, Raw: cell(rec, timeIdx), Err: err}
		}
		v, err := parseCell(rec, valueIdx)
		if err != nil {
			return nil, &FormatError{Path: name, Row: lineOf(cr, rec, valueIdx), Column: valueColumn, Raw: cell(rec, valueIdx), Err: err}
		}
		ds.Records = append(ds.Records, Record{Time: t, Value: v})
	}
	if len(ds.Records) == 0 {
		return nil, &InputError{Path: name, Kind: InputEmpty}
	}
	return ds, nil
}

// lineOf returns the file line of field idx in the last read record.
// encoding/csv skips blank lines, so a record counter would drift.
func lineOf(cr *csv.Reader, rec []string, idx int) int {
	if idx >= len(rec) {
		idx = 0
	}
	line, _ := cr.FieldPos(idx)
	return line
}

func parseCell(rec []string, idx int) (float64, error) {
	if idx >= len(rec) {
		return 0, errors.New("short row")
	}
	return strconv.ParseFloat(strings.TrimSpace(rec[idx]), 64)
}

func cell(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
