package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Table is one loaded export with normalized column names.
// It is read-only once ReadTable returns, so it can be shared between
// any number of concurrent readers.
type Table struct {
	name        string
	granularity Granularity
	columns     []string

	userIDs []int64
	times   []time.Time
	values  map[string][]float64

	// row indexes per user, in file order
	byUser map[int64][]int
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Granularity() Granularity {
	return t.granularity
}

func (t *Table) TimeColumn() string {
	return t.granularity.TimeColumn()
}

// Len is the number of rows, duplicates included.
func (t *Table) Len() int {
	return len(t.userIDs)
}

func (t *Table) UserID(row int) int64 {
	return t.userIDs[row]
}

func (t *Table) Time(row int) time.Time {
	return t.times[row]
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Columns returns the normalized column names: Id, the time column, then metrics.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Value returns the numeric cell at row for the given column.
// Empty cells in the export are NaN.
func (t *Table) Value(column string, row int) (float64, error) {
	col, ok := t.values[column]
	if !ok {
		return 0, fmt.Errorf("%s.%s: %w", t.name, column, ErrMissingColumn)
	}
	return col[row], nil
}

// UserRows returns the row indexes of a user in file order. Unknown users get nil.
func (t *Table) UserRows(userID int64) []int {
	return t.byUser[userID]
}

// UserIDs returns the distinct user ids present in the table, ascending.
func (t *Table) UserIDs() []int64 {
	ids := make([]int64, 0, len(t.byUser))
	for id := range t.byUser {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ReadTable reads a delimited export described by src.
func ReadTable(src Source, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", src.File)
		}
		return nil, fmt.Errorf("%s: read header: %w", src.File, err)
	}

	timeColumn := src.Granularity.TimeColumn()
	positions := make(map[string]int, len(header))
	for i, raw := range header {
		// strip a UTF-8 BOM some spreadsheet tools leave on the first cell
		raw = strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff")
		positions[src.canonical(raw)] = i
	}

	required := append([]string{IDColumn, timeColumn}, src.Metrics...)
	for _, col := range required {
		if _, ok := positions[col]; !ok {
			return nil, fmt.Errorf("%s: %s: %w", src.File, col, ErrMissingColumn)
		}
	}

	t := &Table{
		name:        src.Name,
		granularity: src.Granularity,
		columns:     required,
		values:      make(map[string][]float64, len(src.Metrics)),
		byUser:      make(map[int64][]int),
	}

	idPos := positions[IDColumn]
	timePos := positions[timeColumn]
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", src.File, line, err)
		}

		userID, err := strconv.ParseInt(strings.TrimSpace(record[idPos]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: parse %s: %w", src.File, line, IDColumn, err)
		}
		ts, err := src.Granularity.ParseTime(record[timePos])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: parse %s: %w", src.File, line, timeColumn, err)
		}

		for _, metric := range src.Metrics {
			v, err := parseNumber(record[positions[metric]])
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: parse %s: %w", src.File, line, metric, err)
			}
			t.values[metric] = append(t.values[metric], v)
		}

		t.byUser[userID] = append(t.byUser[userID], len(t.userIDs))
		t.userIDs = append(t.userIDs, userID)
		t.times = append(t.times, ts)
	}

	return t, nil
}

func parseNumber(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
