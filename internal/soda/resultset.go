package soda

import (
	"fmt"
	"slices"
	"time"
)

// Record is one dataset row, field name to value. The schema belongs to
// the dataset, not to this client: fields may be missing, values may be
// strings or nested objects. Neither is an error.
type Record map[string]any

// Field renders the named field as a string. Absent or null fields come
// back as the empty string.
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}

	switch v := v.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Has reports whether the record carries the named field at all.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

type ResultSet struct {
	Records  []Record
	RowCount int
	Duration time.Duration
}

// Columns returns the union of field names across all records, sorted
// per record so the result is stable. Used when no projection is
// configured.
func (rs *ResultSet) Columns() []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, rec := range rs.Records {
		names := make([]string, 0, len(rec))
		for name := range rec {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}

	return columns
}
