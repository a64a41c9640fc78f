package export

import (
	"context"
	"fmt"
	"strings"

	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/soda"
)

var Formats = []string{"csv", "json", "xlsx"}

// Write dispatches to the exporter for the given format. Output runs
// strictly after a successful fetch: every exporter creates the file
// itself, so a failed query leaves nothing on disk.
func Write(
	ctx context.Context, data *soda.ResultSet, output string,
	format string, columns []config.Column,
) error {
	switch strings.ToLower(format) {
	case "csv":
		return CSV(ctx, data, output, columns)
	case "json":
		return JSON(ctx, data, output)
	case "xlsx":
		return Excel(ctx, data, output, columns)
	default:
		return fmt.Errorf("output format %s is not implemented", format)
	}
}

// resolveColumns falls back to the fields observed in the result set
// when no projection is configured.
func resolveColumns(data *soda.ResultSet, columns []config.Column) ([]config.Column, error) {
	if len(columns) > 0 {
		return columns, nil
	}

	fields := data.Columns()
	if len(fields) == 0 {
		return nil, fmt.Errorf("no data found")
	}

	columns = make([]config.Column, len(fields))
	for i, field := range fields {
		columns[i] = config.Column{Header: field, Field: field}
	}

	return columns, nil
}
