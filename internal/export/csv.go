package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/soda"
)

// CSV writes a header row followed by one row per record, in projection
// order. Fields missing from a record become empty cells; quoting is
// handled by encoding/csv. The file is flushed and closed on every exit
// path, including mid-write failures.
func CSV(
	ctx context.Context, data *soda.ResultSet,
	output string, columns []config.Column,
) (err error) {
	columns, err = resolveColumns(data, columns)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		slog.ErrorContext(ctx, "Error creating file", "error", err)
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range data.Records {
		for i, col := range columns {
			row[i] = rec.Field(col.Field)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}
