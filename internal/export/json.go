package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"ohnitiel/sodapop/internal/soda"
)

// JSON writes the records back out as an indented JSON array, exactly
// as fetched. No projection is applied.
func JSON(ctx context.Context, data *soda.ResultSet, output string) (err error) {
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

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	return enc.Encode(data.Records)
}
