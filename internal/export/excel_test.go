package export

import (
	"context"
	"path/filepath"
	"testing"

	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/soda"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcel(t *testing.T) {
	data := &soda.ResultSet{
		Records: []soda.Record{
			{"PermitNum": "A1", "Description": "x"},
			{"PermitNum": "A2"},
		},
		RowCount: 2,
	}
	columns := []config.Column{
		{Header: "permit number", Field: "PermitNum"},
		{Header: "description", Field: "Description"},
	}
	output := filepath.Join(t.TempDir(), "permits.xlsx")

	require.NoError(t, Excel(context.Background(), data, output, columns))

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "permit number", header)

	cell, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "A2", cell)

	empty, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}
