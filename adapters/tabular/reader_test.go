package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vizier/domain/core"
	"vizier/internal/cache"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReaderCSV(t *testing.T) {
	path := writeFile(t, "sales.csv", "region,revenue\neast, 120\nwest,85\n")
	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "revenue"}, tbl.ColumnNames())
	assert.Equal(t, []string{"east", "west"}, tbl.Column("region").Values)
	assert.Equal(t, []string{"120", "85"}, tbl.Column("revenue").Values, "cells are trimmed")
}

func TestReaderTSV(t *testing.T) {
	path := writeFile(t, "sales.tsv", "region\trevenue\neast\t120\n")
	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)
	assert.Equal(t, []string{"east"}, tbl.Column("region").Values)
}

func TestReaderShortRowsPadded(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b,c\n1,2\n4,5,6\n")
	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)
	assert.Equal(t, []string{"", "6"}, tbl.Column("c").Values)
	assert.Equal(t, 2, tbl.RowCount())
}

func TestReaderHeaderOnlyRejected(t *testing.T) {
	path := writeFile(t, "empty.csv", "a,b\n")
	_, err := NewReader(path).Read(core.NewDatasetID())
	require.Error(t, err)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "gone.csv")).Read(core.NewDatasetID())
	require.Error(t, err)
}

func TestReaderJSONPreservesKeyOrder(t *testing.T) {
	path := writeFile(t, "data.json",
		`[{"zeta":1,"alpha":"x","mid":true},{"zeta":2,"alpha":"y","mid":false}]`)
	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tbl.ColumnNames(),
		"column order follows the first object's key order")
	assert.Equal(t, []string{"1", "2"}, tbl.Column("zeta").Values)
	assert.Equal(t, []string{"true", "false"}, tbl.Column("mid").Values)
}

func TestReaderJSONLateKeysAndNulls(t *testing.T) {
	path := writeFile(t, "data.json",
		`[{"a":1},{"a":2,"b":"late"},{"a":null,"b":"x","nested":{"deep":1}}]`)
	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "nested"}, tbl.ColumnNames())
	assert.Equal(t, []string{"1", "2", ""}, tbl.Column("a").Values, "null becomes the empty marker")
	assert.Equal(t, []string{"", "late", "x"}, tbl.Column("b").Values, "late keys are backfilled")
	assert.Equal(t, []string{"", "", ""}, tbl.Column("nested").Values, "nested values are skipped")
}

func TestReaderJSONNonArrayRejected(t *testing.T) {
	path := writeFile(t, "data.json", `{"a":1}`)
	_, err := NewReader(path).Read(core.NewDatasetID())
	require.Error(t, err)
}

func TestReaderExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"region", "revenue"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"east", 120}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"west", 85}))
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))

	tbl, err := NewReader(path).Read(core.NewDatasetID())
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "revenue"}, tbl.ColumnNames())
	assert.Equal(t, []string{"east", "west"}, tbl.Column("region").Values)
	assert.Equal(t, []string{"120", "85"}, tbl.Column("revenue").Values)
}

func TestSourceCachesLoadedTables(t *testing.T) {
	path := writeFile(t, "sales.csv", "region,revenue\neast,120\n")
	id := core.NewDatasetID()

	source := NewSource(cache.NewTableCache(4))
	source.Register(id, path)

	first, err := source.Table(context.Background(), id)
	require.NoError(t, err)

	// Deleting the file proves the second read comes from the cache.
	require.NoError(t, os.Remove(path))
	second, err := source.Table(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSourceUnknownDataset(t *testing.T) {
	source := NewSource(cache.NewTableCache(4))
	_, err := source.Table(context.Background(), core.NewDatasetID())
	require.Error(t, err)
}
