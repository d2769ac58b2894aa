// Package tabular reads CSV, TSV, Excel, and JSON files into the canonical
// column-oriented table, and serves them through the TableSource port with
// an injected LRU cache.
package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"vizier/domain/core"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
)

// Reader loads one tabular file. The format is chosen by extension: .csv,
// .tsv, .xlsx, .json.
type Reader struct {
	filePath string
	fileType string
}

// NewReader creates a reader for the given path.
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := strings.TrimPrefix(ext, ".")
	if fileType == "" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read materializes the file as a table for the given dataset id. Missing
// cells become the canonical empty marker; header names are trimmed.
func (r *Reader) Read(id core.DatasetID) (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.NotFoundf("%s file %s", r.fileType, r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readDelimited(id, ',')
	case "tsv":
		return r.readDelimited(id, '\t')
	case "xlsx":
		return r.readExcel(id)
	case "json":
		return r.readJSON(id)
	}
	return nil, apperrors.ValidationErrorf("unsupported file type %q", r.fileType)
}

func (r *Reader) readDelimited(id core.DatasetID, delimiter rune) (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "opening %s file", r.fileType)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading %s file", r.fileType)
	}
	return rowsToTable(id, rows)
}

func (r *Reader) readExcel(id core.DatasetID) (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "opening Excel file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, apperrors.ValidationErrorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.Wrapf(err, "reading sheet %q", sheet)
	}
	return rowsToTable(id, rows)
}

// rowsToTable pivots header-plus-data rows into columns. Short rows are
// padded with the empty marker so every column has the same length.
func rowsToTable(id core.DatasetID, rows [][]string) (*table.Table, error) {
	if len(rows) < 2 {
		return nil, apperrors.ValidationErrorf("file must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Name: h, Values: make([]string, 0, len(rows)-1)}
	}
	for _, row := range rows[1:] {
		for i := range columns {
			cell := table.Empty
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			columns[i].Values = append(columns[i].Values, cell)
		}
	}
	return table.New(id, columns...), nil
}
