// Package importer reads word lists from Excel and CSV files.
//
// Both formats use the same column layout: word, translation, context and
// pronunciation. Only the first two are required. A first row whose first
// cell reads "word" is treated as a header and skipped.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vocab-companion/internal/service"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Column positions in a row.
const (
	colWord = iota
	colTranslation
	colContext
	colPronunciation
)

// Options controls how a file is read.
type Options struct {
	Sheet string // Excel sheet name, the first sheet when empty
}

// Result holds the words read from a file.
type Result struct {
	Words   []service.WordInput
	Skipped int      // rows without a word or translation
	Errors  []string // per-row problems, 1-based row numbers
}

// ReadFile reads path from fsys, choosing the format by extension.
func ReadFile(fsys afero.Fs, path string, opts Options) (*Result, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadExcel(bytes.NewReader(data), opts)
	case ".csv":
		return ReadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadExcel reads words from an .xlsx workbook.
func ReadExcel(r io.Reader, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &Result{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows of %q: %w", sheet, err)
	}

	return collect(rows), nil
}

// ReadCSV reads words from comma-separated text.
func ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return collect(rows), nil
}

func collect(rows [][]string) *Result {
	res := &Result{}

	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}

		in := service.WordInput{
			Word:          cell(row, colWord),
			Translation:   cell(row, colTranslation),
			Context:       cell(row, colContext),
			Pronunciation: cell(row, colPronunciation),
		}

		if in.Word == "" || in.Translation == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: word and translation are required", i+1))
			continue
		}

		res.Words = append(res.Words, in)
	}

	return res
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isHeader(row []string) bool {
	return strings.EqualFold(cell(row, colWord), "word")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
