package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a two-column dataset from path, dispatching on its extension.
func Load(path string, opt Options) (*Raw, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt)
	}
	return LoadCSV(path, opt)
}

// LoadCSV reads a delimited file with a header row.
func LoadCSV(path string, opt Options) (*Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %s is empty", filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	raw, xi, yi, err := newRaw(filepath.Base(path), header, opt)
	if err != nil {
		return nil, err
	}
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		raw.Records = append(raw.Records, Record{X: cell(rec, xi), Y: cell(rec, yi)})
	}
	return raw, nil
}

// LoadXLSX reads a worksheet whose first row is the header.
func LoadXLSX(path string, opt Options) (*Raw, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()
	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("read workbook: %s has no sheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read header: sheet %q is empty", sheet)
	}
	raw, xi, yi, err := newRaw(filepath.Base(path)+":"+sheet, rows[0], opt)
	if err != nil {
		return nil, err
	}
	for _, rec := range rows[1:] {
		raw.Records = append(raw.Records, Record{X: cell(rec, xi), Y: cell(rec, yi)})
	}
	return raw, nil
}

func newRaw(name string, header []string, opt Options) (*Raw, int, int, error) {
	xcol, ycol := opt.columns()
	xi, yi := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case xi < 0 && strings.EqualFold(h, xcol):
			xi = i
		case yi < 0 && strings.EqualFold(h, ycol):
			yi = i
		}
	}
	if xi < 0 {
		return nil, 0, 0, &ColumnError{Source: name, Column: xcol}
	}
	if yi < 0 {
		return nil, 0, 0, &ColumnError{Source: name, Column: ycol}
	}
	return &Raw{Name: name, XColumn: xcol, YColumn: ycol}, xi, yi, nil
}

// cell returns rec[i], treating short rows as missing trailing values.
func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
