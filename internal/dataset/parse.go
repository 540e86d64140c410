package dataset

import (
	"strconv"
	"strings"
)

// Options controls how a dataset is read and coerced.
type Options struct {
	// XColumn and YColumn select the independent and dependent variables by
	// header name (case-insensitive). Empty means the sample defaults.
	XColumn string
	YColumn string
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// Sheet selects an XLSX worksheet. Empty means the first sheet.
	Sheet string
	// Numeric locale. When both are 0 parsing is strict: only the Go float
	// grammar is accepted, so "5,000" is unparseable.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// DefaultOptions returns options matching the built-in sample.
func DefaultOptions() Options {
	return Options{XColumn: DefaultXColumn, YColumn: DefaultYColumn}
}

func (o Options) columns() (string, string) {
	x, y := o.XColumn, o.YColumn
	if x == "" {
		x = DefaultXColumn
	}
	if y == "" {
		y = DefaultYColumn
	}
	return x, y
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	dec, thou := opt.DecimalSeparator, opt.ThousandsSeparator
	if thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != 0 && dec != '.' {
		// a literal '.' is not valid when another rune is the decimal mark
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}
