package dataset

import (
	"fmt"
	"math"
)

// Default column names of the built-in sample.
const (
	DefaultXColumn = "gdpPercap"
	DefaultYColumn = "lifeExp"
)

// Raw is a two-column table as read from its source, before type coercion.
type Raw struct {
	Name    string
	XColumn string
	YColumn string
	Records []Record
}

// Record is one untyped observation.
type Record struct {
	X string
	Y string
}

// Observation is one cleaned, fully numeric observation.
type Observation struct {
	X float64
	Y float64
}

// Frame holds the observations that survived cleaning, in source order.
type Frame struct {
	Name    string
	XColumn string
	YColumn string
	Obs     []Observation
	// Dropped counts source rows removed because a field was missing or unparseable.
	Dropped int
}

// Sample returns the built-in GDP per capita / life expectancy dataset.
func Sample() *Raw {
	gdp := []string{"5000", "15000", "25000", "35000", "45000", "8000", "12000", "30000"}
	life := []string{"65", "75", "78", "80", "82", "68", "72", "79"}
	r := &Raw{Name: "sample", XColumn: DefaultXColumn, YColumn: DefaultYColumn}
	for i := range gdp {
		r.Records = append(r.Records, Record{X: gdp[i], Y: life[i]})
	}
	return r
}

// Len returns the number of source records.
func (r *Raw) Len() int { return len(r.Records) }

// Clean coerces both columns to float64 and drops every record where either
// value is missing, unparseable or non-finite. Surviving rows keep their order.
func Clean(r *Raw, opt Options) *Frame {
	f := &Frame{Name: r.Name, XColumn: r.XColumn, YColumn: r.YColumn}
	f.Obs = make([]Observation, 0, len(r.Records))
	for _, rec := range r.Records {
		x, okx := parseNumeric(rec.X, opt)
		y, oky := parseNumeric(rec.Y, opt)
		if !okx || !oky {
			f.Dropped++
			continue
		}
		f.Obs = append(f.Obs, Observation{X: x, Y: y})
	}
	return f
}

// Rows returns the number of retained observations.
func (f *Frame) Rows() int { return len(f.Obs) }

// Xs returns the independent variable in row order.
func (f *Frame) Xs() []float64 {
	out := make([]float64, len(f.Obs))
	for i, o := range f.Obs {
		out[i] = o.X
	}
	return out
}

// Ys returns the dependent variable in row order.
func (f *Frame) Ys() []float64 {
	out := make([]float64, len(f.Obs))
	for i, o := range f.Obs {
		out[i] = o.Y
	}
	return out
}

// Head returns up to n leading observations.
func (f *Frame) Head(n int) []Observation {
	if n < 0 || n > len(f.Obs) {
		n = len(f.Obs)
	}
	return f.Obs[:n]
}

// ColumnType pairs a column name with its element type.
type ColumnType struct {
	Name string
	Type string
}

// DTypes reports the element type of each column after coercion.
func (f *Frame) DTypes() []ColumnType {
	return []ColumnType{
		{Name: f.XColumn, Type: "float64"},
		{Name: f.YColumn, Type: "float64"},
	}
}

// ColumnError reports a configured column that is absent from the source.
type ColumnError struct {
	Source string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in %s", e.Column, e.Source)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
