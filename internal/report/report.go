package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/gdpfit/internal/dataset"
	"github.com/KaramelBytes/gdpfit/internal/logging"
	"github.com/KaramelBytes/gdpfit/internal/regression"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Insight is the narrative result of one fit.
type Insight struct {
	Text      string
	Slope     float64
	RSquared  float64
	RequestID string
}

// InsightText phrases a slope as the life expectancy gained per $1,000 of
// GDP per capita.
func InsightText(slope float64) string {
	return fmt.Sprintf("Every $1,000 increase in GDP per capita correlates with ~%.2f more years of life expectancy.", slope*1000)
}

// NewInsight derives the insight for a fitted model.
func NewInsight(m *regression.Model, requestID string) Insight {
	return Insight{Text: InsightText(m.Slope), Slope: m.Slope, RSquared: m.RSquared, RequestID: requestID}
}

// Reporter prints human-readable diagnostics and records the insight in the
// run log.
type Reporter struct {
	Out        io.Writer
	Logger     *logging.Logger
	SampleRows int
}

// PrintDiagnostics prints column types and a preview of the cleaned data.
func (r *Reporter) PrintDiagnostics(f *dataset.Frame) error {
	fmt.Fprintln(r.Out, "Data after numeric conversion:")
	for _, c := range f.DTypes() {
		fmt.Fprintf(r.Out, "%-12s %s\n", c.Name, c.Type)
	}
	if f.Dropped > 0 {
		fmt.Fprintf(r.Out, "⚠ Dropped %d of %d rows with missing or non-numeric values\n", f.Dropped, f.Rows()+f.Dropped)
	}
	rows := f.Head(r.sampleRows())
	if len(rows) == 0 {
		fmt.Fprintln(r.Out, "(no rows)")
		return nil
	}
	table := tablewriter.NewWriter(r.Out)
	table.Header([]string{"", f.XColumn, f.YColumn})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for i, o := range rows {
		data = append(data, []string{strconv.Itoa(i), formatValue(o.X), formatValue(o.Y)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintInsight prints the insight sentence and the goodness of fit.
func (r *Reporter) PrintInsight(ins Insight) {
	fmt.Fprintf(r.Out, "\nInsight: %s\n", ins.Text)
	fmt.Fprintf(r.Out, "R-squared: %.3f\n", ins.RSquared)
}

// Log appends the chart notice, the slope and the insight to the run log
// and reports any failure to persist them.
func (r *Reporter) Log(ins Insight) error {
	r.Logger.Info("Generated chart and insight")
	r.Logger.Info(fmt.Sprintf("Slope coefficient: %.6f", ins.Slope))
	r.Logger.Info("Insight: " + ins.Text)
	return r.Logger.Flush()
}

func (r *Reporter) sampleRows() int {
	if r.SampleRows <= 0 {
		return 5
	}
	return r.SampleRows
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
