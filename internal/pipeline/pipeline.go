package pipeline

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/gdpfit/internal/chart"
	"github.com/KaramelBytes/gdpfit/internal/config"
	"github.com/KaramelBytes/gdpfit/internal/dataset"
	"github.com/KaramelBytes/gdpfit/internal/logging"
	"github.com/KaramelBytes/gdpfit/internal/regression"
	"github.com/KaramelBytes/gdpfit/internal/report"
	"go.uber.org/zap"
)

// Result carries everything one run produced.
type Result struct {
	Frame     *dataset.Frame
	Model     *regression.Model
	Predicted []float64
	Insight   report.Insight
	ImagePath string
}

// DatasetOptions converts the configuration into dataset reading options.
func DatasetOptions(cfg *config.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if cfg.XColumn != "" {
		opt.XColumn = cfg.XColumn
	}
	if cfg.YColumn != "" {
		opt.YColumn = cfg.YColumn
	}
	opt.Sheet = cfg.Sheet
	var err error
	if opt.DecimalSeparator, err = config.Separator(cfg.DecimalSeparator); err != nil {
		return opt, fmt.Errorf("decimal separator: %w", err)
	}
	if opt.ThousandsSeparator, err = config.Separator(cfg.ThousandsSeparator); err != nil {
		return opt, fmt.Errorf("thousands separator: %w", err)
	}
	return opt, nil
}

// Run loads and cleans the dataset, fits the regression, renders the chart
// and reports the insight. Data problems are detected before any file is
// written.
func Run(cfg *config.Global, out io.Writer, log *logging.Logger) (*Result, error) {
	opt, err := DatasetOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := dataset.Sample()
	if cfg.DataPath != "" {
		if raw, err = dataset.Load(cfg.DataPath, opt); err != nil {
			return nil, err
		}
	}
	frame := dataset.Clean(raw, opt)
	log.Debug("cleaned dataset",
		zap.String("source", raw.Name),
		zap.Int("rows", frame.Rows()),
		zap.Int("dropped", frame.Dropped))

	rep := &report.Reporter{Out: out, Logger: log, SampleRows: cfg.SampleRows}
	if err := rep.PrintDiagnostics(frame); err != nil {
		return nil, fmt.Errorf("print preview: %w", err)
	}

	xs, ys := frame.Xs(), frame.Ys()
	model, err := regression.Fit(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("fit %s on %s: %w", frame.YColumn, frame.XColumn, err)
	}
	log.Debug("fitted model",
		zap.Float64("slope", model.Slope),
		zap.Float64("intercept", model.Intercept),
		zap.Float64("r2", model.RSquared))

	res := &Result{Frame: frame, Model: model, Predicted: model.PredictAll(xs), ImagePath: cfg.ImagePath}
	if err := chart.Render(chart.Spec{Xs: xs, Ys: ys, Predicted: res.Predicted}, cfg.ImagePath); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Figure saved as %s\n", cfg.ImagePath)

	res.Insight = report.NewInsight(model, log.RequestID)
	rep.PrintInsight(res.Insight)
	if err := rep.Log(res.Insight); err != nil {
		return nil, err
	}
	return res, nil
}
