package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/KaramelBytes/gdpfit/internal/logging"
	"github.com/KaramelBytes/gdpfit/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runDataPath   string
	runSheet      string
	runXColumn    string
	runYColumn    string
	runImagePath  string
	runLogPath    string
	runRequestID  string
	runSampleRows int
	runDecimal    string
	runThousands  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit the regression, save the chart and log the insight",
	Args:  cobra.NoArgs,
	RunE:  runAnalysis,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&runDataPath, "data", "d", "", "CSV/TSV/XLSX dataset (default: built-in sample)")
	f.StringVar(&runSheet, "sheet", "", "XLSX: sheet name (default: first sheet)")
	f.StringVar(&runXColumn, "x-column", "gdpPercap", "independent variable column")
	f.StringVar(&runYColumn, "y-column", "lifeExp", "dependent variable column")
	f.StringVarP(&runImagePath, "image", "o", "output.png", "path of the PNG chart")
	f.StringVar(&runLogPath, "log-file", "pipeline.log", "append-only log file")
	f.StringVar(&runRequestID, "request-id", "req_001", "identifier prefixed to log lines ('auto' generates one)")
	f.IntVar(&runSampleRows, "sample-rows", 5, "number of preview rows to print")
	f.StringVar(&runDecimal, "decimal", "", "decimal separator: '.'|'comma' (strict parsing if omitted)")
	f.StringVar(&runThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
}

func runAnalysis(cmd *cobra.Command, _ []string) (err error) {
	c := *effectiveConfig()
	f := cmd.Flags()
	// Apply CLI overrides if provided
	if f.Changed("data") {
		c.DataPath = runDataPath
	}
	if f.Changed("sheet") {
		c.Sheet = runSheet
	}
	if f.Changed("x-column") {
		c.XColumn = runXColumn
	}
	if f.Changed("y-column") {
		c.YColumn = runYColumn
	}
	if f.Changed("image") {
		c.ImagePath = runImagePath
	}
	if f.Changed("log-file") {
		c.LogPath = runLogPath
	}
	if f.Changed("request-id") {
		c.RequestID = runRequestID
	}
	if f.Changed("sample-rows") && runSampleRows > 0 {
		c.SampleRows = runSampleRows
	}
	if f.Changed("decimal") {
		c.DecimalSeparator = runDecimal
	}
	if f.Changed("thousands") {
		c.ThousandsSeparator = runThousands
	}

	var mirror io.Writer
	if debug {
		mirror = os.Stderr
	}
	log := logging.New(logging.Options{Path: c.LogPath, RequestID: c.RequestID, Mirror: mirror})
	defer func() {
		if cerr := log.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if _, err := pipeline.Run(&c, cmd.OutOrStdout(), log); err != nil {
		return err
	}
	okf(cmd, "Analysis complete. Check %s for logged outputs.", c.LogPath)
	return nil
}
