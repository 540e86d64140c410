package cmd

import (
	"os"

	cfgpkg "github.com/KaramelBytes/gdpfit/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "gdpfit",
	Short: "gdpfit: regress life expectancy on GDP per capita",
	Long: `gdpfit cleans a two-column dataset of GDP per capita and life expectancy,
fits an ordinary least squares line, saves a scatter plot with the fit and
logs the resulting insight. Without arguments it runs on a built-in sample.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.gdpfit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "mirror log entries, including debug detail, to stderr")
	addRunFlags(rootCmd)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		warnColor.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded configuration, or defaults when
// loadConfig has not run.
func effectiveConfig() *cfgpkg.Global {
	if cfg == nil {
		cfg = cfgpkg.Default()
	}
	return cfg
}

func okf(cmd *cobra.Command, format string, args ...any) {
	okColor.Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}
