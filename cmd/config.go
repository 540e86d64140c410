package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/gdpfit/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set gdpfit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		out := cmd.OutOrStdout()
		data := c.DataPath
		if data == "" {
			data = "(built-in sample)"
		}
		fmt.Fprintf(out, "data_path: %s\n", data)
		if c.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", c.Sheet)
		}
		fmt.Fprintf(out, "x_column: %s\n", c.XColumn)
		fmt.Fprintf(out, "y_column: %s\n", c.YColumn)
		if c.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %q\n", c.DecimalSeparator)
		}
		if c.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", c.ThousandsSeparator)
		}
		fmt.Fprintf(out, "image_path: %s\n", c.ImagePath)
		fmt.Fprintf(out, "log_path: %s\n", c.LogPath)
		fmt.Fprintf(out, "request_id: %s\n", c.RequestID)
		fmt.Fprintf(out, "sample_rows: %d\n", c.SampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "sheet":
			cfg.Sheet = val
		case "x_column":
			cfg.XColumn = val
		case "y_column":
			cfg.YColumn = val
		case "decimal_separator":
			if _, err := cfgpkg.Separator(val); err != nil {
				return fmt.Errorf("invalid decimal_separator: %w", err)
			}
			cfg.DecimalSeparator = val
		case "thousands_separator":
			if _, err := cfgpkg.Separator(val); err != nil {
				return fmt.Errorf("invalid thousands_separator: %w", err)
			}
			cfg.ThousandsSeparator = val
		case "image_path":
			cfg.ImagePath = val
		case "log_path":
			cfg.LogPath = val
		case "request_id":
			cfg.RequestID = val
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		default:
			return fmt.Errorf("unknown key: %s (valid: %v)", key, cfgpkg.Keys)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		okf(cmd, "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
