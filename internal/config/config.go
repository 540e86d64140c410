package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/gdpfit/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input. An empty DataPath selects the built-in sample.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	Sheet    string `mapstructure:"sheet" yaml:"sheet"`
	XColumn  string `mapstructure:"x_column" yaml:"x_column"`
	YColumn  string `mapstructure:"y_column" yaml:"y_column"`
	// Numeric locale: "" (strict), "." or "," for decimals; "", ",", "." or "space" for thousands.
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	// Outputs
	ImagePath  string `mapstructure:"image_path" yaml:"image_path"`
	LogPath    string `mapstructure:"log_path" yaml:"log_path"`
	RequestID  string `mapstructure:"request_id" yaml:"request_id"`
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_path", "sheet", "x_column", "y_column", "decimal_separator",
	"thousands_separator", "image_path", "log_path", "request_id", "sample_rows",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "")
	v.SetDefault("sheet", "")
	v.SetDefault("x_column", "gdpPercap")
	v.SetDefault("y_column", "lifeExp")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("image_path", "output.png")
	v.SetDefault("log_path", "pipeline.log")
	v.SetDefault("request_id", "req_001")
	v.SetDefault("sample_rows", 5)
}

// Default returns the configuration used when no file, env or flags are set.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".gdpfit", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.gdpfit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := utils.EnsureDir(path); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GDPFIT")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		path, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Separator maps a configured separator name to its rune; 0 means unset.
func Separator(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ".", "dot":
		return '.', nil
	case ",", "comma":
		return ',', nil
	case " ", "space":
		return ' ', nil
	}
	return 0, fmt.Errorf("unsupported separator %q (use '.'|','|'space')", s)
}
