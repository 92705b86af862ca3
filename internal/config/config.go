package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ChartsDir     string `mapstructure:"charts_dir" yaml:"charts_dir"`
	DefaultOutput string `mapstructure:"default_output" yaml:"default_output"`
	// Delimiter is a single character; "tab" is accepted as an alias for '\t'.
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	HistogramBins int    `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height" yaml:"chart_height"`
	CompressPDF   bool   `mapstructure:"compress_pdf" yaml:"compress_pdf"`
}

// Defaults returns the built-in configuration used when no file or env overrides exist.
func Defaults() *Global {
	return &Global{
		ChartsDir:     "charts",
		DefaultOutput: "report.pdf",
		Delimiter:     ",",
		HistogramBins: 10,
		ChartWidth:    800,
		ChartHeight:   400,
		CompressPDF:   true,
	}
}

// DelimiterRune resolves the configured delimiter.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case "tab", "\t":
		return '\t', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' ';' '|' or 'tab')", c.Delimiter)
	}
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".csvreport", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.csvreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVREPORT")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("charts_dir", d.ChartsDir)
	v.SetDefault("default_output", d.DefaultOutput)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("compress_pdf", d.CompressPDF)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".csvreport"))
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
