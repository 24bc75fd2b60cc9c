// Package config loads and persists the botsift CLI configuration.
// Precedence: flags > environment (BOTSIFT_*) > config file > defaults.
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
	// Seed drives the reproducible noise sequence in the feature engine.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// SheetName selects an .xlsx worksheet by name; overrides SheetIndex.
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	// SheetIndex is the 1-based worksheet index used when SheetName is empty.
	SheetIndex int `mapstructure:"sheet_index" yaml:"sheet_index"`
	// Delimiter for CSV inputs ("," ";" or "tab"); empty means sniff.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Correlations toggles the Pearson correlation section of reports.
	Correlations bool `mapstructure:"correlations" yaml:"correlations"`
	// DummyColumns are one-hot encoded before reporting when set.
	DummyColumns []string `mapstructure:"dummy_columns" yaml:"dummy_columns"`
}

// Save writes the configuration to cfgFile, or to ~/.botsift/config.yaml
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".botsift")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("BOTSIFT")
	v.AutomaticEnv()

	v.SetDefault("seed", 42)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("delimiter", "")
	v.SetDefault("correlations", true)
	v.SetDefault("dummy_columns", []string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".botsift")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
