package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/botsift/botsift-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set botsift configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		fmt.Printf("seed: %d\n", c.Seed)
		if c.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", c.SheetName)
		}
		fmt.Printf("sheet_index: %d\n", c.SheetIndex)
		if c.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", c.Delimiter)
		}
		fmt.Printf("correlations: %t\n", c.Correlations)
		if len(c.DummyColumns) > 0 {
			fmt.Printf("dummy_columns: %s\n", strings.Join(c.DummyColumns, ","))
		}
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
		case "seed":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("seed must be an integer: %w", err)
			}
			cfg.Seed = n
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("sheet_index must be a positive integer")
			}
			cfg.SheetIndex = n
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "correlations":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("correlations must be true or false")
			}
			cfg.Correlations = b
		case "dummy_columns":
			cfg.DummyColumns = strings.Split(val, ",")
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
