package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/botsift/botsift-cli/internal/features"
	"github.com/botsift/botsift-cli/internal/ingest"
	"github.com/botsift/botsift-cli/internal/normalize"
	"github.com/botsift/botsift-cli/internal/report"
	"github.com/botsift/botsift-cli/internal/table"
)

var (
	runSeed       int64
	runSheetName  string
	runSheetIndex int
	runDelimiter  string
	runOutputPath string
	runCorr       bool
	runDummies    []string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run the full pipeline: load, normalize, engineer, report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := effectiveConfig()

		seed := c.Seed
		if cmd.Flags().Changed("seed") {
			seed = runSeed
		}
		sheetName := c.SheetName
		if runSheetName != "" {
			sheetName = runSheetName
		}
		sheetIndex := c.SheetIndex
		if runSheetIndex > 0 {
			sheetIndex = runSheetIndex
		}
		delimFlag := c.Delimiter
		if runDelimiter != "" {
			delimFlag = runDelimiter
		}
		delim, err := parseDelimiter(delimFlag)
		if err != nil {
			return err
		}
		dummies := c.DummyColumns
		if len(runDummies) > 0 {
			dummies = runDummies
		}

		raw, err := ingest.Load(path, ingest.Options{
			SheetName:  sheetName,
			SheetIndex: sheetIndex,
			Delimiter:  delim,
		})
		if err != nil {
			return err
		}
		debugf("loaded %d rows, %d columns", raw.Len(), len(raw.Columns()))

		cleaned, err := normalize.Clean(raw)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		engineered, err := features.Engineer(cleaned, seed)
		if err != nil {
			return fmt.Errorf("engineer features: %w", err)
		}
		if len(dummies) > 0 {
			engineered, err = table.Dummies(engineered, dummies)
			if err != nil {
				return err
			}
		}

		corr := c.Correlations
		if cmd.Flags().Changed("correlations") {
			corr = runCorr
		}
		rep := report.Build(engineered, filepath.Base(path), uuid.NewString(), report.Options{
			Columns:      features.Derived,
			GroupBy:      features.ColBotLike,
			Correlations: corr,
		})
		md := rep.Markdown()

		if runOutputPath != "" {
			if err := os.WriteFile(runOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", runOutputPath)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

func init() {
	runCmd.Flags().Int64Var(&runSeed, "seed", features.DefaultSeed, "noise seed for reproducible runs")
	runCmd.Flags().StringVar(&runSheetName, "sheet-name", "", "xlsx worksheet name")
	runCmd.Flags().IntVar(&runSheetIndex, "sheet-index", 0, "1-based xlsx worksheet index")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV delimiter (','|';'|'tab')")
	runCmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	runCmd.Flags().BoolVar(&runCorr, "correlations", true, "include the correlation section")
	runCmd.Flags().StringSliceVar(&runDummies, "dummies", nil, "categorical columns to one-hot encode (drop-first)")
	rootCmd.AddCommand(runCmd)
}
