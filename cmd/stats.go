package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/botsift/botsift-cli/internal/ingest"
	"github.com/botsift/botsift-cli/internal/normalize"
	"github.com/botsift/botsift-cli/internal/report"
)

var (
	statsSheetName  string
	statsSheetIndex int
	statsDelimiter  string
	statsColumns    []string
	statsOutputPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Describe a survey export without engineering features",
	Long: `stats loads and normalizes a survey export, then prints descriptive
statistics for its numeric columns. Useful for checking an export's shape
before a full run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := effectiveConfig()

		sheetName := c.SheetName
		if statsSheetName != "" {
			sheetName = statsSheetName
		}
		sheetIndex := c.SheetIndex
		if statsSheetIndex > 0 {
			sheetIndex = statsSheetIndex
		}
		delimFlag := c.Delimiter
		if statsDelimiter != "" {
			delimFlag = statsDelimiter
		}
		delim, err := parseDelimiter(delimFlag)
		if err != nil {
			return err
		}

		raw, err := ingest.Load(path, ingest.Options{
			SheetName:  sheetName,
			SheetIndex: sheetIndex,
			Delimiter:  delim,
		})
		if err != nil {
			return err
		}
		cleaned, err := normalize.Clean(raw)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}

		rep := report.Build(cleaned, filepath.Base(path), "", report.Options{
			Columns: statsColumns,
		})
		md := rep.Markdown()
		if statsOutputPath != "" {
			if err := os.WriteFile(statsOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote stats to %s\n", statsOutputPath)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSheetName, "sheet-name", "", "xlsx worksheet name")
	statsCmd.Flags().IntVar(&statsSheetIndex, "sheet-index", 0, "1-based xlsx worksheet index")
	statsCmd.Flags().StringVar(&statsDelimiter, "delimiter", "", "CSV delimiter (','|';'|'tab')")
	statsCmd.Flags().StringSliceVar(&statsColumns, "columns", nil, "numeric columns to describe (default: all)")
	statsCmd.Flags().StringVarP(&statsOutputPath, "output", "o", "", "write the stats to a file instead of stdout")
	rootCmd.AddCommand(statsCmd)
}
