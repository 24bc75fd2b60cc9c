package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/botsift/botsift-cli/internal/lexicon"
)

var lexiconsCmd = &cobra.Command{
	Use:   "lexicons",
	Short: "Print the fixed phrase-to-number lexicon tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := lexicon.Tables()
		names := make([]string, 0, len(tables))
		for n := range tables {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("[%s]\n", n)
			for _, e := range lexicon.Entries(tables[n]) {
				fmt.Printf("  %-22s %g\n", e.Phrase, e.Value)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexiconsCmd)
}
