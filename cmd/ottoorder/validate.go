package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottoorder/internal/catalog"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate catalog documents",
		Long: `Load each catalog document and check it against the catalog schema.

Every file is reported; the command fails if any of them is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				cat, err := catalog.Load(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s (%s, %d categories, %d items)\n",
					path, cat.Name, len(cat.Categories), cat.ItemCount())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}
}
