package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"parfumerie/internal/importer"
)

type importFunc func(im *importer.Importer, ctx context.Context, r io.Reader) (importer.Result, error)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog spreadsheets exported as CSV",
	}
	cmd.AddCommand(
		importSubcommand("fragrances", "Create or update fragrances by code", (*importer.Importer).Fragrances),
		importSubcommand("customers", "Create customers or update them by email", (*importer.Importer).Customers),
		importSubcommand("compositions", "Create compositions from customer id and fragrance/amount pairs", (*importer.Importer).Compositions),
	)
	return cmd
}

func importSubcommand(kind, short string, run importFunc) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <file.csv>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return codeError(3, "open %s: %s", args[0], err)
			}
			defer file.Close()

			ctx := cmd.Context()
			return withStore(ctx, func(s store) error {
				result, err := run(importer.New(s.db, s.compositions...), ctx, file)
				if err != nil {
					return codeError(1, "import %s: %s", kind, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", kind, result)
				return nil
			})
		},
	}
}
