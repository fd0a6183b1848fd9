package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"parfumerie/internal/repository"
)

func newAuditCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report orphaned detail rows and compositions that are not 50 or 100 ml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(s store) error {
				compositions := repository.NewCompositions(s.db)

				orphans, err := compositions.Orphans(ctx)
				if err != nil {
					return codeError(1, "list orphaned details: %s", err)
				}
				invalid, err := compositions.Invalid(ctx)
				if err != nil {
					return codeError(1, "list invalid compositions: %s", err)
				}

				printAudit(cmd.OutOrStdout(), orphans, invalid)
				if strict && len(orphans)+len(invalid) > 0 {
					return codeError(2, "audit found %d problem(s)", len(orphans)+len(invalid))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 2 when the audit finds any problem")
	return cmd
}

func printAudit(w io.Writer, orphans []repository.OrphanDetail, invalid []repository.InvalidComposition) {
	fmt.Fprintf(w, "orphaned details: %d\n", len(orphans))
	for _, o := range orphans {
		fmt.Fprintf(w, "  detail %d in composition %d references missing fragrance %d\n",
			o.DetailID, o.CompositionID, o.FragranceID)
	}
	fmt.Fprintf(w, "invalid compositions: %d\n", len(invalid))
	for _, c := range invalid {
		name := c.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "  composition %d (%s) of customer %d: details add up to %g ml, total %g ml\n",
			c.CompositionID, name, c.CustomerID, c.Volume, c.TotalAmount)
	}
}
