package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parfumerie/internal/apiclient"
	"parfumerie/internal/workflow"
)

type compositionFlags struct {
	api      string
	customer uint
	name     string
	lines    []string
	timeout  time.Duration
}

func newCompositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "composition",
		Short: "Work with customer compositions",
	}

	var flags compositionFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Build a composition and submit it through the API",
		Long: "Adds every --line to a draft, checks that the volume is 50 or 100 ml " +
			"and submits the composition with a single API request.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompositionCreate(cmd, flags)
		},
	}

	f := create.Flags()
	f.StringVar(&flags.api, "api", "http://localhost:5001/api", "Base URL of the studio API")
	f.UintVar(&flags.customer, "customer", 0, "Customer id")
	f.StringVar(&flags.name, "name", "", "Composition name")
	f.StringArrayVar(&flags.lines, "line", nil, "Fragrance line as FRAGRANCE_ID:ML (may be repeated)")
	f.DurationVar(&flags.timeout, "timeout", 15*time.Second, "API request timeout")
	_ = create.MarkFlagRequired("customer")

	cmd.AddCommand(create)
	return cmd
}

type lineArg struct {
	fragranceID uint
	amount      float64
}

func parseLine(raw string) (lineArg, error) {
	idPart, amountPart, ok := strings.Cut(raw, ":")
	if !ok {
		return lineArg{}, fmt.Errorf("line %q must look like FRAGRANCE_ID:ML", raw)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id == 0 {
		return lineArg{}, fmt.Errorf("line %q: invalid fragrance id", raw)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountPart), 64)
	if err != nil {
		return lineArg{}, fmt.Errorf("line %q: invalid amount", raw)
	}
	return lineArg{fragranceID: uint(id), amount: amount}, nil
}

func runCompositionCreate(cmd *cobra.Command, flags compositionFlags) error {
	if flags.customer == 0 {
		return codeError(3, "--customer must be a positive id")
	}
	parsed := make([]lineArg, 0, len(flags.lines))
	for _, raw := range flags.lines {
		line, err := parseLine(raw)
		if err != nil {
			return codeError(3, "%s", err)
		}
		parsed = append(parsed, line)
	}

	client, err := apiclient.NewClient(apiclient.Config{BaseURL: flags.api, Timeout: flags.timeout})
	if err != nil {
		return codeError(3, "%s", err)
	}

	ctx := cmd.Context()
	draft := workflow.NewDraft(flags.customer)
	if err := draft.Load(ctx, client); err != nil {
		if apiclient.IsNotFound(err) {
			return codeError(1, "customer %d not found", flags.customer)
		}
		return codeError(1, "%s", err)
	}

	for _, line := range parsed {
		option, ok := draft.Option(line.fragranceID)
		if !ok {
			return codeError(2, "fragrance %d: %s", line.fragranceID, workflow.ErrUnknownFragrance)
		}
		if err := draft.AddLine(option, line.amount); err != nil {
			return codeError(2, "%s: %s", option.Label(), err)
		}
	}
	draft.Name = flags.name

	if err := draft.Submit(ctx, client); err != nil {
		if errors.Is(err, workflow.ErrNoLines) || errors.Is(err, workflow.ErrInvalidTotal) {
			return codeError(2, "%s (current total %g ml)", err, draft.Total())
		}
		return codeError(1, "%s", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "composition %d created for %s\n", draft.CreatedID, draft.Customer.FullName)
	for _, line := range draft.Lines {
		fmt.Fprintf(out, "  %-24s %g ml\n", line.FragranceName, line.Amount)
	}
	fmt.Fprintf(out, "  %-24s %g ml\n", "total", draft.Total())
	return nil
}
