package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"restaupilot/internal/billing"

	"github.com/spf13/cobra"
)

// SplitOptions holds flags for the split command.
type SplitOptions struct {
	Total        float64
	Policy       string
	Participants []string
	JSON         bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a bill offline",
		Long: `Split a bill between the payer and participants.

Participants are given as NAME for the equal policy, or NAME=VALUE where VALUE
is an amount (custom) or a percentage (percentage).`,
		Example: `  restaupilot split --total 90 -P Ana -P Ben
  restaupilot split --total 100 --policy percentage -P Ana=40 -P Ben=35`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.Total, "total", "t", 0, "bill total")
	cmd.Flags().StringVar(&opts.Policy, "policy", string(billing.PolicyEqual), "split policy (equal|custom|percentage)")
	cmd.Flags().StringArrayVarP(&opts.Participants, "participant", "P", nil, "participant as NAME or NAME=VALUE (repeatable)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the allocation as JSON")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func runSplit(out io.Writer, opts *SplitOptions) error {
	policy, err := billing.ParsePolicy(opts.Policy)
	if err != nil {
		return err
	}
	participants, err := parseParticipants(policy, opts.Participants)
	if err != nil {
		return err
	}
	alloc, err := billing.Allocate(policy, opts.Total, participants)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(alloc)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPERCENT\tAMOUNT")
	for _, s := range alloc.Shares {
		fmt.Fprintf(tw, "%s\t%.2f%%\t%s\n", s.Name, s.Percentage, billing.FormatAmount(s.Amount))
	}
	fmt.Fprintf(tw, "You (payer)\t%.2f%%\t%s\n", alloc.PayerPercentage, billing.FormatAmount(alloc.PayerAmount))
	if err := tw.Flush(); err != nil {
		return err
	}
	if alloc.Overallocated {
		fmt.Fprintf(out, "warning: shares exceed the bill by %.2f\n", alloc.Excess)
	}
	return nil
}

func parseParticipants(policy billing.Policy, args []string) ([]billing.Participant, error) {
	out := make([]billing.Participant, 0, len(args))
	for _, arg := range args {
		name, raw, hasValue := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("participant %q has no name", arg)
		}
		p := billing.Participant{Name: name}
		if policy != billing.PolicyEqual {
			if !hasValue {
				return nil, fmt.Errorf("participant %q needs a value for the %s policy", name, policy)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("participant %q: %w", name, err)
			}
			if policy == billing.PolicyCustom {
				p.Amount = v
			} else {
				p.Percentage = v
			}
		}
		out = append(out, p)
	}
	return out, nil
}
