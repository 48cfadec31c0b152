package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/finance-chat-assistant/internal/domain/nlp"
	"github.com/FACorreiaa/finance-chat-assistant/pkg/money"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Show how a message would be understood",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res := nlp.DefaultLibrary().Classify(nlp.Normalize(strings.Join(args, " ")))

			fmt.Fprintf(out, "intent: %s\n", res.Intent)
			if rule := res.RuleName(); rule != "" {
				fmt.Fprintf(out, "rule: %s\n", rule)
			}
			if res.ChartType != "" {
				fmt.Fprintf(out, "chart: %s\n", res.ChartType)
			}
			if !res.Intent.IsTransactional() {
				return nil
			}

			tx, err := nlp.ExtractTransaction(res)
			if err != nil {
				fmt.Fprintf(out, "extraction: %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "kind: %s\namount: %s\ndescription: %s\n",
				tx.Kind, money.FormatDecimal(tx.Amount), tx.Description)
			return nil
		},
	}
}
