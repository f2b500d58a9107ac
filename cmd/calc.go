package cmd

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"finlear/domain"
	"finlear/service"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addLoanFlags(cmd *cobra.Command, input *domain.LoanInput) {
	cmd.Flags().Float64Var(&input.Amount, "principal", 0, "loan principal")
	cmd.Flags().Float64Var(&input.InterestRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&input.TermMonths, "months", 0, "term in months")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("months")
}

func newEMICmd() *cobra.Command {
	var input domain.LoanInput
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Print the monthly instalment of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewLoanService(log.NewNopLogger(), nil, 0)
			result, err := svc.CalculateLoan(input)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	addLoanFlags(cmd, &input)
	return cmd
}

func newSaverCmd() *cobra.Command {
	var input domain.InterestSaverInput
	cmd := &cobra.Command{
		Use:   "saver",
		Short: "Show how an extra monthly payment shortens a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewLoanService(log.NewNopLogger(), nil, 0)
			result, err := svc.InterestSaver(input)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	addLoanFlags(cmd, &input.LoanInput)
	cmd.Flags().Float64Var(&input.ExtraPayment, "extra", 0, "extra amount paid every month")
	return cmd
}

func newAffordCmd() *cobra.Command {
	var input domain.AffordabilityInput
	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Classify an EMI against a monthly income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewLoanService(log.NewNopLogger(), nil, 0)
			result, err := svc.Affordability(input)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, result); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Suggestion)
			return err
		},
	}
	cmd.Flags().Float64Var(&input.EMI, "emi", 0, "monthly instalment")
	cmd.Flags().Float64Var(&input.Income, "income", 0, "monthly income")
	_ = cmd.MarkFlagRequired("emi")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
