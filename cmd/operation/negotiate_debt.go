package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
)

func newNegotiateDebtCmd(log *zap.Logger) *cobra.Command {
	var (
		debtID       string
		installments int
		amount       string
		firstDate    string
	)

	cmd := &cobra.Command{
		Use:     "negotiate-debt",
		Short:   "Negotiate an open debt into monthly installments",
		Example: `  operation negotiate-debt --debt-id 01J... --installments 12 --amount 250.00 --first-date 2026-11-10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			installmentAmount, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}

			ctx := cmd.Context()
			application, err := loadApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.Debts.Negotiate(ctx, debtID, debt.NegotiateRequest{
				NumberOfInstallments: installments,
				InstallmentAmount:    installmentAmount,
				FirstInstallmentDate: firstDate,
			})
			if err != nil {
				return err
			}

			log.Info("Debt negotiated", zap.String("debtId", debtID), zap.Int("installments", len(result.Installments)))
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&debtID, "debt-id", "", "Debt to negotiate")
	cmd.Flags().IntVar(&installments, "installments", 0, fmt.Sprintf("Number of installments (1-%d)", debt.MaxInstallments))
	cmd.Flags().StringVar(&amount, "amount", "", "Amount of each installment")
	cmd.Flags().StringVar(&firstDate, "first-date", "", "Due date of the first installment (YYYY-MM-DD)")
	for _, name := range []string{"debt-id", "installments", "amount", "first-date"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
