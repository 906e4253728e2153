package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show how much of the monthly budget is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, _ := cmd.Flags().GetString("month")
			extra, _ := cmd.Flags().GetString("can-afford")

			ctx := cmd.Context()
			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := loadSettings(ctx, store, appConfig)
			if err != nil {
				return err
			}

			now := userNow(settings)
			if month != "" {
				now, err = monthEnd(month, now)
				if err != nil {
					return err
				}
			}

			start, end := budget.MonthRange(now)
			total, err := store.SumSpendsInRange(ctx, settings.UserID, start, end)
			if err != nil {
				return err
			}

			status := budget.Calculate(total, settings.MonthlyLimitCents)
			cmd.Println(cli.RenderBox(fmt.Sprintf("%s Presupuesto %s", cli.ChartIcon, start.Format("01/2006")), cli.RenderBudget(status, now)))

			if extra != "" {
				cents, err := model.ParseEuros(extra)
				if err != nil {
					return err
				}
				if budget.CanAfford(total, settings.MonthlyLimitCents, cents) {
					cmd.Println(cli.FormatSuccess(fmt.Sprintf("Puedes gastar %s", model.FormatEUR(cents))))
				} else {
					cmd.Println(cli.FormatWarning(fmt.Sprintf("%s te haría pasar del límite", model.FormatEUR(cents))))
				}
			}
			return nil
		},
	}

	cmd.Flags().String("month", "", "Month to show as YYYY-MM (default: current)")
	cmd.Flags().String("can-afford", "", "Check whether an extra amount in euros fits the budget")

	return cmd
}

// monthEnd returns the moment used to evaluate a past or current month: now when
// month is the current one, otherwise the last second of that month.
func monthEnd(month string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM: %w", month, err)
	}
	if t.Year() == now.Year() && t.Month() == now.Month() {
		return now, nil
	}
	_, next := budget.MonthRange(t)
	return next.Add(-time.Second), nil
}
