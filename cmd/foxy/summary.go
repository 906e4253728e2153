package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/cli"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the weekly or monthly spend summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("period")
			send, _ := cmd.Flags().GetBool("notify")

			period, err := budget.ParsePeriod(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if send {
				scheduler := newScheduler(store)
				return scheduler.SendSummary(ctx, period)
			}

			settings, err := loadSettings(ctx, store, appConfig)
			if err != nil {
				return err
			}
			now := userNow(settings)
			start, end := period.Range(now)
			expenses, err := store.ListSpendsInRange(ctx, settings.UserID, start, end)
			if err != nil {
				return err
			}

			summary := budget.Summarize(period, expenses, now)
			cmd.Println(cli.RenderBox(fmt.Sprintf("%s Resumen %s", cli.ChartIcon, period), cli.RenderSummary(summary)))
			return nil
		},
	}

	cmd.Flags().StringP("period", "p", string(budget.PeriodWeekly), "Period: weekly|monthly (semanal|mensual)")
	cmd.Flags().Bool("notify", false, "Send the summary as a notification instead of printing it")

	return cmd
}
