package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/notify"
	"github.com/Veraticus/foxy-spend/internal/service"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Evaluate and send reminders and budget alerts",
	}

	cmd.AddCommand(alertsCheckCmd())
	cmd.AddCommand(alertsWatchCmd())

	return cmd
}

func alertsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one alert evaluation now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sent, err := newScheduler(store).CheckNow(ctx)
			if err != nil {
				return err
			}

			cmd.Println(cli.FormatInfo(fmt.Sprintf("Presupuesto usado: %.0f%%", sent.CurrentPercent)))
			if !sent.ShouldSendReminder && !sent.ShouldSend70 && !sent.ShouldSend90 {
				cmd.Println(cli.FormatSuccess("Nada pendiente"))
				return nil
			}
			if sent.ShouldSendReminder {
				cmd.Println(cli.BellIcon + " Recordatorio " + sent.ReminderSlot.String())
			}
			if sent.ShouldSend70 {
				cmd.Println(cli.FormatWarning("Aviso del 70%"))
			}
			if sent.ShouldSend90 {
				cmd.Println(cli.FormatError("Aviso del 90%"))
			}
			return nil
		},
	}
}

func alertsWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep evaluating alerts on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "Reanuda las alertas con: foxy alerts watch")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			scheduler := newScheduler(store)
			if _, err := scheduler.CheckNow(ctx); err != nil {
				return err
			}
			if err := scheduler.Start(); err != nil {
				return err
			}
			cmd.Println(cli.FormatInfo(fmt.Sprintf("Comprobando cada %s. Ctrl+C para salir.", appConfig.Notifications.CheckInterval)))

			<-ctx.Done()

			select {
			case <-scheduler.Stop().Done():
			case <-time.After(10 * time.Second):
			}
			return nil
		},
	}
}

// newScheduler builds the alert scheduler for the configured user.
func newScheduler(store service.Storage) *notify.Scheduler {
	return notify.NewScheduler(store, notify.NewLogSender(nil), notify.NewCatalog(nil), notify.SchedulerConfig{
		UserID:         appConfig.User.ID,
		CheckInterval:  appConfig.Notifications.CheckInterval,
		WeeklySummary:  appConfig.Notifications.WeeklySummary,
		MonthlySummary: appConfig.Notifications.MonthlySummary,
	}, nil)
}
