package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/storage"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change budget and notification settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSettings(cmd.Context(), false, func(s *model.Settings) error {
				cmd.Println(cli.RenderBox("Ajustes", formatSettings(*s)))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-limit <euros>",
		Short: "Set the monthly budget; 0 removes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := model.ParseEuros(args[0])
			if err != nil {
				return err
			}
			if !model.IsValidMonthlyLimit(cents) {
				return fmt.Errorf("monthly limit must be between 0 and %s", model.FormatEUR(model.MaxMonthlyLimitCents))
			}
			return withSettings(cmd.Context(), true, func(s *model.Settings) error {
				s.MonthlyLimitCents = cents
				cmd.Println(cli.FormatSuccess("Presupuesto mensual: " + model.FormatEUR(cents)))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-slots <HH:MM-HH:MM>...",
		Short: "Set the daily reminder windows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := model.ParseTimeSlots(args)
			if err != nil {
				return err
			}
			return withSettings(cmd.Context(), true, func(s *model.Settings) error {
				s.ReminderSlots = slots
				cmd.Println(cli.FormatSuccess("Recordatorios: " + strings.Join(args, ", ")))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-timezone <zone>",
		Short: "Set the time zone used for days, months and reminder windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(cmd.Context(), true, func(s *model.Settings) error {
				s.Timezone = args[0]
				cmd.Println(cli.FormatSuccess("Zona horaria: " + args[0]))
				return nil
			})
		},
	})

	toggles := &cobra.Command{
		Use:   "notifications",
		Short: "Turn budget alerts or reminders on and off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSettings(cmd.Context(), true, func(s *model.Settings) error {
				if cmd.Flags().Changed("budget-alerts") {
					s.BudgetAlerts, _ = cmd.Flags().GetBool("budget-alerts")
				}
				if cmd.Flags().Changed("reminders") {
					s.Reminders, _ = cmd.Flags().GetBool("reminders")
				}
				cmd.Println(cli.RenderBox("Ajustes", formatSettings(*s)))
				return nil
			})
		},
	}
	toggles.Flags().Bool("budget-alerts", true, "Send 70% and 90% budget alerts")
	toggles.Flags().Bool("reminders", true, "Send daily logging reminders")
	cmd.AddCommand(toggles)

	return cmd
}

// withSettings loads the user's settings, applies fn, and saves them when save is set.
func withSettings(ctx context.Context, save bool, fn func(*model.Settings) error) error {
	store, err := initStorage(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	settings, err := loadSettings(ctx, store, appConfig)
	if err != nil {
		return err
	}
	if err := fn(&settings); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return saveSettings(ctx, store, settings)
}

func saveSettings(ctx context.Context, store *storage.SQLiteStorage, settings model.Settings) error {
	if err := store.SaveSettings(ctx, &settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func formatSettings(s model.Settings) string {
	limit := "sin límite"
	if s.MonthlyLimitCents > 0 {
		limit = model.FormatEUR(s.MonthlyLimitCents)
	}

	slots := make([]string, len(s.ReminderSlots))
	for i, slot := range s.ReminderSlots {
		slots[i] = slot.String()
	}

	return fmt.Sprintf("Usuario: %s\nPresupuesto: %s\nZona horaria: %s\nAvisos de presupuesto: %s\nRecordatorios: %s (%s)",
		s.UserID, limit, s.Timezone, onOff(s.BudgetAlerts), onOff(s.Reminders), strings.Join(slots, ", "))
}

func onOff(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
