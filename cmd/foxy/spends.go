package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			showIDs, _ := cmd.Flags().GetBool("ids")

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

			expenses, err := store.ListRecentSpends(ctx, settings.UserID, limit)
			if err != nil {
				return err
			}

			cmd.Println(cli.RenderExpenses(expenses, settings.Location()))
			if showIDs {
				for _, e := range expenses {
					cmd.Printf("%s  %s\n", e.ID, model.FormatEUR(e.AmountCents))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Number of expenses to show")
	cmd.Flags().Bool("ids", false, "Also print expense IDs")

	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the amount, category or merchant of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense, err := store.GetSpend(ctx, appConfig.User.ID, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("amount") {
				raw, _ := cmd.Flags().GetString("amount")
				cents, err := model.ParseEuros(raw)
				if err != nil {
					return err
				}
				expense.AmountCents = cents
			}
			if cmd.Flags().Changed("category") {
				raw, _ := cmd.Flags().GetString("category")
				category, ok := model.ParseCategory(raw)
				if !ok {
					return fmt.Errorf("unknown category %q", raw)
				}
				expense.Category = category
			}
			if cmd.Flags().Changed("merchant") {
				expense.Merchant, _ = cmd.Flags().GetString("merchant")
			}

			if err := store.UpdateSpend(ctx, expense); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("%s · %s actualizado", model.FormatEUR(expense.AmountCents), expense.Category)))
			return nil
		},
	}

	cmd.Flags().String("amount", "", "New amount in euros, e.g. 12,50")
	cmd.Flags().String("category", "", "New category, Spanish or English name")
	cmd.Flags().String("merchant", "", "New merchant")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx, appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSpend(ctx, appConfig.User.ID, args[0]); err != nil {
				return err
			}
			cmd.Println(cli.FormatSuccess("Gasto borrado"))
			return nil
		},
	}
}
