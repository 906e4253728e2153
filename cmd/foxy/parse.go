package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/budget"
	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/common"
	"github.com/Veraticus/foxy-spend/internal/model"
	"github.com/Veraticus/foxy-spend/internal/notify"
	"github.com/Veraticus/foxy-spend/internal/parser"
	"github.com/Veraticus/foxy-spend/internal/service"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [utterance...]",
		Short: "Parse one utterance and save the expenses it names",
		Long: `Parse a spoken or typed utterance into expenses.

High-confidence results are saved directly; everything else is shown
for review first.

Examples:
  foxy parse "café 3 euros"
  foxy parse "ayer 20 en el súper y 5 de parking"
  foxy parse --dry-run "taxi 12,50"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().BoolP("yes", "y", false, "Save without review")
	cmd.Flags().Bool("dry-run", false, "Show the parse result without saving")
	cmd.Flags().String("locale", "", "Locale passed to the classifier (default from config)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	locale, _ := cmd.Flags().GetString("locale")

	ctx := cmd.Context()
	store, err := initStorage(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	s, err := newSession(ctx, store, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.prompter.Close()
	s.yes = yes
	s.dryRun = dryRun
	s.locale = locale

	return s.handle(ctx, strings.Join(args, " "))
}

// session carries what is needed to turn utterances into stored expenses.
type session struct {
	spends   service.SpendRepository
	orch     *parser.Orchestrator
	prompter *cli.Prompter
	out      io.Writer
	locale   string
	settings model.Settings
	yes      bool
	dryRun   bool
}

func newSession(ctx context.Context, store service.Storage, in io.Reader, out io.Writer) (*session, error) {
	settings, err := loadSettings(ctx, store, appConfig)
	if err != nil {
		return nil, err
	}

	orch, err := newOrchestrator(appConfig)
	if err != nil {
		return nil, err
	}

	return &session{
		spends:   store,
		orch:     orch,
		prompter: cli.NewCLIPrompter(in, out),
		out:      out,
		settings: settings,
	}, nil
}

// handle parses text, lets the user review it when needed, and stores the result.
func (s *session) handle(ctx context.Context, text string) error {
	result, err := s.orch.Parse(ctx, text, s.locale)
	if err != nil {
		var invalid *common.ValidationError
		switch {
		case errors.As(err, &invalid):
			_, _ = fmt.Fprintln(s.out, cli.FormatError("No lo he entendido: "+invalid.Reason))
		case errors.Is(err, common.ErrNoValidAmount):
			_, _ = fmt.Fprintln(s.out, cli.FormatError("No he encontrado ningún importe"))
		}
		return err
	}

	batch := result.Batch
	if s.dryRun {
		_, err := fmt.Fprintln(s.out, cli.RenderBox(fmt.Sprintf("Resultado · %s", result.Source), cli.RenderBatch(batch)))
		return err
	}

	autoConfirm := !result.LowConfidence && parser.ShouldAutoConfirm(batch, s.orch.Config().AutoConfirmThreshold)
	if !s.yes && !autoConfirm {
		batch, err = s.prompter.ReviewBatch(ctx, batch, string(result.Source))
		if err != nil {
			return err
		}
	}
	if len(batch.Items) == 0 {
		return nil
	}

	return s.save(ctx, batch)
}

func (s *session) save(ctx context.Context, batch model.ParsedBatch) error {
	now := userNow(s.settings)
	expenses := parser.Confirm(s.settings.UserID, batch, now)
	for i := range expenses {
		if err := s.spends.CreateSpend(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("failed to save expense: %w", err)
		}
	}
	if len(expenses) == 0 {
		return nil
	}

	start, end := budget.MonthRange(now)
	total, err := s.spends.SumSpendsInRange(ctx, s.settings.UserID, start, end)
	if err != nil {
		return fmt.Errorf("failed to total the month: %w", err)
	}
	status := budget.Calculate(total, s.settings.MonthlyLimitCents)

	last := expenses[len(expenses)-1]
	s.prompter.ShowSaved(expenses, notify.SaveFeedback(status.Level, last.Category, last.AmountCents))
	return nil
}
