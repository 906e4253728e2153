package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/common"
)

func listenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Read utterances one per line until EOF or an empty line",
		Long: `Start an interactive session. Each line is parsed and saved like
"foxy parse" would. Repeated lines within the cache window are
answered without calling the classifier again.`,
		Args: cobra.NoArgs,
		RunE: runListen,
	}

	cmd.Flags().BoolP("yes", "y", false, "Save without review")

	return cmd
}

func runListen(cmd *cobra.Command, _ []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	handler := cli.NewInterruptHandler(cmd.OutOrStdout(), "")
	ctx, stop := handler.HandleInterrupts(cmd.Context())
	defer stop()

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

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, cli.FormatTitle("¿Qué has gastado?"))

	for {
		text, err := s.prompter.Ask(ctx, ">")
		if errors.Is(err, cli.ErrInputClosed) || errors.Is(err, context.Canceled) || (err == nil && strings.TrimSpace(text) == "") {
			break
		}
		if err != nil {
			return err
		}

		if err := s.handle(ctx, text); err != nil && !isUserError(err) {
			return err
		}
	}

	stats := s.orch.Stats()
	_, _ = fmt.Fprintln(out, cli.RenderBox("Sesión", fmt.Sprintf(
		"Frases: %d\nSin llamada remota: %d (%.0f%%)\nCaché: %d · Vía rápida: %d · Remoto: %d · Respaldo local: %d",
		stats.Total, stats.Avoided, stats.AvoidanceRate()*100,
		stats.CacheHits, stats.FastPathHits, stats.RemoteCalls, stats.Fallbacks)))
	return nil
}

// isUserError reports errors that were already explained to the user.
func isUserError(err error) bool {
	var invalid *common.ValidationError
	return errors.As(err, &invalid) || errors.Is(err, common.ErrNoValidAmount)
}
