package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/dates"
)

func dateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "date <phrase...>",
		Short: "Resolve a Spanish date phrase such as \"el martes pasado\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(args, " ")
			now := userNowFromConfig()

			resolved, ok := dates.Resolve(phrase, now)
			if !ok {
				return fmt.Errorf("unrecognized date phrase: %q", phrase)
			}
			cmd.Println(resolved.Format("Monday 2006-01-02"))
			return nil
		},
	}
}
