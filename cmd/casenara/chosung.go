package main

import (
	"casenara/chosung"

	"github.com/spf13/cobra"
)

func (a *app) chosungCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chosung TEXT...",
		Short: "Print the initial consonants of each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][2]string, 0, len(args))
			for _, text := range args {
				rows = append(rows, [2]string{text, chosung.Extract(text)})
			}

			return writeColumns(cmd.OutOrStdout(), rows)
		},
	}
}
