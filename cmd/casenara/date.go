package main

import (
	"fmt"

	"casenara/dates"

	"github.com/spf13/cobra"
)

func (a *app) dateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "date [VALUE]",
		Short: "Print VALUE as YYYY-MM-DD, or today's date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := dates.Today()

			if len(args) == 1 {
				var err error
				if day, err = dates.FormatString(args[0]); err != nil {
					return err
				}
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), day)

			return err
		},
	}
}
