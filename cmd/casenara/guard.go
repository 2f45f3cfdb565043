package main

import (
	"casenara/internal/guard"

	"github.com/spf13/cobra"
)

func (a *app) guardCommand() *cobra.Command {
	var loggedIn bool

	cmd := &cobra.Command{
		Use:   "guard PATH...",
		Short: "Show how the navigation guard resolves each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := guard.MemoryStorage{}
			if loggedIn {
				store.Set(guard.LoggedInKey, "true")
			}

			g := guard.New(guard.StorageSession{Storage: store}, a.cfg.GuardConfig(), a.logger)

			rows := make([][2]string, 0, len(args))
			for _, path := range args {
				d := g.Resolve(path)
				if d.Allow {
					rows = append(rows, [2]string{path, "allow " + d.Route.Name})
				} else {
					rows = append(rows, [2]string{path, "redirect " + d.Redirect})
				}
			}

			return writeColumns(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().BoolVar(&loggedIn, "logged-in", false, "resolve as an authenticated user")

	return cmd
}
