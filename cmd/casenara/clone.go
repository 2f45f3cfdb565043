package main

import (
	"fmt"
	"io"
	"os"

	"casenara/clone"
	"casenara/options"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (a *app) cloneCommand() *cobra.Command {
	var (
		in    string
		tiers string
	)

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Deep copy a YAML document and report the tier used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var src io.Reader = cmd.InOrStdin()
			if in != "" {
				f, err := os.Open(in)
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()

				src = f
			}

			var doc any
			if err := yaml.NewDecoder(src).Decode(&doc); err != nil && err != io.EOF {
				return fmt.Errorf("failed to parse input: %w", err)
			}

			opts := append(a.cfg.CloneOptions(), clone.WithLogger(a.logger))
			if tiers != "" {
				set, err := options.ParseTiers(tiers)
				if err != nil {
					return err
				}

				opts = append(opts, clone.WithTiers(set))
			}

			res := clone.New(opts...).CloneValue(doc)

			a.logger.Debug("cloned", zap.Stringer("tier", res.Tier))

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "# tier: %s\n", res.Tier); err != nil {
				return err
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)

			if err := enc.Encode(res.Value); err != nil {
				return err
			}

			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&in, "in", "f", "", "input file (default stdin)")
	cmd.Flags().StringVar(&tiers, "tiers", "", `tiers to try, e.g. "json+walk" (default from config)`)

	return cmd
}
