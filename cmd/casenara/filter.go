package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"casenara/chosung"
	"casenara/internal/lookup"
	"casenara/internal/match"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type filterOptions struct {
	names   string
	index   string
	suggest bool
	limit   int
}

func (a *app) filterCommand() *cobra.Command {
	var opts filterOptions

	cmd := &cobra.Command{
		Use:   "filter QUERY",
		Short: "Search a names file by text or initial consonants",
		Long: `Searches one list of a YAML names file, e.g.

  customers: [김철수, 이영희]
  products: [강아지, 고양이]

Matches are printed with their initial consonants. With --suggest, close
names are listed when nothing matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog(opts.names)
			if err != nil {
				return err
			}

			return a.runFilter(cmd, catalog, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.names, "names", "n", "", "YAML file mapping list names to names")
	cmd.Flags().StringVarP(&opts.index, "index", "i", lookup.Products, "list to search")
	cmd.Flags().BoolVarP(&opts.suggest, "suggest", "s", false, "suggest close names when nothing matches")
	cmd.Flags().IntVar(&opts.limit, "limit", match.DefaultLimit, "maximum number of suggestions")
	_ = cmd.MarkFlagRequired("names")

	return cmd
}

func (a *app) loadCatalog(path string) (*lookup.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}

	var lists map[string][]string
	if err := yaml.Unmarshal(raw, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse names %s: %w", path, err)
	}

	opts := append(a.cfg.LookupOptions(), lookup.WithLogger(a.logger))

	indexes := make([]*lookup.Index, 0, len(lists))
	for _, name := range slices.Sorted(maps.Keys(lists)) {
		names := lists[name]
		indexes = append(indexes, lookup.NewIndex(name, func(context.Context) ([]string, error) {
			return names, nil
		}, opts...))
	}

	return lookup.NewCatalog(indexes...), nil
}

func (a *app) runFilter(cmd *cobra.Command, catalog *lookup.Catalog, opts filterOptions, query string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	limit := opts.limit
	if !opts.suggest {
		limit = 0
	}

	res, err := catalog.Search(ctx, opts.index, query, limit)
	if err != nil {
		return err
	}

	a.logger.Debug("filtered",
		zap.String("index", opts.index),
		zap.String("query", query),
		zap.Int("matches", len(res.Matches)))

	if len(res.Matches) > 0 {
		rows := make([][2]string, 0, len(res.Matches))
		for _, name := range res.Matches {
			rows = append(rows, [2]string{name, chosung.Extract(name)})
		}

		return writeColumns(out, rows)
	}

	if len(res.Suggestions) == 0 {
		_, err := fmt.Fprintln(out, "no match")
		return err
	}

	if _, err := fmt.Fprintln(out, "no match, did you mean:"); err != nil {
		return err
	}

	for _, name := range res.Suggestions {
		if _, err := fmt.Fprintln(out, "  "+name); err != nil {
			return err
		}
	}

	return nil
}
