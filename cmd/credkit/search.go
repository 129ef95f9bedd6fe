package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"credkit/internal/search/engine"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search clients, tasks, disputes, letters, templates and users",
		Long:  "Search prints grouped results for term. Without a term it browses the first items of every category. Results are not recorded; use --record to add the term to the recent searches.",
		Args:  cobra.ArbitraryArgs,
	}
	record := cmd.Flags().Bool("record", false, "Record the term in recent searches")

	cmd.RunE = withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		ctx := cmd.Context()
		term := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		groups := e.engine.Search(ctx, term)
		for _, g := range groups {
			fmt.Fprintf(out, "%s\n", g.Category)
			for _, item := range g.Items {
				fmt.Fprintf(out, "  %-45s %s\n", item.Title, item.Href)
			}
		}
		if len(groups) == 0 {
			fmt.Fprintf(out, "No results for %q\n", term)
			if hints := e.engine.Suggest(ctx, term, engine.DefaultSuggestions); len(hints) > 0 {
				fmt.Fprintf(out, "Did you mean: %s\n", strings.Join(hints, "; "))
			}
		}

		if *record && strings.TrimSpace(term) != "" {
			e.history.Add(ctx, term)
			fmt.Fprintf(out, "recorded, results page: %s\n", engine.BuildSearchURL(strings.TrimSpace(term)))
		}
		return nil
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recent",
		Short: "Print recent searches, most recent first",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			for _, term := range e.history.List(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), term)
			}
			return nil
		}),
	})
	return cmd
}
