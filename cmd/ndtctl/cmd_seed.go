package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/ndtplanner-backend/internal/kg"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the reference NDT dataset into the knowledge graph",
	Long:  "Seeding is idempotent: existing nodes and relationships are matched,\nnot duplicated, so it is safe to re-run against a populated graph.",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return withGraph(cmd.Context(), func(ctx context.Context, svc *kg.Service, log *logger.Logger) error {
		svc.EnsureSchema(ctx)
		if err := svc.Seed(ctx); err != nil {
			return fmt.Errorf("seed graph: %w", err)
		}
		counts, err := svc.LabelCounts(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Graph seeded.")
		for _, c := range counts {
			fmt.Fprintf(out, "  %-24s %d\n", c.Label, c.Count)
		}
		return nil
	})
}
