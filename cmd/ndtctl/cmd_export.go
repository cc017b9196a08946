package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/ndtplanner-backend/internal/export"
	"github.com/yungbote/ndtplanner-backend/internal/kg"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

var exportFlags struct {
	out string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the knowledge graph as Turtle",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.out, "out", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withGraph(cmd.Context(), func(ctx context.Context, svc *kg.Service, log *logger.Logger) error {
		ttl, err := export.Turtle(ctx, svc)
		if err != nil {
			return err
		}
		if exportFlags.out == "" {
			fmt.Fprint(cmd.OutOrStdout(), ttl)
			return nil
		}
		if err := os.WriteFile(exportFlags.out, []byte(ttl), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportFlags.out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportFlags.out)
		return nil
	})
}
