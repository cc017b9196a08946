package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/ndtplanner-backend/internal/export"
)

var validateFlags struct {
	data   string
	shapes string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a Turtle export against SHACL shapes",
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.data, "data", "", "Turtle data file (required)")
	f.StringVar(&validateFlags.shapes, "shapes", "ontology/shapes.ttl", "SHACL shapes file")

	_ = validateCmd.MarkFlagRequired("data")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	rawData, err := os.ReadFile(validateFlags.data)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	rawShapes, err := os.ReadFile(validateFlags.shapes)
	if err != nil {
		return fmt.Errorf("read shapes: %w", err)
	}
	shapes, err := export.ParseShapes(string(rawShapes))
	if err != nil {
		return err
	}
	report, err := export.Validate(string(rawData), shapes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Conforms {
		fmt.Fprintln(out, "Conforms: true")
		return nil
	}
	fmt.Fprintf(out, "Conforms: false (%d violations)\n", len(report.Violations))
	for _, v := range report.Violations {
		fmt.Fprintf(out, "  %s %s: %s\n", v.FocusNode, v.Path, v.Message)
	}
	return fmt.Errorf("validation failed")
}
