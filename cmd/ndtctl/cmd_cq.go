package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/ndtplanner-backend/internal/agents"
	"github.com/yungbote/ndtplanner-backend/internal/ontology"
	"github.com/yungbote/ndtplanner-backend/internal/platform/envutil"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

var cqFlags struct {
	input       string
	outDir      string
	concurrency int
	retries     int
}

var cqCmd = &cobra.Command{
	Use:   "cq",
	Short: "Generate ontology axioms from a competency-question file",
	RunE:  runCQ,
}

func init() {
	f := cqCmd.Flags()
	f.StringVarP(&cqFlags.input, "input", "i", "data/sample_cqs.txt", "Competency questions, one per line")
	f.StringVar(&cqFlags.outDir, "out-dir", "ontology", "Directory for the generated .ttl file")
	f.IntVar(&cqFlags.concurrency, "concurrency", 4, "Parallel generations")
	f.IntVar(&cqFlags.retries, "retries", 2, "Retries per question")
}

func runCQ(cmd *cobra.Command, _ []string) error {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	questions, err := ontology.LoadQuestions(cqFlags.input)
	if err != nil {
		return err
	}

	aiClient, err := openai.NewClient(log)
	if err != nil {
		return fmt.Errorf("init model client: %w", err)
	}
	deps := agents.Deps{
		Log:        log,
		PromptsDir: envutil.String("PROMPTS_DIR", "prompts"),
	}

	pipeline := ontology.NewPipeline(log, func() ontology.AxiomGenerator {
		return agents.NewOntologyBuilder(aiClient, deps)
	}, ontology.Config{
		Concurrency: cqFlags.concurrency,
		Retries:     cqFlags.retries,
	})

	results, err := pipeline.Run(cmd.Context(), questions)
	if err != nil {
		return err
	}
	path, err := ontology.WriteTurtle(results, cqFlags.outDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}
	fmt.Fprintf(out, "Generated %d/%d axioms -> %s\n", len(results)-failed, len(results), path)
	if failed > 0 {
		fmt.Fprintf(out, "%d question(s) failed; see the file for details.\n", failed)
	}
	return nil
}
