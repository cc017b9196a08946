// Package ontology turns batches of competency questions into candidate
// ontology axioms and writes them out as Turtle fragments.
package ontology

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/ndtplanner-backend/internal/pkg/httpx"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// AxiomGenerator produces one axiom for one competency question.
// *agents.OntologyBuilder satisfies this.
type AxiomGenerator interface {
	Run(ctx context.Context, competencyQuestion string) (string, error)
}

// Config tunes the batch run. Zero values fall back to the defaults.
type Config struct {
	Concurrency int
	Retries     int
}

const (
	defaultConcurrency = 4
	defaultRetries     = 2
)

// Result is the outcome for one question, in input order.
type Result struct {
	Question string        `json:"question"`
	Axiom    string        `json:"axiom,omitempty"`
	Attempts int           `json:"attempts"`
	Latency  time.Duration `json:"latency"`
	Err      string        `json:"error,omitempty"`
}

// Pipeline fans competency questions out over a bounded worker set. Each
// question gets its own generator so conversations never interleave.
type Pipeline struct {
	log      *logger.Logger
	newAgent func() AxiomGenerator
	cfg      Config
}

func NewPipeline(log *logger.Logger, newAgent func() AxiomGenerator, cfg Config) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Retries < 0 {
		cfg.Retries = defaultRetries
	}
	return &Pipeline{
		log:      log.With("service", "CQPipeline"),
		newAgent: newAgent,
		cfg:      cfg,
	}
}

// LoadQuestions reads one competency question per line, skipping blanks and
// comment lines.
func LoadQuestions(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read competency questions: %w", err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no competency questions in %s", path)
	}
	return out, nil
}

// Run generates an axiom per question. A question that exhausts its retries
// carries its error in the result rather than failing the whole batch; only
// context cancellation stops the run.
func (p *Pipeline) Run(ctx context.Context, questions []string) ([]Result, error) {
	results := make([]Result, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, q := range questions {
		g.Go(func() error {
			results[i] = p.generate(ctx, q)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) generate(ctx context.Context, question string) Result {
	agent := p.newAgent()
	start := time.Now()
	res := Result{Question: question}

	var lastErr error
	for attempt := 0; attempt <= p.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(httpx.JitterSleep(time.Duration(attempt) * 500 * time.Millisecond)):
			}
		}
		res.Attempts = attempt + 1
		axiom, err := agent.Run(ctx, question)
		if err == nil {
			res.Axiom = strings.TrimSpace(axiom)
			res.Latency = time.Since(start)
			p.log.Debug("Generated axiom", "question", question, "attempts", res.Attempts, "latency", res.Latency)
			return res
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.log.Warn("Axiom generation attempt failed", "question", question, "attempt", attempt+1, "error", err)
	}
	res.Err = lastErr.Error()
	res.Latency = time.Since(start)
	return res
}

// WriteTurtle appends every generated axiom to a timestamped .ttl file in
// dir and returns its path. Failed questions appear as comments so the file
// stays a complete record of the batch.
func WriteTurtle(results []Result, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("generated_axioms_%s.ttl", time.Now().UTC().Format("20060102_150405")))

	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "# CQ: %s\n", r.Question)
		if r.Err != "" {
			fmt.Fprintf(&b, "# generation failed: %s\n\n", r.Err)
			continue
		}
		b.WriteString(r.Axiom)
		b.WriteString("\n\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
