// Package audit appends agent interaction records and the per-run session
// trace to JSONL files for after-the-fact inspection.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

type Recorder struct {
	mu  sync.Mutex
	dir string
	log *logger.Logger
}

func NewRecorder(dir string, log *logger.Logger) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Recorder{
		dir: dir,
		log: log.With("service", "AuditRecorder"),
	}, nil
}

type interactionRecord struct {
	Timestamp string         `json:"timestamp"`
	Agent     string         `json:"agent"`
	Input     string         `json:"input"`
	Output    string         `json:"output"`
	Context   map[string]any `json:"context,omitempty"`
}

// LogInteraction appends one model exchange to the agent's log file.
// Audit failures are logged and swallowed: a full disk must not abort a
// planning run.
func (r *Recorder) LogInteraction(agent, input, output string, context map[string]any) {
	rec := interactionRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Agent:     agent,
		Input:     input,
		Output:    output,
		Context:   context,
	}
	if err := r.appendJSONL(agent+"_log.jsonl", rec); err != nil {
		r.log.Warn("Failed to write agent interaction log", "agent", agent, "error", err)
	}
}

type traceRecord struct {
	PlanID    string `json:"plan_id"`
	Agent     string `json:"agent"`
	Content   string `json:"content"`
	UserInput string `json:"user_input,omitempty"`
}

// LogSessionTrace ties one agent response to a plan id in the shared
// session trace file.
func (r *Recorder) LogSessionTrace(planID, agent, content, userInput string) {
	rec := traceRecord{
		PlanID:    planID,
		Agent:     agent,
		Content:   content,
		UserInput: userInput,
	}
	if err := r.appendJSONL("session_trace.jsonl", rec); err != nil {
		r.log.Warn("Failed to write session trace", "plan_id", planID, "error", err)
	}
}

func (r *Recorder) appendJSONL(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(r.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(raw, '\n'))
	return err
}
