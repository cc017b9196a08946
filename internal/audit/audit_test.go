package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

func nopLog() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestLogInteractionAppendsJSONL(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, nopLog())
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	rec.LogInteraction("PlannerAgent", "in1", "out1", map[string]any{"history_len": 3})
	rec.LogInteraction("PlannerAgent", "in2", "out2", nil)

	f, err := os.Open(filepath.Join(dir, "PlannerAgent_log.jsonl"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var lines []interactionRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r interactionRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line not JSON: %v", err)
		}
		lines = append(lines, r)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Input != "in1" || lines[0].Output != "out1" || lines[0].Agent != "PlannerAgent" {
		t.Fatalf("first record = %+v", lines[0])
	}
	if lines[0].Timestamp == "" {
		t.Fatal("timestamp missing")
	}
}

func TestLogSessionTrace(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, nopLog())
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	rec.LogSessionTrace("plan-1", "PlannerAgent", "plan text", "user asked")
	rec.LogSessionTrace("plan-1", "CritiqueAgent", "critique text", "")

	f, err := os.Open(filepath.Join(dir, "session_trace.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	count := 0
	for sc.Scan() {
		var r traceRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line not JSON: %v", err)
		}
		if r.PlanID != "plan-1" {
			t.Fatalf("plan id = %q", r.PlanID)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("trace lines = %d, want 2", count)
	}
}
