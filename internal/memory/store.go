// Package memory is the short-term cross-agent memory: each agent records
// small keyed facts (e.g. "last user intent") that later agent turns can
// fold into their prompts.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// Store persists per-agent keyed values and returns the most recent ones.
type Store interface {
	Save(ctx context.Context, agent, key, value string) error
	Recent(ctx context.Context, agent, key string, limit int) ([]string, error)
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// fileStore keeps the whole memory in one JSON file under the log
// directory, keyed by agent name.
type fileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

func NewFileStore(dir string, log *logger.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileStore{
		path: filepath.Join(dir, "shared_memory.json"),
		log:  log.With("service", "FileMemoryStore"),
	}, nil
}

func (s *fileStore) Save(_ context.Context, agent, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data[agent] = append(data[agent], entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Key:       key,
		Value:     value,
	})

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func (s *fileStore) Recent(_ context.Context, agent, key string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	var values []string
	for _, e := range data[agent] {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	if limit > 0 && len(values) > limit {
		values = values[len(values)-limit:]
	}
	return values, nil
}

func (s *fileStore) load() (map[string][]entry, error) {
	data := map[string][]entry{}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt memory file should not take the pipeline down.
		s.log.Warn("Shared memory file unreadable; starting fresh", "error", err)
		return map[string][]entry{}, nil
	}
	return data, nil
}
