package memory

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

func nopLog() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func TestFileStoreSaveAndRecent(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), nopLog())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, v := range []string{"first", "second", "third"} {
		if err := store.Save(ctx, "PlannerAgent", "last_user_intent", v); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := store.Save(ctx, "PlannerAgent", "other_key", "noise"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "CritiqueAgent", "last_user_intent", "elsewhere"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Recent(ctx, "PlannerAgent", "last_user_intent", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if want := []string{"second", "third"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Recent = %v, want %v", got, want)
	}
}

func TestFileStoreRecentUnknownAgent(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), nopLog())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	got, err := store.Recent(context.Background(), "NobodyAgent", "k", 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shared_memory.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(dir, nopLog())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "PlannerAgent", "k", "v"); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	got, err := store.Recent(ctx, "PlannerAgent", "k", 1)
	if err != nil || len(got) != 1 || got[0] != "v" {
		t.Fatalf("Recent = %v, %v", got, err)
	}
}
