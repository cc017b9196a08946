package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// fakeChatAI scripts replies in order and records every request it sees.
type fakeChatAI struct {
	replies []string
	err     error
	calls   [][]openai.Message
}

func (f *fakeChatAI) Chat(_ context.Context, msgs []openai.Message, _ openai.Params) (string, error) {
	f.calls = append(f.calls, msgs)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeChatAI) DefaultModel() string { return "test-model" }

// memoryStub is an in-process memory.Store.
type memoryStub struct {
	saved  []string
	recent []string
}

func (m *memoryStub) Save(_ context.Context, _, _, value string) error {
	m.saved = append(m.saved, value)
	return nil
}

func (m *memoryStub) Recent(_ context.Context, _, _ string, _ int) ([]string, error) {
	return m.recent, nil
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDeps() Deps {
	return Deps{Log: newTestLogger()}
}

func TestConversationHistoryGrows(t *testing.T) {
	ai := &fakeChatAI{replies: []string{"first reply", "second reply"}}
	conv := NewConversation("TestAgent", "system prompt", 0, ai, testDeps())

	out, err := conv.Invoke(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out != "first reply" {
		t.Fatalf("reply = %q", out)
	}
	if _, err := conv.Invoke(context.Background(), "again"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	h := conv.History()
	if len(h) != 5 {
		t.Fatalf("history length = %d, want 5", len(h))
	}
	if h[0].Role != "system" || h[1].Role != "user" || h[2].Role != "assistant" {
		t.Fatalf("unexpected roles: %v %v %v", h[0].Role, h[1].Role, h[2].Role)
	}
	// Second call must carry the first exchange.
	if len(ai.calls[1]) != 4 {
		t.Fatalf("second request had %d messages, want 4", len(ai.calls[1]))
	}
}

func TestConversationInjectsMemoryDigest(t *testing.T) {
	ai := &fakeChatAI{}
	mem := &memoryStub{recent: []string{"asked about concrete cracking"}}
	deps := testDeps()
	deps.Memory = mem
	conv := NewConversation("TestAgent", "system prompt", 0, ai, deps)

	if _, err := conv.Invoke(context.Background(), "new question"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	msgs := ai.calls[0]
	if len(msgs) != 3 {
		t.Fatalf("request had %d messages, want 3", len(msgs))
	}
	digest := msgs[1]
	if digest.Role != "system" || !strings.Contains(digest.Content, "asked about concrete cracking") {
		t.Fatalf("digest not injected before user turn: %+v", digest)
	}
	if msgs[2].Content != "new question" {
		t.Fatalf("user turn displaced: %+v", msgs[2])
	}
	if len(mem.saved) != 1 || mem.saved[0] != "new question" {
		t.Fatalf("memory save = %v", mem.saved)
	}
}

func TestConversationErrorPropagates(t *testing.T) {
	wantErr := errors.New("model unavailable")
	ai := &fakeChatAI{err: wantErr}
	conv := NewConversation("TestAgent", "system prompt", 0, ai, testDeps())

	out, err := conv.Invoke(context.Background(), "hello")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if out != "" {
		t.Fatalf("out = %q, want empty", out)
	}
	if IsErrorText(out) {
		t.Fatalf("error must not surface as in-band sentinel text")
	}
	// Failed turns keep the user message but record no assistant reply.
	if h := conv.History(); len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
}
