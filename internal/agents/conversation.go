// Package agents holds the conversational base and the six role agents of
// the planning pipeline. Each agent owns one rolling model conversation;
// the orchestrator constructs a fresh set per run.
package agents

import (
	"context"
	"strings"

	"github.com/yungbote/ndtplanner-backend/internal/audit"
	"github.com/yungbote/ndtplanner-backend/internal/memory"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// memoryKeyIntent is the semantic key agents use for their short-term
// memory of what the user last asked for.
const memoryKeyIntent = "last_user_intent"

// Deps are the shared collaborators injected into every agent. Memory and
// Audit are optional; a nil value disables that side effect.
type Deps struct {
	Log        *logger.Logger
	Memory     memory.Store
	Audit      *audit.Recorder
	PromptsDir string
}

// Conversation maintains a system prompt plus rolling history against the
// chat model and provides the uniform Invoke contract.
type Conversation struct {
	log     *logger.Logger
	ai      openai.Client
	name    string
	params  openai.Params
	history []openai.Message
	mem     memory.Store
	audit   *audit.Recorder
}

func NewConversation(name, systemPrompt string, temperature float64, ai openai.Client, deps Deps) *Conversation {
	t := temperature
	return &Conversation{
		log:     deps.Log.With("agent", name),
		ai:      ai,
		name:    name,
		params:  openai.Params{Temperature: &t},
		history: []openai.Message{{Role: "system", Content: systemPrompt}},
		mem:     deps.Memory,
		audit:   deps.Audit,
	}
}

// Invoke appends the user message, asks the model for a completion over the
// full history and returns the trimmed reply. Model failures come back as
// errors; rendering them as in-band sentinel text is the orchestrator's job,
// so internal consumers never mistake error text for data.
func (c *Conversation) Invoke(ctx context.Context, userMsg string) (string, error) {
	c.history = append(c.history, openai.Message{Role: "user", Content: userMsg})

	msgs := c.history
	if c.mem != nil {
		if recent, err := c.mem.Recent(ctx, c.name, memoryKeyIntent, 3); err == nil && len(recent) > 0 {
			digest := openai.Message{
				Role:    "system",
				Content: "Recent context from earlier interactions:\n- " + strings.Join(recent, "\n- "),
			}
			// Inject the digest just before the newest user message.
			msgs = make([]openai.Message, 0, len(c.history)+1)
			msgs = append(msgs, c.history[:len(c.history)-1]...)
			msgs = append(msgs, digest, c.history[len(c.history)-1])
		}
	}

	reply, err := c.ai.Chat(ctx, msgs, c.params)
	if err != nil {
		c.log.Error("LLM call failed", "error", err)
		return "", err
	}
	reply = strings.TrimSpace(reply)
	c.history = append(c.history, openai.Message{Role: "assistant", Content: reply})

	if c.mem != nil {
		if err := c.mem.Save(ctx, c.name, memoryKeyIntent, userMsg); err != nil {
			c.log.Warn("Failed to save short-term memory", "error", err)
		}
	}
	if c.audit != nil {
		c.audit.LogInteraction(c.name, userMsg, reply, map[string]any{
			"history_len": len(c.history),
		})
	}
	return reply, nil
}

// History returns a copy of the conversation so far.
func (c *Conversation) History() []openai.Message {
	out := make([]openai.Message, len(c.history))
	copy(out, c.history)
	return out
}
