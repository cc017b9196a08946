package agents

import (
	"context"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// Critique reviews an assembled scenario + proposal + RAG block. The caller
// owns context assembly; this agent is a passthrough to the model.
type Critique struct {
	conv *Conversation
}

func NewCritique(ai openai.Client, deps Deps) *Critique {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "critique_agent.txt", defaultCritiquePrompt)
	return &Critique{
		conv: NewConversation("CritiqueAgent", prompt, 0.1, ai, deps),
	}
}

func (c *Critique) Run(ctx context.Context, contextBlock string) (string, error) {
	return c.conv.Invoke(ctx, contextBlock)
}
