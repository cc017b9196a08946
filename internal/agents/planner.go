package agents

import (
	"context"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// Planner turns a free-text defect description into a plan narrative.
type Planner struct {
	conv *Conversation
}

func NewPlanner(ai openai.Client, deps Deps) *Planner {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "planner.txt", defaultPlannerPrompt)
	return &Planner{
		conv: NewConversation("PlannerAgent", prompt, 0, ai, deps),
	}
}

func (p *Planner) Run(ctx context.Context, userText string) (string, error) {
	return p.conv.Invoke(ctx, userText)
}
