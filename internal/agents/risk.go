package agents

import (
	"context"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// Risk assesses the risks of the proposed methods over a context block that
// already includes each method's linked risk data.
type Risk struct {
	conv *Conversation
}

func NewRisk(ai openai.Client, deps Deps) *Risk {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "risk_assessment_agent.txt", defaultRiskPrompt)
	return &Risk{
		conv: NewConversation("RiskAssessmentAgent", prompt, 0, ai, deps),
	}
}

func (r *Risk) Run(ctx context.Context, contextBlock string) (string, error) {
	return r.conv.Invoke(ctx, contextBlock)
}
