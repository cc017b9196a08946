package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// Forecaster projects deterioration over time. The current date is appended
// so the model anchors relative time references; callers may re-invoke with
// a narrowed context for a focused forecast.
type Forecaster struct {
	conv *Conversation
	now  func() time.Time
}

func NewForecaster(ai openai.Client, deps Deps) *Forecaster {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "forecaster.txt", defaultForecasterPrompt)
	return &Forecaster{
		conv: NewConversation("ForecasterAgent", prompt, 0.1, ai, deps),
		now:  time.Now,
	}
}

func (f *Forecaster) Run(ctx context.Context, contextBlock string) (string, error) {
	today := f.now().UTC().Format("2006-01-02")
	msg := fmt.Sprintf("%s\nToday is %s. Predict degradation trajectory.", contextBlock, today)
	return f.conv.Invoke(ctx, msg)
}
