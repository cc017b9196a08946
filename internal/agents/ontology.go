package agents

import (
	"context"

	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// OntologyBuilder converts competency questions into formal axioms.
// Temperature is pinned to zero so axiom generation stays reproducible.
type OntologyBuilder struct {
	conv *Conversation
}

func NewOntologyBuilder(ai openai.Client, deps Deps) *OntologyBuilder {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "ontology_builder.txt", defaultOntologyPrompt)
	return &OntologyBuilder{
		conv: NewConversation("OntologyBuilderAgent", prompt, 0, ai, deps),
	}
}

func (o *OntologyBuilder) Run(ctx context.Context, competencyQuestion string) (string, error) {
	return o.conv.Invoke(ctx, competencyQuestion)
}
