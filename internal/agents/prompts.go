package agents

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// Generic fallbacks used when a prompt resource is missing. A degraded
// prompt beats a service that refuses to start.
const (
	defaultPlannerPrompt      = "You are a helpful NDT inspection planning agent. Produce a short, actionable inspection plan."
	defaultToolSelectorPrompt = "You are a helpful NDT tool selection agent. Recommend suitable NDT methods and sensors, with justification."
	defaultCritiquePrompt     = "You are a helpful NDT critique agent. Review the proposed approach and point out weaknesses and gaps."
	defaultRiskPrompt         = "You are a helpful NDT risk assessment agent. Identify risks of the proposed methods and suggest mitigations."
	defaultForecasterPrompt   = "You are a helpful NDT deterioration forecasting agent. Project how the defect will evolve over the next 12 months."
	defaultOntologyPrompt     = "You are an ontology engineering agent. Answer each competency question with a formal OWL axiom in Turtle syntax."
)

// loadPrompt reads the agent's system prompt from the prompts directory,
// falling back to the generic default with a visible warning. Never a hard
// failure at startup.
func loadPrompt(log *logger.Logger, dir, name, fallback string) string {
	if strings.TrimSpace(dir) == "" {
		dir = "prompts"
	}
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Prompt resource missing; using generic default", "path", path, "error", err)
		return fallback
	}
	prompt := strings.TrimSpace(string(raw))
	if prompt == "" {
		log.Warn("Prompt resource empty; using generic default", "path", path)
		return fallback
	}
	return prompt
}
