// Package orchestrator chains the role agents into the inspection-planning
// pipeline: plan, tool selection, critique, risk assessment, forecast, then
// a persisted plan record.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/ndtplanner-backend/internal/agents"
	"github.com/yungbote/ndtplanner-backend/internal/audit"
	errorsx "github.com/yungbote/ndtplanner-backend/internal/pkg/errors"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

// Store is the slice of the knowledge graph the pipeline writes to.
type Store interface {
	LogInspectionPlan(ctx context.Context, text, material, defect, environment string) (string, error)
	LogPlanFeedback(ctx context.Context, planID string, helpful bool, comment string) error
}

// AgentSet is one run's worth of agents. Each run gets a fresh set so
// conversation state never leaks between runs.
type AgentSet struct {
	Planner    *agents.Planner
	Selector   *agents.ToolSelector
	Critique   *agents.Critique
	Risk       *agents.Risk
	Forecaster *agents.Forecaster
}

type Pipeline struct {
	log       *logger.Logger
	store     Store
	newAgents func() *AgentSet
	audit     *audit.Recorder
}

func New(log *logger.Logger, store Store, newAgents func() *AgentSet, auditRec *audit.Recorder) *Pipeline {
	return &Pipeline{
		log:       log.With("service", "PlanningPipeline"),
		store:     store,
		newAgents: newAgents,
		audit:     auditRec,
	}
}

// Request describes one planning scenario. Either the structured triple or
// a free-text description must be present; when both are given the triple
// wins and the description is treated as supplementary goal text.
type Request struct {
	Material    string `json:"material"`
	Defect      string `json:"defect"`
	Environment string `json:"environment"`
	Description string `json:"description"`
}

// Result carries every stage's output. A failed stage appears as marked
// degraded text rather than aborting the stages after it; PlanID is empty
// when the run was not persisted.
type Result struct {
	PlanID         string                `json:"plan_id,omitempty"`
	Plan           string                `json:"plan"`
	Selection      *agents.ToolSelection `json:"selection"`
	Critique       string                `json:"critique"`
	RiskAssessment string                `json:"risk_assessment"`
	Forecast       string                `json:"forecast"`
	Insufficient   bool                  `json:"insufficient,omitempty"`
}

// Run executes the full agent chain for one scenario.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Material == "" && strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: a material or a free-text description is required", errorsx.ErrInvalidArgument)
	}
	set := p.newAgents()
	res := &Result{}

	scenario := p.scenarioText(req)

	// Stage 1: inspection plan, natural-language requests only. A
	// structured request already carries its entity triple and goes
	// straight to retrieval.
	var plan string
	if req.Material == "" {
		plan = p.runStage(ctx, "planner", set.Planner.Run, scenario)
	}
	res.Plan = plan

	// Stage 2: tool selection. Unstructured requests resolve their own
	// entity triple; a request that cannot be resolved ends the run here
	// with an explicit insufficient-information result.
	sel, err := p.selectTools(ctx, set, req)
	if err != nil {
		p.log.Error("Tool selection stage failed", "error", err)
		sel = &agents.ToolSelection{
			Summary:     agents.ErrorText("tool selection", err),
			Material:    req.Material,
			Defect:      req.Defect,
			Environment: req.Environment,
			Methods:     []string{},
			Sensors:     []string{},
		}
	}
	res.Selection = sel
	if sel.Insufficient {
		res.Insufficient = true
		res.Critique = sel.Summary
		res.RiskAssessment = sel.Summary
		res.Forecast = sel.Summary
		return res, nil
	}

	ragBlock := sel.ContextBlock
	if ragBlock == "" {
		ragBlock = scenario
	}

	// Stage 3: critique of the proposal against the retrieved evidence.
	critiqueInput := fmt.Sprintf("Tool selection:\n%s\n\nRetrieved context:\n%s", sel.Summary, ragBlock)
	if plan != "" {
		critiqueInput = fmt.Sprintf("Proposed plan:\n%s\n\n%s", plan, critiqueInput)
	}
	res.Critique = p.runStage(ctx, "critique", set.Critique.Run, critiqueInput)

	// Stage 4: risk assessment over the method risk data in the context.
	riskInput := fmt.Sprintf("Tool selection:\n%s\n\nRetrieved context:\n%s", sel.Summary, ragBlock)
	res.RiskAssessment = p.runStage(ctx, "risk assessment", set.Risk.Run, riskInput)

	// Stage 5: forecast over everything accumulated so far.
	forecastInput := ragBlock
	if plan != "" {
		forecastInput += "\n\nPlan:\n" + plan
	}
	forecastInput += fmt.Sprintf("\n\nCritique:\n%s\n\nRisk assessment:\n%s", res.Critique, res.RiskAssessment)
	res.Forecast = p.runStage(ctx, "forecast", set.Forecaster.Run, forecastInput)

	// Persist last so the record reflects the completed run. The stored
	// text is the run's final answer: the forecast, or the tool-selection
	// summary when forecasting degraded. A write failure degrades to an
	// unpersisted result rather than losing the agent outputs.
	planText := res.Forecast
	if planText == "" || agents.IsErrorText(planText) {
		planText = sel.Summary
	}
	planID, err := p.store.LogInspectionPlan(ctx, planText, sel.Material, sel.Defect, sel.Environment)
	if err != nil {
		p.log.Error("Failed to persist inspection plan", "error", err)
	} else {
		res.PlanID = planID
		p.trace(res, req)
	}
	return res, nil
}

func (p *Pipeline) scenarioText(req Request) string {
	if req.Material != "" {
		s := fmt.Sprintf("Material: %s\nDeterioration: %s\nEnvironment: %s", req.Material, req.Defect, req.Environment)
		if desc := strings.TrimSpace(req.Description); desc != "" {
			s += "\nGoal: " + desc
		}
		return s
	}
	return strings.TrimSpace(req.Description)
}

func (p *Pipeline) selectTools(ctx context.Context, set *AgentSet, req Request) (*agents.ToolSelection, error) {
	if req.Material != "" {
		return set.Selector.RunStructured(ctx, req.Material, req.Defect, req.Environment)
	}
	return set.Selector.Run(ctx, req.Description)
}

// runStage invokes one agent and converts failure into marked degraded text
// so later stages and the caller still see the rest of the run.
func (p *Pipeline) runStage(ctx context.Context, name string, run func(context.Context, string) (string, error), input string) string {
	out, err := run(ctx, input)
	if err != nil {
		p.log.Error("Pipeline stage failed", "stage", name, "error", err)
		return agents.ErrorText(name, err)
	}
	return out
}

func (p *Pipeline) trace(res *Result, req Request) {
	if p.audit == nil {
		return
	}
	userInput := p.scenarioText(req)
	if res.Plan != "" {
		p.audit.LogSessionTrace(res.PlanID, "PlannerAgent", res.Plan, userInput)
		userInput = ""
	}
	p.audit.LogSessionTrace(res.PlanID, "ToolSelectorAgent", res.Selection.Summary, userInput)
	p.audit.LogSessionTrace(res.PlanID, "CritiqueAgent", res.Critique, "")
	p.audit.LogSessionTrace(res.PlanID, "RiskAssessmentAgent", res.RiskAssessment, "")
	p.audit.LogSessionTrace(res.PlanID, "ForecasterAgent", res.Forecast, "")
}

// FocusedForecast re-runs only the forecaster over a narrowed scenario.
func (p *Pipeline) FocusedForecast(ctx context.Context, material, defect, environment string) (string, error) {
	if material == "" {
		return "", fmt.Errorf("%w: material is required", errorsx.ErrInvalidArgument)
	}
	set := p.newAgents()
	input := fmt.Sprintf("Material: %s\nDeterioration: %s\nEnvironment: %s\nGive a focused degradation forecast for this scenario.", material, defect, environment)
	return set.Forecaster.Run(ctx, input)
}

// Feedback records a helpful/unhelpful response against a persisted plan.
// The plan id is the only accepted join key.
func (p *Pipeline) Feedback(ctx context.Context, planID string, helpful bool, comment string) error {
	if strings.TrimSpace(planID) == "" {
		return fmt.Errorf("%w: plan id is required", errorsx.ErrInvalidArgument)
	}
	return p.store.LogPlanFeedback(ctx, planID, helpful, comment)
}
