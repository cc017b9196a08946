package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/ndtplanner-backend/internal/agents"
	types "github.com/yungbote/ndtplanner-backend/internal/domain"
	errorsx "github.com/yungbote/ndtplanner-backend/internal/pkg/errors"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// scriptedAI hands out replies in order; a reply of "ERR" fails that call.
type scriptedAI struct {
	replies []string
	calls   int
}

func (s *scriptedAI) Chat(_ context.Context, _ []openai.Message, _ openai.Params) (string, error) {
	s.calls++
	if len(s.replies) == 0 {
		return "ok", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	if reply == "ERR" {
		return "", errors.New("model failure")
	}
	return reply, nil
}

func (s *scriptedAI) DefaultModel() string { return "test-model" }

type fakeGraph struct {
	methods []string
	sensors []string
}

func (g *fakeGraph) RecommendMethods(context.Context, string, string, string) ([]string, error) {
	return g.methods, nil
}
func (g *fakeGraph) RecommendSensors(context.Context, string) ([]string, error) {
	return g.sensors, nil
}
func (g *fakeGraph) EntityDetails(context.Context, string, string) (*types.EntityDetails, error) {
	return nil, nil
}

type fakeStore struct {
	plans    int
	texts    []string
	feedback []string
	planErr  error
	fbErr    error
}

func (s *fakeStore) LogInspectionPlan(_ context.Context, text, material, defect, environment string) (string, error) {
	if s.planErr != nil {
		return "", s.planErr
	}
	s.plans++
	s.texts = append(s.texts, text)
	return "plan-123", nil
}

func (s *fakeStore) LogPlanFeedback(_ context.Context, planID string, helpful bool, comment string) error {
	if s.fbErr != nil {
		return s.fbErr
	}
	s.feedback = append(s.feedback, planID)
	return nil
}

func newTestPipeline(ai openai.Client, store Store) *Pipeline {
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	graph := &fakeGraph{
		methods: []string{"Ultrasonic Testing"},
		sensors: []string{"Piezoelectric Transducer"},
	}
	deps := agents.Deps{Log: log}
	newAgents := func() *AgentSet {
		return &AgentSet{
			Planner:    agents.NewPlanner(ai, deps),
			Selector:   agents.NewToolSelector(ai, graph, agents.DefaultVocabulary(), deps),
			Critique:   agents.NewCritique(ai, deps),
			Risk:       agents.NewRisk(ai, deps),
			Forecaster: agents.NewForecaster(ai, deps),
		}
	}
	return New(log, store, newAgents, nil)
}

func TestPipelineFullRun(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"Use ultrasound.\nRecommended Method Names: [Ultrasonic Testing]\nRecommended Sensor Names: [Piezoelectric Transducer]",
		"The proposal is sound.",
		"Main risk is surface coupling.",
		"Cracking will widen within 12 months.",
	}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Material: "Concrete", Defect: "Cracking", Environment: "Humid"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.PlanID != "plan-123" {
		t.Fatalf("plan id = %q", res.PlanID)
	}
	if store.plans != 1 {
		t.Fatalf("plan writes = %d, want exactly 1", store.plans)
	}
	if res.Forecast == "" || agents.IsErrorText(res.Forecast) {
		t.Fatalf("forecast = %q", res.Forecast)
	}
	// The record's text is the final forecast, not any earlier stage.
	if store.texts[0] != "Cracking will widen within 12 months." {
		t.Fatalf("persisted text = %q", store.texts[0])
	}
	if res.Selection == nil || len(res.Selection.Methods) != 1 {
		t.Fatalf("selection = %+v", res.Selection)
	}
	// Structured requests skip the planner: selection, critique, risk,
	// forecast.
	if ai.calls != 4 {
		t.Fatalf("model calls = %d, want 4", ai.calls)
	}
	if res.Plan != "" {
		t.Fatalf("structured run should carry no planner narrative, got %q", res.Plan)
	}
}

func TestPipelineNaturalLanguagePathRunsPlanner(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"Step-by-step inspection plan.",
		`{"material": "Concrete", "defect": "Cracking", "environment": "Humid"}`,
		"Recommended Method Names: [Ultrasonic Testing]\nRecommended Sensor Names: []",
		"Critique.",
		"Risks.",
		"Forecast.",
	}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Description: "cracked concrete wall in a humid tunnel"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Plan != "Step-by-step inspection plan." {
		t.Fatalf("plan = %q", res.Plan)
	}
	// Planner, extraction, selection, critique, risk, forecast.
	if ai.calls != 6 {
		t.Fatalf("model calls = %d, want 6", ai.calls)
	}
	if store.texts[0] != "Forecast." {
		t.Fatalf("persisted text = %q", store.texts[0])
	}
}

func TestPipelineStageFailureDegrades(t *testing.T) {
	// The critique call fails; the run still reaches the forecaster and
	// persists, with the failure carried as marked text.
	ai := &scriptedAI{replies: []string{
		"Recommended Method Names: [Ultrasonic Testing]\nRecommended Sensor Names: []",
		"ERR",
		"Risk summary.",
		"Forecast text.",
	}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Material: "Concrete", Defect: "Cracking", Environment: "Humid"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !agents.IsErrorText(res.Critique) {
		t.Fatalf("critique should carry the degraded marker, got %q", res.Critique)
	}
	if !strings.Contains(res.Critique, "critique") {
		t.Fatalf("degraded text should name the stage: %q", res.Critique)
	}
	if agents.IsErrorText(res.RiskAssessment) || agents.IsErrorText(res.Forecast) {
		t.Fatal("later stages should still succeed")
	}
	if store.plans != 1 {
		t.Fatalf("plan writes = %d, want 1", store.plans)
	}
	if store.texts[0] != "Forecast text." {
		t.Fatalf("persisted text = %q", store.texts[0])
	}
}

func TestPipelineForecastFailurePersistsSelectionSummary(t *testing.T) {
	// The forecaster fails: the record must fall back to the
	// tool-selection summary, never store marked degraded text.
	ai := &scriptedAI{replies: []string{
		"Use ultrasound.\nRecommended Method Names: [Ultrasonic Testing]\nRecommended Sensor Names: []",
		"Critique.",
		"Risks.",
		"ERR",
	}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Material: "Concrete", Defect: "Cracking", Environment: "Humid"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !agents.IsErrorText(res.Forecast) {
		t.Fatalf("forecast should carry the degraded marker, got %q", res.Forecast)
	}
	if store.plans != 1 {
		t.Fatalf("plan writes = %d, want 1", store.plans)
	}
	if store.texts[0] != res.Selection.Summary {
		t.Fatalf("persisted text = %q, want the selection summary", store.texts[0])
	}
	if agents.IsErrorText(store.texts[0]) {
		t.Fatal("degraded text must never be persisted as the plan record")
	}
}

func TestPipelinePersistFailureKeepsOutputs(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"Recommended Method Names: [Ultrasonic Testing]\nRecommended Sensor Names: []",
		"Critique.",
		"Risks.",
		"Forecast.",
	}}
	store := &fakeStore{planErr: errors.New("neo4j down")}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Material: "Concrete"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.PlanID != "" {
		t.Fatalf("plan id should be empty on persist failure, got %q", res.PlanID)
	}
	if res.Forecast != "Forecast." {
		t.Fatalf("forecast = %q", res.Forecast)
	}
}

func TestPipelineInsufficientInformationStopsEarly(t *testing.T) {
	// Free-text request whose extraction resolves no material: only the
	// planner and the extraction call hit the model, and nothing persists.
	ai := &scriptedAI{replies: []string{
		"Plan text.",
		`{"material": "", "defect": "", "environment": ""}`,
	}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	res, err := p.Run(context.Background(), Request{Description: "something looks off"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Insufficient {
		t.Fatal("expected insufficient result")
	}
	if res.PlanID != "" || store.plans != 0 {
		t.Fatal("insufficient runs must not persist a plan")
	}
	if ai.calls != 2 {
		t.Fatalf("model calls = %d, want 2", ai.calls)
	}
}

func TestFocusedForecastUsesOnlyForecaster(t *testing.T) {
	ai := &scriptedAI{replies: []string{"Expect slow crack growth."}}
	store := &fakeStore{}
	p := newTestPipeline(ai, store)

	out, err := p.FocusedForecast(context.Background(), "Concrete", "Cracking", "Humid")
	if err != nil {
		t.Fatalf("FocusedForecast: %v", err)
	}
	if out != "Expect slow crack growth." {
		t.Fatalf("forecast = %q", out)
	}
	if ai.calls != 1 {
		t.Fatalf("model calls = %d, want only the forecaster's", ai.calls)
	}
	if store.plans != 0 {
		t.Fatal("focused forecast must not persist a plan")
	}
	if _, err := p.FocusedForecast(context.Background(), "", "Cracking", ""); !errors.Is(err, errorsx.ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestPipelineRejectsEmptyRequest(t *testing.T) {
	p := newTestPipeline(&scriptedAI{}, &fakeStore{})
	if _, err := p.Run(context.Background(), Request{}); !errors.Is(err, errorsx.ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestPipelineFeedbackRequiresPlanID(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(&scriptedAI{}, store)

	if err := p.Feedback(context.Background(), "  ", true, "great"); !errors.Is(err, errorsx.ErrInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if err := p.Feedback(context.Background(), "plan-123", true, "great"); err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if len(store.feedback) != 1 || store.feedback[0] != "plan-123" {
		t.Fatalf("feedback = %v", store.feedback)
	}
}

func TestPipelineFeedbackUnknownPlan(t *testing.T) {
	store := &fakeStore{fbErr: errorsx.ErrPlanNotFound}
	p := newTestPipeline(&scriptedAI{}, store)
	if err := p.Feedback(context.Background(), "missing", false, ""); !errors.Is(err, errorsx.ErrPlanNotFound) {
		t.Fatalf("err = %v", err)
	}
}
