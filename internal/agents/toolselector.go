package agents

import (
	"context"
	"fmt"
	"strings"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
)

// InsufficientInfoSummary is the user-facing result when free text names no
// recognizable material even after heuristic fallback.
const InsufficientInfoSummary = "Insufficient information: the description does not name a recognizable material. Please state the material (and ideally the defect and environment)."

// GraphFacade is the slice of the knowledge graph the tool selector needs.
type GraphFacade interface {
	RecommendMethods(ctx context.Context, material, defect, environment string) ([]string, error)
	RecommendSensors(ctx context.Context, defect string) ([]string, error)
	EntityDetails(ctx context.Context, kind, name string) (*types.EntityDetails, error)
}

// ToolSelection is the structured outcome of a tool-selection turn.
type ToolSelection struct {
	Summary      string   `json:"summary"`
	Material     string   `json:"material"`
	Defect       string   `json:"defect"`
	Environment  string   `json:"environment"`
	Methods      []string `json:"recommended_methods"`
	Sensors      []string `json:"recommended_sensors"`
	ContextBlock string   `json:"-"`
	Insufficient bool     `json:"insufficient,omitempty"`
}

// ToolSelector recommends NDT methods and sensors. It is the one agent that
// does its own retrieval: graph recommendations plus per-entity details are
// assembled into the prompt before the model is asked to justify a
// selection.
type ToolSelector struct {
	conv  *Conversation
	ai    openai.Client
	kg    GraphFacade
	vocab Vocabulary
}

func NewToolSelector(ai openai.Client, kg GraphFacade, vocab Vocabulary, deps Deps) *ToolSelector {
	prompt := loadPrompt(deps.Log, deps.PromptsDir, "tool_selector.txt", defaultToolSelectorPrompt)
	return &ToolSelector{
		conv:  NewConversation("ToolSelectorAgent", prompt, 0.1, ai, deps),
		ai:    ai,
		kg:    kg,
		vocab: vocab,
	}
}

// Run is the unstructured entry point: extract the entity triple from free
// text first, then recommend. When no material can be resolved the graph is
// not consulted and an explicit insufficient-information result comes back.
func (t *ToolSelector) Run(ctx context.Context, freeText string) (*ToolSelection, error) {
	entities := extractEntities(ctx, t.ai, t.vocab, freeText)
	if entities.Material == "" {
		return &ToolSelection{
			Summary:      InsufficientInfoSummary,
			Defect:       entities.Defect,
			Environment:  entities.Environment,
			Methods:      []string{},
			Sensors:      []string{},
			Insufficient: true,
		}, nil
	}
	return t.RunStructured(ctx, entities.Material, entities.Defect, entities.Environment)
}

// RunStructured is the entry point when material, defect and environment
// are already known. Graph errors propagate: an empty recommendation is a
// legitimate answer, a failed query is not.
func (t *ToolSelector) RunStructured(ctx context.Context, material, defect, environment string) (*ToolSelection, error) {
	methods, err := t.kg.RecommendMethods(ctx, material, defect, environment)
	if err != nil {
		return nil, fmt.Errorf("recommend methods: %w", err)
	}
	sensors, err := t.kg.RecommendSensors(ctx, defect)
	if err != nil {
		return nil, fmt.Errorf("recommend sensors: %w", err)
	}

	contextBlock, err := t.buildContext(ctx, material, defect, environment, methods, sensors)
	if err != nil {
		return nil, err
	}

	summary, err := t.conv.Invoke(ctx, contextBlock)
	if err != nil {
		return nil, err
	}

	sel := &ToolSelection{
		Summary:      summary,
		Material:     material,
		Defect:       defect,
		Environment:  environment,
		Methods:      ParseNameList(summary, MethodListHeader),
		Sensors:      ParseNameList(summary, SensorListHeader),
		ContextBlock: contextBlock,
	}
	// The graph lists stay authoritative when the model omits or mangles
	// its delimited lines.
	if len(sel.Methods) == 0 {
		sel.Methods = methods
	}
	if len(sel.Sensors) == 0 {
		sel.Sensors = sensors
	}
	return sel, nil
}

// buildContext assembles the retrieval-augmented prompt: the scenario, the
// graph's candidate lists, and structured details (including risks) for the
// material, the defect, and every candidate method.
func (t *ToolSelector) buildContext(ctx context.Context, material, defect, environment string, methods, sensors []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Material: %s\nDeterioration: %s\nEnvironment: %s\n\n", material, defect, environment)

	if len(methods) == 0 {
		b.WriteString("Recommended NDT Methods:\nNo suitable methods found.\n\n")
	} else {
		b.WriteString("Recommended NDT Methods:\n")
		for _, m := range methods {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		b.WriteString("\n")
	}

	if len(sensors) == 0 {
		b.WriteString("Sensor Prioritization:\nNo recommended sensors.\n\n")
	} else {
		b.WriteString("Sensor Prioritization:\n")
		for _, s := range sensors {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if details, err := t.kg.EntityDetails(ctx, types.KindMaterial, material); err != nil {
		return "", fmt.Errorf("material details: %w", err)
	} else if details != nil && details.Material != nil {
		fmt.Fprintf(&b, "Material Details:\n%s\n\n", formatMaterial(details.Material))
	}

	if defect != "" {
		if details, err := t.kg.EntityDetails(ctx, types.KindDefect, defect); err != nil {
			return "", fmt.Errorf("defect details: %w", err)
		} else if details != nil && details.Defect != nil && details.Defect.DetailedDescription != "" {
			fmt.Fprintf(&b, "Defect Details:\n%s: %s\n\n", details.Defect.Name, details.Defect.DetailedDescription)
		}
	}

	for _, m := range methods {
		details, err := t.kg.EntityDetails(ctx, types.KindMethod, m)
		if err != nil {
			return "", fmt.Errorf("method details for %s: %w", m, err)
		}
		if details == nil || details.Method == nil {
			continue
		}
		fmt.Fprintf(&b, "Method Details - %s:\n%s\n", details.Method.Name, formatMethod(details.Method))
	}

	b.WriteString("\nRespond with your justification, then finish with exactly these two lines:\n")
	b.WriteString(MethodListHeader + " [..., ...]\n")
	b.WriteString(SensorListHeader + " [..., ...]\n")
	return b.String(), nil
}

func formatMaterial(m *types.MaterialDetails) string {
	var parts []string
	if m.Description != "" {
		parts = append(parts, "Description: "+m.Description)
	}
	if m.CommonApplications != "" {
		parts = append(parts, "Common Applications: "+m.CommonApplications)
	}
	if len(parts) == 0 {
		return m.Name
	}
	return strings.Join(parts, "\n")
}

func formatMethod(m *types.MethodDetails) string {
	var b strings.Builder
	if m.Description != "" {
		fmt.Fprintf(&b, "  Description: %s\n", m.Description)
	}
	if m.Category != "" {
		fmt.Fprintf(&b, "  Category: %s\n", m.Category)
	}
	if m.CostEstimate != "" {
		fmt.Fprintf(&b, "  Cost Estimate: %s\n", m.CostEstimate)
	}
	if m.DetectionCapabilities != "" {
		fmt.Fprintf(&b, "  Detection Capabilities: %s\n", m.DetectionCapabilities)
	}
	if m.ApplicableMaterialsNote != "" {
		fmt.Fprintf(&b, "  Applicable Materials Note: %s\n", m.ApplicableMaterialsNote)
	}
	if m.Limitations != "" {
		fmt.Fprintf(&b, "  Method Limitations: %s\n", m.Limitations)
	}
	for _, r := range m.Risks {
		fmt.Fprintf(&b, "  Potential Risk - %s: %s (Mitigation: %s)\n", r.Name, r.Description, r.Mitigation)
	}
	return b.String()
}
