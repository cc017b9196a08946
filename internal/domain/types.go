package domain

import "time"

// Entity kinds accepted by detail lookups.
const (
	KindMaterial    = "material"
	KindDefect      = "defect"
	KindMethod      = "method"
	KindEnvironment = "environment"
)

// Risk is a RiskType node linked to an NDT method.
type Risk struct {
	Name        string `json:"name"`
	Description string `json:"risk_description,omitempty"`
	Mitigation  string `json:"mitigation_suggestion,omitempty"`
}

// MaterialDetails are the structured attributes of a Material node.
type MaterialDetails struct {
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	CommonApplications string `json:"common_applications,omitempty"`
}

// DefectDetails cover Deterioration / DeteriorationMechanism nodes.
type DefectDetails struct {
	Name                string `json:"name"`
	DetailedDescription string `json:"detailed_description,omitempty"`
}

// MethodDetails are the structured attributes of an NDTMethod node,
// including its linked risks.
type MethodDetails struct {
	Name                    string `json:"name"`
	Description             string `json:"description,omitempty"`
	CostEstimate            string `json:"cost_estimate,omitempty"`
	Category                string `json:"category,omitempty"`
	DetectionCapabilities   string `json:"detection_capabilities,omitempty"`
	ApplicableMaterialsNote string `json:"applicable_materials_note,omitempty"`
	Limitations             string `json:"method_limitations,omitempty"`
	Risks                   []Risk `json:"risks,omitempty"`
}

// EnvironmentDetails are the structured attributes of an Environment node.
type EnvironmentDetails struct {
	Name string `json:"name"`
}

// EntityDetails is the per-kind result of a detail lookup. Exactly one of
// the pointer fields is set for an existing entity.
type EntityDetails struct {
	Kind        string              `json:"kind"`
	Material    *MaterialDetails    `json:"material,omitempty"`
	Defect      *DefectDetails      `json:"defect,omitempty"`
	Method      *MethodDetails      `json:"method,omitempty"`
	Environment *EnvironmentDetails `json:"environment,omitempty"`
}

// SubgraphRow is one row of the reasoning subgraph. Hops that did not match
// stay empty rather than failing the query.
type SubgraphRow struct {
	Material    string `json:"material,omitempty"`
	Defect      string `json:"defect,omitempty"`
	Method      string `json:"method,omitempty"`
	Environment string `json:"env,omitempty"`
	Sensor      string `json:"sensor,omitempty"`
}

// InspectionPlan is the persisted outcome of one planning run. Immutable
// after creation; feedback attaches by ID.
type InspectionPlan struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Material    string    `json:"material"`
	Defect      string    `json:"defect"`
	Environment string    `json:"environment"`
	CreatedAt   time.Time `json:"created_at"`
}

// Feedback is one helpful/unhelpful response to a logged plan.
type Feedback struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Helpful   bool      `json:"helpful"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LabelCount is a node count per label for the explorer surface.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Relationship is a sample edge for the explorer surface.
type Relationship struct {
	FromLabel string `json:"from"`
	FromName  string `json:"from_name"`
	Type      string `json:"relation"`
	ToLabel   string `json:"to"`
	ToName    string `json:"to_name"`
}

// ExportNode / ExportRel are raw dumps feeding the Turtle exporter.
type ExportNode struct {
	ID     int64    `json:"id"`
	Labels []string `json:"labels"`
	Name   string   `json:"name"`
}

type ExportRel struct {
	SourceID int64  `json:"source"`
	Type     string `json:"rel"`
	TargetID int64  `json:"target"`
}
