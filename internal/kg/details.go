package kg

import (
	"context"
	"fmt"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
	errorsx "github.com/yungbote/ndtplanner-backend/internal/pkg/errors"
)

// EntityDetails fetches the structured attributes of a named entity. A nil
// result with a nil error means the entity does not exist; only store
// failures return an error.
func (s *Service) EntityDetails(ctx context.Context, kind, name string) (*types.EntityDetails, error) {
	switch kind {
	case types.KindMaterial:
		return s.materialDetails(ctx, name)
	case types.KindDefect:
		return s.defectDetails(ctx, name)
	case types.KindMethod:
		return s.methodDetails(ctx, name)
	case types.KindEnvironment:
		return s.environmentDetails(ctx, name)
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", errorsx.ErrInvalidArgument, kind)
	}
}

func (s *Service) materialDetails(ctx context.Context, name string) (*types.EntityDetails, error) {
	records, err := s.readRecords(ctx, `
MATCH (m:Material {name: $name})
RETURN m.name AS name, m.description AS description, m.common_applications AS common_applications
`, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &types.EntityDetails{
		Kind: types.KindMaterial,
		Material: &types.MaterialDetails{
			Name:               stringVal(rec, "name"),
			Description:        stringVal(rec, "description"),
			CommonApplications: stringVal(rec, "common_applications"),
		},
	}, nil
}

func (s *Service) defectDetails(ctx context.Context, name string) (*types.EntityDetails, error) {
	records, err := s.readRecords(ctx, `
MATCH (d)
WHERE (d:Deterioration OR d:DeteriorationMechanism) AND d.name = $name
RETURN d.name AS name, d.detailed_description AS detailed_description
LIMIT 1
`, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	return &types.EntityDetails{
		Kind: types.KindDefect,
		Defect: &types.DefectDetails{
			Name:                stringVal(rec, "name"),
			DetailedDescription: stringVal(rec, "detailed_description"),
		},
	}, nil
}

func (s *Service) methodDetails(ctx context.Context, name string) (*types.EntityDetails, error) {
	records, err := s.readRecords(ctx, `
MATCH (n:NDTMethod {name: $name})
OPTIONAL MATCH (n)-[:HAS_POTENTIAL_RISK]->(r:RiskType)
RETURN n.name AS name,
       n.description AS description,
       n.cost_estimate AS cost_estimate,
       n.category AS category,
       n.detection_capabilities AS detection_capabilities,
       n.applicable_materials_note AS applicable_materials_note,
       n.method_limitations AS method_limitations,
       collect(CASE WHEN r IS NULL THEN NULL ELSE {
           name: r.name,
           risk_description: r.risk_description,
           mitigation_suggestion: r.mitigation_suggestion
       } END) AS risks
`, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := records[0]
	method := &types.MethodDetails{
		Name:                    stringVal(rec, "name"),
		Description:             stringVal(rec, "description"),
		CostEstimate:            stringVal(rec, "cost_estimate"),
		Category:                stringVal(rec, "category"),
		DetectionCapabilities:   stringVal(rec, "detection_capabilities"),
		ApplicableMaterialsNote: stringVal(rec, "applicable_materials_note"),
		Limitations:             stringVal(rec, "method_limitations"),
	}
	if raw, ok := rec.Get("risks"); ok {
		if list, ok := raw.([]any); ok {
			for _, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				risk := types.Risk{}
				if v, ok := m["name"].(string); ok {
					risk.Name = v
				}
				if v, ok := m["risk_description"].(string); ok {
					risk.Description = v
				}
				if v, ok := m["mitigation_suggestion"].(string); ok {
					risk.Mitigation = v
				}
				if risk.Name != "" {
					method.Risks = append(method.Risks, risk)
				}
			}
		}
	}
	return &types.EntityDetails{Kind: types.KindMethod, Method: method}, nil
}

func (s *Service) environmentDetails(ctx context.Context, name string) (*types.EntityDetails, error) {
	records, err := s.readRecords(ctx, `
MATCH (e:Environment {name: $name}) RETURN e.name AS name
`, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &types.EntityDetails{
		Kind:        types.KindEnvironment,
		Environment: &types.EnvironmentDetails{Name: stringVal(records[0], "name")},
	}, nil
}
