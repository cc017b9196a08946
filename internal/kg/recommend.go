package kg

import (
	"context"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
)

// RecommendMethods returns the NDT method names reachable from the material
// through the given defect, filtered by the environment the method requires.
// Two traversal paths are unioned: the direct defect path and the
// mechanism path through an intermediate physical change.
func (s *Service) RecommendMethods(ctx context.Context, material, defect, environment string) ([]string, error) {
	query := `
// Direct path
MATCH (m:Material {name: $material})-[:HAS_DETERIORATION_MECHANISM]->(d:Deterioration {name: $defect})
MATCH (d)-[:DETECTED_BY]->(n:NDTMethod)-[:REQUIRES_ENVIRONMENT]->(e:Environment {name: $environment})
RETURN DISTINCT n.name AS method

UNION

// Mechanism path
MATCH (m:Material {name: $material})-[:HAS_DETERIORATION_MECHANISM]->(dm:DeteriorationMechanism {name: $defect})
MATCH (dm)-[:CAUSES_PHYSICAL_CHANGE]->(p:PhysicalChange)
MATCH (p)-[:DETECTED_BY]->(n:NDTMethod)-[:REQUIRES_ENVIRONMENT]->(e:Environment {name: $environment})
RETURN DISTINCT n.name AS method
`
	records, err := s.readRecords(ctx, query, map[string]any{
		"material":    material,
		"defect":      defect,
		"environment": environment,
	})
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "method"), nil
}

// RecommendSensors returns sensors recommended for methods that detect the
// given defect, via the same two traversal paths as RecommendMethods.
func (s *Service) RecommendSensors(ctx context.Context, defect string) ([]string, error) {
	query := `
// Path A: Deterioration -> NDTMethod -> Sensor
MATCH (d:Deterioration {name: $defect})-[:DETECTED_BY]->(n:NDTMethod)
MATCH (s:Sensor)-[:RECOMMENDED_FOR]->(n)
RETURN DISTINCT s.name AS sensor

UNION

// Path B: DeteriorationMechanism -> PhysicalChange -> NDTMethod -> Sensor
MATCH (dm:DeteriorationMechanism {name: $defect})-[:CAUSES_PHYSICAL_CHANGE]->(p:PhysicalChange)
MATCH (p)-[:DETECTED_BY]->(n:NDTMethod)
MATCH (s:Sensor)-[:RECOMMENDED_FOR]->(n)
RETURN DISTINCT s.name AS sensor
`
	records, err := s.readRecords(ctx, query, map[string]any{"defect": defect})
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "sensor"), nil
}

// ReasoningSubgraph returns the rows relevant to one recommendation
// decision. Every hop is optional so partial matches come back with empty
// fields instead of failing the query.
func (s *Service) ReasoningSubgraph(ctx context.Context, material, defect, environment string) ([]types.SubgraphRow, error) {
	query := `
OPTIONAL MATCH (m:Material {name: $material})-[:HAS_DETERIORATION_MECHANISM]->(d)
WHERE d.name = $defect
OPTIONAL MATCH (d)-[:DETECTED_BY]->(n:NDTMethod)-[:REQUIRES_ENVIRONMENT]->(e:Environment {name: $environment})
OPTIONAL MATCH (s:Sensor)-[:RECOMMENDED_FOR]->(n)
RETURN m.name AS material, d.name AS defect, n.name AS method, e.name AS env, s.name AS sensor
`
	records, err := s.readRecords(ctx, query, map[string]any{
		"material":    material,
		"defect":      defect,
		"environment": environment,
	})
	if err != nil {
		return nil, err
	}
	rows := make([]types.SubgraphRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, types.SubgraphRow{
			Material:    stringVal(rec, "material"),
			Defect:      stringVal(rec, "defect"),
			Method:      stringVal(rec, "method"),
			Environment: stringVal(rec, "env"),
			Sensor:      stringVal(rec, "sensor"),
		})
	}
	return rows, nil
}
