package kg

import (
	"context"

	"github.com/google/uuid"
)

// ProposeFact records a pending material-defect-method fact for later
// curation when the triple is not already present. Returns true when a new
// proposal was created.
func (s *Service) ProposeFact(ctx context.Context, material, defect, method string, confidence float64, source string) (bool, error) {
	existing, err := s.readRecords(ctx, `
MATCH (m:Material {name: $material})-[:HAS_DETERIORATION_MECHANISM]->(d:Deterioration {name: $defect})
MATCH (d)-[:DETECTED_BY]->(n:NDTMethod {name: $method})
RETURN m.name AS name
LIMIT 1
`, map[string]any{"material": material, "defect": defect, "method": method})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	if source == "" {
		source = "LLM inference"
	}
	_, err = s.writeRecords(ctx, `
MERGE (m:Material {name: $material})
MERGE (d:Deterioration {name: $defect})
MERGE (n:NDTMethod {name: $method})
MERGE (m)-[:HAS_DETERIORATION_MECHANISM]->(d)
MERGE (d)-[:DETECTED_BY]->(n)

CREATE (p:ProposedFact {
    id: $id,
    material: $material,
    defect: $defect,
    method: $method,
    source: $source,
    confidence: $confidence,
    status: "pending"
})
MERGE (p)-[:PROPOSES]->(m)
MERGE (p)-[:PROPOSES]->(d)
MERGE (p)-[:PROPOSES]->(n)
`, map[string]any{
		"id":         uuid.NewString(),
		"material":   material,
		"defect":     defect,
		"method":     method,
		"source":     source,
		"confidence": confidence,
	})
	if err != nil {
		return false, err
	}
	s.log.Info("Proposed new KG fact", "material", material, "defect", defect, "method", method)
	return true, nil
}
