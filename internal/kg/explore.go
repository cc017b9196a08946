package kg

import (
	"context"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
)

// LabelCounts returns node counts per label for the explorer surface.
func (s *Service) LabelCounts(ctx context.Context) ([]types.LabelCount, error) {
	records, err := s.readRecords(ctx, `
MATCH (n) RETURN labels(n)[0] AS label, count(*) AS count ORDER BY count DESC
`, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.LabelCount, 0, len(records))
	for _, rec := range records {
		out = append(out, types.LabelCount{
			Label: stringVal(rec, "label"),
			Count: int64Val(rec, "count"),
		})
	}
	return out, nil
}

// SampleRelationships returns up to limit edges for the explorer surface.
func (s *Service) SampleRelationships(ctx context.Context, limit int) ([]types.Relationship, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.readRecords(ctx, `
MATCH (a)-[r]->(b)
RETURN labels(a)[0] AS from, type(r) AS relation, labels(b)[0] AS to,
       a.name AS from_name, b.name AS to_name
LIMIT $limit
`, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]types.Relationship, 0, len(records))
	for _, rec := range records {
		out = append(out, types.Relationship{
			FromLabel: stringVal(rec, "from"),
			FromName:  stringVal(rec, "from_name"),
			Type:      stringVal(rec, "relation"),
			ToLabel:   stringVal(rec, "to"),
			ToName:    stringVal(rec, "to_name"),
		})
	}
	return out, nil
}
