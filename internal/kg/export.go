package kg

import (
	"context"

	types "github.com/yungbote/ndtplanner-backend/internal/domain"
)

// ExportNodes dumps every node with its labels and name for serialization.
func (s *Service) ExportNodes(ctx context.Context) ([]types.ExportNode, error) {
	records, err := s.readRecords(ctx, `
MATCH (n) RETURN id(n) AS id, labels(n) AS labels, n.name AS name
`, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.ExportNode, 0, len(records))
	for _, rec := range records {
		node := types.ExportNode{
			ID:   int64Val(rec, "id"),
			Name: stringVal(rec, "name"),
		}
		if raw, ok := rec.Get("labels"); ok {
			if list, ok := raw.([]any); ok {
				for _, l := range list {
					if s, ok := l.(string); ok {
						node.Labels = append(node.Labels, s)
					}
				}
			}
		}
		out = append(out, node)
	}
	return out, nil
}

// ExportRelationships dumps every edge by node id pair and type.
func (s *Service) ExportRelationships(ctx context.Context) ([]types.ExportRel, error) {
	records, err := s.readRecords(ctx, `
MATCH (a)-[r]->(b)
RETURN id(a) AS source, type(r) AS rel, id(b) AS target
`, nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.ExportRel, 0, len(records))
	for _, rec := range records {
		out = append(out, types.ExportRel{
			SourceID: int64Val(rec, "source"),
			Type:     stringVal(rec, "rel"),
			TargetID: int64Val(rec, "target"),
		})
	}
	return out, nil
}
