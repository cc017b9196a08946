package kg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	errorsx "github.com/yungbote/ndtplanner-backend/internal/pkg/errors"
)

// LogInspectionPlan creates an InspectionPlan node and returns its generated
// id. The id is the only join key accepted for later feedback; plan text is
// never used for linkage.
func (s *Service) LogInspectionPlan(ctx context.Context, text, material, defect, environment string) (string, error) {
	planID := uuid.NewString()
	_, err := s.writeRecords(ctx, `
CREATE (p:InspectionPlan {
    id: $id,
    text: $text,
    material: $material,
    defect: $defect,
    environment: $environment,
    created_at: $created_at
})
`, map[string]any{
		"id":          planID,
		"text":        text,
		"material":    material,
		"defect":      defect,
		"environment": environment,
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", fmt.Errorf("log inspection plan: %w", err)
	}
	s.log.Info("Logged inspection plan", "plan_id", planID, "material", material, "defect", defect)
	return planID, nil
}

// LogPlanFeedback attaches a Feedback node to an existing plan. When the
// plan id does not resolve, ErrPlanNotFound is returned and nothing is
// created.
func (s *Service) LogPlanFeedback(ctx context.Context, planID string, helpful bool, comment string) error {
	if planID == "" {
		return fmt.Errorf("%w: empty plan id", errorsx.ErrInvalidArgument)
	}
	records, err := s.writeRecords(ctx, `
MATCH (p:InspectionPlan {id: $plan_id})
CREATE (f:Feedback {
    id: $id,
    helpful: $helpful,
    comment: $comment,
    created_at: $created_at
})
CREATE (f)-[:REFERS_TO_PLAN]->(p)
RETURN f.id AS id
`, map[string]any{
		"plan_id":    planID,
		"id":         uuid.NewString(),
		"helpful":    helpful,
		"comment":    comment,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("log plan feedback: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: %s", errorsx.ErrPlanNotFound, planID)
	}
	s.log.Info("Logged plan feedback", "plan_id", planID, "helpful", helpful)
	return nil
}
