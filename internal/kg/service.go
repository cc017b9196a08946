// Package kg is the graph query facade: every Neo4j access in the system
// goes through the typed methods on Service.
package kg

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/neo4jdb"
)

type Service struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewService(client *neo4jdb.Client, log *logger.Logger) (*Service, error) {
	if client == nil || client.Driver == nil {
		return nil, fmt.Errorf("kg: neo4j client required")
	}
	if log == nil {
		return nil, fmt.Errorf("kg: logger required")
	}
	return &Service{
		client: client,
		log:    log.With("service", "KGService"),
	}, nil
}

// readRecords runs a single read query in a managed transaction and collects
// all records. Store errors propagate to the caller; an empty result is a
// legitimate answer, never a masked failure.
func (s *Service) readRecords(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, _ := out.([]*neo4j.Record)
	return records, nil
}

// writeRecords runs a single write query in a managed transaction. All
// writes in this system are append-only.
func (s *Service) writeRecords(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	records, _ := out.([]*neo4j.Record)
	return records, nil
}

// EnsureSchema creates the uniqueness constraints plan/feedback linkage
// relies on. Best-effort for restricted users, matching how the rest of the
// graph bootstrap behaves.
func (s *Service) EnsureSchema(ctx context.Context) {
	stmts := []string{
		`CREATE CONSTRAINT inspection_plan_id_unique IF NOT EXISTS FOR (p:InspectionPlan) REQUIRE p.id IS UNIQUE`,
		`CREATE CONSTRAINT feedback_id_unique IF NOT EXISTS FOR (f:Feedback) REQUIRE f.id IS UNIQUE`,
	}
	for _, stmt := range stmts {
		if _, err := s.writeRecords(ctx, stmt, nil); err != nil {
			s.log.Warn("neo4j schema init failed (continuing)", "error", err)
		}
	}
}
