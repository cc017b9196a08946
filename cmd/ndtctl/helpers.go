package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/ndtplanner-backend/internal/kg"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/neo4jdb"
)

// withGraph runs fn against a connected knowledge-graph service and tears
// the driver down afterwards.
func withGraph(ctx context.Context, fn func(ctx context.Context, svc *kg.Service, log *logger.Logger) error) error {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		return fmt.Errorf("connect neo4j: %w", err)
	}
	defer client.Close(ctx)

	svc, err := kg.NewService(client, log)
	if err != nil {
		return err
	}
	return fn(ctx, svc, log)
}
