package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/ndtplanner-backend/internal/agents"
	"github.com/yungbote/ndtplanner-backend/internal/audit"
	"github.com/yungbote/ndtplanner-backend/internal/httpapi"
	"github.com/yungbote/ndtplanner-backend/internal/kg"
	"github.com/yungbote/ndtplanner-backend/internal/memory"
	"github.com/yungbote/ndtplanner-backend/internal/ontology"
	"github.com/yungbote/ndtplanner-backend/internal/orchestrator"
	"github.com/yungbote/ndtplanner-backend/internal/platform/envutil"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
	"github.com/yungbote/ndtplanner-backend/internal/platform/neo4jdb"
	"github.com/yungbote/ndtplanner-backend/internal/platform/openai"
	"github.com/yungbote/ndtplanner-backend/internal/server"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := envutil.String("PORT", "8080")
	logDir := envutil.String("LOG_DIR", "logs")
	promptsDir := envutil.String("PROMPTS_DIR", "prompts")
	vocabPath := envutil.String("EXTRACT_VOCAB_PATH", "configs/extract_vocab.yaml")
	shapesPath := envutil.String("SHACL_SHAPES_PATH", "ontology/shapes.ttl")
	axiomsDir := envutil.String("AXIOMS_OUT_DIR", "ontology")
	seedOnStart := envutil.Bool("SEED_ON_START", false)

	// Neo4j
	neo4jClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("Neo4j init failed", "error", err)
	}
	defer neo4jClient.Close(context.Background())

	kgService, err := kg.NewService(neo4jClient, log)
	if err != nil {
		log.Fatal("Knowledge graph service init failed", "error", err)
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		kgService.EnsureSchema(ctx)
		if seedOnStart {
			if err := kgService.Seed(ctx); err != nil {
				log.Warn("Seed on start failed", "error", err)
			}
		}
		cancel()
	}

	// Model client
	aiClient, err := openai.NewClient(log)
	if err != nil {
		log.Fatal("Model client init failed", "error", err)
	}

	// Short-term memory: redis when configured, shared file otherwise.
	var memStore memory.Store
	if os.Getenv("REDIS_ADDR") != "" {
		memStore, err = memory.NewRedisStore(log)
		if err != nil {
			log.Fatal("Redis memory init failed", "error", err)
		}
	} else {
		memStore, err = memory.NewFileStore(logDir, log)
		if err != nil {
			log.Fatal("File memory init failed", "error", err)
		}
	}

	// Audit trail
	auditRec, err := audit.NewRecorder(logDir, log)
	if err != nil {
		log.Fatal("Audit recorder init failed", "error", err)
	}

	// Agents + pipeline
	vocab := agents.LoadVocabulary(vocabPath, log)
	agentDeps := agents.Deps{
		Log:        log,
		Memory:     memStore,
		Audit:      auditRec,
		PromptsDir: promptsDir,
	}
	newAgents := func() *orchestrator.AgentSet {
		return &orchestrator.AgentSet{
			Planner:    agents.NewPlanner(aiClient, agentDeps),
			Selector:   agents.NewToolSelector(aiClient, kgService, vocab, agentDeps),
			Critique:   agents.NewCritique(aiClient, agentDeps),
			Risk:       agents.NewRisk(aiClient, agentDeps),
			Forecaster: agents.NewForecaster(aiClient, agentDeps),
		}
	}
	pipeline := orchestrator.New(log, kgService, newAgents, auditRec)

	cqPipeline := ontology.NewPipeline(log, func() ontology.AxiomGenerator {
		return agents.NewOntologyBuilder(aiClient, agentDeps)
	}, ontology.Config{
		Concurrency: envutil.Int("CQ_CONCURRENCY", 4),
		Retries:     envutil.Int("CQ_RETRIES", 2),
	})

	// Handlers
	log.Info("Setting up handlers from main...")
	planHandler := httpapi.NewPlanHandler(log, pipeline)
	kgHandler := httpapi.NewKGHandler(log, kgService, shapesPath)
	ontologyHandler := httpapi.NewOntologyHandler(log, cqPipeline, axiomsDir)
	healthHandler := httpapi.NewHealthHandler()

	// Router
	router := server.NewRouter(server.RouterConfig{
		PlanHandler:     planHandler,
		KGHandler:       kgHandler,
		OntologyHandler: ontologyHandler,
		HealthHandler:   healthHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
