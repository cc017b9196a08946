package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ndtplanner-backend/internal/httpapi"
)

type RouterConfig struct {
	PlanHandler     *httpapi.PlanHandler
	KGHandler       *httpapi.KGHandler
	OntologyHandler *httpapi.OntologyHandler
	HealthHandler   *httpapi.HealthHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		// Planning
		api.POST("/plans", cfg.PlanHandler.RunPlan)
		api.POST("/plans/feedback", cfg.PlanHandler.SubmitFeedback)
		api.POST("/forecasts", cfg.PlanHandler.FocusedForecast)

		// Knowledge graph
		api.GET("/kg/materials", cfg.KGHandler.ListMaterials)
		api.GET("/kg/defects", cfg.KGHandler.ListDefects)
		api.GET("/kg/environments", cfg.KGHandler.ListEnvironments)
		api.GET("/kg/details", cfg.KGHandler.GetDetails)
		api.GET("/kg/subgraph", cfg.KGHandler.GetSubgraph)
		api.GET("/kg/labels", cfg.KGHandler.GetLabelCounts)
		api.GET("/kg/relationships", cfg.KGHandler.GetRelationships)
		api.POST("/kg/seed", cfg.KGHandler.SeedGraph)
		api.POST("/kg/facts", cfg.KGHandler.ProposeFact)
		api.GET("/kg/export", cfg.KGHandler.ExportGraph)
		api.POST("/kg/validate", cfg.KGHandler.ValidateGraph)

		// Ontology
		api.POST("/ontology/axioms", cfg.OntologyHandler.GenerateAxioms)
	}

	return router
}
