// Package httpapi holds the gin handlers for the planning, knowledge-graph
// and ontology surfaces.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ndtplanner-backend/internal/httpapi/response"
	"github.com/yungbote/ndtplanner-backend/internal/orchestrator"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

type PlanHandler struct {
	log      *logger.Logger
	pipeline *orchestrator.Pipeline
}

func NewPlanHandler(log *logger.Logger, pipeline *orchestrator.Pipeline) *PlanHandler {
	return &PlanHandler{
		log:      log.With("handler", "PlanHandler"),
		pipeline: pipeline,
	}
}

// POST /api/plans
// Runs the full agent chain for one scenario, structured or free-text.
func (h *PlanHandler) RunPlan(c *gin.Context) {
	var req orchestrator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.pipeline.Run(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, res)
}

type feedbackRequest struct {
	PlanID  string `json:"plan_id"`
	Helpful *bool  `json:"helpful"`
	Comment string `json:"comment"`
}

// POST /api/plans/feedback
func (h *PlanHandler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Helpful == nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errMissingField("helpful"))
		return
	}
	if err := h.pipeline.Feedback(c.Request.Context(), req.PlanID, *req.Helpful, req.Comment); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "recorded", "plan_id": req.PlanID})
}

type forecastRequest struct {
	Material    string `json:"material"`
	Defect      string `json:"defect"`
	Environment string `json:"environment"`
}

// POST /api/forecasts
// Runs only the forecaster over a narrowed scenario.
func (h *PlanHandler) FocusedForecast(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	forecast, err := h.pipeline.FocusedForecast(c.Request.Context(), req.Material, req.Defect, req.Environment)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"forecast": forecast})
}
