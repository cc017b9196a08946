package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ndtplanner-backend/internal/httpapi/response"
	"github.com/yungbote/ndtplanner-backend/internal/ontology"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

type OntologyHandler struct {
	log      *logger.Logger
	pipeline *ontology.Pipeline
	outDir   string
}

func NewOntologyHandler(log *logger.Logger, pipeline *ontology.Pipeline, outDir string) *OntologyHandler {
	return &OntologyHandler{
		log:      log.With("handler", "OntologyHandler"),
		pipeline: pipeline,
		outDir:   outDir,
	}
}

type axiomBatchRequest struct {
	Questions []string `json:"questions"`
}

// POST /api/ontology/axioms
// Generates an axiom per competency question and persists the batch as a
// Turtle file.
func (h *OntologyHandler) GenerateAxioms(c *gin.Context) {
	var req axiomBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(req.Questions) == 0 {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errMissingField("questions"))
		return
	}
	results, err := h.pipeline.Run(c.Request.Context(), req.Questions)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	path, err := ontology.WriteTurtle(results, h.outDir)
	if err != nil {
		h.log.Error("Failed to persist axiom batch", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "persist_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"results": results, "file": path})
}
