package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ndtplanner-backend/internal/export"
	"github.com/yungbote/ndtplanner-backend/internal/httpapi/response"
	"github.com/yungbote/ndtplanner-backend/internal/kg"
	"github.com/yungbote/ndtplanner-backend/internal/platform/logger"
)

func errMissingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

type KGHandler struct {
	log        *logger.Logger
	svc        *kg.Service
	shapesPath string
}

func NewKGHandler(log *logger.Logger, svc *kg.Service, shapesPath string) *KGHandler {
	return &KGHandler{
		log:        log.With("handler", "KGHandler"),
		svc:        svc,
		shapesPath: shapesPath,
	}
}

// GET /api/kg/materials
func (h *KGHandler) ListMaterials(c *gin.Context) {
	h.respondList(c, "materials", h.svc.Materials)
}

// GET /api/kg/defects
func (h *KGHandler) ListDefects(c *gin.Context) {
	h.respondList(c, "defects", h.svc.DeteriorationTypes)
}

// GET /api/kg/environments
func (h *KGHandler) ListEnvironments(c *gin.Context) {
	h.respondList(c, "environments", h.svc.Environments)
}

func (h *KGHandler) respondList(c *gin.Context, key string, fetch func(context.Context) ([]string, error)) {
	values, err := fetch(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{key: values})
}

// GET /api/kg/details?kind=material&name=Concrete
func (h *KGHandler) GetDetails(c *gin.Context) {
	kind := c.Query("kind")
	name := c.Query("name")
	if kind == "" || name == "" {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errMissingField("kind/name"))
		return
	}
	details, err := h.svc.EntityDetails(c.Request.Context(), kind, name)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	if details == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("%s %q not found", kind, name))
		return
	}
	response.RespondOK(c, details)
}

// GET /api/kg/subgraph?material=Concrete&defect=Cracking&environment=Humid
func (h *KGHandler) GetSubgraph(c *gin.Context) {
	material := c.Query("material")
	if material == "" {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errMissingField("material"))
		return
	}
	rows, err := h.svc.ReasoningSubgraph(c.Request.Context(), material, c.Query("defect"), c.Query("environment"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rows": rows})
}

// GET /api/kg/labels
func (h *KGHandler) GetLabelCounts(c *gin.Context) {
	counts, err := h.svc.LabelCounts(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"labels": counts})
}

// GET /api/kg/relationships?limit=25
func (h *KGHandler) GetRelationships(c *gin.Context) {
	limit := 25
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	rels, err := h.svc.SampleRelationships(c.Request.Context(), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"relationships": rels})
}

// POST /api/kg/seed
// Idempotent: re-seeding an already seeded graph changes nothing.
func (h *KGHandler) SeedGraph(c *gin.Context) {
	if err := h.svc.Seed(c.Request.Context()); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "seeded"})
}

type proposeFactRequest struct {
	Material   string  `json:"material"`
	Defect     string  `json:"defect"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// POST /api/kg/facts
func (h *KGHandler) ProposeFact(c *gin.Context) {
	var req proposeFactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Material == "" || req.Defect == "" || req.Method == "" {
		response.RespondError(c, http.StatusBadRequest, "bad_request", errMissingField("material/defect/method"))
		return
	}
	created, err := h.svc.ProposeFact(c.Request.Context(), req.Material, req.Defect, req.Method, req.Confidence, req.Source)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	status := "already_known"
	if created {
		status = "proposed"
	}
	response.RespondOK(c, gin.H{"status": status})
}

// GET /api/kg/export
// Returns the graph serialized as Turtle.
func (h *KGHandler) ExportGraph(c *gin.Context) {
	ttl, err := export.Turtle(c.Request.Context(), h.svc)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/turtle; charset=utf-8", []byte(ttl))
}

// POST /api/kg/validate
// Exports the graph and validates it against the configured shapes file.
func (h *KGHandler) ValidateGraph(c *gin.Context) {
	rawShapes, err := os.ReadFile(h.shapesPath)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "shapes_unavailable", err)
		return
	}
	shapes, err := export.ParseShapes(string(rawShapes))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "shapes_invalid", err)
		return
	}
	ttl, err := export.Turtle(c.Request.Context(), h.svc)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	report, err := export.Validate(ttl, shapes)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, report)
}
