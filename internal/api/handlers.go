package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/service"
)

const defaultSearchLimit = 10

// checkRequest is the body for POST /api/v1/interactions/check.
type checkRequest struct {
	Medications []string `json:"medications" binding:"required"`
}

// pairDetail is the per-pair payload in a check response.
type pairDetail struct {
	DrugA        string                        `json:"drug_a"`
	DrugB        string                        `json:"drug_b"`
	Severity     domain.Severity               `json:"severity"`
	Confidence   float64                       `json:"confidence"`
	Pathways     []domain.Pathway              `json:"pathways"`
	Explanation  domain.Explanation            `json:"explanation"`
	Alternatives []domain.AlternativeCandidate `json:"alternatives,omitempty"`
}

// checkResponse is the full multi-drug assessment payload.
type checkResponse struct {
	Interactions      []pairDetail     `json:"interactions"`
	OverallRisk       domain.RiskLevel `json:"overall_risk"`
	OverallConfidence float64          `json:"overall_confidence"`
	Recommendation    string           `json:"recommendation"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	store := s.provider.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"drugs":        store.DrugCount(),
		"interactions": store.InteractionCount(),
	})
}

// handleListDrugs returns every drug in dataset order.
func (s *Server) handleListDrugs(c *gin.Context) {
	drugs := s.provider.Current().AllDrugs()
	c.JSON(http.StatusOK, gin.H{
		"drugs": drugs,
		"count": len(drugs),
	})
}

// handleGetDrug returns a single drug record.
func (s *Server) handleGetDrug(c *gin.Context) {
	drug, err := s.provider.Current().DrugInfo(c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, drug)
}

// handleDrugStatistics returns the interaction profile of one drug.
func (s *Server) handleDrugStatistics(c *gin.Context) {
	stats, err := s.provider.Current().Statistics(c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleAlternatives proposes safer same-class substitutes. With an
// "against" query the candidates exclude direct interactors of that drug;
// with "context" they are ranked against a whole medication list.
func (s *Server) handleAlternatives(c *gin.Context) {
	store := s.provider.Current()

	drug, err := store.DrugInfo(c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if context := c.QueryArray("context"); len(context) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"drug":         drug.ID,
			"alternatives": store.RankByContext(drug.ID, context),
		})
		return
	}

	against := c.Query("against")
	if against == "" {
		s.renderError(c, domain.NewInvalidInputError("against", "query parameter is required"))
		return
	}
	if _, err := store.DrugInfo(against); err != nil {
		s.renderError(c, err)
		return
	}

	limit := queryInt(c, "limit", s.configManager.GetConfig().Risk.MaxAlternatives)
	c.JSON(http.StatusOK, gin.H{
		"drug":         drug.ID,
		"against":      domain.CanonicalID(against),
		"alternatives": store.FindAlternatives(drug.ID, against, limit),
	})
}

// handleSearch performs a case-insensitive substring search over drug
// identifiers and labels.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		s.renderError(c, domain.NewInvalidInputError("q", "query parameter is required"))
		return
	}

	limit := queryInt(c, "limit", defaultSearchLimit)
	results := s.provider.Current().Search(query, limit)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// handleSimilarity returns the metabolic similarity of two drugs.
func (s *Server) handleSimilarity(c *gin.Context) {
	store := s.provider.Current()

	drugA, drugB, ok := s.pairParams(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drug_a":     drugA,
		"drug_b":     drugB,
		"similarity": store.Similarity(drugA, drugB),
	})
}

// handlePathways returns the interaction pathways connecting two drugs.
func (s *Server) handlePathways(c *gin.Context) {
	store := s.provider.Current()

	drugA, drugB, ok := s.pairParams(c)
	if !ok {
		return
	}

	pathways := store.FindPathways(drugA, drugB)
	c.JSON(http.StatusOK, gin.H{
		"drug_a":   drugA,
		"drug_b":   drugB,
		"pathways": pathways,
		"count":    len(pathways),
	})
}

// handleCheckInteractions runs the full multi-drug risk assessment.
func (s *Server) handleCheckInteractions(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, domain.NewInvalidInputError("medications", "request body must contain a medications array"))
		return
	}

	assessment, err := s.risk.AssessRisk(c.Request.Context(), req.Medications)
	if err != nil {
		s.renderError(c, err)
		return
	}

	store := s.provider.Current()
	maxAlternatives := s.configManager.GetConfig().Risk.MaxAlternatives

	details := make([]pairDetail, 0, len(assessment.Interactions))
	for _, pair := range assessment.Interactions {
		res, err := s.checker.CheckInteraction(c.Request.Context(), pair.DrugA, pair.DrugB)
		if err != nil {
			s.renderError(c, err)
			return
		}
		details = append(details, pairDetail{
			DrugA:        pair.DrugA,
			DrugB:        pair.DrugB,
			Severity:     pair.Severity,
			Confidence:   pair.Confidence,
			Pathways:     res.Pathways,
			Explanation:  res.Explanation,
			Alternatives: store.FindAlternatives(pair.DrugA, pair.DrugB, maxAlternatives),
		})
	}

	c.JSON(http.StatusOK, checkResponse{
		Interactions:      details,
		OverallRisk:       assessment.OverallRisk,
		OverallConfidence: assessment.OverallConfidence,
		Recommendation:    service.RecommendationFor(assessment.OverallRisk),
	})
}

// pairParams reads and validates the drug_a/drug_b query parameters.
func (s *Server) pairParams(c *gin.Context) (string, string, bool) {
	store := s.provider.Current()

	drugA := c.Query("drug_a")
	drugB := c.Query("drug_b")
	if drugA == "" || drugB == "" {
		s.renderError(c, domain.NewInvalidInputError("drug_a/drug_b", "both query parameters are required"))
		return "", "", false
	}

	nodeA, err := store.DrugInfo(drugA)
	if err != nil {
		s.renderError(c, err)
		return "", "", false
	}
	nodeB, err := store.DrugInfo(drugB)
	if err != nil {
		s.renderError(c, err)
		return "", "", false
	}
	return nodeA.ID, nodeB.ID, true
}

// renderError maps domain errors onto HTTP status codes.
func (s *Server) renderError(c *gin.Context, err error) {
	var inputErr *domain.InvalidInputError

	status := http.StatusInternalServerError
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("Request failed")
	}

	c.JSON(status, gin.H{
		"error":          err.Error(),
		"correlation_id": c.GetString("correlation_id"),
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
