package companies

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truerate-backend/internal/shared/server/respond"
)

// Handler serves the curated company reference data.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies", h.listCompanies)
	rg.GET("/companies/:slug", h.getCompany)
}

func (h *Handler) listCompanies(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"companies": All(),
	})
}

func (h *Handler) getCompany(c *gin.Context) {
	slug := c.Param("slug")
	company, ok := LookupBySlug(slug)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		return
	}
	respond.JSON(c, http.StatusOK, company)
}
