package reports

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"truerate-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the reports service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis and report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/reports/:id", h.getReport)
	rg.POST("/reports/:id/share", h.shareReport)
}

func (h *Handler) createAnalysis(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeInvalidInput, "multipart field 'file' is required", nil)
		return
	}
	if fileHeader.Size > MaxDocumentBytes {
		respond.Error(c, http.StatusBadRequest, CodeInvalidInput,
			fmt.Sprintf("file exceeds the %d MiB limit", MaxDocumentBytes>>20), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxDocumentBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	if len(data) > MaxDocumentBytes {
		respond.Error(c, http.StatusBadRequest, CodeInvalidInput,
			fmt.Sprintf("file exceeds the %d MiB limit", MaxDocumentBytes>>20), nil)
		return
	}

	// absent or unparsable assumptions fall back to defaults
	assumptions := ParseAssumptions(c.PostForm("assumptions"))

	result, err := h.Svc.Analyze(c.Request.Context(), fileHeader.Filename, data, assumptions)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, CodeInvalidInput, "unsupported or invalid document", nil)
		case errors.Is(err, ErrMalformedExtraction):
			respond.Error(c, http.StatusInternalServerError, CodeMalformedExtraction,
				"extraction produced no usable result; please retry", []map[string]string{
					{"field": "extraction", "issue": "retryable"},
				})
		case errors.Is(err, ErrOracleFailure):
			respond.Error(c, http.StatusBadGateway, CodeOracleFailure, "document analysis is temporarily unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	c.Set("reportId", result.AnalysisID)
	if result.DetectedCompany != nil {
		c.Set("detectedCompany", result.DetectedCompany.Name)
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) getReport(c *gin.Context) {
	id := c.Param("id")
	token := c.Query("token")

	result, err := h.Svc.Get(c.Request.Context(), id, token)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, CodeNotFound, "report not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		}
		return
	}

	c.Set("reportId", id)
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) shareReport(c *gin.Context) {
	id := c.Param("id")

	token, err := h.Svc.Share(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, CodeNotFound, "report not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue share token", nil)
		}
		return
	}

	c.Set("reportId", id)
	respond.JSON(c, http.StatusOK, gin.H{
		"shareToken": token,
		"shareUrl":   fmt.Sprintf("/reports/%s?token=%s", id, token),
	})
}
