package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"truerate-backend/internal/companies"
	"truerate-backend/internal/oracle"
	"truerate-backend/internal/shared/metrics"
	"truerate-backend/internal/shared/storage/object"
	"truerate-backend/internal/shared/telemetry"
)

// MaxDocumentBytes is the upload size ceiling.
const MaxDocumentBytes = 50 << 20

// PromptVersion pins the instruction contract the service sends to the
// oracle. Any schema change must bump this together with the validator.
const PromptVersion = "extract_v1"

var acceptedMimeTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Service runs the analysis pipeline and serves report reads and shares.
type Service struct {
	Store   Store
	Oracle  oracle.Client
	Objects object.ObjectStore
}

// NewService constructs a Service.
func NewService(store Store, oracleClient oracle.Client, objects object.ObjectStore) *Service {
	return &Service{Store: store, Oracle: oracleClient, Objects: objects}
}

// Analyze runs one document through the full pipeline: input gate,
// oracle extraction, contract validation, rate normalization, reference
// matching, persistence. Synchronous; the oracle call is the only
// long-running step. An out-of-domain classification short-circuits the
// pipeline but is still persisted so it stays retrievable.
func (s *Service) Analyze(ctx context.Context, fileName string, data []byte, assumptions Assumptions) (AnalysisResult, error) {
	mimeType, err := gateInput(data)
	if err != nil {
		return AnalysisResult{}, err
	}
	assumptions = assumptions.WithDefaults()

	metrics.IncAnalysisStarted()

	documentKey := s.archiveDocument(ctx, fileName, data)

	instructions, ok := oracle.PromptTemplate(PromptVersion)
	if !ok {
		return AnalysisResult{}, fmt.Errorf("unknown prompt version %q", PromptVersion)
	}
	assumptionsJSON, err := json.Marshal(assumptions)
	if err != nil {
		return AnalysisResult{}, err
	}

	started := time.Now()
	raw, err := s.Oracle.Extract(ctx, oracle.ExtractInput{
		Document:        data,
		MimeType:        mimeType,
		FileName:        fileName,
		Instructions:    instructions,
		AssumptionsJSON: string(assumptionsJSON),
	})
	metrics.ObserveOracleDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("oracle.extract_failed", map[string]any{
			"mime_type": mimeType,
			"error":     err.Error(),
		})
		return AnalysisResult{}, fmt.Errorf("extract: %v: %w", err, ErrOracleFailure)
	}

	result, err := ParseExtraction(raw)
	if err != nil {
		metrics.IncAnalysisFailed()
		return AnalysisResult{}, err
	}
	result.DocumentKey = documentKey

	id := uuid.NewString()

	if !result.IsContract {
		metrics.IncAnalysisRejected()
		if err := s.Store.Save(ctx, id, result); err != nil {
			return AnalysisResult{}, err
		}
		result.AnalysisID = id
		telemetry.Info("analysis.out_of_domain", map[string]any{
			"report_id": id,
			"reason":    result.Reason,
		})
		return result, nil
	}

	// the engine always recomputes; oracle-provided numbers are advisory
	result.AssumptionsUsed = assumptions
	total, breakdown, warnings := ComputeTrueRate(result.FeeItems, assumptions)
	result.EstimatedTrueRatePercent = total
	result.EstimatedTrueRateBreakdown = breakdown
	result.Warnings = append(result.Warnings, warnings...)

	if result.DetectedCompany != nil {
		if ref, ok := companies.FindByName(result.DetectedCompany.Name); ok {
			result.AdvertisedRateText = ref.AdvertisedRateText
		}
	}

	if err := s.Store.Save(ctx, id, result); err != nil {
		return AnalysisResult{}, err
	}
	result.AnalysisID = id

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"report_id":          id,
		"detected_company":   detectedName(result.DetectedCompany),
		"fee_items":          len(result.FeeItems),
		"estimated_rate_pct": result.EstimatedTrueRatePercent,
	})
	return result, nil
}

// Get retrieves a report. Direct identity access always wins; a share
// token is only consulted when the direct path misses, so a stale token
// never blocks the owner of the id.
func (s *Service) Get(ctx context.Context, id, token string) (AnalysisResult, error) {
	result, err := s.Store.Get(ctx, id)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrNotFound) && token != "" {
		return s.Store.GetByShareToken(ctx, id, token)
	}
	return AnalysisResult{}, err
}

// Share issues (or re-reads) the report's share token.
func (s *Service) Share(ctx context.Context, id string) (string, error) {
	return s.Store.IssueShareToken(ctx, id)
}

// gateInput enforces the accepted MIME set and size ceiling before any
// oracle budget is spent. The MIME type is sniffed from content, not
// trusted from the request.
func gateInput(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document: %w", ErrInvalidInput)
	}
	if len(data) > MaxDocumentBytes {
		return "", fmt.Errorf("document exceeds %d bytes: %w", MaxDocumentBytes, ErrInvalidInput)
	}
	detected := mimetype.Detect(data)
	for _, accepted := range acceptedMimeTypes {
		if detected.Is(accepted) {
			return accepted, nil
		}
	}
	return "", fmt.Errorf("unsupported content type %s: %w", detected.String(), ErrInvalidInput)
}

// archiveDocument stores the upload for later reference. Archival is
// auxiliary to the analysis, so a store failure degrades to a log line
// instead of failing the request.
func (s *Service) archiveDocument(ctx context.Context, fileName string, data []byte) string {
	if s.Objects == nil {
		return ""
	}
	key, size, err := s.Objects.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("document.archive_failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
		return ""
	}
	telemetry.Info("document.archived", map[string]any{
		"storage_key": key,
		"size_bytes":  size,
	})
	return key
}

func detectedName(c *DetectedCompany) string {
	if c == nil {
		return ""
	}
	return c.Name
}
