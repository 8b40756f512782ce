package reports

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps reports in process memory and is safe for concurrent
// use. No expiry; retention is bounded by process lifetime.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]AnalysisResult
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]AnalysisResult),
	}
}

// Save stores the result under id.
func (s *MemoryStore) Save(ctx context.Context, id string, result AnalysisResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result.AnalysisID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byID[id]; ok && result.ShareToken == "" {
		result.ShareToken = existing.ShareToken
	}
	s.byID[id] = result
	return nil
}

// Get returns a report by its id.
func (s *MemoryStore) Get(ctx context.Context, id string) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byID[id]
	if !ok {
		return AnalysisResult{}, ErrNotFound
	}
	return result, nil
}

// IssueShareToken binds a token to the report, or returns the existing
// one. The check-then-set runs under the write lock so concurrent calls
// observe a single token.
func (s *MemoryStore) IssueShareToken(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.byID[id]
	if !ok {
		return "", ErrNotFound
	}
	if result.ShareToken != "" {
		return result.ShareToken, nil
	}
	result.ShareToken = newShareToken()
	s.byID[id] = result
	return result.ShareToken, nil
}

// GetByShareToken returns the report only on an exact token match.
func (s *MemoryStore) GetByShareToken(ctx context.Context, id, token string) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byID[id]
	if !ok || result.ShareToken == "" || result.ShareToken != token {
		return AnalysisResult{}, ErrNotFound
	}
	return result, nil
}

func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

var _ Store = (*MemoryStore)(nil)
