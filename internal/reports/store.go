package reports

import "context"

// Store persists AnalysisResult records keyed by report identity and
// manages share tokens. Identities are high-entropy random values and
// serve as the primary access control for direct reads.
type Store interface {
	// Save inserts or overwrites the record under id. The stored record's
	// identity field is always stamped with id.
	Save(ctx context.Context, id string, result AnalysisResult) error

	// Get returns the record or ErrNotFound. No token required.
	Get(ctx context.Context, id string) (AnalysisResult, error)

	// IssueShareToken returns the report's share token, minting one if
	// none is bound yet. Idempotent: a bound token is never rotated, and
	// concurrent calls for the same identity converge on a single token.
	IssueShareToken(ctx context.Context, id string) (string, error)

	// GetByShareToken returns the record only when a token is bound to id
	// and matches exactly. Any mismatch, including no token bound yet or
	// an unknown id, is ErrNotFound.
	GetByShareToken(ctx context.Context, id, token string) (AnalysisResult, error)
}
