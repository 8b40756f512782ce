package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGStore implements Store using Postgres. The share token lives in its
// own column so issuance can rely on a conditional UPDATE instead of a
// read-modify-write of the JSONB payload.
type PGStore struct {
	DB *sql.DB
}

// Save inserts or overwrites the report. The share token column is left
// untouched on overwrite so re-saving never drops an issued token.
func (s *PGStore) Save(ctx context.Context, id string, result AnalysisResult) error {
	result.AnalysisID = id
	result.ShareToken = ""

	var detectedCompany sql.NullString
	if result.DetectedCompany != nil && result.DetectedCompany.Name != "" {
		detectedCompany = sql.NullString{String: result.DetectedCompany.Name, Valid: true}
	}
	var documentKey sql.NullString
	if result.DocumentKey != "" {
		documentKey = sql.NullString{String: result.DocumentKey, Valid: true}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO reports (id, is_contract, detected_company, result, document_key)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	is_contract = EXCLUDED.is_contract,
	detected_company = EXCLUDED.detected_company,
	result = EXCLUDED.result,
	document_key = EXCLUDED.document_key`
	_, err = s.DB.ExecContext(ctx, query, id, result.IsContract, detectedCompany, string(payload), documentKey)
	return err
}

// Get returns a report by its id.
func (s *PGStore) Get(ctx context.Context, id string) (AnalysisResult, error) {
	const query = `
SELECT result, share_token, document_key
FROM reports
WHERE id = $1
LIMIT 1`
	return s.scanOne(s.DB.QueryRowContext(ctx, query, id), id)
}

// IssueShareToken mints a token with a conditional UPDATE that only fires
// while the column is NULL, then re-reads the winner. Concurrent callers
// converge on a single token.
func (s *PGStore) IssueShareToken(ctx context.Context, id string) (string, error) {
	const mint = `UPDATE reports SET share_token = $2 WHERE id = $1 AND share_token IS NULL`
	if _, err := s.DB.ExecContext(ctx, mint, id, newShareToken()); err != nil {
		return "", err
	}

	const read = `SELECT share_token FROM reports WHERE id = $1 LIMIT 1`
	var token sql.NullString
	err := s.DB.QueryRowContext(ctx, read, id).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if !token.Valid || token.String == "" {
		return "", ErrNotFound
	}
	return token.String, nil
}

// GetByShareToken returns the report only on an exact token match.
func (s *PGStore) GetByShareToken(ctx context.Context, id, token string) (AnalysisResult, error) {
	if token == "" {
		return AnalysisResult{}, ErrNotFound
	}
	const query = `
SELECT result, share_token, document_key
FROM reports
WHERE id = $1 AND share_token IS NOT NULL AND share_token = $2
LIMIT 1`
	return s.scanOne(s.DB.QueryRowContext(ctx, query, id, token), id)
}

func (s *PGStore) scanOne(row *sql.Row, id string) (AnalysisResult, error) {
	var payload []byte
	var token sql.NullString
	var documentKey sql.NullString
	err := row.Scan(&payload, &token, &documentKey)
	if errors.Is(err, sql.ErrNoRows) {
		return AnalysisResult{}, ErrNotFound
	}
	if err != nil {
		return AnalysisResult{}, err
	}

	var result AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return AnalysisResult{}, err
	}
	result.AnalysisID = id
	if token.Valid {
		result.ShareToken = token.String
	}
	if documentKey.Valid {
		result.DocumentKey = documentKey.String
	}
	return result, nil
}

var _ Store = (*PGStore)(nil)
