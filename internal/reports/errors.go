package reports

import "errors"

// Sentinel errors for the analysis pipeline and report store.
var (
	// ErrNotFound covers unknown report ids and share-token mismatches.
	// The two cases are deliberately indistinguishable to callers.
	ErrNotFound = errors.New("report not found")

	// ErrInvalidInput marks a rejected upload (bad MIME type, oversized
	// payload). Detected before any oracle call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedExtraction marks oracle output with no parseable JSON
	// object matching the contract. Retryable by resubmission.
	ErrMalformedExtraction = errors.New("malformed extraction")

	// ErrOracleFailure marks a failed extraction call (timeout, transport
	// error, upstream error).
	ErrOracleFailure = errors.New("oracle failure")
)

// Client-facing error codes.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeMalformedExtraction = "MALFORMED_EXTRACTION"
	CodeOracleFailure       = "ORACLE_FAILURE"
	CodeNotFound            = "not_found"
)
