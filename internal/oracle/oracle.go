package oracle

import (
	"context"
	"errors"
)

// Client abstracts the extraction oracle: anything that can read an
// agreement document and answer the instruction contract with raw text.
type Client interface {
	Extract(ctx context.Context, input ExtractInput) (string, error)
}

// ExtractInput carries one document and the instruction contract for it.
type ExtractInput struct {
	Document        []byte
	MimeType        string
	FileName        string
	Instructions    string
	AssumptionsJSON string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("extraction oracle not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Extract returns ErrNotImplemented.
func (PlaceholderClient) Extract(ctx context.Context, input ExtractInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
