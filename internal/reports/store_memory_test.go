package reports

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStoreSaveStampsIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	result := AnalysisResult{IsContract: true, AnalysisID: "something-else"}
	if err := store.Save(ctx, "report-1", result); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "report-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AnalysisID != "report-1" {
		t.Fatalf("expected stored identity stamped to report-1, got %q", got.AnalysisID)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreIssueShareTokenIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Save(ctx, "report-1", AnalysisResult{IsContract: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := store.IssueShareToken(ctx, "report-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if first == "" {
		t.Fatalf("expected a non-empty token")
	}
	second, err := store.IssueShareToken(ctx, "report-1")
	if err != nil {
		t.Fatalf("reissue: %v", err)
	}
	if second != first {
		t.Fatalf("expected re-issuance to return the same token, got %q then %q", first, second)
	}

	if _, err := store.IssueShareToken(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMemoryStoreIssueShareTokenConcurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Save(ctx, "report-1", AnalysisResult{IsContract: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	const callers = 32
	tokens := make([]string, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			token, err := store.IssueShareToken(ctx, "report-1")
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if tokens[i] != tokens[0] {
			t.Fatalf("concurrent issuance produced distinct tokens %q and %q", tokens[0], tokens[i])
		}
	}
}

func TestMemoryStoreGetByShareToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Save(ctx, "report-1", AnalysisResult{IsContract: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// no token bound yet: any token is a miss
	if _, err := store.GetByShareToken(ctx, "report-1", "whatever"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before issuance, got %v", err)
	}

	token, err := store.IssueShareToken(ctx, "report-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := store.GetByShareToken(ctx, "report-1", token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got.AnalysisID != "report-1" {
		t.Fatalf("unexpected record %+v", got)
	}

	// wrong token and unknown id must be indistinguishable
	_, errWrong := store.GetByShareToken(ctx, "report-1", "wrong-token")
	_, errUnknown := store.GetByShareToken(ctx, "no-such-report", token)
	if !errors.Is(errWrong, ErrNotFound) || !errors.Is(errUnknown, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for both, got %v and %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("mismatch and unknown id leak different errors: %v vs %v", errWrong, errUnknown)
	}
}

func TestMemoryStoreResaveKeepsToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Save(ctx, "report-1", AnalysisResult{IsContract: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := store.IssueShareToken(ctx, "report-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := store.Save(ctx, "report-1", AnalysisResult{IsContract: true, Summary: "updated"}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := store.GetByShareToken(ctx, "report-1", token)
	if err != nil {
		t.Fatalf("expected the issued token to survive a resave: %v", err)
	}
	if got.Summary != "updated" {
		t.Fatalf("expected the resaved payload, got %+v", got)
	}
}
