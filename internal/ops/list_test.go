package ops

import (
	"testing"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
)

func TestList_All(t *testing.T) {
	st := fixtureStore(t)

	out, err := List(st, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("Total = %d, want 2", out.Total)
	}
}

func TestList_BranchFilter(t *testing.T) {
	st := fixtureStore(t)

	out, err := List(st, ListInput{Branch: "feature"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].SessionID != "beta" {
		t.Errorf("Sessions = %v, want only beta", sessionIDs(out))
	}
}

func TestList_SinceUntil(t *testing.T) {
	st := fixtureStore(t)

	out, err := List(st, ListInput{Since: "2024-01-15"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].SessionID != "beta" {
		t.Errorf("since filter: Sessions = %v, want only beta", sessionIDs(out))
	}

	out, err = List(st, ListInput{Until: "2024-01-15"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].SessionID != "alpha" {
		t.Errorf("until filter: Sessions = %v, want only alpha", sessionIDs(out))
	}
}

func TestList_SinceInclusive(t *testing.T) {
	st := fixtureStore(t)

	// alpha was modified on 2024-01-01; the bound is inclusive
	out, err := List(st, ListInput{Since: "2024-01-01"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Sessions) != 2 {
		t.Errorf("Sessions = %v, want both", sessionIDs(out))
	}
}

func TestList_MalformedDate(t *testing.T) {
	st := fixtureStore(t)

	_, err := List(st, ListInput{Since: "01/15/2024"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestList_LimitKeepsNewest(t *testing.T) {
	st := fixtureStore(t)

	out, err := List(st, ListInput{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].SessionID != "beta" {
		t.Errorf("Sessions = %v, want newest (beta)", sessionIDs(out))
	}
}

func sessionIDs(out *ListOutput) []string {
	ids := make([]string, len(out.Sessions))
	for i, s := range out.Sessions {
		ids[i] = s.SessionID
	}
	return ids
}
