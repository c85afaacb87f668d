package ops

import (
	"strings"
	"testing"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
)

func TestGrep_CaseInsensitiveByDefault(t *testing.T) {
	st := fixtureStore(t)

	out, err := Grep(st, GrepInput{Query: "hello"})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("Results = %d, want 1", len(out.Results))
	}
	if out.Results[0].Session.SessionID != "alpha" {
		t.Errorf("matched session = %q, want alpha", out.Results[0].Session.SessionID)
	}
	if out.Results[0].MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", out.Results[0].MatchCount)
	}
}

func TestGrep_CaseSensitive(t *testing.T) {
	st := fixtureStore(t)

	out, err := Grep(st, GrepInput{Query: "hello", CaseSensitive: true})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 0 {
		t.Errorf("Results = %d, want 0 (text says 'Hello')", len(out.Results))
	}

	out, err = Grep(st, GrepInput{Query: "Hello", CaseSensitive: true})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("Results = %d, want 1", len(out.Results))
	}
}

func TestGrep_WhitespaceIsSignificant(t *testing.T) {
	st := fixtureStore(t)

	// " world " occurs mid-message with spaces on both sides
	out, err := Grep(st, GrepInput{Query: " world "})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("expected padded query to match, got %d results", len(out.Results))
	}
	if out.Query != " world " {
		t.Errorf("Query = %q, want the input echoed verbatim", out.Query)
	}

	// "here " with a trailing space matches nothing: "here" ends the
	// message text
	out, err = Grep(st, GrepInput{Query: "here "})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 0 {
		t.Errorf("expected trailing space to prevent the match, got %d results", len(out.Results))
	}
}

func TestGrep_EmptyQuery(t *testing.T) {
	st := fixtureStore(t)

	_, err := Grep(st, GrepInput{Query: "   "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want INVALID_REQUEST", err)
	}
}

func TestGrep_MatchCarriesRoleAndTimestamp(t *testing.T) {
	st := fixtureStore(t)

	out, err := Grep(st, GrepInput{Query: "Hello World"})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("Results = %d, want 1", len(out.Results))
	}
	m := out.Results[0].Matches[0]
	if m.Role != "assistant" {
		t.Errorf("Role = %q, want assistant", m.Role)
	}
	if m.Timestamp != "2024-01-01T10:00:30Z" {
		t.Errorf("Timestamp = %q", m.Timestamp)
	}
	if !strings.Contains(m.Preview, "Hello World") {
		t.Errorf("Preview = %q, want it to contain the match", m.Preview)
	}
}

func TestPreview_WindowBoundedAndContainsQuery(t *testing.T) {
	context := 100
	pad := strings.Repeat("a", 500)
	query := "needle"
	text := pad + query + pad

	got := preview(text, query, false, context)

	maxLen := context*2 + len([]rune(query)) + 2*len("...")
	if len([]rune(got)) > maxLen {
		t.Errorf("preview length = %d runes, want at most %d", len([]rune(got)), maxLen)
	}
	if !strings.Contains(got, query) {
		t.Errorf("preview = %q, want it to contain %q", got, query)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("preview = %q, want both boundary ellipses", got)
	}
}

func TestPreview_ClipsToTextBounds(t *testing.T) {
	got := preview("needle at the start", "needle", false, 100)
	if got != "needle at the start" {
		t.Errorf("preview = %q, want whole text unclipped", got)
	}
	if strings.HasPrefix(got, "...") || strings.HasSuffix(got, "...") {
		t.Errorf("preview = %q, want no ellipses when nothing was clipped", got)
	}
}

func TestPreview_CaseInsensitiveFindsMixedCase(t *testing.T) {
	got := preview("say Hello World to everyone", "hello world", false, 5)
	if !strings.Contains(got, "Hello World") {
		t.Errorf("preview = %q, want the original-case occurrence", got)
	}
}

func TestPreview_FallbackWhenQueryAbsent(t *testing.T) {
	long := strings.Repeat("z", 400)
	got := preview(long, "missing", false, 100)
	if len([]rune(got)) != 200 {
		t.Errorf("fallback preview length = %d, want 200", len([]rune(got)))
	}
}

func TestGrep_Limit(t *testing.T) {
	st := fixtureStore(t)

	// "the" appears in both sessions
	out, err := Grep(st, GrepInput{Query: "the", Limit: 1})
	if err != nil {
		t.Fatalf("Grep failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("Results = %d, want 1 after limit", len(out.Results))
	}
}
