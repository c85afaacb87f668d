package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Branch string // substring filter on gitBranch
	Since  string // YYYY-MM-DD, inclusive on modified
	Until  string // YYYY-MM-DD, inclusive on modified
	Limit  int    // keep newest N after sorting; 0 = all
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Sessions []session.Session `json:"sessions"`
	Total    int               `json:"total"`
}

// List collects all sessions and applies the structural filters.
func List(st *store.Store, input ListInput) (*ListOutput, error) {
	since, err := parseDateFlag("since", input.Since)
	if err != nil {
		return nil, err
	}
	until, err := parseDateFlag("until", input.Until)
	if err != nil {
		return nil, err
	}

	sessions := st.Collect().Sessions

	if input.Branch != "" {
		sessions = filterSessions(sessions, func(s *session.Session) bool {
			return strings.Contains(s.GitBranch, input.Branch)
		})
	}
	if !since.IsZero() {
		sessions = filterByModified(sessions, func(t time.Time) bool {
			return !t.Before(since)
		})
	}
	if !until.IsZero() {
		sessions = filterByModified(sessions, func(t time.Time) bool {
			return !t.After(until)
		})
	}

	if input.Limit > 0 {
		sessions = session.SortedByModifiedDesc(sessions)
		if len(sessions) > input.Limit {
			sessions = sessions[:input.Limit]
		}
	}

	return &ListOutput{Sessions: sessions, Total: len(sessions)}, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value as UTC midnight.
// An empty value yields the zero time.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest(
			fmt.Sprintf("invalid --%s date %q (expected YYYY-MM-DD)", name, value))
	}
	return t.UTC(), nil
}

func filterSessions(sessions []session.Session, keep func(*session.Session) bool) []session.Session {
	out := sessions[:0:0]
	for i := range sessions {
		if keep(&sessions[i]) {
			out = append(out, sessions[i])
		}
	}
	return out
}

// filterByModified keeps sessions whose modified timestamp parses and
// satisfies keep. Unparsable timestamps are excluded from a date-
// filtered listing.
func filterByModified(sessions []session.Session, keep func(time.Time) bool) []session.Session {
	return filterSessions(sessions, func(s *session.Session) bool {
		t, ok := ParseTimestamp(s.Modified)
		if !ok {
			log.Debug().Str("session", s.SessionID).Str("modified", s.Modified).
				Msg("excluding session with unparsable timestamp from date filter")
			return false
		}
		return keep(t)
	})
}
