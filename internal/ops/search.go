package ops

import (
	"strings"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// SearchInput contains parameters for the metadata Search operation.
type SearchInput struct {
	Query string // required
	Limit int    // 0 = all
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Sessions []session.Session `json:"sessions"`
	Query    string            `json:"query"`
}

// Search matches the query case-insensitively against each session's
// summary, first prompt, and branch. The query is matched verbatim,
// surrounding whitespace included. Input order is preserved; there is
// no ranking.
func Search(st *store.Store, input SearchInput) (*SearchOutput, error) {
	query := input.Query
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewInvalidRequest("search requires a query")
	}
	queryLower := strings.ToLower(query)

	sessions := st.Collect().Sessions
	matched := filterSessions(sessions, func(s *session.Session) bool {
		searchable := strings.ToLower(s.Summary + " " + s.FirstPrompt + " " + s.GitBranch)
		return strings.Contains(searchable, queryLower)
	})

	if input.Limit > 0 && len(matched) > input.Limit {
		matched = matched[:input.Limit]
	}

	return &SearchOutput{Sessions: matched, Query: query}, nil
}
