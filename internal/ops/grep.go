package ops

import (
	"strings"
	"unicode/utf8"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// GrepInput contains parameters for the content search operation.
type GrepInput struct {
	Query         string // required
	CaseSensitive bool
	Limit         int // 0 = all
	Context       int // preview context chars per side; 0 = default
}

// MessageMatch is one matching message within a session.
type MessageMatch struct {
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	Preview   string `json:"preview"`
}

// GrepResult bundles a session with all of its matching messages.
type GrepResult struct {
	Session    session.Session `json:"session"`
	Matches    []MessageMatch  `json:"matches"`
	MatchCount int             `json:"match_count"`
}

// GrepOutput contains the result of the Grep operation.
type GrepOutput struct {
	Results []GrepResult `json:"results"`
	Query   string       `json:"query"`
}

// Grep loads every session's full message list and matches the query
// against each message's flattened text. The query is matched verbatim,
// surrounding whitespace included. A session with at least one matching
// message becomes one result.
func Grep(st *store.Store, input GrepInput) (*GrepOutput, error) {
	query := input.Query
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewInvalidRequest("grep requires a query")
	}

	context := input.Context
	if context <= 0 {
		context = DefaultPreviewContext
	}

	var results []GrepResult
	for _, sess := range st.Collect().Sessions {
		messages, _, err := session.LoadMessages(sess.FullPath)
		if err != nil {
			continue
		}

		var matches []MessageMatch
		for i := range messages {
			text := session.ExtractText(&messages[i])
			if !matchText(text, query, input.CaseSensitive) {
				continue
			}
			matches = append(matches, MessageMatch{
				Role:      messages[i].Role(),
				Timestamp: messages[i].Timestamp,
				Preview:   preview(text, query, input.CaseSensitive, context),
			})
		}

		if len(matches) > 0 {
			results = append(results, GrepResult{
				Session:    sess,
				Matches:    matches,
				MatchCount: len(matches),
			})
		}
	}

	if input.Limit > 0 && len(results) > input.Limit {
		results = results[:input.Limit]
	}

	return &GrepOutput{Results: results, Query: query}, nil
}

// matchText reports whether query occurs in text, lowercasing both
// sides unless the search is case-sensitive.
func matchText(text, query string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.Contains(text, query)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// preview returns a window of up to context runes on each side of the
// first query occurrence, with "..." affixes where the window was
// clipped. When the query cannot be located (should not happen given
// the match precondition) the first 200 runes are returned instead.
func preview(text, query string, caseSensitive bool, context int) string {
	hay, needle := text, query
	if !caseSensitive {
		hay = strings.ToLower(text)
		needle = strings.ToLower(query)
	}

	byteIdx := strings.Index(hay, needle)
	if byteIdx == -1 {
		return truncateRunes(text, 200)
	}

	// Lowercasing maps runes one-to-one, so rune offsets in the lowered
	// haystack line up with the original text.
	matchPos := utf8.RuneCountInString(hay[:byteIdx])
	queryLen := utf8.RuneCountInString(needle)

	runes := []rune(text)
	start := max(matchPos-context, 0)
	end := min(matchPos+queryLen+context, len(runes))

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out = out + "..."
	}
	return out
}
