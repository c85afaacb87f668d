package ops

import (
	"strconv"
	"strings"

	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// ViewInput contains parameters for the View operation.
type ViewInput struct {
	// Target is either a 1-based position in the modified-descending
	// listing, or a literal session ID.
	Target string
}

// ViewOutput contains the resolved session and its full message list.
type ViewOutput struct {
	Session  session.Session   `json:"session"`
	Messages []session.Message `json:"messages"`
}

// View resolves a session by number or ID and loads its messages.
// A numeric target outside 1..total is an error, not an ID lookup.
func View(st *store.Store, input ViewInput) (*ViewOutput, error) {
	target := strings.TrimSpace(input.Target)
	if target == "" {
		return nil, errors.NewInvalidRequest("view requires a session number or ID")
	}

	sessions := st.Collect().Sessions

	var resolved *session.Session
	if n, err := strconv.Atoi(target); err == nil {
		sorted := session.SortedByModifiedDesc(sessions)
		if n < 1 || n > len(sorted) {
			return nil, errors.NewOutOfRange(n, len(sorted))
		}
		resolved = &sorted[n-1]
	} else {
		for i := range sessions {
			if sessions[i].SessionID == target {
				resolved = &sessions[i]
				break
			}
		}
		if resolved == nil {
			return nil, errors.NewSessionNotFound(target)
		}
	}

	messages, _, err := session.LoadMessages(resolved.FullPath)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ViewOutput{Session: *resolved, Messages: messages}, nil
}
