package session

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
)

// Transcript lines can carry full tool outputs; allow generously sized
// lines before the scanner gives up.
const maxLineBytes = 16 * 1024 * 1024

// Message is one transcript line of type "user" or "assistant".
type Message struct {
	Type      string `json:"type"`
	UUID      string `json:"uuid,omitempty"`
	Timestamp string `json:"timestamp"`
	GitBranch string `json:"gitBranch,omitempty"`
	CWD       string `json:"cwd,omitempty"`
	Body      Body   `json:"message"`
}

// Body is the nested message payload. Content stays raw JSON because
// its shape varies (plain string, or an array of typed parts); the
// extractor flattens it on demand.
type Body struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// Role returns the nested role, or "unknown" when absent.
func (m *Message) Role() string {
	if m.Body.Role == "" {
		return "unknown"
	}
	return m.Body.Role
}

// LoadMessages reads a transcript file line by line and returns the
// ordered user/assistant messages. Lines that fail to parse are skipped
// and counted; lines of other types (summary, system, snapshots) are
// filtered without counting. A missing file yields an empty list.
func LoadMessages(path string) (messages []Message, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			skipped++
			continue
		}
		if msg.Type != "user" && msg.Type != "assistant" {
			continue
		}
		messages = append(messages, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}

	if skipped > 0 {
		log.Debug().Str("path", path).Int("skipped", skipped).Msg("skipped malformed transcript lines")
	}
	return messages, skipped, nil
}
