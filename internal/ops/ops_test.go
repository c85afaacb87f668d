package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// fixtureStore builds a projects tree with two unindexed sessions:
// "alpha" (modified Jan 2024, branch main) and "beta" (modified Feb
// 2024, branch feature/search).
func fixtureStore(t *testing.T) *store.Store {
	t.Helper()
	root := t.TempDir()
	projectDir := filepath.Join(root, "-home-user-proj")
	if err := os.MkdirAll(projectDir, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	writeSession(t, projectDir, "alpha", "main", "/home/user/proj",
		[2]string{"2024-01-01T10:00:00Z", "Fix the flaky test"},
		[2]string{"2024-01-01T10:00:30Z", "Hello World appears exactly once here"},
	)
	writeSession(t, projectDir, "beta", "feature/search", "/home/user/proj",
		[2]string{"2024-02-01T10:00:00Z", "Add search endpoint"},
		[2]string{"2024-02-01T10:00:30Z", "Sure, adding the endpoint now"},
	)

	return store.NewAt(root)
}

// writeSession writes a transcript whose first line is a user message
// and remaining lines alternate assistant/user.
func writeSession(t *testing.T, projectDir, id, branch, cwd string, lines ...[2]string) {
	t.Helper()
	content := ""
	for i, line := range lines {
		role, typ := "user", "user"
		if i%2 == 1 {
			role, typ = "assistant", "assistant"
		}
		content += fmt.Sprintf(
			`{"type":%q,"timestamp":%q,"gitBranch":%q,"cwd":%q,"message":{"role":%q,"content":%q}}`+"\n",
			typ, line[0], branch, cwd, role, line[1])
	}
	path := filepath.Join(projectDir, id+".jsonl")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write session %s: %v", id, err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"rfc3339 with Z", "2024-01-01T10:00:00Z", true},
		{"rfc3339 with offset", "2024-01-01T10:00:00+02:00", true},
		{"naive", "2024-01-01T10:00:00", true},
		{"empty", "", false},
		{"garbage", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTimestamp(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-01-01T10:30:00Z"); got != "2024-01-01 10:30" {
		t.Errorf("FormatDate = %q, want %q", got, "2024-01-01 10:30")
	}
	// Parse failure falls back to the raw string
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Errorf("FormatDate fallback = %q, want raw input", got)
	}
}
