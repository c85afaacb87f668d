// Package store reads the on-disk session store: project directories,
// per-project index files, and transcripts not yet covered by an index.
// Everything is a read-only snapshot taken per invocation.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kmabeeTT/claude-code-history/internal/config"
	"github.com/kmabeeTT/claude-code-history/internal/session"
)

const (
	firstPromptMax = 150
	summaryMax     = 100
)

// Store locates sessions under a projects directory.
type Store struct {
	projectsDir string
}

// New creates a store rooted at the configured Claude directory.
func New(cfg *config.Config) *Store {
	return &Store{projectsDir: cfg.ProjectsDir()}
}

// NewAt creates a store rooted at an explicit projects directory.
func NewAt(projectsDir string) *Store {
	return &Store{projectsDir: projectsDir}
}

// Index is a project's sessions-index.json.
type Index struct {
	Entries      []session.Session `json:"entries"`
	OriginalPath string            `json:"originalPath"`
}

// Projects lists the immediate subdirectories of the projects root.
// A missing root yields an empty list.
func (s *Store) Projects() []string {
	entries, err := os.ReadDir(s.projectsDir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(s.projectsDir, entry.Name()))
		}
	}
	return dirs
}

// LoadIndex reads a project's index file. An absent or malformed index
// yields an empty entry list.
func (s *Store) LoadIndex(projectDir string) Index {
	empty := Index{OriginalPath: projectDir}

	data, err := os.ReadFile(filepath.Join(projectDir, "sessions-index.json"))
	if err != nil {
		return empty
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		log.Debug().Str("project", projectDir).Err(err).Msg("malformed sessions index")
		return empty
	}
	return idx
}

// CollectResult bundles collected sessions with skip accounting, so
// callers and tests can observe drops instead of inferring them.
type CollectResult struct {
	Sessions []session.Session

	// DroppedSessions counts unindexed transcripts whose synthesis
	// failed (no messages, no user message, or a read error).
	DroppedSessions int

	// SkippedLines counts malformed transcript lines encountered while
	// synthesizing unindexed sessions.
	SkippedLines int
}

// Collect returns every session across all projects: index entries
// first, then a synthesized record for each transcript file the index
// does not cover.
func (s *Store) Collect() CollectResult {
	var result CollectResult

	for _, projectDir := range s.Projects() {
		projectName := filepath.Base(projectDir)
		idx := s.LoadIndex(projectDir)

		indexed := make(map[string]bool, len(idx.Entries))
		for _, entry := range idx.Entries {
			entry.Normalize()
			entry.ProjectDir = projectDir
			entry.ProjectName = projectName
			entry.IsUnindexed = false
			result.Sessions = append(result.Sessions, entry)
			indexed[entry.SessionID] = true
		}

		files, err := filepath.Glob(filepath.Join(projectDir, "*.jsonl"))
		if err != nil {
			continue
		}
		for _, path := range files {
			id := strings.TrimSuffix(filepath.Base(path), ".jsonl")
			if indexed[id] {
				continue
			}

			meta, skipped, err := synthesize(path)
			result.SkippedLines += skipped
			if err != nil || meta == nil {
				result.DroppedSessions++
				log.Debug().Str("path", path).Err(err).Msg("dropped unindexed session")
				continue
			}

			meta.ProjectDir = projectDir
			meta.ProjectName = projectName
			result.Sessions = append(result.Sessions, *meta)
		}
	}

	return result
}

// synthesize builds a metadata record straight from a transcript file.
// Returns nil (no error) when the transcript has no messages or no
// user message; those sessions are not listed.
func synthesize(path string) (*session.Session, int, error) {
	messages, skipped, err := session.LoadMessages(path)
	if err != nil {
		return nil, skipped, err
	}
	if len(messages) == 0 {
		return nil, skipped, nil
	}

	var firstUser *session.Message
	for i := range messages {
		if messages[i].Body.Role == "user" {
			firstUser = &messages[i]
			break
		}
	}
	if firstUser == nil {
		return nil, skipped, nil
	}

	firstPrompt := truncateRunes(session.ExtractText(firstUser), firstPromptMax, "…")
	firstLine, _, _ := strings.Cut(firstPrompt, "\n")
	summary := truncateRunes(firstLine, summaryMax, "...")

	// Branch and working directory come from the first line of the
	// transcript, whichever role wrote it.
	meta := &session.Session{
		SessionID:    strings.TrimSuffix(filepath.Base(path), ".jsonl"),
		FullPath:     path,
		FirstPrompt:  firstPrompt,
		Summary:      summary,
		MessageCount: len(messages),
		Created:      firstUser.Timestamp,
		Modified:     messages[len(messages)-1].Timestamp,
		GitBranch:    messages[0].GitBranch,
		ProjectPath:  messages[0].CWD,
		IsSidechain:  false,
		IsUnindexed:  true,
	}
	meta.Normalize()
	return meta, skipped, nil
}

// truncateRunes clips s to max runes, appending marker when clipped.
func truncateRunes(s string, max int, marker string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + marker
}
