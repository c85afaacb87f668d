// Package session defines the session and message records parsed from
// the Claude Code transcript store, and the flattening of message
// content into plain text.
package session

import "sort"

// Session is the metadata record for one chat session. Indexed sessions
// decode straight from a project's sessions-index.json; unindexed ones
// are synthesized from the transcript by the store. All defaults are
// resolved at the parse boundary: GitBranch and ProjectPath fall back
// to "N/A", Modified falls back to Created.
type Session struct {
	SessionID    string `json:"sessionId"`
	FullPath     string `json:"fullPath"`
	FirstPrompt  string `json:"firstPrompt"`
	Summary      string `json:"summary"`
	MessageCount int    `json:"messageCount"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
	GitBranch    string `json:"gitBranch"`
	ProjectPath  string `json:"projectPath"`
	IsSidechain  bool   `json:"isSidechain"`

	// IsUnindexed is true when this record was derived directly from a
	// transcript file rather than from the project index.
	IsUnindexed bool `json:"isUnindexed"`

	// ProjectDir and ProjectName identify the owning project directory.
	ProjectDir  string `json:"project_dir,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
}

// Normalize resolves missing fields to their documented defaults:
// GitBranch and ProjectPath to "N/A", Modified to Created. Index files
// written by older clients omit these fields, so every decoded record
// passes through here before anything downstream sees it.
func (s *Session) Normalize() {
	if s.GitBranch == "" {
		s.GitBranch = "N/A"
	}
	if s.ProjectPath == "" {
		s.ProjectPath = "N/A"
	}
	if s.Modified == "" {
		s.Modified = s.Created
	}
}

// SortByModifiedDesc sorts sessions newest-first by their raw Modified
// string. Claude timestamps are RFC3339 with a Z suffix, where string
// order equals chronological order; empty values sort last. The sort is
// stable so equal timestamps keep their input order.
func SortByModifiedDesc(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Modified > sessions[j].Modified
	})
}

// SortedByModifiedDesc returns a sorted copy, leaving the input alone.
func SortedByModifiedDesc(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	copy(out, sessions)
	SortByModifiedDesc(out)
	return out
}
