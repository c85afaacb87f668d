package ops

import (
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// StatsOutput contains aggregate statistics over all sessions.
type StatsOutput struct {
	TotalSessions  int     `json:"total_sessions"`
	TotalMessages  int     `json:"total_messages"`
	AvgMessages    float64 `json:"avg_messages_per_session"`
	UniqueBranches int     `json:"unique_branches"`
	UniqueProjects int     `json:"unique_projects"`
}

// Stats collects all sessions and aggregates their counts.
func Stats(st *store.Store) *StatsOutput {
	sessions := st.Collect().Sessions

	totalMessages := 0
	branches := make(map[string]bool)
	projects := make(map[string]bool)
	for i := range sessions {
		totalMessages += sessions[i].MessageCount
		branches[sessions[i].GitBranch] = true
		projects[sessions[i].ProjectPath] = true
	}

	avg := 0.0
	if len(sessions) > 0 {
		avg = float64(totalMessages) / float64(len(sessions))
	}

	return &StatsOutput{
		TotalSessions:  len(sessions),
		TotalMessages:  totalMessages,
		AvgMessages:    avg,
		UniqueBranches: len(branches),
		UniqueProjects: len(projects),
	}
}
