package app

import (
	"sort"

	"buzzer-board-service/internal/domain"
)

// scoreLedger maps teams to accumulated points. Totals only ever grow.
//
// Like questionPool, the ledger is unguarded and owned by the Session mutex.
type scoreLedger struct {
	// teams in registration order; the order doubles as the leaderboard
	// tie-break so equal scores sort deterministically.
	teams  []domain.Team
	points map[string]int
}

func newScoreLedger() *scoreLedger {
	return &scoreLedger{points: make(map[string]int)}
}

// addTeam registers a team with zero points. Names are unique
// case-insensitively; re-registering is rejected, never zeroes mid-game.
func (l *scoreLedger) addTeam(team domain.Team) error {
	key := foldName(team.Name)
	if _, exists := l.points[key]; exists {
		return domain.ErrTeamExists
	}
	l.teams = append(l.teams, team)
	l.points[key] = 0
	return nil
}

// award adds points to the team's total. Callers never pass negatives.
func (l *scoreLedger) award(teamName string, points int) {
	l.points[foldName(teamName)] += points
}

// lookup resolves a submitted name to the registered team.
func (l *scoreLedger) lookup(teamName string) (domain.Team, bool) {
	key := foldName(teamName)
	if _, ok := l.points[key]; !ok {
		return domain.Team{}, false
	}
	for _, team := range l.teams {
		if foldName(team.Name) == key {
			return team, true
		}
	}
	return domain.Team{}, false
}

func (l *scoreLedger) total(teamName string) int {
	return l.points[foldName(teamName)]
}

func (l *scoreLedger) names() []string {
	names := make([]string, len(l.teams))
	for i, team := range l.teams {
		names[i] = team.Name
	}
	return names
}

// leaderboard returns teams sorted by points descending, ties broken by
// registration order.
func (l *scoreLedger) leaderboard() []domain.ScoreEntry {
	entries := make([]domain.ScoreEntry, len(l.teams))
	for i, team := range l.teams {
		entries[i] = domain.ScoreEntry{Team: team.Name, Points: l.points[foldName(team.Name)]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}
