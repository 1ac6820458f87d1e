package domain

// Team is a named group of players. The name is the team's identity for the
// whole session; the player list is display-only.
type Team struct {
	Name    string   `json:"name"`
	Players []string `json:"players,omitempty"`
}

// Question is a multiple-choice question with exactly one correct answer,
// identified by its index into Answers.
type Question struct {
	Prompt       string   `json:"prompt"`
	Answers      []string `json:"answers"`
	CorrectIndex int      `json:"correctIndex"`
}

// CorrectAnswer returns the text of the correct answer, or "" when the
// index is out of range.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Answers) {
		return ""
	}
	return q.Answers[q.CorrectIndex]
}

// Category maps point values to questions. Point values are unique within a
// category and are its sole identity for slot tracking.
type Category struct {
	Name      string           `json:"name"`
	Questions map[int]Question `json:"questions"`
}

// Board is a titled set of categories, the unit loaded into a session.
type Board struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Categories []Category `json:"categories"`
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// ActiveQuestion is the player-facing view of the open slot. It never carries
// the correct answer.
type ActiveQuestion struct {
	Category string   `json:"category"`
	Points   int      `json:"points"`
	Prompt   string   `json:"prompt"`
	Answers  []string `json:"answers"`
	Team     string   `json:"team"`
}

// StateSnapshot is the point-in-time view served to polling clients.
type StateSnapshot struct {
	ActiveTeam     *string         `json:"activeTeam"`
	QuestionActive bool            `json:"questionActive"`
	Question       *ActiveQuestion `json:"question"`
	Teams          []string        `json:"teams"`
	Scoreboard     []ScoreEntry    `json:"scoreboard"`
	Message        *string         `json:"message"`
}

// ClaimResult is delivered to the host once per resolved claim.
type ClaimResult struct {
	Category      string `json:"category"`
	Points        int    `json:"points"`
	Team          string `json:"team"`
	Player        string `json:"player"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// ClaimOutcome summarizes a resolved claim for the submitting player.
type ClaimOutcome struct {
	Correct bool   `json:"correct"`
	Awarded int    `json:"awarded"`
	Message string `json:"message"`
}

// BoardCell is the host-facing status of one (category, points) pair.
type BoardCell struct {
	Points   int  `json:"points"`
	Answered bool `json:"answered"`
}

// CategoryOverview lists a category's cells in ascending point order.
type CategoryOverview struct {
	Name  string      `json:"name"`
	Cells []BoardCell `json:"cells"`
}

// BoardOverview is the host-facing summary of the running session.
type BoardOverview struct {
	Title       string             `json:"title"`
	CurrentTeam *string            `json:"currentTeam"`
	Complete    bool               `json:"complete"`
	Categories  []CategoryOverview `json:"categories"`
}
