package app

import (
	"fmt"
	"strings"
	"sync"

	"buzzer-board-service/internal/domain"
)

// Session is the shared mutable aggregate for one running game: the question
// pool, the score ledger, the turn order and the single active-question slot.
// Every HTTP worker and the host control surface go through its mutex; no
// state escapes except as copies.
type Session struct {
	mu sync.Mutex

	board  domain.Board
	pool   *questionPool
	ledger *scoreLedger

	current  int
	complete bool

	slot        *activeSlot
	lastMessage string

	subscribers map[chan domain.ClaimResult]struct{}
}

// activeSlot is the one question currently open for claims. claimed flips
// true exactly once, inside the session mutex.
type activeSlot struct {
	category      string
	points        int
	prompt        string
	answers       []string
	team          string
	correctAnswer string
	claimed       bool
}

// slotSnapshot is an immutable copy of slot data taken inside the critical
// section; validation and scoring read only this.
type slotSnapshot struct {
	category      string
	points        int
	prompt        string
	answers       []string
	team          string
	correctAnswer string
}

func (s *activeSlot) snapshot() slotSnapshot {
	answers := make([]string, len(s.answers))
	copy(answers, s.answers)
	return slotSnapshot{
		category:      s.category,
		points:        s.points,
		prompt:        s.prompt,
		answers:       answers,
		team:          s.team,
		correctAnswer: s.correctAnswer,
	}
}

func newSession(board domain.Board) *Session {
	return &Session{
		board:       board,
		pool:        newQuestionPool(board),
		ledger:      newScoreLedger(),
		current:     -1,
		subscribers: make(map[chan domain.ClaimResult]struct{}),
	}
}

func (s *Session) createTeam(team domain.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.addTeam(team); err != nil {
		return err
	}
	if s.current == -1 {
		s.current = 0
	}
	return nil
}

func (s *Session) currentTeamLocked() (domain.Team, bool) {
	if s.current < 0 || s.current >= len(s.ledger.teams) {
		return domain.Team{}, false
	}
	return s.ledger.teams[s.current], true
}

func (s *Session) currentTeam() (domain.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTeamLocked()
}

// advanceLocked rotates the turn, or marks the session complete once no
// category has an unplayed cell left. Completion is terminal.
func (s *Session) advanceLocked() {
	if len(s.ledger.teams) == 0 || s.complete {
		return
	}
	if !s.pool.hasAnyAvailable() {
		s.complete = true
		return
	}
	s.current = (s.current + 1) % len(s.ledger.teams)
}

func (s *Session) categoryLocked(name string) (domain.Category, bool) {
	key := foldName(name)
	for _, category := range s.board.Categories {
		if foldName(category.Name) == key {
			return category, true
		}
	}
	return domain.Category{}, false
}

// present opens the slot for the named cell. teamName selects the team
// entitled to answer; empty means the team currently at the table. The slot
// holds copies of the question data, so later edits to the board cannot
// change an in-flight round.
func (s *Session) present(categoryName string, points int, teamName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot != nil && !s.slot.claimed {
		return domain.ErrQuestionActive
	}
	category, ok := s.categoryLocked(categoryName)
	if !ok {
		return domain.ErrCategoryNotFound
	}
	question, ok := category.Questions[points]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if !s.pool.isAvailable(category.Name, points) {
		return domain.ErrQuestionConsumed
	}

	var team domain.Team
	if strings.TrimSpace(teamName) == "" {
		team, ok = s.currentTeamLocked()
		if !ok {
			return domain.ErrNoTeams
		}
	} else {
		team, ok = s.ledger.lookup(teamName)
		if !ok {
			return domain.ErrUnknownTeam
		}
	}

	answers := make([]string, len(question.Answers))
	copy(answers, question.Answers)
	s.slot = &activeSlot{
		category:      category.Name,
		points:        points,
		prompt:        question.Prompt,
		answers:       answers,
		team:          team.Name,
		correctAnswer: question.CorrectAnswer(),
	}
	s.lastMessage = ""
	return nil
}

// cancel clears an open, unclaimed slot so the host can re-present. The cell
// stays available; nothing is consumed or scored.
func (s *Session) cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slot == nil || s.slot.claimed {
		return domain.ErrNoActiveQuestion
	}
	s.slot = nil
	return nil
}

// attemptClaim is the concurrency contract of the whole service. Among any
// number of concurrent calls against one open slot, exactly one observes
// claimed false->true; the check and the flip happen inside a single lock
// acquisition, so no second caller can also flip it. Everything after the
// flip runs outside the lock on the copied snapshot.
//
// A claim that wins the flip but then fails validation still ends the round:
// the cell is consumed and the slot cleared with no points awarded.
func (s *Session) attemptClaim(teamName, playerName string, answerIndex int) (domain.ClaimOutcome, error) {
	s.mu.Lock()
	if s.slot == nil || s.slot.claimed {
		s.mu.Unlock()
		return domain.ClaimOutcome{}, domain.ErrNoActiveQuestion
	}
	s.slot.claimed = true
	slot := s.slot
	snap := slot.snapshot()
	s.mu.Unlock()

	teamName = strings.TrimSpace(teamName)
	playerName = strings.TrimSpace(playerName)

	if teamName == "" {
		return s.rejectClaim(slot, snap, domain.ErrEmptyTeamName)
	}
	if playerName == "" {
		return s.rejectClaim(slot, snap, domain.ErrEmptyPlayerName)
	}
	team, ok := s.lookupTeam(teamName)
	if !ok {
		return s.rejectClaim(slot, snap, domain.ErrUnknownTeam)
	}
	if !strings.EqualFold(snap.team, team.Name) {
		return s.rejectClaim(slot, snap, domain.ErrNotYourTurn)
	}
	if answerIndex < 0 || answerIndex >= len(snap.answers) {
		return s.rejectClaim(slot, snap, domain.ErrAnswerOutOfRange)
	}

	given := snap.answers[answerIndex]
	correct := strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(snap.correctAnswer))

	return s.resolveClaim(slot, snap, team, playerName, correct)
}

// resolveClaim settles a validated claim: consume the cell, award on a
// correct answer, advance the turn and emit the result event.
func (s *Session) resolveClaim(slot *activeSlot, snap slotSnapshot, team domain.Team, playerName string, correct bool) (domain.ClaimOutcome, error) {
	s.mu.Lock()
	consumed := s.pool.tryConsume(snap.category, snap.points)
	awarded := 0
	if consumed && correct {
		s.ledger.award(team.Name, snap.points)
		awarded = snap.points
	}
	message := outcomeMessage(snap, team.Name, playerName, correct, consumed)
	s.lastMessage = message
	s.clearSlotLocked(slot)
	s.advanceLocked()
	s.broadcastLocked(domain.ClaimResult{
		Category:      snap.category,
		Points:        snap.points,
		Team:          team.Name,
		Player:        playerName,
		Correct:       correct,
		CorrectAnswer: snap.correctAnswer,
	})
	s.mu.Unlock()

	return domain.ClaimOutcome{Correct: correct, Awarded: awarded, Message: message}, nil
}

// rejectClaim finishes a claim that won the flip but failed validation. The
// first syntactically acceptable claim ends the round even when invalid, so
// the cell is consumed here too.
func (s *Session) rejectClaim(slot *activeSlot, snap slotSnapshot, cause error) (domain.ClaimOutcome, error) {
	s.mu.Lock()
	s.pool.tryConsume(snap.category, snap.points)
	s.clearSlotLocked(slot)
	s.mu.Unlock()
	return domain.ClaimOutcome{}, cause
}

// clearSlotLocked closes the round for the given claimed slot. The host may
// have presented a fresh question while the claim was validating outside the
// lock; that round must survive, so only the claim's own slot is cleared.
func (s *Session) clearSlotLocked(slot *activeSlot) {
	if s.slot == slot {
		s.slot = nil
	}
}

func (s *Session) lookupTeam(name string) (domain.Team, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.lookup(name)
}

func outcomeMessage(snap slotSnapshot, teamName, playerName string, correct, consumed bool) string {
	switch {
	case correct && consumed:
		return fmt.Sprintf("Correct! Player %s (team %s) earns %d points.", playerName, teamName, snap.points)
	case correct:
		return "Correct, but this question was already scored. No points awarded."
	default:
		return fmt.Sprintf("Unfortunately wrong. The correct answer is: %s.", snap.correctAnswer)
	}
}

// state returns the polling snapshot. The lock is held only for the copy.
func (s *Session) state() domain.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.StateSnapshot{
		Teams:      s.ledger.names(),
		Scoreboard: s.ledger.leaderboard(),
	}
	if team, ok := s.currentTeamLocked(); ok {
		name := team.Name
		snapshot.ActiveTeam = &name
	}
	if s.slot != nil && !s.slot.claimed {
		snapshot.QuestionActive = true
		answers := make([]string, len(s.slot.answers))
		copy(answers, s.slot.answers)
		snapshot.Question = &domain.ActiveQuestion{
			Category: s.slot.category,
			Points:   s.slot.points,
			Prompt:   s.slot.prompt,
			Answers:  answers,
			Team:     s.slot.team,
		}
	}
	if s.lastMessage != "" {
		message := s.lastMessage
		snapshot.Message = &message
	}
	return snapshot
}

func (s *Session) overview() domain.BoardOverview {
	s.mu.Lock()
	defer s.mu.Unlock()

	overview := domain.BoardOverview{
		Title:    s.board.Title,
		Complete: s.complete,
	}
	if team, ok := s.currentTeamLocked(); ok {
		name := team.Name
		overview.CurrentTeam = &name
	}
	for _, category := range s.board.Categories {
		cells := make([]domain.BoardCell, 0, len(category.Questions))
		for _, points := range sortedPoints(keysOf(category.Questions)) {
			cells = append(cells, domain.BoardCell{
				Points:   points,
				Answered: !s.pool.isAvailable(category.Name, points),
			})
		}
		overview.Categories = append(overview.Categories, domain.CategoryOverview{
			Name:  category.Name,
			Cells: cells,
		})
	}
	return overview
}

func keysOf(questions map[int]domain.Question) map[int]struct{} {
	set := make(map[int]struct{}, len(questions))
	for points := range questions {
		set[points] = struct{}{}
	}
	return set
}

func (s *Session) leaderboard() []domain.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.leaderboard()
}

func (s *Session) availableQuestions(category string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categoryLocked(category); !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return s.pool.availablePoints(category), nil
}

func (s *Session) hasAvailableQuestions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.hasAnyAvailable()
}

// subscribe returns a channel receiving one ClaimResult per resolved claim.
// The caller must invoke cancel to avoid leaks.
func (s *Session) subscribe() (<-chan domain.ClaimResult, func()) {
	ch := make(chan domain.ClaimResult, 8)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcastLocked fans a result out to host subscribers. Sends never block:
// a full channel drops its oldest entry, so a slow host feed cannot stall
// the claim path.
func (s *Session) broadcastLocked(result domain.ClaimResult) {
	for ch := range s.subscribers {
		select {
		case ch <- result:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- result:
			default:
			}
		}
	}
}
