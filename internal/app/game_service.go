package app

import (
	"context"
	"log"
	"sync"

	"buzzer-board-service/internal/domain"
)

// BoardRepository loads board content (from cache/backing store).
type BoardRepository interface {
	GetBoard(ctx context.Context, boardID string) (domain.Board, error)
}

// ScoreMirror publishes scoreboard snapshots to an external store. Best
// effort: failures are logged, never surfaced to players.
type ScoreMirror interface {
	PublishScores(ctx context.Context, boardID string, entries []domain.ScoreEntry) error
}

// GameService owns the one live Session per process and translates
// collaborator calls onto it.
type GameService struct {
	boards BoardRepository
	mirror ScoreMirror

	mu      sync.RWMutex
	session *Session
	boardID string
}

// NewGameService wires the service. mirror may be nil.
func NewGameService(boards BoardRepository, mirror ScoreMirror) *GameService {
	return &GameService{boards: boards, mirror: mirror}
}

// LoadSession loads the board and replaces any previous session. In-progress
// state of an earlier session is discarded; nothing survives a reload.
func (s *GameService) LoadSession(ctx context.Context, boardID string) error {
	board, err := s.boards.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.session = newSession(board)
	s.boardID = boardID
	s.mu.Unlock()
	return nil
}

func (s *GameService) current() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrNoSession
	}
	return s.session, nil
}

// CreateTeam registers a team with zero points and puts it at the end of the
// turn order.
func (s *GameService) CreateTeam(ctx context.Context, name string, players ...string) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	if err := session.createTeam(domain.Team{Name: name, Players: players}); err != nil {
		return err
	}
	s.publishScores(ctx, session)
	return nil
}

// PresentQuestion opens the named cell for the team currently at the table.
func (s *GameService) PresentQuestion(category string, points int) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	return session.present(category, points, "")
}

// PresentQuestionTo opens the named cell for an explicitly chosen team,
// bypassing the turn order. Host-only affordance.
func (s *GameService) PresentQuestionTo(category string, points int, team string) error {
	session, err := s.current()
	if err != nil {
		return err
	}
	return session.present(category, points, team)
}

// CancelQuestion clears an open, unclaimed slot so the host can re-present.
func (s *GameService) CancelQuestion() error {
	session, err := s.current()
	if err != nil {
		return err
	}
	return session.cancel()
}

// AttemptClaim submits an answer for the open slot. A sentinel error means
// the claim was rejected; resolution outcomes (right or wrong answer) return
// nil error.
func (s *GameService) AttemptClaim(ctx context.Context, team, player string, answerIndex int) (domain.ClaimOutcome, error) {
	session, err := s.current()
	if err != nil {
		return domain.ClaimOutcome{}, err
	}
	outcome, err := session.attemptClaim(team, player, answerIndex)
	if err != nil {
		return domain.ClaimOutcome{}, err
	}
	s.publishScores(ctx, session)
	return outcome, nil
}

// State returns the polling snapshot, or an empty one before LoadSession.
func (s *GameService) State() domain.StateSnapshot {
	session, err := s.current()
	if err != nil {
		return domain.StateSnapshot{Teams: []string{}, Scoreboard: []domain.ScoreEntry{}}
	}
	return session.state()
}

// CurrentTeam reports the team at the table, if any.
func (s *GameService) CurrentTeam() (domain.Team, bool) {
	session, err := s.current()
	if err != nil {
		return domain.Team{}, false
	}
	return session.currentTeam()
}

// Leaderboard returns the ranked scoreboard.
func (s *GameService) Leaderboard() []domain.ScoreEntry {
	session, err := s.current()
	if err != nil {
		return nil
	}
	return session.leaderboard()
}

// AvailableQuestions lists the unplayed point values of one category.
func (s *GameService) AvailableQuestions(category string) ([]int, error) {
	session, err := s.current()
	if err != nil {
		return nil, err
	}
	return session.availableQuestions(category)
}

// HasAvailableQuestions reports whether any cell anywhere is still unplayed.
func (s *GameService) HasAvailableQuestions() bool {
	session, err := s.current()
	if err != nil {
		return false
	}
	return session.hasAvailableQuestions()
}

// BoardOverview returns the host-facing board summary.
func (s *GameService) BoardOverview() (domain.BoardOverview, error) {
	session, err := s.current()
	if err != nil {
		return domain.BoardOverview{}, err
	}
	return session.overview(), nil
}

// Subscribe returns a channel receiving one result per resolved claim. The
// caller must invoke the cancel function to avoid leaks.
func (s *GameService) Subscribe() (<-chan domain.ClaimResult, func(), error) {
	session, err := s.current()
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

func (s *GameService) publishScores(ctx context.Context, session *Session) {
	if s.mirror == nil {
		return
	}
	s.mu.RLock()
	boardID := s.boardID
	s.mu.RUnlock()
	if err := s.mirror.PublishScores(ctx, boardID, session.leaderboard()); err != nil {
		log.Printf("score mirror publish failed: %v", err)
	}
}
