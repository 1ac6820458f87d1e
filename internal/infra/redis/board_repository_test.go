package redis

import (
	"context"
	"testing"
	"time"

	"buzzer-board-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBoardRepositoryFillsCacheFromLoader(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	loader := &countingLoader{board: sampleBoard()}
	repo := NewBoardRepository(client, loader, 5*time.Minute)

	board, err := repo.GetBoard(context.Background(), "board-1")
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if board.Title != "Demo" || len(board.Categories) != 1 {
		t.Fatalf("unexpected board %+v", board)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}
	if !mr.Exists("board:board-1:data") {
		t.Fatalf("expected cache key to be set")
	}

	// Second read must come from Redis.
	if _, err := repo.GetBoard(context.Background(), "board-1"); err != nil {
		t.Fatalf("get board 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBoardRepositorySurvivesCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewBoardRepository(client, &countingLoader{board: sampleBoard()}, 5*time.Minute)

	if _, err := repo.GetBoard(context.Background(), "board-1"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	board, err := repo.GetBoard(context.Background(), "board-1")
	if err != nil {
		t.Fatalf("cached read: %v", err)
	}
	question, ok := board.Categories[0].Questions[10]
	if !ok || question.CorrectAnswer() != "Paris" {
		t.Fatalf("expected question intact after round trip, got %+v", board.Categories[0])
	}
}

type countingLoader struct {
	board domain.Board
	calls int
}

func (l *countingLoader) LoadBoard(_ context.Context, boardID string) (domain.Board, error) {
	l.calls++
	if boardID != l.board.ID {
		return domain.Board{}, domain.ErrBoardNotFound
	}
	return l.board, nil
}

func sampleBoard() domain.Board {
	return domain.Board{
		ID:    "board-1",
		Title: "Demo",
		Categories: []domain.Category{
			{
				Name: "Geography",
				Questions: map[int]domain.Question{
					10: {Prompt: "Capital of France?", Answers: []string{"Paris", "Berlin"}, CorrectIndex: 0},
				},
			},
		},
	}
}
