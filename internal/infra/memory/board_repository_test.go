package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"buzzer-board-service/internal/domain"
)

func TestBoardRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BoardLoader: NewStaticBoardLoader(map[string]domain.Board{
			"board-1": sampleBoard(),
		}),
	}
	repo := NewBoardRepository(loader, time.Minute)

	if _, err := repo.GetBoard(context.Background(), "board-1"); err != nil {
		t.Fatalf("get board: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBoard(context.Background(), "board-1"); err != nil {
		t.Fatalf("get board 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBoardRepositoryUnknownBoard(t *testing.T) {
	repo := NewBoardRepository(NewStaticBoardLoader(nil), time.Minute)
	if _, err := repo.GetBoard(context.Background(), "missing"); !errors.Is(err, domain.ErrBoardNotFound) {
		t.Fatalf("expected board not found, got %v", err)
	}
}

type countingLoader struct {
	BoardLoader
	calls int
}

func (l *countingLoader) LoadBoard(ctx context.Context, boardID string) (domain.Board, error) {
	l.calls++
	return l.BoardLoader.LoadBoard(ctx, boardID)
}

func sampleBoard() domain.Board {
	return domain.Board{
		ID:    "board-1",
		Title: "Demo",
		Categories: []domain.Category{
			{
				Name: "Geography",
				Questions: map[int]domain.Question{
					10: {Prompt: "Capital of France?", Answers: []string{"Paris", "Berlin", "Rome"}, CorrectIndex: 0},
				},
			},
		},
	}
}
