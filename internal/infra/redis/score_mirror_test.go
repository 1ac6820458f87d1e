package redis

import (
	"context"
	"testing"
	"time"

	"buzzer-board-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestScoreMirrorPublishesHash(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mirror := NewScoreMirror(client, time.Minute)

	entries := []domain.ScoreEntry{
		{Team: "Alpha", Points: 30},
		{Team: "Beta", Points: 10},
	}
	if err := mirror.PublishScores(context.Background(), "board-1", entries); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got := mr.HGet("board:board-1:scores", "Alpha"); got != "30" {
		t.Fatalf("expected Alpha=30, got %q", got)
	}
	if got := mr.HGet("board:board-1:scores", "Beta"); got != "10" {
		t.Fatalf("expected Beta=10, got %q", got)
	}
}

func TestScoreMirrorReplacesStaleTeams(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mirror := NewScoreMirror(client, 0)

	_ = mirror.PublishScores(context.Background(), "board-1", []domain.ScoreEntry{{Team: "Ghost", Points: 5}})
	_ = mirror.PublishScores(context.Background(), "board-1", []domain.ScoreEntry{{Team: "Alpha", Points: 10}})

	if mr.HGet("board:board-1:scores", "Ghost") != "" {
		t.Fatalf("expected stale team removed")
	}
	if got := mr.HGet("board:board-1:scores", "Alpha"); got != "10" {
		t.Fatalf("expected Alpha=10, got %q", got)
	}
}
