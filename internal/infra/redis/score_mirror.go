package redis

import (
	"context"
	"strconv"
	"time"

	"buzzer-board-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ScoreMirror mirrors the scoreboard into a Redis hash after every change so
// external displays and ops tooling can read scores without touching the
// game process.
// Layout: HSET board:{boardID}:scores {team} {points}
type ScoreMirror struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreMirror(client *redis.Client, ttl time.Duration) *ScoreMirror {
	return &ScoreMirror{client: client, ttl: ttl}
}

func (m *ScoreMirror) PublishScores(ctx context.Context, boardID string, entries []domain.ScoreEntry) error {
	key := m.key(boardID)

	pipe := m.client.Pipeline()
	pipe.Del(ctx, key)
	for _, entry := range entries {
		pipe.HSet(ctx, key, entry.Team, strconv.Itoa(entry.Points))
	}
	if m.ttl > 0 {
		pipe.Expire(ctx, key, m.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (m *ScoreMirror) key(boardID string) string {
	return "board:" + boardID + ":scores"
}
