package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"buzzer-board-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BoardLoader fetches board content from a backing store (e.g., Postgres).
type BoardLoader interface {
	LoadBoard(ctx context.Context, boardID string) (domain.Board, error)
}

// BoardRepository caches whole boards in Redis as JSON and falls back to a
// loader on cache miss. The session needs prompts and answer texts, so the
// full document is cached rather than a lightweight answer index.
// Layout: SET board:{boardID}:data {json} EX ttl
type BoardRepository struct {
	client *redis.Client
	loader BoardLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBoardRepository(client *redis.Client, loader BoardLoader, ttl time.Duration) *BoardRepository {
	return &BoardRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BoardRepository) GetBoard(ctx context.Context, boardID string) (domain.Board, error) {
	key := r.dataKey(boardID)

	if raw, err := r.client.Get(ctx, key).Result(); err == nil {
		return decodeBoard(raw)
	}

	result, err, _ := r.sf.Do(boardID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Result(); err == nil {
			return decodeBoard(raw)
		}

		board, err := r.loader.LoadBoard(ctx, boardID)
		if err != nil {
			return domain.Board{}, err
		}

		raw, err := json.Marshal(board)
		if err != nil {
			return domain.Board{}, fmt.Errorf("encode board: %w", err)
		}
		// best-effort cache fill
		_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()

		return board, nil
	})
	if err != nil {
		return domain.Board{}, err
	}
	return result.(domain.Board), nil
}

func (r *BoardRepository) dataKey(boardID string) string {
	return "board:" + boardID + ":data"
}

func decodeBoard(raw string) (domain.Board, error) {
	var board domain.Board
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		return domain.Board{}, fmt.Errorf("decode board: %w", err)
	}
	return board, nil
}

func (r *BoardRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
