package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"buzzer-board-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BoardLoader fetches board content from a backing store (e.g., Postgres).
type BoardLoader interface {
	LoadBoard(ctx context.Context, boardID string) (domain.Board, error)
}

// BoardRepository caches boards with TTL to avoid repeated store hits.
type BoardRepository struct {
	loader BoardLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedBoard
}

type cachedBoard struct {
	board     domain.Board
	expiresAt time.Time
}

func NewBoardRepository(loader BoardLoader, ttl time.Duration) *BoardRepository {
	return &BoardRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBoard),
	}
}

func (r *BoardRepository) GetBoard(ctx context.Context, boardID string) (domain.Board, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[boardID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.board, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(boardID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[boardID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.board, nil
		}
		r.mu.RUnlock()

		board, err := r.loader.LoadBoard(ctx, boardID)
		if err != nil {
			return domain.Board{}, err
		}

		r.mu.Lock()
		r.cache[boardID] = cachedBoard{
			board:     board,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return board, nil
	})
	if err != nil {
		return domain.Board{}, err
	}
	return result.(domain.Board), nil
}

func (r *BoardRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBoardLoader is a loader backed by an in-memory map (used for demos
// and tests, and as the fallback when no Postgres is configured).
type StaticBoardLoader struct {
	boards map[string]domain.Board
}

func NewStaticBoardLoader(boards map[string]domain.Board) *StaticBoardLoader {
	return &StaticBoardLoader{boards: boards}
}

func (l *StaticBoardLoader) LoadBoard(_ context.Context, boardID string) (domain.Board, error) {
	if board, ok := l.boards[boardID]; ok {
		return board, nil
	}
	return domain.Board{}, domain.ErrBoardNotFound
}
