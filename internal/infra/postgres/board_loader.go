package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"buzzer-board-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BoardLoader loads board JSONB from Postgres.
type BoardLoader struct {
	pool *pgxpool.Pool
}

func NewBoardLoader(pool *pgxpool.Pool) *BoardLoader {
	return &BoardLoader{pool: pool}
}

func (l *BoardLoader) LoadBoard(ctx context.Context, boardID string) (domain.Board, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM boards WHERE id=$1`, boardID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Board{}, domain.ErrBoardNotFound
	}
	if err != nil {
		return domain.Board{}, fmt.Errorf("load board: %w", err)
	}
	var board domain.Board
	if err := json.Unmarshal(raw, &board); err != nil {
		return domain.Board{}, fmt.Errorf("unmarshal board: %w", err)
	}
	board.ID = boardID
	return board, nil
}
