package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// seq breaks created_at ties in insertion order.
const selectNotices = `
	SELECT id, username, text, image, created_at
	FROM notices
	ORDER BY created_at DESC, seq DESC
`

type NoticeRepository struct {
	pool *pgxpool.Pool
}

func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

func (r *NoticeRepository) Create(ctx context.Context, n *entity.Notice) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notices (id, username, text, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.Username, n.Text, n.Image, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepository) Latest(ctx context.Context) (*entity.Notice, error) {
	n := &entity.Notice{}
	row := r.pool.QueryRow(ctx, selectNotices+" LIMIT 1")
	if err := row.Scan(&n.ID, &n.Username, &n.Text, &n.Image, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select latest notice: %w", err)
	}
	return n, nil
}

func (r *NoticeRepository) List(ctx context.Context) ([]entity.Notice, error) {
	rows, err := r.pool.Query(ctx, selectNotices)
	if err != nil {
		return nil, fmt.Errorf("select notices: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Notice, 0)
	for rows.Next() {
		var n entity.Notice
		if err := rows.Scan(&n.ID, &n.Username, &n.Text, &n.Image, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notices: %w", err)
	}
	return out, nil
}

var _ repository.NoticeRepository = (*NoticeRepository)(nil)
