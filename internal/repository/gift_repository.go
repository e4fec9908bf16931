package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jubilee/internal/domain"
)

type GiftRepository struct {
	db *sql.DB
}

func NewGiftRepository(db *sql.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

func (r *GiftRepository) List(ctx context.Context) ([]domain.Gift, error) {
	const q = `SELECT id, display_name, COALESCE(link, '') FROM gifts ORDER BY display_name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	defer rows.Close()

	gifts := make([]domain.Gift, 0)
	for rows.Next() {
		var g domain.Gift
		if err := rows.Scan(&g.ID, &g.DisplayName, &g.Link); err != nil {
			return nil, fmt.Errorf("scan gift: %w", err)
		}
		gifts = append(gifts, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gifts: %w", err)
	}

	return gifts, nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id string) (domain.Gift, error) {
	const q = `SELECT id, display_name, COALESCE(link, '') FROM gifts WHERE id = $1`

	var g domain.Gift
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.DisplayName, &g.Link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Gift{}, ErrNotFound
		}
		return domain.Gift{}, fmt.Errorf("get gift %s: %w", id, err)
	}

	return g, nil
}
