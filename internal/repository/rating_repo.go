package repository

import (
	"context"

	"agent_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingRepository struct {
	db *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Insert(ctx context.Context, e *domain.EloRating) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO elo_history (id, agent_id, rating, match_id, delta, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID,
		e.AgentID,
		e.Rating,
		e.MatchID,
		e.Delta,
		e.UpdatedAt,
	)
	return err
}

// History returns an agent's rating entries, newest first.
func (r *RatingRepository) History(ctx context.Context, agentID string, limit int) ([]*domain.EloRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, agent_id, rating, match_id, delta, updated_at
		 FROM elo_history
		 WHERE agent_id = $1
		 ORDER BY updated_at DESC
		 LIMIT $2`,
		agentID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.EloRating
	for rows.Next() {
		var e domain.EloRating
		if err := rows.Scan(&e.ID, &e.AgentID, &e.Rating, &e.MatchID, &e.Delta, &e.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}
