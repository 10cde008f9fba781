package repository

import (
	"context"
	"errors"

	"agent_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type AgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Upsert(ctx context.Context, a *domain.Agent) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO agents (id, name, status, elo, consecutive_timeouts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name,
		     status = EXCLUDED.status,
		     elo = EXCLUDED.elo,
		     consecutive_timeouts = EXCLUDED.consecutive_timeouts,
		     updated_at = EXCLUDED.updated_at`,
		a.ID,
		a.Name,
		a.Status,
		a.Elo,
		a.ConsecutiveTimeouts,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, status, elo, consecutive_timeouts, created_at, updated_at
		 FROM agents
		 WHERE id = $1`,
		id,
	)

	var a domain.Agent
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Status,
		&a.Elo,
		&a.ConsecutiveTimeouts,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

// ListByElo returns the top agents by rating, strongest first.
func (r *AgentRepository) ListByElo(ctx context.Context, limit int) ([]*domain.Agent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, status, elo, consecutive_timeouts, created_at, updated_at
		 FROM agents
		 ORDER BY elo DESC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Status,
			&a.Elo,
			&a.ConsecutiveTimeouts,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}
