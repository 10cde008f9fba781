package repository

import (
	"context"
	"errors"

	"agent_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// Archive writes a finished match and its rounds in one transaction.
// Append-only: a match already archived is left untouched.
func (r *MatchRepository) Archive(ctx context.Context, m *domain.Match, rounds []*domain.Round) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO matches (id, agent_a, agent_b, status, score_a, score_b, wins_a, wins_b,
		                      current_round, max_rounds, winner_id,
		                      elo_change_a, elo_change_b, elo_updated_at,
		                      started_at, finished_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 ON CONFLICT (id) DO NOTHING`,
		m.ID,
		m.AgentA,
		m.AgentB,
		domain.MatchArchived,
		m.ScoreA,
		m.ScoreB,
		m.WinsA,
		m.WinsB,
		m.CurrentRound,
		m.MaxRounds,
		m.WinnerID,
		m.EloChangeA,
		m.EloChangeB,
		m.EloUpdatedAt,
		m.StartedAt,
		m.FinishedAt,
		m.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}

	for _, rd := range rounds {
		if _, err := tx.Exec(ctx,
			`INSERT INTO rounds (id, match_id, round_no, move_a, move_b, outcome,
			                     points_a, points_b, read_bonus_a, read_bonus_b,
			                     violation_a, violation_b, judged_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			rd.ID,
			rd.MatchID,
			rd.RoundNo,
			rd.MoveA,
			rd.MoveB,
			rd.Outcome,
			rd.PointsA,
			rd.PointsB,
			rd.ReadBonusA,
			rd.ReadBonusB,
			rd.ViolationA,
			rd.ViolationB,
			rd.JudgedAt,
			rd.CreatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, agent_a, agent_b, status, score_a, score_b, wins_a, wins_b,
		        current_round, max_rounds, winner_id,
		        elo_change_a, elo_change_b, elo_updated_at,
		        started_at, finished_at, created_at
		 FROM matches
		 WHERE id = $1`,
		id,
	)

	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByAgent returns an agent's archived matches, newest first.
func (r *MatchRepository) ListByAgent(ctx context.Context, agentID string, limit int) ([]*domain.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, agent_a, agent_b, status, score_a, score_b, wins_a, wins_b,
		        current_round, max_rounds, winner_id,
		        elo_change_a, elo_change_b, elo_updated_at,
		        started_at, finished_at, created_at
		 FROM matches
		 WHERE agent_a = $1 OR agent_b = $1
		 ORDER BY finished_at DESC
		 LIMIT $2`,
		agentID,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MatchRepository) Rounds(ctx context.Context, matchID string) ([]*domain.Round, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, match_id, round_no, move_a, move_b, outcome,
		        points_a, points_b, read_bonus_a, read_bonus_b,
		        violation_a, violation_b, judged_at, created_at
		 FROM rounds
		 WHERE match_id = $1
		 ORDER BY round_no ASC`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Round
	for rows.Next() {
		var rd domain.Round
		if err := rows.Scan(
			&rd.ID,
			&rd.MatchID,
			&rd.RoundNo,
			&rd.MoveA,
			&rd.MoveB,
			&rd.Outcome,
			&rd.PointsA,
			&rd.PointsB,
			&rd.ReadBonusA,
			&rd.ReadBonusB,
			&rd.ViolationA,
			&rd.ViolationB,
			&rd.JudgedAt,
			&rd.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &rd)
	}
	return res, rows.Err()
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	if err := row.Scan(
		&m.ID,
		&m.AgentA,
		&m.AgentB,
		&m.Status,
		&m.ScoreA,
		&m.ScoreB,
		&m.WinsA,
		&m.WinsB,
		&m.CurrentRound,
		&m.MaxRounds,
		&m.WinnerID,
		&m.EloChangeA,
		&m.EloChangeB,
		&m.EloUpdatedAt,
		&m.StartedAt,
		&m.FinishedAt,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
