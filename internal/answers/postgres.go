package answers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// PostgresStore keeps one row per namespace and state.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and creates the table if missing.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &PostgresStore{Pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the answers table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS nexus_answers (
			namespace  TEXT NOT NULL,
			state_id   TEXT NOT NULL,
			answers    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, state_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, namespace string) (core.AnswerBook, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT state_id, answers FROM nexus_answers WHERE namespace = $1
	`, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	book := core.AnswerBook{}
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var set core.AnswerSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		book[id] = set
	}
	return book, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, namespace, id string) (core.AnswerSet, error) {
	var raw []byte
	err := s.Pool.QueryRow(ctx, `
		SELECT answers FROM nexus_answers WHERE namespace = $1 AND state_id = $2
	`, namespace, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.AnswerSet{}, ErrNotFound
	}
	if err != nil {
		return core.AnswerSet{}, err
	}
	var set core.AnswerSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return core.AnswerSet{}, fmt.Errorf("decode %s: %w", id, err)
	}
	return set, nil
}

func (s *PostgresStore) Save(ctx context.Context, namespace, id string, set core.AnswerSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO nexus_answers (namespace, state_id, answers, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, state_id) DO UPDATE
		SET answers = EXCLUDED.answers, updated_at = EXCLUDED.updated_at
	`, namespace, id, data)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, namespace, id string) error {
	_, err := s.Pool.Exec(ctx, `
		DELETE FROM nexus_answers WHERE namespace = $1 AND state_id = $2
	`, namespace, id)
	return err
}

// Close releases pool resources.
func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}
