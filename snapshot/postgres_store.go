package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/cardroom/betting"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresDB opens a connection pool against PostgreSQL.
func NewPostgresDB(host, port, name, user, password string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, name, user, password,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

// MigratePostgres creates the snapshot table if it does not exist.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS table_snapshots (
  table_id    TEXT PRIMARY KEY,
  hand_number INTEGER NOT NULL,
  state       JSONB NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)
`
	_, err := db.ExecContext(ctx, q)
	return err
}

func (s *postgresStore) Save(ctx context.Context, snap *betting.TableSnapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	const q = `
INSERT INTO table_snapshots (table_id, hand_number, state, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (table_id) DO UPDATE SET
  hand_number = EXCLUDED.hand_number,
  state = EXCLUDED.state,
  updated_at = now()
`
	_, err = s.db.ExecContext(ctx, q, snap.TableID, snap.HandNumber, state)
	return err
}

func (s *postgresStore) Load(ctx context.Context, tableID string) (*betting.TableSnapshot, bool, error) {
	const q = `SELECT state FROM table_snapshots WHERE table_id = $1`
	var state []byte
	err := s.db.QueryRowContext(ctx, q, tableID).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap betting.TableSnapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return nil, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, true, nil
}

func (s *postgresStore) Delete(ctx context.Context, tableID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM table_snapshots WHERE table_id = $1`, tableID)
	return err
}
