package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrRunNotFound = errors.New("run not found")

// Run summarizes one optimization request together with its rendered solution
type Run struct {
	Id        string
	CreatedAt time.Time
	Strategy  string
	Capacity  int
	Students  int
	Slots     int
	Score     int
	Drops     int
	Solution  json.RawMessage
}

// Store keeps the best solution of past runs in SQLite, so callers can compare requests over time
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the SQLite database at dbPath
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		students INTEGER NOT NULL,
		slots INTEGER NOT NULL,
		score INTEGER NOT NULL,
		drops INTEGER NOT NULL,
		solution JSON NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC, created_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// Record stores run, filling its Id and CreatedAt when empty, and returns the stored value
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.Id == "" {
		run.Id = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Solution == nil {
		run.Solution = json.RawMessage("{}")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, created_at, strategy, capacity, students, slots, score, drops, solution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Id, run.CreatedAt.UnixNano(), run.Strategy, run.Capacity, run.Students, run.Slots, run.Score, run.Drops, string(run.Solution),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// Get returns the run identified by id or ErrRunNotFound
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, created_at, strategy, capacity, students, slots, score, drops, solution
		FROM runs WHERE run_id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %v", ErrRunNotFound, id)
	} else if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}
	return run, nil
}

// Best returns up to limit runs from the highest score down, older runs first on equal scores
func (s *Store) Best(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, strategy, capacity, students, slots, score, drops, solution
		FROM runs ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var createdAt int64
	var solution string
	if err := row.Scan(&run.Id, &createdAt, &run.Strategy, &run.Capacity, &run.Students, &run.Slots, &run.Score, &run.Drops, &solution); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()
	run.Solution = json.RawMessage(solution)
	return run, nil
}
