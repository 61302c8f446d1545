package record

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    run_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    problem INTEGER NOT NULL,
    learner TEXT NOT NULL,
    aut TEXT NOT NULL,
    bbo TEXT NOT NULL,
    property INTEGER NOT NULL,
    size INTEGER NOT NULL,
    realsymbols INTEGER NOT NULL,
    learnsymbols INTEGER NOT NULL,
    eqsymbols INTEGER NOT NULL,
    emsymbols INTEGER NOT NULL,
    emosymbols INTEGER NOT NULL,
    insymbols INTEGER NOT NULL,
    realqueries INTEGER NOT NULL,
    learnqueries INTEGER NOT NULL,
    eqqueries INTEGER NOT NULL,
    emqueries INTEGER NOT NULL,
    emoqueries INTEGER NOT NULL,
    inqueries INTEGER NOT NULL,
    length INTEGER NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_records_problem ON records(problem, property);
`

// Persists records of one run in a SQLite database
type SQLiteSink struct {
	db    *sql.DB
	runID string
	seq   int
}

// Open (or create) the database at path. Records are stored under runID.
func NewSQLiteSink(path string, runID string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("record: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: failed to initialize schema: %w", err)
	}
	return &SQLiteSink{db: db, runID: runID}, nil
}

func (s *SQLiteSink) Emit(r Record) error {
	s.seq++
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO records (
			run_id, seq, problem, learner, aut, bbo, property, size,
			realsymbols, learnsymbols, eqsymbols, emsymbols, emosymbols, insymbols,
			realqueries, learnqueries, eqqueries, emqueries, emoqueries, inqueries,
			length
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, s.seq, r.Problem, r.Learner, r.Mode, r.Strategy, r.Property, r.Size,
		r.Symbols.Real, r.Symbols.Learning, r.Symbols.Equivalence, r.Symbols.Emptiness, r.Symbols.Omega, r.Symbols.Inclusion,
		r.Queries.Real, r.Queries.Learning, r.Queries.Equivalence, r.Queries.Emptiness, r.Queries.Omega, r.Queries.Inclusion,
		r.Length,
	)
	if err != nil {
		return fmt.Errorf("record: failed to insert record: %w", err)
	}
	return nil
}

// The records stored for a run, in the order they were emitted
func (s *SQLiteSink) Records(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT problem, learner, aut, bbo, property, size,
			realsymbols, learnsymbols, eqsymbols, emsymbols, emosymbols, insymbols,
			realqueries, learnqueries, eqqueries, emqueries, emoqueries, inqueries,
			length
		FROM records WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("record: failed to query records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		err := rows.Scan(&r.Problem, &r.Learner, &r.Mode, &r.Strategy, &r.Property, &r.Size,
			&r.Symbols.Real, &r.Symbols.Learning, &r.Symbols.Equivalence, &r.Symbols.Emptiness, &r.Symbols.Omega, &r.Symbols.Inclusion,
			&r.Queries.Real, &r.Queries.Learning, &r.Queries.Equivalence, &r.Queries.Emptiness, &r.Queries.Omega, &r.Queries.Inclusion,
			&r.Length,
		)
		if err != nil {
			return nil, fmt.Errorf("record: failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
