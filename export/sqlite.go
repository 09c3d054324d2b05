package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/ta/series"
)

// SQLiteWriter stores runs in long format: one row per (time, column).
// Missing values are stored as NULL.
type SQLiteWriter struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteWriter{db: db}, nil
}

func (s *SQLiteWriter) Write(ctx context.Context, run Run, f *series.Frame) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	names := f.Names()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, source, created_at, row_count, columns)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Created.UTC().Format(time.RFC3339Nano), f.Len(), strings.Join(names, ","),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO indicator_values (run_id, time, name, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, name := range names {
		col, _ := f.Column(name)
		for i, ts := range f.Index() {
			var v sql.NullFloat64
			if !series.IsMissing(col[i]) {
				v = sql.NullFloat64{Float64: col[i], Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, run.ID, ts.UnixNano(), name, v); err != nil {
				return fmt.Errorf("insert %s: %w", name, err)
			}
		}
	}
	return tx.Commit()
}

// LoadRun rebuilds the frame stored for runID.
func (s *SQLiteWriter) LoadRun(ctx context.Context, runID string) (Run, *series.Frame, error) {
	var (
		run     = Run{ID: runID}
		created string
		columns string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT source, created_at, columns FROM runs WHERE run_id = ?`, runID,
	).Scan(&run.Source, &created, &columns)
	if err != nil {
		return run, nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	if run.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return run, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT time, name, value FROM indicator_values
		WHERE run_id = ? ORDER BY time`, runID)
	if err != nil {
		return run, nil, err
	}
	defer rows.Close()

	var index []time.Time
	pos := make(map[int64]int)
	values := make(map[string]map[int]float64)
	for rows.Next() {
		var (
			ns   int64
			name string
			v    sql.NullFloat64
		)
		if err := rows.Scan(&ns, &name, &v); err != nil {
			return run, nil, err
		}
		i, ok := pos[ns]
		if !ok {
			i = len(index)
			pos[ns] = i
			index = append(index, time.Unix(0, ns).UTC())
		}
		if v.Valid {
			if values[name] == nil {
				values[name] = make(map[int]float64)
			}
			values[name][i] = v.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return run, nil, err
	}

	f := series.NewFrame(index)
	if columns == "" {
		return run, f, nil
	}
	for _, name := range strings.Split(columns, ",") {
		col := series.Filled(len(index))
		for i, v := range values[name] {
			col[i] = v
		}
		if err := f.Set(name, col); err != nil {
			return run, nil, err
		}
	}
	return run, f, nil
}

// DB exposes the underlying handle for ad hoc queries.
func (s *SQLiteWriter) DB() *sql.DB { return s.db }

func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}
