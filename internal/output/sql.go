package output

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
)

// Dialect names a database/sql driver with its placeholder style.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

const createTable = `CREATE TABLE IF NOT EXISTS game_endings (
	game_id         TEXT PRIMARY KEY,
	run_id          TEXT NOT NULL,
	end_reason_code INTEGER NOT NULL,
	end_reason      TEXT NOT NULL,
	is_draw         BOOLEAN NOT NULL,
	winner          TEXT NOT NULL,
	plies           INTEGER NOT NULL,
	detail          TEXT NOT NULL,
	classified_at   TIMESTAMP NOT NULL
)`

var upsertColumns = []string{
	"game_id", "run_id", "end_reason_code", "end_reason", "is_draw",
	"winner", "plies", "detail", "classified_at",
}

// upsertQuery builds the insert-or-replace statement. Both sqlite and
// postgres accept ON CONFLICT ... DO UPDATE with EXCLUDED.
func upsertQuery(d Dialect) string {
	marks := make([]string, len(upsertColumns))
	sets := make([]string, 0, len(upsertColumns)-1)
	for i, col := range upsertColumns {
		if d == Postgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
		if i > 0 {
			sets = append(sets, fmt.Sprintf("%s=EXCLUDED.%s", col, col))
		}
	}
	return fmt.Sprintf("INSERT INTO game_endings (%s) VALUES (%s) ON CONFLICT (game_id) DO UPDATE SET %s",
		strings.Join(upsertColumns, ", "), strings.Join(marks, ","), strings.Join(sets, ", "))
}

// SQLWriter upserts results into the game_endings table, batchSize rows
// per transaction. A game classified again replaces its earlier row.
type SQLWriter struct {
	db        *sql.DB
	dialect   Dialect
	runID     string
	batchSize int
	query     string
	pending   []classify.Result
	now       func() time.Time
}

// OpenSQL opens the database and creates the table if needed.
func OpenSQL(ctx context.Context, d Dialect, dsn, runID string, batchSize int) (*SQLWriter, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s: empty data source name", d)
	}
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d == SQLite {
		// sqlite serializes writers
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(4)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return NewSQLWriter(db, d, runID, batchSize), nil
}

// NewSQLWriter wraps an open database whose schema already exists.
func NewSQLWriter(db *sql.DB, d Dialect, runID string, batchSize int) *SQLWriter {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SQLWriter{
		db:        db,
		dialect:   d,
		runID:     runID,
		batchSize: batchSize,
		query:     upsertQuery(d),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WriteResult buffers res and commits a batch once it is full.
func (sw *SQLWriter) WriteResult(res classify.Result) error {
	sw.pending = append(sw.pending, res)
	if len(sw.pending) >= sw.batchSize {
		return sw.Flush()
	}
	return nil
}

// Flush commits the buffered results in one transaction.
func (sw *SQLWriter) Flush() error {
	if len(sw.pending) == 0 {
		return nil
	}
	ctx := context.Background()
	tx, err := sw.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, sw.query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	at := sw.now()
	for _, res := range sw.pending {
		if _, err := stmt.ExecContext(ctx,
			res.ID, sw.runID, int(res.EndCode), res.EndReason, res.IsDraw,
			res.Winner, res.Plies, res.Detail, at,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", res.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	sw.pending = sw.pending[:0]
	return nil
}

// Close commits pending results and closes the database.
func (sw *SQLWriter) Close() error {
	err := sw.Flush()
	if cerr := sw.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// CountByCode returns the number of stored results per end code.
func (sw *SQLWriter) CountByCode(ctx context.Context) (map[classify.EndCode]int, error) {
	rows, err := sw.db.QueryContext(ctx, "SELECT end_reason_code, COUNT(*) FROM game_endings GROUP BY end_reason_code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[classify.EndCode]int)
	for rows.Next() {
		var code, n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		counts[classify.EndCode(code)] = n
	}
	return counts, rows.Err()
}
