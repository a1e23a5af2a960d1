package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"TradingDashboard/internal/model"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists dashboard builds to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dashboard_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ohlc_source     TEXT,
			trace_source    TEXT,
			ohlc_points     INTEGER,
			trace_points    INTEGER,
			margin_fraction REAL,
			primary_start   REAL,
			primary_end     REAL,
			secondary_start REAL,
			secondary_end   REAL,
			error           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON dashboard_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS band_points (
			run_id    INTEGER NOT NULL REFERENCES dashboard_runs(id),
			position  REAL NOT NULL,
			high      REAL,
			low       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_band_run ON band_points(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run and its band points in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ps, pe := nullableInterval(rec.Primary)
	ss, se := nullableInterval(rec.Secondary)
	res, err := tx.Exec(`INSERT INTO dashboard_runs
		(timestamp, ohlc_source, trace_source, ohlc_points, trace_points, margin_fraction,
		 primary_start, primary_end, secondary_start, secondary_end, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ResolvedAt.Unix(), rec.OHLCSource, rec.TraceSource,
		rec.OHLCPoints, rec.TracePoints, rec.MarginFraction,
		ps, pe, ss, se, rec.Err,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO band_points (run_id, position, high, low) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare band insert: %w", err)
	}
	defer stmt.Close()
	for _, b := range rec.Band {
		if _, err := stmt.Exec(runID, b.Timestamp, b.High, b.Low); err != nil {
			return fmt.Errorf("insert band point: %w", err)
		}
	}
	return tx.Commit()
}

// LastRun returns the newest recorded run without its band points.
func (r *SQLiteRecorder) LastRun() (*RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		rec    RunRecord
		ts     int64
		ps, pe sql.NullFloat64
		ss, se sql.NullFloat64
	)
	err := r.db.QueryRow(`SELECT timestamp, ohlc_source, trace_source, ohlc_points, trace_points,
		margin_fraction, primary_start, primary_end, secondary_start, secondary_end, error
		FROM dashboard_runs ORDER BY id DESC LIMIT 1`).Scan(
		&ts, &rec.OHLCSource, &rec.TraceSource, &rec.OHLCPoints, &rec.TracePoints,
		&rec.MarginFraction, &ps, &pe, &ss, &se, &rec.Err,
	)
	if err != nil {
		return nil, err
	}
	rec.ResolvedAt = time.Unix(ts, 0)
	rec.Primary = intervalFromNull(ps, pe)
	rec.Secondary = intervalFromNull(ss, se)
	return &rec, nil
}

// BandCount returns how many band points were stored for the newest run.
func (r *SQLiteRecorder) BandCount() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM band_points
		WHERE run_id = (SELECT MAX(id) FROM dashboard_runs)`).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}

func nullableInterval(iv *model.AxisInterval) (start, end sql.NullFloat64) {
	if iv == nil {
		return
	}
	return sql.NullFloat64{Float64: iv.Start, Valid: true}, sql.NullFloat64{Float64: iv.End, Valid: true}
}

func intervalFromNull(start, end sql.NullFloat64) *model.AxisInterval {
	if !start.Valid || !end.Valid {
		return nil
	}
	return &model.AxisInterval{Start: start.Float64, End: end.Float64}
}
