package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Record describes a single policy execution.
type Record struct {
	// ID is the unique run identifier.
	ID string

	// Policy is the name of the executed policy.
	Policy string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Examined is the number of artifacts the rule chain saw.
	Examined int64

	// Removed is the number of artifacts deleted (or that would have been
	// deleted in dry-run mode).
	Removed int64

	// BytesReclaimed is the total size of removed artifacts.
	BytesReclaimed int64

	// Destroy reports whether deletions were actually performed.
	Destroy bool
}

// Store persists cleanup run records using SQLite.
//
// Store uses a write-ahead log (WAL) and automatic checkpointing, making it
// suitable for single-instance daemons that need history across restarts.
type Store struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	// preparedStatements contains pre-compiled SQL statements for performance
	insertStmt   *sql.Stmt
	recentStmt   *sql.Stmt
	byPolicyStmt *sql.Stmt
	pruneStmt    *sql.Stmt
}

// StoreConfig configures the history store.
type StoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewStore creates a history store with default settings.
func NewStore(dbPath string) (*Store, error) {
	return NewStoreWithConfig(StoreConfig{
		DBPath:             dbPath,
		CheckpointInterval: 5 * time.Minute,
		BusyTimeout:        5 * time.Second,
	})
}

// NewStoreWithConfig creates a history store with custom configuration.
func NewStoreWithConfig(cfg StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{
		db:                 db,
		dbPath:             cfg.DBPath,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go store.checkpointLoop()

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cleanup_runs (
		id TEXT NOT NULL PRIMARY KEY,
		policy TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		examined INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		bytes_reclaimed INTEGER NOT NULL,
		destroy INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_policy ON cleanup_runs(policy);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON cleanup_runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *Store) prepareStatements() error {
	var err error

	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO cleanup_runs (id, policy, started_at, finished_at, examined, removed, bytes_reclaimed, destroy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT id, policy, started_at, finished_at, examined, removed, bytes_reclaimed, destroy
		FROM cleanup_runs
		ORDER BY started_at DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare recent statement: %w", err)
	}

	s.byPolicyStmt, err = s.db.Prepare(`
		SELECT id, policy, started_at, finished_at, examined, removed, bytes_reclaimed, destroy
		FROM cleanup_runs
		WHERE policy = ?
		ORDER BY started_at DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare by-policy statement: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`
		DELETE FROM cleanup_runs
		WHERE started_at < ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare prune statement: %w", err)
	}

	return nil
}

// Append persists a run record.
func (s *Store) Append(ctx context.Context, record *Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}
	if record.Policy == "" {
		return fmt.Errorf("record policy cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.insertStmt.ExecContext(ctx,
		record.ID,
		record.Policy,
		record.StartedAt.Unix(),
		record.FinishedAt.Unix(),
		record.Examined,
		record.Removed,
		record.BytesReclaimed,
		boolToInt(record.Destroy),
	)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	return nil
}

// Recent returns the most recent run records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByPolicy returns the most recent run records for one policy, newest
// first.
func (s *Store) ByPolicy(ctx context.Context, policy string, limit int) ([]*Record, error) {
	if policy == "" {
		return nil, fmt.Errorf("policy cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.byPolicyStmt.QueryContext(ctx, policy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for policy %q: %w", policy, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Prune removes run records started before the given time and returns how
// many were deleted.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.pruneStmt.ExecContext(ctx, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(deleted), nil
}

// Close releases any resources held by the store.
// Close is idempotent and safe to call multiple times.
func (s *Store) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		if s.insertStmt != nil {
			s.insertStmt.Close()
		}
		if s.recentStmt != nil {
			s.recentStmt.Close()
		}
		if s.byPolicyStmt != nil {
			s.byPolicyStmt.Close()
		}
		if s.pruneStmt != nil {
			s.pruneStmt.Close()
		}

		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *Store) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var (
			record     Record
			startedAt  int64
			finishedAt int64
			destroy    int
		)

		if err := rows.Scan(
			&record.ID,
			&record.Policy,
			&startedAt,
			&finishedAt,
			&record.Examined,
			&record.Removed,
			&record.BytesReclaimed,
			&destroy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record.StartedAt = time.Unix(startedAt, 0)
		record.FinishedAt = time.Unix(finishedAt, 0)
		record.Destroy = destroy != 0
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
