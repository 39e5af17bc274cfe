package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"trp/internal/config"
	"trp/internal/domain"
)

// MySQLStorage stores history rows in a MySQL table
type MySQLStorage struct {
	config *config.Config
}

// NewMySQLStorage creates a new MySQLStorage using the configured DSN and table
func NewMySQLStorage(cfg *config.Config) *MySQLStorage {
	return &MySQLStorage{config: cfg}
}

// Save inserts record, creating the table on first use
func (ms *MySQLStorage) Save(ctx context.Context, record domain.RunRecord) error {
	db, err := ms.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	query := fmt.Sprintf(
		"INSERT INTO `%s` (kind, created_at, title, total, passed, failed, skipped, flaky, duration_ms, "+
			"lines_pct, statements_pct, functions_pct, branches_pct, workflow_run_url) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		ms.config.HistoryTable,
	)
	_, err = db.ExecContext(ctx, query,
		string(record.Kind), record.Timestamp.UTC(), record.Title,
		record.Total, record.Passed, record.Failed, record.Skipped, record.Flaky, record.DurationMS,
		record.LinesPct, record.StatementsPct, record.FunctionsPct, record.BranchesPct,
		record.WorkflowRunURL,
	)
	if err != nil {
		return fmt.Errorf("insert history row: %w", err)
	}
	return nil
}

// List returns stored rows, newest first
func (ms *MySQLStorage) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	db, err := ms.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(
		"SELECT kind, created_at, title, total, passed, failed, skipped, flaky, duration_ms, "+
			"lines_pct, statements_pct, functions_pct, branches_pct, workflow_run_url "+
			"FROM `%s` ORDER BY created_at DESC, id DESC",
		ms.config.HistoryTable,
	)
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []domain.RunRecord{}
	for rows.Next() {
		var r domain.RunRecord
		var kind string
		if err := rows.Scan(&kind, &r.Timestamp, &r.Title, &r.Total, &r.Passed, &r.Failed, &r.Skipped, &r.Flaky,
			&r.DurationMS, &r.LinesPct, &r.StatementsPct, &r.FunctionsPct, &r.BranchesPct, &r.WorkflowRunURL); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Kind = domain.RunKind(kind)
		records = append(records, r)
	}
	return records, rows.Err()
}

// open connects to the server and makes sure the history table exists
func (ms *MySQLStorage) open(ctx context.Context) (*sql.DB, error) {
	if !isValidTableName(ms.config.HistoryTable) {
		return nil, fmt.Errorf("invalid history table name: %s", ms.config.HistoryTable)
	}

	dsn, err := historyDSN(ms.config.HistoryDSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	if err := ms.createTable(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table %s: %w", ms.config.HistoryTable, err)
	}
	return db, nil
}

func (ms *MySQLStorage) createTable(ctx context.Context, db *sql.DB) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, "+
		"kind VARCHAR(32) NOT NULL, "+
		"created_at DATETIME(3) NOT NULL, "+
		"title VARCHAR(255) NOT NULL, "+
		"total INT NOT NULL DEFAULT 0, "+
		"passed INT NOT NULL DEFAULT 0, "+
		"failed INT NOT NULL DEFAULT 0, "+
		"skipped INT NOT NULL DEFAULT 0, "+
		"flaky INT NOT NULL DEFAULT 0, "+
		"duration_ms DOUBLE NOT NULL DEFAULT 0, "+
		"lines_pct DOUBLE NOT NULL DEFAULT 0, "+
		"statements_pct DOUBLE NOT NULL DEFAULT 0, "+
		"functions_pct DOUBLE NOT NULL DEFAULT 0, "+
		"branches_pct DOUBLE NOT NULL DEFAULT 0, "+
		"workflow_run_url VARCHAR(1024) NOT NULL DEFAULT '', "+
		"INDEX idx_created_at (created_at))", ms.config.HistoryTable)
	_, err := db.ExecContext(ctx, query)
	return err
}

// historyDSN forces parseTime so DATETIME columns scan into time.Time
func historyDSN(dsn string) (string, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid history DSN: %w", err)
	}
	parsed.ParseTime = true
	return parsed.FormatDSN(), nil
}

// isValidTableName only allows identifiers made of letters, digits and underscores
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0
}
