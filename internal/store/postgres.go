// Package store reads the persisted repository statistics history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/naka-gawa/ghstats/internal/domain"
)

// DefaultTable is the relation holding one row per repository and scrape.
const DefaultTable = "github_stats"

var snapshotColumns = []string{
	"name", "lang", "scrape_ts",
	"watchers", "watchers_diff",
	"stargazers", "stargazers_diff",
	"forks", "forks_diff",
	"open_issues", "open_issues_diff",
	"dl_count_acc", "dl_count_acc_diff",
}

// PostgresStore reads snapshot rows from PostgreSQL.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn, table string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPostgresStore(db, table), nil
}

// NewPostgresStore wraps an open database. An empty table selects DefaultTable.
func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{db: db, table: table}
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ListNames returns the distinct repository names with at least one snapshot.
func (s *PostgresStore) ListNames(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT name FROM %s ORDER BY name`, pq.QuoteIdentifier(s.table))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query repository names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan repository name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repository names: %w", err)
	}
	return names, nil
}

// ListSnapshots returns the snapshots of one repository ordered by scrape time.
func (s *PostgresStore) ListSnapshots(ctx context.Context, name string) ([]domain.Snapshot, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE name = $1 ORDER BY scrape_ts`,
		strings.Join(snapshotColumns, ", "), pq.QuoteIdentifier(s.table))
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return snapshots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSnapshot maps one row in snapshotColumns order.
// Pull request counts are not recorded and stay zero.
func scanSnapshot(row rowScanner) (domain.Snapshot, error) {
	var s domain.Snapshot
	err := row.Scan(
		&s.Name, &s.Lang, &s.ScrapeTS,
		&s.Watchers, &s.WatchersDiff,
		&s.Stargazers, &s.StargazersDiff,
		&s.Forks, &s.ForksDiff,
		&s.OpenIssues, &s.OpenIssuesDiff,
		&s.Downloads, &s.DownloadsDiff,
	)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to scan snapshot row: %w", err)
	}
	return s, nil
}
