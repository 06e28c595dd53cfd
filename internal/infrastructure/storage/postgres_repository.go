package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsReporter/internal/domain"
	"NewsReporter/internal/ports"
)

// PostgresRepository archives published report runs into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// SaveRun upserts the run snapshot keyed by run date, so a same-day rerun
// replaces the archived report the same way it replaces the file.
func (r *PostgresRepository) SaveRun(ctx context.Context, run domain.ReportRun) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("report_runs").
		Columns("run_date", "report", "article_count", "path").
		Values(run.Date.Format("2006-01-02"), run.Report, run.ArticleCount, run.Path).
		Suffix(`ON CONFLICT (run_date) DO UPDATE
                SET report = EXCLUDED.report,
                    article_count = EXCLUDED.article_count,
                    path = EXCLUDED.path,
                    created_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}

	return nil
}

// RecentRuns returns the newest archived runs, most recent first.
func (r *PostgresRepository) RecentRuns(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	if r.db == nil || limit <= 0 {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("run_date", "report", "article_count", "path", "created_at").
		From("report_runs").
		OrderBy("run_date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var runs []domain.ReportRun
	for rows.Next() {
		var run domain.ReportRun
		if err := rows.Scan(&run.Date, &run.Report, &run.ArticleCount, &run.Path, &run.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return runs, nil
}
