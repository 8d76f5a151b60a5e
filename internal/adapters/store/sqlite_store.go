package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the JobStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite job store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			company_name TEXT NOT NULL,
			job_title TEXT NOT NULL,
			status TEXT NOT NULL,
			email_subject TEXT,
			email_from TEXT,
			message_id TEXT,
			confidence REAL,
			analysis_method TEXT,
			last_analyzed TIMESTAMP,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create owner index: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_jobs_message_id ON jobs(owner, message_id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create message id index: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// ListJobs returns all job records for an owner, most recently created first
func (s *SQLiteStore) ListJobs(ctx context.Context, owner string) ([]*core.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, company_name, job_title, status, email_subject, email_from,
		       message_id, confidence, analysis_method, last_analyzed, created_at, updated_at
		FROM jobs
		WHERE owner = ?
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*core.JobRecord
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}

// GetJob retrieves a single record by id
func (s *SQLiteStore) GetJob(ctx context.Context, id string) (*core.JobRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, company_name, job_title, status, email_subject, email_from,
		       message_id, confidence, analysis_method, last_analyzed, created_at, updated_at
		FROM jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

// CreateJob stores a new record
func (s *SQLiteStore) CreateJob(ctx context.Context, job *core.JobRecord) error {
	now := time.Now()
	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, owner, company_name, job_title, status, email_subject, email_from,
		                  message_id, confidence, analysis_method, last_analyzed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		job.ID, job.Owner, job.CompanyName, job.JobTitle, string(job.Status),
		job.EmailSubject, job.EmailFrom, job.MessageID, job.Confidence,
		string(job.AnalysisMethod),
		job.LastAnalyzed.Format(time.RFC3339),
		createdAt.Format(time.RFC3339),
		now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert job record: %w", err)
	}

	return nil
}

// UpdateAnalysis applies a proposed re-classification to a record. Company and
// title columns are only touched when the update carries a value.
func (s *SQLiteStore) UpdateAnalysis(ctx context.Context, id string, upd core.ProposedUpdate) error {
	sets := []string{"status = ?", "confidence = ?", "analysis_method = ?", "last_analyzed = ?", "updated_at = ?"}
	args := []interface{}{
		string(upd.Status),
		upd.Confidence,
		string(upd.AnalysisMethod),
		upd.LastAnalyzed.Format(time.RFC3339),
		time.Now().Format(time.RFC3339),
	}

	if name, ok := upd.CompanyName.Get(); ok {
		sets = append(sets, "company_name = ?")
		args = append(args, name)
	}
	if title, ok := upd.JobTitle.Get(); ok {
		sets = append(sets, "job_title = ?")
		args = append(args, title)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrJobNotFound
	}

	return nil
}

// FindByMessageID looks up the record previously imported from a message
func (s *SQLiteStore) FindByMessageID(ctx context.Context, owner, messageID string) (*core.JobRecord, error) {
	if messageID == "" {
		return nil, core.ErrJobNotFound
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, company_name, job_title, status, email_subject, email_from,
		       message_id, confidence, analysis_method, last_analyzed, created_at, updated_at
		FROM jobs
		WHERE owner = ? AND message_id = ?
	`, owner, messageID)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	return job, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*core.JobRecord, error) {
	var job core.JobRecord
	var status, method string
	var lastAnalyzed, createdAt, updatedAt string

	err := row.Scan(&job.ID, &job.Owner, &job.CompanyName, &job.JobTitle, &status,
		&job.EmailSubject, &job.EmailFrom, &job.MessageID, &job.Confidence,
		&method, &lastAnalyzed, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job record: %w", err)
	}

	job.Status = core.Status(status)
	job.AnalysisMethod = core.Method(method)

	if job.LastAnalyzed, err = parseTimestamp(lastAnalyzed); err != nil {
		return nil, err
	}
	if job.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}

	return &job, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
