package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the JobStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL job store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			id VARCHAR(36) PRIMARY KEY,
			owner VARCHAR(255) NOT NULL,
			company_name VARCHAR(255) NOT NULL,
			job_title VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL,
			email_subject TEXT,
			email_from VARCHAR(255),
			message_id VARCHAR(255),
			confidence DOUBLE,
			analysis_method VARCHAR(32),
			last_analyzed VARCHAR(35),
			created_at VARCHAR(35),
			updated_at VARCHAR(35),
			INDEX idx_jobs_owner (owner),
			INDEX idx_jobs_message_id (owner, message_id)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// ListJobs returns all job records for an owner, most recently created first
func (s *MySQLStore) ListJobs(ctx context.Context, owner string) ([]*core.JobRecord, error) {
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
func (s *MySQLStore) GetJob(ctx context.Context, id string) (*core.JobRecord, error) {
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
func (s *MySQLStore) CreateJob(ctx context.Context, job *core.JobRecord) error {
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
func (s *MySQLStore) UpdateAnalysis(ctx context.Context, id string, upd core.ProposedUpdate) error {
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
		// MySQL reports zero affected rows for no-op updates too, so
		// distinguish a missing record from an unchanged one.
		if _, err := s.GetJob(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// FindByMessageID looks up the record previously imported from a message
func (s *MySQLStore) FindByMessageID(ctx context.Context, owner, messageID string) (*core.JobRecord, error) {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
