package ingest

import (
	"context"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

// MaildirSource reads .eml files from a directory and serves them as an
// EmailSource. It exists for bulk imports of exported mailboxes; live mail
// arrives over SMTP instead.
type MaildirSource struct {
	dir    string
	logger *zap.Logger
}

// NewMaildirSource creates a new directory-backed email source
func NewMaildirSource(dir string, logger *zap.Logger) *MaildirSource {
	return &MaildirSource{dir: dir, logger: logger}
}

// FetchEmails reads every message file in the directory newer than since,
// newest first.
func (m *MaildirSource) FetchEmails(ctx context.Context, owner string, since time.Time) ([]*core.EmailRecord, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}

	var emails []*core.EmailRecord
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".eml") {
			continue
		}

		path := filepath.Join(m.dir, entry.Name())
		email, err := m.readMessage(path)
		if err != nil {
			m.logger.Warn("Skipping unreadable message file",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		if !since.IsZero() && email.Date.Before(since) {
			continue
		}
		emails = append(emails, email)
	}

	sort.Slice(emails, func(i, j int) bool {
		return emails[i].Date.After(emails[j].Date)
	})

	m.logger.Debug("Fetched emails from maildir",
		zap.String("dir", m.dir),
		zap.Int("count", len(emails)))

	return emails, nil
}

func (m *MaildirSource) readMessage(path string) (*core.EmailRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return nil, err
	}

	content, err := ExtractTextFromMessage(msg)
	if err != nil {
		return nil, err
	}

	date := time.Time{}
	if parsed, err := msg.Header.Date(); err == nil {
		date = parsed
	}

	return &core.EmailRecord{
		Subject:   msg.Header.Get("Subject"),
		From:      msg.Header.Get("From"),
		Content:   content,
		Date:      date,
		MessageID: strings.Trim(msg.Header.Get("Message-Id"), " "),
	}, nil
}
