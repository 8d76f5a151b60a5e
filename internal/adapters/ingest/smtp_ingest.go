package ingest

import (
	"bytes"
	"context"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

// SMTPIngest accepts emails over SMTP and feeds them into the import
// pipeline. It is meant to sit behind a forwarding rule on the job seeker's
// mailbox, so arriving mail is already pre-selected by the user.
type SMTPIngest struct {
	importer        *core.Importer
	logger          *zap.Logger
	listenAddr      string
	domain          string
	maxMessageBytes int
	defaultOwner    string
	server          *smtp.Server
}

// NewSMTPIngest creates a new SMTP ingest transport
func NewSMTPIngest(
	importer *core.Importer,
	logger *zap.Logger,
	listenAddr string,
	domain string,
	maxMessageBytes int,
	defaultOwner string,
) *SMTPIngest {
	return &SMTPIngest{
		importer:        importer,
		logger:          logger,
		listenAddr:      listenAddr,
		domain:          domain,
		maxMessageBytes: maxMessageBytes,
		defaultOwner:    defaultOwner,
	}
}

// Start starts the SMTP ingest service
func (f *SMTPIngest) Start() error {
	f.server = smtp.NewServer(&smtpBackend{ingest: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = int64(f.maxMessageBytes)
	f.server.MaxRecipients = 10
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP ingest starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP ingest service
func (f *SMTPIngest) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ownerFor maps an envelope to the tracked mailbox owner. The first recipient
// wins; a configured default overrides everything.
func (f *SMTPIngest) ownerFor(recipients []string) string {
	if f.defaultOwner != "" {
		return f.defaultOwner
	}
	if len(recipients) > 0 {
		return recipients[0]
	}
	return "unknown"
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	ingest *SMTPIngest
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		ingest:     b.ingest,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	ingest     *SMTPIngest
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// Logout ends the session
func (s *smtpSession) Logout() error {
	return nil
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data handles the email data
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.ingest.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.ingest.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := ExtractTextFromMessage(msg)
	if err != nil {
		s.ingest.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	from := msg.Header.Get("From")
	if from == "" {
		from = s.sender
	}

	date := time.Now()
	if parsed, err := msg.Header.Date(); err == nil {
		date = parsed
	}

	email := &core.EmailRecord{
		Subject:   msg.Header.Get("Subject"),
		From:      from,
		Content:   textContent,
		Date:      date,
		MessageID: strings.Trim(msg.Header.Get("Message-Id"), " "),
	}

	owner := s.ingest.ownerFor(s.recipients)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	outcome, err := s.ingest.importer.ImportOne(ctx, owner, email)
	if err != nil {
		s.ingest.logger.Error("Failed to import email",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("subject", email.Subject))
		// Accept the message anyway so the sender is never bounced.
		return nil
	}

	s.ingest.logger.Info("Email ingested",
		zap.String("owner", owner),
		zap.String("subject", email.Subject),
		zap.Int("outcome", int(outcome)))

	return nil
}
