package ingest_test

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/jobtrail/jobtrail/internal/adapters/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestExtractTextPlainMessage(t *testing.T) {
	msg := parseMessage(t, "From: careers@acme.com\r\n"+
		"Subject: Application received\r\n"+
		"\r\n"+
		"Thank you for applying to Acme.\r\n")

	text, err := ingest.ExtractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for applying to Acme.\r\n", text)
}

func TestExtractTextPrefersPlainOverHTML(t *testing.T) {
	msg := parseMessage(t, "From: careers@acme.com\r\n"+
		"Subject: Application received\r\n"+
		"Content-Type: multipart/alternative; boundary=\"BOUND\"\r\n"+
		"\r\n"+
		"--BOUND\r\n"+
		"Content-Type: text/plain\r\n"+
		"\r\n"+
		"plain body\r\n"+
		"--BOUND\r\n"+
		"Content-Type: text/html\r\n"+
		"\r\n"+
		"<p>html body</p>\r\n"+
		"--BOUND--\r\n")

	text, err := ingest.ExtractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "plain body")
	assert.NotContains(t, text, "html body")
}

func TestExtractTextFallsBackToHTML(t *testing.T) {
	msg := parseMessage(t, "From: careers@acme.com\r\n"+
		"Subject: Application received\r\n"+
		"Content-Type: multipart/alternative; boundary=\"BOUND\"\r\n"+
		"\r\n"+
		"--BOUND\r\n"+
		"Content-Type: text/html\r\n"+
		"\r\n"+
		"<p>html only</p>\r\n"+
		"--BOUND--\r\n")

	text, err := ingest.ExtractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "html only")
}

func TestExtractTextNestedMultipart(t *testing.T) {
	msg := parseMessage(t, "From: careers@acme.com\r\n"+
		"Subject: Application received\r\n"+
		"Content-Type: multipart/mixed; boundary=\"OUTER\"\r\n"+
		"\r\n"+
		"--OUTER\r\n"+
		"Content-Type: multipart/alternative; boundary=\"INNER\"\r\n"+
		"\r\n"+
		"--INNER\r\n"+
		"Content-Type: text/plain\r\n"+
		"\r\n"+
		"nested plain body\r\n"+
		"--INNER--\r\n"+
		"--OUTER\r\n"+
		"Content-Type: application/pdf\r\n"+
		"\r\n"+
		"%PDF-1.4 not text\r\n"+
		"--OUTER--\r\n")

	text, err := ingest.ExtractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "nested plain body")
	assert.NotContains(t, text, "%PDF")
}
