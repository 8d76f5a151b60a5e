package ingest

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// ExtractTextFromMessage extracts the text content from an email message.
// Multipart messages are walked recursively; text/plain parts win over
// text/html, which the normalizer can handle anyway.
func ExtractTextFromMessage(msg *mail.Message) (string, error) {
	return extractText(msg.Header.Get("Content-Type"), msg.Body)
}

func extractText(contentType string, body io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			return "", err
		}
		return string(bodyBytes), nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			return "", err
		}
		return string(bodyBytes), nil
	}

	mr := multipart.NewReader(body, boundary)

	var plain, html bytes.Buffer
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		partType := strings.ToLower(part.Header.Get("Content-Type"))
		switch {
		case strings.Contains(partType, "text/plain"):
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			plain.Write(partBytes)
			plain.WriteString("\n")
		case strings.Contains(partType, "text/html"):
			partBytes, err := io.ReadAll(part)
			if err != nil {
				continue
			}
			html.Write(partBytes)
			html.WriteString("\n")
		case strings.Contains(partType, "multipart/"):
			nested, err := extractText(part.Header.Get("Content-Type"), part)
			if err != nil {
				continue
			}
			plain.WriteString(nested)
			plain.WriteString("\n")
		}
		// Skip attachments and other parts.
	}

	if plain.Len() > 0 {
		return plain.String(), nil
	}
	if html.Len() > 0 {
		return html.String(), nil
	}

	return "", nil
}
