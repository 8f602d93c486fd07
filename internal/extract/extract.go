// Package extract turns uploaded PDF resumes into plain text and seed
// HTML for the editor.
package extract

import (
	"bytes"
	"context"
	"errors"
	"html"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument indicates the upload contained no extractable text.
var ErrEmptyDocument = errors.New("no extractable text")

// Text extracts plain text from PDF data using github.com/ledongthuc/pdf.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", ErrEmptyDocument
	}
	return buf.String(), nil
}

// HTMLFromText converts extracted plain text into seed HTML: one escaped
// <p> per non-empty line. Returns "" when no content remains.
func HTMLFromText(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(trimmed))
		sb.WriteString("</p>")
	}
	return sb.String()
}
