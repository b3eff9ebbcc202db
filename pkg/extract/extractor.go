// Package extract turns uploaded files into plain text.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"contract-assistant-be/pkg/assistant"

	"github.com/ledongthuc/pdf"
)

// SupportedExtensions lists accepted upload types.
var SupportedExtensions = []string{".pdf", ".txt"}

var errNoText = fmt.Errorf("no extractable text found")

// Text extracts the text of an uploaded file, picking the reader by file extension.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt":
		text, err = plainText(data)
	case ".pdf":
		text, err = pdfText(data)
	default:
		return "", assistant.Fail(assistant.KindUnsupportedFile,
			fmt.Sprintf("Unsupported file type %q. Supported types: %s", ext, strings.Join(SupportedExtensions, ", ")), nil)
	}
	if err != nil {
		return "", assistant.Fail(assistant.KindUnsupportedFile, fmt.Sprintf("Could not read %s: %v", filepath.Base(filename), err), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", assistant.Fail(assistant.KindUnsupportedFile, fmt.Sprintf("Could not read %s: %v", filepath.Base(filename), errNoText), errNoText)
	}
	return text, nil
}

func plainText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

func pdfText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(out), nil
}
