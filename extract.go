package mcqgenerator

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	rscpdf "rsc.io/pdf"
)

// ExtractText pulls best-effort plain text out of an uploaded
// document. PDFs are detected by their magic bytes and run through
// two extraction strategies in sequence; anything else is treated as
// UTF-8 text. Total failure yields an empty string, never an error,
// so a corrupt upload degrades to an empty document downstream.
func ExtractText(name string, data []byte) string {
	VerboseLog("extracting text from %s (%d bytes)", name, len(data))
	if isPDF(data) {
		return extractPDF(data)
	}
	return string(data)
}

func isPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// extractPDF tries the primary extractor first and the fallback only
// if the primary fails; a second failure gives up with empty text.
func extractPDF(data []byte) string {
	text, err := extractPDFPrimary(data)
	if err == nil {
		return text
	}
	VerboseLog("primary pdf extraction failed: %v", err)

	text, err = extractPDFFallback(data)
	if err != nil {
		VerboseLog("fallback pdf extraction failed: %v", err)
		return ""
	}
	return text
}

func extractPDFPrimary(data []byte) (text string, err error) {
	// The library panics on some malformed files; treat that as a
	// normal extraction failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panic: %v", r)
		}
	}()

	r, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

func extractPDFFallback(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panic: %v", r)
		}
	}()

	r, err := rscpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			sb.WriteString(t.S)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
