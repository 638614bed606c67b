// Package extract turns uploaded documents into plain text for analysis.
// Plain text, PDF and docx files are supported; anything else is rejected
// before analysis starts.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Content is the extracted text plus basic counts
type Content struct {
	Filename  string
	Text      string
	WordCount int
	CharCount int
	PageCount int
}

// SupportedExtensions lists the file types the analyzer accepts
func SupportedExtensions() []string {
	return []string{".txt", ".pdf", ".docx"}
}

// Supported reports whether the filename's extension can be extracted
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// FromFile extracts text from the file at path, dispatching on extension
func FromFile(path string) (*Content, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		return fromTxt(path)
	case ".pdf":
		return fromPDF(path)
	case ".docx":
		return fromDocx(path)
	default:
		return nil, &model.ValidationError{Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
}

// FromBytes extracts text from in-memory file data. Used by the upload
// handler, which has the bytes but no path on disk.
func FromBytes(data []byte, filename string) (*Content, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt":
		return finish(filename, string(stripBOM(data)), 0), nil
	case ".pdf":
		return pdfContent(filename, bytes.NewReader(data), int64(len(data)))
	case ".docx":
		return docxContent(filename, bytes.NewReader(data), int64(len(data)))
	default:
		return nil, &model.ValidationError{Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
}

func fromTxt(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return finish(filepath.Base(path), string(stripBOM(data)), 0), nil
}

func fromPDF(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return pdfContent(filepath.Base(path), bytes.NewReader(data), int64(len(data)))
}

func fromDocx(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return docxContent(filepath.Base(path), bytes.NewReader(data), int64(len(data)))
}

// pdfContent walks the pages in order and joins their plain text
func pdfContent(filename string, r *bytes.Reader, size int64) (*Content, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	content := finish(filename, buf.String(), pages)
	if content.Text == "" {
		return nil, &model.ValidationError{Reason: "no extractable text in PDF"}
	}
	return content, nil
}

// docxContent reads word/document.xml out of the zip container and
// flattens its paragraph runs
func docxContent(filename string, r *bytes.Reader, size int64) (*Content, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, &model.ValidationError{Reason: "not a docx file: missing word/document.xml"}
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer func() { _ = rc.Close() }()

	text, err := flattenDocumentXML(rc)
	if err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	content := finish(filename, text, 0)
	if content.Text == "" {
		return nil, &model.ValidationError{Reason: "no extractable text in docx"}
	}
	return content, nil
}

func finish(filename, text string, pages int) *Content {
	text = strings.TrimSpace(text)
	return &Content{
		Filename:  filename,
		Text:      text,
		WordCount: len(strings.Fields(text)),
		CharCount: len(text),
		PageCount: pages,
	}
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
