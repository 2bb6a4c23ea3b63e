package docsession

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/ledongthuc/pdf"

	"researchai/internal/apiclient"
	"researchai/pkg/domain"
)

// Uploader is the slice of the backend client the upload flow needs.
type Uploader interface {
	UploadDocument(ctx context.Context, filename string, r io.Reader, userID string) (string, error)
}

// UploadFlow validates a local file and uploads it, yielding the
// server-assigned document ID. Validation failures block the request from
// ever being sent.
type UploadFlow struct {
	api      Uploader
	maxBytes int64
	allowed  map[string]bool
}

// NewUploadFlow builds an upload flow with a size limit in bytes and the
// set of accepted extensions (without dots).
func NewUploadFlow(api Uploader, maxBytes int64, allowedExts []string) *UploadFlow {
	allowed := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &UploadFlow{api: api, maxBytes: maxBytes, allowed: allowed}
}

// Submit uploads the file at path for the session user. Preconditions are
// checked locally first: an oversized or wrong-type file fails with a
// validation error and a missing session with an auth error, in both cases
// without contacting the backend.
func (f *UploadFlow) Submit(ctx context.Context, path string, sess domain.Session) (FileInfo, string, error) {
	if !sess.Valid() {
		return FileInfo{}, "", apiclient.AuthError("please login first")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, "", fmt.Errorf("stat file: %w", err)
	}
	info := FileInfo{
		Name: stat.Name(),
		Size: stat.Size(),
		Path: path,
	}
	if info.Size > f.maxBytes {
		return FileInfo{}, "", apiclient.ValidationError(
			fmt.Sprintf("file size exceeds %s limit", units.BytesSize(float64(f.maxBytes))))
	}
	ext := info.Ext()
	if !f.allowed[ext] {
		return FileInfo{}, "", apiclient.ValidationError(
			fmt.Sprintf("unsupported file type %q (accepted: pdf, docx, doc, txt)", ext))
	}
	if ext == "pdf" {
		if err := preflightPDF(path); err != nil {
			return FileInfo{}, "", apiclient.ValidationError(err.Error())
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return FileInfo{}, "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	docID, err := f.api.UploadDocument(ctx, info.Name, file, sess.UserID)
	if err != nil {
		return FileInfo{}, "", err
	}
	return info, docID, nil
}

// preflightPDF rejects files that carry a .pdf extension but are not
// readable PDFs, before spending the upload on them.
func preflightPDF(path string) error {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("file is not a readable PDF: %v", err)
	}
	defer file.Close()
	if reader.NumPage() == 0 {
		return fmt.Errorf("PDF has no pages")
	}
	return nil
}
