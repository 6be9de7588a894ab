package uploads

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/uploads/drivers"
)

// MaxDocumentSize bounds a single uploaded document.
const MaxDocumentSize = 32 << 20

// DocumentService stores task documents through a StorageDriver
type DocumentService struct {
	driver StorageDriver
}

func NewDocumentService(driver StorageDriver) *DocumentService {
	return &DocumentService{driver: driver}
}

// Store saves a document for taskID under a fresh key and returns its metadata.
// The stored file is removed again when no URL can be produced for it.
func (s *DocumentService) Store(ctx context.Context, taskID uuid.UUID, filename string, reader io.Reader, size int64, mime string) (*Document, error) {
	if size > MaxDocumentSize {
		return nil, apperr.Validation("document exceeds %d bytes", MaxDocumentSize)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	key := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	if err := s.driver.Save(ctx, key, reader, mime); err != nil {
		return nil, apperr.Internal(err, "failed to store document")
	}

	url, err := s.driver.GenerateURL(ctx, key, 0)
	if err != nil {
		s.Remove(ctx, key)
		return nil, apperr.Internal(err, "failed to generate document URL")
	}

	doc := &Document{
		Key:      key,
		Name:     filename,
		URL:      url,
		Size:     size,
		MimeType: mime,
		TaskID:   taskID,
	}

	slog.InfoContext(ctx, "document stored", "taskId", taskID, "key", key, "size", size)
	return doc, nil
}

// Open streams a stored document and reports its content type
func (s *DocumentService) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := drivers.ValidateKey(key); err != nil {
		return nil, "", apperr.Validation("invalid document key")
	}
	reader, contentType, err := s.driver.Get(ctx, key)
	if err != nil {
		if errors.Is(err, drivers.ErrObjectNotFound) {
			return nil, "", apperr.NotFound("Document not found")
		}
		return nil, "", apperr.Internal(err, "failed to open document")
	}
	return reader, contentType, nil
}

// Remove deletes a stored document. Failures are only logged.
func (s *DocumentService) Remove(ctx context.Context, key string) {
	if err := s.driver.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to cleanup orphaned document", "key", key, "error", err)
	}
}
