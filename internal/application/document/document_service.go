package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/document"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService defines the interface for object storage operations.
// This interface is implemented by the infrastructure layer (S3-compatible
// backends).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ServiceConfig holds configuration for the document service
type ServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// Service keeps records of rendered PDFs. The files live in object
// storage; upload goes through presigned URLs and a record is written only
// after the object is verified to exist.
type Service struct {
	repo    document.Repository
	storage ObjectStorageService
	config  ServiceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new document Service
func NewService(repo document.Repository, storage ObjectStorageService, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		config:  DefaultServiceConfig(),
		logger:  logger,
		now:     time.Now,
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	s.config = config
}

// InitiateUploadRequest asks for a presigned upload slot for a rendered PDF
type InitiateUploadRequest struct {
	Kind     string    `json:"kind" binding:"required,oneof=invoice quotation"`
	SourceID uuid.UUID `json:"source_id" binding:"required"`
	FileName string    `json:"file_name" binding:"required"`
}

// InitiateUploadResponse carries the storage key and presigned upload URL
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// RecordRequest confirms an upload and creates the document record
type RecordRequest struct {
	Kind       string    `json:"kind" binding:"required,oneof=invoice quotation"`
	SourceID   uuid.UUID `json:"source_id" binding:"required"`
	StorageKey string    `json:"storage_key" binding:"required"`
	FileName   string    `json:"file_name" binding:"required"`
	Size       int64     `json:"size" binding:"min=0"`
}

// Response represents a stored document in responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	SourceID    uuid.UUID `json:"source_id"`
	FileName    string    `json:"file_name"`
	Size        int64     `json:"size"`
	RenderedAt  time.Time `json:"rendered_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

// ToResponse converts a domain document
func ToResponse(doc *document.Document) Response {
	return Response{
		ID:         doc.ID,
		Kind:       string(doc.Kind),
		SourceID:   doc.SourceID,
		FileName:   doc.FileName,
		Size:       doc.Size,
		RenderedAt: doc.RenderedAt,
	}
}

// InitiateUpload generates a storage key and a presigned upload URL for a
// rendered document. No record is written until the upload is confirmed.
func (s *Service) InitiateUpload(ctx context.Context, userID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	kind := document.Kind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Unknown document kind")
	}

	storageKey := s.generateStorageKey(userID, kind, req.SourceID, req.FileName)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, "application/pdf", s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// Record verifies the uploaded object exists and writes the document
// record for it.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, req RecordRequest) (*Response, error) {
	kind := document.Kind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewValidationError("Unknown document kind")
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Please upload the file first.")
	}

	doc, err := document.NewDocument(userID, kind, req.SourceID, req.StorageKey, req.FileName, req.Size, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document recorded",
		zap.String("user_id", userID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(doc.Kind)))

	response := ToResponse(doc)
	s.enrichDownloadURL(ctx, doc.StorageKey, &response)
	return &response, nil
}

// GetByID retrieves a stored document with a fresh download URL
func (s *Service) GetByID(ctx context.Context, userID, documentID uuid.UUID) (*Response, error) {
	doc, err := s.repo.FindByIDForUser(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	response := ToResponse(doc)
	s.enrichDownloadURL(ctx, doc.StorageKey, &response)
	return &response, nil
}

// List retrieves the user's stored documents
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Response, error) {
	docs, err := s.repo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(docs))
	for i := range docs {
		responses = append(responses, ToResponse(&docs[i]))
	}
	return responses, nil
}

// ListBySource retrieves the documents rendered from one invoice or
// quotation, ownership checked per row.
func (s *Service) ListBySource(ctx context.Context, userID uuid.UUID, kind document.Kind, sourceID uuid.UUID) ([]Response, error) {
	docs, err := s.repo.FindBySource(ctx, kind, sourceID)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(docs))
	for i := range docs {
		if !docs[i].IsOwnedBy(userID) {
			continue
		}
		responses = append(responses, ToResponse(&docs[i]))
	}
	return responses, nil
}

// Delete removes the stored object and its record. The record survives a
// failed object delete so the file never becomes unreachable while it
// still exists.
func (s *Service) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	doc, err := s.repo.FindByIDForUser(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		return shared.NewDomainError("STORAGE_DELETE_FAILED", "Failed to delete stored file")
	}
	return s.repo.Delete(ctx, doc.ID)
}

func (s *Service) generateStorageKey(userID uuid.UUID, kind document.Kind, sourceID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("documents/%s/%s/%s/%s%s", userID, kind, sourceID, uuid.New(), ext)
}

func (s *Service) enrichDownloadURL(ctx context.Context, storageKey string, response *Response) {
	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Warn("download url generation failed", zap.Error(err))
		return
	}
	response.DownloadURL = url
}
