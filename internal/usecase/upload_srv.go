package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
	"time"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"
	"lms-backend/pkg/storage"
	"lms-backend/pkg/utils"

	"go.uber.org/zap"
)

const MaxUploadSize = 10 << 20

var allowedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
	"image/jpeg",
	"image/png",
	"image/gif",
}

type UploadService interface {
	UploadBase64(ctx context.Context, actor *Actor, req *request.Base64UploadRequest) (*response.UploadResponse, error)
	Locate(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, actor *Actor, key string) error
}

type uploadService struct {
	store       storage.ObjectStorage
	uploadRoles []string
	log         *zap.Logger
	now         func() time.Time
}

// NewUploadService accepts a nil store; uploads then fail with ErrUnavailable.
func NewUploadService(store storage.ObjectStorage, uploadRoles []string, log *zap.Logger) UploadService {
	return &uploadService{
		store:       store,
		uploadRoles: uploadRoles,
		log:         log.With(zap.String("service", "upload")),
		now:         time.Now,
	}
}

func (s *uploadService) UploadBase64(ctx context.Context, actor *Actor, req *request.Base64UploadRequest) (*response.UploadResponse, error) {
	if actor == nil || !slices.Contains(s.uploadRoles, actor.Role) {
		return nil, newError(ErrForbidden, "Access denied")
	}

	if req.Base64Data == "" || req.FileName == "" || req.MimeType == "" {
		return nil, newError(ErrValidation, "Missing required fields: base64Data, fileName, mimeType")
	}

	mimeType := strings.ToLower(strings.TrimSpace(req.MimeType))
	if !slices.Contains(allowedMimeTypes, mimeType) {
		return nil, newError(ErrValidation, "Invalid file type. Only PDF, DOC, DOCX, PPT, PPTX, TXT, and image files are allowed.")
	}

	if s.store == nil {
		return nil, newError(ErrUnavailable, "File storage is not configured")
	}

	payload := stripDataURL(req.Base64Data)
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxUploadSize+2 {
		return nil, newError(ErrTooLarge, "File too large. Maximum size is %dMB", MaxUploadSize>>20)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid base64 data")
	}
	if len(data) > MaxUploadSize {
		return nil, newError(ErrTooLarge, "File too large. Maximum size is %dMB", MaxUploadSize>>20)
	}

	key := utils.GenerateObjectKey(req.Folder, req.FileName, s.now())
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		s.log.Error("Failed to store upload",
			zap.Error(err),
			zap.String("key", key),
			zap.String("bucket", s.store.Bucket()),
		)
		return nil, fmt.Errorf("failed to upload file")
	}

	s.log.Info("File uploaded",
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.String("mime_type", mimeType),
		zap.String("by", actor.ID.String()),
	)

	return &response.UploadResponse{
		URL:          s.store.URL(key),
		Key:          key,
		OriginalName: req.FileName,
		Size:         int64(len(data)),
		MimeType:     mimeType,
	}, nil
}

// Locate returns the public URL of a stored object.
func (s *uploadService) Locate(ctx context.Context, key string) (string, error) {
	if err := s.lookup(ctx, key); err != nil {
		return "", err
	}
	return s.store.URL(key), nil
}

// Delete removes a stored object. Admin only.
func (s *uploadService) Delete(ctx context.Context, actor *Actor, key string) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Access denied")
	}
	if err := s.lookup(ctx, key); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Error("Failed to delete upload", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to delete file")
	}

	s.log.Info("File deleted", zap.String("key", key), zap.String("by", actor.ID.String()))
	return nil
}

// lookup validates key and checks that the object exists.
func (s *uploadService) lookup(ctx context.Context, key string) error {
	if !validObjectKey(key) {
		return newError(ErrValidation, "Invalid file key")
	}
	if s.store == nil {
		return newError(ErrUnavailable, "File storage is not configured")
	}

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		s.log.Error("Failed to stat upload", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to retrieve file")
	}
	if !exists {
		return newError(ErrNotFound, "File not found")
	}
	return nil
}

// validObjectKey rejects empty, absolute and dot-segment keys.
func validObjectKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || len(key) > 1024 {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// stripDataURL drops a "data:<mime>;base64," prefix and surrounding blanks.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}
