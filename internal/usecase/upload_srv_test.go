package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUploadService(store *mockStorage) UploadService {
	var svc UploadService
	if store == nil {
		svc = NewUploadService(nil, editorRoles, zap.NewNop())
	} else {
		svc = NewUploadService(store, editorRoles, zap.NewNop())
	}
	svc.(*uploadService).now = func() time.Time { return fixedNow }
	return svc
}

func TestUploadBase64_Stores(t *testing.T) {
	ctx := context.Background()
	store := &mockStorage{}
	svc := newUploadService(store)
	payload := []byte("%PDF-1.4 hello")

	store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "lessons/") && strings.HasSuffix(key, "-notes.pdf")
	}), mock.Anything, int64(len(payload)), "application/pdf").Return(nil)
	store.On("URL", mock.Anything).Return("https://cdn.example.com/lms/key")

	resp, err := svc.UploadBase64(ctx, newActor(entity.RoleAdmin, nil), &request.Base64UploadRequest{
		Base64Data: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload),
		FileName:   "notes.pdf",
		MimeType:   "application/pdf",
		Folder:     "lessons",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), resp.Size)
	assert.Equal(t, "https://cdn.example.com/lms/key", resp.URL)
	assert.Equal(t, "notes.pdf", resp.OriginalName)
	store.AssertExpectations(t)
}

func TestUploadBase64_Rejections(t *testing.T) {
	ctx := context.Background()
	editor := newActor(entity.RoleAdmin, nil)
	valid := base64.StdEncoding.EncodeToString([]byte("hello"))
	tooBig := base64.StdEncoding.EncodeToString(make([]byte, MaxUploadSize+1))

	tests := []struct {
		name    string
		actor   *Actor
		req     request.Base64UploadRequest
		noStore bool
		want    error
		message string
	}{
		{name: "role", actor: newActor("developer", nil), req: request.Base64UploadRequest{Base64Data: valid, FileName: "a.txt", MimeType: "text/plain"}, want: ErrForbidden, message: "Access denied"},
		{name: "missing fields", actor: editor, req: request.Base64UploadRequest{FileName: "a.txt"}, want: ErrValidation, message: "Missing required fields: base64Data, fileName, mimeType"},
		{name: "mime type", actor: editor, req: request.Base64UploadRequest{Base64Data: valid, FileName: "a.exe", MimeType: "application/x-msdownload"}, want: ErrValidation},
		{name: "bad base64", actor: editor, req: request.Base64UploadRequest{Base64Data: "!!!", FileName: "a.txt", MimeType: "text/plain"}, want: ErrValidation, message: "Invalid base64 data"},
		{name: "too large", actor: editor, req: request.Base64UploadRequest{Base64Data: tooBig, FileName: "a.txt", MimeType: "text/plain"}, want: ErrTooLarge, message: "File too large. Maximum size is 10MB"},
		{name: "no storage", actor: editor, req: request.Base64UploadRequest{Base64Data: valid, FileName: "a.txt", MimeType: "text/plain"}, noStore: true, want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStorage{}
			svc := newUploadService(store)
			if tt.noStore {
				svc = newUploadService(nil)
			}

			_, err := svc.UploadBase64(ctx, tt.actor, &tt.req)

			assert.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
			store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUploadBase64_StoreFailure(t *testing.T) {
	ctx := context.Background()
	store := &mockStorage{}
	svc := newUploadService(store)

	store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))
	store.On("Bucket").Return("lms")

	_, err := svc.UploadBase64(ctx, newActor(entity.RoleAdmin, nil), &request.Base64UploadRequest{
		Base64Data: base64.StdEncoding.EncodeToString([]byte("x")),
		FileName:   "a.txt",
		MimeType:   "text/plain",
	})

	require.Error(t, err)
	var typed *Error
	assert.False(t, errors.As(err, &typed))
}

func TestUploadDelete(t *testing.T) {
	ctx := context.Background()
	admin := newActor(entity.RoleAdmin, nil)
	const key = "lessons/1714816800000-ab12cd34-notes.pdf"

	t.Run("removes existing object", func(t *testing.T) {
		store := &mockStorage{}
		store.On("Exists", ctx, key).Return(true, nil)
		store.On("Delete", ctx, key).Return(nil).Once()

		require.NoError(t, newUploadService(store).Delete(ctx, admin, key))
		store.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		store := &mockStorage{}
		store.On("Exists", ctx, key).Return(false, nil)

		err := newUploadService(store).Delete(ctx, admin, key)

		assert.ErrorIs(t, err, ErrNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("non-admin", func(t *testing.T) {
		store := &mockStorage{}

		err := newUploadService(store).Delete(ctx, newActor("principal_software_engineer", nil), key)

		assert.ErrorIs(t, err, ErrForbidden)
		store.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("bad keys", func(t *testing.T) {
		svc := newUploadService(&mockStorage{})
		for _, bad := range []string{"", "/etc/passwd", "../secret", "a//b", "lessons/./x"} {
			assert.ErrorIs(t, svc.Delete(ctx, admin, bad), ErrValidation, bad)
		}
	})

	t.Run("no storage", func(t *testing.T) {
		assert.ErrorIs(t, newUploadService(nil).Delete(ctx, admin, key), ErrUnavailable)
	})
}

func TestUploadLocate(t *testing.T) {
	ctx := context.Background()
	store := &mockStorage{}
	svc := newUploadService(store)
	store.On("Exists", ctx, "docs/a.pdf").Return(true, nil)
	store.On("Exists", ctx, "docs/gone.pdf").Return(false, nil)
	store.On("Exists", ctx, "docs/err.pdf").Return(false, errors.New("timeout"))
	store.On("URL", "docs/a.pdf").Return("https://cdn.example.com/docs/a.pdf")

	url, err := svc.Locate(ctx, "docs/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/docs/a.pdf", url)

	_, err = svc.Locate(ctx, "docs/gone.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Locate(ctx, "docs/err.pdf")
	var ucErr *Error
	assert.Error(t, err)
	assert.False(t, errors.As(err, &ucErr))
}
