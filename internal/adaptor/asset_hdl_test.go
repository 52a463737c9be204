package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockAssetService struct{ mock.Mock }

func (m *mockAssetService) GetLogo(ctx context.Context) (*response.AssetResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*response.AssetResponse)
	return resp, args.Error(1)
}

func (m *mockAssetService) UpdateLogo(ctx context.Context, actor *usecase.Actor, req *request.UpdateLogoRequest) (*response.AssetResponse, error) {
	args := m.Called(ctx, actor, req)
	resp, _ := args.Get(0).(*response.AssetResponse)
	return resp, args.Error(1)
}

func (m *mockAssetService) List(ctx context.Context, actor *usecase.Actor) ([]response.AssetResponse, error) {
	args := m.Called(ctx, actor)
	resp, _ := args.Get(0).([]response.AssetResponse)
	return resp, args.Error(1)
}

func TestAssetGetLogo_Unset(t *testing.T) {
	svc := &mockAssetService{}
	h := NewAssetHandler(svc, zap.NewNop())
	svc.On("GetLogo", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.GetLogo(rec, newRequest(http.MethodGet, "/api/assets/logo", "", nil, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Status)
	assert.Contains(t, rec.Body.String(), `"data":null`)
}

func TestAssetUpdateLogo(t *testing.T) {
	svc := &mockAssetService{}
	h := NewAssetHandler(svc, zap.NewNop())
	admin := &token.Identity{ID: "6f1c1b3e-2f7a-4b8a-9d43-0f5c1a2b3c4d", Role: "admin"}

	svc.On("UpdateLogo", mock.Anything, mock.Anything, &request.UpdateLogoRequest{LogoData: "data:image/png;base64,AAAA"}).
		Return(&response.AssetResponse{Type: "logo", Data: "data:image/png;base64,AAAA"}, nil)

	rec := httptest.NewRecorder()
	h.UpdateLogo(rec, newRequest(http.MethodPut, "/api/assets/logo", `{"logoData":"data:image/png;base64,AAAA"}`, admin, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logo updated successfully", decodeEnvelope(t, rec).Message)
	svc.AssertExpectations(t)
}
