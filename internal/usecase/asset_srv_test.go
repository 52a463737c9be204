package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssetService(t *testing.T) (AssetService, *mockAssetRepo) {
	t.Helper()
	assets := &mockAssetRepo{}
	svc := NewAssetService(assets, zap.NewNop())
	svc.(*assetService).now = func() time.Time { return fixedNow }
	return svc, assets
}

func TestAssetGetLogo(t *testing.T) {
	ctx := context.Background()

	t.Run("not set yet", func(t *testing.T) {
		svc, assets := newAssetService(t)
		assets.On("FindByType", ctx, entity.AssetTypeLogo).Return(nil, nil)

		logo, err := svc.GetLogo(ctx)

		require.NoError(t, err)
		assert.Nil(t, logo)
	})

	t.Run("stored", func(t *testing.T) {
		svc, assets := newAssetService(t)
		assets.On("FindByType", ctx, entity.AssetTypeLogo).Return(&entity.CompanyAsset{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			Type:         entity.AssetTypeLogo,
			Data:         "data:image/png;base64,AAAA",
		}, nil)

		logo, err := svc.GetLogo(ctx)

		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,AAAA", logo.Data)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, assets := newAssetService(t)
		assets.On("FindByType", ctx, entity.AssetTypeLogo).Return(nil, errors.New("timeout"))

		_, err := svc.GetLogo(ctx)
		assert.EqualError(t, err, "failed to fetch logo")
	})
}

func TestAssetUpdateLogo(t *testing.T) {
	ctx := context.Background()
	admin := newActor(entity.RoleAdmin, nil)

	t.Run("upserts the logo row", func(t *testing.T) {
		svc, assets := newAssetService(t)
		assets.On("Upsert", ctx, mock.MatchedBy(func(a *entity.CompanyAsset) bool {
			return a.Type == entity.AssetTypeLogo && a.Data == "data:image/png;base64,BBBB" && a.UpdatedAt.Equal(fixedNow)
		})).Return(&entity.CompanyAsset{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), UpdatedAt: fixedNow},
			Type:         entity.AssetTypeLogo,
			Data:         "data:image/png;base64,BBBB",
		}, nil).Once()

		logo, err := svc.UpdateLogo(ctx, admin, &request.UpdateLogoRequest{LogoData: " data:image/png;base64,BBBB "})

		require.NoError(t, err)
		assert.Equal(t, entity.AssetTypeLogo, logo.Type)
		assets.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		actor *Actor
		data  string
		kind  error
	}{
		{"non-admin", newActor("general", nil), "x", ErrForbidden},
		{"anonymous", nil, "x", ErrForbidden},
		{"blank", admin, "   ", ErrValidation},
		{"too large", admin, strings.Repeat("A", MaxLogoSize+1), ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, assets := newAssetService(t)

			_, err := svc.UpdateLogo(ctx, tt.actor, &request.UpdateLogoRequest{LogoData: tt.data})

			assert.ErrorIs(t, err, tt.kind)
			assets.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestAssetList_AdminOnly(t *testing.T) {
	ctx := context.Background()
	svc, assets := newAssetService(t)
	assets.On("FindAll", ctx).Return([]*entity.CompanyAsset{{Type: entity.AssetTypeLogo}}, nil)

	_, err := svc.List(ctx, newActor("developer", nil))
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := svc.List(ctx, newActor(entity.RoleAdmin, nil))
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
