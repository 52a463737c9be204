package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/dto/request"
	"lms-backend/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxLogoSize bounds the stored logo payload, usually a data URL.
const MaxLogoSize = 2 << 20

type AssetService interface {
	GetLogo(ctx context.Context) (*response.AssetResponse, error)
	UpdateLogo(ctx context.Context, actor *Actor, req *request.UpdateLogoRequest) (*response.AssetResponse, error)
	List(ctx context.Context, actor *Actor) ([]response.AssetResponse, error)
}

type assetService struct {
	assets repository.AssetRepository
	log    *zap.Logger
	now    func() time.Time
}

func NewAssetService(assets repository.AssetRepository, log *zap.Logger) AssetService {
	return &assetService{
		assets: assets,
		log:    log.With(zap.String("service", "asset")),
		now:    time.Now,
	}
}

// GetLogo returns nil without error when no logo has been set.
func (s *assetService) GetLogo(ctx context.Context) (*response.AssetResponse, error) {
	logo, err := s.assets.FindByType(ctx, entity.AssetTypeLogo)
	if err != nil {
		s.log.Error("Failed to get logo", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch logo")
	}
	if logo == nil {
		return nil, nil
	}

	resp := response.AssetToResponse(logo)
	return &resp, nil
}

func (s *assetService) UpdateLogo(ctx context.Context, actor *Actor, req *request.UpdateLogoRequest) (*response.AssetResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	data := strings.TrimSpace(req.LogoData)
	if data == "" {
		return nil, newError(ErrValidation, "Logo data is required")
	}
	if len(data) > MaxLogoSize {
		return nil, newError(ErrTooLarge, "Logo too large. Maximum size is %dMB", MaxLogoSize>>20)
	}

	now := s.now()
	stored, err := s.assets.Upsert(ctx, &entity.CompanyAsset{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type: entity.AssetTypeLogo,
		Data: data,
	})
	if err != nil {
		s.log.Error("Failed to update logo", zap.Error(err))
		return nil, fmt.Errorf("failed to update logo")
	}

	s.log.Info("Logo updated", zap.Int("size", len(data)), zap.String("by", actor.ID.String()))

	resp := response.AssetToResponse(stored)
	return &resp, nil
}

func (s *assetService) List(ctx context.Context, actor *Actor) ([]response.AssetResponse, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Access denied")
	}

	assets, err := s.assets.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list assets", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch assets")
	}
	return response.AssetsToResponse(assets), nil
}
