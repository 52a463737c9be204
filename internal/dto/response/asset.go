package response

import (
	"time"

	"lms-backend/internal/data/entity"
)

type AssetResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AssetToResponse(a *entity.CompanyAsset) AssetResponse {
	return AssetResponse{
		ID:        a.ID.String(),
		Type:      a.Type,
		Data:      a.Data,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func AssetsToResponse(assets []*entity.CompanyAsset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, AssetToResponse(a))
	}
	return out
}
