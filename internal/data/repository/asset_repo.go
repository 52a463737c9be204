package repository

import (
	"context"
	"errors"
	"fmt"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AssetRepository interface {
	FindByType(ctx context.Context, assetType string) (*entity.CompanyAsset, error)
	FindAll(ctx context.Context) ([]*entity.CompanyAsset, error)
	Upsert(ctx context.Context, asset *entity.CompanyAsset) (*entity.CompanyAsset, error)
}

type assetRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAssetRepository(db database.PgxIface, log *zap.Logger) AssetRepository {
	return &assetRepository{
		db:  db,
		log: log.With(zap.String("repository", "asset")),
	}
}

func scanAsset(row pgx.Row) (*entity.CompanyAsset, error) {
	var a entity.CompanyAsset
	if err := row.Scan(&a.ID, &a.Type, &a.Data, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepository) FindByType(ctx context.Context, assetType string) (*entity.CompanyAsset, error) {
	query := `
		SELECT id, type, data, created_at, updated_at
		FROM company_assets
		WHERE type = $1
	`

	asset, err := scanAsset(r.db.QueryRow(ctx, query, assetType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find asset by type",
			zap.Error(err),
			zap.String("type", assetType),
		)
		return nil, fmt.Errorf("find asset %s: %w", assetType, err)
	}

	return asset, nil
}

func (r *assetRepository) FindAll(ctx context.Context) ([]*entity.CompanyAsset, error) {
	query := `
		SELECT id, type, data, created_at, updated_at
		FROM company_assets
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list assets", zap.Error(err))
		return nil, fmt.Errorf("find all assets: %w", err)
	}
	defer rows.Close()

	var assets []*entity.CompanyAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			r.log.Error("Failed to scan asset row", zap.Error(err))
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate asset rows: %w", err)
	}

	return assets, nil
}

// Upsert replaces the data of the asset with the same type, keeping its
// original id and created_at, and returns the stored row.
func (r *assetRepository) Upsert(ctx context.Context, asset *entity.CompanyAsset) (*entity.CompanyAsset, error) {
	query := `
		INSERT INTO company_assets (id, type, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		RETURNING id, type, data, created_at, updated_at
	`

	stored, err := scanAsset(r.db.QueryRow(ctx, query,
		asset.ID,
		asset.Type,
		asset.Data,
		asset.CreatedAt,
		asset.UpdatedAt,
	))
	if err != nil {
		r.log.Error("Failed to upsert asset",
			zap.Error(err),
			zap.String("type", asset.Type),
		)
		return nil, fmt.Errorf("upsert asset %s: %w", asset.Type, err)
	}

	return stored, nil
}
