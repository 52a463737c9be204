package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OTPRepository is the Postgres-backed passcode store.
type OTPRepository interface {
	Insert(ctx context.Context, otp *entity.OTP) error
	FindLatestValid(ctx context.Context, email, code string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	DeleteAllForEmail(ctx context.Context, email string) (int64, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Insert(ctx context.Context, otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, email, code, purpose, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.Email,
		otp.Code,
		otp.Purpose,
		otp.ExpiresAt,
		otp.IsUsed,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to insert OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("insert OTP for %s: %w", otp.Email, err)
	}

	return nil
}

// FindLatestValid returns the newest unconsumed record still valid at now,
// or nil when there is none.
func (r *otpRepository) FindLatestValid(ctx context.Context, email, code string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error) {
	query := `
		SELECT id, email, code, purpose, expires_at, is_used, created_at
		FROM otps
		WHERE email = $1
		  AND code = $2
		  AND purpose = $3
		  AND is_used = false
		  AND expires_at > $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTP
	err := r.db.QueryRow(ctx, query, email, code, purpose, now).Scan(
		&otp.ID,
		&otp.Email,
		&otp.Code,
		&otp.Purpose,
		&otp.ExpiresAt,
		&otp.IsUsed,
		&otp.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid OTP",
			zap.Error(err),
			zap.String("email", email),
			zap.String("purpose", string(purpose)),
		)
		return nil, fmt.Errorf("find valid OTP for %s purpose %s: %w", email, purpose, err)
	}

	return &otp, nil
}

// Consume flips is_used in a single conditional update. It reports false
// when the row was already consumed or no longer exists.
func (r *otpRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE otps
		SET is_used = true
		WHERE id = $1 AND is_used = false
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to consume OTP",
			zap.Error(err),
			zap.String("otp_id", id.String()),
		)
		return false, fmt.Errorf("consume OTP %s: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM otps WHERE expires_at < $1`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to delete expired OTPs", zap.Error(err))
		return 0, fmt.Errorf("delete OTPs expired before %s: %w", before.Format(time.RFC3339), err)
	}

	return result.RowsAffected(), nil
}

func (r *otpRepository) DeleteAllForEmail(ctx context.Context, email string) (int64, error) {
	query := `DELETE FROM otps WHERE email = $1`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete OTPs for email",
			zap.Error(err),
			zap.String("email", email),
		)
		return 0, fmt.Errorf("delete OTPs for %s: %w", email, err)
	}

	return result.RowsAffected(), nil
}
