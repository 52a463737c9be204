package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PasscodeTTL   = 10 * time.Minute
	SessionTTL    = 24 * time.Hour
	SweepInterval = 15 * time.Minute

	deliveryTimeout = 10 * time.Second
)

var ErrPersist = errors.New("failed to store passcode")

// PasscodeStore persists passcode records. Consume must be a single
// conditional update so that two concurrent verifications of the same
// record cannot both succeed.
type PasscodeStore interface {
	Insert(ctx context.Context, otp *entity.OTP) error
	FindLatestValid(ctx context.Context, email, code string, purpose entity.OTPPurpose, now time.Time) (*entity.OTP, error)
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	DeleteAllForEmail(ctx context.Context, email string) (int64, error)
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// SessionSigner mints session tokens.
type SessionSigner interface {
	Sign(identity token.Identity, ttl time.Duration) (string, time.Time, error)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Issuer struct {
	store  PasscodeStore
	mailer Mailer
	signer SessionSigner
	log    *zap.Logger
	now    func() time.Time
	code   func() string
	sweep  time.Duration
}

type Option func(*Issuer)

func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func WithCodeGenerator(gen func() string) Option {
	return func(i *Issuer) { i.code = gen }
}

// WithSweepInterval overrides SweepInterval; non-positive values are ignored.
func WithSweepInterval(d time.Duration) Option {
	return func(i *Issuer) {
		if d > 0 {
			i.sweep = d
		}
	}
}

// NewIssuer wires the issuer. A nil mailer makes every delivery fall back to
// the log.
func NewIssuer(store PasscodeStore, mailer Mailer, signer SessionSigner, log *zap.Logger, opts ...Option) *Issuer {
	i := &Issuer{
		store:  store,
		mailer: mailer,
		signer: signer,
		log:    log.With(zap.String("service", "credential")),
		now:    time.Now,
		code:   GenerateCode,
		sweep:  SweepInterval,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue persists a new passcode for (email, purpose) and attempts delivery.
// Only a persistence failure is returned; delivery problems degrade to a
// logged fallback.
func (i *Issuer) Issue(ctx context.Context, email string, purpose entity.OTPPurpose) (string, error) {
	now := i.now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Email:     email,
		Code:      i.code(),
		Purpose:   purpose,
		ExpiresAt: now.Add(PasscodeTTL),
		IsUsed:    false,
	}

	if err := i.store.Insert(ctx, otp); err != nil {
		i.log.Error("Failed to persist passcode",
			zap.Error(err),
			zap.String("email", email),
			zap.String("purpose", string(purpose)),
		)
		return "", fmt.Errorf("%w: %v", ErrPersist, err)
	}

	i.deliver(ctx, otp)

	return otp.Code, nil
}

func (i *Issuer) deliver(ctx context.Context, otp *entity.OTP) {
	if i.mailer == nil {
		i.log.Info("Mail sender not configured, passcode logged",
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
			zap.String("otp_code", otp.Code),
		)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	if err := i.mailer.Send(sendCtx, composeMessage(otp)); err != nil {
		i.log.Warn("Passcode delivery failed, using log fallback",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
			zap.String("otp_code", otp.Code),
		)
		return
	}

	i.log.Info("Passcode sent",
		zap.String("email", otp.Email),
		zap.String("purpose", string(otp.Purpose)),
	)
}

// Verify consumes the newest unconsumed, unexpired passcode matching
// (email, code, purpose). A non-match is (false, nil); errors are reserved
// for store failures.
func (i *Issuer) Verify(ctx context.Context, email, code string, purpose entity.OTPPurpose) (bool, error) {
	otp, err := i.store.FindLatestValid(ctx, email, code, purpose, i.now())
	if err != nil {
		i.log.Error("Failed to look up passcode", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("verify passcode for %s: %w", email, err)
	}
	if otp == nil {
		i.log.Info("No valid passcode",
			zap.String("email", email),
			zap.String("purpose", string(purpose)),
		)
		return false, nil
	}

	consumed, err := i.store.Consume(ctx, otp.ID)
	if err != nil {
		i.log.Error("Failed to consume passcode", zap.Error(err), zap.String("otp_id", otp.ID.String()))
		return false, fmt.Errorf("consume passcode %s: %w", otp.ID, err)
	}
	if !consumed {
		// another request consumed it between the read and the update
		i.log.Warn("Passcode already consumed", zap.String("otp_id", otp.ID.String()))
		return false, nil
	}

	return true, nil
}

// Purge removes every passcode for email, regardless of purpose or state.
func (i *Issuer) Purge(ctx context.Context, email string) error {
	n, err := i.store.DeleteAllForEmail(ctx, email)
	if err != nil {
		i.log.Error("Failed to purge passcodes", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("purge passcodes for %s: %w", email, err)
	}

	i.log.Debug("Passcodes purged", zap.String("email", email), zap.Int64("count", n))
	return nil
}

// SweepExpired deletes records whose expiry is strictly before now.
func (i *Issuer) SweepExpired(ctx context.Context) (int64, error) {
	n, err := i.store.DeleteExpired(ctx, i.now())
	if err != nil {
		i.log.Error("Failed to sweep expired passcodes", zap.Error(err))
		return 0, fmt.Errorf("sweep expired passcodes: %w", err)
	}

	if n > 0 {
		i.log.Info("Expired passcodes swept", zap.Int64("count", n))
	}
	return n, nil
}

// IssueSession signs a 24h session token for identity.
func (i *Issuer) IssueSession(identity token.Identity) (*Session, error) {
	signed, expiresAt, err := i.signer.Sign(identity, SessionTTL)
	if err != nil {
		i.log.Error("Failed to sign session token", zap.Error(err), zap.String("user_id", identity.ID))
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}
