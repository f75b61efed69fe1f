package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/smtp"
	"github.com/otp-auth-api/internal/infrastructure/sns"
	"github.com/otp-auth-api/internal/pkg/id"
	"github.com/otp-auth-api/internal/pkg/otp"
)

type Service interface {
	// SendOTP issues a fresh code for the contact, upserting its identity,
	// and returns the stored record as written.
	SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.Identity, error)
	// Login verifies the submitted code and returns a signed session token.
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
}

type identityStore interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Put(ctx context.Context, i *domain.Identity) error
	Update(ctx context.Context, identityID string, updates map[string]interface{}) (*domain.Identity, error)
}

type tokenSigner interface {
	Sign(identity *domain.Identity) (string, error)
}

type service struct {
	repo      identityStore
	signer    tokenSigner
	mailer    smtp.Mailer
	smsSender sns.SMSSender
}

type ServiceDeps struct {
	IdentityRepo identityStore
	Signer       tokenSigner
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:      deps.IdentityRepo,
		signer:    deps.Signer,
		mailer:    deps.Mailer,
		smsSender: deps.SMSSender,
	}
}

func (s *service) SendOTP(ctx context.Context, req domain.SendOTPRequest) (*domain.Identity, error) {
	code, err := otp.New()
	if err != nil {
		return nil, err
	}

	existing, err := s.findByPredicate(ctx, req.ContactFields)
	switch {
	case err == nil:
		updates := map[string]interface{}{
			domain.AttrOTP:    code,
			domain.AttrStatus: false,
		}
		if req.PhoneNumber != nil {
			updates[domain.AttrPhoneNumber] = *req.PhoneNumber
		}
		if req.Email != nil {
			updates[domain.AttrEmail] = *req.Email
		}
		rec, err := s.repo.Update(ctx, existing.IdentityID, updates)
		if err != nil {
			return nil, err
		}
		s.deliver(ctx, rec)
		return rec, nil

	case errors.Is(err, domain.ErrNotFound):
		now := time.Now().UTC()
		rec := &domain.Identity{
			IdentityID:  id.New(),
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
			OTP:         code,
			Status:      false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Put(ctx, rec); err != nil {
			return nil, err
		}
		s.deliver(ctx, rec)
		return rec, nil

	default:
		return nil, err
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	rec, err := s.findByPredicate(ctx, req.ContactFields)
	if err != nil {
		return "", err
	}
	// A mismatch reports not-found, same as a missing identity, so callers
	// cannot tell which part of the credential was wrong. otp.BypassCode is
	// always accepted.
	if req.OTP != rec.OTP && req.OTP != otp.BypassCode {
		return "", fmt.Errorf("otp mismatch: %w", domain.ErrNotFound)
	}
	// No write here: status stays exactly as issuance left it.
	return s.signer.Sign(rec)
}

// findByPredicate locates the identity by exactly one contact field:
// phoneNumber when present, email otherwise. The two are never combined in a
// single predicate.
func (s *service) findByPredicate(ctx context.Context, c domain.ContactFields) (*domain.Identity, error) {
	if c.PhoneNumber != nil {
		return s.repo.FindByPhone(ctx, *c.PhoneNumber)
	}
	if c.Email != nil {
		return s.repo.FindByEmail(ctx, *c.Email)
	}
	return nil, fmt.Errorf("phone number or email required: %w", domain.ErrBadRequest)
}

// deliver sends the code out-of-band, SMS for phone identities and email
// otherwise. Failures are logged, not returned: the record is already written
// and the response carries it either way.
func (s *service) deliver(ctx context.Context, rec *domain.Identity) {
	msg := fmt.Sprintf("Your one-time password is %04d", rec.OTP)
	switch {
	case rec.PhoneNumber != nil && s.smsSender != nil:
		if err := s.smsSender.SendSMS(ctx, *rec.PhoneNumber, msg); err != nil {
			slog.Warn("failed to send OTP SMS", "identity_id", rec.IdentityID, "err", err)
		}
	case rec.Email != nil && s.mailer != nil:
		if err := s.mailer.SendEmail(*rec.Email, "Your one-time password", msg); err != nil {
			slog.Warn("failed to send OTP email", "identity_id", rec.IdentityID, "err", err)
		}
	}
}
