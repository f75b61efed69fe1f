package http

import (
	"context"

	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/infrastructure/smtp"
	"github.com/otp-auth-api/internal/infrastructure/sns"
)

// IdentityRepository is the minimal interface the router requires from the
// identity store. Contact lookups are single-field by design: phone and email
// are never combined in one predicate.
type IdentityRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Put(ctx context.Context, i *domain.Identity) error
	Update(ctx context.Context, identityID string, updates map[string]interface{}) (*domain.Identity, error)
	Get(ctx context.Context, identityID string) (*domain.Identity, error)
	DeleteReturning(ctx context.Context, identityID string) (*domain.Identity, error)
	ScanAll(ctx context.Context) ([]domain.PublicIdentity, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	IdentityRepo IdentityRepository
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender
	JWTProvider  *jwtinfra.Provider
}
