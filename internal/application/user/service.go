package user

import (
	"context"

	"github.com/otp-auth-api/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.PublicIdentity, error)
	Get(ctx context.Context, identityID string) (*domain.PublicIdentity, error)
	Delete(ctx context.Context, identityID string) error
}

type identityStore interface {
	ScanAll(ctx context.Context) ([]domain.PublicIdentity, error)
	Get(ctx context.Context, identityID string) (*domain.Identity, error)
	DeleteReturning(ctx context.Context, identityID string) (*domain.Identity, error)
}

type service struct {
	repo identityStore
}

func NewService(repo identityStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.PublicIdentity, error) {
	return s.repo.ScanAll(ctx)
}

func (s *service) Get(ctx context.Context, identityID string) (*domain.PublicIdentity, error) {
	i, err := s.repo.Get(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return i.Public(), nil
}

func (s *service) Delete(ctx context.Context, identityID string) error {
	_, err := s.repo.DeleteReturning(ctx, identityID)
	return err
}
