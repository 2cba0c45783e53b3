package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
)

// Service serves profile reads for authenticated users.
type Service struct {
	repo *Repository
}

// NewService builds a users service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: repo}, nil
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return FromModel(user), nil
}
