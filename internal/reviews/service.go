package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// CreateInput carries a new product review.
type CreateInput struct {
	ProductType enums.ProductType
	ProductID   uuid.UUID
	Rating      int
	Comment     *string
}

// ReviewDTO is the transport shape for one review.
type ReviewDTO struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	ProductType enums.ProductType `json:"productType"`
	ProductID   uuid.UUID         `json:"productId"`
	Rating      int               `json:"rating"`
	Comment     *string           `json:"comment,omitempty"`
	IsApproved  bool              `json:"isApproved"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ServiceParams groups dependencies for the reviews service.
type ServiceParams struct {
	Repo     Repository
	Registry *catalog.Registry
	Logger   *logger.Logger
}

// Service owns product review submission and moderation.
type Service struct {
	repo     Repository
	registry *catalog.Registry
	logg     *logger.Logger
}

// NewService builds a reviews service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:     params.Repo,
		registry: params.Registry,
		logg:     params.Logger,
	}, nil
}

// Create stores one review per user per product, pending approval.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ReviewDTO, error) {
	if !input.ProductType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+input.ProductType.String())
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	info, err := s.registry.Resolve(ctx, input.ProductType, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product")
	}
	if info == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	review := &models.Review{
		ID:          uuid.New(),
		UserID:      userID,
		ProductType: input.ProductType,
		ProductID:   input.ProductID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "uq_reviews_user_product") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}
	return fromModel(review), nil
}

// ListForProduct returns the approved reviews for one product, newest first.
func (s *Service) ListForProduct(ctx context.Context, productType enums.ProductType, productID uuid.UUID) ([]ReviewDTO, error) {
	if !productType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+productType.String())
	}
	reviews, err := s.repo.ListApprovedForProduct(ctx, productType, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}
	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, *fromModel(&reviews[i]))
	}
	return out, nil
}

// ListAll returns every review for moderation, newest first.
func (s *Service) ListAll(ctx context.Context, page pagination.Params) ([]ReviewDTO, pagination.Meta, error) {
	reviews, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}
	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, *fromModel(&reviews[i]))
	}
	return out, pagination.NewMeta(page, total), nil
}

// SetApproval flips a review's moderation flag.
func (s *Service) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*ReviewDTO, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review")
	}
	if review == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	review.IsApproved = approved
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating review")
	}
	return fromModel(review), nil
}

// Delete removes a review outright.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting review")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

func fromModel(review *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:          review.ID,
		UserID:      review.UserID,
		ProductType: review.ProductType,
		ProductID:   review.ProductID,
		Rating:      review.Rating,
		Comment:     review.Comment,
		IsApproved:  review.IsApproved,
		CreatedAt:   review.CreatedAt,
	}
}
