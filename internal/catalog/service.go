package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

func errUnknownProductType(productType enums.ProductType) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+productType.String())
}

// CartSweeper removes every cart line that references a product.
type CartSweeper interface {
	RemoveProductEverywhere(ctx context.Context, productType enums.ProductType, productID uuid.UUID) error
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo    Repository
	Sweeper CartSweeper
	Logger  *logger.Logger
}

// Service serves catalog browsing and admin product removal.
type Service struct {
	repo    Repository
	sweeper CartSweeper
	logg    *logger.Logger
}

// NewService builds a catalog service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Sweeper == nil {
		return nil, errors.New("sweeper is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:    params.Repo,
		sweeper: params.Sweeper,
		logg:    params.Logger,
	}, nil
}

// ListProducts returns one page of a product family.
func (s *Service) ListProducts(ctx context.Context, productType enums.ProductType, query ListQuery) ([]Product, pagination.Meta, error) {
	if !productType.IsValid() {
		return nil, pagination.Meta{}, errUnknownProductType(productType)
	}
	products, total, err := s.repo.List(ctx, productType, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return products, pagination.NewMeta(query.Page, total), nil
}

// GetProduct returns a single product or NOT_FOUND.
func (s *Service) GetProduct(ctx context.Context, productType enums.ProductType, id uuid.UUID) (*Product, error) {
	if !productType.IsValid() {
		return nil, errUnknownProductType(productType)
	}
	product, err := s.repo.Get(ctx, productType, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// DeleteProduct removes a product and sweeps it from every cart.
func (s *Service) DeleteProduct(ctx context.Context, productType enums.ProductType, id uuid.UUID) error {
	if !productType.IsValid() {
		return errUnknownProductType(productType)
	}

	deleted, err := s.repo.Delete(ctx, productType, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := s.sweeper.RemoveProductEverywhere(ctx, productType, id); err != nil {
		// product row is already gone; carts self-heal on the next recompute
		s.logg.Error(ctx, "sweeping deleted product from carts", err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sweeping carts")
	}
	return nil
}

// ListBrands returns active brands ordered by name.
func (s *Service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing brands")
	}
	return brands, nil
}

// ListCategories returns active categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}
