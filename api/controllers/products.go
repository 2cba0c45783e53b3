package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

type catalogService interface {
	ListProducts(ctx context.Context, productType enums.ProductType, query catalog.ListQuery) ([]catalog.Product, pagination.Meta, error)
	GetProduct(ctx context.Context, productType enums.ProductType, id uuid.UUID) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, productType enums.ProductType, id uuid.UUID) error
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type productListResponse struct {
	Products []catalog.Product `json:"products"`
	Meta     pagination.Meta   `json:"meta"`
}

// ProductsList returns one page of a product family.
func ProductsList(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productType, err := parseProductTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := catalog.ListQuery{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("brandId")); raw != "" {
			brandID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid brand id"))
				return
			}
			query.BrandID = &brandID
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
			categoryID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id"))
				return
			}
			query.CategoryID = &categoryID
		}

		products, meta, err := svc.ListProducts(r.Context(), productType, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productListResponse{Products: products, Meta: meta})
	}
}

// ProductFetch returns one product.
func ProductFetch(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productType, err := parseProductTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productType, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes a product and sweeps it from every cart.
func ProductDelete(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productType, err := parseProductTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParamUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productType, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// BrandsList returns the active brands.
func BrandsList(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBrandResponses(brands))
	}
}

// CategoriesList returns the active categories.
func CategoriesList(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCategoryResponses(categories))
	}
}

type brandResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL *string   `json:"logoUrl,omitempty"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func newBrandResponses(brands []models.Brand) []brandResponse {
	out := make([]brandResponse, 0, len(brands))
	for _, brand := range brands {
		out = append(out, brandResponse{ID: brand.ID, Name: brand.Name, LogoURL: brand.LogoURL})
	}
	return out
}

func newCategoryResponses(categories []models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryResponse{ID: category.ID, Name: category.Name})
	}
	return out
}

func parseProductTypeParam(r *http.Request) (enums.ProductType, error) {
	raw := chi.URLParam(r, "productType")
	productType, err := enums.ParseProductType(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
	}
	return productType, nil
}
