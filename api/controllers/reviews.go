package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/api/middleware"
	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	reviewsvc "github.com/web-visions/energy-solar-backend/internal/reviews"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

type reviewsService interface {
	Create(ctx context.Context, userID uuid.UUID, input reviewsvc.CreateInput) (*reviewsvc.ReviewDTO, error)
	ListForProduct(ctx context.Context, productType enums.ProductType, productID uuid.UUID) ([]reviewsvc.ReviewDTO, error)
	ListAll(ctx context.Context, page pagination.Params) ([]reviewsvc.ReviewDTO, pagination.Meta, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*reviewsvc.ReviewDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewCreateRequest struct {
	ProductType string    `json:"productType" validate:"required"`
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
	Comment     *string   `json:"comment,omitempty"`
}

// ReviewCreate stores one review per user per product.
func ReviewCreate(svc reviewsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		var payload reviewCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productType, err := enums.ParseProductType(payload.ProductType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type"))
			return
		}

		review, err := svc.Create(r.Context(), middleware.UserIDFromContext(r.Context()), reviewsvc.CreateInput{
			ProductType: productType,
			ProductID:   payload.ProductID,
			Rating:      payload.Rating,
			Comment:     payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// ReviewsForProduct returns the approved reviews for one product.
func ReviewsForProduct(svc reviewsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
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

		reviews, err := svc.ListForProduct(r.Context(), productType, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reviews)
	}
}

// AdminReviewsList returns every review for moderation.
func AdminReviewsList(svc reviewsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviews, meta, err := svc.ListAll(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"reviews": reviews, "meta": meta})
	}
}

type reviewApprovalRequest struct {
	Approved bool `json:"approved"`
}

// ReviewApprove flips a review's moderation flag.
func ReviewApprove(svc reviewsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := validators.ParamUUID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewApprovalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.SetApproval(r.Context(), reviewID, payload.Approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

// ReviewDelete removes a review outright.
func ReviewDelete(svc reviewsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := validators.ParamUUID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), reviewID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
