package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/api/middleware"
	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	cartsvc "github.com/web-visions/energy-solar-backend/internal/cart"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
)

type cartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*cartsvc.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID uuid.UUID, productType enums.ProductType, productID uuid.UUID, quantity int) (*cartsvc.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productType enums.ProductType, productID uuid.UUID) (*cartsvc.Cart, error)
}

// CartFetch returns the caller's cart, creating an empty one on first read.
func CartFetch(svc cartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		cart, err := svc.GetCart(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

type cartAddRequest struct {
	ProductType    string    `json:"productType" validate:"required"`
	ProductID      uuid.UUID `json:"productId" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	WithOldBattery bool      `json:"withOldBattery"`
}

// CartAdd merges a product into the caller's cart.
func CartAdd(svc cartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productType, err := enums.ParseProductType(payload.ProductType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type"))
			return
		}

		cart, err := svc.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), cartsvc.AddItemInput{
			ProductType:    productType,
			ProductID:      payload.ProductID,
			Quantity:       payload.Quantity,
			WithOldBattery: payload.WithOldBattery,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartItemUpdate sets the quantity of one cart line.
func CartItemUpdate(svc cartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.UpdateItemQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), productType, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartItemRemove deletes one cart line.
func CartItemRemove(svc cartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
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

		cart, err := svc.RemoveItem(r.Context(), middleware.UserIDFromContext(r.Context()), productType, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}
