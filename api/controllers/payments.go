package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/api/middleware"
	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	paymentsvc "github.com/web-visions/energy-solar-backend/internal/payments"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

type paymentsService interface {
	CreateIntent(ctx context.Context, userID uuid.UUID, input paymentsvc.CreateIntentInput) (*paymentsvc.Intent, error)
	VerifyAndPlace(ctx context.Context, userID uuid.UUID, input paymentsvc.VerifyInput) (*models.Order, error)
}

type keyProvider interface {
	KeyID() string
}

// PaymentKey exposes the gateway's publishable key for the checkout widget.
func PaymentKey(gateway keyProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"key": gateway.KeyID()})
	}
}

type paymentOrderRequest struct {
	CityID *uuid.UUID `json:"cityId,omitempty"`
}

// PaymentOrderCreate prices the cart and registers a gateway order.
func PaymentOrderCreate(svc paymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload paymentOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		intent, err := svc.CreateIntent(r.Context(), middleware.UserIDFromContext(r.Context()), paymentsvc.CreateIntentInput{
			CityID: payload.CityID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, intent)
	}
}

type paymentVerifyRequest struct {
	GatewayOrderID   string                `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string                `json:"razorpay_payment_id" validate:"required"`
	GatewaySignature string                `json:"razorpay_signature" validate:"required"`
	Shipping         types.ShippingDetails `json:"shipping" validate:"required"`
	Notes            *string               `json:"notes,omitempty"`
}

// PaymentVerify validates the gateway callback and places the paid order.
func PaymentVerify(svc paymentsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload paymentVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.VerifyAndPlace(r.Context(), middleware.UserIDFromContext(r.Context()), paymentsvc.VerifyInput{
			GatewayOrderID:   payload.GatewayOrderID,
			GatewayPaymentID: payload.GatewayPaymentID,
			GatewaySignature: payload.GatewaySignature,
			Shipping:         payload.Shipping,
			Notes:            payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}
