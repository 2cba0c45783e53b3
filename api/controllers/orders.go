package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/api/middleware"
	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	ordersvc "github.com/web-visions/energy-solar-backend/internal/orders"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

type ordersService interface {
	PlaceCOD(ctx context.Context, userID uuid.UUID, input ordersvc.PlaceInput) (*models.Order, error)
	GetForUser(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, pagination.Meta, error)
	ListAll(ctx context.Context, query ordersvc.ListQuery) ([]models.Order, pagination.Meta, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, input ordersvc.UpdateStatusInput) (*models.Order, error)
}

type placeOrderRequest struct {
	Shipping types.ShippingDetails `json:"shipping" validate:"required"`
	Notes    *string               `json:"notes,omitempty"`
}

// OrderPlace materializes the caller's cart as a cash-on-delivery order.
func OrderPlace(svc ordersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceCOD(r.Context(), middleware.UserIDFromContext(r.Context()), ordersvc.PlaceInput{
			Shipping: payload.Shipping,
			Notes:    payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

// MyOrders lists the caller's orders, newest first.
func MyOrders(svc ordersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, meta, err := svc.ListForUser(r.Context(), middleware.UserIDFromContext(r.Context()), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderListResponse{Orders: newOrderResponses(orders), Meta: meta})
	}
}

// OrderFetch returns one order scoped to its owner; staff see every order.
func OrderFetch(svc ordersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParamUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		order, err := svc.GetForUser(ctx, middleware.UserIDFromContext(ctx), middleware.RoleFromContext(ctx), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// AdminOrdersList returns every order matching the admin filters.
func AdminOrdersList(svc ordersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := ordersvc.ListQuery{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			query.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("paymentStatus")); raw != "" {
			status, err := enums.ParsePaymentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
				return
			}
			query.PaymentStatus = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("paymentMethod")); raw != "" {
			method, err := enums.ParsePaymentMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			query.PaymentMethod = &method
		}

		orders, meta, err := svc.ListAll(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderListResponse{Orders: newOrderResponses(orders), Meta: meta})
	}
}

type orderStatusRequest struct {
	Status        string  `json:"status" validate:"required"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	DeliveryDate  *string `json:"deliveryDate,omitempty"`
}

// OrderStatusUpdate overwrites the mutable order fields.
func OrderStatusUpdate(svc ordersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParamUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.UpdateStatusInput{
			Status: enums.OrderStatus(payload.Status),
			Notes:  payload.Notes,
		}
		if payload.PaymentStatus != nil {
			status := enums.PaymentStatus(*payload.PaymentStatus)
			input.PaymentStatus = &status
		}
		if payload.DeliveryDate != nil {
			parsed, err := time.Parse(time.RFC3339, *payload.DeliveryDate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery date"))
				return
			}
			input.DeliveryDate = &parsed
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

type orderResponse struct {
	ID               uuid.UUID             `json:"id"`
	OrderNumber      string                `json:"orderNumber"`
	UserID           uuid.UUID             `json:"userId"`
	Shipping         types.ShippingDetails `json:"shipping"`
	PaymentMethod    enums.PaymentMethod   `json:"paymentMethod"`
	PaymentStatus    enums.PaymentStatus   `json:"paymentStatus"`
	GatewayOrderID   *string               `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID *string               `json:"gatewayPaymentId,omitempty"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	DeliveryCharge   decimal.Decimal       `json:"deliveryCharge"`
	Tax              decimal.Decimal       `json:"tax"`
	Total            decimal.Decimal       `json:"total"`
	Status           enums.OrderStatus     `json:"status"`
	Notes            *string               `json:"notes,omitempty"`
	DeliveryDate     *time.Time            `json:"deliveryDate,omitempty"`
	Items            []orderItemResponse   `json:"items"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type orderItemResponse struct {
	ID             uuid.UUID         `json:"id"`
	ProductType    enums.ProductType `json:"productType"`
	ProductID      uuid.UUID         `json:"productId"`
	Name           string            `json:"name"`
	Image          *string           `json:"image,omitempty"`
	Quantity       int               `json:"quantity"`
	WithOldBattery bool              `json:"withOldBattery"`
	Price          decimal.Decimal   `json:"price"`
	TotalPrice     decimal.Decimal   `json:"totalPrice"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:             item.ID,
			ProductType:    item.ProductType,
			ProductID:      item.ProductID,
			Name:           item.Name,
			Image:          item.Image,
			Quantity:       item.Quantity,
			WithOldBattery: item.WithOldBattery,
			Price:          item.Price,
			TotalPrice:     item.TotalPrice,
		})
	}

	return orderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		UserID:           order.UserID,
		Shipping:         order.Shipping,
		PaymentMethod:    order.PaymentMethod,
		PaymentStatus:    order.PaymentStatus,
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: order.GatewayPaymentID,
		Subtotal:         order.Subtotal,
		DeliveryCharge:   order.DeliveryCharge,
		Tax:              order.Tax,
		Total:            order.Total,
		Status:           order.Status,
		Notes:            order.Notes,
		DeliveryDate:     order.DeliveryDate,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}

func newOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return out
}
