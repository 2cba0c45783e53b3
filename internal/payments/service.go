package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/internal/orders"
	"github.com/web-visions/energy-solar-backend/pkg/db"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/razorpay"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// gateway is the slice of the payment provider this service needs.
type gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*razorpay.Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	KeyID() string
	Currency() string
}

// cartEngine reads the live cart for amount checks.
type cartEngine interface {
	Subtotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

// cityLoader resolves the delivery charge for a destination city.
type cityLoader interface {
	DeliveryCharge(ctx context.Context, cityID *uuid.UUID) (decimal.Decimal, error)
}

// materializer freezes the cart into an order inside a transaction.
type materializer interface {
	Materialize(ctx context.Context, tx *gorm.DB, input orders.MaterializeInput) (*models.Order, error)
}

// CreateIntentInput carries a checkout initiation request.
type CreateIntentInput struct {
	CityID *uuid.UUID
}

// Intent is the gateway handle handed to the checkout widget.
type Intent struct {
	GatewayOrderID string          `json:"gatewayOrderId"`
	Amount         decimal.Decimal `json:"amount"`
	AmountPaise    int64           `json:"amountPaise"`
	Currency       string          `json:"currency"`
	KeyID          string          `json:"keyId"`
}

// VerifyInput carries the gateway callback plus the shipping details
// needed to materialize the order.
type VerifyInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Shipping         types.ShippingDetails
	Notes            *string
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	Repo    Repository
	Gateway gateway
	Cart    cartEngine
	Cities  cityLoader
	Orders  materializer
	Tx      txRunner
	Logger  *logger.Logger
}

// Service runs the two-phase online checkout against the gateway.
type Service struct {
	repo    Repository
	gateway gateway
	cart    cartEngine
	cities  cityLoader
	orders  materializer
	tx      txRunner
	logg    *logger.Logger
}

// NewService builds a payments service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if params.Cart == nil {
		return nil, errors.New("cart engine is required")
	}
	if params.Cities == nil {
		return nil, errors.New("city loader is required")
	}
	if params.Orders == nil {
		return nil, errors.New("order materializer is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:    params.Repo,
		gateway: params.Gateway,
		cart:    params.Cart,
		cities:  params.Cities,
		orders:  params.Orders,
		tx:      params.Tx,
		logg:    params.Logger,
	}, nil
}

// CreateIntent prices the cart, registers a gateway order and snapshots
// the amount for later verification.
func (s *Service) CreateIntent(ctx context.Context, userID uuid.UUID, input CreateIntentInput) (*Intent, error) {
	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	subtotal, err := s.cart.Subtotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	deliveryCharge, err := s.cities.DeliveryCharge(ctx, input.CityID)
	if err != nil {
		return nil, err
	}

	amount := subtotal.Add(deliveryCharge)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart total must be positive")
	}

	receipt := "rcpt_" + uuid.NewString()
	gatewayOrder, err := s.gateway.CreateOrder(ctx, amount, receipt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating gateway order")
	}

	intent := &models.PaymentIntent{
		ID:             uuid.New(),
		UserID:         userID,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         amount,
		DeliveryCharge: deliveryCharge,
		CityID:         input.CityID,
		Currency:       gatewayOrder.Currency,
		Receipt:        receipt,
		Status:         enums.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, intent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting payment intent")
	}

	return &Intent{
		GatewayOrderID: gatewayOrder.ID,
		Amount:         amount,
		AmountPaise:    gatewayOrder.Amount,
		Currency:       gatewayOrder.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// VerifyAndPlace validates the gateway callback, cross-checks the cart
// amount against the stored intent and materializes the paid order.
func (s *Service) VerifyAndPlace(ctx context.Context, userID uuid.UUID, input VerifyInput) (*models.Order, error) {
	intent, err := s.repo.FindByGatewayOrderID(ctx, input.GatewayOrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment intent")
	}
	if intent == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment intent not found")
	}
	if intent.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment intent belongs to another user")
	}
	if intent.Status == enums.PaymentStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment already processed")
	}

	// a bad signature is a rejected payment proof, not a failed login
	if !s.gateway.VerifyPaymentSignature(input.GatewayOrderID, input.GatewayPaymentID, input.GatewaySignature) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment signature")
	}

	subtotal, err := s.cart.Subtotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	expected := subtotal.Add(intent.DeliveryCharge)
	if !expected.Equal(intent.Amount) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed since the payment was created").
			WithDetails(map[string]string{
				"paidAmount":    intent.Amount.String(),
				"currentAmount": expected.String(),
			})
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err = s.orders.Materialize(ctx, tx, orders.MaterializeInput{
			UserID:           userID,
			Shipping:         input.Shipping,
			PaymentMethod:    enums.PaymentMethodOnline,
			PaymentStatus:    enums.PaymentStatusPaid,
			GatewayOrderID:   &intent.GatewayOrderID,
			GatewayPaymentID: &input.GatewayPaymentID,
			GatewaySignature: &input.GatewaySignature,
			DeliveryCharge:   intent.DeliveryCharge,
			Notes:            input.Notes,
		})
		if err != nil {
			return err
		}

		intent.Status = enums.PaymentStatusPaid
		if err := repo.Update(ctx, intent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking intent paid")
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "uq_orders_gateway_payment") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment already processed")
		}
		return nil, err
	}
	return order, nil
}
