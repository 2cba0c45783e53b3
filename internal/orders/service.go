package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
	"github.com/web-visions/energy-solar-backend/pkg/types"
)

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// cartEngine is the slice of the cart service checkout needs.
type cartEngine interface {
	ItemsTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CartItem, error)
	ClearTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

// cityLoader resolves the delivery charge for a destination city.
type cityLoader interface {
	DeliveryCharge(ctx context.Context, cityID *uuid.UUID) (decimal.Decimal, error)
}

// MaterializeInput freezes one checkout into an order inside a transaction.
type MaterializeInput struct {
	UserID           uuid.UUID
	Shipping         types.ShippingDetails
	PaymentMethod    enums.PaymentMethod
	PaymentStatus    enums.PaymentStatus
	GatewayOrderID   *string
	GatewayPaymentID *string
	GatewaySignature *string
	DeliveryCharge   decimal.Decimal
	Notes            *string
}

// PlaceInput carries a cash-on-delivery checkout request.
type PlaceInput struct {
	Shipping types.ShippingDetails
	Notes    *string
}

// UpdateStatusInput carries an admin order mutation.
type UpdateStatusInput struct {
	Status        enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	Notes         *string
	DeliveryDate  *time.Time
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo     Repository
	Registry *catalog.Registry
	Cart     cartEngine
	Cities   cityLoader
	Tx       txRunner
	Logger   *logger.Logger
}

// Service materializes checkouts into immutable orders and serves reads.
type Service struct {
	repo     Repository
	registry *catalog.Registry
	cart     cartEngine
	cities   cityLoader
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds an orders service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if params.Cart == nil {
		return nil, errors.New("cart engine is required")
	}
	if params.Cities == nil {
		return nil, errors.New("city loader is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		repo:     params.Repo,
		registry: params.Registry,
		cart:     params.Cart,
		cities:   params.Cities,
		tx:       params.Tx,
		logg:     params.Logger,
	}, nil
}

// PlaceCOD materializes the cart as a cash-on-delivery order.
func (s *Service) PlaceCOD(ctx context.Context, userID uuid.UUID, input PlaceInput) (*models.Order, error) {
	deliveryCharge, err := s.cities.DeliveryCharge(ctx, input.Shipping.CityID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err = s.Materialize(ctx, tx, MaterializeInput{
			UserID:         userID,
			Shipping:       input.Shipping,
			PaymentMethod:  enums.PaymentMethodCOD,
			PaymentStatus:  enums.PaymentStatusPending,
			DeliveryCharge: deliveryCharge,
			Notes:          input.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Materialize freezes the user's cart into an order and clears the cart.
// It must run inside the caller's transaction so the cart read, the order
// write and the cart clear observe one snapshot and a failed checkout
// leaves everything untouched.
func (s *Service) Materialize(ctx context.Context, tx *gorm.DB, input MaterializeInput) (*models.Order, error) {
	repo := s.repo.WithTx(tx)
	registry := s.registry.WithTx(tx)

	items, err := s.cart.ItemsTx(ctx, tx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]models.OrderItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		info, err := registry.Resolve(ctx, item.ProductType, item.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product")
		}
		if info == nil {
			// checkout freezes the whole cart or nothing
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s is no longer available", item.ProductID).
				WithDetails(map[string]string{
					"productType": string(item.ProductType),
					"productId":   item.ProductID.String(),
				})
		}

		price := info.OrderPrice()
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, models.OrderItem{
			ID:             uuid.New(),
			ProductType:    item.ProductType,
			ProductID:      item.ProductID,
			Name:           info.Name,
			Image:          info.Image,
			Quantity:       item.Quantity,
			WithOldBattery: item.WithOldBattery,
			Price:          price,
			TotalPrice:     lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	number, err := s.nextOrderNumber(ctx, repo, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:               uuid.New(),
		OrderNumber:      number,
		UserID:           input.UserID,
		Shipping:         input.Shipping,
		PaymentMethod:    input.PaymentMethod,
		PaymentStatus:    input.PaymentStatus,
		GatewayOrderID:   input.GatewayOrderID,
		GatewayPaymentID: input.GatewayPaymentID,
		GatewaySignature: input.GatewaySignature,
		Subtotal:         subtotal,
		DeliveryCharge:   input.DeliveryCharge,
		Tax:              decimal.Zero,
		Total:            subtotal.Add(input.DeliveryCharge),
		Status:           enums.OrderStatusPending,
		Notes:            input.Notes,
		Items:            lines,
	}
	if err := repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	if err := s.cart.ClearTx(ctx, tx, input.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// nextOrderNumber derives ORD{yy}{mm}{dd}{seq} from the day's order count.
// The unique index on order_number backstops concurrent checkouts.
func (s *Service) nextOrderNumber(ctx context.Context, repo Repository, now time.Time) (string, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	count, err := repo.CountCreatedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting orders")
	}
	return fmt.Sprintf("ORD%s%03d", now.Format("060102"), count+1), nil
}

// GetForUser returns one order scoped to its owner; staff see every order.
func (s *Service) GetForUser(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.UserID != userID && !role.IsAdmin() {
		// hide other users' orders entirely
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// ListForUser returns the caller's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, pagination.Meta, error) {
	orders, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders, pagination.NewMeta(page, total), nil
}

// ListAll returns every order matching the admin filters.
func (s *Service) ListAll(ctx context.Context, query ListQuery) ([]models.Order, pagination.Meta, error) {
	orders, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return orders, pagination.NewMeta(query.Page, total), nil
}

// UpdateStatus overwrites the mutable order fields. The status write is
// unconditional; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status "+input.Status.String())
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status "+input.PaymentStatus.String())
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order.Status = input.Status
	if input.PaymentStatus != nil {
		order.PaymentStatus = *input.PaymentStatus
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order")
	}
	return order, nil
}
