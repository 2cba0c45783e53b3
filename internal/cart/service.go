package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/internal/catalog"
	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
)

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Item is the API view of one cart line with resolved pricing.
type Item struct {
	ID             uuid.UUID         `json:"id"`
	ProductType    enums.ProductType `json:"productType"`
	ProductID      uuid.UUID         `json:"productId"`
	Name           string            `json:"name"`
	Image          *string           `json:"image,omitempty"`
	Quantity       int               `json:"quantity"`
	WithOldBattery bool              `json:"withOldBattery"`
	UnitPrice      decimal.Decimal   `json:"unitPrice"`
	LineTotal      decimal.Decimal   `json:"lineTotal"`
	Available      bool              `json:"available"`
}

// Cart is the API view of a user's cart.
type Cart struct {
	ID          uuid.UUID       `json:"id"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AddItemInput carries a validated add-to-cart request.
type AddItemInput struct {
	ProductType    enums.ProductType
	ProductID      uuid.UUID
	Quantity       int
	WithOldBattery bool
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo     Repository
	Registry *catalog.Registry
	Tx       txRunner
	Logger   *logger.Logger
}

// Service owns the single mutable cart per user.
type Service struct {
	repo     Repository
	registry *catalog.Registry
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds a cart service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Registry == nil {
		return nil, errors.New("registry is required")
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
		tx:       params.Tx,
		logg:     params.Logger,
	}, nil
}

// GetCart returns the user's cart, creating an empty one on first touch.
func (s *Service) GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	record, err := s.getOrCreate(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, s.repo, s.registry, record)
}

// AddItem merges a product into the cart. An existing line for the same
// product absorbs the quantity and takes the new exchange flag.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*Cart, error) {
	if !input.ProductType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+input.ProductType.String())
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	info, err := s.registry.Resolve(ctx, input.ProductType, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product")
	}
	if info == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	var view *Cart
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		registry := s.registry.WithTx(tx)

		record, err := s.getOrCreate(ctx, repo, userID)
		if err != nil {
			return err
		}

		existing, err := repo.FindItem(ctx, record.ID, input.ProductType, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
		}
		if existing != nil {
			existing.Quantity += input.Quantity
			existing.WithOldBattery = input.WithOldBattery
			if err := repo.UpdateItem(ctx, existing); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
			}
		} else {
			item := &models.CartItem{
				ID:             uuid.New(),
				CartID:         record.ID,
				ProductType:    input.ProductType,
				ProductID:      input.ProductID,
				Quantity:       input.Quantity,
				WithOldBattery: input.WithOldBattery,
			}
			if err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart line")
			}
		}

		if _, err := s.recompute(ctx, repo, registry, record.ID); err != nil {
			return err
		}
		view, err = s.loadView(ctx, repo, registry, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateItemQuantity sets the quantity of the cart line holding one product.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID uuid.UUID, productType enums.ProductType, productID uuid.UUID, quantity int) (*Cart, error) {
	if !productType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+productType.String())
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var view *Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		registry := s.registry.WithTx(tx)

		record, err := repo.FindByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if record == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
		}

		item, err := repo.FindItem(ctx, record.ID, productType, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
		}
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		item.Quantity = quantity
		if err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
		}

		if _, err := s.recompute(ctx, repo, registry, record.ID); err != nil {
			return err
		}
		view, err = s.loadView(ctx, repo, registry, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem deletes the cart line holding one product.
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, productType enums.ProductType, productID uuid.UUID) (*Cart, error) {
	if !productType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type "+productType.String())
	}

	var view *Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		registry := s.registry.WithTx(tx)

		record, err := repo.FindByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if record == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart is empty")
		}

		item, err := repo.FindItem(ctx, record.ID, productType, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
		}
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		if err := repo.DeleteItem(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
		}

		if _, err := s.recompute(ctx, repo, registry, record.ID); err != nil {
			return err
		}
		view, err = s.loadView(ctx, repo, registry, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Clear removes every line from the user's cart.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := repo.FindByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if record == nil {
			return nil
		}
		if err := repo.DeleteItems(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		if err := repo.UpdateTotal(ctx, record.ID, decimal.Zero); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resetting cart total")
		}
		return nil
	})
}

// ClearTx clears the cart inside an already-open transaction.
func (s *Service) ClearTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record == nil {
		return nil
	}
	if err := repo.DeleteItems(ctx, record.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return repo.UpdateTotal(ctx, record.ID, decimal.Zero)
}

// Subtotal recomputes the cart subtotal from live catalog prices.
func (s *Service) Subtotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record == nil {
		return decimal.Zero, nil
	}
	return s.computeSubtotal(ctx, s.repo, s.registry, record.ID)
}

// Items returns the raw cart lines for checkout.
func (s *Service) Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items(ctx, s.repo, userID)
}

// ItemsTx reads the cart lines inside an already-open transaction so the
// freeze and the clear see the same lines.
func (s *Service) ItemsTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items(ctx, s.repo.WithTx(tx), userID)
}

func (s *Service) items(ctx context.Context, repo Repository, userID uuid.UUID) ([]models.CartItem, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record == nil {
		return nil, nil
	}
	items, err := repo.ListItems(ctx, record.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart lines")
	}
	return items, nil
}

// RemoveProductEverywhere sweeps a product out of every cart and
// recomputes the affected totals. Failures are aggregated so one broken
// cart does not stop the sweep.
func (s *Service) RemoveProductEverywhere(ctx context.Context, productType enums.ProductType, productID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		registry := s.registry.WithTx(tx)

		cartIDs, err := repo.DeleteItemsForProduct(ctx, productType, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sweeping cart lines")
		}

		var errs error
		for _, cartID := range cartIDs {
			if _, err := s.recompute(ctx, repo, registry, cartID); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		return errs
	})
}

func (s *Service) getOrCreate(ctx context.Context, repo Repository, userID uuid.UUID) (*models.Cart, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record != nil {
		return record, nil
	}
	record = &models.Cart{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: decimal.Zero,
	}
	if err := repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return record, nil
}

func (s *Service) computeSubtotal(ctx context.Context, repo Repository, registry *catalog.Registry, cartID uuid.UUID) (decimal.Decimal, error) {
	items, err := repo.ListItems(ctx, cartID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart lines")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		info, err := registry.Resolve(ctx, item.ProductType, item.ProductID)
		if err != nil {
			return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product")
		}
		// dangling lines price at zero
		subtotal = subtotal.Add(info.CartPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal, nil
}

func (s *Service) recompute(ctx context.Context, repo Repository, registry *catalog.Registry, cartID uuid.UUID) (decimal.Decimal, error) {
	subtotal, err := s.computeSubtotal(ctx, repo, registry, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := repo.UpdateTotal(ctx, cartID, subtotal); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart total")
	}
	return subtotal, nil
}

func (s *Service) loadView(ctx context.Context, repo Repository, registry *catalog.Registry, userID uuid.UUID) (*Cart, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart disappeared")
	}
	return s.buildView(ctx, repo, registry, record)
}

func (s *Service) buildView(ctx context.Context, repo Repository, registry *catalog.Registry, record *models.Cart) (*Cart, error) {
	items, err := repo.ListItems(ctx, record.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart lines")
	}

	view := &Cart{
		ID:          record.ID,
		Items:       make([]Item, 0, len(items)),
		TotalAmount: record.TotalAmount,
		UpdatedAt:   record.UpdatedAt,
	}
	for _, item := range items {
		info, err := registry.Resolve(ctx, item.ProductType, item.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving product")
		}

		line := Item{
			ID:             item.ID,
			ProductType:    item.ProductType,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			WithOldBattery: item.WithOldBattery,
			UnitPrice:      info.CartPrice(),
			Available:      info != nil,
		}
		if info != nil {
			line.Name = info.Name
			line.Image = info.Image
		}
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, line)
	}
	return view, nil
}
