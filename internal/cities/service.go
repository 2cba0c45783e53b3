package cities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
)

// CityDTO is the transport shape for a serviceable city.
type CityDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	State          string          `json:"state"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Service serves city reference data and the checkout delivery charge.
type Service struct {
	repo *Repository
}

// NewService builds a cities service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: repo}, nil
}

// List returns the serviceable cities.
func (s *Service) List(ctx context.Context) ([]CityDTO, error) {
	cities, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing cities")
	}
	out := make([]CityDTO, 0, len(cities))
	for _, city := range cities {
		out = append(out, fromModel(city))
	}
	return out, nil
}

// DeliveryCharge resolves the charge for a destination city. A missing or
// inactive city charges nothing rather than blocking the checkout.
func (s *Service) DeliveryCharge(ctx context.Context, cityID *uuid.UUID) (decimal.Decimal, error) {
	if cityID == nil {
		return decimal.Zero, nil
	}
	city, err := s.repo.FindByID(ctx, *cityID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading city")
	}
	if city == nil || !city.IsActive {
		return decimal.Zero, nil
	}
	return city.DeliveryCharge, nil
}

func fromModel(city models.City) CityDTO {
	return CityDTO{
		ID:             city.ID,
		Name:           city.Name,
		State:          city.State,
		DeliveryCharge: city.DeliveryCharge,
		CreatedAt:      city.CreatedAt,
	}
}
