package cities

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
)

// Repository exposes city reference-data reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cities repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns every serviceable city ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&cities).Error
	return cities, err
}

// FindByID loads one city; returns nil when it does not exist.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}
