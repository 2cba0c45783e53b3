package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// ListQuery filters the admin lead listing.
type ListQuery struct {
	Status *enums.LeadStatus
	Search string
	Page   pagination.Params
}

// Repository handles lead persistence.
type Repository interface {
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, query ListQuery) ([]models.Lead, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a lead repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *repository) Update(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Lead{})
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.Normalize(query.Page)
	var leads []models.Lead
	err := q.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&leads).Error
	return leads, total, err
}
