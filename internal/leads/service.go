package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/pkg/db/models"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

// CreateInput carries an inbound enquiry from the public site.
type CreateInput struct {
	Name    string
	Email   *string
	Phone   string
	City    *string
	Message *string
	Source  *string
}

// LeadDTO is the transport shape for one enquiry.
type LeadDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Email     *string          `json:"email,omitempty"`
	Phone     string           `json:"phone"`
	City      *string          `json:"city,omitempty"`
	Message   *string          `json:"message,omitempty"`
	Source    *string          `json:"source,omitempty"`
	Status    enums.LeadStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ServiceParams groups dependencies for the leads service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

// Service captures sales enquiries and tracks their follow-up status.
type Service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds a leads service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

// Create records an enquiry; no authentication required.
func (s *Service) Create(ctx context.Context, input CreateInput) (*LeadDTO, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	lead := &models.Lead{
		ID:      uuid.New(),
		Name:    name,
		Email:   input.Email,
		Phone:   phone,
		City:    input.City,
		Message: input.Message,
		Source:  input.Source,
		Status:  enums.LeadStatusNew,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating lead")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"lead_id": lead.ID.String()})
	s.logg.Info(ctx, "lead captured")
	return fromModel(lead), nil
}

// List returns enquiries matching the admin filters, newest first.
func (s *Service) List(ctx context.Context, query ListQuery) ([]LeadDTO, pagination.Meta, error) {
	leads, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing leads")
	}
	out := make([]LeadDTO, 0, len(leads))
	for i := range leads {
		out = append(out, *fromModel(&leads[i]))
	}
	return out, pagination.NewMeta(query.Page, total), nil
}

// UpdateStatus moves an enquiry along the follow-up pipeline.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) (*LeadDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown lead status "+status.String())
	}
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading lead")
	}
	if lead == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	lead.Status = status
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating lead")
	}
	return fromModel(lead), nil
}

func fromModel(lead *models.Lead) *LeadDTO {
	return &LeadDTO{
		ID:        lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		City:      lead.City,
		Message:   lead.Message,
		Source:    lead.Source,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
	}
}
