package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/web-visions/energy-solar-backend/api/responses"
	"github.com/web-visions/energy-solar-backend/api/validators"
	leadsvc "github.com/web-visions/energy-solar-backend/internal/leads"
	"github.com/web-visions/energy-solar-backend/pkg/enums"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
	"github.com/web-visions/energy-solar-backend/pkg/pagination"
)

type leadsService interface {
	Create(ctx context.Context, input leadsvc.CreateInput) (*leadsvc.LeadDTO, error)
	List(ctx context.Context, query leadsvc.ListQuery) ([]leadsvc.LeadDTO, pagination.Meta, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) (*leadsvc.LeadDTO, error)
}

type leadCreateRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string  `json:"phone" validate:"required"`
	City    *string `json:"city,omitempty"`
	Message *string `json:"message,omitempty"`
	Source  *string `json:"source,omitempty"`
}

// LeadCreate records an inbound enquiry; no authentication required.
func LeadCreate(svc leadsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		var payload leadCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Create(r.Context(), leadsvc.CreateInput{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			City:    payload.City,
			Message: payload.Message,
			Source:  payload.Source,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

// AdminLeadsList returns enquiries matching the admin filters.
func AdminLeadsList(svc leadsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := leadsvc.ListQuery{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Page:   page,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseLeadStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			query.Status = &status
		}

		leads, meta, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"leads": leads, "meta": meta})
	}
}

type leadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeadStatusUpdate moves an enquiry along the follow-up pipeline.
func LeadStatusUpdate(svc leadsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}

		leadID, err := validators.ParamUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.UpdateStatus(r.Context(), leadID, enums.LeadStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}
