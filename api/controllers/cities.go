package controllers

import (
	"context"
	"net/http"

	"github.com/web-visions/energy-solar-backend/api/responses"
	citysvc "github.com/web-visions/energy-solar-backend/internal/cities"
	pkgerrors "github.com/web-visions/energy-solar-backend/pkg/errors"
	"github.com/web-visions/energy-solar-backend/pkg/logger"
)

type citiesService interface {
	List(ctx context.Context) ([]citysvc.CityDTO, error)
}

// CitiesList returns the serviceable cities with their delivery charges.
func CitiesList(svc citiesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cities service unavailable"))
			return
		}

		cities, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cities)
	}
}
