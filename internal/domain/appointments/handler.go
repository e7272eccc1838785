package appointments

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careloop/portal-api/internal/domain/patientlink"
	"github.com/careloop/portal-api/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	resolver *auth.Resolver
	logger   zerolog.Logger
}

func NewHandler(svc *Service, resolver *auth.Resolver, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, resolver: resolver, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/me/appointments", h.ListUpcoming)
}

// ListUpcoming serves "get my upcoming appointments". Error classification
// for the caller: 401 no verified identity, 403 unauthorized patient_id
// override, 412 identity resolved but no linked record, 500 anything
// downstream. Internal detail is logged, never returned.
func (h *Handler) ListUpcoming(c echo.Context) error {
	ident, err := h.resolver.Resolve(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	items, err := h.svc.UpcomingForCaller(c.Request().Context(), ident, c.QueryParam("patient_id"))
	switch {
	case errors.Is(err, ErrOverrideForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "patient_id override requires staff role")
	case errors.Is(err, patientlink.ErrNotLinked):
		return echo.NewHTTPError(http.StatusPreconditionFailed, "no linked patient record")
	case err != nil:
		h.logger.Error().Err(err).Str("uid", ident.UID).Msg("appointments pipeline failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if items == nil {
		items = []Appointment{}
	}
	return c.JSON(http.StatusOK, ListResponse{Appointments: items})
}
