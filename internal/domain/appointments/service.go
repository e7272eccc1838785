package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/portal-api/internal/platform/auth"
	"github.com/careloop/portal-api/internal/platform/provider"
)

// ErrOverrideForbidden is returned when a caller supplies an explicit
// patient id without carrying a role that authorizes reading other patients'
// appointments.
var ErrOverrideForbidden = errors.New("patient id override requires staff role")

// overrideRoles are the verified-claim roles allowed to query an arbitrary
// patient id.
var overrideRoles = []string{"staff", "admin"}

// ProviderAPI is the slice of the scheduling provider client the service
// needs.
type ProviderAPI interface {
	UpcomingAppointments(ctx context.Context, patientID string, after time.Time) ([]provider.Appointment, error)
}

// LinkResolver maps a verified identity to the provider's patient id.
type LinkResolver interface {
	Resolve(ctx context.Context, subject, email string) (string, error)
}

// Service orchestrates the pipeline behind "get my upcoming appointments":
// patient-id resolution, provider fetch, normalization. Each stage depends
// on the previous one's output, so they run strictly in sequence; any
// failure aborts the whole pipeline with no partial results.
type Service struct {
	links  LinkResolver
	api    ProviderAPI
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(links LinkResolver, api ProviderAPI, logger zerolog.Logger) *Service {
	return &Service{links: links, api: api, logger: logger, now: time.Now}
}

// UpcomingForCaller returns the caller's future appointments in normalized,
// start-ascending order.
//
// overridePatientID, when non-empty, bypasses the lookup store and queries
// that patient directly; it is only honored for identities carrying a staff
// or admin role.
func (s *Service) UpcomingForCaller(ctx context.Context, ident *auth.Identity, overridePatientID string) ([]Appointment, error) {
	patientID, err := s.resolvePatientID(ctx, ident, overridePatientID)
	if err != nil {
		return nil, err
	}

	raw, err := s.api.UpcomingAppointments(ctx, patientID, s.now())
	if err != nil {
		// Provider detail (including any response body) stays in the
		// server log; the caller sees only the internal classification.
		s.logger.Error().Err(err).
			Str("uid", ident.UID).
			Str("patient_id", patientID).
			Msg("provider fetch failed")
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}

	return Normalize(raw, s.logger), nil
}

func (s *Service) resolvePatientID(ctx context.Context, ident *auth.Identity, override string) (string, error) {
	if override != "" {
		if !ident.HasRole(overrideRoles...) {
			s.logger.Warn().
				Str("uid", ident.UID).
				Str("requested_patient_id", override).
				Msg("rejected patient id override")
			return "", ErrOverrideForbidden
		}
		return override, nil
	}
	return s.links.Resolve(ctx, ident.UID, ident.Email)
}
