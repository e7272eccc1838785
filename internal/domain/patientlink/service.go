package patientlink

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotLinked is returned when a verified identity has no usable patient
// link: the user exists but was never associated with a provider record.
var ErrNotLinked = errors.New("no linked patient record")

type Service struct {
	links Repository
}

func NewService(links Repository) *Service {
	return &Service{links: links}
}

// Resolve maps a verified identity to the provider's patient id. Lookups run
// in order and short-circuit: a point read by subject, then (when email is
// known) a best-effort first-match read by email. At most two reads, no
// writes. Nothing resolved → ErrNotLinked.
func (s *Service) Resolve(ctx context.Context, subject, email string) (string, error) {
	lookups := []func(context.Context) (*PatientLink, error){
		func(ctx context.Context) (*PatientLink, error) {
			return s.links.GetBySubject(ctx, subject)
		},
		func(ctx context.Context) (*PatientLink, error) {
			if email == "" {
				return nil, nil
			}
			return s.links.FirstByEmail(ctx, email)
		},
	}

	for _, lookup := range lookups {
		link, err := lookup(ctx)
		if err != nil {
			return "", fmt.Errorf("patient link lookup: %w", err)
		}
		if link != nil && link.ExternalPatientID != nil && *link.ExternalPatientID != "" {
			return *link.ExternalPatientID, nil
		}
	}

	return "", ErrNotLinked
}

// Link upserts the association for a subject. Used by the operator CLI.
func (s *Service) Link(ctx context.Context, subject, email, externalPatientID string) error {
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if externalPatientID == "" {
		return fmt.Errorf("external patient id is required")
	}

	link := &PatientLink{
		Subject:           subject,
		ExternalPatientID: &externalPatientID,
	}
	if email != "" {
		link.Email = &email
	}
	return s.links.Upsert(ctx, link)
}
