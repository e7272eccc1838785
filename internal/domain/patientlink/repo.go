package patientlink

import "context"

// Repository reads and writes patient link records. Lookup methods return
// (nil, nil) when no record matches, so callers can chain fallbacks without
// sentinel-error plumbing.
type Repository interface {
	GetBySubject(ctx context.Context, subject string) (*PatientLink, error)
	// FirstByEmail returns the oldest record with the given email. The
	// email lookup is best-effort and may be ambiguous; only the first
	// match is used.
	FirstByEmail(ctx context.Context, email string) (*PatientLink, error)
	// Upsert is used by the operator CLI only; the request path never
	// writes.
	Upsert(ctx context.Context, link *PatientLink) error
}
