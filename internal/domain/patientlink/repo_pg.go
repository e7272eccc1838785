package patientlink

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const linkCols = `id, subject, email, external_patient_id, created_at, updated_at`

func scanLink(row pgx.Row) (*PatientLink, error) {
	var l PatientLink
	err := row.Scan(&l.ID, &l.Subject, &l.Email, &l.ExternalPatientID, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repoPG) GetBySubject(ctx context.Context, subject string) (*PatientLink, error) {
	return scanLink(r.pool.QueryRow(ctx,
		`SELECT `+linkCols+` FROM patient_link WHERE subject = $1`, subject))
}

func (r *repoPG) FirstByEmail(ctx context.Context, email string) (*PatientLink, error) {
	return scanLink(r.pool.QueryRow(ctx,
		`SELECT `+linkCols+` FROM patient_link WHERE email = $1 ORDER BY created_at LIMIT 1`, email))
}

func (r *repoPG) Upsert(ctx context.Context, link *PatientLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient_link (id, subject, email, external_patient_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (subject) DO UPDATE
		SET email = EXCLUDED.email,
			external_patient_id = EXCLUDED.external_patient_id,
			updated_at = NOW()`,
		link.ID, link.Subject, link.Email, link.ExternalPatientID)
	return err
}
