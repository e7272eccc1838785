package patientlink

import (
	"time"

	"github.com/google/uuid"
)

// PatientLink maps to the patient_link table: the stored association between
// a verified identity subject and the scheduling provider's patient id.
// At most one record exists per subject; email is a best-effort secondary
// key and may match several records.
type PatientLink struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Subject           string    `db:"subject" json:"subject"`
	Email             *string   `db:"email" json:"email,omitempty"`
	ExternalPatientID *string   `db:"external_patient_id" json:"external_patient_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
