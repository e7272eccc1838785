package provider

import "encoding/json"

// Appointment is the scheduling provider's native record. Only the fields
// the normalizer extracts are modeled; location and practitioner are passed
// through opaquely.
type Appointment struct {
	ID             string          `json:"id"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	Unavailability bool            `json:"unavailability"`
	Pricing        *float64        `json:"pricing,omitempty"`
	Total          *float64        `json:"total,omitempty"`
	Note           string          `json:"note,omitempty"`
	Location       json.RawMessage `json:"location,omitempty"`
	Practitioner   json.RawMessage `json:"practitioner,omitempty"`
	Patients       []PatientEntry  `json:"patients,omitempty"`
}

// PatientEntry is one per-patient status entry nested in a raw appointment.
type PatientEntry struct {
	Status             *string  `json:"status,omitempty"`
	CancellationReason *string  `json:"cancellation_reason,omitempty"`
	CancellationRate   *float64 `json:"cancellation_rate,omitempty"`
}

type listResponse struct {
	Data []Appointment `json:"data"`
}
