package appointments

import "encoding/json"

// Appointment is the stable appointment shape returned to clients, decoupled
// from the provider's native schema. It is derived on every call and never
// persisted.
type Appointment struct {
	ID                 string          `json:"id"`
	Start              string          `json:"start"`
	End                string          `json:"end"`
	IsUnavailableBlock bool            `json:"isUnavailableBlock"`
	Pricing            *float64        `json:"pricing"`
	Total              *float64        `json:"total"`
	Status             *string         `json:"status"`
	CancellationReason *string         `json:"cancellationReason"`
	CancellationRate   *float64        `json:"cancellationRate"`
	Note               string          `json:"note"`
	Location           json.RawMessage `json:"location"`
	Practitioner       json.RawMessage `json:"practitioner"`
}

// ListResponse is the success envelope for the upcoming-appointments
// operation.
type ListResponse struct {
	Appointments []Appointment `json:"appointments"`
}
