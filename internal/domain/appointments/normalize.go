package appointments

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/portal-api/internal/platform/provider"
)

// Normalize reshapes provider records into the stable client schema, ordered
// ascending by start time. It is a pure function of its input: identical raw
// lists yield identical output.
//
// A record whose start does not parse as RFC3339 is a provider data-quality
// defect; it is logged and dropped rather than mis-sorted into the result.
func Normalize(raw []provider.Appointment, logger zerolog.Logger) []Appointment {
	type keyed struct {
		appt  Appointment
		start time.Time
	}

	items := make([]keyed, 0, len(raw))
	for _, r := range raw {
		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			logger.Warn().
				Str("appointment_id", r.ID).
				Str("start", r.Start).
				Msg("dropping appointment with unparseable start time")
			continue
		}
		items = append(items, keyed{appt: normalizeOne(r), start: start})
	}

	// Stable: records with equal start keep their provider order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].start.Before(items[j].start)
	})

	out := make([]Appointment, len(items))
	for i, it := range items {
		out[i] = it.appt
	}
	return out
}

func normalizeOne(r provider.Appointment) Appointment {
	a := Appointment{
		ID:                 r.ID,
		Start:              r.Start,
		End:                r.End,
		IsUnavailableBlock: r.Unavailability,
		Pricing:            r.Pricing,
		Total:              r.Total,
		Note:               r.Note,
		Location:           r.Location,
		Practitioner:       r.Practitioner,
	}

	// Status fields come from the first per-patient entry; an empty list
	// leaves them null.
	if len(r.Patients) > 0 {
		first := r.Patients[0]
		a.Status = first.Status
		a.CancellationReason = first.CancellationReason
		a.CancellationRate = first.CancellationRate
	}

	return a
}
