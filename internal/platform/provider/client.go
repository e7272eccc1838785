package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoCredential is returned when the client was constructed without an API
// credential. It is checked before any network call so a configuration fault
// never turns into a provider round trip.
var ErrNoCredential = errors.New("provider API credential is not configured")

// Client talks to the scheduling provider's REST API. The credential is
// resolved once at process startup and immutable afterwards. A single
// attempt per call: the endpoint is an idempotent GET, so retrying is left
// to the caller.
type Client struct {
	rest   *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{rest: rest, apiKey: apiKey}
}

// UpcomingAppointments fetches the patient's non-archived appointments
// starting strictly after the given instant. A non-2xx response is an error
// carrying the provider's body for server-side diagnostics; callers must not
// surface it to clients.
func (c *Client) UpcomingAppointments(ctx context.Context, patientID string, after time.Time) ([]Appointment, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredential
	}

	var out listResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetQueryParams(map[string]string{
			"patientId":        patientID,
			"start_gt":         after.UTC().Format(time.RFC3339),
			"include_archived": "false",
		}).
		SetResult(&out).
		Get("/appointments")
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return out.Data, nil
}
