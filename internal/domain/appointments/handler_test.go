package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careloop/portal-api/internal/domain/patientlink"
	"github.com/careloop/portal-api/internal/platform/auth"
	"github.com/careloop/portal-api/internal/platform/provider"
)

type staticVerifier struct {
	ident *auth.Identity
}

func (v *staticVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	if v.ident == nil {
		return nil, errors.New("invalid token")
	}
	return v.ident, nil
}

func newTestHandler(links LinkResolver, api ProviderAPI, verifier auth.TokenVerifier) (*Handler, *echo.Echo) {
	svc := newTestService(links, api)
	resolver := auth.NewResolver(verifier, zerolog.Nop())
	h := NewHandler(svc, resolver, zerolog.Nop())
	e := echo.New()
	return h, e
}

func request(e *echo.Echo, headers map[string]string, query string) (echo.Context, *httptest.ResponseRecorder) {
	target := "/api/v1/me/appointments"
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListUpcoming_Unauthenticated(t *testing.T) {
	h, e := newTestHandler(&mockLinks{}, &mockProvider{}, &staticVerifier{})
	c, _ := request(e, nil, "")

	err := h.ListUpcoming(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestListUpcoming_InvalidToken(t *testing.T) {
	h, e := newTestHandler(&mockLinks{}, &mockProvider{}, &staticVerifier{})
	c, _ := request(e, map[string]string{"Authorization": "Bearer garbage"}, "")

	err := h.ListUpcoming(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %v", err)
	}
}

func TestListUpcoming_NotLinked(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{err: patientlink.ErrNotLinked},
		&mockProvider{},
		&staticVerifier{ident: &auth.Identity{UID: "u1"}},
	)
	c, _ := request(e, map[string]string{"Authorization": "Bearer tok"}, "")

	err := h.ListUpcoming(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusPreconditionFailed {
		t.Errorf("expected 412, got %v", err)
	}
}

func TestListUpcoming_OverrideForbidden(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{patientID: "p-own"},
		&mockProvider{},
		&staticVerifier{ident: &auth.Identity{UID: "u1", Roles: []string{"patient"}}},
	)
	c, _ := request(e, map[string]string{"Authorization": "Bearer tok"}, "patient_id=p-other")

	err := h.ListUpcoming(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestListUpcoming_ProviderFailureIsOpaque(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{patientID: "p42"},
		&mockProvider{err: errors.New("status 502: secret upstream detail")},
		&staticVerifier{ident: &auth.Identity{UID: "u1"}},
	)
	c, _ := request(e, map[string]string{"Authorization": "Bearer tok"}, "")

	err := h.ListUpcoming(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	if msg, _ := he.Message.(string); msg != "internal error" {
		t.Errorf("internal detail must not leak, got %q", msg)
	}
}

func TestListUpcoming_Success(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{patientID: "p42"},
		&mockProvider{appts: []provider.Appointment{
			{ID: "a2", Start: "2030-03-05T10:00:00Z"},
			{ID: "a1", Start: "2030-03-01T09:00:00Z"},
		}},
		&staticVerifier{ident: &auth.Identity{UID: "u1"}},
	)
	c, rec := request(e, map[string]string{"Authorization": "Bearer tok"}, "")

	if err := h.ListUpcoming(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(body.Appointments))
	}
	if body.Appointments[0].ID != "a1" || body.Appointments[1].ID != "a2" {
		t.Errorf("expected start-ascending order, got [%s %s]",
			body.Appointments[0].ID, body.Appointments[1].ID)
	}
}

func TestListUpcoming_EmptyListNotNull(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{patientID: "p42"},
		&mockProvider{},
		&staticVerifier{ident: &auth.Identity{UID: "u1"}},
	)
	c, rec := request(e, map[string]string{"Authorization": "Bearer tok"}, "")

	if err := h.ListUpcoming(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(m["appointments"]) != "[]" {
		t.Errorf("expected empty array, got %s", m["appointments"])
	}
}

func TestListUpcoming_TrustedContextIdentity(t *testing.T) {
	h, e := newTestHandler(
		&mockLinks{patientID: "p42"},
		&mockProvider{},
		&staticVerifier{},
	)
	c, rec := request(e, nil, "")
	ctx := auth.WithIdentity(c.Request().Context(), &auth.Identity{UID: "u1"})
	c.SetRequest(c.Request().WithContext(ctx))

	if err := h.ListUpcoming(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 via trusted context identity, got %d", rec.Code)
	}
}
