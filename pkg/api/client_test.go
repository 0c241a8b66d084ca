package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, zaptest.NewLogger(t), opts...)
}

func TestValidateCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/validate-code" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var req ValidateCodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ChatID != "42" || req.Code != "NOVA-ABC1234" {
			t.Errorf("unexpected body: %+v", req)
		}
		_, _ = io.WriteString(w, `{"valid":true,"expiresAt":"2025-01-01T00:00:00Z"}`)
	})

	res, err := c.ValidateCode(context.Background(), 42, "NOVA-ABC1234")
	if err != nil {
		t.Fatalf("ValidateCode failed: %v", err)
	}
	if !res.Valid || res.Plan != "monthly" || res.Duration != 30 {
		t.Errorf("defaults not applied: %+v", res)
	}
}

func TestUnavailableOnStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.CheckAccess(context.Background(), 1)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status error, got %#v", err)
	}
}

func TestUnavailableOnTransport(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, zaptest.NewLogger(t))

	_, err := c.Stats(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUnavailableOnBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	if _, err := c.CommandsInfo(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUserSessionNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/user/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `null`)
	})

	s, err := c.UserSession(context.Background(), 7)
	if err != nil {
		t.Fatalf("UserSession failed: %v", err)
	}
	if s != nil || s.Connected() {
		t.Errorf("expected nil session, got %+v", s)
	}
}

func TestUpdateWhatsAppSettingsPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/5/whatsapp-settings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	off := false
	res, err := c.UpdateWhatsAppSettings(context.Background(), 5, SettingsUpdate{
		PrivateMode:  &off,
		AllowedUsers: []string{},
	})
	if err != nil || !res.Success {
		t.Fatalf("UpdateWhatsAppSettings: %v %+v", err, res)
	}
	if _, ok := got["silent_mode"]; ok {
		t.Error("silent_mode must be omitted")
	}
	if got["private_mode"] != false {
		t.Errorf("private_mode = %v", got["private_mode"])
	}
	users, ok := got["allowed_users"].([]any)
	if !ok || len(users) != 0 {
		t.Errorf("allowed_users = %#v, want empty list", got["allowed_users"])
	}
}

func TestUpgradeForce(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("force") != "true" {
			t.Errorf("force flag missing: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"success":true,"version":2.1}`)
	})

	res, err := c.Upgrade(context.Background(), true)
	if err != nil {
		t.Fatalf("Upgrade failed: %v", err)
	}
	if res.Version != "2.1" {
		t.Errorf("Version = %q", res.Version)
	}
}

func TestActiveUsersFlexibleIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"chat_id":"12","first_name":"A"},{"chat_id":34,"first_name":"B"}]`)
	})

	users, err := c.ActiveUsers(context.Background())
	if err != nil {
		t.Fatalf("ActiveUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].ChatID != "12" || users[1].ChatID != "34" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestObserver(t *testing.T) {
	var ops []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, WithObserver(func(op, outcome string, _ time.Duration) {
		ops = append(ops, op+":"+outcome)
	}))

	_, _ = c.Health(context.Background())
	if len(ops) != 1 || ops[0] != "health:error" {
		t.Errorf("observer calls = %v", ops)
	}
}

func TestSessionDaysSince(t *testing.T) {
	s := &Session{CreatedAt: "2025-01-01T00:00:00Z"}
	now := time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)
	if got := s.DaysSince(now); got != 10 {
		t.Errorf("DaysSince = %d, want 10", got)
	}
	if got := (&Session{CreatedAt: "bogus"}).DaysSince(now); got != 0 {
		t.Errorf("DaysSince(bogus) = %d, want 0", got)
	}
}
