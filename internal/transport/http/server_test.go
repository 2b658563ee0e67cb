package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lexidice/internal/app"
	"lexidice/internal/config"
)

type fakeDict map[string]bool

func (d fakeDict) Contains(word string) bool { return d[strings.ToLower(word)] }

func newTestServer(t *testing.T) (*httptest.Server, *app.SessionHub) {
	t.Helper()
	cfg := &config.Config{
		Game: config.GameConfig{
			SessionCodeLength: 4,
			StartDelay:        time.Second,
			RateLimitRPS:      1000,
			RateLimitBurst:    1000,
		},
		Oracle: config.OracleConfig{Timeout: time.Second},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := app.NewSessionHub(cfg, fakeDict{}, app.Oracles{}, logger)
	t.Cleanup(hub.Close)

	srv := NewServer(cfg, hub, logger)
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return ts, hub
}

func decodeResponse(t *testing.T, resp *http.Response) Response {
	t.Helper()
	defer resp.Body.Close()
	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return r
}

func TestCreateAndGetSession(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	created := decodeResponse(t, resp)
	if !created.Success {
		t.Fatalf("create failed: %+v", created.Error)
	}

	data, _ := json.Marshal(created.Data)
	var payload CreateSessionResponse
	json.Unmarshal(data, &payload)
	if len(payload.SessionCode) != 4 {
		t.Fatalf("session code = %q, want 4 characters", payload.SessionCode)
	}
	if !strings.Contains(payload.InviteLink, "/join/"+payload.SessionCode) {
		t.Errorf("invite link = %q", payload.InviteLink)
	}

	resp, err = http.Get(ts.URL + "/api/sessions/" + payload.SessionCode)
	if err != nil {
		t.Fatal(err)
	}
	got := decodeResponse(t, resp)
	if !got.Success {
		t.Fatalf("get failed: %+v", got.Error)
	}

	data, _ = json.Marshal(got.Data)
	var info GetSessionResponse
	json.Unmarshal(data, &info)
	if info.SessionCode != payload.SessionCode || !info.CanJoin {
		t.Errorf("session info = %+v", info)
	}
}

func TestGetSessionNotFoundHints(t *testing.T) {
	ts, hub := newTestServer(t)

	// On an idle server the hint says there are no sessions at all.
	resp, err := http.Get(ts.URL + "/api/sessions/ZZZZ")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeResponse(t, resp)
	if !strings.Contains(body.Error.Hint, "no active sessions") {
		t.Errorf("idle-server hint = %q", body.Error.Hint)
	}

	// With sessions around, a miss reads as a wrong code.
	if _, err := hub.CreateSession(); err != nil {
		t.Fatal(err)
	}
	resp, err = http.Get(ts.URL + "/api/sessions/ZZZZ")
	if err != nil {
		t.Fatal(err)
	}
	body = decodeResponse(t, resp)
	if !strings.Contains(body.Error.Hint, "Check the code") {
		t.Errorf("wrong-code hint = %q", body.Error.Hint)
	}
}

func TestSessionExists(t *testing.T) {
	ts, hub := newTestServer(t)
	session, err := hub.CreateSession()
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		code string
		want bool
	}{
		{session.Code(), true},
		{strings.ToLower(session.Code()), true},
		{"ZZZZ", false},
	} {
		resp, err := http.Get(ts.URL + "/api/sessions/" + tt.code + "/exists")
		if err != nil {
			t.Fatal(err)
		}
		body := decodeResponse(t, resp)
		data, _ := json.Marshal(body.Data)
		var exists SessionExistsResponse
		json.Unmarshal(data, &exists)
		if exists.Exists != tt.want {
			t.Errorf("exists(%q) = %v, want %v", tt.code, exists.Exists, tt.want)
		}
	}
}

func TestHealthAndStats(t *testing.T) {
	ts, hub := newTestServer(t)
	if _, err := hub.CreateSession(); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	if body := decodeResponse(t, resp); !body.Success {
		t.Errorf("health failed: %+v", body.Error)
	}

	resp, err = http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatal(err)
	}
	body := decodeResponse(t, resp)
	data, _ := json.Marshal(body.Data)
	var stats StatsResponse
	json.Unmarshal(data, &stats)
	if stats.ActiveSessions != 1 {
		t.Errorf("active sessions = %d, want 1", stats.ActiveSessions)
	}
}

func TestRateLimitRejectsBursts(t *testing.T) {
	cfg := &config.Config{
		Game: config.GameConfig{
			SessionCodeLength: 4,
			RateLimitRPS:      1,
			RateLimitBurst:    2,
		},
		Oracle: config.OracleConfig{Timeout: time.Second},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := app.NewSessionHub(cfg, fakeDict{}, app.Oracles{}, logger)
	t.Cleanup(hub.Close)
	srv := NewServer(cfg, hub, logger)
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)

	limited := false
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst of requests was never rate limited")
	}
}
