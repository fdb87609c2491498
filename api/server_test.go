package api_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/incognitojam/minepad/api"
	"github.com/incognitojam/minepad/game"
	"github.com/incognitojam/minepad/pad/config"
	"github.com/incognitojam/minepad/pad/controller"
)

type fixture struct {
	registry *controller.Registry
	world    *game.World
	server   *api.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	registry := controller.NewRegistry(logger)
	world := game.NewWorld(registry, logger)
	registry.RegisterListener(world)

	cfg := config.Default()
	cfg.Hostname = "pad.example.com"
	return &fixture{
		registry: registry,
		world:    world,
		server:   api.NewServer(registry, world, cfg, logger),
	}
}

func (f *fixture) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestPlayerJoin(t *testing.T) {
	f := newFixture(t)
	player := uuid.New()

	rec := f.do(t, "POST", "/api/players/"+player.String())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	result := decode[api.JoinResult](t, rec)
	if result.Player != player {
		t.Errorf("expected player %s, got %s", player, result.Player)
	}
	if len(result.Code) != controller.CodeLength {
		t.Errorf("expected %d character code, got %q", controller.CodeLength, result.Code)
	}
	if result.Existed {
		t.Error("fresh join reported existed")
	}
	wantURL := fmt.Sprintf("http://pad.example.com:8080/?code=%s", result.Code)
	if result.URL != wantURL {
		t.Errorf("expected pair URL %q, got %q", wantURL, result.URL)
	}

	// Joining again returns the same code with 200 and existed set.
	rec = f.do(t, "POST", "/api/players/"+player.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on rejoin, got %d", rec.Code)
	}
	rejoin := decode[api.JoinResult](t, rec)
	if !rejoin.Existed {
		t.Error("rejoin did not report existed")
	}
	if rejoin.Code != result.Code {
		t.Errorf("rejoin changed code from %q to %q", result.Code, rejoin.Code)
	}
}

func TestPlayerJoinInvalidID(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, "POST", "/api/players/not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlayerQuit(t *testing.T) {
	f := newFixture(t)
	player := uuid.New()
	f.do(t, "POST", "/api/players/"+player.String())

	rec := f.do(t, "DELETE", "/api/players/"+player.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if _, ok := f.registry.SessionByPlayer(player); ok {
		t.Error("session survived player quit")
	}

	// Quitting again is a 404.
	rec = f.do(t, "DELETE", "/api/players/"+player.String())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second quit, got %d", rec.Code)
	}
}

func TestListSessions(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "GET", "/api/sessions")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	empty := decode[struct {
		Count    int               `json:"count"`
		Sessions []api.SessionInfo `json:"sessions"`
	}](t, rec)
	if empty.Count != 0 || len(empty.Sessions) != 0 {
		t.Fatalf("expected empty listing, got %+v", empty)
	}

	first := uuid.New()
	second := uuid.New()
	f.do(t, "POST", "/api/players/"+first.String())
	f.do(t, "POST", "/api/players/"+second.String())

	rec = f.do(t, "GET", "/api/sessions")
	listing := decode[struct {
		Count    int               `json:"count"`
		Sessions []api.SessionInfo `json:"sessions"`
	}](t, rec)
	if listing.Count != 2 {
		t.Fatalf("expected 2 sessions, got %d", listing.Count)
	}
	for _, info := range listing.Sessions {
		if info.Connected {
			t.Errorf("session %s reported connected with no pad bound", info.Code)
		}
	}
}

func TestRemoveSessionByCode(t *testing.T) {
	f := newFixture(t)
	player := uuid.New()
	rec := f.do(t, "POST", "/api/players/"+player.String())
	result := decode[api.JoinResult](t, rec)

	rec = f.do(t, "DELETE", "/api/sessions/"+result.Code)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := f.registry.SessionByCode(result.Code); ok {
		t.Error("session still resolvable after removal")
	}

	rec = f.do(t, "DELETE", "/api/sessions/"+result.Code)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for removed session, got %d", rec.Code)
	}
}

func TestConfigExposesSocketPort(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, "GET", "/api/config")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[struct {
		Hostname   string `json:"hostname"`
		SocketPort int    `json:"socket_port"`
	}](t, rec)
	if body.Hostname != "pad.example.com" {
		t.Errorf("unexpected hostname %q", body.Hostname)
	}
	if body.SocketPort != 8081 {
		t.Errorf("unexpected socket port %d", body.SocketPort)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, "GET", "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body: %v", body)
	}
}
