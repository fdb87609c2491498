package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/incognitojam/minepad/game"
	"github.com/incognitojam/minepad/pad/config"
	"github.com/incognitojam/minepad/pad/controller"
)

// Server is the REST API server for player and session management.
type Server struct {
	registry *controller.Registry
	world    *game.World
	cfg      config.Config
	logger   *slog.Logger
	router   *mux.Router
}

// SessionInfo is the operator view of one controller session.
type SessionInfo struct {
	Player    uuid.UUID `json:"player"`
	Code      string    `json:"code"`
	Connected bool      `json:"connected"`
}

// JoinResult is returned when a player joins and receives a pairing code.
type JoinResult struct {
	Player  uuid.UUID `json:"player"`
	Code    string    `json:"code"`
	URL     string    `json:"url"`
	Existed bool      `json:"existed"`
}

// NewServer creates the API server and wires its routes.
func NewServer(registry *controller.Registry, world *game.World, cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		registry: registry,
		world:    world,
		cfg:      cfg,
		logger:   logger,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Player-identity interface, driven by game-side join/quit events
	api.HandleFunc("/players/{id}", s.handlePlayerJoin).Methods("POST")
	api.HandleFunc("/players/{id}", s.handlePlayerQuit).Methods("DELETE")

	// Operator session management
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{code}", s.handleRemoveSession).Methods("DELETE")

	// The pad page reads the socket port from here instead of guessing it
	// from the page's own port.
	api.HandleFunc("/config", s.handleConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// The web pad page itself
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handlePlayerJoin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	_, session, existed, err := s.world.Join(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	respondJSON(w, status, JoinResult{
		Player:  id,
		Code:    session.Code(),
		URL:     s.cfg.PairURL(session.Code()),
		Existed: existed,
	})
}

func (s *Server) handlePlayerQuit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	if err := s.world.Quit(id); err != nil {
		if errors.Is(err, game.ErrPlayerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "player removed"})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.registry.Sessions()

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			Player:    session.Player(),
			Code:      session.Code(),
			Connected: session.Connected(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(infos),
		"sessions": infos,
	})
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	session, ok := s.registry.SessionByCode(code)
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	s.registry.RemoveSession(session, "")
	respondJSON(w, http.StatusOK, map[string]string{"message": "session removed"})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hostname":    s.cfg.Hostname,
		"socket_port": s.cfg.SocketPort,
	})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
