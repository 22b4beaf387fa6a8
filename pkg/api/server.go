// Package api 通过 HTTP 暴露 Player Service
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/decker502/slingmath/pkg/player"
)

// Server handles Player API requests
type Server struct {
	svc       player.Service
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server backed by svc
func NewServer(svc player.Service) *Server {
	return &Server{
		svc:       svc,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Post("/player", s.handleCreatePlayer)
		r.Get("/player/{id}", s.handleGetPlayer)
		r.Get("/question/{level}", s.handleQuestion)
		r.Post("/answer", s.handleAnswer)
		r.Post("/select-skin/{id}/{skin}", s.handleSelectSkin)
		r.Post("/unlock-skin/{id}/{skin}", s.handleUnlockSkin)
	})

	return r
}

// GET /api/
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "SlingMath API"})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

type createPlayerRequest struct {
	PlayerID string `json:"playerId"`
}

// POST /api/player
func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, player.CodeValidation, "invalid JSON")
			return
		}
	}

	p, err := s.svc.CreateOrGetPlayer(r.Context(), req.PlayerID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// GET /api/player/{id}
func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// GET /api/question/{level}
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, player.CodeInvalidLevel, "level must be an integer")
		return
	}

	q, err := s.svc.GetQuestion(r.Context(), level)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

// POST /api/answer
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req player.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, player.CodeValidation, "invalid JSON")
		return
	}
	if req.PlayerID == "" {
		s.writeError(w, http.StatusUnprocessableEntity, player.CodeValidation, "playerId is required")
		return
	}

	res, err := s.svc.SubmitAnswer(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// POST /api/select-skin/{id}/{skin}
func (s *Server) handleSelectSkin(w http.ResponseWriter, r *http.Request) {
	skin, err := strconv.Atoi(chi.URLParam(r, "skin"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, player.CodeValidation, "skin must be an integer")
		return
	}

	p, err := s.svc.SelectSkin(r.Context(), chi.URLParam(r, "id"), skin)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// POST /api/unlock-skin/{id}/{skin}
func (s *Server) handleUnlockSkin(w http.ResponseWriter, r *http.Request) {
	unlocker, ok := s.svc.(player.SkinUnlocker)
	if !ok {
		s.writeError(w, http.StatusNotImplemented, player.CodeServerError, "skin unlocking is not supported")
		return
	}
	skin, err := strconv.Atoi(chi.URLParam(r, "skin"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, player.CodeValidation, "skin must be an integer")
		return
	}

	p, err := unlocker.UnlockSkin(r.Context(), chi.URLParam(r, "id"), skin)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// corsMiddleware 允许浏览器前端跨域访问
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a structured error response
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeServiceError maps a Player Service error to an HTTP response
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, status := player.ErrorCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Printf("request %s %s failed (request_id=%s): %v",
			r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	}
	s.writeError(w, status, code, err.Error())
}
