package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wakehub/wakehub/internal/logging"
	"github.com/wakehub/wakehub/internal/mac"
	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/wol"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// okResponse is the JSON body for replies that carry no data.
type okResponse struct {
	OK bool `json:"ok"`
}

// addResponse is the reply for a successful device registration.
type addResponse struct {
	OK     bool            `json:"ok"`
	Device registry.Device `json:"device"`
}

// wakeRequest is the body of POST /api/wake.
type wakeRequest struct {
	MAC  string `json:"mac"`
	Port int    `json:"port"`
}

// probeRequest is the body of POST /api/probe.
type probeRequest struct {
	Address        string  `json:"address"`
	Port           int     `json:"port"`
	TimeoutSeconds float64 `json:"timeout"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/devices", s.handleListDevices)
	mux.HandleFunc("POST /api/devices", s.handleAddDevice)
	mux.HandleFunc("DELETE /api/devices/{mac}", s.handleDeleteDevice)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/wake", s.handleWake)
	mux.HandleFunc("POST /api/probe", s.handleProbe)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/status/ws", s.handleStatusStream)

	return s.logRequests(mux)
}

// logRequests traces every request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.LogRequest(r.RemoteAddr, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleAddDevice(w http.ResponseWriter, r *http.Request) {
	var candidate registry.Device
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	device, err := s.store.Add(candidate)
	switch {
	case errors.Is(err, mac.ErrInvalidMAC):
		respondError(w, http.StatusBadRequest, "invalid MAC address")
		return
	case errors.Is(err, registry.ErrDuplicate):
		respondError(w, http.StatusConflict, "device already registered")
		return
	case err != nil:
		logging.Error("Failed to add device", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save device")
		return
	}

	respondJSON(w, http.StatusCreated, addResponse{OK: true, Device: device})
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	err := s.store.Remove(r.PathValue("mac"))
	switch {
	case errors.Is(err, registry.ErrNotFound):
		respondError(w, http.StatusNotFound, "device not found")
		return
	case err != nil:
		logging.Error("Failed to delete device", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save device")
		return
	}

	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleWake(w http.ResponseWriter, r *http.Request) {
	var req wakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !mac.Valid(req.MAC) {
		respondError(w, http.StatusBadRequest, "invalid MAC address")
		return
	}

	port := req.Port
	if port == 0 {
		port = s.cfg.WakePort
	}

	// Use the registered broadcast address when the device is known,
	// otherwise fall back to the global broadcast.
	destination := wol.DefaultBroadcast
	if device, ok := s.store.Find(req.MAC); ok && device.BroadcastIP != "" {
		destination = device.BroadcastIP
	}

	if err := s.sender.Send(req.MAC, destination, port); err != nil {
		logging.Error("Failed to send magic packet",
			zap.String("mac", req.MAC),
			zap.Error(err),
		)
		respondError(w, http.StatusBadGateway, "failed to send magic packet")
		return
	}

	respondJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	var req probeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Address == "" {
		respondError(w, http.StatusBadRequest, "address is required")
		return
	}

	port := req.Port
	if port == 0 {
		port = s.cfg.Probe.Port
	}

	prober := s.prober
	if req.TimeoutSeconds > 0 {
		prober = probe.NewProber(time.Duration(req.TimeoutSeconds * float64(time.Second)))
	}

	respondJSON(w, http.StatusOK, prober.Probe(r.Context(), req.Address, port))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.pool.ProbeAll(r.Context(), s.store.List()))
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
