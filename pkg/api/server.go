/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api pkg/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	httpx "github.com/carverauto/pumpradar/pkg/http"
	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/carverauto/pumpradar/pkg/metrics"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// APIServer serves pump status, configuration, graph data, the live feed
// and Prometheus metrics.
type APIServer struct {
	monitor        MonitorService
	history        metrics.ReadingStore
	metricsHandler http.Handler
	hub            *Hub
	router         *mux.Router
	upgrader       websocket.Upgrader
	logger         zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Option configures an APIServer.
type Option func(*APIServer)

// WithHistory backs /api/graph with recent readings.
func WithHistory(store metrics.ReadingStore) Option {
	return func(s *APIServer) {
		s.history = store
	}
}

// WithMetricsHandler replaces the default promhttp handler.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *APIServer) {
		s.metricsHandler = h
	}
}

func NewAPIServer(monitor MonitorService, opts ...Option) *APIServer {
	s := &APIServer{
		monitor:        monitor,
		metricsHandler: promhttp.Handler(),
		hub:            NewHub(),
		router:         mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.WithComponent("api"),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.LoggingMiddleware)

	s.router.HandleFunc("/api/status", s.getStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/config", s.getConfig).Methods(http.MethodGet)
	s.router.HandleFunc("/api/graph", s.getGraph).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWS).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metricsHandler).Methods(http.MethodGet)
}

// Handler returns the routed handler for an http.Server. CORS wraps the
// router so preflight requests never reach method matching.
func (s *APIServer) Handler() http.Handler {
	return httpx.CommonMiddleware(s.router)
}

// Hub returns the live feed hub so it can be subscribed to a monitor.
func (s *APIServer) Hub() *Hub {
	return s.hub
}

// Start runs the live feed hub.
func (s *APIServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go s.hub.Run(ctx)

	return nil
}

// Stop disconnects live feed clients.
func (s *APIServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()

	select {
	case <-s.hub.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *APIServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	cfg := s.monitor.Config()

	s.writeJSON(w, PumpStatus{
		PumpID:      cfg.Pump.ID,
		Name:        cfg.Pump.Name,
		ControlMode: cfg.Pump.ControlMode,
		Status:      cfg.Pump.Status,
		Channel:     cfg.AnalogInput.Channel,
		Description: cfg.AnalogInput.Description,
		Value:       s.monitor.Value(),
		Setpoint:    cfg.AnalogInput.Setpoint,
		Units:       cfg.AnalogInput.Units,
		Thresholds:  cfg.AnalogInput.Thresholds,
		LastLevel:   s.monitor.LastLevel(),
		Running:     s.monitor.Running(),
		Timestamp:   time.Now().UTC(),
	})
}

func (s *APIServer) getConfig(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.monitor.Config())
}

func (s *APIServer) getGraph(w http.ResponseWriter, _ *http.Request) {
	cfg := s.monitor.Config()

	data := GraphData{
		Settings:   cfg.Graph,
		Units:      cfg.AnalogInput.Units,
		Setpoint:   cfg.AnalogInput.Setpoint,
		Thresholds: cfg.AnalogInput.Thresholds,
	}

	if s.history != nil {
		data.Points = s.history.Points()
	}

	s.writeJSON(w, data)
}

func (s *APIServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := NewClient(s.hub, conn)
	if !s.hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
