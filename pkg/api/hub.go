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

package api

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/rs/zerolog"
)

const defaultBroadcastBuffer = 256

// Hub maintains the set of live feed clients and broadcasts monitor events
// to them. It implements pump.Observer.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, defaultBroadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.WithComponent("hub"),
	}
}

// Run serves registrations and broadcasts until ctx is canceled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()

			h.logger.Debug().Str("remote", client.remoteAddr()).Msg("WebSocket client registered")

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.logger.Warn().Str("remote", client.remoteAddr()).Msg("WebSocket client too slow, removing")
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Debug().Str("remote", client.remoteAddr()).Msg("WebSocket client unregistered")
	}
}

// Register adds a client. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client if the hub is still running.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func (h *Hub) HandleData(reading pump.Reading) {
	h.publish(pump.EventData, reading)
}

func (h *Hub) HandleAlarm(event pump.AlarmEvent) {
	h.publish(pump.EventAlarm, event)
}

func (h *Hub) HandleClear(event pump.ClearEvent) {
	h.publish(pump.EventClearAlarm, event)
}

// publish never blocks the sampling goroutine. Frames are dropped while
// the broadcast buffer is full.
func (h *Hub) publish(kind pump.EventKind, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(kind)).Msg("Error marshalling event for broadcast")
		return
	}

	frame, err := json.Marshal(Message{Type: kind, Payload: body})
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(kind)).Msg("Error marshalling frame for broadcast")
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn().Str("type", string(kind)).Msg("Broadcast buffer full, dropping frame")
	}
}
