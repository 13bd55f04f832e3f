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
	"encoding/json"
	"time"

	"github.com/carverauto/pumpradar/pkg/pump"
)

// PumpStatus is the body of GET /api/status.
type PumpStatus struct {
	PumpID      string          `json:"pump_id"`
	Name        string          `json:"name"`
	ControlMode string          `json:"control_mode"`
	Status      string          `json:"status"`
	Channel     string          `json:"channel"`
	Description string          `json:"description"`
	Value       float64         `json:"value"`
	Setpoint    float64         `json:"setpoint"`
	Units       string          `json:"units"`
	Thresholds  pump.Thresholds `json:"thresholds"`
	LastLevel   string          `json:"last_level"`
	Running     bool            `json:"running"`
	Timestamp   time.Time       `json:"timestamp"`
}

// GraphData is the body of GET /api/graph.
type GraphData struct {
	Settings   pump.GraphSettings `json:"settings"`
	Units      string             `json:"units"`
	Setpoint   float64            `json:"setpoint"`
	Thresholds pump.Thresholds    `json:"thresholds"`
	Points     []pump.Reading     `json:"points"`
}

// Message is one frame of the live feed.
type Message struct {
	Type    pump.EventKind  `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
