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

package pump

import (
	"time"
)

// Level is an alarm severity for one side of the setpoint.
type Level string

const (
	LevelHH Level = "HH"
	LevelH  Level = "H"
	LevelL  Level = "L"
	LevelLL Level = "LL"
)

// Levels lists every alarm level from high-high down to low-low.
var Levels = []Level{LevelHH, LevelH, LevelL, LevelLL}

// EventKind names the streams a Monitor publishes.
type EventKind string

const (
	EventData       EventKind = "data"
	EventAlarm      EventKind = "alarm"
	EventClearAlarm EventKind = "clearAlarm"
	EventLog        EventKind = "log"
)

// Reading is the value sampled on one tick.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Units     string    `json:"units"`
}

// AlarmEvent is published when a tick's value crosses a threshold.
type AlarmEvent struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Value     float64   `json:"value"`
	Units     string    `json:"units"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// ClearEvent is published when a tick's value sits inside the safe band.
type ClearEvent struct {
	Value     float64   `json:"value"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
