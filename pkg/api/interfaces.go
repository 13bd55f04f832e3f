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

import "github.com/carverauto/pumpradar/pkg/pump"

//go:generate mockgen -destination=mock_api_server.go -package=api github.com/carverauto/pumpradar/pkg/api MonitorService

// MonitorService is the read-only view of a monitor the API serves.
type MonitorService interface {
	Config() *pump.Config
	Value() float64
	LastLevel() string
	Running() bool
}
