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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pump.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.InDelta(t, 75.0, cfg.AnalogInput.Setpoint, 1e-9)
	assert.Equal(t, "psi", cfg.AnalogInput.Units)
	assert.Equal(t, Thresholds{HH: 95, H: 85, L: 65, LL: 55}, cfg.AnalogInput.Thresholds)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, 60*time.Second, cfg.LogInterval())
	assert.Equal(t, time.Second, cfg.SampleInterval.Std())
	require.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	valid := `{
		"pump": {"id": "P-101", "name": "Feed Pump 101", "control_mode": "auto", "status": "running"},
		"analog_input": {
			"channel": "AI-2", "description": "Flow", "setpoint": 40, "units": "m3/h",
			"thresholds": {"hh": 50, "h": 45, "l": 35, "ll": 30}
		},
		"alarms": {"actions": {"HH": "trip"}},
		"logging": {"enabled": true},
		"sample_interval": "500ms"
	}`

	tests := []struct {
		name    string
		path    string
		content string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "valid file",
			content: valid,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "Feed Pump 101", cfg.Pump.Name)
				assert.InDelta(t, 40.0, cfg.AnalogInput.Setpoint, 1e-9)
				assert.Equal(t, 500*time.Millisecond, cfg.SampleInterval.Std())
				assert.Equal(t, 60, cfg.Logging.Interval)
				assert.Equal(t, "console", cfg.Logging.Storage)
				assert.Equal(t, "trip", cfg.Action(LevelHH))
				assert.Equal(t, "none", cfg.Action(LevelLL))
			},
		},
		{
			name:    "invalid json",
			content: `{"pump": {"name": `,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:    "invalid values",
			content: `{"logging": {"interval": -1}}`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "missing file",
			path: "/nonexistent/pump.json",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfig(t, tt.content)
			}

			tt.check(t, LoadOrDefault(path))
		})
	}
}

func TestLoadOrDefault_FallbackMonitorRuns(t *testing.T) {
	cfg := LoadOrDefault(writeConfig(t, "not json"))

	m := newTestMonitor(t, cfg)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop(context.Background()))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:    "negative log interval",
			mutate:  func(cfg *Config) { cfg.Logging.Interval = -5 },
			wantErr: errNegativeLogInterval,
		},
		{
			name:    "negative sample interval",
			mutate:  func(cfg *Config) { cfg.SampleInterval = -1 },
			wantErr: errNegativeSampleInterval,
		},
		{
			name:    "unknown storage",
			mutate:  func(cfg *Config) { cfg.Logging.Storage = "syslog" },
			wantErr: errUnknownStorage,
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *Config) { cfg.Alarms.RateLimit = -1 },
			wantErr: errNegativeRateLimit,
		},
		{
			name: "target without url",
			mutate: func(cfg *Config) {
				cfg.Alarms.Notifications = []NotificationTarget{{Type: NotificationWebhook}}
			},
			wantErr: errTargetURLRequired,
		},
		{
			name: "unknown target type",
			mutate: func(cfg *Config) {
				cfg.Alarms.Notifications = []NotificationTarget{{Type: "pager", URL: "http://x"}}
			},
			wantErr: errUnknownTargetType,
		},
		{
			name: "misordered thresholds are accepted",
			mutate: func(cfg *Config) {
				cfg.AnalogInput.Thresholds = Thresholds{HH: 1, H: 2, L: 3, LL: 4}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ValidateFillsDefaults(t *testing.T) {
	cfg := &Config{
		Alarms: AlarmSettings{Notifications: []NotificationTarget{{URL: "http://hook"}}},
		Kafka:  KafkaSettings{Brokers: []string{"localhost:9092"}},
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, NotificationWebhook, cfg.Alarms.Notifications[0].Type)
	assert.True(t, cfg.Alarms.Notifications[0].IsEnabled())
	assert.Equal(t, "pumpradar.events", cfg.Kafka.Topic)
	assert.InDelta(t, 5.0, cfg.Alarms.RateLimit, 1e-9)
	assert.Equal(t, time.Second, cfg.SampleInterval.Std())
}
