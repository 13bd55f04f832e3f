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

// Package pump pkg/pump/config.go
package pump

import (
	"fmt"
	"time"

	"github.com/carverauto/pumpradar/pkg/config"
	"github.com/carverauto/pumpradar/pkg/logger"
)

const (
	defaultLogIntervalSeconds = 60
	defaultSampleInterval     = time.Second
	defaultNotifyRate         = 5.0
	defaultKafkaTopic         = "pumpradar.events"
	defaultActionNone         = "none"

	NotificationWebhook = "webhook"
	NotificationDiscord = "discord"
)

// Config is the full monitor configuration. It is loaded once at startup
// and never modified afterwards.
type Config struct {
	Pump           PumpInfo        `json:"pump"`
	AnalogInput    AnalogInput     `json:"analog_input"`
	Graph          GraphSettings   `json:"graph"`
	Alarms         AlarmSettings   `json:"alarms"`
	Logging        LoggingSettings `json:"logging"`
	SampleInterval config.Duration `json:"sample_interval"`
	ListenAddr     string          `json:"listen_addr"`
	GRPCAddr       string          `json:"grpc_addr,omitempty"`
	Kafka          KafkaSettings   `json:"kafka"`
}

// PumpInfo identifies the monitored pump.
type PumpInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ControlMode string `json:"control_mode"`
	Status      string `json:"status"`
}

// AnalogInput describes the simulated analogue channel.
type AnalogInput struct {
	Channel     string     `json:"channel"`
	Description string     `json:"description"`
	Setpoint    float64    `json:"setpoint"`
	Units       string     `json:"units"`
	Thresholds  Thresholds `json:"thresholds"`
}

// Thresholds are the alarm limits. HH > H > L > LL is expected but never
// enforced.
type Thresholds struct {
	HH float64 `json:"hh"`
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	LL float64 `json:"ll"`
}

// GraphSettings are passed through to graphing consumers.
type GraphSettings struct {
	Title       string          `json:"title"`
	TimeWindow  config.Duration `json:"time_window"`
	RefreshRate config.Duration `json:"refresh_rate"`
	YMin        float64         `json:"y_min"`
	YMax        float64         `json:"y_max"`
}

// AlarmSettings maps alarm levels to actions and lists who gets notified.
type AlarmSettings struct {
	Actions       map[Level]string     `json:"actions"`
	Notifications []NotificationTarget `json:"notifications,omitempty"`
	// RateLimit caps outgoing notifications per second.
	RateLimit float64 `json:"rate_limit,omitempty"`
}

// NotificationTarget is a destination for alarm notifications.
type NotificationTarget struct {
	Type     string   `json:"type"`
	URL      string   `json:"url"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Template string   `json:"template,omitempty"`
	Headers  []Header `json:"headers,omitempty"`
}

// Header is a custom HTTP header sent with a notification.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IsEnabled reports whether the target should receive notifications.
// Targets are enabled unless explicitly switched off.
func (t NotificationTarget) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// LoggingSettings control periodic logging of readings.
type LoggingSettings struct {
	Enabled bool `json:"enabled"`
	// Interval is in seconds.
	Interval int    `json:"interval"`
	Storage  string `json:"storage"`
	File     string `json:"file,omitempty"`
}

// KafkaSettings enable event forwarding when Brokers is non-empty.
type KafkaSettings struct {
	Brokers []string `json:"brokers,omitempty"`
	Topic   string   `json:"topic,omitempty"`
}

// Enabled reports whether event forwarding is configured.
func (k KafkaSettings) Enabled() bool {
	return len(k.Brokers) > 0
}

// Action returns the configured action for level, or "none".
func (c *Config) Action(level Level) string {
	if action, ok := c.Alarms.Actions[level]; ok && action != "" {
		return action
	}

	return defaultActionNone
}

// LogInterval returns the minimum time between logged readings.
func (c *Config) LogInterval() time.Duration {
	if c.Logging.Interval <= 0 {
		return defaultLogIntervalSeconds * time.Second
	}

	return time.Duration(c.Logging.Interval) * time.Second
}

// Validate implements config.Validator. It fills in defaults and rejects
// values the monitor cannot run with. Threshold ordering is not checked.
func (c *Config) Validate() error {
	if c.Logging.Interval < 0 {
		return fmt.Errorf("%w: %d", errNegativeLogInterval, c.Logging.Interval)
	}

	if c.Logging.Interval == 0 {
		c.Logging.Interval = defaultLogIntervalSeconds
	}

	switch c.Logging.Storage {
	case "":
		c.Logging.Storage = logger.StorageConsole
	case logger.StorageConsole, logger.StorageFile:
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, c.Logging.Storage)
	}

	if c.SampleInterval < 0 {
		return errNegativeSampleInterval
	}

	if c.SampleInterval == 0 {
		c.SampleInterval = config.Duration(defaultSampleInterval)
	}

	if c.Alarms.RateLimit < 0 {
		return errNegativeRateLimit
	}

	if c.Alarms.RateLimit == 0 {
		c.Alarms.RateLimit = defaultNotifyRate
	}

	for i, target := range c.Alarms.Notifications {
		if target.Type == "" {
			c.Alarms.Notifications[i].Type = NotificationWebhook
		} else if target.Type != NotificationWebhook && target.Type != NotificationDiscord {
			return fmt.Errorf("notification %d: %w: %q", i+1, errUnknownTargetType, target.Type)
		}

		if target.URL == "" {
			return fmt.Errorf("notification %d: %w", i+1, errTargetURLRequired)
		}
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		c.Kafka.Topic = defaultKafkaTopic
	}

	return nil
}

// DefaultConfig is the configuration used whenever the configuration file
// cannot be read or is invalid.
func DefaultConfig() *Config {
	return &Config{
		Pump: PumpInfo{
			ID:          "PUMP-001",
			Name:        "Default Pump",
			ControlMode: "auto",
			Status:      "running",
		},
		AnalogInput: AnalogInput{
			Channel:     "AI-1",
			Description: "Discharge pressure",
			Setpoint:    75.0,
			Units:       "psi",
			Thresholds: Thresholds{
				HH: 95,
				H:  85,
				L:  65,
				LL: 55,
			},
		},
		Graph: GraphSettings{
			Title:       "Discharge pressure",
			TimeWindow:  config.Duration(5 * time.Minute),
			RefreshRate: config.Duration(time.Second),
			YMin:        40,
			YMax:        110,
		},
		Alarms: AlarmSettings{
			Actions: map[Level]string{
				LevelHH: "shutdown",
				LevelH:  "notify_operator",
				LevelL:  "notify_operator",
				LevelLL: "shutdown",
			},
			RateLimit: defaultNotifyRate,
		},
		Logging: LoggingSettings{
			Enabled:  true,
			Interval: defaultLogIntervalSeconds,
			Storage:  logger.StorageConsole,
		},
		SampleInterval: config.Duration(defaultSampleInterval),
		ListenAddr:     ":8080",
	}
}

// LoadOrDefault reads the configuration at path. Any read, parse or
// validation failure is logged and DefaultConfig is returned instead.
func LoadOrDefault(path string) *Config {
	cfg, err := config.LoadOrFallback(path, DefaultConfig)
	if err != nil {
		log := logger.WithComponent("config")
		log.Error().Err(err).Str("path", path).Msg("error loading configuration, using defaults")
	}

	return cfg
}
