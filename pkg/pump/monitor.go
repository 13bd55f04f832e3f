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

// Package pump pkg/pump/monitor.go
package pump

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	noiseSpan    = 10.0
	clearMessage = "Value within normal range"
	levelClear   = "clear"
)

// Monitor samples a simulated analogue input and publishes the readings,
// alarms and clears to its observers.
type Monitor struct {
	*Bus

	cfg            *Config
	logger         zerolog.Logger
	now            func() time.Time
	random         func() float64
	sampleInterval time.Duration
	logInterval    time.Duration

	mu         sync.RWMutex
	value      float64
	lastLogged time.Time
	lastLevel  string

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Monitor) {
		m.logger = l
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

// WithRand replaces the uniform [0,1) source used for instrument noise.
func WithRand(random func() float64) Option {
	return func(m *Monitor) {
		m.random = random
	}
}

// NewMonitor creates a stopped Monitor whose current value is the setpoint.
func NewMonitor(cfg *Config, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	m := &Monitor{
		cfg:            cfg,
		logger:         logger.WithComponent("pump"),
		now:            time.Now,
		random:         rand.Float64,
		sampleInterval: cfg.SampleInterval.Std(),
		logInterval:    cfg.LogInterval(),
		value:          cfg.AnalogInput.Setpoint,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.sampleInterval <= 0 {
		m.sampleInterval = defaultSampleInterval
	}

	m.Bus = NewBus(m.logger)
	m.lastLogged = m.now()

	return m, nil
}

// Config returns the configuration the Monitor was built with.
func (m *Monitor) Config() *Config {
	return m.cfg
}

// Value returns the most recent reading, or the setpoint before the first tick.
func (m *Monitor) Value() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.value
}

// LastLevel returns the level of the last tick: an alarm level, "clear",
// or "" before the first tick.
func (m *Monitor) LastLevel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastLevel
}

// Running reports whether the sampling loop is active.
func (m *Monitor) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.done == nil {
		return false
	}

	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// Start launches the sampling loop. It returns ErrAlreadyRunning instead
// of starting a second loop. The loop also ends when ctx is canceled.
func (m *Monitor) Start(ctx context.Context) error {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.done != nil {
		select {
		case <-m.done:
			// the previous loop ended with its parent context
			m.cancel()
		default:
			return ErrAlreadyRunning
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	m.cancel = cancel
	m.done = done

	m.logf("Monitoring started for pump %s", m.cfg.Pump.Name)

	go m.run(ctx, done)

	return nil
}

// Stop cancels the sampling loop and waits for it to exit. It must not be
// called from an observer. Stopping a Monitor that is not running is a no-op.
func (m *Monitor) Stop(ctx context.Context) error {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.done == nil {
		return nil
	}

	m.cancel()

	select {
	case <-m.done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for sampling loop: %w", ctx.Err())
	}

	m.cancel = nil
	m.done = nil

	m.logf("Monitoring stopped for pump %s", m.cfg.Pump.Name)

	return nil
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// both cases may be ready at once
			if ctx.Err() != nil {
				return
			}

			m.tick()
		}
	}
}

func (m *Monitor) tick() {
	now := m.now()
	in := m.cfg.AnalogInput
	value := in.Setpoint + (m.random()-0.5)*noiseSpan
	level, alarmed := Classify(value, in.Thresholds)

	m.mu.Lock()
	m.value = value

	shouldLog := m.cfg.Logging.Enabled && now.Sub(m.lastLogged) >= m.logInterval
	if shouldLog {
		m.lastLogged = now
	}

	if alarmed {
		m.lastLevel = string(level)
	} else {
		m.lastLevel = levelClear
	}
	m.mu.Unlock()

	if shouldLog {
		m.logf("%s %s: %.2f %s", m.cfg.Pump.Name, in.Channel, value, in.Units)
	}

	m.publishData(Reading{
		Timestamp: now,
		Value:     value,
		Units:     in.Units,
	})

	if alarmed {
		m.triggerAlarm(level, value, now)

		return
	}

	m.publishClear(ClearEvent{
		Value:     value,
		Message:   clearMessage,
		Timestamp: now,
	})
}

func (m *Monitor) triggerAlarm(level Level, value float64, ts time.Time) {
	units := m.cfg.AnalogInput.Units
	action := m.cfg.Action(level)

	m.logf("ALARM %s on %s: value %.2f %s, action %s", level, m.cfg.Pump.Name, value, units, action)

	m.publishAlarm(AlarmEvent{
		ID:        uuid.NewString(),
		Level:     level,
		Value:     value,
		Units:     units,
		Timestamp: ts,
		Action:    action,
	})
}

// logf writes a line to the component logger and to every log observer.
func (m *Monitor) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)

	m.logger.Info().Msg(line)
	m.publishLog(line)
}
