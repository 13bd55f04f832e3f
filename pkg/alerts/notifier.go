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

package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultQueueSize   = 64
	defaultSendTimeout = 15 * time.Second
)

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithQueueSize sets how many alerts may wait for delivery.
func WithQueueSize(size int) NotifierOption {
	return func(n *Notifier) {
		if size > 0 {
			n.queue = make(chan *WebhookAlert, size)
		}
	}
}

// WithSendTimeout bounds a single delivery attempt.
func WithSendTimeout(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		n.sendTimeout = d
	}
}

// Notifier turns alarm events into webhook alerts and delivers them from a
// background worker. It implements pump.Observer and never blocks the caller.
type Notifier struct {
	alerters    []AlertService
	pump        pump.PumpInfo
	input       pump.AnalogInput
	queue       chan *WebhookAlert
	limiter     *rate.Limiter
	sendTimeout time.Duration
	logger      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAlerters builds one AlertService per enabled notification target.
func NewAlerters(targets []pump.NotificationTarget) []AlertService {
	alerters := make([]AlertService, 0, len(targets))

	for _, target := range targets {
		if !target.IsEnabled() {
			continue
		}

		headers := make([]Header, 0, len(target.Headers))
		for _, h := range target.Headers {
			headers = append(headers, Header{Key: h.Key, Value: h.Value})
		}

		if target.Type == pump.NotificationDiscord {
			alerters = append(alerters, NewDiscordWebhook(target.URL, headers))

			continue
		}

		alerters = append(alerters, NewWebhookAlerter(WebhookConfig{
			Enabled:  true,
			URL:      target.URL,
			Headers:  headers,
			Template: target.Template,
		}))
	}

	return alerters
}

// NewNotifier creates a Notifier delivering at most cfg.Alarms.RateLimit
// alerts per second across all alerters.
func NewNotifier(cfg *pump.Config, alerters []AlertService, opts ...NotifierOption) *Notifier {
	limit := cfg.Alarms.RateLimit
	if limit <= 0 {
		limit = 5
	}

	burst := int(limit)
	if burst < 1 {
		burst = 1
	}

	n := &Notifier{
		alerters:    alerters,
		pump:        cfg.Pump,
		input:       cfg.AnalogInput,
		queue:       make(chan *WebhookAlert, defaultQueueSize),
		limiter:     rate.NewLimiter(rate.Limit(limit), burst),
		sendTimeout: defaultSendTimeout,
		logger:      logger.WithComponent("notifier"),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Start launches the delivery worker.
func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel

	n.wg.Add(1)

	go n.worker(ctx)

	n.logger.Info().Int("targets", len(n.alerters)).Msg("Alarm notifier started")

	return nil
}

// Stop ends the worker. Alerts still queued are dropped.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()

	done := make(chan struct{})

	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for notifier worker: %w", ctx.Err())
	}
}

func (*Notifier) HandleData(pump.Reading) {}

func (*Notifier) HandleClear(pump.ClearEvent) {}

// HandleAlarm enqueues an alert, dropping it when the queue is full.
func (n *Notifier) HandleAlarm(event pump.AlarmEvent) {
	if len(n.alerters) == 0 {
		return
	}

	alert := n.buildAlert(event)

	select {
	case n.queue <- alert:
	default:
		n.logger.Warn().Str("alarm_id", event.ID).Str("level", string(event.Level)).Msg("Notification queue full, dropping alert")
	}
}

func (n *Notifier) buildAlert(event pump.AlarmEvent) *WebhookAlert {
	return &WebhookAlert{
		ID:        event.ID,
		Level:     severity(event.Level),
		Title:     fmt.Sprintf("%s %s alarm", n.pump.Name, event.Level),
		Message:   fmt.Sprintf("%s at %.2f %s, action %s", n.input.Description, event.Value, event.Units, event.Action),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		PumpID:    n.pump.ID,
		Details: map[string]any{
			"level":   string(event.Level),
			"channel": n.input.Channel,
			"value":   event.Value,
			"units":   event.Units,
			"action":  event.Action,
		},
	}
}

func severity(level pump.Level) AlertLevel {
	switch level {
	case pump.LevelHH, pump.LevelLL:
		return Error
	case pump.LevelH, pump.LevelL:
		return Warning
	default:
		return Info
	}
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case alert := <-n.queue:
			n.deliver(ctx, alert)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, alert *WebhookAlert) {
	for _, alerter := range n.alerters {
		if !alerter.IsEnabled() {
			continue
		}

		if err := n.limiter.Wait(ctx); err != nil {
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, n.sendTimeout)
		err := alerter.Alert(sendCtx, alert)

		cancel()

		if err != nil {
			n.logger.Error().Err(err).Str("alarm_id", alert.ID).Msg("Failed to send alert")
		}
	}
}
