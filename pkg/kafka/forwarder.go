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

package kafka

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/rs/zerolog"
)

const (
	defaultQueueSize    = 1024
	defaultBatchSize    = 50
	defaultBatchTimeout = 500 * time.Millisecond
	flushTimeout        = 5 * time.Second
)

// Publisher publishes batches of envelopes.
type Publisher interface {
	PublishBatch(ctx context.Context, envelopes []*Envelope) error
}

// ForwarderConfig holds the batching settings.
type ForwarderConfig struct {
	PumpID       string
	QueueSize    int
	BatchSize    int
	BatchTimeout time.Duration
}

// Forwarder copies every monitor event onto a topic. It implements
// pump.Observer and batches in a background worker.
type Forwarder struct {
	publisher    Publisher
	pumpID       string
	queue        chan *Envelope
	batchSize    int
	batchTimeout time.Duration
	logger       zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewForwarder(publisher Publisher, cfg ForwarderConfig) *Forwarder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}

	return &Forwarder{
		publisher:    publisher,
		pumpID:       cfg.PumpID,
		queue:        make(chan *Envelope, cfg.QueueSize),
		batchSize:    cfg.BatchSize,
		batchTimeout: cfg.BatchTimeout,
		logger:       logger.WithComponent("kafka_forwarder"),
	}
}

func (f *Forwarder) HandleData(reading pump.Reading) {
	f.enqueue(pump.EventData, reading.Timestamp, reading)
}

func (f *Forwarder) HandleAlarm(event pump.AlarmEvent) {
	f.enqueue(pump.EventAlarm, event.Timestamp, event)
}

func (f *Forwarder) HandleClear(event pump.ClearEvent) {
	f.enqueue(pump.EventClearAlarm, event.Timestamp, event)
}

func (f *Forwarder) enqueue(kind pump.EventKind, ts time.Time, payload any) {
	env := &Envelope{
		Type:      kind,
		PumpID:    f.pumpID,
		Timestamp: ts,
		Payload:   payload,
	}

	select {
	case f.queue <- env:
	default:
		f.logger.Warn().Str("type", string(kind)).Msg("forward queue full, dropping event")
	}
}

// Start launches the batching worker.
func (f *Forwarder) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	f.logger.Info().
		Int("batch_size", f.batchSize).
		Dur("batch_timeout", f.batchTimeout).
		Msg("starting kafka forwarder")

	f.wg.Add(1)

	go f.worker(ctx)

	return nil
}

// Stop ends the worker after flushing whatever is queued.
func (f *Forwarder) Stop(ctx context.Context) error {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()

	done := make(chan struct{})

	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info().Msg("kafka forwarder stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for forwarder flush: %w", ctx.Err())
	}
}

func (f *Forwarder) worker(ctx context.Context) {
	defer f.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("forwarder panic recovered")
		}
	}()

	batch := make([]*Envelope, 0, f.batchSize)
	timer := time.NewTimer(f.batchTimeout)

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			f.drain(batch)
			return

		case env := <-f.queue:
			batch = append(batch, env)

			if len(batch) >= f.batchSize {
				f.publish(ctx, batch)
				batch = batch[:0]

				timer.Reset(f.batchTimeout)
			}

		case <-timer.C:
			if len(batch) > 0 {
				f.publish(ctx, batch)
				batch = batch[:0]
			}

			timer.Reset(f.batchTimeout)
		}
	}
}

// drain flushes the pending batch plus anything still queued.
func (f *Forwarder) drain(batch []*Envelope) {
	for len(f.queue) > 0 {
		batch = append(batch, <-f.queue)
	}

	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	f.publish(ctx, batch)
}

func (f *Forwarder) publish(ctx context.Context, batch []*Envelope) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	if err := f.publisher.PublishBatch(ctx, batch); err != nil {
		f.logger.Error().Err(err).Int("batch_size", len(batch)).Msg("failed to publish batch")
		return
	}

	f.logger.Debug().Int("batch_size", len(batch)).Msg("batch published")
}
