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
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 100 * time.Millisecond
	defaultWriteTimeout = 10 * time.Second

	headerEventType = "event_type"
)

var (
	ErrProducerClosed = errors.New("producer is closed")

	errNoBrokers = errors.New("at least one broker is required")
	errNoTopic   = errors.New("topic is required")
)

// Producer publishes envelopes with retry and exponential backoff.
type Producer struct {
	writer       MessageWriter
	maxRetries   int
	retryBackoff time.Duration
	closed       atomic.Bool
	logger       zerolog.Logger

	messagesSent   atomic.Uint64
	messagesFailed atomic.Uint64
}

// ProducerOption is a functional option for configuring the producer.
type ProducerOption func(*Producer)

// WithRetries sets the retry budget and the first backoff delay.
func WithRetries(maxRetries int, backoff time.Duration) ProducerOption {
	return func(p *Producer) {
		p.maxRetries = maxRetries
		p.retryBackoff = backoff
	}
}

// NewWriter returns a synchronous writer partitioning by message key.
func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}

	if topic == "" {
		return nil, errNoTopic
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: defaultWriteTimeout,
		RequiredAcks: kafka.RequireOne,
		Compression:  compress.Lz4,
		Async:        false,
	}, nil
}

// NewProducer wraps writer.
func NewProducer(writer MessageWriter, opts ...ProducerOption) *Producer {
	p := &Producer{
		writer:       writer,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
		logger:       logger.WithComponent("kafka_producer"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func toMessage(env *Envelope) (kafka.Message, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to serialize envelope: %w", err)
	}

	return kafka.Message{
		Key:   []byte(env.PumpID),
		Value: data,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(env.Type)},
		},
		Time: env.Timestamp,
	}, nil
}

// PublishBatch writes envelopes in a single call. Envelopes that cannot be
// serialized are logged and skipped.
func (p *Producer) PublishBatch(ctx context.Context, envelopes []*Envelope) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	messages := make([]kafka.Message, 0, len(envelopes))

	for _, env := range envelopes {
		msg, err := toMessage(env)
		if err != nil {
			p.logger.Error().Err(err).Str("type", string(env.Type)).Msg("dropping envelope")
			p.messagesFailed.Add(1)

			continue
		}

		messages = append(messages, msg)
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.publishWithRetry(ctx, messages); err != nil {
		p.messagesFailed.Add(uint64(len(messages)))
		return err
	}

	p.messagesSent.Add(uint64(len(messages)))

	return nil
}

func (p *Producer) publishWithRetry(ctx context.Context, messages []kafka.Message) error {
	var lastErr error

	backoff := p.retryBackoff

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Warn().
				Int("attempt", attempt).
				Int("batch_size", len(messages)).
				Dur("backoff", backoff).
				Msg("retrying kafka batch publish")

			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := p.writer.WriteMessages(ctx, messages...)
		if err == nil {
			return nil
		}

		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}

	return fmt.Errorf("batch failed after %d attempts: %w", p.maxRetries+1, lastErr)
}

// Close closes the underlying writer once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	return p.writer.Close()
}

// ProducerStats holds producer counters.
type ProducerStats struct {
	MessagesSent   uint64
	MessagesFailed uint64
}

func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		MessagesSent:   p.messagesSent.Load(),
		MessagesFailed: p.messagesFailed.Load(),
	}
}
