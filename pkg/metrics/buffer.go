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

// Package metrics pkg/metrics/buffer.go
package metrics

import (
	"sync"
	"time"

	"github.com/carverauto/pumpradar/pkg/pump"
)

// RingBuffer holds the most recent readings, overwriting the oldest once full.
type RingBuffer struct {
	mu     sync.RWMutex
	points []pump.Reading
	pos    int
	count  int
}

// NewBuffer creates a ReadingStore holding up to size readings.
func NewBuffer(size int) ReadingStore {
	if size < 1 {
		size = 1
	}

	return &RingBuffer{points: make([]pump.Reading, size)}
}

// BufferSize returns how many readings cover window at the given sample interval.
func BufferSize(window, interval time.Duration) int {
	if window <= 0 || interval <= 0 {
		return 1
	}

	return int(window / interval)
}

// Add stores a reading.
func (b *RingBuffer) Add(reading pump.Reading) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.points[b.pos] = reading
	b.pos = (b.pos + 1) % len(b.points)

	if b.count < len(b.points) {
		b.count++
	}
}

// Points returns the stored readings, oldest first.
func (b *RingBuffer) Points() []pump.Reading {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]pump.Reading, 0, b.count)
	start := (b.pos - b.count + len(b.points)) % len(b.points)

	for i := 0; i < b.count; i++ {
		out = append(out, b.points[(start+i)%len(b.points)])
	}

	return out
}

// Last returns the newest reading.
func (b *RingBuffer) Last() (pump.Reading, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return pump.Reading{}, false
	}

	return b.points[(b.pos-1+len(b.points))%len(b.points)], true
}
