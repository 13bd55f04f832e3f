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
	"sync"

	"github.com/rs/zerolog"
)

// Bus keeps the handlers registered for each event kind. Handlers of one
// kind are called in registration order on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	data   []func(Reading)
	alarm  []func(AlarmEvent)
	clear  []func(ClearEvent)
	log    []func(string)
	logger zerolog.Logger
}

// NewBus returns an empty Bus. Recovered handler panics go to logger.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger}
}

func (b *Bus) OnData(fn func(Reading)) {
	b.mu.Lock()
	b.data = append(b.data, fn)
	b.mu.Unlock()
}

func (b *Bus) OnAlarm(fn func(AlarmEvent)) {
	b.mu.Lock()
	b.alarm = append(b.alarm, fn)
	b.mu.Unlock()
}

func (b *Bus) OnClear(fn func(ClearEvent)) {
	b.mu.Lock()
	b.clear = append(b.clear, fn)
	b.mu.Unlock()
}

// OnLog registers a sink for formatted log lines.
func (b *Bus) OnLog(fn func(string)) {
	b.mu.Lock()
	b.log = append(b.log, fn)
	b.mu.Unlock()
}

// Subscribe registers o for data, alarm and clearAlarm events.
func (b *Bus) Subscribe(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, o.HandleData)
	b.alarm = append(b.alarm, o.HandleAlarm)
	b.clear = append(b.clear, o.HandleClear)
}

func (b *Bus) publishData(r Reading) {
	b.mu.RLock()
	handlers := b.data
	b.mu.RUnlock()

	dispatch(b.logger, EventData, handlers, r)
}

func (b *Bus) publishAlarm(e AlarmEvent) {
	b.mu.RLock()
	handlers := b.alarm
	b.mu.RUnlock()

	dispatch(b.logger, EventAlarm, handlers, e)
}

func (b *Bus) publishClear(e ClearEvent) {
	b.mu.RLock()
	handlers := b.clear
	b.mu.RUnlock()

	dispatch(b.logger, EventClearAlarm, handlers, e)
}

func (b *Bus) publishLog(line string) {
	b.mu.RLock()
	handlers := b.log
	b.mu.RUnlock()

	dispatch(b.logger, EventLog, handlers, line)
}

func dispatch[T any](logger zerolog.Logger, kind EventKind, handlers []func(T), event T) {
	for i, fn := range handlers {
		call(logger, kind, i, fn, event)
	}
}

func call[T any](logger zerolog.Logger, kind EventKind, index int, fn func(T), event T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("event", string(kind)).
				Int("handler", index).
				Interface("panic", r).
				Msg("Observer panicked")
		}
	}()

	fn(event)
}
