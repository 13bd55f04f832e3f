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

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(v float64) pump.Reading {
	return pump.Reading{Timestamp: time.Unix(int64(v), 0), Value: v, Units: "psi"}
}

func values(points []pump.Reading) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Value)
	}

	return out
}

func TestRingBuffer(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		buf := NewBuffer(3)

		assert.Empty(t, buf.Points())

		_, ok := buf.Last()
		assert.False(t, ok)
	})

	t.Run("partially filled keeps order", func(t *testing.T) {
		buf := NewBuffer(3)
		buf.Add(reading(1))
		buf.Add(reading(2))

		assert.Equal(t, []float64{1, 2}, values(buf.Points()))

		last, ok := buf.Last()
		require.True(t, ok)
		assert.InDelta(t, 2.0, last.Value, 1e-9)
	})

	t.Run("wraps and drops oldest", func(t *testing.T) {
		buf := NewBuffer(3)
		for i := 1; i <= 5; i++ {
			buf.Add(reading(float64(i)))
		}

		assert.Equal(t, []float64{3, 4, 5}, values(buf.Points()))

		last, ok := buf.Last()
		require.True(t, ok)
		assert.InDelta(t, 5.0, last.Value, 1e-9)
	})

	t.Run("concurrent access", func(t *testing.T) {
		buf := NewBuffer(100)

		const goroutines = 10

		const iterations = 100

		var wg sync.WaitGroup

		for i := 0; i < goroutines; i++ {
			wg.Add(1)

			go func(id int) {
				defer wg.Done()

				for j := 0; j < iterations; j++ {
					buf.Add(reading(float64(id*1000 + j)))
					_ = buf.Points()
				}
			}(i)
		}

		wg.Wait()
		assert.Len(t, buf.Points(), 100)
	})
}

func TestBufferSize(t *testing.T) {
	assert.Equal(t, 300, BufferSize(5*time.Minute, time.Second))
	assert.Equal(t, 1, BufferSize(0, time.Second))
	assert.Equal(t, 1, BufferSize(time.Minute, 0))
}
