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
	"strings"
	"testing"

	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	cfg := pump.DefaultConfig()

	return NewCollector(reg, cfg.Pump, cfg.AnalogInput), reg
}

func TestCollector_Data(t *testing.T) {
	c, _ := newTestCollector(t)

	c.HandleData(pump.Reading{Value: 77.5, Units: "psi"})
	c.HandleData(pump.Reading{Value: 73.25, Units: "psi"})

	assert.InDelta(t, 73.25, testutil.ToFloat64(c.value), 1e-9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(c.samples), 1e-9)
}

func TestCollector_AlarmAndClear(t *testing.T) {
	c, _ := newTestCollector(t)

	c.HandleAlarm(pump.AlarmEvent{Level: pump.LevelHH})
	c.HandleAlarm(pump.AlarmEvent{Level: pump.LevelHH})
	c.HandleAlarm(pump.AlarmEvent{Level: pump.LevelL})

	assert.InDelta(t, 2.0, testutil.ToFloat64(c.alarms.WithLabelValues("HH")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.alarms.WithLabelValues("L")), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(c.active.WithLabelValues("HH")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.active.WithLabelValues("L")), 1e-9)

	c.HandleClear(pump.ClearEvent{})

	for _, level := range pump.Levels {
		assert.InDelta(t, 0.0, testutil.ToFloat64(c.active.WithLabelValues(string(level))), 1e-9)
	}
}

func TestCollector_Exposition(t *testing.T) {
	c, reg := newTestCollector(t)

	c.HandleData(pump.Reading{Value: 80, Units: "psi"})

	expected := `
# HELP pumpradar_analog_value Latest simulated analogue input value
# TYPE pumpradar_analog_value gauge
pumpradar_analog_value{channel="AI-1",pump="PUMP-001",units="psi"} 80
`

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "pumpradar_analog_value"))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	// analog value, samples, four alarm counters, four active gauges
	assert.Equal(t, 10, count)
}

func TestCollector_ImplementsObserver(t *testing.T) {
	var _ pump.Observer = (*Collector)(nil)
}
