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
	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exports monitor events as Prometheus metrics. It implements
// pump.Observer.
type Collector struct {
	value   prometheus.Gauge
	samples prometheus.Counter
	alarms  *prometheus.CounterVec
	active  *prometheus.GaugeVec
}

// NewCollector registers the pump metrics with reg.
func NewCollector(reg prometheus.Registerer, info pump.PumpInfo, input pump.AnalogInput) *Collector {
	factory := promauto.With(reg)
	pumpLabel := prometheus.Labels{"pump": info.ID}

	c := &Collector{
		value: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pumpradar_analog_value",
			Help: "Latest simulated analogue input value",
			ConstLabels: prometheus.Labels{
				"pump":    info.ID,
				"channel": input.Channel,
				"units":   input.Units,
			},
		}),
		samples: factory.NewCounter(prometheus.CounterOpts{
			Name:        "pumpradar_samples_total",
			Help:        "Total number of sampling ticks",
			ConstLabels: pumpLabel,
		}),
		alarms: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "pumpradar_alarms_total",
			Help:        "Total number of alarm events by level",
			ConstLabels: pumpLabel,
		}, []string{"level"}),
		active: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "pumpradar_alarm_active",
			Help:        "1 when the latest tick raised this alarm level",
			ConstLabels: pumpLabel,
		}, []string{"level"}),
	}

	for _, level := range pump.Levels {
		c.alarms.WithLabelValues(string(level))
		c.active.WithLabelValues(string(level)).Set(0)
	}

	return c
}

func (c *Collector) HandleData(reading pump.Reading) {
	c.value.Set(reading.Value)
	c.samples.Inc()
}

func (c *Collector) HandleAlarm(event pump.AlarmEvent) {
	c.alarms.WithLabelValues(string(event.Level)).Inc()
	c.setActive(event.Level)
}

func (c *Collector) HandleClear(pump.ClearEvent) {
	c.setActive("")
}

func (c *Collector) setActive(current pump.Level) {
	for _, level := range pump.Levels {
		v := 0.0
		if level == current {
			v = 1
		}

		c.active.WithLabelValues(string(level)).Set(v)
	}
}
