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

package main

import (
	"context"
	"flag"
	"log"

	"github.com/carverauto/pumpradar/pkg/alerts"
	"github.com/carverauto/pumpradar/pkg/api"
	"github.com/carverauto/pumpradar/pkg/kafka"
	"github.com/carverauto/pumpradar/pkg/lifecycle"
	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/carverauto/pumpradar/pkg/metrics"
	"github.com/carverauto/pumpradar/pkg/pump"
	"github.com/prometheus/client_golang/prometheus"
)

// cmd/pumpradar/main.go

const serviceName = "pumpradar"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/pumpradar/pumpradar.json", "Path to config file")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg := pump.LoadOrDefault(*configPath)

	if err := logger.Init(logger.Config{
		Level:   *logLevel,
		Storage: cfg.Logging.Storage,
		File:    cfg.Logging.File,
	}); err != nil {
		return err
	}

	defer func() { _ = logger.Close() }()

	monitor, err := pump.NewMonitor(cfg)
	if err != nil {
		return err
	}

	history := metrics.NewBuffer(metrics.BufferSize(cfg.Graph.TimeWindow.Std(), cfg.SampleInterval.Std()))
	monitor.OnData(history.Add)

	monitor.Subscribe(metrics.NewCollector(prometheus.DefaultRegisterer, cfg.Pump, cfg.AnalogInput))

	apiServer := api.NewAPIServer(monitor, api.WithHistory(history))
	monitor.Subscribe(apiServer.Hub())

	notifier := alerts.NewNotifier(cfg, alerts.NewAlerters(cfg.Alarms.Notifications))
	monitor.Subscribe(notifier)

	services := []lifecycle.Service{notifier}

	if cfg.Kafka.Enabled() {
		writer, err := kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}

		producer := kafka.NewProducer(writer)
		defer func() { _ = producer.Close() }()

		forwarder := kafka.NewForwarder(producer, kafka.ForwarderConfig{PumpID: cfg.Pump.ID})
		monitor.Subscribe(forwarder)

		services = append(services, forwarder)
	}

	// the monitor goes last so every consumer is running before the first tick
	services = append(services, apiServer, monitor)

	return lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ServiceName: serviceName,
		Services:    services,
		HTTPAddr:    cfg.ListenAddr,
		HTTPHandler: apiServer.Handler(),
		GRPCAddr:    cfg.GRPCAddr,
	})
}
