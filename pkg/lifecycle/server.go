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

// Package lifecycle pkg/lifecycle/server.go
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/pumpradar/pkg/grpc"
	"github.com/carverauto/pumpradar/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	MaxRecvSize       = 4 * 1024 * 1024 // 4MB
	MaxSendSize       = 4 * 1024 * 1024 // 4MB
	ShutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

var errNoServices = errors.New("no services to run")

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for running the process.
type ServerOptions struct {
	ServiceName string
	// Services are started in order and stopped in reverse order.
	Services    []Service
	HTTPAddr    string
	HTTPHandler http.Handler
	GRPCAddr    string
}

type runner struct {
	opts    *ServerOptions
	logger  zerolog.Logger
	started []Service
	http    *http.Server
	grpc    *grpc.Server
	errChan chan error
}

// RunServer starts the services and servers, then blocks until a signal,
// a server error or ctx cancellation, and shuts everything down.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	if len(opts.Services) == 0 {
		return errNoServices
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &runner{
		opts:    opts,
		logger:  logger.WithComponent("lifecycle"),
		errChan: make(chan error, 2),
	}

	r.logger.Info().Str("service", opts.ServiceName).Msg("Starting service")

	if err := r.startServices(ctx); err != nil {
		r.shutdown()

		return err
	}

	if err := r.startHTTP(); err != nil {
		r.shutdown()

		return err
	}

	if err := r.startGRPC(); err != nil {
		r.shutdown()

		return err
	}

	return r.wait(ctx)
}

func (r *runner) startServices(ctx context.Context) error {
	for _, svc := range r.opts.Services {
		if err := svc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}

		r.started = append(r.started, svc)
	}

	return nil
}

func (r *runner) startHTTP() error {
	if r.opts.HTTPAddr == "" || r.opts.HTTPHandler == nil {
		return nil
	}

	lis, err := net.Listen("tcp", r.opts.HTTPAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.opts.HTTPAddr, err)
	}

	r.http = &http.Server{
		Handler:           r.opts.HTTPHandler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		r.logger.Info().Str("addr", lis.Addr().String()).Msg("HTTP server listening")

		if err := r.http.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	return nil
}

func (r *runner) startGRPC() error {
	if r.opts.GRPCAddr == "" {
		return nil
	}

	lis, err := net.Listen("tcp", r.opts.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.opts.GRPCAddr, err)
	}

	r.grpc = grpc.NewServer(
		grpc.WithMaxRecvSize(MaxRecvSize),
		grpc.WithMaxSendSize(MaxSendSize),
	)

	r.grpc.SetServing(r.opts.ServiceName, true)

	go func() {
		if err := r.grpc.Serve(lis); err != nil {
			r.errChan <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	return nil
}

func (r *runner) wait(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(sigChan)

	var runErr error

	select {
	case sig := <-sigChan:
		r.logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
	case err := <-r.errChan:
		r.logger.Error().Err(err).Msg("Server error, initiating shutdown")

		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		r.logger.Info().Msg("Context canceled, initiating shutdown")
	}

	if err := r.shutdown(); err != nil && runErr == nil {
		runErr = err
	}

	return runErr
}

// shutdown stops the servers first so no new requests arrive, then the
// services in reverse start order.
func (r *runner) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if r.grpc != nil {
		r.grpc.Stop(ctx)
	}

	if r.http != nil {
		if err := r.http.Shutdown(ctx); err != nil {
			r.logger.Warn().Err(err).Msg("HTTP server shutdown error")
		}
	}

	var errs []error

	for i := len(r.started) - 1; i >= 0; i-- {
		if err := r.started[i].Stop(ctx); err != nil {
			r.logger.Error().Err(err).Msg("Error during service shutdown")

			errs = append(errs, err)
		}
	}

	r.started = nil

	if len(errs) > 0 {
		return fmt.Errorf("shutdown error: %w", errors.Join(errs...))
	}

	return nil
}
