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

package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func startTestServer(t *testing.T) (*Server, healthpb.HealthClient) {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(WithMaxRecvSize(1<<20), WithMaxSendSize(1<<20))

	errCh := make(chan error, 1)

	go func() { errCh <- srv.Serve(lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()

		srv.Stop(context.Background())
		require.NoError(t, <-errCh)
	})

	return srv, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)

	return resp.GetStatus()
}

func TestServer_Health(t *testing.T) {
	srv, client := startTestServer(t)

	srv.SetServing("pumpradar", true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, "pumpradar"))

	srv.SetServing("pumpradar", false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, "pumpradar"))
}

func TestServer_RegisterHealthServerTwice(t *testing.T) {
	srv := NewServer()

	require.NoError(t, srv.RegisterHealthServer())
	assert.ErrorIs(t, srv.RegisterHealthServer(), errHealthServerRegistered)
}

func TestRecoveryInterceptor(t *testing.T) {
	srv := NewServer()

	_, err := srv.recoveryInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test/Panic"},
		func(context.Context, interface{}) (interface{}, error) {
			panic("boom")
		})

	assert.ErrorIs(t, err, errInternalError)
}
