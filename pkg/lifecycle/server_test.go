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

package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStart = errors.New("start failed")

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}

type fakeService struct {
	name     string
	rec      *recorder
	startErr error
	started  chan struct{}
}

func (f *fakeService) Start(context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	f.rec.add("start " + f.name)

	if f.started != nil {
		close(f.started)
	}

	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.rec.add("stop " + f.name)

	return nil
}

func TestRunServer_ContextCancel(t *testing.T) {
	rec := &recorder{}
	started := make(chan struct{})

	opts := &ServerOptions{
		ServiceName: "pumpradar",
		Services: []Service{
			&fakeService{name: "a", rec: rec},
			&fakeService{name: "b", rec: rec, started: started},
		},
		HTTPAddr:    "127.0.0.1:0",
		HTTPHandler: http.NotFoundHandler(),
		GRPCAddr:    "127.0.0.1:0",
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- RunServer(ctx, opts) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("services did not start")
	}

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("RunServer did not return")
	}

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, rec.get())
}

func TestRunServer_StartFailureStopsStarted(t *testing.T) {
	rec := &recorder{}

	err := RunServer(context.Background(), &ServerOptions{
		Services: []Service{
			&fakeService{name: "a", rec: rec},
			&fakeService{name: "b", rec: rec, startErr: errStart},
		},
	})

	require.ErrorIs(t, err, errStart)
	assert.Equal(t, []string{"start a", "stop a"}, rec.get())
}

func TestRunServer_ListenFailure(t *testing.T) {
	rec := &recorder{}

	err := RunServer(context.Background(), &ServerOptions{
		Services:    []Service{&fakeService{name: "a", rec: rec}},
		HTTPAddr:    "256.0.0.1:bad",
		HTTPHandler: http.NotFoundHandler(),
	})

	require.Error(t, err)
	assert.Equal(t, []string{"start a", "stop a"}, rec.get())
}

func TestRunServer_NoServices(t *testing.T) {
	assert.ErrorIs(t, RunServer(context.Background(), &ServerOptions{}), errNoServices)
}
