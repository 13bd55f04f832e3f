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

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rfc3339Prefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Init(Config{Level: "info", Console: &buf}))
	t.Cleanup(func() { _ = Close() })

	WithComponent("test").Info().Msg("pump started")

	line := buf.String()
	assert.Regexp(t, rfc3339Prefix, line)
	assert.Contains(t, line, "pump started")
	assert.Contains(t, line, "component=test")
}

func TestInit_File(t *testing.T) {
	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "pump.log")

	require.NoError(t, Init(Config{Storage: StorageFile, File: path, Console: &buf}))

	WithComponent("test").Info().Msg("written twice")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written twice")
	assert.Contains(t, buf.String(), "written twice")
}

func TestInit_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Init(Config{Level: "warn", Console: &buf}))
	t.Cleanup(func() { _ = Close() })

	WithComponent("test").Info().Msg("hidden")
	WithComponent("test").Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInit_UnknownStorage(t *testing.T) {
	err := Init(Config{Storage: "syslog"})
	assert.ErrorIs(t, err, errUnknownStorage)
}
