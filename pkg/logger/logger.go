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

// Package logger pkg/logger/logger.go
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	StorageConsole = "console"
	StorageFile    = "file"

	defaultLogFile = "pumpradar.log"
)

var (
	errUnknownStorage = errors.New("unknown log storage mode")

	mu sync.RWMutex
	// Logger is the process-wide logger. It writes to stdout until Init is called.
	Logger = zerolog.New(consoleWriter(os.Stdout)).With().Timestamp().Logger()
	file   *os.File
)

// Config selects the level and where log lines go.
type Config struct {
	Level   string
	Storage string
	File    string
	// Console overrides stdout, mostly for tests.
	Console io.Writer
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
}

// Init replaces the global logger. With storage "file" every line is also
// appended to cfg.File.
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	writers := []io.Writer{consoleWriter(console)}

	var f *os.File

	switch cfg.Storage {
	case "", StorageConsole:
	case StorageFile:
		path := cfg.File
		if path == "" {
			path = defaultLogFile
		}

		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file '%s': %w", path, err)
		}

		writers = append(writers, f)
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, cfg.Storage)
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	mu.Lock()
	old := file
	Logger = l
	file = f
	mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	l.Debug().Str("level", level.String()).Str("storage", cfg.Storage).Msg("logger initialized")

	return nil
}

// Close releases the log file, if one is open. The console sink keeps working.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if file == nil {
		return nil
	}

	err := file.Close()
	file = nil
	Logger = Logger.Output(consoleWriter(os.Stdout))

	return err
}

// WithComponent returns a logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return Logger.With().Str("component", component).Logger()
}
