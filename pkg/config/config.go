/*-
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

// Package config pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	errInvalidDuration = errors.New("invalid duration")
	errEmptyPath       = errors.New("config path is empty")
	errNilDestination  = errors.New("config destination is nil")
)

// LoadFile reads the JSON document at path into the struct pointed to by dst.
func LoadFile(path string, dst interface{}) error {
	if path == "" {
		return errEmptyPath
	}

	if dst == nil {
		return errNilDestination
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// ValidateConfig runs Validate on cfg when it implements Validator.
func ValidateConfig(cfg interface{}) error {
	if v, ok := cfg.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// LoadAndValidate loads a configuration file and validates it if possible.
func LoadAndValidate(path string, cfg interface{}) error {
	if err := LoadFile(path, cfg); err != nil {
		return err
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration in '%s': %w", path, err)
	}

	return nil
}

// LoadOrFallback loads and validates path into a fresh value. When anything
// goes wrong the value produced by fallback is returned together with the
// error that caused it, so callers can report the problem and keep running.
func LoadOrFallback[T any](path string, fallback func() *T) (*T, error) {
	cfg := new(T)

	if err := LoadAndValidate(path, cfg); err != nil {
		return fallback(), err
	}

	return cfg, nil
}
