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

package pump

import "errors"

var (
	ErrAlreadyRunning = errors.New("monitor is already running")
	ErrNilConfig      = errors.New("monitor configuration is nil")

	errNegativeLogInterval    = errors.New("logging interval must not be negative")
	errNegativeSampleInterval = errors.New("sample interval must not be negative")
	errNegativeRateLimit      = errors.New("notification rate limit must not be negative")
	errUnknownStorage         = errors.New("unknown logging storage mode")
	errUnknownTargetType      = errors.New("unknown notification type")
	errTargetURLRequired      = errors.New("notification url is required")
)
