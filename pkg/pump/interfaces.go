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

//go:generate mockgen -destination=mock_pump.go -package=pump github.com/carverauto/pumpradar/pkg/pump Observer

// Observer receives every event a Monitor publishes. Handlers run on the
// sampling goroutine and must return quickly.
type Observer interface {
	HandleData(reading Reading)
	HandleAlarm(event AlarmEvent)
	HandleClear(event ClearEvent)
}
