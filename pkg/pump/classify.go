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

// Classify returns the alarm level for value, and false when value is in
// the normal band. High limits are checked before low limits and every
// comparison is inclusive, so a value sitting on a limit alarms.
func Classify(value float64, t Thresholds) (Level, bool) {
	switch {
	case value >= t.HH:
		return LevelHH, true
	case value >= t.H:
		return LevelH, true
	case value <= t.LL:
		return LevelLL, true
	case value <= t.L:
		return LevelL, true
	default:
		return "", false
	}
}
