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

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBus_RegistrationOrder(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var order []int

	for i := range 3 {
		bus.OnData(func(Reading) { order = append(order, i) })
	}

	bus.publishData(Reading{Value: 1})

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestBus_PanicDoesNotStopLaterHandlers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	called := false

	bus.OnAlarm(func(AlarmEvent) { panic("boom") })
	bus.OnAlarm(func(AlarmEvent) { called = true })

	assert.NotPanics(t, func() { bus.publishAlarm(AlarmEvent{Level: LevelHH}) })
	assert.True(t, called)
}

func TestBus_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	obs := NewMockObserver(ctrl)
	bus := NewBus(zerolog.Nop())
	bus.Subscribe(obs)

	reading := Reading{Value: 75, Units: "psi"}
	alarm := AlarmEvent{Level: LevelH, Value: 86}
	clearEvent := ClearEvent{Value: 75, Message: clearMessage}

	gomock.InOrder(
		obs.EXPECT().HandleData(reading),
		obs.EXPECT().HandleAlarm(alarm),
		obs.EXPECT().HandleClear(clearEvent),
	)

	bus.publishData(reading)
	bus.publishAlarm(alarm)
	bus.publishClear(clearEvent)
}

func TestBus_LogHandlers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var lines []string

	bus.OnLog(func(line string) { lines = append(lines, line) })
	bus.publishLog("first")
	bus.publishLog("second")

	assert.Equal(t, []string{"first", "second"}, lines)
}
