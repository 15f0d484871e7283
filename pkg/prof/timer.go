/*
 * Copyright (c) 2021, NVIDIA CORPORATION.  All rights reserved.
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

package prof

import (
	"time"
)

// timer measures host wall-clock time independently of device time.
type timer struct {
	start   time.Time
	stop    time.Time
	running bool
}

// Start starts the wall-clock timer of the profile.
func (p *Profile) Start() {
	p.timer = timer{start: time.Now(), running: true}
}

// Stop stops the wall-clock timer of the profile.
func (p *Profile) Stop() {
	if p.timer.running {
		p.timer.stop = time.Now()
		p.timer.running = false
	}
}

// Elapsed returns the time between Start and Stop, or between Start and now
// when the timer is running. It is zero if the timer was never started.
func (p *Profile) Elapsed() time.Duration {
	switch {
	case p.timer.start.IsZero():
		return 0
	case p.timer.running:
		return time.Since(p.timer.start)
	}
	return p.timer.stop.Sub(p.timer.start)
}

func (p *Profile) timerStarted() bool {
	return !p.timer.start.IsZero()
}
