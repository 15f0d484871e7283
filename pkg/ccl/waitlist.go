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

package ccl

import (
	"github.com/NVIDIA/clwrap/internal/cl"
)

// EventWaitList is an ordered list of events that must complete before an
// enqueued command starts. Every enqueue operation clears the list it is
// given. A nil list is empty.
type EventWaitList struct {
	events []*Event
}

// NewEventWaitList creates a wait list holding events.
func NewEventWaitList(events ...*Event) *EventWaitList {
	return (&EventWaitList{}).Add(events...)
}

// Add appends events to the list and returns the list. nil events are
// ignored.
func (wl *EventWaitList) Add(events ...*Event) *EventWaitList {
	for _, e := range events {
		if e != nil {
			wl.events = append(wl.events, e)
		}
	}
	return wl
}

func (wl *EventWaitList) Len() int {
	if wl == nil {
		return 0
	}
	return len(wl.events)
}

// Handles returns the driver handles of the events in the list, or nil for
// an empty list.
func (wl *EventWaitList) Handles() []cl.Handle {
	if wl.Len() == 0 {
		return nil
	}
	handles := make([]cl.Handle, len(wl.events))
	for i, e := range wl.events {
		handles[i] = e.handle
	}
	return handles
}

// Clear empties the list without destroying the events.
func (wl *EventWaitList) Clear() {
	if wl == nil {
		return
	}
	wl.events = nil
}

// Wait blocks until every event in the list completes, then clears it.
func (wl *EventWaitList) Wait() error {
	if wl.Len() == 0 {
		return nil
	}
	if ret := wl.events[0].drv.WaitForEvents(wl.Handles()); ret != cl.SUCCESS {
		return driverError(ret, "unable to wait for events")
	}
	wl.Clear()
	return nil
}

// WaitForEvents blocks until every event in wl completes.
func WaitForEvents(wl *EventWaitList) error {
	return wl.Wait()
}
