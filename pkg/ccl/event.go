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

// Event wraps a driver event. Events produced by enqueue operations are
// owned by their queue.
type Event struct {
	wrapper
	name  string
	queue *Queue
}

func wrapEvent(drv cl.Interface, h cl.Handle) *Event {
	return wrap(drv, h, func() *Event { return &Event{} })
}

// WrapEvent adopts an event created directly through the driver.
func WrapEvent(drv cl.Interface, h cl.Handle) *Event {
	return wrapEvent(drv, h)
}

func (e *Event) releaseDriver() cl.Return {
	return e.drv.ReleaseEvent(e.handle)
}

func (e *Event) releaseFields() {
	e.queue = nil
}

func (e *Event) Destroy() error {
	_, err := unref(e)
	return err
}

func (e *Event) query(param cl.EventInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return e.drv.GetEventInfo(e.handle, param, value)
	}
}

func (e *Event) GetInfo(param cl.EventInfo) (*Info, error) {
	return e.getInfo(infoKey{param: uint32(param)}, e.query(param), true)
}

func (e *Event) GetInfoFresh(param cl.EventInfo) (*Info, error) {
	return e.getInfo(infoKey{param: uint32(param)}, e.query(param), false)
}

// SetName overrides the display name of the event.
func (e *Event) SetName(name string) {
	e.name = name
}

// Name returns the display name of the event: the name given with SetName,
// or the name of the command that produced it.
func (e *Event) Name() (string, error) {
	if e.name != "" {
		return e.name, nil
	}
	t, err := e.CommandType()
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func (e *Event) CommandType() (cl.CommandType, error) {
	t, err := infoUint32(e.GetInfo(cl.EVENT_COMMAND_TYPE))
	return cl.CommandType(t), err
}

// ExecutionStatus returns the current execution status of the command. It
// is never cached.
func (e *Event) ExecutionStatus() (int32, error) {
	info, err := e.GetInfoFresh(cl.EVENT_COMMAND_EXECUTION_STATUS)
	if err != nil {
		return 0, err
	}
	return info.Int32(), nil
}

// ProfilingInfo returns one of the four timestamps of the command, in
// nanoseconds. It is never cached.
func (e *Event) ProfilingInfo(param cl.ProfilingInfo) (uint64, error) {
	query := func(value []byte) (int, cl.Return) {
		return e.drv.GetEventProfilingInfo(e.handle, param, value)
	}
	return infoUint64(e.getInfo(infoKey{param: uint32(param)}, query, false))
}

// Queue returns the queue that produced the event, or nil for wrapped
// events. The queue keeps ownership of itself.
func (e *Event) Queue() *Queue {
	return e.queue
}

func (e *Event) QueueHandle() (cl.Handle, error) {
	return infoHandle(e.GetInfo(cl.EVENT_COMMAND_QUEUE))
}

func (e *Event) ContextHandle() (cl.Handle, error) {
	return infoHandle(e.GetInfo(cl.EVENT_CONTEXT))
}

// Wait blocks until the command completes.
func (e *Event) Wait() error {
	if ret := e.drv.WaitForEvents([]cl.Handle{e.handle}); ret != cl.SUCCESS {
		return driverError(ret, "unable to wait for event %#x", e.handle)
	}
	return nil
}
