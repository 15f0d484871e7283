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

// Queue wraps a driver command queue bound to one context and device. It
// owns the events produced by the commands enqueued on it.
type Queue struct {
	wrapper
	ctx    *Context
	dev    *Device
	events []*Event
}

// EventIterator walks the events of a queue without taking ownership.
type EventIterator struct {
	events []*Event
	pos    int
}

func wrapQueue(drv cl.Interface, h cl.Handle) *Queue {
	return wrap(drv, h, func() *Queue { return &Queue{} })
}

// WrapQueue adopts a command queue created directly through the driver.
func WrapQueue(drv cl.Interface, h cl.Handle) *Queue {
	return wrapQueue(drv, h)
}

// NewQueue creates a command queue on dev, or on the first device of ctx
// when dev is nil.
func NewQueue(ctx *Context, dev *Device, properties cl.QueueProperties) (*Queue, error) {
	if dev == nil {
		var err error
		dev, err = ctx.Device(0)
		if err != nil {
			return nil, err
		}
	}

	h, ret := ctx.drv.CreateCommandQueue(ctx.handle, dev.handle, properties)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create command queue")
	}

	q := wrapQueue(ctx.drv, h)
	ctx.Ref()
	q.ctx = ctx
	dev.Ref()
	q.dev = dev

	return q, nil
}

func (q *Queue) releaseDriver() cl.Return {
	return q.drv.ReleaseCommandQueue(q.handle)
}

func (q *Queue) releaseFields() {
	q.GarbageCollect()
	if q.ctx != nil {
		q.ctx.Destroy()
		q.ctx = nil
	}
	if q.dev != nil {
		q.dev.Destroy()
		q.dev = nil
	}
}

func (q *Queue) Destroy() error {
	_, err := unref(q)
	return err
}

func (q *Queue) query(param cl.QueueInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return q.drv.GetCommandQueueInfo(q.handle, param, value)
	}
}

func (q *Queue) GetInfo(param cl.QueueInfo) (*Info, error) {
	return q.getInfo(infoKey{param: uint32(param)}, q.query(param), true)
}

func (q *Queue) GetInfoFresh(param cl.QueueInfo) (*Info, error) {
	return q.getInfo(infoKey{param: uint32(param)}, q.query(param), false)
}

// Context returns the context of the queue. The queue keeps ownership of it.
func (q *Queue) Context() (*Context, error) {
	if q.ctx == nil {
		h, err := infoHandle(q.GetInfo(cl.QUEUE_CONTEXT))
		if err != nil {
			return nil, err
		}
		ctx, err := adopt(q.drv, h, func() *Context { return &Context{} }, q.drv.RetainContext)
		if err != nil {
			return nil, err
		}
		q.ctx = ctx
	}
	return q.ctx, nil
}

// Device returns the device of the queue. The queue keeps ownership of it.
func (q *Queue) Device() (*Device, error) {
	if q.dev == nil {
		h, err := infoHandle(q.GetInfo(cl.QUEUE_DEVICE))
		if err != nil {
			return nil, err
		}
		dev, err := adopt(q.drv, h, func() *Device { return &Device{} }, q.drv.RetainDevice)
		if err != nil {
			return nil, err
		}
		q.dev = dev
	}
	return q.dev, nil
}

func (q *Queue) Properties() (cl.QueueProperties, error) {
	props, err := infoUint64(q.GetInfo(cl.QUEUE_PROPERTIES))
	return cl.QueueProperties(props), err
}

// Finish blocks until every command in the queue completes.
func (q *Queue) Finish() error {
	if ret := q.drv.Finish(q.handle); ret != cl.SUCCESS {
		return driverError(ret, "unable to finish command queue")
	}
	return nil
}

func (q *Queue) Flush() error {
	if ret := q.drv.Flush(q.handle); ret != cl.SUCCESS {
		return driverError(ret, "unable to flush command queue")
	}
	return nil
}

// ProduceEvent wraps an event returned by an enqueue operation on this
// queue and takes ownership of it.
func (q *Queue) ProduceEvent(h cl.Handle) *Event {
	e := wrapEvent(q.drv, h)
	e.queue = q
	q.events = append(q.events, e)
	return e
}

// EventIterator returns an iterator over the events owned by the queue, in
// the order they were produced.
func (q *Queue) EventIterator() *EventIterator {
	return &EventIterator{events: q.events}
}

// Next returns the next event, or nil when there are no more.
func (it *EventIterator) Next() *Event {
	if it.pos >= len(it.events) {
		return nil
	}
	e := it.events[it.pos]
	it.pos++
	return e
}

// NumEvents returns the number of events owned by the queue.
func (q *Queue) NumEvents() int {
	return len(q.events)
}

// GarbageCollect destroys the events owned by the queue.
func (q *Queue) GarbageCollect() {
	for _, e := range q.events {
		e.Destroy()
	}
	q.events = nil
}

// EnqueueMarker enqueues a marker that completes once the events in wl, or
// every previous command when wl is empty, complete.
func (q *Queue) EnqueueMarker(wl *EventWaitList) (*Event, error) {
	h, ret := q.drv.EnqueueMarkerWithWaitList(q.handle, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue marker")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueBarrier enqueues a barrier that blocks later commands until the
// events in wl, or every previous command when wl is empty, complete.
func (q *Queue) EnqueueBarrier(wl *EventWaitList) (*Event, error) {
	h, ret := q.drv.EnqueueBarrierWithWaitList(q.handle, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue barrier")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueMigrateMemObjects moves memory objects to the device of the queue,
// or to the host with cl.MIGRATE_MEM_OBJECT_HOST.
func (q *Queue) EnqueueMigrateMemObjects(memobjs []MemObject, flags cl.MemMigrationFlags, wl *EventWaitList) (*Event, error) {
	handles := make([]cl.Handle, len(memobjs))
	for i, m := range memobjs {
		handles[i] = m.Handle()
	}
	h, ret := q.drv.EnqueueMigrateMemObjects(q.handle, handles, flags, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to migrate memory objects")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}
