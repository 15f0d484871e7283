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

// MemObject is implemented by buffers and images. Any MemObject can be
// passed directly as a kernel argument.
type MemObject interface {
	Arg
	Handle() cl.Handle
	Destroy() error
}

// memObject holds what buffers and images have in common.
type memObject struct {
	wrapper
}

func (m *memObject) releaseDriver() cl.Return {
	return m.drv.ReleaseMemObject(m.handle)
}

func (m *memObject) argSize() int {
	return cl.HandleSize
}

func (m *memObject) argValue() []byte {
	return cl.EncodeHandles(m.handle)
}

func (m *memObject) query(param cl.MemInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return m.drv.GetMemObjectInfo(m.handle, param, value)
	}
}

func (m *memObject) GetInfo(param cl.MemInfo) (*Info, error) {
	return m.getInfo(infoKey{param: uint32(param)}, m.query(param), true)
}

func (m *memObject) GetInfoFresh(param cl.MemInfo) (*Info, error) {
	return m.getInfo(infoKey{param: uint32(param)}, m.query(param), false)
}

func (m *memObject) Flags() (cl.MemFlags, error) {
	flags, err := infoUint64(m.GetInfo(cl.MEM_FLAGS))
	return cl.MemFlags(flags), err
}

// Size returns the size in bytes of the object data.
func (m *memObject) Size() (int, error) {
	return infoSizeT(m.GetInfo(cl.MEM_SIZE))
}

func (m *memObject) MemType() (cl.MemObjectType, error) {
	t, err := infoUint32(m.GetInfo(cl.MEM_TYPE))
	return cl.MemObjectType(t), err
}

// MapCount returns the number of active mappings. It is never cached.
func (m *memObject) MapCount() (uint32, error) {
	return infoUint32(m.GetInfoFresh(cl.MEM_MAP_COUNT))
}

func (m *memObject) ContextHandle() (cl.Handle, error) {
	return infoHandle(m.GetInfo(cl.MEM_CONTEXT))
}

// SetDestructorCallback registers fn to be called when the driver object
// is released for good. Callbacks run in the order they were registered.
func (m *memObject) SetDestructorCallback(fn cl.DestructorCallback) error {
	if ret := m.drv.SetMemObjectDestructorCallback(m.handle, fn); ret != cl.SUCCESS {
		return driverError(ret, "unable to set destructor callback")
	}
	return nil
}

// EnqueueUnmap releases a region mapped from the object.
func (m *memObject) EnqueueUnmap(q *Queue, mapped []byte, wl *EventWaitList) (*Event, error) {
	h, ret := m.drv.EnqueueUnmapMemObject(q.handle, m.handle, mapped, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to unmap memory object")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueMigrate moves the object to the device of q, or to the host with
// cl.MIGRATE_MEM_OBJECT_HOST.
func (m *memObject) EnqueueMigrate(q *Queue, flags cl.MemMigrationFlags, wl *EventWaitList) (*Event, error) {
	h, ret := m.drv.EnqueueMigrateMemObjects(q.handle, []cl.Handle{m.handle}, flags, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to migrate memory object")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}
