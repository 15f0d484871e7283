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
	"sync"
	"sync/atomic"

	"github.com/NVIDIA/clwrap/internal/cl"
	log "github.com/sirupsen/logrus"
)

// wrapped is implemented by every facade type. releaseDriver releases the
// driver object and releaseFields drops whatever the facade owns besides its
// handle.
type wrapped interface {
	base() *wrapper
	releaseDriver() cl.Return
	releaseFields()
}

// wrapper holds the state shared by all facades.
type wrapper struct {
	drv      cl.Interface
	handle   cl.Handle
	refCount atomic.Int32
	info     map[infoKey]*Info
}

// registry maps each live driver handle to its single facade.
var registry struct {
	sync.Mutex
	table map[cl.Handle]wrapped
}

func (w *wrapper) base() *wrapper {
	return w
}

// Handle returns the driver handle of the object.
func (w *wrapper) Handle() cl.Handle {
	return w.handle
}

// Driver returns the driver the object was obtained from.
func (w *wrapper) Driver() cl.Interface {
	return w.drv
}

// Ref increments the reference count of the facade.
func (w *wrapper) Ref() {
	w.refCount.Add(1)
}

// RefCount returns the reference count of the facade, not of the driver
// object.
func (w *wrapper) RefCount() int {
	return int(w.refCount.Load())
}

// wrap returns the facade registered for h with its reference count
// incremented, or registers a new one created by newFacade.
func wrap[T wrapped](drv cl.Interface, h cl.Handle, newFacade func() T) T {
	f, _ := wrapCreated(drv, h, newFacade)
	return f
}

// wrapCreated is wrap, also reporting whether a new facade was registered.
func wrapCreated[T wrapped](drv cl.Interface, h cl.Handle, newFacade func() T) (T, bool) {
	registry.Lock()
	defer registry.Unlock()

	if registry.table == nil {
		registry.table = make(map[cl.Handle]wrapped)
	}

	if f, exists := registry.table[h]; exists {
		f.base().refCount.Add(1)
		return f.(T), false
	}

	f := newFacade()
	w := f.base()
	w.drv = drv
	w.handle = h
	w.refCount.Store(1)
	registry.table[h] = f

	log.Debugf("Wrapped %T with handle %#x", f, h)
	return f, true
}

// adopt wraps a handle obtained from an info query. Since the facade
// releases the driver object when destroyed, a newly registered facade
// retains it first.
func adopt[T wrapped](drv cl.Interface, h cl.Handle, newFacade func() T, retain func(cl.Handle) cl.Return) (T, error) {
	f, created := wrapCreated(drv, h, newFacade)
	if created {
		if ret := retain(h); ret != cl.SUCCESS {
			forget(h)
			var zero T
			return zero, driverError(ret, "unable to retain object %#x", h)
		}
	}
	return f, nil
}

// unref decrements the reference count of f and destroys it once the count
// reaches zero. It returns whether f was destroyed. The facade leaves the
// registry under the same lock that wrap takes, so a dying facade is never
// handed out again. It is removed even when the driver refuses to release
// the object.
func unref(f wrapped) (bool, error) {
	w := f.base()

	registry.Lock()
	if w.refCount.Add(-1) > 0 {
		registry.Unlock()
		return false, nil
	}
	if registry.table[w.handle] == f {
		unregister(w.handle)
	}
	registry.Unlock()

	var err error
	if ret := f.releaseDriver(); ret != cl.SUCCESS {
		err = driverError(ret, "unable to release object %#x", w.handle)
	}

	w.info = nil
	f.releaseFields()

	log.Debugf("Destroyed %T with handle %#x", f, w.handle)
	return true, err
}

func forget(h cl.Handle) {
	registry.Lock()
	defer registry.Unlock()
	unregister(h)
}

// unregister must be called with the registry locked.
func unregister(h cl.Handle) {
	delete(registry.table, h)
	if len(registry.table) == 0 {
		registry.table = nil
	}
}

// registered reports whether f is the facade registered for its handle.
func registered(f wrapped) bool {
	registry.Lock()
	defer registry.Unlock()
	return registry.table[f.base().handle] == f
}

// Memcheck returns true when no facade is alive.
func Memcheck() bool {
	registry.Lock()
	defer registry.Unlock()
	return len(registry.table) == 0
}

// liveWrappers returns the number of live facades.
func liveWrappers() int {
	registry.Lock()
	defer registry.Unlock()
	return len(registry.table)
}
