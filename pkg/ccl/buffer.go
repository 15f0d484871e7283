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

// Buffer wraps a driver buffer or sub-buffer.
type Buffer struct {
	memObject
	parent *Buffer
}

var _ MemObject = (*Buffer)(nil)

func wrapBuffer(drv cl.Interface, h cl.Handle) *Buffer {
	return wrap(drv, h, func() *Buffer { return &Buffer{} })
}

// WrapBuffer adopts a buffer created directly through the driver.
func WrapBuffer(drv cl.Interface, h cl.Handle) *Buffer {
	return wrapBuffer(drv, h)
}

// checkHostFlags applies the driver rules on host memory flags.
func checkHostFlags(flags cl.MemFlags, host []byte) cl.Return {
	if flags&cl.MEM_USE_HOST_PTR != 0 && flags&(cl.MEM_COPY_HOST_PTR|cl.MEM_ALLOC_HOST_PTR) != 0 {
		return cl.INVALID_VALUE
	}
	wantsHost := flags&(cl.MEM_USE_HOST_PTR|cl.MEM_COPY_HOST_PTR) != 0
	if wantsHost != (host != nil) {
		return cl.INVALID_HOST_PTR
	}
	return cl.SUCCESS
}

// NewBuffer creates a buffer of size bytes. host must be given exactly when
// flags include cl.MEM_USE_HOST_PTR or cl.MEM_COPY_HOST_PTR.
func NewBuffer(ctx *Context, flags cl.MemFlags, size int, host []byte) (*Buffer, error) {
	if ret := checkHostFlags(flags, host); ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create buffer: invalid host memory flags")
	}

	h, ret := ctx.drv.CreateBuffer(ctx.handle, flags, size, host)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create buffer")
	}

	return wrapBuffer(ctx.drv, h), nil
}

// NewSubBuffer creates a buffer for the region [origin, origin+size) of
// parent. The sub-buffer holds a reference on its parent.
func NewSubBuffer(parent *Buffer, flags cl.MemFlags, origin int, size int) (*Buffer, error) {
	h, ret := parent.drv.CreateSubBuffer(parent.handle, flags, origin, size)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create sub-buffer")
	}

	sub := wrapBuffer(parent.drv, h)
	parent.Ref()
	sub.parent = parent

	return sub, nil
}

func (b *Buffer) releaseFields() {
	if b.parent != nil {
		b.parent.Destroy()
		b.parent = nil
	}
}

func (b *Buffer) Destroy() error {
	_, err := unref(b)
	return err
}

// Parent returns the buffer this sub-buffer was created from, or nil.
func (b *Buffer) Parent() *Buffer {
	return b.parent
}

// Offset returns the origin of a sub-buffer within its parent.
func (b *Buffer) Offset() (int, error) {
	return infoSizeT(b.GetInfo(cl.MEM_OFFSET))
}

// AssociatedMemObject returns the handle of the parent of a sub-buffer, or 0.
func (b *Buffer) AssociatedMemObject() (cl.Handle, error) {
	return infoHandle(b.GetInfo(cl.MEM_ASSOCIATED_MEMOBJECT))
}

// EnqueueRead copies size bytes at offset into host.
func (b *Buffer) EnqueueRead(q *Queue, blocking bool, offset int, size int, host []byte, wl *EventWaitList) (*Event, error) {
	h, ret := b.drv.EnqueueReadBuffer(q.handle, b.handle, blocking, offset, size, host, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue buffer read")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueWrite copies size bytes from host to offset.
func (b *Buffer) EnqueueWrite(q *Queue, blocking bool, offset int, size int, host []byte, wl *EventWaitList) (*Event, error) {
	h, ret := b.drv.EnqueueWriteBuffer(q.handle, b.handle, blocking, offset, size, host, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue buffer write")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueCopy copies size bytes from this buffer to dst.
func (b *Buffer) EnqueueCopy(q *Queue, dst *Buffer, srcOffset int, dstOffset int, size int, wl *EventWaitList) (*Event, error) {
	h, ret := b.drv.EnqueueCopyBuffer(q.handle, b.handle, dst.handle, srcOffset, dstOffset, size, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue buffer copy")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueCopyToImage copies buffer data starting at srcOffset into region of
// dst at dstOrigin.
func (b *Buffer) EnqueueCopyToImage(q *Queue, dst *Image, srcOffset int, dstOrigin [3]int, region [3]int, wl *EventWaitList) (*Event, error) {
	h, ret := b.drv.EnqueueCopyBufferToImage(q.handle, b.handle, dst.handle, srcOffset, dstOrigin, region, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue buffer to image copy")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueMap maps size bytes at offset into host memory. The region must be
// released with EnqueueUnmap.
func (b *Buffer) EnqueueMap(q *Queue, blocking bool, flags cl.MapFlags, offset int, size int, wl *EventWaitList) ([]byte, *Event, error) {
	mapped, h, ret := b.drv.EnqueueMapBuffer(q.handle, b.handle, blocking, flags, offset, size, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, nil, driverError(ret, "unable to enqueue buffer map")
	}
	wl.Clear()
	return mapped, q.ProduceEvent(h), nil
}
