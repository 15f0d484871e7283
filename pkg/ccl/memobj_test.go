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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
)

func TestBufferTransfers(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	host := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	src, err := NewBuffer(ctx, cl.MEM_READ_ONLY|cl.MEM_COPY_HOST_PTR, len(host), host)
	require.Nil(t, err)
	defer src.Destroy()

	dst, err := NewBuffer(ctx, cl.MEM_READ_WRITE, len(host), nil)
	require.Nil(t, err)
	defer dst.Destroy()

	size, err := dst.Size()
	require.Nil(t, err)
	require.Equal(t, len(host), size)

	flags, err := src.Flags()
	require.Nil(t, err)
	require.Equal(t, cl.MEM_READ_ONLY|cl.MEM_COPY_HOST_PTR, flags)

	copied, err := src.EnqueueCopy(q, dst, 2, 0, 4, nil)
	require.Nil(t, err)

	out := make([]byte, 4)
	read, err := dst.EnqueueRead(q, true, 0, 4, out, NewEventWaitList(copied))
	require.Nil(t, err)
	require.Equal(t, []byte{3, 4, 5, 6}, out)

	name, err := read.Name()
	require.Nil(t, err)
	require.Equal(t, "READ_BUFFER", name)
	read.SetName("Read result")
	name, err = read.Name()
	require.Nil(t, err)
	require.Equal(t, "Read result", name)

	status, err := read.ExecutionStatus()
	require.Nil(t, err)
	require.Equal(t, int32(cl.COMPLETE), status)
	require.Same(t, q, read.Queue())

	mapped, _, err := dst.EnqueueMap(q, true, cl.MAP_WRITE, 0, 4, nil)
	require.Nil(t, err)
	count, err := dst.MapCount()
	require.Nil(t, err)
	require.Equal(t, uint32(1), count)

	copy(mapped, []byte{9, 9, 9, 9})
	_, err = dst.EnqueueUnmap(q, mapped, nil)
	require.Nil(t, err)
	count, err = dst.MapCount()
	require.Nil(t, err)
	require.Zero(t, count)

	_, err = dst.EnqueueRead(q, true, 0, 4, out, nil)
	require.Nil(t, err)
	require.Equal(t, []byte{9, 9, 9, 9}, out)

	require.Equal(t, 5, q.NumEvents())
	require.Nil(t, q.Finish())

	_, err = NewBuffer(ctx, cl.MEM_COPY_HOST_PTR, 8, nil)
	require.ErrorIs(t, err, cl.INVALID_HOST_PTR)
	_, err = NewBuffer(ctx, cl.MEM_USE_HOST_PTR|cl.MEM_COPY_HOST_PTR, 8, host)
	require.ErrorIs(t, err, cl.INVALID_VALUE)
}

func TestSubBufferAndDestructorCallbacks(t *testing.T) {
	defer checkLeaks(t)()

	drv, ctx, q := newTestGPUContext(t)

	parent, err := NewBuffer(ctx, cl.MEM_READ_WRITE, 64, nil)
	require.Nil(t, err)

	sub, err := NewSubBuffer(parent, 0, 16, 16)
	require.Nil(t, err)
	require.Same(t, parent, sub.Parent())
	require.Equal(t, 2, parent.RefCount())

	offset, err := sub.Offset()
	require.Nil(t, err)
	require.Equal(t, 16, offset)
	assoc, err := sub.AssociatedMemObject()
	require.Nil(t, err)
	require.Equal(t, parent.Handle(), assoc)

	_, err = sub.EnqueueWrite(q, true, 0, 4, []byte{7, 7, 7, 7}, nil)
	require.Nil(t, err)
	out := make([]byte, 4)
	_, err = parent.EnqueueRead(q, true, 16, 4, out, nil)
	require.Nil(t, err)
	require.Equal(t, []byte{7, 7, 7, 7}, out)

	var fired []string
	require.Nil(t, parent.SetDestructorCallback(func(cl.Handle) { fired = append(fired, "parent first") }))
	require.Nil(t, parent.SetDestructorCallback(func(cl.Handle) { fired = append(fired, "parent second") }))
	require.Nil(t, sub.SetDestructorCallback(func(cl.Handle) { fired = append(fired, "sub") }))

	require.Nil(t, parent.Destroy())
	require.Empty(t, fired)

	require.Nil(t, sub.Destroy())
	require.Equal(t, []string{"sub", "parent first", "parent second"}, fired)

	q.GarbageCollect()
	require.Zero(t, q.NumEvents())
	require.Nil(t, q.Destroy())
	require.Nil(t, ctx.Destroy())
	require.Zero(t, drv.LiveObjects())
}

func TestImagesAndSamplers(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	format := cl.ImageFormat{ChannelOrder: cl.RGBA, ChannelType: cl.UNSIGNED_INT8}
	desc := cl.ImageDesc{Type: cl.MEM_OBJECT_IMAGE2D, Width: 4, Height: 2}
	img, err := NewImage(ctx, cl.MEM_READ_WRITE, format, desc, nil)
	require.Nil(t, err)
	defer img.Destroy()

	elemSize, err := img.ElemSize()
	require.Nil(t, err)
	require.Equal(t, 4, elemSize)

	width, err := img.Width()
	require.Nil(t, err)
	require.Equal(t, 4, width)
	height, err := img.Height()
	require.Nil(t, err)
	require.Equal(t, 2, height)
	rowPitch, err := img.RowPitch()
	require.Nil(t, err)
	require.Equal(t, 16, rowPitch)

	texels := make([]byte, 4*2*4)
	for i := range texels {
		texels[i] = byte(i)
	}
	_, err = img.EnqueueWrite(q, true, [3]int{0, 0, 0}, [3]int{4, 2, 1}, 0, 0, texels, nil)
	require.Nil(t, err)

	row := make([]byte, 16)
	_, err = img.EnqueueRead(q, true, [3]int{0, 1, 0}, [3]int{4, 1, 1}, 0, 0, row, nil)
	require.Nil(t, err)
	require.Equal(t, texels[16:], row)

	wrapped := WrapImage(ctx.Driver(), img.Handle())
	require.Same(t, img, wrapped)
	require.Nil(t, wrapped.Destroy())

	memType, err := img.MemType()
	require.Nil(t, err)
	require.Equal(t, cl.MEM_OBJECT_IMAGE2D, memType)

	_, err = NewImage(ctx, cl.MEM_READ_WRITE, cl.ImageFormat{ChannelOrder: cl.RGB, ChannelType: cl.UNORM_INT8}, desc, nil)
	require.ErrorIs(t, err, cl.INVALID_IMAGE_FORMAT_DESCRIPTOR)

	sampler, err := NewSampler(ctx, true, cl.ADDRESS_CLAMP_TO_EDGE, cl.FILTER_NEAREST)
	require.Nil(t, err)
	defer sampler.Destroy()

	normalized, err := sampler.NormalizedCoords()
	require.Nil(t, err)
	require.True(t, normalized)
	addressing, err := sampler.AddressingMode()
	require.Nil(t, err)
	require.Equal(t, cl.ADDRESS_CLAMP_TO_EDGE, addressing)
	filter, err := sampler.FilterMode()
	require.Nil(t, err)
	require.Equal(t, cl.FILTER_NEAREST, filter)

	withProps, err := NewSamplerWithProperties(ctx, []cl.SamplerProperty{
		{Name: cl.SAMPLER_FILTER_MODE, Value: uint64(cl.FILTER_LINEAR)},
	})
	require.Nil(t, err)
	defer withProps.Destroy()
	filter, err = withProps.FilterMode()
	require.Nil(t, err)
	require.Equal(t, cl.FILTER_LINEAR, filter)
}

func TestQueueAndWaitList(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	qctx, err := q.Context()
	require.Nil(t, err)
	require.Same(t, ctx, qctx)
	dev, err := q.Device()
	require.Nil(t, err)
	ctxDev, err := ctx.Device(0)
	require.Nil(t, err)
	require.Same(t, ctxDev, dev)

	props, err := q.Properties()
	require.Nil(t, err)
	require.Equal(t, cl.QUEUE_PROFILING_ENABLE, props)

	marker, err := q.EnqueueMarker(nil)
	require.Nil(t, err)

	wl := NewEventWaitList(marker, nil)
	require.Equal(t, 1, wl.Len())
	barrier, err := q.EnqueueBarrier(wl)
	require.Nil(t, err)
	require.Zero(t, wl.Len())

	buf, err := NewBuffer(ctx, cl.MEM_READ_WRITE, 16, nil)
	require.Nil(t, err)
	defer buf.Destroy()
	migrated, err := q.EnqueueMigrateMemObjects([]MemObject{buf}, 0, wl.Add(barrier))
	require.Nil(t, err)
	require.Zero(t, wl.Len())

	require.Nil(t, NewEventWaitList(marker, barrier, migrated).Wait())

	var produced []cl.CommandType
	it := q.EventIterator()
	for e := it.Next(); e != nil; e = it.Next() {
		ct, err := e.CommandType()
		require.Nil(t, err)
		produced = append(produced, ct)
	}
	require.Equal(t, []cl.CommandType{cl.COMMAND_MARKER, cl.COMMAND_BARRIER, cl.COMMAND_MIGRATE_MEM_OBJECTS}, produced)

	start, err := marker.ProfilingInfo(cl.PROFILING_COMMAND_START)
	require.Nil(t, err)
	end, err := marker.ProfilingInfo(cl.PROFILING_COMMAND_END)
	require.Nil(t, err)
	require.LessOrEqual(t, start, end)
}
