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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
)

// checkLeaks returns a function that fails the test if facades created
// after the call are still alive.
func checkLeaks(t *testing.T) func() {
	before := liveWrappers()
	return func() {
		require.Equal(t, before, liveWrappers(), "facades still alive at end of test")
	}
}

func newTestGPUContext(t *testing.T) (*cl.MockDriver, *Context, *Queue) {
	drv := cl.NewMockDriverOnWorkstation()
	ctx, err := NewGPUContext(drv)
	require.Nil(t, err)
	dev, err := ctx.Device(0)
	require.Nil(t, err)
	q, err := NewQueue(ctx, dev, cl.QUEUE_PROFILING_ENABLE)
	require.Nil(t, err)
	return drv, ctx, q
}

func TestWrapIdentity(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriverOnWorkstation()
	handles, ret := drv.GetPlatformIDs()
	require.Equal(t, cl.SUCCESS, ret)

	p1 := WrapPlatform(drv, handles[0])
	require.Equal(t, handles[0], p1.Handle())
	require.Equal(t, 1, p1.RefCount())

	p2 := WrapPlatform(drv, handles[0])
	require.Same(t, p1, p2)
	require.Equal(t, 2, p1.RefCount())

	other := WrapPlatform(drv, handles[1])
	require.NotSame(t, p1, other)

	require.Nil(t, p2.Destroy())
	require.Equal(t, 1, p1.RefCount())
	require.Nil(t, p1.Destroy())
	require.Nil(t, other.Destroy())
}

func TestMemcheck(t *testing.T) {
	drv, ctx, q := newTestGPUContext(t)
	require.False(t, Memcheck())

	buf, err := NewBuffer(ctx, cl.MEM_READ_WRITE, 64, nil)
	require.Nil(t, err)
	_, err = buf.EnqueueWrite(q, true, 0, 64, make([]byte, 64), nil)
	require.Nil(t, err)

	require.Nil(t, buf.Destroy())
	require.Nil(t, q.Destroy())
	require.Nil(t, ctx.Destroy())

	require.True(t, Memcheck())
	require.Zero(t, drv.LiveObjects())
}

func TestConcurrentRefCounting(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriverOnWorkstation()
	handles, ret := drv.GetPlatformIDs()
	require.Equal(t, cl.SUCCESS, ret)

	p := WrapPlatform(drv, handles[0])

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f := WrapPlatform(drv, handles[0])
				f.Destroy()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, p.RefCount())
	require.Nil(t, p.Destroy())
}

func TestConcurrentWrapAndDestroy(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriverOnWorkstation()
	handles, ret := drv.GetPlatformIDs()
	require.Equal(t, cl.SUCCESS, ret)

	var wg sync.WaitGroup
	var stale atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				f := WrapPlatform(drv, handles[0])
				if !registered(f) {
					stale.Add(1)
				}
				f.Destroy()
			}
		}()
	}
	wg.Wait()

	require.Zero(t, stale.Load())
}

func TestInfoCache(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriverOnWorkstation()
	platforms, err := NewPlatforms(drv)
	require.Nil(t, err)
	defer platforms.Destroy()

	dev, err := platforms.Get(0).Device(0)
	require.Nil(t, err)

	calls := drv.Calls("GetDeviceInfo")
	first, err := dev.GetInfo(cl.DEVICE_NAME)
	require.Nil(t, err)
	require.Equal(t, calls+1, drv.Calls("GetDeviceInfo"))

	second, err := dev.GetInfo(cl.DEVICE_NAME)
	require.Nil(t, err)
	require.Same(t, first, second)
	require.Equal(t, first.Size(), second.Size())
	require.Equal(t, calls+1, drv.Calls("GetDeviceInfo"))
	require.Equal(t, "Mock GeForce RTX 3080", second.String())

	fresh, err := dev.GetInfoFresh(cl.DEVICE_NAME)
	require.Nil(t, err)
	require.NotSame(t, first, fresh)
	require.Equal(t, calls+2, drv.Calls("GetDeviceInfo"))

	cached, err := dev.GetInfo(cl.DEVICE_NAME)
	require.Nil(t, err)
	require.Same(t, fresh, cached)
}

func TestInfoFailuresAreNotCached(t *testing.T) {
	defer checkLeaks(t)()

	gpu := cl.NewMockGPUDevice("Flaky GPU")
	drv := cl.NewMockDriver(cl.NewMockPlatform("Flaky", "Flaky Inc.", "OpenCL 1.2", gpu))

	dev := WrapDevice(drv, gpu.Handle)
	defer dev.Destroy()

	gpu.DeleteInfo(cl.DEVICE_VENDOR)
	_, err := dev.Vendor()
	require.Error(t, err)
	require.ErrorIs(t, err, cl.INVALID_VALUE)

	gpu.SetInfo(cl.DEVICE_VENDOR, cl.EncodeString("Recovered Inc."))
	vendor, err := dev.Vendor()
	require.Nil(t, err)
	require.Equal(t, "Recovered Inc.", vendor)

	_, err = dev.GetInfo(cl.DEVICE_PARTITION_TYPE)
	require.ErrorIs(t, err, ErrInfoUnavailable)
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		target      error
		expected    string
	}{
		{
			"framework error",
			newError(CodeDeviceNotFound, "no device found for selected filters"),
			ErrDeviceNotFound,
			`Error 5 from domain 'framework' with message: "no device found for selected filters"`,
		},
		{
			"driver error",
			driverError(cl.INVALID_VALUE, "unable to get info"),
			cl.INVALID_VALUE,
			`Error -30 from domain 'driver' with message: "unable to get info (OpenCL error -30: Invalid value)"`,
		},
		{
			"wrapped driver error",
			fmt.Errorf("error creating context: %w", driverError(cl.INVALID_DEVICE, "unable to create context")),
			cl.INVALID_DEVICE,
			`Error -33 from domain 'driver' with message: "unable to create context (OpenCL error -33: Invalid device)"`,
		},
		{
			"foreign error",
			errors.New("boom"),
			nil,
			`Error 15 from domain 'framework' with message: "boom"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if tc.target != nil {
				require.ErrorIs(t, tc.err, tc.target)
			}
			require.Equal(t, tc.expected, Describe(tc.err))
		})
	}

	require.False(t, errors.Is(newError(CodeArgs, "x"), ErrOther))
	require.False(t, errors.Is(driverError(cl.INVALID_VALUE, "x"), cl.INVALID_DEVICE))
}
