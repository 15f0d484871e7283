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

package cl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const vecAddSource = `
/* Adds two vectors. */
__kernel void vec_add(__global const uint* a, __global const uint* b,
                      __global uint* c, const uint n) {
	uint gid = get_global_id(0);
	if (gid < n) c[gid] = a[gid] + b[gid];
}

__kernel __attribute__((reqd_work_group_size(8, 1, 1)))
void fixed(__local float* scratch, read_only image2d_t img, sampler_t s) {
}
`

func newTestContext(t *testing.T) (*MockDriver, Handle, Handle, Handle) {
	d := NewMockDriverOnWorkstation()
	platforms, ret := d.GetPlatformIDs()
	require.Equal(t, SUCCESS, ret)
	devices, ret := d.GetDeviceIDs(platforms[0], DEVICE_TYPE_GPU)
	require.Equal(t, SUCCESS, ret)
	ctx, ret := d.CreateContext(nil, devices[:1])
	require.Equal(t, SUCCESS, ret)
	q, ret := d.CreateCommandQueue(ctx, devices[0], QUEUE_PROFILING_ENABLE)
	require.Equal(t, SUCCESS, ret)
	return d, ctx, devices[0], q
}

func TestInfoSizeProbe(t *testing.T) {
	d, _, dev, _ := newTestContext(t)

	size, ret := d.GetDeviceInfo(dev, DEVICE_NAME, nil)
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, len("Mock GeForce RTX 3080")+1, size)

	value := make([]byte, size)
	n, ret := d.GetDeviceInfo(dev, DEVICE_NAME, value)
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, size, n)
	require.Equal(t, "Mock GeForce RTX 3080", DecodeString(value))

	_, ret = d.GetDeviceInfo(dev, DEVICE_NAME, make([]byte, 2))
	require.Equal(t, INVALID_VALUE, ret)

	size, ret = d.GetDeviceInfo(dev, DEVICE_PARTITION_TYPE, nil)
	require.Equal(t, SUCCESS, ret)
	require.Zero(t, size)
}

func TestReturnStrings(t *testing.T) {
	testCases := []struct {
		ret      Return
		expected string
	}{
		{SUCCESS, "Successful operation"},
		{INVALID_VALUE, "Invalid value"},
		{INVALID_DEVICE_QUEUE, "Invalid device queue"},
		{Return(-25), "Unassigned error code"},
		{Return(-500), "Unknown OpenCL error code"},
		{PLATFORM_NOT_FOUND_KHR, "No platforms found"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("code %d", tc.ret), func(t *testing.T) {
			require.Equal(t, tc.expected, tc.ret.String())
		})
	}
	require.Equal(t, "OpenCL error -30: Invalid value", INVALID_VALUE.Error())
}

func TestImageElemSize(t *testing.T) {
	testCases := []struct {
		format   ImageFormat
		expected int
	}{
		{ImageFormat{RGBA, UNSIGNED_INT8}, 4},
		{ImageFormat{RGBA, FLOAT}, 16},
		{ImageFormat{R, UNSIGNED_INT32}, 4},
		{ImageFormat{RG, HALF_FLOAT}, 4},
		{ImageFormat{RGB, UNORM_SHORT_565}, 2},
		{ImageFormat{RGB, UNORM_INT_101010}, 4},
		{ImageFormat{RGB, UNORM_INT8}, 0},
		{ImageFormat{RGBA, UNORM_SHORT_555}, 0},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("format %d", i), func(t *testing.T) {
			require.Equal(t, tc.expected, tc.format.ElemSize())
		})
	}
}

func TestCheckSyntax(t *testing.T) {
	testCases := []struct {
		description string
		source      string
		line        int
		valid       bool
	}{
		{"balanced", "__kernel void k() { int a[2] = {1, 2}; }", 0, true},
		{"brackets in comments", "// {\n/* ( */ __kernel void k() {}", 0, true},
		{"brackets in strings", `__kernel void k() { printf("{"); }`, 0, true},
		{"missing brace", "__kernel void k() {\n  int a;\n", 1, false},
		{"extra paren", "__kernel void k() {\n\n  x = (1));\n}", 3, false},
		{"stray character", "__kernel void k() {\n @ \n}", 2, false},
		{"unterminated comment", "/* k", 1, false},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			line, _, msg := checkSyntax(tc.source)
			if tc.valid {
				require.Empty(t, msg)
				return
			}
			require.NotEmpty(t, msg)
			require.Equal(t, tc.line, line)
		})
	}
}

func TestParseKernels(t *testing.T) {
	decls := parseKernels(vecAddSource)
	require.Len(t, decls, 2)

	require.Equal(t, "vec_add", decls[0].name)
	require.Len(t, decls[0].params, 4)
	require.Equal(t, "uint*", decls[0].params[0].typeName)
	require.Equal(t, KERNEL_ARG_ADDRESS_GLOBAL, decls[0].params[0].address)
	require.Equal(t, KERNEL_ARG_TYPE_CONST, decls[0].params[0].qualifier)
	require.Equal(t, paramMem, decls[0].params[2].kind)
	require.Equal(t, paramValue, decls[0].params[3].kind)
	require.Equal(t, 4, decls[0].params[3].size)
	require.Equal(t, "n", decls[0].params[3].name)

	require.Equal(t, "fixed", decls[1].name)
	require.Equal(t, [3]int{8, 1, 1}, decls[1].reqdSize)
	require.Equal(t, paramLocal, decls[1].params[0].kind)
	require.Equal(t, paramImage, decls[1].params[1].kind)
	require.Equal(t, KERNEL_ARG_ACCESS_READ_ONLY, decls[1].params[1].access)
	require.Equal(t, paramSampler, decls[1].params[2].kind)
}

func TestScalarSize(t *testing.T) {
	require.Equal(t, 4, scalarSize("uint"))
	require.Equal(t, 16, scalarSize("float4"))
	require.Equal(t, 16, scalarSize("int3"))
	require.Equal(t, 64, scalarSize("double8"))
	require.Equal(t, 0, scalarSize("struct foo"))
}

func TestBuildFailureKeepsLog(t *testing.T) {
	d, ctx, dev, _ := newTestContext(t)

	prg, ret := d.CreateProgramWithSource(ctx, []string{"__kernel void k(__global int* a) {\n  a[0] = 1;\n"})
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, BUILD_PROGRAM_FAILURE, d.BuildProgram(prg, nil, ""))

	value := make([]byte, 4)
	_, ret = d.GetProgramBuildInfo(prg, dev, PROGRAM_BUILD_STATUS, value)
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, BUILD_ERROR, BuildStatus(DecodeUint32(value)))

	size, ret := d.GetProgramBuildInfo(prg, dev, PROGRAM_BUILD_LOG, nil)
	require.Equal(t, SUCCESS, ret)
	value = make([]byte, size)
	_, ret = d.GetProgramBuildInfo(prg, dev, PROGRAM_BUILD_LOG, value)
	require.Equal(t, SUCCESS, ret)
	require.Contains(t, DecodeString(value), "error")

	_, ret = d.CreateKernel(prg, "k")
	require.Equal(t, INVALID_PROGRAM_EXECUTABLE, ret)
}

func TestNDRangeExecution(t *testing.T) {
	d, ctx, _, q := newTestContext(t)
	d.RegisterKernel("vec_add", func(wi *MockWorkItem, args []MockArg) {
		gid := wi.GlobalID[0]
		if uint32(gid) < args[3].Uint32() {
			args[2].SetUint32(gid, args[0].GetUint32(gid)+args[1].GetUint32(gid))
		}
	})

	const n = 64
	a := make([]byte, 4*n)
	b := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		copy(a[4*i:], EncodeUint32(uint32(i)))
		copy(b[4*i:], EncodeUint32(uint32(2*i)))
	}
	bufA, ret := d.CreateBuffer(ctx, MEM_READ_ONLY|MEM_COPY_HOST_PTR, len(a), a)
	require.Equal(t, SUCCESS, ret)
	bufB, ret := d.CreateBuffer(ctx, MEM_READ_ONLY|MEM_COPY_HOST_PTR, len(b), b)
	require.Equal(t, SUCCESS, ret)
	bufC, ret := d.CreateBuffer(ctx, MEM_WRITE_ONLY, len(a), nil)
	require.Equal(t, SUCCESS, ret)

	prg, ret := d.CreateProgramWithSource(ctx, []string{vecAddSource})
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, SUCCESS, d.BuildProgram(prg, nil, "-cl-fast-relaxed-math"))
	k, ret := d.CreateKernel(prg, "vec_add")
	require.Equal(t, SUCCESS, ret)

	_, ret = d.EnqueueNDRangeKernel(q, k, 1, nil, []int{n}, []int{16}, nil)
	require.Equal(t, INVALID_KERNEL_ARGS, ret)

	for i, buf := range []Handle{bufA, bufB, bufC} {
		require.Equal(t, SUCCESS, d.SetKernelArg(k, i, HandleSize, EncodeHandles(buf)))
	}
	require.Equal(t, INVALID_ARG_SIZE, d.SetKernelArg(k, 3, 8, EncodeUint64(n)))
	require.Equal(t, SUCCESS, d.SetKernelArg(k, 3, 4, EncodeUint32(n)))
	require.Equal(t, INVALID_ARG_INDEX, d.SetKernelArg(k, 4, 4, EncodeUint32(n)))

	_, ret = d.EnqueueNDRangeKernel(q, k, 1, nil, []int{n}, []int{24}, nil)
	require.Equal(t, INVALID_WORK_GROUP_SIZE, ret)
	_, ret = d.EnqueueNDRangeKernel(q, k, 1, nil, []int{n}, []int{2048}, nil)
	require.Equal(t, INVALID_WORK_ITEM_SIZE, ret)

	evt, ret := d.EnqueueNDRangeKernel(q, k, 1, nil, []int{n}, []int{16}, nil)
	require.Equal(t, SUCCESS, ret)

	out := make([]byte, 4*n)
	_, ret = d.EnqueueReadBuffer(q, bufC, true, 0, len(out), out, []Handle{evt})
	require.Equal(t, SUCCESS, ret)
	for i := 0; i < n; i++ {
		require.Equal(t, uint32(3*i), DecodeUint32(out[4*i:]))
	}
}

func TestEventTimestamps(t *testing.T) {
	d, ctx, dev, q := newTestContext(t)

	buf, ret := d.CreateBuffer(ctx, 0, 64, nil)
	require.Equal(t, SUCCESS, ret)
	evt, ret := d.EnqueueWriteBuffer(q, buf, true, 0, 64, make([]byte, 64), nil)
	require.Equal(t, SUCCESS, ret)

	var times []uint64
	for p := PROFILING_COMMAND_QUEUED; p <= PROFILING_COMMAND_END; p++ {
		value := make([]byte, 8)
		_, ret := d.GetEventProfilingInfo(evt, p, value)
		require.Equal(t, SUCCESS, ret)
		times = append(times, DecodeUint64(value))
	}
	for i := 1; i < len(times); i++ {
		require.LessOrEqual(t, times[i-1], times[i])
	}

	require.Equal(t, SUCCESS, d.SetEventTimestamps(evt, 1, 2, 10, 15))
	value := make([]byte, 8)
	_, ret = d.GetEventProfilingInfo(evt, PROFILING_COMMAND_END, value)
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, uint64(15), DecodeUint64(value))

	plain, ret := d.CreateCommandQueue(ctx, dev, 0)
	require.Equal(t, SUCCESS, ret)
	evt, ret = d.EnqueueMarkerWithWaitList(plain, nil)
	require.Equal(t, SUCCESS, ret)
	_, ret = d.GetEventProfilingInfo(evt, PROFILING_COMMAND_START, value)
	require.Equal(t, PROFILING_INFO_NOT_AVAILABLE, ret)
}

func TestSubBufferAndCallbacks(t *testing.T) {
	d, ctx, _, q := newTestContext(t)

	parent, ret := d.CreateBuffer(ctx, MEM_READ_WRITE, 256, nil)
	require.Equal(t, SUCCESS, ret)
	_, ret = d.CreateSubBuffer(parent, 0, 3, 16)
	require.Equal(t, MISALIGNED_SUB_BUFFER_OFFSET, ret)
	sub, ret := d.CreateSubBuffer(parent, 0, 64, 32)
	require.Equal(t, SUCCESS, ret)

	var fired []Handle
	require.Equal(t, SUCCESS, d.SetMemObjectDestructorCallback(parent, func(h Handle) { fired = append(fired, h) }))
	require.Equal(t, SUCCESS, d.SetMemObjectDestructorCallback(parent, func(h Handle) { fired = append(fired, h+1000) }))

	_, ret = d.EnqueueWriteBuffer(q, sub, true, 0, 4, EncodeUint32(0xCAFE), nil)
	require.Equal(t, SUCCESS, ret)
	out := make([]byte, 4)
	_, ret = d.EnqueueReadBuffer(q, parent, true, 64, 4, out, nil)
	require.Equal(t, SUCCESS, ret)
	require.Equal(t, uint32(0xCAFE), DecodeUint32(out))

	require.Equal(t, SUCCESS, d.ReleaseMemObject(parent))
	require.Empty(t, fired)
	require.Equal(t, SUCCESS, d.ReleaseMemObject(sub))
	require.Equal(t, []Handle{parent, parent + 1000}, fired)
}

func TestBufferFlags(t *testing.T) {
	d, ctx, _, _ := newTestContext(t)
	host := make([]byte, 16)

	testCases := []struct {
		description string
		flags       MemFlags
		host        []byte
		expected    Return
	}{
		{"plain", MEM_READ_WRITE, nil, SUCCESS},
		{"copy host", MEM_COPY_HOST_PTR, host, SUCCESS},
		{"use host", MEM_USE_HOST_PTR, host, SUCCESS},
		{"use and copy", MEM_USE_HOST_PTR | MEM_COPY_HOST_PTR, host, INVALID_VALUE},
		{"use and alloc", MEM_USE_HOST_PTR | MEM_ALLOC_HOST_PTR, host, INVALID_VALUE},
		{"host without flag", MEM_READ_WRITE, host, INVALID_HOST_PTR},
		{"flag without host", MEM_COPY_HOST_PTR, nil, INVALID_HOST_PTR},
		{"two access modes", MEM_READ_ONLY | MEM_WRITE_ONLY, nil, INVALID_VALUE},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			buf, ret := d.CreateBuffer(ctx, tc.flags, 16, tc.host)
			require.Equal(t, tc.expected, ret)
			if ret == SUCCESS {
				require.Equal(t, SUCCESS, d.ReleaseMemObject(buf))
			}
		})
	}
}

func TestSubDevices(t *testing.T) {
	d := NewMockDriverOnWorkstation()
	platforms, ret := d.GetPlatformIDs()
	require.Equal(t, SUCCESS, ret)
	cpus, ret := d.GetDeviceIDs(platforms[1], DEVICE_TYPE_CPU)
	require.Equal(t, SUCCESS, ret)

	subs, ret := d.CreateSubDevices(cpus[0], []uint64{DEVICE_PARTITION_EQUALLY, 2, 0})
	require.Equal(t, SUCCESS, ret)
	require.Len(t, subs, 4)
	for _, sub := range subs {
		value := make([]byte, HandleSize)
		_, ret := d.GetDeviceInfo(sub, DEVICE_PARENT_DEVICE, value)
		require.Equal(t, SUCCESS, ret)
		require.Equal(t, cpus[0], Handle(DecodeUint64(value)))
		require.Equal(t, SUCCESS, d.ReleaseDevice(sub))
	}
	require.Zero(t, d.LiveObjects())

	gpus, ret := d.GetDeviceIDs(platforms[0], DEVICE_TYPE_GPU)
	require.Equal(t, SUCCESS, ret)
	_, ret = d.CreateSubDevices(gpus[0], []uint64{DEVICE_PARTITION_EQUALLY, 2, 0})
	require.Equal(t, DEVICE_PARTITION_FAILED, ret)
}
