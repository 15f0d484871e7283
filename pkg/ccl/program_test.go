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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
)

const vecAddSource = `
__kernel void vec_add(__global const uint* a, __global const uint* b,
                      __global uint* c, const uint n) {
	uint gid = get_global_id(0);
	if (gid < n) c[gid] = a[gid] + b[gid];
}

__kernel void vec_scale(__global uint* a, const uint factor) {
	a[get_global_id(0)] *= factor;
}
`

const brokenSource = `
__kernel void broken(__global uint* a) {
	a[get_global_id(0)] = 1;
`

func TestProgramBuild(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	prg, err := NewProgramFromSource(ctx, vecAddSource)
	require.Nil(t, err)
	defer prg.Destroy()

	_, err = prg.NumKernels()
	require.ErrorIs(t, err, cl.INVALID_PROGRAM_EXECUTABLE)

	require.Nil(t, prg.Build("-cl-fast-relaxed-math"))

	devices, err := prg.Devices()
	require.Nil(t, err)
	require.Len(t, devices, 2)
	for _, dev := range devices {
		status, err := prg.BuildStatus(dev)
		require.Nil(t, err)
		require.Equal(t, cl.BUILD_SUCCESS, status)
		options, err := prg.BuildOptions(dev)
		require.Nil(t, err)
		require.Equal(t, "-cl-fast-relaxed-math", options)
		binaryType, err := prg.BinaryType(dev)
		require.Nil(t, err)
		require.Equal(t, cl.PROGRAM_BINARY_TYPE_EXECUTABLE, binaryType)
	}

	n, err := prg.NumKernels()
	require.Nil(t, err)
	require.Equal(t, 2, n)
	names, err := prg.KernelNames()
	require.Nil(t, err)
	require.Equal(t, []string{"vec_add", "vec_scale"}, names)

	source, err := prg.Source()
	require.Nil(t, err)
	require.Equal(t, vecAddSource, source)

	k1, err := prg.GetKernel("vec_add")
	require.Nil(t, err)
	k2, err := prg.GetKernel("vec_add")
	require.Nil(t, err)
	require.Same(t, k1, k2)

	fresh, err := prg.NewKernel("vec_add")
	require.Nil(t, err)
	require.NotSame(t, k1, fresh)
	name, err := fresh.FunctionName()
	require.Nil(t, err)
	require.Equal(t, "vec_add", name)
	require.Nil(t, fresh.Destroy())

	_, err = prg.GetKernel("missing")
	require.ErrorIs(t, err, cl.INVALID_KERNEL_NAME)

	require.ErrorIs(t, prg.Build("--bogus"), cl.INVALID_OPERATION)
}

func TestProgramBuildFailureKeepsLog(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	prg, err := NewProgramFromSource(ctx, brokenSource)
	require.Nil(t, err)
	defer prg.Destroy()

	err = prg.Build("")
	require.ErrorIs(t, err, cl.BUILD_PROGRAM_FAILURE)

	dev, err := prg.Device(0)
	require.Nil(t, err)
	status, err := prg.BuildStatus(dev)
	require.Nil(t, err)
	require.NotEqual(t, cl.BUILD_SUCCESS, status)

	devLog, err := infoString(prg.BuildInfo(dev, cl.PROGRAM_BUILD_LOG))
	require.Nil(t, err)
	require.NotEmpty(t, devLog)
	require.Contains(t, devLog, "error")

	buildLog, err := prg.BuildLog()
	require.Nil(t, err)
	require.Contains(t, buildLog, "\n\n*** Build log for device 'Mock GeForce RTX 3080' ***\n\n")
	require.Contains(t, buildLog, "\n\n*** Build log for device 'Mock GeForce RTX 3060' ***\n\n")
	require.Contains(t, buildLog, devLog)

	_, err = prg.GetKernel("broken")
	require.ErrorIs(t, err, cl.INVALID_PROGRAM_EXECUTABLE)
}

func TestProgramBinaries(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	dir := t.TempDir()

	prg, err := NewProgramFromSource(ctx, vecAddSource)
	require.Nil(t, err)
	defer prg.Destroy()

	dev, err := ctx.Device(0)
	require.Nil(t, err)

	_, err = prg.Binary(dev)
	require.ErrorIs(t, err, ErrInfoUnavailable)

	require.Nil(t, prg.Build(""))

	binary, err := prg.Binary(dev)
	require.Nil(t, err)
	require.NotEmpty(t, binary)

	path := filepath.Join(dir, "vec_add.bin")
	require.Nil(t, prg.SaveBinary(dev, path))

	require.Nil(t, prg.SaveAllBinaries(filepath.Join(dir, "prg_"), ".bin"))
	for _, name := range []string{"prg_Mock_GeForce_RTX_3080_00.bin", "prg_Mock_GeForce_RTX_3060_01.bin"} {
		saved, err := os.ReadFile(filepath.Join(dir, name))
		require.Nil(t, err)
		require.NotEmpty(t, saved)
	}

	loaded, status, err := NewProgramFromBinaryFiles(ctx, []*Device{dev}, []string{path})
	require.Nil(t, err)
	defer loaded.Destroy()
	require.Equal(t, []cl.Return{cl.SUCCESS}, status)
	require.Nil(t, loaded.Build(""))

	k, err := loaded.GetKernel("vec_scale")
	require.Nil(t, err)
	n, err := k.NumArgs()
	require.Nil(t, err)
	require.Equal(t, 2, n)

	_, status, err = NewProgramFromBinaries(ctx, []*Device{dev}, [][]byte{[]byte("not a binary")})
	require.ErrorIs(t, err, cl.INVALID_BINARY)
	require.Equal(t, []cl.Return{cl.INVALID_BINARY}, status)

	_, _, err = NewProgramFromBinaries(ctx, []*Device{dev}, nil)
	require.ErrorIs(t, err, ErrArgs)

	_, err = NewProgramFromFile(ctx, filepath.Join(dir, "missing.cl"))
	require.ErrorIs(t, err, ErrOpenFile)

	srcPath := filepath.Join(dir, "vec_add.cl")
	require.Nil(t, os.WriteFile(srcPath, []byte(vecAddSource), 0644))
	fromFile, err := NewProgramFromFile(ctx, srcPath)
	require.Nil(t, err)
	defer fromFile.Destroy()
	require.Nil(t, fromFile.Build(""))
}

func TestProgramCompileAndLink(t *testing.T) {
	defer checkLeaks(t)()

	_, ctx, q := newTestGPUContext(t)
	defer ctx.Destroy()
	defer q.Destroy()

	header, err := NewProgramFromSource(ctx, "#define FACTOR 2\n")
	require.Nil(t, err)
	defer header.Destroy()

	first, err := NewProgramFromSource(ctx, "#include \"factor.h\"\n__kernel void twice(__global uint* a) { a[0] *= FACTOR; }\n")
	require.Nil(t, err)
	defer first.Destroy()
	second, err := NewProgramFromSource(ctx, "__kernel void once(__global uint* a) { }\n")
	require.Nil(t, err)
	defer second.Destroy()

	require.Nil(t, first.Compile(nil, "", []*Program{header}, []string{"factor.h"}))
	require.Nil(t, second.Compile(nil, "", nil, nil))
	require.ErrorIs(t, first.Compile(nil, "", []*Program{header}, nil), ErrArgs)

	linked, err := Link(ctx, nil, "", first, second)
	require.Nil(t, err)
	defer linked.Destroy()

	names, err := linked.KernelNames()
	require.Nil(t, err)
	require.Equal(t, []string{"twice", "once"}, names)

	library, err := Link(ctx, nil, "-create-library", first)
	require.Nil(t, err)
	defer library.Destroy()
	dev, err := ctx.Device(1)
	require.Nil(t, err)
	binaryType, err := library.BinaryType(dev)
	require.Nil(t, err)
	require.Equal(t, cl.PROGRAM_BINARY_TYPE_LIBRARY, binaryType)
}

func TestProgramCompileRequiresOpenCL12(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriver(cl.NewMockPlatform("Old", "Old Inc.", "OpenCL 1.1 Legacy", cl.NewMockGPUDevice("Old GPU")))
	ctx, err := NewGPUContext(drv)
	require.Nil(t, err)
	defer ctx.Destroy()

	prg, err := NewProgramFromSource(ctx, vecAddSource)
	require.Nil(t, err)
	defer prg.Destroy()

	require.ErrorIs(t, prg.Compile(nil, "", nil, nil), ErrUnsupportedOCL)
	_, err = Link(ctx, nil, "", prg)
	require.ErrorIs(t, err, ErrUnsupportedOCL)

	require.Nil(t, prg.Build(""))
	k, err := prg.GetKernel("vec_add")
	require.Nil(t, err)
	_, err = k.ArgInfo(0, cl.KERNEL_ARG_NAME)
	require.ErrorIs(t, err, ErrUnsupportedOCL)
}

func TestBuiltInKernels(t *testing.T) {
	defer checkLeaks(t)()

	drv := cl.NewMockDriverOnWorkstation()
	ctx, err := NewCPUContext(drv)
	require.Nil(t, err)
	defer ctx.Destroy()

	devices, err := ctx.Devices()
	require.Nil(t, err)

	prg, err := NewProgramFromBuiltInKernels(ctx, devices, []string{"pocl.add.i8", "pocl.mul.i32"})
	require.Nil(t, err)
	defer prg.Destroy()

	names, err := prg.KernelNames()
	require.Nil(t, err)
	require.Equal(t, "pocl.add.i8;pocl.mul.i32", strings.Join(names, ";"))

	k, err := prg.GetKernel("pocl.mul.i32")
	require.Nil(t, err)
	name, err := k.FunctionName()
	require.Nil(t, err)
	require.Equal(t, "pocl.mul.i32", name)

	_, err = NewProgramFromBuiltInKernels(ctx, devices, []string{"pocl.missing"})
	require.ErrorIs(t, err, cl.INVALID_VALUE)
}
