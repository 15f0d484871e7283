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

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

const testPlatformsSpec = `
version: v1
platforms:
- name: Test Platform
  version: OpenCL 2.0 test
  profile: EMBEDDED_PROFILE
  extensions: [cl_khr_icd, cl_khr_fp64]
  devices:
  - name: Small GPU
    type: gpu
    vendor: Test Vendor
    version: OpenCL 2.0
    compute-units: 4
    max-work-group-size: 128
    max-work-item-sizes: [128, 64, 16]
    global-mem-size: 268435456
  - name: Tiny Accelerator
    type: accelerator
    image-support: true
    built-in-kernels: [blur, sharpen]
`

func writeSpec(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "platforms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestNewDriverDefault(t *testing.T) {
	drv, err := NewDriver("")
	require.NoError(t, err)

	platforms, err := ccl.NewPlatforms(drv)
	require.NoError(t, err)
	defer platforms.Destroy()
	require.Equal(t, 2, platforms.Count())
}

func TestNewDriverFromFile(t *testing.T) {
	defer func() { require.True(t, ccl.Memcheck()) }()

	drv, err := NewDriver(writeSpec(t, testPlatformsSpec))
	require.NoError(t, err)

	platforms, err := ccl.NewPlatforms(drv)
	require.NoError(t, err)
	defer platforms.Destroy()
	require.Equal(t, 1, platforms.Count())

	p := platforms.Get(0)
	name, err := p.Name()
	require.NoError(t, err)
	require.Equal(t, "Test Platform", name)

	vendor, err := p.Vendor()
	require.NoError(t, err)
	require.Equal(t, "Test Platform", vendor)

	profile, err := p.Profile()
	require.NoError(t, err)
	require.Equal(t, "EMBEDDED_PROFILE", profile)

	extensions, err := p.Extensions()
	require.NoError(t, err)
	require.Equal(t, "cl_khr_icd cl_khr_fp64", extensions)

	version, err := p.OpenCLVersion()
	require.NoError(t, err)
	require.Equal(t, 200, version)

	n, err := p.NumDevices()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	gpu, err := p.Device(0)
	require.NoError(t, err)

	devType, err := gpu.Type()
	require.NoError(t, err)
	require.Equal(t, cl.DEVICE_TYPE_GPU, devType)

	devVendor, err := gpu.Vendor()
	require.NoError(t, err)
	require.Equal(t, "Test Vendor", devVendor)

	units, err := gpu.MaxComputeUnits()
	require.NoError(t, err)
	require.Equal(t, uint32(4), units)

	wg, err := gpu.MaxWorkGroupSize()
	require.NoError(t, err)
	require.Equal(t, 128, wg)

	items, err := gpu.MaxWorkItemSizes()
	require.NoError(t, err)
	require.Equal(t, []int{128, 64, 16}, items)

	mem, err := gpu.GlobalMemSize()
	require.NoError(t, err)
	require.Equal(t, uint64(256<<20), mem)

	cVersion, err := gpu.OpenCLCVersion()
	require.NoError(t, err)
	require.Equal(t, 200, cVersion)

	accel, err := p.Device(1)
	require.NoError(t, err)

	images, err := accel.ImageSupport()
	require.NoError(t, err)
	require.True(t, images)

	info, err := accel.GetInfo(cl.DEVICE_BUILT_IN_KERNELS)
	require.NoError(t, err)
	require.Equal(t, "blur;sharpen", info.String())
}

func TestNewDriverErrors(t *testing.T) {
	_, err := NewDriver(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = NewDriver(writeSpec(t, "version: v2\n"))
	require.Error(t, err)
}

func TestOpenCLCVersion(t *testing.T) {
	require.Equal(t, "OpenCL C 1.1", openCLCVersion("OpenCL 1.1"))
	require.Equal(t, "OpenCL C 2.0", openCLCVersion("OpenCL 2.0 beta"))
	require.Equal(t, "OpenCL C 1.2", openCLCVersion("OpenCL 3.0"))
	require.Equal(t, "OpenCL C 1.2", openCLCVersion("bogus"))
}
