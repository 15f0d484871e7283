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

package matmult

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

func newTestDriver() *cl.MockDriver {
	drv := cl.NewMockDriverOnWorkstation()
	RegisterKernels(drv)
	return drv
}

func firstDevice() *ccl.Filters {
	index := 0
	var filters ccl.Filters
	filters.AddDependent(ccl.DepMenu, &ccl.MenuOptions{Index: &index, Out: io.Discard})
	return &filters
}

func TestMultiplyAB(t *testing.T) {
	cfg := DefaultConfig()

	result, err := Multiply(newTestDriver(), firstDevice(), &cfg)
	require.Nil(t, err)

	require.Equal(t, "Mock GeForce RTX 3080", result.DeviceName)
	require.Equal(t, "NVIDIA Corporation", result.DeviceVendor)
	require.Equal(t, "Mock CUDA", result.PlatformName)

	for i := 0; i < 2; i++ {
		require.Greater(t, result.LWS[i], 0)
		require.LessOrEqual(t, result.LWS[i], cfg.LWS[i])
		require.Zero(t, result.GWS[i]%result.LWS[i])
	}
	require.GreaterOrEqual(t, result.GWS[0], 16)
	require.GreaterOrEqual(t, result.GWS[1], 256)

	require.Equal(t, 16, result.C.Cols)
	require.Equal(t, 256, result.C.Rows)
	require.Equal(t, result.Reference.Data, result.C.Data)
	require.Zero(t, result.Error)

	// Check a few elements without going through gonum.
	for _, rc := range [][2]int{{0, 0}, {17, 5}, {255, 15}} {
		var sum int32
		for i := 0; i < result.A.Cols; i++ {
			sum += result.A.At(rc[0], i) * result.B.At(i, rc[1])
		}
		require.Equal(t, sum, result.C.At(rc[0], rc[1]))
	}

	for _, v := range result.A.Data {
		require.GreaterOrEqual(t, v, int32(-100))
		require.Less(t, v, int32(100))
	}

	require.NotNil(t, result.Profile.Agg(EventKernel))
	require.Equal(t, 4, result.Profile.NumEvents())

	result.Profile.Destroy()
	require.True(t, ccl.Memcheck())
}

func TestMultiplyAAT(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kernel = KernelAAT
	cfg.ASize = [2]int{20, 30}
	cfg.Seed = 7

	var filters ccl.Filters
	filters.AddIndependent(ccl.IndepString, "haswell")

	result, err := Multiply(newTestDriver(), &filters, &cfg)
	require.Nil(t, err)
	defer result.Profile.Destroy()

	require.Equal(t, "Mock cpu-haswell-Intel(R) Core(TM) i7", result.DeviceName)
	require.Equal(t, "Mock Portable Computing Language", result.PlatformName)
	require.Nil(t, result.B)

	require.Equal(t, 30, result.C.Cols)
	require.Equal(t, 30, result.C.Rows)
	require.Equal(t, result.Reference.Data, result.C.Data)
	require.Zero(t, result.Error)

	// A * A^T is symmetric.
	require.Equal(t, result.C.At(3, 11), result.C.At(11, 3))

	require.Equal(t, 3, result.Profile.NumEvents())
}

func TestMultiplySameSeedSameMatrices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42

	r1, err := Multiply(newTestDriver(), firstDevice(), &cfg)
	require.Nil(t, err)
	defer r1.Profile.Destroy()

	r2, err := Multiply(newTestDriver(), firstDevice(), &cfg)
	require.Nil(t, err)
	defer r2.Profile.Destroy()

	require.Equal(t, r1.A.Data, r2.A.Data)
	require.Equal(t, r1.B.Data, r2.B.Data)
	require.Equal(t, r1.C.Data, r2.C.Data)
}

func TestMultiplyBuildFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.cl")
	require.Nil(t, os.WriteFile(path, []byte("__kernel void matmult_ab(__global int* A {"), 0644))

	cfg := DefaultConfig()
	cfg.KernelFile = path

	_, err := Multiply(newTestDriver(), firstDevice(), &cfg)
	require.NotNil(t, err)
	require.True(t, ccl.Memcheck())
}

func TestCheckFlags(t *testing.T) {
	defaults := Flags{
		Kernel:    KernelAB,
		ASize:     "128,256",
		BSize:     "16,128",
		LocalSize: "32,16",
		Range:     "-100,100",
		Device:    -1,
	}

	testCases := []struct {
		Description     string
		Modify          func(f *Flags)
		expectedFailure bool
	}{
		{
			"Defaults",
			func(f *Flags) {},
			false,
		},
		{
			"A times A transposed ignores B",
			func(f *Flags) {
				f.Kernel = KernelAAT
				f.BSize = "3,3"
			},
			false,
		},
		{
			"Unknown kernel",
			func(f *Flags) { f.Kernel = "ba" },
			true,
		},
		{
			"Inner dimensions differ",
			func(f *Flags) { f.BSize = "16,127" },
			true,
		},
		{
			"Malformed size",
			func(f *Flags) { f.ASize = "128x256" },
			true,
		},
		{
			"Empty range",
			func(f *Flags) { f.Range = "5,5" },
			true,
		},
		{
			"Negative local size",
			func(f *Flags) { f.LocalSize = "-1,16" },
			true,
		},
		{
			"Device index and name",
			func(f *Flags) {
				f.Device = 0
				f.DeviceName = "3080"
			},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			f := defaults
			tc.Modify(&f)
			_, err := CheckFlags(&f)
			if tc.expectedFailure {
				require.NotNil(t, err)
			} else {
				require.Nil(t, err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	exportFile := filepath.Join(dir, "prof.tsv")
	optionsFile := filepath.Join(dir, "options.yaml")
	require.Nil(t, os.WriteFile(optionsFile, []byte("separator: \",\"\n"), 0644))

	f := &Flags{
		Kernel:        KernelAB,
		ASize:         "32,64",
		BSize:         "8,32",
		LocalSize:     "32,16",
		Range:         "-10,10",
		Device:        1,
		ExportFile:    exportFile,
		ExportOptions: optionsFile,
		Metrics:       true,
	}
	config, err := CheckFlags(f)
	require.Nil(t, err)

	var out bytes.Buffer
	c := &Context{Flags: f, Config: config, Out: &out}
	require.Nil(t, Run(c))

	report := out.String()
	require.Contains(t, report, "== Using device 'Mock GeForce RTX 3060' from 'NVIDIA Corporation' (platform is 'Mock CUDA')")
	require.Contains(t, report, "Execution requirements")
	require.Contains(t, report, EventKernel)
	require.Contains(t, report, "Error (Device-CPU) : 0\n")
	require.Contains(t, report, `clwrap_matmult_profile_event_seconds{event="Kernel execution (Matmult)"}`)
	require.Contains(t, report, "clwrap_matmult_profile_events_seconds ")

	exported, err := os.ReadFile(exportFile)
	require.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(exported)), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, string(exported), ","+EventReadC)
}
