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

package devices

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

const (
	rtx3080 = "Mock GeForce RTX 3080 [Mock CUDA] (GPU)"
	rtx3060 = "Mock GeForce RTX 3060 [Mock CUDA] (GPU)"
	haswell = "Mock cpu-haswell-Intel(R) Core(TM) i7 [Mock Portable Computing Language] (CPU)"
)

func listDevices(t *testing.T, f *Flags, input string) string {
	var out bytes.Buffer
	context := Context{
		Flags:  f,
		Driver: cl.NewMockDriverOnWorkstation(),
		In:     strings.NewReader(input),
		Out:    &out,
	}
	require.NoError(t, ListDevices(&context))
	require.True(t, ccl.Memcheck())
	return out.String()
}

func TestCheckFlags(t *testing.T) {
	for _, valid := range []string{"all", "gpu", "CPU", "accel", "accelerator"} {
		require.NoError(t, CheckFlags(&Flags{DeviceType: valid}), valid)
	}
	require.Error(t, CheckFlags(&Flags{DeviceType: "fpga"}))
}

func TestListDevices(t *testing.T) {
	testCases := []struct {
		description string
		flags       Flags
		expected    string
	}{
		{
			"all devices",
			Flags{DeviceType: "all"},
			"0. " + rtx3080 + "\n1. " + rtx3060 + "\n2. " + haswell + "\n",
		},
		{
			"only cpus",
			Flags{DeviceType: "cpu"},
			"0. " + haswell + "\n",
		},
		{
			"no accelerators",
			Flags{DeviceType: "accel"},
			"No devices found\n",
		},
		{
			"gpus of a single platform",
			Flags{DeviceType: "gpu", SamePlatform: true},
			"0. " + rtx3080 + "\n1. " + rtx3060 + "\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.Equal(t, tc.expected, listDevices(t, &tc.flags, ""))
		})
	}
}

func TestListDevicesPlatformMenu(t *testing.T) {
	out := listDevices(t, &Flags{DeviceType: "all", SamePlatform: true}, "7\n1\n")
	require.Contains(t, out, "List of available OpenCL platforms:")
	require.Contains(t, out, " (!) Invalid choice, please insert a value between 0 and 1.\n")
	require.True(t, strings.HasSuffix(out, "0. "+haswell+"\n"))
}

func TestListDevicesSelect(t *testing.T) {
	out := listDevices(t, &Flags{DeviceType: "gpu", Select: true}, "1\n")
	require.Contains(t, out, "List of available OpenCL devices:")
	require.True(t, strings.HasSuffix(out, "> \n0. "+rtx3060+"\n"))

	var buf bytes.Buffer
	context := Context{
		Flags:  &Flags{DeviceType: "all", Select: true},
		Driver: cl.NewMockDriverOnWorkstation(),
		In:     strings.NewReader(""),
		Out:    &buf,
	}
	err := ListDevices(&context)
	require.ErrorIs(t, err, ccl.ErrInvalidData)
	require.True(t, ccl.Memcheck())
}
