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

package kerninfo

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
	yaml "gopkg.in/yaml.v2"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

const testSource = `
__kernel __attribute__((reqd_work_group_size(8, 4, 1)))
void scale(__global const float* restrict in, __global float* out,
           __local float* tmp, float factor) {
	int i = get_global_id(0);
	out[i] = in[i] * factor;
}
`

func writeSource(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "scale.cl")
	require.Nil(t, os.WriteFile(path, []byte(testSource), 0644))
	return path
}

func newContext(f *Flags, kernel string, out io.Writer) *Context {
	return &Context{
		Flags:      f,
		KernelName: kernel,
		Driver:     cl.NewMockDriverOnWorkstation(),
		Out:        out,
	}
}

func TestCheckFlags(t *testing.T) {
	testCases := []struct {
		Description     string
		Flags           Flags
		expectedFailure bool
	}{
		{
			"Source",
			Flags{OutputFormat: TextFormat, Source: "k.cl"},
			false,
		},
		{
			"Binary as JSON",
			Flags{OutputFormat: JSONFormat, Binary: "k.bin"},
			false,
		},
		{
			"Neither source nor binary",
			Flags{OutputFormat: TextFormat},
			true,
		},
		{
			"Both source and binary",
			Flags{OutputFormat: TextFormat, Source: "k.cl", Binary: "k.bin"},
			true,
		},
		{
			"Arguments of a binary",
			Flags{OutputFormat: TextFormat, Binary: "k.bin", Args: true},
			true,
		},
		{
			"Unknown format",
			Flags{OutputFormat: "xml", Source: "k.cl"},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			err := CheckFlags(&tc.Flags)
			if tc.expectedFailure {
				require.NotNil(t, err)
			} else {
				require.Nil(t, err)
			}
		})
	}
}

func TestInspectSource(t *testing.T) {
	f := &Flags{OutputFormat: TextFormat, Source: writeSource(t), Device: 0, Args: true}

	var out bytes.Buffer
	report, err := Inspect(newContext(f, "scale", &out))
	require.Nil(t, err)
	require.True(t, ccl.Memcheck())

	require.Equal(t, "scale", report.Kernel)
	require.Equal(t, "Mock GeForce RTX 3080", report.Device)
	require.Equal(t, 1024, report.MaxWorkGroupSize)
	require.NotNil(t, report.PreferredWorkGroupSizeMultiple)
	require.Equal(t, 32, *report.PreferredWorkGroupSizeMultiple)
	require.Equal(t, []int{8, 4, 1}, report.CompileWorkGroupSize)
	require.Zero(t, report.LocalMemSize)
	require.Zero(t, report.PrivateMemSize)

	require.Len(t, report.Args, 4)
	decls := make([]string, len(report.Args))
	for i := range report.Args {
		decls[i] = report.Args[i].Declaration()
	}
	require.Equal(t, []string{
		"__global const restrict float* in",
		"__global float* out",
		"__local float* tmp",
		"float factor",
	}, decls)

	// The device list is shown with the preselected device marked.
	require.Contains(t, out.String(), "(*) 0. Mock GeForce RTX 3080 [Mock CUDA]")

	out.Reset()
	require.Nil(t, WriteOutput(&out, TextFormat, report))
	text := out.String()
	require.Contains(t, text, "     Maximum workgroup size                  : 1024\n")
	require.Contains(t, text, "     Preferred multiple of workgroup size    : 32\n")
	require.Contains(t, text, "     WG size in __attribute__ qualifier      : (8, 4, 1)\n")
	require.Contains(t, text, "     Local memory used by kernel             : 0 bytes\n")
	require.Contains(t, text, "     #3: float factor\n")
}

func TestInspectBinary(t *testing.T) {
	drv := cl.NewMockDriverOnWorkstation()
	path := filepath.Join(t.TempDir(), "scale.bin")

	func() {
		index := 0
		ctx, err := ccl.NewContextFromMenu(drv, &ccl.MenuOptions{Index: &index, Out: io.Discard})
		require.Nil(t, err)
		defer ctx.Destroy()

		dev, err := ctx.Device(0)
		require.Nil(t, err)

		prg, err := ccl.NewProgramFromSource(ctx, testSource)
		require.Nil(t, err)
		defer prg.Destroy()

		require.Nil(t, prg.Build(""))
		require.Nil(t, prg.SaveBinary(dev, path))
	}()

	f := &Flags{OutputFormat: JSONFormat, Binary: path, Device: 0}
	c := &Context{Flags: f, KernelName: "scale", Driver: drv, Out: io.Discard}
	report, err := Inspect(c)
	require.Nil(t, err)
	require.True(t, ccl.Memcheck())

	require.Equal(t, []int{8, 4, 1}, report.CompileWorkGroupSize)
	require.Empty(t, report.Args)
}

func TestInspectErrors(t *testing.T) {
	source := writeSource(t)

	testCases := []struct {
		Description string
		Flags       Flags
		Kernel      string
	}{
		{
			"Unknown kernel",
			Flags{OutputFormat: TextFormat, Source: source, Device: 0},
			"blur",
		},
		{
			"Missing source file",
			Flags{OutputFormat: TextFormat, Source: filepath.Join(t.TempDir(), "missing.cl"), Device: 0},
			"scale",
		},
		{
			"Source given as binary",
			Flags{OutputFormat: TextFormat, Binary: source, Device: 0},
			"scale",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			_, err := Inspect(newContext(&tc.Flags, tc.Kernel, io.Discard))
			require.NotNil(t, err)
			require.True(t, ccl.Memcheck())
		})
	}
}

func TestWriteOutputStructured(t *testing.T) {
	multiple := 32
	report := &Report{
		Kernel:                         "scale",
		Device:                         "Mock GeForce RTX 3080",
		MaxWorkGroupSize:               1024,
		PreferredWorkGroupSizeMultiple: &multiple,
		CompileWorkGroupSize:           []int{8, 4, 1},
		Args: []ArgReport{
			{Index: 0, Name: "in", TypeName: "float*", Address: "__global", TypeQualifiers: []string{"const"}},
		},
	}

	var out bytes.Buffer
	require.Nil(t, WriteOutput(&out, JSONFormat, report))
	var fromJSON Report
	require.Nil(t, json.Unmarshal(out.Bytes(), &fromJSON))
	require.Equal(t, report, &fromJSON)

	out.Reset()
	require.Nil(t, WriteOutput(&out, YAMLFormat, report))
	var fromYAML Report
	require.Nil(t, yaml.Unmarshal(out.Bytes(), &fromYAML))
	require.Equal(t, report, &fromYAML)
}

func TestCommandReportsFailures(t *testing.T) {
	source := writeSource(t)

	testCases := []struct {
		description string
		args        []string
		contains    string
	}{
		{
			"Missing kernel name",
			[]string{"--source", source},
			"exactly one kernel name is required",
		},
		{
			"Unknown kernel",
			[]string{"--source", source, "--device", "0", "--output-format", JSONFormat, "nosuch"},
			"error inspecting kernel 'nosuch': Error ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			app := &cli.App{
				Name:     "clwrap",
				Writer:   io.Discard,
				Commands: []*cli.Command{BuildCommand()},
			}
			err := app.Run(append([]string{"clwrap", "kerninfo"}, tc.args...))
			require.NotNil(t, err)
			require.Contains(t, err.Error(), tc.contains)
		})
	}
}
