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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Report holds the static information of a kernel on a device. The
// preferred work-group size multiple is only known on OpenCL 1.1 or newer.
type Report struct {
	Kernel                         string      `json:"kernel" yaml:"kernel"`
	Device                         string      `json:"device" yaml:"device"`
	MaxWorkGroupSize               int         `json:"max-work-group-size" yaml:"max-work-group-size"`
	PreferredWorkGroupSizeMultiple *int        `json:"preferred-work-group-size-multiple,omitempty" yaml:"preferred-work-group-size-multiple,omitempty"`
	CompileWorkGroupSize           []int       `json:"compile-work-group-size" yaml:"compile-work-group-size"`
	LocalMemSize                   uint64      `json:"local-mem-size" yaml:"local-mem-size"`
	PrivateMemSize                 uint64      `json:"private-mem-size" yaml:"private-mem-size"`
	Args                           []ArgReport `json:"args,omitempty" yaml:"args,omitempty"`
}

type ArgReport struct {
	Index          int      `json:"index" yaml:"index"`
	Name           string   `json:"name" yaml:"name"`
	TypeName       string   `json:"type-name" yaml:"type-name"`
	Address        string   `json:"address" yaml:"address"`
	Access         string   `json:"access,omitempty" yaml:"access,omitempty"`
	TypeQualifiers []string `json:"type-qualifiers,omitempty" yaml:"type-qualifiers,omitempty"`
}

var addressQualifiers = map[uint32]string{
	cl.KERNEL_ARG_ADDRESS_GLOBAL:   "__global",
	cl.KERNEL_ARG_ADDRESS_LOCAL:    "__local",
	cl.KERNEL_ARG_ADDRESS_CONSTANT: "__constant",
	cl.KERNEL_ARG_ADDRESS_PRIVATE:  "__private",
}

var accessQualifiers = map[uint32]string{
	cl.KERNEL_ARG_ACCESS_READ_ONLY:  "__read_only",
	cl.KERNEL_ARG_ACCESS_WRITE_ONLY: "__write_only",
	cl.KERNEL_ARG_ACCESS_READ_WRITE: "__read_write",
}

// Declaration renders the argument the way it would appear in source.
func (a *ArgReport) Declaration() string {
	var words []string
	if a.Address != "__private" {
		words = append(words, a.Address)
	}
	if a.Access != "" {
		words = append(words, a.Access)
	}
	words = append(words, a.TypeQualifiers...)
	words = append(words, a.TypeName, a.Name)
	return strings.Join(words, " ")
}

// Inspect builds the program given by the flags and queries the kernel.
func Inspect(c *Context) (*Report, error) {
	menuOut := c.Out
	if c.Flags.OutputFormat != TextFormat {
		menuOut = os.Stderr
	}
	index := c.Flags.Device
	ctx, err := ccl.NewContextFromMenu(c.Driver, &ccl.MenuOptions{Index: &index, In: c.In, Out: menuOut})
	if err != nil {
		return nil, fmt.Errorf("error creating context: %w", err)
	}
	defer ctx.Destroy()

	dev, err := ctx.Device(0)
	if err != nil {
		return nil, fmt.Errorf("error getting device: %w", err)
	}

	prg, err := loadProgram(ctx, dev, c.Flags)
	if err != nil {
		return nil, err
	}
	defer prg.Destroy()

	if err := prg.Build(""); err != nil {
		if buildLog, _ := prg.BuildLog(); buildLog != "" {
			log.Errorf("Build log:\n%s", buildLog)
		}
		return nil, fmt.Errorf("error building program: %w", err)
	}

	k, err := prg.GetKernel(c.KernelName)
	if err != nil {
		return nil, fmt.Errorf("error getting kernel '%s': %w", c.KernelName, err)
	}

	report := &Report{Kernel: c.KernelName}
	if report.Device, err = dev.Name(); err != nil {
		return nil, fmt.Errorf("error getting device name: %w", err)
	}

	version, err := k.OpenCLVersion()
	if err != nil {
		return nil, fmt.Errorf("error getting OpenCL version: %w", err)
	}

	info, err := k.WorkGroupInfo(dev, cl.KERNEL_WORK_GROUP_SIZE)
	if err != nil {
		return nil, fmt.Errorf("error getting maximum work-group size: %w", err)
	}
	report.MaxWorkGroupSize = info.SizeT()

	if version >= 110 {
		info, err := k.WorkGroupInfo(dev, cl.KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE)
		if err != nil {
			return nil, fmt.Errorf("error getting preferred work-group size multiple: %w", err)
		}
		multiple := info.SizeT()
		report.PreferredWorkGroupSizeMultiple = &multiple
	}

	info, err = k.WorkGroupInfo(dev, cl.KERNEL_COMPILE_WORK_GROUP_SIZE)
	if err != nil {
		return nil, fmt.Errorf("error getting compile work-group size: %w", err)
	}
	report.CompileWorkGroupSize = info.SizeTs()

	info, err = k.WorkGroupInfo(dev, cl.KERNEL_LOCAL_MEM_SIZE)
	if err != nil {
		return nil, fmt.Errorf("error getting local memory size: %w", err)
	}
	report.LocalMemSize = info.Uint64()

	info, err = k.WorkGroupInfo(dev, cl.KERNEL_PRIVATE_MEM_SIZE)
	if err != nil {
		return nil, fmt.Errorf("error getting private memory size: %w", err)
	}
	report.PrivateMemSize = info.Uint64()

	if c.Flags.Args {
		if report.Args, err = collectArgs(k); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func loadProgram(ctx *ccl.Context, dev *ccl.Device, f *Flags) (*ccl.Program, error) {
	if f.Binary != "" {
		log.Debugf("Loading program binary from '%s'", f.Binary)
		prg, _, err := ccl.NewProgramFromBinaryFiles(ctx, []*ccl.Device{dev}, []string{f.Binary})
		if err != nil {
			return nil, fmt.Errorf("error loading program binary: %w", err)
		}
		return prg, nil
	}

	log.Debugf("Loading program source from '%s'", f.Source)
	prg, err := ccl.NewProgramFromFile(ctx, f.Source)
	if err != nil {
		return nil, fmt.Errorf("error loading program source: %w", err)
	}
	return prg, nil
}

func collectArgs(k *ccl.Kernel) ([]ArgReport, error) {
	n, err := k.NumArgs()
	if err != nil {
		return nil, fmt.Errorf("error getting number of kernel arguments: %w", err)
	}

	args := make([]ArgReport, n)
	for i := range args {
		a := &args[i]
		a.Index = i

		info, err := k.ArgInfo(i, cl.KERNEL_ARG_NAME)
		if err != nil {
			return nil, fmt.Errorf("error getting name of argument %d: %w", i, err)
		}
		a.Name = info.String()

		info, err = k.ArgInfo(i, cl.KERNEL_ARG_TYPE_NAME)
		if err != nil {
			return nil, fmt.Errorf("error getting type of argument %d: %w", i, err)
		}
		a.TypeName = info.String()

		info, err = k.ArgInfo(i, cl.KERNEL_ARG_ADDRESS_QUALIFIER)
		if err != nil {
			return nil, fmt.Errorf("error getting address qualifier of argument %d: %w", i, err)
		}
		a.Address = addressQualifiers[info.Uint32()]

		info, err = k.ArgInfo(i, cl.KERNEL_ARG_ACCESS_QUALIFIER)
		if err != nil {
			return nil, fmt.Errorf("error getting access qualifier of argument %d: %w", i, err)
		}
		a.Access = accessQualifiers[info.Uint32()]

		info, err = k.ArgInfo(i, cl.KERNEL_ARG_TYPE_QUALIFIER)
		if err != nil {
			return nil, fmt.Errorf("error getting type qualifiers of argument %d: %w", i, err)
		}
		a.TypeQualifiers = typeQualifiers(cl.Bitfield(info.Uint64()))
	}
	return args, nil
}

func typeQualifiers(q cl.Bitfield) []string {
	var quals []string
	if q&cl.KERNEL_ARG_TYPE_CONST != 0 {
		quals = append(quals, "const")
	}
	if q&cl.KERNEL_ARG_TYPE_RESTRICT != 0 {
		quals = append(quals, "restrict")
	}
	if q&cl.KERNEL_ARG_TYPE_VOLATILE != 0 {
		quals = append(quals, "volatile")
	}
	return quals
}

// WriteOutput writes the report in the given format.
func WriteOutput(w io.Writer, format string, report *Report) error {
	switch format {
	case YAMLFormat:
		output, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("error marshaling kernel info to YAML: %v", err)
		}
		if _, err := w.Write(output); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case JSONFormat:
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling kernel info to JSON: %v", err)
		}
		if _, err := w.Write(output); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	default:
		if err := writeText(w, report); err != nil {
			return fmt.Errorf("error writing text output: %w", err)
		}
	}
	return nil
}

func writeText(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\n   ======================== Static Kernel Information =======================\n\n")
	fmt.Fprintf(bw, "     Maximum workgroup size                  : %d\n", r.MaxWorkGroupSize)
	if r.PreferredWorkGroupSizeMultiple != nil {
		fmt.Fprintf(bw, "     Preferred multiple of workgroup size    : %d\n", *r.PreferredWorkGroupSizeMultiple)
	}
	var cwgs [3]int
	copy(cwgs[:], r.CompileWorkGroupSize)
	fmt.Fprintf(bw, "     WG size in __attribute__ qualifier      : (%d, %d, %d)\n", cwgs[0], cwgs[1], cwgs[2])
	fmt.Fprintf(bw, "     Local memory used by kernel             : %d bytes\n", r.LocalMemSize)
	fmt.Fprintf(bw, "     Min. private mem. used by each workitem : %d bytes\n", r.PrivateMemSize)

	if len(r.Args) > 0 {
		fmt.Fprintf(bw, "\n   ============================ Kernel Arguments ============================\n\n")
		for _, a := range r.Args {
			fmt.Fprintf(bw, "     #%d: %s\n", a.Index, a.Declaration())
		}
	}
	fmt.Fprintf(bw, "\n")

	return bw.Flush()
}
