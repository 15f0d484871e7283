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
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/NVIDIA/clwrap/cmd/clwrap/util"
	"github.com/NVIDIA/clwrap/pkg/ccl"
	"github.com/NVIDIA/clwrap/pkg/prof"
)

var log = logrus.New()

func GetLogger() *logrus.Logger {
	return log
}

// MetricsNamespace prefixes the names of the exposed profile metrics.
const MetricsNamespace = "clwrap_matmult"

type Flags struct {
	PlatformsFile   string
	Kernel          string
	ASize           string
	BSize           string
	LocalSize       string
	Range           string
	Seed            uint64
	Device          int
	DeviceName      string
	KernelFile      string
	CompilerOptions string
	ExportFile      string
	ExportOptions   string
	Metrics         bool
}

type Context struct {
	*cli.Context
	Flags  *Flags
	Config Config
	In     io.Reader
	Out    io.Writer
}

func BuildCommand() *cli.Command {
	// Create a flags struct to hold our flags
	matmultFlags := Flags{}

	// Create the 'matmult' command
	matmult := cli.Command{}
	matmult.Name = "matmult"
	matmult.Usage = "Multiply two random integer matrices on an OpenCL device and profile it"
	matmult.Action = func(c *cli.Context) error {
		return matmultWrapper(c, &matmultFlags)
	}

	// Setup the flags for this command
	matmult.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "platforms-file",
			Aliases:     []string{"f"},
			Usage:       "Path to a file describing the platforms to expose (default is a two platform workstation)",
			Destination: &matmultFlags.PlatformsFile,
			EnvVars:     []string{"CLWRAP_PLATFORMS_FILE"},
		},
		&cli.StringFlag{
			Name:        "kernel",
			Aliases:     []string{"k"},
			Usage:       "Operation to perform [ab: C = AB | aat: C = AA^T]",
			Destination: &matmultFlags.Kernel,
			Value:       KernelAB,
		},
		&cli.StringFlag{
			Name:        "asize",
			Usage:       "Size (cols,rows) of matrix A",
			Destination: &matmultFlags.ASize,
			Value:       "128,256",
		},
		&cli.StringFlag{
			Name:        "bsize",
			Usage:       "Size (cols,rows) of matrix B",
			Destination: &matmultFlags.BSize,
			Value:       "16,128",
		},
		&cli.StringFlag{
			Name:        "localsize",
			Aliases:     []string{"l"},
			Usage:       "Maximum local work size (x,y)",
			Destination: &matmultFlags.LocalSize,
			Value:       "32,16",
		},
		&cli.StringFlag{
			Name:        "range",
			Aliases:     []string{"r"},
			Usage:       "Range (min,max) of the random matrix values, max excluded",
			Destination: &matmultFlags.Range,
			Value:       "-100,100",
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Seed of the random number generator",
			Destination: &matmultFlags.Seed,
		},
		&cli.IntFlag{
			Name:        "device",
			Aliases:     []string{"D"},
			Usage:       "Index of the device to use, as listed by the device menu",
			Destination: &matmultFlags.Device,
			Value:       -1,
			EnvVars:     []string{"CLWRAP_DEVICE"},
		},
		&cli.StringFlag{
			Name:        "dname",
			Aliases:     []string{"n"},
			Usage:       "Use the first device whose name, vendor or platform contains the given string",
			Destination: &matmultFlags.DeviceName,
		},
		&cli.StringFlag{
			Name:        "kernel-file",
			Usage:       "Load the device functions from the given file instead of the built-in source",
			Destination: &matmultFlags.KernelFile,
		},
		&cli.StringFlag{
			Name:        "compiler",
			Aliases:     []string{"c"},
			Usage:       "Extra compiler options",
			Destination: &matmultFlags.CompilerOptions,
		},
		&cli.StringFlag{
			Name:        "export",
			Aliases:     []string{"e"},
			Usage:       "Export the profiling info to the given file",
			Destination: &matmultFlags.ExportFile,
		},
		&cli.StringFlag{
			Name:        "export-options",
			Usage:       "Path to a YAML file with the export options",
			Destination: &matmultFlags.ExportOptions,
			EnvVars:     []string{"CLWRAP_EXPORT_OPTIONS"},
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Print the profile as Prometheus metrics",
			Destination: &matmultFlags.Metrics,
		},
	}

	return &matmult
}

func matmultWrapper(c *cli.Context, f *Flags) error {
	config, err := CheckFlags(f)
	if err != nil {
		_ = cli.ShowSubcommandHelp(c)
		return err
	}

	context := Context{
		Context: c,
		Flags:   f,
		Config:  config,
		In:      os.Stdin,
		Out:     os.Stdout,
	}

	return Run(&context)
}

// CheckFlags validates the flags and converts them into a Config.
func CheckFlags(f *Flags) (Config, error) {
	config := DefaultConfig()
	config.Kernel = f.Kernel
	config.Seed = f.Seed
	config.KernelFile = f.KernelFile
	config.CompilerOptions = f.CompilerOptions

	pairs := []struct {
		name  string
		value string
		dest  *[2]int
	}{
		{"asize", f.ASize, &config.ASize},
		{"bsize", f.BSize, &config.BSize},
		{"localsize", f.LocalSize, &config.LWS},
		{"range", f.Range, &config.Range},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		pair, err := util.ParsePair(p.value)
		if err != nil {
			return config, fmt.Errorf("invalid '%s': %v", p.name, err)
		}
		*p.dest = pair
	}

	if f.Device >= 0 && f.DeviceName != "" {
		return config, fmt.Errorf("only one of 'device' and 'dname' may be given")
	}

	if err := config.Check(); err != nil {
		return config, err
	}
	return config, nil
}

// Filters returns the device filters matching the flags.
func (c *Context) Filters() *ccl.Filters {
	var filters ccl.Filters
	if c.Flags.DeviceName != "" {
		filters.AddIndependent(ccl.IndepString, c.Flags.DeviceName)
	}
	index := c.Flags.Device
	filters.AddDependent(ccl.DepMenu, &ccl.MenuOptions{Index: &index, In: c.In, Out: c.Out})
	return &filters
}

// Run performs the multiplication and reports the outcome.
func Run(c *Context) error {
	drv, err := util.NewDriver(c.Flags.PlatformsFile)
	if err != nil {
		return fmt.Errorf("error creating driver: %v", err)
	}
	RegisterKernels(drv)

	result, err := Multiply(drv, c.Filters(), &c.Config)
	if err != nil {
		return err
	}
	defer result.Profile.Destroy()

	if c.Flags.ExportOptions != "" {
		opts, err := prof.LoadExportOptions(c.Flags.ExportOptions)
		if err != nil {
			return fmt.Errorf("error loading export options: %w", err)
		}
		result.Profile.SetExportOptions(opts)
	}

	if err := WriteReport(c.Out, result); err != nil {
		return err
	}

	if c.Flags.ExportFile != "" {
		log.Debugf("Exporting profiling info to '%s'", c.Flags.ExportFile)
		if err := result.Profile.ExportToFile(c.Flags.ExportFile); err != nil {
			return fmt.Errorf("error exporting profiling info: %w", err)
		}
	}

	if c.Flags.Metrics {
		if err := WriteMetrics(c.Out, result.Profile); err != nil {
			return err
		}
	}

	return nil
}

// WriteReport writes the device in use, the execution requirements, the
// profiling summary and the comparison with the host.
func WriteReport(w io.Writer, r *Result) error {
	fmt.Fprintf(w, "\n   == Using device '%s' from '%s' (platform is '%s')\n", r.DeviceName, r.DeviceVendor, r.PlatformName)

	fmt.Fprintf(w, "\n   ========================= Execution requirements ========================\n\n")
	fmt.Fprintf(w, "     Global work size       : (%d, %d)\n", r.GWS[0], r.GWS[1])
	fmt.Fprintf(w, "     Local work size        : (%d, %d)\n", r.LWS[0], r.LWS[1])
	fmt.Fprintf(w, "     Work-groups            : (%d, %d)\n", r.GWS[0]/r.LWS[0], r.GWS[1]/r.LWS[1])
	fmt.Fprintf(w, "     Global memory required : %d bytes (%.1f KiB)\n", r.GlobalMem, float64(r.GlobalMem)/1024)

	if err := r.Profile.PrintSummary(w); err != nil {
		return fmt.Errorf("error printing profiling summary: %w", err)
	}

	fmt.Fprintf(w, "\n   ================================ Results ================================\n\n")
	fmt.Fprintf(w, "     Total device time  : %fs\n", r.Profile.Elapsed().Seconds())
	fmt.Fprintf(w, "     Total CPU time     : %fs\n", r.HostTime.Seconds())
	fmt.Fprintf(w, "     SpeedUp            : %fx\n", r.SpeedUp())
	_, err := fmt.Fprintf(w, "     Error (Device-CPU) : %d\n\n", r.Error)
	if err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// WriteMetrics writes the profile of p in the Prometheus text format.
func WriteMetrics(w io.Writer, p *prof.Profile) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(prof.NewCollector(p, MetricsNamespace)); err != nil {
		return fmt.Errorf("error registering profile collector: %w", err)
	}

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("error gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("error writing metrics: %w", err)
		}
	}
	return nil
}
