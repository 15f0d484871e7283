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
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/NVIDIA/clwrap/cmd/clwrap/util"
	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

var log = logrus.New()

func GetLogger() *logrus.Logger {
	return log
}

const (
	TextFormat = "text"
	JSONFormat = "json"
	YAMLFormat = "yaml"
)

type Flags struct {
	PlatformsFile string
	OutputFormat  string
	Source        string
	Binary        string
	Device        int
	Args          bool
}

type Context struct {
	*cli.Context
	Flags      *Flags
	KernelName string
	Driver     cl.Interface
	In         io.Reader
	Out        io.Writer
}

func BuildCommand() *cli.Command {
	// Create a flags struct to hold our flags
	kerninfoFlags := Flags{}

	// Create the 'kerninfo' command
	kerninfo := cli.Command{}
	kerninfo.Name = "kerninfo"
	kerninfo.Usage = "Show static information about a kernel built for an OpenCL device"
	kerninfo.ArgsUsage = "<kernel-name>"
	kerninfo.Action = func(c *cli.Context) error {
		return kerninfoWrapper(c, &kerninfoFlags)
	}

	// Setup the flags for this command
	kerninfo.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "platforms-file",
			Aliases:     []string{"f"},
			Usage:       "Path to a file describing the platforms to expose (default is a two platform workstation)",
			Destination: &kerninfoFlags.PlatformsFile,
			EnvVars:     []string{"CLWRAP_PLATFORMS_FILE"},
		},
		&cli.StringFlag{
			Name:        "output-format",
			Aliases:     []string{"o"},
			Usage:       "Format for the output [text | json | yaml]",
			Destination: &kerninfoFlags.OutputFormat,
			Value:       TextFormat,
			EnvVars:     []string{"CLWRAP_OUTPUT_FORMAT"},
		},
		&cli.StringFlag{
			Name:        "source",
			Aliases:     []string{"s"},
			Usage:       "Path to the source file of the program containing the kernel",
			Destination: &kerninfoFlags.Source,
		},
		&cli.StringFlag{
			Name:        "binary",
			Aliases:     []string{"b"},
			Usage:       "Path to a program binary containing the kernel",
			Destination: &kerninfoFlags.Binary,
		},
		&cli.IntFlag{
			Name:        "device",
			Aliases:     []string{"D"},
			Usage:       "Index of the device to use, as listed by the device menu",
			Destination: &kerninfoFlags.Device,
			Value:       -1,
			EnvVars:     []string{"CLWRAP_DEVICE"},
		},
		&cli.BoolFlag{
			Name:        "args",
			Aliases:     []string{"a"},
			Usage:       "Show information about the kernel arguments (requires a program built from source)",
			Destination: &kerninfoFlags.Args,
		},
	}

	return &kerninfo
}

func kerninfoWrapper(c *cli.Context, f *Flags) error {
	err := CheckFlags(f)
	if err == nil && c.Args().Len() != 1 {
		err = fmt.Errorf("exactly one kernel name is required")
	}
	if err != nil {
		_ = cli.ShowSubcommandHelp(c)
		return err
	}

	drv, err := util.NewDriver(f.PlatformsFile)
	if err != nil {
		return fmt.Errorf("error creating driver: %v", err)
	}

	context := Context{
		Context:    c,
		Flags:      f,
		KernelName: c.Args().First(),
		Driver:     drv,
		In:         os.Stdin,
		Out:        os.Stdout,
	}

	report, err := Inspect(&context)
	if err != nil {
		return fmt.Errorf("error inspecting kernel '%s': %s", context.KernelName, ccl.Describe(err))
	}
	return WriteOutput(context.Out, f.OutputFormat, report)
}

func CheckFlags(f *Flags) error {
	switch f.OutputFormat {
	case TextFormat, JSONFormat, YAMLFormat:
	default:
		return fmt.Errorf("unrecognized 'output-format': %v", f.OutputFormat)
	}
	if util.CountTrue([]bool{f.Source != "", f.Binary != ""}) != 1 {
		return fmt.Errorf("exactly one of 'source' and 'binary' must be given")
	}
	if f.Binary != "" && f.Args {
		return fmt.Errorf("argument information is only available for programs built from source")
	}
	return nil
}
