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

package devinfo

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/NVIDIA/clwrap/cmd/clwrap/util"
	"github.com/NVIDIA/clwrap/internal/cl"
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

// Flags holds the options of the 'devinfo' command.
type Flags struct {
	PlatformsFile string
	OutputFormat  string
	All           bool
	Basic         bool
	Custom        cli.StringSlice
	Device        int
	Platform      int
	NoPlatform    bool
	List          bool
	NotFound      bool
	Verbose       bool
}

type Context struct {
	*cli.Context
	Flags  *Flags
	Driver cl.Interface
}

func BuildCommand() *cli.Command {
	// Create a flags struct to hold our flags
	devinfoFlags := Flags{}

	// Create the 'devinfo' command
	devinfo := cli.Command{}
	devinfo.Name = "devinfo"
	devinfo.Usage = "Query the information parameters of OpenCL platforms and devices"
	devinfo.Action = func(c *cli.Context) error {
		return devinfoWrapper(c, &devinfoFlags)
	}

	// Setup the flags for this command
	devinfo.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "platforms-file",
			Aliases:     []string{"f"},
			Usage:       "Path to a file describing the platforms to expose (default is a two platform workstation)",
			Destination: &devinfoFlags.PlatformsFile,
			EnvVars:     []string{"CLWRAP_PLATFORMS_FILE"},
		},
		&cli.StringFlag{
			Name:        "output-format",
			Aliases:     []string{"o"},
			Usage:       "Format for the output [text | json | yaml]",
			Destination: &devinfoFlags.OutputFormat,
			Value:       TextFormat,
			EnvVars:     []string{"CLWRAP_OUTPUT_FORMAT"},
		},
		&cli.BoolFlag{
			Name:        "all",
			Aliases:     []string{"a"},
			Usage:       "Show all the available device information",
			Destination: &devinfoFlags.All,
		},
		&cli.BoolFlag{
			Name:        "basic",
			Aliases:     []string{"b"},
			Usage:       "Show basic device information (default)",
			Destination: &devinfoFlags.Basic,
		},
		&cli.StringSliceFlag{
			Name:        "custom",
			Aliases:     []string{"c"},
			Usage:       "Show parameters containing the given name, repeat as necessary",
			Destination: &devinfoFlags.Custom,
		},
		&cli.IntFlag{
			Name:        "device",
			Aliases:     []string{"D"},
			Usage:       "Index of the device to query",
			Destination: &devinfoFlags.Device,
			Value:       -1,
		},
		&cli.IntFlag{
			Name:        "platform",
			Aliases:     []string{"p"},
			Usage:       "Index of the platform to query",
			Destination: &devinfoFlags.Platform,
			Value:       -1,
		},
		&cli.BoolFlag{
			Name:        "no-platform",
			Aliases:     []string{"P"},
			Usage:       "Ignore platforms, the device index refers to all devices in the system",
			Destination: &devinfoFlags.NoPlatform,
		},
		&cli.BoolFlag{
			Name:        "list",
			Aliases:     []string{"l"},
			Usage:       "List known information parameters",
			Destination: &devinfoFlags.List,
		},
		&cli.BoolFlag{
			Name:        "notfound",
			Aliases:     []string{"n"},
			Usage:       "Show known parameters even if not found in device",
			Destination: &devinfoFlags.NotFound,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Show description of each parameter",
			Destination: &devinfoFlags.Verbose,
		},
	}

	return &devinfo
}

func devinfoWrapper(c *cli.Context, f *Flags) error {
	err := CheckFlags(f)
	if err != nil {
		_ = cli.ShowSubcommandHelp(c)
		return err
	}

	if f.List {
		return WriteParamList(os.Stdout, f)
	}

	drv, err := util.NewDriver(f.PlatformsFile)
	if err != nil {
		return fmt.Errorf("error creating driver: %v", err)
	}

	context := Context{
		Context: c,
		Flags:   f,
		Driver:  drv,
	}

	log.Debugf("Querying devices...")
	report, err := Collect(&context)
	if err != nil {
		return err
	}

	return WriteOutput(os.Stdout, report, f)
}

// CheckFlags verifies that the flags are consistent.
func CheckFlags(f *Flags) error {
	switch f.OutputFormat {
	case TextFormat:
	case JSONFormat:
	case YAMLFormat:
	default:
		return fmt.Errorf("unrecognized 'output-format': %v", f.OutputFormat)
	}

	modes := []bool{f.All, f.Basic, len(f.Custom.Value()) > 0}
	if util.CountTrue(modes) > 1 {
		return fmt.Errorf("only one of 'all', 'basic' or 'custom' can be given")
	}

	if f.NoPlatform && f.Platform >= 0 {
		return fmt.Errorf("'platform' cannot be given together with 'no-platform'")
	}

	return nil
}
