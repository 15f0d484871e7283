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

type Flags struct {
	PlatformsFile string
	DeviceType    string
	SamePlatform  bool
	Select        bool
}

type Context struct {
	*cli.Context
	Flags  *Flags
	Driver cl.Interface
	In     io.Reader
	Out    io.Writer
}

func BuildCommand() *cli.Command {
	// Create a flags struct to hold our flags
	devicesFlags := Flags{}

	// Create the 'devices' command
	devices := cli.Command{}
	devices.Name = "devices"
	devices.Usage = "List the available OpenCL devices"
	devices.Action = func(c *cli.Context) error {
		return devicesWrapper(c, &devicesFlags)
	}

	// Setup the flags for this command
	devices.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "platforms-file",
			Aliases:     []string{"f"},
			Usage:       "Path to a file describing the platforms to expose (default is a two platform workstation)",
			Destination: &devicesFlags.PlatformsFile,
			EnvVars:     []string{"CLWRAP_PLATFORMS_FILE"},
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Only list devices of the given type [all | gpu | cpu | accel]",
			Destination: &devicesFlags.DeviceType,
			Value:       "all",
			EnvVars:     []string{"CLWRAP_DEVICE_TYPE"},
		},
		&cli.BoolFlag{
			Name:        "same-platform",
			Aliases:     []string{"s"},
			Usage:       "Only list devices of a single platform, asking which one when necessary",
			Destination: &devicesFlags.SamePlatform,
		},
		&cli.BoolFlag{
			Name:        "select",
			Usage:       "Choose one of the listed devices from a menu and show it",
			Destination: &devicesFlags.Select,
		},
	}

	return &devices
}

func devicesWrapper(c *cli.Context, f *Flags) error {
	err := CheckFlags(f)
	if err != nil {
		_ = cli.ShowSubcommandHelp(c)
		return err
	}

	drv, err := util.NewDriver(f.PlatformsFile)
	if err != nil {
		return fmt.Errorf("error creating driver: %v", err)
	}

	context := Context{
		Context: c,
		Flags:   f,
		Driver:  drv,
		In:      os.Stdin,
		Out:     os.Stdout,
	}

	return ListDevices(&context)
}

func CheckFlags(f *Flags) error {
	_, err := cl.ParseDeviceType(f.DeviceType)
	if err != nil {
		return fmt.Errorf("unrecognized 'type': %v", f.DeviceType)
	}
	return nil
}

// Filters returns the device filters matching the flags.
func (c *Context) Filters() (*ccl.Filters, error) {
	deviceType, err := cl.ParseDeviceType(c.Flags.DeviceType)
	if err != nil {
		return nil, err
	}

	menu := &ccl.MenuOptions{In: c.In, Out: c.Out}

	var filters ccl.Filters
	filters.AddIndependent(ccl.IndepType, deviceType)
	if c.Flags.SamePlatform {
		filters.AddDependent(ccl.DepPlatform, menu)
	}
	if c.Flags.Select {
		filters.AddDependent(ccl.DepMenu, menu)
	}
	return &filters, nil
}

// ListDevices writes one line per selected device.
func ListDevices(c *Context) error {
	filters, err := c.Filters()
	if err != nil {
		return err
	}

	log.Debugf("Selecting devices...")
	devices, err := ccl.Select(c.Driver, filters)
	if err != nil {
		return fmt.Errorf("error selecting devices: %w", err)
	}
	defer ccl.DestroyDevices(devices)

	if len(devices) == 0 {
		_, err := fmt.Fprintf(c.Out, "No devices found\n")
		return err
	}

	if c.Flags.Select {
		fmt.Fprintf(c.Out, "\n")
	}
	for i, d := range devices {
		line, err := describe(d)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Out, "%d. %s\n", i, line); err != nil {
			return fmt.Errorf("error writing device list: %w", err)
		}
	}
	return nil
}

func describe(d *ccl.Device) (string, error) {
	name, err := d.Name()
	if err != nil {
		return "", fmt.Errorf("error getting device name: %w", err)
	}
	deviceType, err := d.Type()
	if err != nil {
		return "", fmt.Errorf("error getting device type: %w", err)
	}

	p, err := ccl.NewPlatformFromDevice(d)
	if err != nil {
		return "", fmt.Errorf("error getting device platform: %w", err)
	}
	defer p.Destroy()

	platformName, err := p.Name()
	if err != nil {
		return "", fmt.Errorf("error getting platform name: %w", err)
	}

	return fmt.Sprintf("%s [%s] (%s)", name, platformName, deviceType), nil
}
