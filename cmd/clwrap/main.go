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

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	"github.com/NVIDIA/clwrap/cmd/clwrap/devices"
	"github.com/NVIDIA/clwrap/cmd/clwrap/devinfo"
	"github.com/NVIDIA/clwrap/cmd/clwrap/kerninfo"
	"github.com/NVIDIA/clwrap/cmd/clwrap/matmult"
	"github.com/NVIDIA/clwrap/cmd/clwrap/util"
)

type Flags struct {
	Debug bool
}

func main() {
	// Create a flags struct to hold our flags
	flags := Flags{}

	// Create the top-level CLI
	c := cli.NewApp()
	c.Name = "clwrap"
	c.UseShortOptionHandling = true
	c.EnableBashCompletion = true
	c.Usage = "Inspect and exercise OpenCL platforms, devices and kernels"
	c.Version = "0.1.0"

	// Setup the flags for this command
	c.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "Enable debug-level logging",
			Destination: &flags.Debug,
			EnvVars:     []string{"CLWRAP_DEBUG"},
		},
	}

	// Register the subcommands with the top-level CLI
	c.Commands = []*cli.Command{
		devinfo.BuildCommand(),
		devices.BuildCommand(),
		kerninfo.BuildCommand(),
		matmult.BuildCommand(),
	}

	// Set log-level for all subcommands
	c.Before = func(c *cli.Context) error {
		logLevel := log.InfoLevel
		if flags.Debug {
			logLevel = log.DebugLevel
		}
		log.SetLevel(logLevel)
		devinfoLog := devinfo.GetLogger()
		devinfoLog.SetLevel(logLevel)
		devicesLog := devices.GetLogger()
		devicesLog.SetLevel(logLevel)
		kerninfoLog := kerninfo.GetLogger()
		kerninfoLog.SetLevel(logLevel)
		matmultLog := matmult.GetLogger()
		matmultLog.SetLevel(logLevel)
		return nil
	}

	// Run the CLI
	err := c.Run(os.Args)
	if err != nil {
		log.Fatal(util.Capitalize(err.Error()))
	}
}
