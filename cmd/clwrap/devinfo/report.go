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

	"github.com/NVIDIA/clwrap/pkg/ccl"
	"github.com/NVIDIA/clwrap/pkg/devquery"
)

// NotAvailable is reported for parameters the device does not know about
// when the 'notfound' flag is given.
const NotAvailable = "N/A"

// basicInfo lists the parameters shown by default.
var basicInfo = []string{
	"TYPE",
	"VENDOR",
	"OPENCL_C_VERSION",
	"MAX_COMPUTE_UNITS",
	"GLOBAL_MEM_SIZE",
	"MAX_MEM_ALLOC_SIZE",
	"LOCAL_MEM_SIZE",
	"LOCAL_MEM_TYPE",
	"MAX_WORK_GROUP_SIZE",
}

// Report holds the information queried by 'devinfo'. Exactly one of
// Platforms and Devices is set.
type Report struct {
	Platforms []PlatformReport `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Devices   []DeviceReport   `json:"devices,omitempty"   yaml:"devices,omitempty"`
}

type PlatformReport struct {
	Index   int            `json:"index"   yaml:"index"`
	Name    string         `json:"name"    yaml:"name"`
	Vendor  string         `json:"vendor"  yaml:"vendor"`
	Version string         `json:"version" yaml:"version"`
	Profile string         `json:"profile" yaml:"profile"`
	Devices []DeviceReport `json:"devices" yaml:"devices"`
}

type DeviceReport struct {
	Index  int           `json:"index"  yaml:"index"`
	Name   string        `json:"name"   yaml:"name"`
	Params []ParamReport `json:"params" yaml:"params"`
}

type ParamReport struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Value       string `json:"value"                 yaml:"value"`
}

// Collect queries the platforms and devices selected by the flags.
func Collect(c *Context) (*Report, error) {
	params := selectedParams(c.Flags)

	if c.Flags.NoPlatform {
		devices, err := ccl.Select(c.Driver, nil)
		if err != nil {
			return nil, fmt.Errorf("error listing devices: %w", err)
		}
		defer ccl.DestroyDevices(devices)

		report := &Report{}
		for i, d := range devices {
			if c.Flags.Device >= 0 && i != c.Flags.Device {
				continue
			}
			dr, err := collectDevice(c.Flags, i, d, params)
			if err != nil {
				return nil, err
			}
			report.Devices = append(report.Devices, *dr)
		}
		return report, nil
	}

	platforms, err := ccl.NewPlatforms(c.Driver)
	if err != nil {
		return nil, fmt.Errorf("error listing platforms: %w", err)
	}
	defer platforms.Destroy()

	report := &Report{}
	for i := 0; i < platforms.Count(); i++ {
		if c.Flags.Platform >= 0 && i != c.Flags.Platform {
			continue
		}
		pr, err := collectPlatform(c.Flags, i, platforms.Get(i), params)
		if err != nil {
			return nil, err
		}
		report.Platforms = append(report.Platforms, *pr)
	}
	return report, nil
}

func collectPlatform(f *Flags, index int, p *ccl.Platform, params []*devquery.Param) (*PlatformReport, error) {
	log.Debugf("Querying platform #%d...", index)
	pr := &PlatformReport{
		Index:   index,
		Name:    orUnknown(p.Name, "name"),
		Vendor:  orUnknown(p.Vendor, "vendor"),
		Version: orUnknown(p.Version, "version"),
		Profile: orUnknown(p.Profile, "profile"),
	}

	n, err := p.NumDevices()
	if err != nil {
		return nil, fmt.Errorf("error getting number of devices of platform %d: %w", index, err)
	}

	for j := 0; j < n; j++ {
		if f.Device >= 0 && j != f.Device {
			continue
		}
		d, err := p.Device(j)
		if err != nil {
			return nil, fmt.Errorf("error getting device %d of platform %d: %w", j, index, err)
		}
		dr, err := collectDevice(f, j, d, params)
		if err != nil {
			return nil, err
		}
		pr.Devices = append(pr.Devices, *dr)
	}

	return pr, nil
}

func collectDevice(f *Flags, index int, d *ccl.Device, params []*devquery.Param) (*DeviceReport, error) {
	name, err := d.Name()
	if err != nil {
		return nil, fmt.Errorf("error getting name of device %d: %w", index, err)
	}

	dr := &DeviceReport{
		Index:  index,
		Name:   name,
		Params: []ParamReport{},
	}
	for _, param := range params {
		value, err := param.Query(d)
		if err != nil {
			log.Debugf("Parameter %s not available on device %d: %v", param.Name, index, err)
			if !f.NotFound {
				continue
			}
			value = NotAvailable
		}
		pr := ParamReport{
			Name:  param.Name,
			Value: value,
		}
		if f.Verbose {
			pr.Description = param.Description
		}
		dr.Params = append(dr.Params, pr)
	}

	return dr, nil
}

// selectedParams returns the parameters requested by the flags, in output
// order.
func selectedParams(f *Flags) []*devquery.Param {
	var params []*devquery.Param
	switch {
	case f.All:
		catalog := devquery.Catalog()
		for i := range catalog {
			params = append(params, &catalog[i])
		}
	case len(f.Custom.Value()) > 0:
		for _, name := range f.Custom.Value() {
			name = devquery.NormalizeName(name)
			idx := 0
			for p := devquery.Match(name, &idx); p != nil; p = devquery.Match(name, &idx) {
				params = append(params, p)
			}
		}
	default:
		for _, name := range basicInfo {
			params = append(params, devquery.Lookup(name))
		}
	}
	return params
}

func orUnknown(get func() (string, error), what string) string {
	s, err := get()
	if err != nil {
		return "Unknown " + what
	}
	return s
}
