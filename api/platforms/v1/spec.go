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

package v1

import (
	"encoding/json"
	"fmt"
)

// Version indicates the version of the 'Spec' struct used to describe
// platforms.
const Version = "v1"

// Device types accepted in a 'DeviceSpec'.
const (
	DeviceTypeGPU         = "gpu"
	DeviceTypeCPU         = "cpu"
	DeviceTypeAccelerator = "accelerator"
)

// Spec is a versioned struct describing the platforms and devices exposed
// by an in-memory driver.
type Spec struct {
	Version   string         `json:"version"             yaml:"version"`
	Platforms []PlatformSpec `json:"platforms,omitempty" yaml:"platforms,omitempty" validate:"dive"`
}

// PlatformSpec declares a single platform and the devices it holds.
type PlatformSpec struct {
	Name       string       `json:"name"                 yaml:"name"                 validate:"required"`
	Vendor     string       `json:"vendor,omitempty"     yaml:"vendor,omitempty"`
	Version    string       `json:"version"              yaml:"version"              validate:"required,opencl_version"`
	Profile    string       `json:"profile,omitempty"    yaml:"profile,omitempty"    validate:"omitempty,oneof=FULL_PROFILE EMBEDDED_PROFILE"`
	Extensions []string     `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Devices    []DeviceSpec `json:"devices"              yaml:"devices"              validate:"required,min=1,dive"`
}

// DeviceSpec declares a device. Zero values keep the defaults of the device
// type.
type DeviceSpec struct {
	Name                           string   `json:"name"                                        yaml:"name"                                        validate:"required"`
	Type                           string   `json:"type"                                        yaml:"type"                                        validate:"required,oneof=gpu cpu accelerator"`
	Vendor                         string   `json:"vendor,omitempty"                            yaml:"vendor,omitempty"`
	Version                        string   `json:"version,omitempty"                           yaml:"version,omitempty"                           validate:"omitempty,opencl_version"`
	ComputeUnits                   int      `json:"compute-units,omitempty"                     yaml:"compute-units,omitempty"                     validate:"gte=0"`
	MaxWorkGroupSize               int      `json:"max-work-group-size,omitempty"               yaml:"max-work-group-size,omitempty"               validate:"gte=0"`
	MaxWorkItemSizes               []int    `json:"max-work-item-sizes,omitempty"               yaml:"max-work-item-sizes,omitempty"               validate:"omitempty,len=3,dive,gt=0"`
	PreferredWorkGroupSizeMultiple int      `json:"preferred-work-group-size-multiple,omitempty" yaml:"preferred-work-group-size-multiple,omitempty" validate:"gte=0"`
	GlobalMemSize                  uint64   `json:"global-mem-size,omitempty"                   yaml:"global-mem-size,omitempty"`
	LocalMemSize                   uint64   `json:"local-mem-size,omitempty"                    yaml:"local-mem-size,omitempty"`
	ImageSupport                   *bool    `json:"image-support,omitempty"                     yaml:"image-support,omitempty"`
	BuiltInKernels                 []string `json:"built-in-kernels,omitempty"                  yaml:"built-in-kernels,omitempty"`
}

// UnmarshalJSON unmarshals raw bytes into a versioned 'Spec'.
func (s *Spec) UnmarshalJSON(b []byte) error {
	spec := make(map[string]json.RawMessage)
	err := json.Unmarshal(b, &spec)
	if err != nil {
		return err
	}

	if !containsKey(spec, "version") && len(spec) > 0 {
		return fmt.Errorf("unable to parse with missing 'version' field")
	}

	result := Spec{}
	if v, ok := spec["version"]; ok {
		err := json.Unmarshal(v, &result.Version)
		if err != nil {
			return err
		}
	}

	if result.Version != Version {
		return fmt.Errorf("unknown version: %v", result.Version)
	}

	delete(spec, "version")
	for k, v := range spec {
		switch k {
		case "platforms":
			var platforms []PlatformSpec
			err := json.Unmarshal(v, &platforms)
			if err != nil {
				return err
			}
			if len(platforms) == 0 {
				return fmt.Errorf("at least one entry in '%v' is required", k)
			}
			result.Platforms = platforms
		default:
			return fmt.Errorf("unexpected field: %v", k)
		}
	}

	*s = result
	return nil
}

// UnmarshalJSON unmarshals raw bytes into a 'PlatformSpec'.
func (p *PlatformSpec) UnmarshalJSON(b []byte) error {
	type platformSpec PlatformSpec

	err := checkFields(b,
		[]string{"name", "version", "devices"},
		[]string{"vendor", "profile", "extensions"},
	)
	if err != nil {
		return err
	}

	var result platformSpec
	err = json.Unmarshal(b, &result)
	if err != nil {
		return err
	}
	if len(result.Devices) == 0 {
		return fmt.Errorf("at least one entry in 'devices' is required for platform '%v'", result.Name)
	}

	*p = PlatformSpec(result)
	return nil
}

// UnmarshalJSON unmarshals raw bytes into a 'DeviceSpec'.
func (d *DeviceSpec) UnmarshalJSON(b []byte) error {
	type deviceSpec DeviceSpec

	err := checkFields(b,
		[]string{"name", "type"},
		[]string{
			"vendor", "version", "compute-units", "max-work-group-size",
			"max-work-item-sizes", "preferred-work-group-size-multiple",
			"global-mem-size", "local-mem-size", "image-support",
			"built-in-kernels",
		},
	)
	if err != nil {
		return err
	}

	var result deviceSpec
	err = json.Unmarshal(b, &result)
	if err != nil {
		return err
	}

	switch result.Type {
	case DeviceTypeGPU, DeviceTypeCPU, DeviceTypeAccelerator:
	default:
		return fmt.Errorf("invalid device type for '%v': %v", result.Name, result.Type)
	}

	*d = DeviceSpec(result)
	return nil
}

// checkFields verifies that the JSON object in b holds every required key
// and nothing outside of required and optional.
func checkFields(b []byte, required []string, optional []string) error {
	spec := make(map[string]json.RawMessage)
	err := json.Unmarshal(b, &spec)
	if err != nil {
		return err
	}

	for _, r := range required {
		if !containsKey(spec, r) {
			return fmt.Errorf("missing required field: %v", r)
		}
	}

	known := make(map[string]bool)
	for _, k := range append(required, optional...) {
		known[k] = true
	}
	for k := range spec {
		if !known[k] {
			return fmt.Errorf("unexpected field: %v", k)
		}
	}

	return nil
}

func containsKey(m map[string]json.RawMessage, s string) bool {
	_, exists := m[s]
	return exists
}
