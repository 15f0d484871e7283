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

package util

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	v1 "github.com/NVIDIA/clwrap/api/platforms/v1"
	"github.com/NVIDIA/clwrap/internal/cl"
)

// NewDriver returns the in-memory driver described by the platforms spec
// at path, or the default workstation driver when path is empty.
func NewDriver(path string) (*cl.MockDriver, error) {
	if path == "" {
		log.Debugf("Using default workstation platforms")
		return cl.NewMockDriverOnWorkstation(), nil
	}

	log.Debugf("Parsing platforms file %s...", path)
	spec, err := v1.Load(path)
	if err != nil {
		return nil, err
	}

	return NewDriverFromSpec(spec), nil
}

// NewDriverFromSpec builds an in-memory driver exposing the platforms and
// devices of spec.
func NewDriverFromSpec(spec *v1.Spec) *cl.MockDriver {
	drv := cl.NewMockDriver()
	for _, ps := range spec.Platforms {
		vendor := ps.Vendor
		if vendor == "" {
			vendor = ps.Name
		}
		p := cl.NewMockPlatform(ps.Name, vendor, ps.Version)
		if ps.Profile != "" {
			p.Profile = ps.Profile
		}
		if len(ps.Extensions) > 0 {
			p.Extensions = strings.Join(ps.Extensions, " ")
		}
		for _, ds := range ps.Devices {
			p.AddDevice(newDevice(ds))
		}
		drv.AddPlatform(p)
	}
	return drv
}

func newDevice(ds v1.DeviceSpec) *cl.MockDevice {
	var dev *cl.MockDevice
	switch ds.Type {
	case v1.DeviceTypeCPU:
		dev = cl.NewMockCPUDevice(ds.Name)
	case v1.DeviceTypeAccelerator:
		dev = cl.NewMockAcceleratorDevice(ds.Name)
	default:
		dev = cl.NewMockGPUDevice(ds.Name)
	}

	if ds.Vendor != "" {
		dev.SetInfo(cl.DEVICE_VENDOR, cl.EncodeString(ds.Vendor))
	}
	if ds.Version != "" {
		dev.SetInfo(cl.DEVICE_VERSION, cl.EncodeString(ds.Version))
		dev.SetInfo(cl.DEVICE_OPENCL_C_VERSION, cl.EncodeString(openCLCVersion(ds.Version)))
	}
	if ds.ComputeUnits > 0 {
		dev.SetInfo(cl.DEVICE_MAX_COMPUTE_UNITS, cl.EncodeUint32(uint32(ds.ComputeUnits)))
	}
	if ds.MaxWorkGroupSize > 0 {
		dev.SetInfo(cl.DEVICE_MAX_WORK_GROUP_SIZE, cl.EncodeSizeTs(ds.MaxWorkGroupSize))
	}
	if len(ds.MaxWorkItemSizes) > 0 {
		dev.SetInfo(cl.DEVICE_MAX_WORK_ITEM_SIZES, cl.EncodeSizeTs(ds.MaxWorkItemSizes...))
	}
	if ds.PreferredWorkGroupSizeMultiple > 0 {
		dev.PreferredWorkGroupSizeMultiple = ds.PreferredWorkGroupSizeMultiple
	}
	if ds.GlobalMemSize > 0 {
		dev.SetInfo(cl.DEVICE_GLOBAL_MEM_SIZE, cl.EncodeUint64(ds.GlobalMemSize))
	}
	if ds.LocalMemSize > 0 {
		dev.SetInfo(cl.DEVICE_LOCAL_MEM_SIZE, cl.EncodeUint64(ds.LocalMemSize))
	}
	if ds.ImageSupport != nil {
		dev.SetInfo(cl.DEVICE_IMAGE_SUPPORT, cl.EncodeBool(*ds.ImageSupport))
	}
	if len(ds.BuiltInKernels) > 0 {
		dev.SetInfo(cl.DEVICE_BUILT_IN_KERNELS, cl.EncodeString(strings.Join(ds.BuiltInKernels, ";")))
	}

	return dev
}

// openCLCVersion derives the OpenCL C version reported along with a device
// version of the form "OpenCL <major>.<minor> ...".
func openCLCVersion(version string) string {
	var major, minor int
	_, err := fmt.Sscanf(version, "OpenCL %d.%d", &major, &minor)
	if err != nil {
		return "OpenCL C 1.2"
	}
	if major >= 3 {
		return "OpenCL C 1.2"
	}
	return fmt.Sprintf("OpenCL C %d.%d", major, minor)
}
