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

package ccl

import (
	"fmt"

	"github.com/NVIDIA/clwrap/internal/cl"
)

// Platform wraps a driver platform.
type Platform struct {
	wrapper
	devContainer
}

// Platforms is the set of platforms available on a driver.
type Platforms struct {
	platforms []*Platform
}

func wrapPlatform(drv cl.Interface, h cl.Handle) *Platform {
	return wrap(drv, h, func() *Platform { return &Platform{} })
}

// WrapPlatform returns the facade for an existing platform handle.
func WrapPlatform(drv cl.Interface, h cl.Handle) *Platform {
	return wrapPlatform(drv, h)
}

// NewPlatforms enumerates the platforms of drv.
func NewPlatforms(drv cl.Interface) (*Platforms, error) {
	handles, ret := drv.GetPlatformIDs()
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to get platform IDs")
	}

	platforms := &Platforms{
		platforms: make([]*Platform, len(handles)),
	}
	for i, h := range handles {
		platforms.platforms[i] = wrapPlatform(drv, h)
	}

	return platforms, nil
}

// NewPlatformFromDevice returns the platform the device belongs to. The
// caller owns the returned reference.
func NewPlatformFromDevice(dev *Device) (*Platform, error) {
	h, err := dev.PlatformHandle()
	if err != nil {
		return nil, err
	}
	return wrapPlatform(dev.drv, h), nil
}

func (p *Platforms) Count() int {
	return len(p.platforms)
}

// Get returns the platform at index i. The set keeps ownership of it.
func (p *Platforms) Get(i int) *Platform {
	return p.platforms[i]
}

// Destroy releases every platform in the set.
func (p *Platforms) Destroy() {
	for _, platform := range p.platforms {
		platform.Destroy()
	}
	p.platforms = nil
}

func (p *Platform) releaseDriver() cl.Return {
	return cl.SUCCESS
}

func (p *Platform) releaseFields() {
	p.releaseDevices()
}

// Destroy decrements the reference count of the platform, releasing its
// devices when it reaches zero.
func (p *Platform) Destroy() error {
	_, err := unref(p)
	return err
}

func (p *Platform) query(param cl.PlatformInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return p.drv.GetPlatformInfo(p.handle, param, value)
	}
}

func (p *Platform) GetInfo(param cl.PlatformInfo) (*Info, error) {
	return p.getInfo(infoKey{param: uint32(param)}, p.query(param), true)
}

func (p *Platform) GetInfoFresh(param cl.PlatformInfo) (*Info, error) {
	return p.getInfo(infoKey{param: uint32(param)}, p.query(param), false)
}

func (p *Platform) Name() (string, error) {
	return infoString(p.GetInfo(cl.PLATFORM_NAME))
}

func (p *Platform) Vendor() (string, error) {
	return infoString(p.GetInfo(cl.PLATFORM_VENDOR))
}

func (p *Platform) Version() (string, error) {
	return infoString(p.GetInfo(cl.PLATFORM_VERSION))
}

func (p *Platform) Profile() (string, error) {
	return infoString(p.GetInfo(cl.PLATFORM_PROFILE))
}

func (p *Platform) Extensions() (string, error) {
	return infoString(p.GetInfo(cl.PLATFORM_EXTENSIONS))
}

// OpenCLVersion returns the OpenCL version of the platform as an integer,
// e.g. 120 for OpenCL 1.2.
func (p *Platform) OpenCLVersion() (int, error) {
	version, err := p.Version()
	if err != nil {
		return 0, err
	}
	return parseOpenCLVersion("OpenCL %d.%d", version)
}

func parseOpenCLVersion(format string, version string) (int, error) {
	var major, minor int
	if _, err := fmt.Sscanf(version, format, &major, &minor); err != nil {
		return 0, newError(CodeInvalidData, "unable to parse OpenCL version from '%s'", version)
	}
	return major*100 + minor*10, nil
}

func (p *Platform) deviceHandles() ([]cl.Handle, error) {
	handles, ret := p.drv.GetDeviceIDs(p.handle, cl.DEVICE_TYPE_ALL)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to get device IDs of platform %#x", p.handle)
	}
	return handles, nil
}

// Devices returns the devices of the platform. The platform keeps ownership
// of them.
func (p *Platform) Devices() ([]*Device, error) {
	if err := p.initDevices(p.drv, p.deviceHandles); err != nil {
		return nil, err
	}
	return p.devices, nil
}

func (p *Platform) NumDevices() (int, error) {
	devices, err := p.Devices()
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

func (p *Platform) Device(index int) (*Device, error) {
	if err := p.initDevices(p.drv, p.deviceHandles); err != nil {
		return nil, err
	}
	return p.device(index)
}

// UnloadCompiler hints the driver that the platform compiler may be
// released.
func (p *Platform) UnloadCompiler() error {
	if ret := p.drv.UnloadPlatformCompiler(p.handle); ret != cl.SUCCESS {
		return driverError(ret, "unable to unload compiler of platform %#x", p.handle)
	}
	return nil
}
