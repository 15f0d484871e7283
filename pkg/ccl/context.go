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
	"github.com/NVIDIA/clwrap/internal/cl"
)

// Context wraps a driver context.
type Context struct {
	wrapper
	devContainer
	platform     *Platform
	imageFormats map[imageFormatsKey][]cl.ImageFormat
}

type imageFormatsKey struct {
	flags     cl.MemFlags
	imageType cl.MemObjectType
}

func wrapContext(drv cl.Interface, h cl.Handle) *Context {
	return wrap(drv, h, func() *Context { return &Context{} })
}

// WrapContext adopts a context created directly through the driver. The
// context is released when the facade is destroyed.
func WrapContext(drv cl.Interface, h cl.Handle) *Context {
	return wrapContext(drv, h)
}

// NewContextFromDevices creates a context for devices, which must all belong
// to the same platform. With no properties the context is bound to that
// platform. The context keeps its own references to the devices.
func NewContextFromDevices(drv cl.Interface, properties []cl.ContextProperty, devices []*Device) (*Context, error) {
	if len(devices) == 0 {
		return nil, newError(CodeArgs, "unable to create context: no devices given")
	}

	platform, err := devices[0].PlatformHandle()
	if err != nil {
		return nil, err
	}
	handles := make([]cl.Handle, len(devices))
	for i, d := range devices {
		p, err := d.PlatformHandle()
		if err != nil {
			return nil, err
		}
		if p != platform {
			return nil, driverError(cl.INVALID_DEVICE, "unable to create context: devices belong to different platforms")
		}
		handles[i] = d.handle
	}

	if len(properties) == 0 {
		properties = []cl.ContextProperty{{Name: cl.CONTEXT_PLATFORM, Value: uint64(platform)}}
	}

	h, ret := drv.CreateContext(properties, handles)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create context")
	}

	ctx := wrapContext(drv, h)
	ctx.devices = make([]*Device, len(devices))
	for i, d := range devices {
		d.Ref()
		ctx.devices[i] = d
	}
	ctx.loaded = true

	return ctx, nil
}

// NewContextFromDriverDevices creates a context from raw device handles.
func NewContextFromDriverDevices(drv cl.Interface, properties []cl.ContextProperty, handles []cl.Handle) (*Context, error) {
	devices := make([]*Device, len(handles))
	for i, h := range handles {
		devices[i] = wrapDevice(drv, h)
	}
	defer DestroyDevices(devices)

	return NewContextFromDevices(drv, properties, devices)
}

// NewContextFromFilters creates a context with the devices that pass filters.
func NewContextFromFilters(drv cl.Interface, filters *Filters) (*Context, error) {
	devices, err := Select(drv, filters)
	if err != nil {
		return nil, err
	}
	defer DestroyDevices(devices)

	if len(devices) == 0 {
		return nil, newError(CodeDeviceNotFound, "no device found for selected filters")
	}

	return NewContextFromDevices(drv, nil, devices)
}

// NewContextFromMenu creates a context with a single device chosen from a
// menu of every available device. A nil opts asks on the standard streams.
func NewContextFromMenu(drv cl.Interface, opts *MenuOptions) (*Context, error) {
	if opts == nil {
		opts = &MenuOptions{}
	}
	var filters Filters
	filters.AddDependent(DepMenu, opts)
	return NewContextFromFilters(drv, &filters)
}

// NewContextFromType creates a context with the devices of the first
// platform holding devices of the given type.
func NewContextFromType(drv cl.Interface, deviceType cl.DeviceType) (*Context, error) {
	var filters Filters
	filters.AddIndependent(IndepType, deviceType)
	filters.AddDependent(DepPlatform, nil)
	return NewContextFromFilters(drv, &filters)
}

func NewGPUContext(drv cl.Interface) (*Context, error) {
	return NewContextFromType(drv, cl.DEVICE_TYPE_GPU)
}

func NewCPUContext(drv cl.Interface) (*Context, error) {
	return NewContextFromType(drv, cl.DEVICE_TYPE_CPU)
}

func NewAccelContext(drv cl.Interface) (*Context, error) {
	return NewContextFromType(drv, cl.DEVICE_TYPE_ACCELERATOR)
}

func (c *Context) releaseDriver() cl.Return {
	return c.drv.ReleaseContext(c.handle)
}

func (c *Context) releaseFields() {
	c.releaseDevices()
	if c.platform != nil {
		c.platform.Destroy()
		c.platform = nil
	}
	c.imageFormats = nil
}

func (c *Context) Destroy() error {
	_, err := unref(c)
	return err
}

func (c *Context) query(param cl.ContextInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return c.drv.GetContextInfo(c.handle, param, value)
	}
}

func (c *Context) GetInfo(param cl.ContextInfo) (*Info, error) {
	return c.getInfo(infoKey{param: uint32(param)}, c.query(param), true)
}

func (c *Context) GetInfoFresh(param cl.ContextInfo) (*Info, error) {
	return c.getInfo(infoKey{param: uint32(param)}, c.query(param), false)
}

func (c *Context) deviceHandles() ([]cl.Handle, error) {
	return infoHandles(c.GetInfo(cl.CONTEXT_DEVICES))
}

// Devices returns the devices of the context. The context keeps ownership
// of them.
func (c *Context) Devices() ([]*Device, error) {
	if err := c.initDevices(c.drv, c.deviceHandles); err != nil {
		return nil, err
	}
	return c.devices, nil
}

func (c *Context) NumDevices() (int, error) {
	devices, err := c.Devices()
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

func (c *Context) Device(index int) (*Device, error) {
	if err := c.initDevices(c.drv, c.deviceHandles); err != nil {
		return nil, err
	}
	return c.device(index)
}

// Platform returns the platform of the context. The context keeps ownership
// of it.
func (c *Context) Platform() (*Platform, error) {
	if c.platform != nil {
		return c.platform, nil
	}

	dev, err := c.Device(0)
	if err != nil {
		return nil, err
	}
	platform, err := NewPlatformFromDevice(dev)
	if err != nil {
		return nil, err
	}
	c.platform = platform

	return platform, nil
}

// OpenCLVersion returns the OpenCL version of the context platform.
func (c *Context) OpenCLVersion() (int, error) {
	platform, err := c.Platform()
	if err != nil {
		return 0, err
	}
	return platform.OpenCLVersion()
}

// SupportedImageFormats returns the image formats supported by the context
// for the given flags and image type. Results are kept for the lifetime of
// the context.
func (c *Context) SupportedImageFormats(flags cl.MemFlags, imageType cl.MemObjectType) ([]cl.ImageFormat, error) {
	key := imageFormatsKey{flags, imageType}
	if formats, exists := c.imageFormats[key]; exists {
		return formats, nil
	}

	formats, ret := c.drv.GetSupportedImageFormats(c.handle, flags, imageType)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to get supported image formats")
	}
	if len(formats) == 0 {
		return nil, newError(CodeOther, "number of returned supported image formats is 0")
	}

	if c.imageFormats == nil {
		c.imageFormats = make(map[imageFormatsKey][]cl.ImageFormat)
	}
	c.imageFormats[key] = formats

	return formats, nil
}
