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

// Device wraps a driver device.
type Device struct {
	wrapper
}

func wrapDevice(drv cl.Interface, h cl.Handle) *Device {
	return wrap(drv, h, func() *Device { return &Device{} })
}

// WrapDevice returns the facade for an existing device handle.
func WrapDevice(drv cl.Interface, h cl.Handle) *Device {
	return wrapDevice(drv, h)
}

func (d *Device) releaseDriver() cl.Return {
	return d.drv.ReleaseDevice(d.handle)
}

func (d *Device) releaseFields() {}

func (d *Device) Destroy() error {
	_, err := unref(d)
	return err
}

// DestroyDevices destroys each device in the list.
func DestroyDevices(devices []*Device) {
	for _, d := range devices {
		d.Destroy()
	}
}

func (d *Device) query(param cl.DeviceInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return d.drv.GetDeviceInfo(d.handle, param, value)
	}
}

func (d *Device) GetInfo(param cl.DeviceInfo) (*Info, error) {
	return d.getInfo(infoKey{param: uint32(param)}, d.query(param), true)
}

func (d *Device) GetInfoFresh(param cl.DeviceInfo) (*Info, error) {
	return d.getInfo(infoKey{param: uint32(param)}, d.query(param), false)
}

func (d *Device) Name() (string, error) {
	return infoString(d.GetInfo(cl.DEVICE_NAME))
}

func (d *Device) Vendor() (string, error) {
	return infoString(d.GetInfo(cl.DEVICE_VENDOR))
}

func (d *Device) Version() (string, error) {
	return infoString(d.GetInfo(cl.DEVICE_VERSION))
}

func (d *Device) Type() (cl.DeviceType, error) {
	t, err := infoUint64(d.GetInfo(cl.DEVICE_TYPE))
	return cl.DeviceType(t), err
}

func (d *Device) MaxComputeUnits() (uint32, error) {
	return infoUint32(d.GetInfo(cl.DEVICE_MAX_COMPUTE_UNITS))
}

func (d *Device) MaxWorkGroupSize() (int, error) {
	return infoSizeT(d.GetInfo(cl.DEVICE_MAX_WORK_GROUP_SIZE))
}

func (d *Device) MaxWorkItemDimensions() (uint32, error) {
	return infoUint32(d.GetInfo(cl.DEVICE_MAX_WORK_ITEM_DIMENSIONS))
}

func (d *Device) MaxWorkItemSizes() ([]int, error) {
	return infoSizeTs(d.GetInfo(cl.DEVICE_MAX_WORK_ITEM_SIZES))
}

func (d *Device) GlobalMemSize() (uint64, error) {
	return infoUint64(d.GetInfo(cl.DEVICE_GLOBAL_MEM_SIZE))
}

func (d *Device) LocalMemSize() (uint64, error) {
	return infoUint64(d.GetInfo(cl.DEVICE_LOCAL_MEM_SIZE))
}

func (d *Device) ImageSupport() (bool, error) {
	return infoBool(d.GetInfo(cl.DEVICE_IMAGE_SUPPORT))
}

// PlatformHandle returns the handle of the platform the device belongs to.
func (d *Device) PlatformHandle() (cl.Handle, error) {
	return infoHandle(d.GetInfo(cl.DEVICE_PLATFORM))
}

// ParentDevice returns the handle of the device this one was partitioned
// from, or 0 for a root device.
func (d *Device) ParentDevice() (cl.Handle, error) {
	return infoHandle(d.GetInfo(cl.DEVICE_PARENT_DEVICE))
}

// OpenCLVersion returns the OpenCL version supported by the device as an
// integer, e.g. 120 for OpenCL 1.2.
func (d *Device) OpenCLVersion() (int, error) {
	version, err := d.Version()
	if err != nil {
		return 0, err
	}
	return parseOpenCLVersion("OpenCL %d.%d", version)
}

// OpenCLCVersion returns the highest OpenCL C version supported by the
// compiler of the device.
func (d *Device) OpenCLCVersion() (int, error) {
	version, err := infoString(d.GetInfo(cl.DEVICE_OPENCL_C_VERSION))
	if err != nil {
		return 0, err
	}
	return parseOpenCLVersion("OpenCL C %d.%d", version)
}

// PartitionEqually returns sub-device properties splitting a device into
// sub-devices of n compute units each.
func PartitionEqually(n int) []uint64 {
	return []uint64{cl.DEVICE_PARTITION_EQUALLY, uint64(n), 0}
}

// PartitionByCounts returns sub-device properties creating one sub-device
// per count.
func PartitionByCounts(counts ...int) []uint64 {
	props := []uint64{cl.DEVICE_PARTITION_BY_COUNTS}
	for _, c := range counts {
		props = append(props, uint64(c))
	}
	return append(props, cl.DEVICE_PARTITION_BY_COUNTS_LIST_END, 0)
}

// CreateSubDevices partitions the device. The caller owns the returned
// sub-devices, whose ParentDevice is this device.
func (d *Device) CreateSubDevices(properties []uint64) ([]*Device, error) {
	handles, ret := d.drv.CreateSubDevices(d.handle, properties)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create sub-devices of device %#x", d.handle)
	}

	subDevices := make([]*Device, len(handles))
	for i, h := range handles {
		subDevices[i] = wrapDevice(d.drv, h)
	}

	return subDevices, nil
}
