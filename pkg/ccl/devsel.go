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
	"errors"
	"fmt"
	"strings"

	"github.com/NVIDIA/clwrap/internal/cl"
)

// IndepFilter decides whether a single device is kept.
type IndepFilter func(dev *Device, data interface{}) (bool, error)

// DepFilter returns the subset of devices to keep, which may depend on the
// whole set. It must not change the references held on the devices.
type DepFilter func(devices []*Device, data interface{}) ([]*Device, error)

type filter struct {
	indep IndepFilter
	dep   DepFilter
	data  interface{}
}

// Filters is an ordered list of device filters. The zero value is an empty
// list ready to use.
type Filters struct {
	filters []filter
}

func (f *Filters) AddIndependent(fn IndepFilter, data interface{}) {
	f.filters = append(f.filters, filter{indep: fn, data: data})
}

func (f *Filters) AddDependent(fn DepFilter, data interface{}) {
	f.filters = append(f.filters, filter{dep: fn, data: data})
}

func (f *Filters) Len() int {
	return len(f.filters)
}

// allDevices returns every device of every platform, each with a reference
// owned by the caller. Platforms without devices are skipped.
func allDevices(drv cl.Interface) ([]*Device, error) {
	platforms, err := NewPlatforms(drv)
	if err != nil {
		return nil, err
	}
	defer platforms.Destroy()

	var devices []*Device
	for i := 0; i < platforms.Count(); i++ {
		platformDevices, err := platforms.Get(i).Devices()
		if errors.Is(err, cl.DEVICE_NOT_FOUND) {
			continue
		}
		if err != nil {
			DestroyDevices(devices)
			return nil, err
		}
		for _, d := range platformDevices {
			d.Ref()
			devices = append(devices, d)
		}
	}

	return devices, nil
}

// Select runs filters over every device available on drv and returns the
// devices that pass all of them, possibly none. The caller owns the returned
// devices.
func Select(drv cl.Interface, filters *Filters) ([]*Device, error) {
	devices, err := allDevices(drv)
	if err != nil {
		return nil, err
	}

	if filters == nil {
		return devices, nil
	}

	for _, f := range filters.filters {
		if len(devices) == 0 {
			break
		}

		var selected []*Device
		if f.indep != nil {
			selected, err = applyIndependent(f.indep, devices, f.data)
		} else {
			selected, err = f.dep(devices, f.data)
		}
		if err != nil {
			DestroyDevices(devices)
			return nil, err
		}

		kept := make(map[*Device]bool, len(selected))
		for _, d := range selected {
			kept[d] = true
		}
		for _, d := range devices {
			if !kept[d] {
				d.Destroy()
			}
		}
		devices = selected
	}

	return devices, nil
}

func applyIndependent(fn IndepFilter, devices []*Device, data interface{}) ([]*Device, error) {
	var selected []*Device
	for _, d := range devices {
		pass, err := fn(d, data)
		if err != nil {
			return nil, err
		}
		if pass {
			selected = append(selected, d)
		}
	}
	return selected, nil
}

// IndepType keeps devices whose type matches the cl.DeviceType mask in data.
func IndepType(dev *Device, data interface{}) (bool, error) {
	mask, ok := data.(cl.DeviceType)
	if !ok {
		return false, newError(CodeInvalidData, "invalid filter data: expected a device type")
	}
	t, err := dev.Type()
	if err != nil {
		return false, err
	}
	return t&mask != 0, nil
}

func IndepTypeGPU(dev *Device, _ interface{}) (bool, error) {
	return IndepType(dev, cl.DEVICE_TYPE_GPU)
}

func IndepTypeCPU(dev *Device, _ interface{}) (bool, error) {
	return IndepType(dev, cl.DEVICE_TYPE_CPU)
}

func IndepTypeAccel(dev *Device, _ interface{}) (bool, error) {
	return IndepType(dev, cl.DEVICE_TYPE_ACCELERATOR)
}

// IndepPlatform keeps devices of the platform given in data, either as a
// *Platform or as a cl.Handle.
func IndepPlatform(dev *Device, data interface{}) (bool, error) {
	var want cl.Handle
	switch p := data.(type) {
	case cl.Handle:
		want = p
	case *Platform:
		want = p.handle
	default:
		return false, newError(CodeInvalidData, "invalid filter data: expected a platform")
	}
	h, err := dev.PlatformHandle()
	if err != nil {
		return false, err
	}
	return h == want, nil
}

// IndepString keeps devices whose name, vendor or platform name contains
// the string in data, ignoring case.
func IndepString(dev *Device, data interface{}) (bool, error) {
	s, ok := data.(string)
	if !ok {
		return false, newError(CodeInvalidData, "invalid filter data: expected a string")
	}
	part := strings.ToLower(s)

	name, err := dev.Name()
	if err != nil {
		return false, err
	}
	if strings.Contains(strings.ToLower(name), part) {
		return true, nil
	}

	vendor, err := dev.Vendor()
	if err != nil {
		return false, err
	}
	if strings.Contains(strings.ToLower(vendor), part) {
		return true, nil
	}

	platformName, err := devicePlatformName(dev)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(platformName), part), nil
}

// IndepAll keeps every device.
func IndepAll(*Device, interface{}) (bool, error) {
	return true, nil
}

func devicePlatformName(dev *Device) (string, error) {
	platform, err := NewPlatformFromDevice(dev)
	if err != nil {
		return "", err
	}
	defer platform.Destroy()
	return platform.Name()
}

// DepPlatform keeps the devices of a single platform. With nil data the
// platform of the first device is kept; with *MenuOptions the platform is
// chosen from a menu when the devices span more than one platform.
func DepPlatform(devices []*Device, data interface{}) ([]*Device, error) {
	var order []cl.Handle
	groups := make(map[cl.Handle][]*Device)
	for _, d := range devices {
		h, err := d.PlatformHandle()
		if err != nil {
			return nil, err
		}
		if _, exists := groups[h]; !exists {
			order = append(order, h)
		}
		groups[h] = append(groups[h], d)
	}

	if len(order) <= 1 {
		return devices, nil
	}

	switch opts := data.(type) {
	case nil:
		return groups[order[0]], nil
	case *MenuOptions:
		if opts == nil {
			return groups[order[0]], nil
		}
		items := make([]string, len(order))
		for i, h := range order {
			name, err := devicePlatformName(groups[h][0])
			if err != nil {
				return nil, err
			}
			items[i] = fmt.Sprintf("%d. %s", i, name)
		}
		index, err := opts.choose(platformMenu, items)
		if err != nil {
			return nil, err
		}
		return groups[order[index]], nil
	}

	return nil, newError(CodeInvalidData, "invalid filter data: expected menu options")
}

// DepMenu keeps a single device, chosen from a menu. data is nil or
// *MenuOptions.
func DepMenu(devices []*Device, data interface{}) ([]*Device, error) {
	var opts *MenuOptions
	switch o := data.(type) {
	case nil:
		opts = &MenuOptions{}
	case *MenuOptions:
		opts = o
		if opts == nil {
			opts = &MenuOptions{}
		}
	default:
		return nil, newError(CodeInvalidData, "invalid filter data: expected menu options")
	}

	items, err := deviceStrings(devices)
	if err != nil {
		return nil, err
	}

	index, err := opts.choose(deviceMenu, items)
	if err != nil {
		return nil, err
	}

	return []*Device{devices[index]}, nil
}

// DepIndex keeps the device at the int index given in data.
func DepIndex(devices []*Device, data interface{}) ([]*Device, error) {
	index, ok := data.(int)
	if !ok {
		return nil, newError(CodeInvalidData, "invalid filter data: expected an index")
	}
	if index < 0 || index >= len(devices) {
		return nil, newError(CodeDeviceNotFound, "no device at index %d", index)
	}
	return []*Device{devices[index]}, nil
}
