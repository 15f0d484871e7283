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

// devContainer holds the device list of facades that own devices, such as
// platforms, contexts and programs. The list is built on first use and
// released together with its owner.
type devContainer struct {
	devices []*Device
	loaded  bool
}

func (c *devContainer) initDevices(drv cl.Interface, fetch func() ([]cl.Handle, error)) error {
	if c.loaded {
		return nil
	}

	handles, err := fetch()
	if err != nil {
		return err
	}

	c.devices = make([]*Device, len(handles))
	for i, h := range handles {
		c.devices[i] = wrapDevice(drv, h)
	}
	c.loaded = true

	return nil
}

func (c *devContainer) device(index int) (*Device, error) {
	if index < 0 || index >= len(c.devices) {
		return nil, newError(CodeDeviceNotFound, "device index (%d) out of bounds (%d devices in list)", index, len(c.devices))
	}
	return c.devices[index], nil
}

func (c *devContainer) releaseDevices() {
	for _, d := range c.devices {
		d.Destroy()
	}
	c.devices = nil
	c.loaded = false
}
