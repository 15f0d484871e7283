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

package cl

import (
	"fmt"
	"strings"
)

var commandTypeNames = map[CommandType]string{
	COMMAND_NDRANGE_KERNEL:       "NDRANGE_KERNEL",
	COMMAND_TASK:                 "TASK",
	COMMAND_NATIVE_KERNEL:        "NATIVE_KERNEL",
	COMMAND_READ_BUFFER:          "READ_BUFFER",
	COMMAND_WRITE_BUFFER:         "WRITE_BUFFER",
	COMMAND_COPY_BUFFER:          "COPY_BUFFER",
	COMMAND_READ_IMAGE:           "READ_IMAGE",
	COMMAND_WRITE_IMAGE:          "WRITE_IMAGE",
	COMMAND_COPY_IMAGE:           "COPY_IMAGE",
	COMMAND_COPY_IMAGE_TO_BUFFER: "COPY_IMAGE_TO_BUFFER",
	COMMAND_COPY_BUFFER_TO_IMAGE: "COPY_BUFFER_TO_IMAGE",
	COMMAND_MAP_BUFFER:           "MAP_BUFFER",
	COMMAND_MAP_IMAGE:            "MAP_IMAGE",
	COMMAND_UNMAP_MEM_OBJECT:     "UNMAP_MEM_OBJECT",
	COMMAND_MARKER:               "MARKER",
	COMMAND_ACQUIRE_GL_OBJECTS:   "ACQUIRE_GL_OBJECTS",
	COMMAND_RELEASE_GL_OBJECTS:   "RELEASE_GL_OBJECTS",
	COMMAND_READ_BUFFER_RECT:     "READ_BUFFER_RECT",
	COMMAND_WRITE_BUFFER_RECT:    "WRITE_BUFFER_RECT",
	COMMAND_COPY_BUFFER_RECT:     "COPY_BUFFER_RECT",
	COMMAND_USER:                 "USER",
	COMMAND_BARRIER:              "BARRIER",
	COMMAND_MIGRATE_MEM_OBJECTS:  "MIGRATE_MEM_OBJECTS",
	COMMAND_FILL_BUFFER:          "FILL_BUFFER",
	COMMAND_FILL_IMAGE:           "FILL_IMAGE",
}

// String returns the name used to label events produced by this command.
func (c CommandType) String() string {
	if name, ok := commandTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%X)", uint32(c))
}

var deviceTypeNames = []struct {
	t    DeviceType
	name string
}{
	{DEVICE_TYPE_DEFAULT, "DEFAULT"},
	{DEVICE_TYPE_CPU, "CPU"},
	{DEVICE_TYPE_GPU, "GPU"},
	{DEVICE_TYPE_ACCELERATOR, "ACCELERATOR"},
	{DEVICE_TYPE_CUSTOM, "CUSTOM"},
}

// String returns the names of the type bits set, separated by spaces.
func (t DeviceType) String() string {
	if t == DEVICE_TYPE_ALL {
		return "ALL"
	}
	var names []string
	for _, n := range deviceTypeNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, " ")
}

// ParseDeviceType converts a name such as "gpu" into a device type mask.
func ParseDeviceType(s string) (DeviceType, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "ALL" {
		return DEVICE_TYPE_ALL, nil
	}
	if upper == "ACCEL" {
		return DEVICE_TYPE_ACCELERATOR, nil
	}
	for _, n := range deviceTypeNames {
		if n.name == upper {
			return n.t, nil
		}
	}
	return 0, fmt.Errorf("unknown device type: %v", s)
}
