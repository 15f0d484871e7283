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
)

// Return is a status code returned by the driver.
type Return int32

var _ error = Return(0)

var errorStrings = [...]string{
	"Successful operation",
	"Device not found",
	"Device not available",
	"Compiler not available",
	"Memory object allocation failure",
	"Out of resources",
	"Out of host memory",
	"Profiling info not available",
	"Memory copy overlap",
	"Image format mismatch",
	"Image format not supported",
	"Build program failure",
	"Map failure",
	"Misaligned sub-buffer offset",
	"Execution status error for events in wait list",
	"Compile program failure",
	"Linker not available",
	"Link program failure",
	"Device partition failed",
	"Argument information not available",
	"", "", "", "", "", "", "", "", "", "",
	"Invalid value",
	"Invalid device type",
	"Invalid platform",
	"Invalid device",
	"Invalid context",
	"Invalid queue properties",
	"Invalid command queue",
	"Invalid host pointer",
	"Invalid memory object",
	"Invalid image format descriptor",
	"Invalid image size",
	"Invalid sampler",
	"Invalid binary",
	"Invalid build options",
	"Invalid program",
	"Invalid program executable",
	"Invalid kernel name",
	"Invalid kernel definition",
	"Invalid kernel",
	"Invalid argument index",
	"Invalid argument value",
	"Invalid argument size",
	"Invalid kernel arguments",
	"Invalid work dimension",
	"Invalid work-group size",
	"Invalid work-item size",
	"Invalid global offset",
	"Invalid event wait list",
	"Invalid event",
	"Invalid operation",
	"Invalid GL object",
	"Invalid buffer size",
	"Invalid MIP level",
	"Invalid global work size",
	"Invalid property",
	"Invalid image descriptor",
	"Invalid compiler options",
	"Invalid linker options",
	"Invalid device partition count",
	"Invalid pipe size",
	"Invalid device queue",
}

// Value returns the numeric status code.
func (r Return) Value() int32 {
	return int32(r)
}

// String returns a readable description of the status code.
func (r Return) String() string {
	if r == PLATFORM_NOT_FOUND_KHR {
		return "No platforms found"
	}
	index := -int(r)
	if index < 0 || index >= len(errorStrings) {
		return "Unknown OpenCL error code"
	}
	if errorStrings[index] == "" {
		return "Unassigned error code"
	}
	return errorStrings[index]
}

func (r Return) Error() string {
	return fmt.Sprintf("OpenCL error %d: %s", int32(r), r.String())
}
