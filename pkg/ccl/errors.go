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

	"github.com/NVIDIA/clwrap/internal/cl"
)

// Domain identifies the origin of an Error.
type Domain string

const (
	DomainDriver    Domain = "driver"
	DomainFramework Domain = "framework"
)

// Framework error codes.
const (
	CodeOpenFile        int32 = 1
	CodeArgs            int32 = 2
	CodeInvalidData     int32 = 3
	CodeStreamWrite     int32 = 4
	CodeDeviceNotFound  int32 = 5
	CodeUnsupportedOCL  int32 = 6
	CodeInfoUnavailable int32 = 7
	CodeOther           int32 = 15
)

// Sentinels for use with errors.Is.
var (
	ErrOpenFile        = &Error{Domain: DomainFramework, Code: CodeOpenFile}
	ErrArgs            = &Error{Domain: DomainFramework, Code: CodeArgs}
	ErrInvalidData     = &Error{Domain: DomainFramework, Code: CodeInvalidData}
	ErrStreamWrite     = &Error{Domain: DomainFramework, Code: CodeStreamWrite}
	ErrDeviceNotFound  = &Error{Domain: DomainFramework, Code: CodeDeviceNotFound}
	ErrUnsupportedOCL  = &Error{Domain: DomainFramework, Code: CodeUnsupportedOCL}
	ErrInfoUnavailable = &Error{Domain: DomainFramework, Code: CodeInfoUnavailable}
	ErrOther           = &Error{Domain: DomainFramework, Code: CodeOther}
)

// Error is returned by every failing operation of this package. Driver
// errors carry the driver status code and unwrap to the matching cl.Return,
// so errors.Is(err, cl.DEVICE_NOT_FOUND) works as expected.
type Error struct {
	Domain  Domain
	Code    int32
	Message string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s error %d", e.Domain, e.Code)
	}
	return e.Message
}

// Is reports whether target is an *Error with the same domain and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

func (e *Error) Unwrap() error {
	if e.Domain == DomainDriver {
		return cl.Return(e.Code)
	}
	return nil
}

// NewError creates a framework error with the given code.
func NewError(code int32, format string, args ...interface{}) error {
	return newError(code, format, args...)
}

func newError(code int32, format string, args ...interface{}) error {
	return &Error{
		Domain:  DomainFramework,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func driverError(ret cl.Return, format string, args ...interface{}) error {
	return &Error{
		Domain:  DomainDriver,
		Code:    int32(ret),
		Message: fmt.Sprintf("%s (OpenCL error %d: %s)", fmt.Sprintf(format, args...), int32(ret), ret.String()),
	}
}

// Describe renders err the way the command line tools report failures.
func Describe(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return fmt.Sprintf("Error %d from domain '%s' with message: \"%s\"", e.Code, e.Domain, e.Message)
	}
	var ret cl.Return
	if errors.As(err, &ret) {
		return fmt.Sprintf("Error %d from domain '%s' with message: \"%s\"", int32(ret), DomainDriver, ret.String())
	}
	return fmt.Sprintf("Error %d from domain '%s' with message: \"%s\"", CodeOther, DomainFramework, err)
}
