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
	"os"
	"strings"

	"github.com/NVIDIA/clwrap/internal/cl"
	log "github.com/sirupsen/logrus"
)

// Program wraps a driver program. Kernels obtained with GetKernel are owned
// by the program.
type Program struct {
	wrapper
	devContainer
	kernels map[string]*Kernel
}

func wrapProgram(drv cl.Interface, h cl.Handle) *Program {
	return wrap(drv, h, func() *Program { return &Program{} })
}

// WrapProgram adopts a program created directly through the driver.
func WrapProgram(drv cl.Interface, h cl.Handle) *Program {
	return wrapProgram(drv, h)
}

// NewProgramFromSources creates a program from source strings, which are
// concatenated in order.
func NewProgramFromSources(ctx *Context, sources []string) (*Program, error) {
	h, ret := ctx.drv.CreateProgramWithSource(ctx.handle, sources)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create program from source")
	}
	return wrapProgram(ctx.drv, h), nil
}

func NewProgramFromSource(ctx *Context, source string) (*Program, error) {
	return NewProgramFromSources(ctx, []string{source})
}

// NewProgramFromFiles creates a program with one source string per file.
func NewProgramFromFiles(ctx *Context, paths ...string) (*Program, error) {
	sources := make([]string, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, newError(CodeOpenFile, "unable to read source file '%s': %v", path, err)
		}
		sources[i] = string(data)
	}
	return NewProgramFromSources(ctx, sources)
}

func NewProgramFromFile(ctx *Context, path string) (*Program, error) {
	return NewProgramFromFiles(ctx, path)
}

// NewProgramFromBinaries creates a program from one binary per device. The
// returned status slice tells, per device, whether its binary was accepted;
// it is set even when creation fails.
func NewProgramFromBinaries(ctx *Context, devices []*Device, binaries [][]byte) (*Program, []cl.Return, error) {
	if len(devices) == 0 || len(devices) != len(binaries) {
		return nil, nil, newError(CodeArgs, "unable to create program: %d devices but %d binaries", len(devices), len(binaries))
	}

	handles := make([]cl.Handle, len(devices))
	for i, d := range devices {
		handles[i] = d.handle
	}

	h, status, ret := ctx.drv.CreateProgramWithBinary(ctx.handle, handles, binaries)
	if ret != cl.SUCCESS {
		return nil, status, driverError(ret, "unable to create program from binaries")
	}
	return wrapProgram(ctx.drv, h), status, nil
}

// NewProgramFromBinaryFiles is NewProgramFromBinaries reading each binary
// from a file.
func NewProgramFromBinaryFiles(ctx *Context, devices []*Device, paths []string) (*Program, []cl.Return, error) {
	binaries := make([][]byte, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, newError(CodeOpenFile, "unable to read binary file '%s': %v", path, err)
		}
		binaries[i] = data
	}
	return NewProgramFromBinaries(ctx, devices, binaries)
}

// NewProgramFromBuiltInKernels creates a program with kernels built into
// every one of devices.
func NewProgramFromBuiltInKernels(ctx *Context, devices []*Device, names []string) (*Program, error) {
	handles := make([]cl.Handle, len(devices))
	for i, d := range devices {
		handles[i] = d.handle
	}

	h, ret := ctx.drv.CreateProgramWithBuiltInKernels(ctx.handle, handles, strings.Join(names, ";"))
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create program from built-in kernels")
	}
	return wrapProgram(ctx.drv, h), nil
}

func (p *Program) releaseDriver() cl.Return {
	return p.drv.ReleaseProgram(p.handle)
}

func (p *Program) releaseFields() {
	for _, k := range p.kernels {
		k.Destroy()
	}
	p.kernels = nil
	p.releaseDevices()
}

func (p *Program) Destroy() error {
	_, err := unref(p)
	return err
}

func (p *Program) query(param cl.ProgramInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return p.drv.GetProgramInfo(p.handle, param, value)
	}
}

func (p *Program) GetInfo(param cl.ProgramInfo) (*Info, error) {
	return p.getInfo(infoKey{param: uint32(param)}, p.query(param), true)
}

func (p *Program) GetInfoFresh(param cl.ProgramInfo) (*Info, error) {
	return p.getInfo(infoKey{param: uint32(param)}, p.query(param), false)
}

func (p *Program) ContextHandle() (cl.Handle, error) {
	return infoHandle(p.GetInfo(cl.PROGRAM_CONTEXT))
}

func (p *Program) Source() (string, error) {
	return infoString(p.GetInfo(cl.PROGRAM_SOURCE))
}

// NumKernels returns the number of kernels in the program, which must be
// built.
func (p *Program) NumKernels() (int, error) {
	return infoSizeT(p.GetInfoFresh(cl.PROGRAM_NUM_KERNELS))
}

func (p *Program) KernelNames() ([]string, error) {
	names, err := infoString(p.GetInfoFresh(cl.PROGRAM_KERNEL_NAMES))
	if err != nil {
		return nil, err
	}
	return strings.Split(names, ";"), nil
}

func (p *Program) deviceHandles() ([]cl.Handle, error) {
	return infoHandles(p.GetInfo(cl.PROGRAM_DEVICES))
}

// Devices returns the devices the program is associated with. The program
// keeps ownership of them.
func (p *Program) Devices() ([]*Device, error) {
	if err := p.initDevices(p.drv, p.deviceHandles); err != nil {
		return nil, err
	}
	return p.devices, nil
}

func (p *Program) NumDevices() (int, error) {
	devices, err := p.Devices()
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

func (p *Program) Device(index int) (*Device, error) {
	if err := p.initDevices(p.drv, p.deviceHandles); err != nil {
		return nil, err
	}
	return p.device(index)
}

// OpenCLVersion returns the OpenCL version of the program context.
func (p *Program) OpenCLVersion() (int, error) {
	h, err := p.ContextHandle()
	if err != nil {
		return 0, err
	}
	return contextOpenCLVersion(p.drv, h)
}

func handlesOf(devices []*Device) []cl.Handle {
	if devices == nil {
		return nil
	}
	handles := make([]cl.Handle, len(devices))
	for i, d := range devices {
		handles[i] = d.handle
	}
	return handles
}

// Build builds the program for all its devices.
func (p *Program) Build(options string) error {
	return p.BuildFull(nil, options)
}

// BuildFull builds the program for devices, or for all its devices when
// devices is nil. On failure the build log stays available through
// BuildLog.
func (p *Program) BuildFull(devices []*Device, options string) error {
	if ret := p.drv.BuildProgram(p.handle, handlesOf(devices), options); ret != cl.SUCCESS {
		return driverError(ret, "unable to build program")
	}
	return nil
}

// Compile compiles the program into an object to be linked with Link.
// headers are programs holding embedded headers, each included under the
// matching name of headerNames. It requires OpenCL 1.2.
func (p *Program) Compile(devices []*Device, options string, headers []*Program, headerNames []string) error {
	version, err := p.OpenCLVersion()
	if err != nil {
		return err
	}
	if version < 120 {
		return newError(CodeUnsupportedOCL, "program compilation requires OpenCL version 1.2 or newer")
	}
	if len(headers) != len(headerNames) {
		return newError(CodeArgs, "unable to compile program: %d headers but %d header names", len(headers), len(headerNames))
	}

	hs := make([]cl.Handle, len(headers))
	for i, h := range headers {
		hs[i] = h.handle
	}

	if ret := p.drv.CompileProgram(p.handle, handlesOf(devices), options, hs, headerNames); ret != cl.SUCCESS {
		return driverError(ret, "unable to compile program")
	}
	return nil
}

// Link links compiled programs into a new program for devices of ctx, or
// for all of them when devices is nil. It requires OpenCL 1.2.
func Link(ctx *Context, devices []*Device, options string, programs ...*Program) (*Program, error) {
	version, err := ctx.OpenCLVersion()
	if err != nil {
		return nil, err
	}
	if version < 120 {
		return nil, newError(CodeUnsupportedOCL, "program linking requires OpenCL version 1.2 or newer")
	}

	hs := make([]cl.Handle, len(programs))
	for i, prg := range programs {
		hs[i] = prg.handle
	}

	h, ret := ctx.drv.LinkProgram(ctx.handle, handlesOf(devices), options, hs)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to link programs")
	}
	return wrapProgram(ctx.drv, h), nil
}

// BuildInfo returns build information for dev. It is never cached since it
// changes with every build.
func (p *Program) BuildInfo(dev *Device, param cl.ProgramBuildInfo) (*Info, error) {
	query := func(value []byte) (int, cl.Return) {
		return p.drv.GetProgramBuildInfo(p.handle, dev.handle, param, value)
	}
	return p.getInfo(infoKey{param: uint32(param), secondary: dev.handle}, query, false)
}

func (p *Program) BuildStatus(dev *Device) (cl.BuildStatus, error) {
	info, err := p.BuildInfo(dev, cl.PROGRAM_BUILD_STATUS)
	if err != nil {
		return cl.BUILD_NONE, err
	}
	return cl.BuildStatus(info.Int32()), nil
}

func (p *Program) BuildOptions(dev *Device) (string, error) {
	return infoString(p.BuildInfo(dev, cl.PROGRAM_BUILD_OPTIONS))
}

func (p *Program) BinaryType(dev *Device) (cl.BinaryType, error) {
	t, err := infoUint32(p.BuildInfo(dev, cl.PROGRAM_BINARY_TYPE))
	return cl.BinaryType(t), err
}

// BuildLog returns the build logs of every device of the program, each
// preceded by a header naming the device.
func (p *Program) BuildLog() (string, error) {
	devices, err := p.Devices()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, dev := range devices {
		name, err := dev.Name()
		if err != nil {
			return "", err
		}
		devLog, err := infoString(p.BuildInfo(dev, cl.PROGRAM_BUILD_LOG))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "\n\n*** Build log for device '%s' ***\n\n%s", name, devLog)
	}
	return sb.String(), nil
}

// Binary returns the program binary for dev.
func (p *Program) Binary(dev *Device) ([]byte, error) {
	devices, err := p.Devices()
	if err != nil {
		return nil, err
	}
	index := -1
	for i, d := range devices {
		if d == dev {
			index = i
		}
	}
	if index < 0 {
		return nil, newError(CodeDeviceNotFound, "device %#x is not associated with program %#x", dev.handle, p.handle)
	}

	sizes, err := infoSizeTs(p.GetInfoFresh(cl.PROGRAM_BINARY_SIZES))
	if err != nil {
		return nil, err
	}
	if sizes[index] == 0 {
		return nil, newError(CodeInfoUnavailable, "program %#x has no binary for device %#x", p.handle, dev.handle)
	}

	binaries, err := p.GetInfoFresh(cl.PROGRAM_BINARIES)
	if err != nil {
		return nil, err
	}
	offset := 0
	for _, s := range sizes[:index] {
		offset += s
	}
	return binaries.Value()[offset : offset+sizes[index]], nil
}

// SaveBinary writes the program binary for dev to path.
func (p *Program) SaveBinary(dev *Device, path string) error {
	binary, err := p.Binary(dev)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, binary, 0644); err != nil {
		return newError(CodeOpenFile, "unable to write binary file '%s': %v", path, err)
	}
	log.Debugf("Saved %d byte binary of program %#x to %s", len(binary), p.handle, path)
	return nil
}

// SaveAllBinaries writes one binary per device, named after the device
// name and index between prefix and suffix.
func (p *Program) SaveAllBinaries(prefix string, suffix string) error {
	devices, err := p.Devices()
	if err != nil {
		return err
	}
	for i, dev := range devices {
		name, err := dev.Name()
		if err != nil {
			return err
		}
		path := fmt.Sprintf("%s%s_%02d%s", prefix, canonFileName(name), i, suffix)
		if err := p.SaveBinary(dev, path); err != nil {
			return err
		}
	}
	return nil
}

func canonFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}

// GetKernel returns the kernel for function name. The kernel is created on
// first use and owned by the program.
func (p *Program) GetKernel(name string) (*Kernel, error) {
	if k, exists := p.kernels[name]; exists {
		return k, nil
	}

	k, err := NewKernel(p, name)
	if err != nil {
		return nil, err
	}
	if p.kernels == nil {
		p.kernels = make(map[string]*Kernel)
	}
	p.kernels[name] = k

	return k, nil
}

// NewKernel creates a kernel for function name owned by the caller.
func (p *Program) NewKernel(name string) (*Kernel, error) {
	return NewKernel(p, name)
}

// EnqueueKernel binds args to the kernel for function name and launches it.
func (p *Program) EnqueueKernel(name string, q *Queue, dims int, offset []int, gws []int, lws []int, wl *EventWaitList, args ...Arg) (*Event, error) {
	k, err := p.GetKernel(name)
	if err != nil {
		return nil, err
	}
	return k.SetArgsAndEnqueueNDRangeV(q, dims, offset, gws, lws, wl, args)
}
