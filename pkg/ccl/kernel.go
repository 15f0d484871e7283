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
	log "github.com/sirupsen/logrus"
)

// Kernel wraps a driver kernel.
type Kernel struct {
	wrapper
	oclVersion int
}

func wrapKernel(drv cl.Interface, h cl.Handle) *Kernel {
	return wrap(drv, h, func() *Kernel { return &Kernel{} })
}

// WrapKernel adopts a kernel created directly through the driver.
func WrapKernel(drv cl.Interface, h cl.Handle) *Kernel {
	return wrapKernel(drv, h)
}

// NewKernel creates a kernel for the function name of an executable
// program. The caller owns the kernel; see Program.GetKernel for a kernel
// owned by the program.
func NewKernel(prg *Program, name string) (*Kernel, error) {
	h, ret := prg.drv.CreateKernel(prg.handle, name)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create kernel '%s'", name)
	}
	return wrapKernel(prg.drv, h), nil
}

func (k *Kernel) releaseDriver() cl.Return {
	return k.drv.ReleaseKernel(k.handle)
}

func (k *Kernel) releaseFields() {}

func (k *Kernel) Destroy() error {
	_, err := unref(k)
	return err
}

func (k *Kernel) query(param cl.KernelInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return k.drv.GetKernelInfo(k.handle, param, value)
	}
}

func (k *Kernel) GetInfo(param cl.KernelInfo) (*Info, error) {
	return k.getInfo(infoKey{param: uint32(param)}, k.query(param), true)
}

func (k *Kernel) GetInfoFresh(param cl.KernelInfo) (*Info, error) {
	return k.getInfo(infoKey{param: uint32(param)}, k.query(param), false)
}

func (k *Kernel) FunctionName() (string, error) {
	return infoString(k.GetInfo(cl.KERNEL_FUNCTION_NAME))
}

func (k *Kernel) NumArgs() (int, error) {
	n, err := infoUint32(k.GetInfo(cl.KERNEL_NUM_ARGS))
	return int(n), err
}

func (k *Kernel) ContextHandle() (cl.Handle, error) {
	return infoHandle(k.GetInfo(cl.KERNEL_CONTEXT))
}

func (k *Kernel) ProgramHandle() (cl.Handle, error) {
	return infoHandle(k.GetInfo(cl.KERNEL_PROGRAM))
}

// OpenCLVersion returns the OpenCL version of the platform the kernel was
// created on.
func (k *Kernel) OpenCLVersion() (int, error) {
	if k.oclVersion == 0 {
		h, err := k.ContextHandle()
		if err != nil {
			return 0, err
		}
		version, err := contextOpenCLVersion(k.drv, h)
		if err != nil {
			return 0, err
		}
		k.oclVersion = version
	}
	return k.oclVersion, nil
}

// WorkGroupInfo returns work-group information of the kernel on dev. A nil
// dev is accepted when the kernel is bound to a single device.
func (k *Kernel) WorkGroupInfo(dev *Device, param cl.KernelWorkGroupInfo) (*Info, error) {
	var dh cl.Handle
	if dev != nil {
		dh = dev.handle
	}
	query := func(value []byte) (int, cl.Return) {
		return k.drv.GetKernelWorkGroupInfo(k.handle, dh, param, value)
	}
	return k.getInfo(infoKey{param: uint32(param), secondary: dh}, query, true)
}

// ArgInfo returns information about argument idx. It requires OpenCL 1.2
// and a program built from source.
func (k *Kernel) ArgInfo(idx int, param cl.KernelArgInfo) (*Info, error) {
	version, err := k.OpenCLVersion()
	if err != nil {
		return nil, err
	}
	if version < 120 {
		return nil, newError(CodeUnsupportedOCL, "information about kernel arguments requires OpenCL version 1.2 or newer")
	}

	query := func(value []byte) (int, cl.Return) {
		return k.drv.GetKernelArgInfo(k.handle, idx, param, value)
	}
	return k.getInfo(infoKey{param: uint32(param), secondary: cl.Handle(idx)}, query, true)
}

// SetArg binds arg to position index. ArgSkip leaves the position as is.
func (k *Kernel) SetArg(index int, arg Arg) error {
	if _, skip := arg.(skipArg); skip {
		return nil
	}
	if ret := k.drv.SetKernelArg(k.handle, index, arg.argSize(), arg.argValue()); ret != cl.SUCCESS {
		return driverError(ret, "unable to set argument %d of kernel %#x", index, k.handle)
	}
	return nil
}

// SetArgs binds args to consecutive positions starting at 0.
func (k *Kernel) SetArgs(args ...Arg) error {
	return k.SetArgsV(args)
}

func (k *Kernel) SetArgsV(args []Arg) error {
	for i, arg := range args {
		if err := k.SetArg(i, arg); err != nil {
			return err
		}
	}
	return nil
}

// EnqueueNDRange launches the kernel over dims dimensions. offset and lws
// may be nil.
func (k *Kernel) EnqueueNDRange(q *Queue, dims int, offset []int, gws []int, lws []int, wl *EventWaitList) (*Event, error) {
	h, ret := k.drv.EnqueueNDRangeKernel(q.handle, k.handle, dims, offset, gws, lws, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue kernel %#x", k.handle)
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// SetArgsAndEnqueueNDRange binds args and launches the kernel. Arguments
// bound before a failure stay bound.
func (k *Kernel) SetArgsAndEnqueueNDRange(q *Queue, dims int, offset []int, gws []int, lws []int, wl *EventWaitList, args ...Arg) (*Event, error) {
	return k.SetArgsAndEnqueueNDRangeV(q, dims, offset, gws, lws, wl, args)
}

func (k *Kernel) SetArgsAndEnqueueNDRangeV(q *Queue, dims int, offset []int, gws []int, lws []int, wl *EventWaitList, args []Arg) (*Event, error) {
	if err := k.SetArgsV(args); err != nil {
		return nil, err
	}
	return k.EnqueueNDRange(q, dims, offset, gws, lws, wl)
}

// EnqueueNative runs fn on the host as a command of q. The handle of
// memobjs[i] is written to args at byte offset memLocs[i]; fn receives the
// data of the memory objects in the same order.
func EnqueueNative(q *Queue, fn cl.NativeKernelFunc, args []byte, memobjs []MemObject, memLocs []int, wl *EventWaitList) (*Event, error) {
	if len(memobjs) != len(memLocs) {
		return nil, newError(CodeArgs, "unable to enqueue native kernel: %d memory objects but %d locations", len(memobjs), len(memLocs))
	}

	handles := make([]cl.Handle, len(memobjs))
	for i, m := range memobjs {
		handles[i] = m.Handle()
	}

	h, ret := q.drv.EnqueueNativeKernel(q.handle, fn, args, handles, memLocs, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue native kernel")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// contextOpenCLVersion returns the OpenCL version of the context with handle
// h, which need not have a facade yet.
func contextOpenCLVersion(drv cl.Interface, h cl.Handle) (int, error) {
	ctx, err := adopt(drv, h, func() *Context { return &Context{} }, drv.RetainContext)
	if err != nil {
		return 0, err
	}
	defer ctx.Destroy()

	version, err := ctx.OpenCLVersion()
	if err != nil {
		log.Debugf("Unable to get OpenCL version of context %#x: %v", h, err)
		return 0, err
	}
	return version, nil
}
