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

// Handle is an opaque driver object identifier. Handles are unique across
// every object kind for the lifetime of the process.
type Handle uint64

// HandleSize is the size in bytes of a Handle stored in an info buffer or
// passed as a kernel argument.
const HandleSize = 8

type Bitfield uint64

type PlatformInfo uint32
type DeviceInfo uint32
type DeviceType Bitfield
type ContextInfo uint32
type QueueInfo uint32
type QueueProperties Bitfield
type MemInfo uint32
type ImageInfo uint32
type MemFlags Bitfield
type MemMigrationFlags Bitfield
type MapFlags Bitfield
type MemObjectType uint32
type ChannelOrder uint32
type ChannelType uint32
type AddressingMode uint32
type FilterMode uint32
type SamplerInfo uint32
type ProgramInfo uint32
type ProgramBuildInfo uint32
type BuildStatus int32
type BinaryType uint32
type KernelInfo uint32
type KernelArgInfo uint32
type KernelWorkGroupInfo uint32
type EventInfo uint32
type CommandType uint32
type ProfilingInfo uint32

// ContextProperty is one (name, value) pair of a context properties list.
type ContextProperty struct {
	Name  ContextInfo
	Value uint64
}

// SamplerProperty is one (name, value) pair of a sampler properties list.
type SamplerProperty struct {
	Name  SamplerInfo
	Value uint64
}

type ImageFormat struct {
	ChannelOrder ChannelOrder
	ChannelType  ChannelType
}

type ImageDesc struct {
	Type       MemObjectType
	Width      int
	Height     int
	Depth      int
	ArraySize  int
	RowPitch   int
	SlicePitch int
	Buffer     Handle
}

// DestructorCallback is invoked when a memory object is released for good.
type DestructorCallback func(memobj Handle)

// NativeKernelFunc runs on the host. The args blob has every memory object
// location replaced by the index of the object in mems.
type NativeKernelFunc func(args []byte, mems [][]byte)

// Interface is the driver API wrapped by the ccl package. Info queries follow
// the size-probe protocol: with a nil value the required size is returned,
// otherwise value is filled and its size returned.
type Interface interface {
	GetPlatformIDs() ([]Handle, Return)
	GetPlatformInfo(platform Handle, param PlatformInfo, value []byte) (int, Return)
	UnloadPlatformCompiler(platform Handle) Return

	GetDeviceIDs(platform Handle, deviceType DeviceType) ([]Handle, Return)
	GetDeviceInfo(device Handle, param DeviceInfo, value []byte) (int, Return)
	CreateSubDevices(device Handle, properties []uint64) ([]Handle, Return)
	RetainDevice(device Handle) Return
	ReleaseDevice(device Handle) Return

	CreateContext(properties []ContextProperty, devices []Handle) (Handle, Return)
	CreateContextFromType(properties []ContextProperty, deviceType DeviceType) (Handle, Return)
	RetainContext(context Handle) Return
	ReleaseContext(context Handle) Return
	GetContextInfo(context Handle, param ContextInfo, value []byte) (int, Return)
	GetSupportedImageFormats(context Handle, flags MemFlags, imageType MemObjectType) ([]ImageFormat, Return)

	CreateCommandQueue(context Handle, device Handle, properties QueueProperties) (Handle, Return)
	RetainCommandQueue(queue Handle) Return
	ReleaseCommandQueue(queue Handle) Return
	GetCommandQueueInfo(queue Handle, param QueueInfo, value []byte) (int, Return)
	Flush(queue Handle) Return
	Finish(queue Handle) Return

	CreateBuffer(context Handle, flags MemFlags, size int, host []byte) (Handle, Return)
	CreateSubBuffer(buffer Handle, flags MemFlags, origin int, size int) (Handle, Return)
	CreateImage(context Handle, flags MemFlags, format ImageFormat, desc ImageDesc, host []byte) (Handle, Return)
	RetainMemObject(memobj Handle) Return
	ReleaseMemObject(memobj Handle) Return
	GetMemObjectInfo(memobj Handle, param MemInfo, value []byte) (int, Return)
	GetImageInfo(image Handle, param ImageInfo, value []byte) (int, Return)
	SetMemObjectDestructorCallback(memobj Handle, callback DestructorCallback) Return

	CreateSampler(context Handle, normalized bool, addressing AddressingMode, filter FilterMode) (Handle, Return)
	CreateSamplerWithProperties(context Handle, properties []SamplerProperty) (Handle, Return)
	RetainSampler(sampler Handle) Return
	ReleaseSampler(sampler Handle) Return
	GetSamplerInfo(sampler Handle, param SamplerInfo, value []byte) (int, Return)

	CreateProgramWithSource(context Handle, sources []string) (Handle, Return)
	CreateProgramWithBinary(context Handle, devices []Handle, binaries [][]byte) (Handle, []Return, Return)
	CreateProgramWithBuiltInKernels(context Handle, devices []Handle, kernelNames string) (Handle, Return)
	RetainProgram(program Handle) Return
	ReleaseProgram(program Handle) Return
	BuildProgram(program Handle, devices []Handle, options string) Return
	CompileProgram(program Handle, devices []Handle, options string, headers []Handle, headerNames []string) Return
	LinkProgram(context Handle, devices []Handle, options string, programs []Handle) (Handle, Return)
	GetProgramInfo(program Handle, param ProgramInfo, value []byte) (int, Return)
	GetProgramBuildInfo(program Handle, device Handle, param ProgramBuildInfo, value []byte) (int, Return)

	CreateKernel(program Handle, name string) (Handle, Return)
	RetainKernel(kernel Handle) Return
	ReleaseKernel(kernel Handle) Return
	SetKernelArg(kernel Handle, index int, size int, value []byte) Return
	GetKernelInfo(kernel Handle, param KernelInfo, value []byte) (int, Return)
	GetKernelWorkGroupInfo(kernel Handle, device Handle, param KernelWorkGroupInfo, value []byte) (int, Return)
	GetKernelArgInfo(kernel Handle, index int, param KernelArgInfo, value []byte) (int, Return)

	EnqueueReadBuffer(queue Handle, buffer Handle, blocking bool, offset int, size int, host []byte, waitList []Handle) (Handle, Return)
	EnqueueWriteBuffer(queue Handle, buffer Handle, blocking bool, offset int, size int, host []byte, waitList []Handle) (Handle, Return)
	EnqueueCopyBuffer(queue Handle, src Handle, dst Handle, srcOffset int, dstOffset int, size int, waitList []Handle) (Handle, Return)
	EnqueueReadImage(queue Handle, image Handle, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, waitList []Handle) (Handle, Return)
	EnqueueWriteImage(queue Handle, image Handle, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, waitList []Handle) (Handle, Return)
	EnqueueCopyBufferToImage(queue Handle, src Handle, dst Handle, srcOffset int, dstOrigin [3]int, region [3]int, waitList []Handle) (Handle, Return)
	EnqueueMapBuffer(queue Handle, buffer Handle, blocking bool, flags MapFlags, offset int, size int, waitList []Handle) ([]byte, Handle, Return)
	EnqueueUnmapMemObject(queue Handle, memobj Handle, mapped []byte, waitList []Handle) (Handle, Return)
	EnqueueMigrateMemObjects(queue Handle, memobjs []Handle, flags MemMigrationFlags, waitList []Handle) (Handle, Return)
	EnqueueNDRangeKernel(queue Handle, kernel Handle, dims int, offset []int, globalSize []int, localSize []int, waitList []Handle) (Handle, Return)
	EnqueueNativeKernel(queue Handle, fn NativeKernelFunc, args []byte, memobjs []Handle, memLocations []int, waitList []Handle) (Handle, Return)
	EnqueueMarkerWithWaitList(queue Handle, waitList []Handle) (Handle, Return)
	EnqueueBarrierWithWaitList(queue Handle, waitList []Handle) (Handle, Return)

	WaitForEvents(events []Handle) Return
	RetainEvent(event Handle) Return
	ReleaseEvent(event Handle) Return
	GetEventInfo(event Handle, param EventInfo, value []byte) (int, Return)
	GetEventProfilingInfo(event Handle, param ProfilingInfo, value []byte) (int, Return)
}
