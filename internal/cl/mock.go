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
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var handleCounter atomic.Uint64

func nextHandle() Handle {
	return Handle(handleCounter.Add(1))
}

// MockDriver is an in-memory implementation of Interface. Commands execute
// synchronously at enqueue time and are stamped by a fake nanosecond clock.
// Kernels run through host functions registered by name; kernels without one
// complete without side effects.
type MockDriver struct {
	mu        sync.Mutex
	Platforms []*MockPlatform
	Kernels   map[string]MockKernelFunc

	clock    uint64
	devices  map[Handle]*MockDevice
	objects  map[Handle]interface{}
	counters map[string]int
}

type MockPlatform struct {
	Handle     Handle
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
	Devices    []*MockDevice
}

type MockDevice struct {
	Handle   Handle
	UUID     uuid.UUID
	Platform *MockPlatform
	Parent   *MockDevice
	Info     map[DeviceInfo][]byte
	// PreferredWorkGroupSizeMultiple is reported for every kernel built for
	// this device.
	PreferredWorkGroupSizeMultiple int

	refCount int
}

type mockContext struct {
	handle     Handle
	refCount   int
	platform   *MockPlatform
	devices    []*MockDevice
	properties []ContextProperty
}

type mockQueue struct {
	handle     Handle
	refCount   int
	context    *mockContext
	device     *MockDevice
	properties QueueProperties
}

type mockEvent struct {
	handle   Handle
	refCount int
	queue    *mockQueue
	command  CommandType
	status   int32
	times    [4]uint64
	untimed  bool
}

var _ Interface = (*MockDriver)(nil)

// NewMockDriver creates a driver exposing the given platforms.
func NewMockDriver(platforms ...*MockPlatform) *MockDriver {
	d := &MockDriver{
		Kernels:  make(map[string]MockKernelFunc),
		devices:  make(map[Handle]*MockDevice),
		objects:  make(map[Handle]interface{}),
		counters: make(map[string]int),
		clock:    1000,
	}
	for _, p := range platforms {
		d.AddPlatform(p)
	}
	return d
}

// NewMockDriverOnWorkstation creates a driver with two platforms: one with
// two GPUs and one with a single CPU.
func NewMockDriverOnWorkstation() *MockDriver {
	gpus := NewMockPlatform("Mock CUDA", "NVIDIA Corporation", "OpenCL 1.2 CUDA 12.4.0",
		NewMockGPUDevice("Mock GeForce RTX 3080"),
		NewMockGPUDevice("Mock GeForce RTX 3060"),
	)
	cpus := NewMockPlatform("Mock Portable Computing Language", "The pocl project", "OpenCL 3.0 PoCL 5.0",
		NewMockCPUDevice("Mock cpu-haswell-Intel(R) Core(TM) i7"),
	)
	return NewMockDriver(gpus, cpus)
}

// NewMockPlatform creates a platform holding the given devices.
func NewMockPlatform(name, vendor, version string, devices ...*MockDevice) *MockPlatform {
	p := &MockPlatform{
		Handle:     nextHandle(),
		Profile:    "FULL_PROFILE",
		Version:    version,
		Name:       name,
		Vendor:     vendor,
		Extensions: "cl_khr_icd cl_khr_byte_addressable_store",
	}
	for _, dev := range devices {
		p.AddDevice(dev)
	}
	return p
}

// AddDevice attaches a device to the platform.
func (p *MockPlatform) AddDevice(dev *MockDevice) {
	dev.Platform = p
	dev.SetInfo(DEVICE_PLATFORM, EncodeHandles(p.Handle))
	p.Devices = append(p.Devices, dev)
}

// AddPlatform registers a platform and its devices with the driver.
func (d *MockDriver) AddPlatform(p *MockPlatform) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Platforms = append(d.Platforms, p)
	for _, dev := range p.Devices {
		d.devices[dev.Handle] = dev
	}
}

// RegisterKernel sets the host function executed for kernels called name.
func (d *MockDriver) RegisterKernel(name string, fn MockKernelFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Kernels[name] = fn
}

// Calls returns how many times the named driver entry point has filled an
// info buffer or returned a list.
func (d *MockDriver) Calls(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counters[name]
}

// LiveObjects returns the number of driver objects not yet released.
func (d *MockDriver) LiveObjects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}

// SetEventTimestamps overrides the profiling timestamps of an event.
func (d *MockDriver) SetEventTimestamps(event Handle, queued, submit, start, end uint64) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.objects[event].(*mockEvent)
	if !ok {
		return INVALID_EVENT
	}
	e.times = [4]uint64{queued, submit, start, end}
	return SUCCESS
}

// SetEventUntimed makes profiling queries on event fail as they do for
// commands some platforms do not time.
func (d *MockDriver) SetEventUntimed(event Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.objects[event].(*mockEvent)
	if !ok {
		return INVALID_EVENT
	}
	e.untimed = true
	return SUCCESS
}

func (d *MockDriver) count(name string) {
	d.counters[name]++
}

func newMockDevice(t DeviceType, name, vendor string, computeUnits, maxWorkGroup int, maxWorkItems [3]int, multiple int) *MockDevice {
	dev := &MockDevice{
		Handle:                         nextHandle(),
		UUID:                           uuid.New(),
		Info:                           make(map[DeviceInfo][]byte),
		PreferredWorkGroupSizeMultiple: multiple,
	}
	dev.SetInfo(DEVICE_TYPE, EncodeUint64(uint64(t)))
	dev.SetInfo(DEVICE_VENDOR_ID, EncodeUint32(0x10DE))
	dev.SetInfo(DEVICE_MAX_COMPUTE_UNITS, EncodeUint32(uint32(computeUnits)))
	dev.SetInfo(DEVICE_MAX_WORK_ITEM_DIMENSIONS, EncodeUint32(3))
	dev.SetInfo(DEVICE_MAX_WORK_GROUP_SIZE, EncodeSizeTs(maxWorkGroup))
	dev.SetInfo(DEVICE_MAX_WORK_ITEM_SIZES, EncodeSizeTs(maxWorkItems[:]...))
	for _, p := range []DeviceInfo{
		DEVICE_PREFERRED_VECTOR_WIDTH_CHAR, DEVICE_PREFERRED_VECTOR_WIDTH_SHORT,
		DEVICE_PREFERRED_VECTOR_WIDTH_INT, DEVICE_PREFERRED_VECTOR_WIDTH_LONG,
		DEVICE_PREFERRED_VECTOR_WIDTH_FLOAT, DEVICE_PREFERRED_VECTOR_WIDTH_DOUBLE,
		DEVICE_PREFERRED_VECTOR_WIDTH_HALF, DEVICE_NATIVE_VECTOR_WIDTH_CHAR,
		DEVICE_NATIVE_VECTOR_WIDTH_SHORT, DEVICE_NATIVE_VECTOR_WIDTH_INT,
		DEVICE_NATIVE_VECTOR_WIDTH_LONG, DEVICE_NATIVE_VECTOR_WIDTH_FLOAT,
		DEVICE_NATIVE_VECTOR_WIDTH_DOUBLE, DEVICE_NATIVE_VECTOR_WIDTH_HALF,
	} {
		dev.SetInfo(p, EncodeUint32(1))
	}
	dev.SetInfo(DEVICE_MAX_CLOCK_FREQUENCY, EncodeUint32(1710))
	dev.SetInfo(DEVICE_ADDRESS_BITS, EncodeUint32(64))
	dev.SetInfo(DEVICE_MAX_READ_IMAGE_ARGS, EncodeUint32(256))
	dev.SetInfo(DEVICE_MAX_WRITE_IMAGE_ARGS, EncodeUint32(32))
	dev.SetInfo(DEVICE_MAX_READ_WRITE_IMAGE_ARGS, EncodeUint32(32))
	dev.SetInfo(DEVICE_MAX_MEM_ALLOC_SIZE, EncodeUint64(1<<30))
	dev.SetInfo(DEVICE_IMAGE2D_MAX_WIDTH, EncodeSizeTs(16384))
	dev.SetInfo(DEVICE_IMAGE2D_MAX_HEIGHT, EncodeSizeTs(16384))
	dev.SetInfo(DEVICE_IMAGE3D_MAX_WIDTH, EncodeSizeTs(2048))
	dev.SetInfo(DEVICE_IMAGE3D_MAX_HEIGHT, EncodeSizeTs(2048))
	dev.SetInfo(DEVICE_IMAGE3D_MAX_DEPTH, EncodeSizeTs(2048))
	dev.SetInfo(DEVICE_IMAGE_MAX_BUFFER_SIZE, EncodeSizeTs(1<<27))
	dev.SetInfo(DEVICE_IMAGE_MAX_ARRAY_SIZE, EncodeSizeTs(2048))
	dev.SetInfo(DEVICE_IMAGE_SUPPORT, EncodeBool(true))
	dev.SetInfo(DEVICE_MAX_PARAMETER_SIZE, EncodeSizeTs(4352))
	dev.SetInfo(DEVICE_MAX_SAMPLERS, EncodeUint32(32))
	dev.SetInfo(DEVICE_MEM_BASE_ADDR_ALIGN, EncodeUint32(128))
	dev.SetInfo(DEVICE_MIN_DATA_TYPE_ALIGN_SIZE, EncodeUint32(128))
	dev.SetInfo(DEVICE_SINGLE_FP_CONFIG, EncodeUint64(uint64(FP_DENORM|FP_INF_NAN|FP_ROUND_TO_NEAREST|FP_ROUND_TO_ZERO|FP_ROUND_TO_INF|FP_FMA)))
	dev.SetInfo(DEVICE_DOUBLE_FP_CONFIG, EncodeUint64(uint64(FP_DENORM|FP_INF_NAN|FP_ROUND_TO_NEAREST|FP_ROUND_TO_ZERO|FP_ROUND_TO_INF|FP_FMA)))
	dev.SetInfo(DEVICE_GLOBAL_MEM_CACHE_TYPE, EncodeUint32(READ_WRITE_CACHE))
	dev.SetInfo(DEVICE_GLOBAL_MEM_CACHELINE_SIZE, EncodeUint32(128))
	dev.SetInfo(DEVICE_GLOBAL_MEM_CACHE_SIZE, EncodeUint64(2<<20))
	dev.SetInfo(DEVICE_GLOBAL_MEM_SIZE, EncodeUint64(4<<30))
	dev.SetInfo(DEVICE_MAX_CONSTANT_BUFFER_SIZE, EncodeUint64(64<<10))
	dev.SetInfo(DEVICE_MAX_CONSTANT_ARGS, EncodeUint32(9))
	dev.SetInfo(DEVICE_LOCAL_MEM_TYPE, EncodeUint32(LOCAL))
	dev.SetInfo(DEVICE_LOCAL_MEM_SIZE, EncodeUint64(48<<10))
	dev.SetInfo(DEVICE_ERROR_CORRECTION_SUPPORT, EncodeBool(false))
	dev.SetInfo(DEVICE_PROFILING_TIMER_RESOLUTION, EncodeSizeTs(1))
	dev.SetInfo(DEVICE_ENDIAN_LITTLE, EncodeBool(true))
	dev.SetInfo(DEVICE_AVAILABLE, EncodeBool(true))
	dev.SetInfo(DEVICE_COMPILER_AVAILABLE, EncodeBool(true))
	dev.SetInfo(DEVICE_LINKER_AVAILABLE, EncodeBool(true))
	dev.SetInfo(DEVICE_EXECUTION_CAPABILITIES, EncodeUint64(uint64(EXEC_KERNEL)))
	dev.SetInfo(DEVICE_QUEUE_PROPERTIES, EncodeUint64(uint64(QUEUE_OUT_OF_ORDER_EXEC_MODE_ENABLE|QUEUE_PROFILING_ENABLE)))
	dev.SetInfo(DEVICE_NAME, EncodeString(name))
	dev.SetInfo(DEVICE_VENDOR, EncodeString(vendor))
	dev.SetInfo(DRIVER_VERSION, EncodeString("550.54"))
	dev.SetInfo(DEVICE_PROFILE, EncodeString("FULL_PROFILE"))
	dev.SetInfo(DEVICE_VERSION, EncodeString("OpenCL 1.2"))
	dev.SetInfo(DEVICE_OPENCL_C_VERSION, EncodeString("OpenCL C 1.2"))
	dev.SetInfo(DEVICE_EXTENSIONS, EncodeString("cl_khr_global_int32_base_atomics cl_khr_fp64 cl_khr_device_uuid"))
	dev.SetInfo(DEVICE_HOST_UNIFIED_MEMORY, EncodeBool(false))
	dev.SetInfo(DEVICE_BUILT_IN_KERNELS, EncodeString(""))
	dev.SetInfo(DEVICE_PARENT_DEVICE, EncodeHandles(0))
	dev.SetInfo(DEVICE_PARTITION_MAX_SUB_DEVICES, EncodeUint32(0))
	dev.SetInfo(DEVICE_PARTITION_PROPERTIES, EncodeUint64(0))
	dev.SetInfo(DEVICE_PARTITION_AFFINITY_DOMAIN, EncodeUint64(0))
	dev.SetInfo(DEVICE_PARTITION_TYPE, nil)
	dev.SetInfo(DEVICE_REFERENCE_COUNT, EncodeUint32(1))
	dev.SetInfo(DEVICE_PREFERRED_INTEROP_USER_SYNC, EncodeBool(true))
	dev.SetInfo(DEVICE_PRINTF_BUFFER_SIZE, EncodeSizeTs(1<<20))
	dev.SetInfo(DEVICE_IMAGE_PITCH_ALIGNMENT, EncodeUint32(32))
	dev.SetInfo(DEVICE_IMAGE_BASE_ADDRESS_ALIGNMENT, EncodeUint32(512))
	dev.SetInfo(DEVICE_UUID_KHR, dev.UUID[:])
	dev.SetInfo(DRIVER_UUID_KHR, driverUUID[:])
	return dev
}

var driverUUID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("clwrap mock driver"))

// NewMockGPUDevice creates a GPU with NVIDIA-like limits and extensions.
func NewMockGPUDevice(name string) *MockDevice {
	dev := newMockDevice(DEVICE_TYPE_GPU, name, "NVIDIA Corporation", 68, 1024, [3]int{1024, 1024, 64}, 32)
	dev.SetInfo(DEVICE_COMPUTE_CAPABILITY_MAJOR_NV, EncodeUint32(8))
	dev.SetInfo(DEVICE_COMPUTE_CAPABILITY_MINOR_NV, EncodeUint32(6))
	dev.SetInfo(DEVICE_REGISTERS_PER_BLOCK_NV, EncodeUint32(65536))
	dev.SetInfo(DEVICE_WARP_SIZE_NV, EncodeUint32(32))
	dev.SetInfo(DEVICE_GPU_OVERLAP_NV, EncodeBool(true))
	dev.SetInfo(DEVICE_KERNEL_EXEC_TIMEOUT_NV, EncodeBool(false))
	dev.SetInfo(DEVICE_INTEGRATED_MEMORY_NV, EncodeBool(false))
	return dev
}

// NewMockCPUDevice creates a partitionable CPU supporting native kernels.
func NewMockCPUDevice(name string) *MockDevice {
	dev := newMockDevice(DEVICE_TYPE_CPU, name, "GenuineIntel", 8, 4096, [3]int{4096, 4096, 4096}, 8)
	dev.SetInfo(DEVICE_VENDOR_ID, EncodeUint32(0x8086))
	dev.SetInfo(DEVICE_EXECUTION_CAPABILITIES, EncodeUint64(uint64(EXEC_KERNEL|EXEC_NATIVE_KERNEL)))
	dev.SetInfo(DEVICE_HOST_UNIFIED_MEMORY, EncodeBool(true))
	dev.SetInfo(DEVICE_LOCAL_MEM_TYPE, EncodeUint32(GLOBAL))
	dev.SetInfo(DEVICE_PARTITION_MAX_SUB_DEVICES, EncodeUint32(8))
	dev.SetInfo(DEVICE_PARTITION_PROPERTIES, EncodeUint64s(DEVICE_PARTITION_EQUALLY, DEVICE_PARTITION_BY_COUNTS))
	dev.SetInfo(DEVICE_VERSION, EncodeString("OpenCL 3.0 PoCL"))
	dev.SetInfo(DEVICE_OPENCL_C_VERSION, EncodeString("OpenCL C 1.2 PoCL"))
	dev.SetInfo(DEVICE_BUILT_IN_KERNELS, EncodeString("pocl.add.i8;pocl.mul.i32"))
	return dev
}

// NewMockAcceleratorDevice creates an accelerator without image support.
func NewMockAcceleratorDevice(name string) *MockDevice {
	dev := newMockDevice(DEVICE_TYPE_ACCELERATOR, name, "Xilinx", 1, 256, [3]int{256, 256, 256}, 1)
	dev.SetInfo(DEVICE_IMAGE_SUPPORT, EncodeBool(false))
	return dev
}

// SetInfo overrides the raw info buffer returned for param. A nil value is
// reported with size 0.
func (dev *MockDevice) SetInfo(param DeviceInfo, value []byte) {
	dev.Info[param] = value
}

// DeleteInfo makes queries for param fail with INVALID_VALUE.
func (dev *MockDevice) DeleteInfo(param DeviceInfo) {
	delete(dev.Info, param)
}

func (dev *MockDevice) deviceType() DeviceType {
	return DeviceType(DecodeUint64(dev.Info[DEVICE_TYPE]))
}

func (dev *MockDevice) sizeT(param DeviceInfo) int {
	return int(DecodeUint64(dev.Info[param]))
}

func (dev *MockDevice) uint32(param DeviceInfo) uint32 {
	return DecodeUint32(dev.Info[param])
}

func (dev *MockDevice) maxWorkItemSizes() []int {
	return DecodeSizeTs(dev.Info[DEVICE_MAX_WORK_ITEM_SIZES])
}

func (dev *MockDevice) hasImageSupport() bool {
	return dev.uint32(DEVICE_IMAGE_SUPPORT) != 0
}

func (d *MockDriver) GetPlatformIDs() ([]Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Platforms) == 0 {
		return nil, PLATFORM_NOT_FOUND_KHR
	}
	handles := make([]Handle, len(d.Platforms))
	for i, p := range d.Platforms {
		handles[i] = p.Handle
	}
	return handles, SUCCESS
}

func (d *MockDriver) platform(h Handle) *MockPlatform {
	for _, p := range d.Platforms {
		if p.Handle == h {
			return p
		}
	}
	return nil
}

func (d *MockDriver) GetPlatformInfo(platform Handle, param PlatformInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.platform(platform)
	if p == nil {
		return 0, INVALID_PLATFORM
	}
	var s string
	switch param {
	case PLATFORM_PROFILE:
		s = p.Profile
	case PLATFORM_VERSION:
		s = p.Version
	case PLATFORM_NAME:
		s = p.Name
	case PLATFORM_VENDOR:
		s = p.Vendor
	case PLATFORM_EXTENSIONS:
		s = p.Extensions
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(EncodeString(s), value)
}

func (d *MockDriver) UnloadPlatformCompiler(platform Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.platform(platform) == nil {
		return INVALID_PLATFORM
	}
	return SUCCESS
}

func (d *MockDriver) GetDeviceIDs(platform Handle, deviceType DeviceType) ([]Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.platform(platform)
	if p == nil {
		return nil, INVALID_PLATFORM
	}
	var handles []Handle
	for _, dev := range p.Devices {
		if deviceType == DEVICE_TYPE_ALL || dev.deviceType()&deviceType != 0 {
			handles = append(handles, dev.Handle)
		}
	}
	if len(handles) == 0 {
		return nil, DEVICE_NOT_FOUND
	}
	return handles, SUCCESS
}

func (d *MockDriver) GetDeviceInfo(device Handle, param DeviceInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[device]
	if !ok {
		return 0, INVALID_DEVICE
	}
	data, ok := dev.Info[param]
	if !ok {
		return 0, INVALID_VALUE
	}
	if param == DEVICE_REFERENCE_COUNT && dev.Parent != nil {
		data = EncodeUint32(uint32(dev.refCount))
	}
	if value != nil {
		d.count("GetDeviceInfo")
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) CreateSubDevices(device Handle, properties []uint64) ([]Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[device]
	if !ok {
		return nil, INVALID_DEVICE
	}
	if len(properties) < 2 {
		return nil, INVALID_VALUE
	}
	maxSub := int(dev.uint32(DEVICE_PARTITION_MAX_SUB_DEVICES))
	units := int(dev.uint32(DEVICE_MAX_COMPUTE_UNITS))
	var counts []int
	switch properties[0] {
	case DEVICE_PARTITION_EQUALLY:
		n := int(properties[1])
		if n <= 0 {
			return nil, INVALID_VALUE
		}
		for i := 0; i+n <= units; i += n {
			counts = append(counts, n)
		}
	case DEVICE_PARTITION_BY_COUNTS:
		total := 0
		for _, c := range properties[1:] {
			if c == DEVICE_PARTITION_BY_COUNTS_LIST_END {
				break
			}
			counts = append(counts, int(c))
			total += int(c)
		}
		if total > units {
			return nil, INVALID_DEVICE_PARTITION_COUNT
		}
	default:
		return nil, INVALID_VALUE
	}
	if maxSub == 0 {
		return nil, DEVICE_PARTITION_FAILED
	}
	if len(counts) == 0 || len(counts) > maxSub {
		return nil, INVALID_DEVICE_PARTITION_COUNT
	}

	handles := make([]Handle, 0, len(counts))
	for _, c := range counts {
		sub := &MockDevice{
			Handle:                         nextHandle(),
			UUID:                           uuid.New(),
			Platform:                       dev.Platform,
			Parent:                         dev,
			Info:                           make(map[DeviceInfo][]byte, len(dev.Info)),
			PreferredWorkGroupSizeMultiple: dev.PreferredWorkGroupSizeMultiple,
			refCount:                       1,
		}
		for k, v := range dev.Info {
			sub.Info[k] = v
		}
		sub.SetInfo(DEVICE_MAX_COMPUTE_UNITS, EncodeUint32(uint32(c)))
		sub.SetInfo(DEVICE_PARENT_DEVICE, EncodeHandles(dev.Handle))
		sub.SetInfo(DEVICE_PARTITION_TYPE, EncodeUint64s(properties[0], properties[1], 0))
		sub.SetInfo(DEVICE_PARTITION_MAX_SUB_DEVICES, EncodeUint32(uint32(c)))
		sub.SetInfo(DEVICE_UUID_KHR, sub.UUID[:])
		d.devices[sub.Handle] = sub
		d.objects[sub.Handle] = sub
		handles = append(handles, sub.Handle)
	}
	return handles, SUCCESS
}

func (d *MockDriver) RetainDevice(device Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[device]
	if !ok {
		return INVALID_DEVICE
	}
	if dev.Parent != nil {
		dev.refCount++
	}
	return SUCCESS
}

func (d *MockDriver) ReleaseDevice(device Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[device]
	if !ok {
		return INVALID_DEVICE
	}
	if dev.Parent == nil {
		return SUCCESS
	}
	dev.refCount--
	if dev.refCount == 0 {
		delete(d.devices, device)
		delete(d.objects, device)
	}
	return SUCCESS
}

func (d *MockDriver) CreateContext(properties []ContextProperty, devices []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(devices) == 0 {
		return 0, INVALID_VALUE
	}
	ctx := &mockContext{handle: nextHandle(), refCount: 1, properties: properties}
	for _, h := range devices {
		dev, ok := d.devices[h]
		if !ok {
			return 0, INVALID_DEVICE
		}
		if ctx.platform == nil {
			ctx.platform = dev.Platform
		} else if ctx.platform != dev.Platform {
			return 0, INVALID_DEVICE
		}
		ctx.devices = append(ctx.devices, dev)
	}
	for _, p := range properties {
		switch p.Name {
		case CONTEXT_PLATFORM:
			if Handle(p.Value) != ctx.platform.Handle {
				return 0, INVALID_PLATFORM
			}
		default:
			return 0, INVALID_PROPERTY
		}
	}
	d.objects[ctx.handle] = ctx
	return ctx.handle, SUCCESS
}

func (d *MockDriver) CreateContextFromType(properties []ContextProperty, deviceType DeviceType) (Handle, Return) {
	d.mu.Lock()
	var candidates []*MockPlatform
	for _, p := range properties {
		if p.Name != CONTEXT_PLATFORM {
			d.mu.Unlock()
			return 0, INVALID_PROPERTY
		}
		plat := d.platform(Handle(p.Value))
		if plat == nil {
			d.mu.Unlock()
			return 0, INVALID_PLATFORM
		}
		candidates = append(candidates, plat)
	}
	if len(candidates) == 0 {
		candidates = d.Platforms
	}
	var devices []Handle
	for _, p := range candidates {
		for _, dev := range p.Devices {
			if deviceType == DEVICE_TYPE_ALL || dev.deviceType()&deviceType != 0 {
				devices = append(devices, dev.Handle)
			}
		}
		if len(devices) > 0 {
			break
		}
	}
	d.mu.Unlock()
	if len(devices) == 0 {
		return 0, DEVICE_NOT_FOUND
	}
	return d.CreateContext(properties, devices)
}

func (d *MockDriver) context(h Handle) (*mockContext, Return) {
	ctx, ok := d.objects[h].(*mockContext)
	if !ok {
		return nil, INVALID_CONTEXT
	}
	return ctx, SUCCESS
}

func (d *MockDriver) RetainContext(context Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return ret
	}
	ctx.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseContext(context Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return ret
	}
	ctx.refCount--
	if ctx.refCount == 0 {
		delete(d.objects, context)
	}
	return SUCCESS
}

func (d *MockDriver) GetContextInfo(context Handle, param ContextInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case CONTEXT_REFERENCE_COUNT:
		data = EncodeUint32(uint32(ctx.refCount))
	case CONTEXT_NUM_DEVICES:
		data = EncodeUint32(uint32(len(ctx.devices)))
	case CONTEXT_DEVICES:
		for _, dev := range ctx.devices {
			data = append(data, EncodeHandles(dev.Handle)...)
		}
	case CONTEXT_PROPERTIES:
		for _, p := range ctx.properties {
			data = append(data, EncodeUint64(uint64(p.Name))...)
			data = append(data, EncodeUint64(p.Value)...)
		}
		if len(data) > 0 {
			data = append(data, EncodeUint64(0)...)
		}
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) CreateCommandQueue(context Handle, device Handle, properties QueueProperties) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	var dev *MockDevice
	for _, cdev := range ctx.devices {
		if cdev.Handle == device {
			dev = cdev
		}
	}
	if dev == nil {
		return 0, INVALID_DEVICE
	}
	supported := QueueProperties(DecodeUint64(dev.Info[DEVICE_QUEUE_PROPERTIES]))
	if properties&^supported != 0 {
		return 0, INVALID_QUEUE_PROPERTIES
	}
	q := &mockQueue{handle: nextHandle(), refCount: 1, context: ctx, device: dev, properties: properties}
	d.objects[q.handle] = q
	return q.handle, SUCCESS
}

func (d *MockDriver) queue(h Handle) (*mockQueue, Return) {
	q, ok := d.objects[h].(*mockQueue)
	if !ok {
		return nil, INVALID_COMMAND_QUEUE
	}
	return q, SUCCESS
}

func (d *MockDriver) RetainCommandQueue(queue Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return ret
	}
	q.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseCommandQueue(queue Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return ret
	}
	q.refCount--
	if q.refCount == 0 {
		delete(d.objects, queue)
	}
	return SUCCESS
}

func (d *MockDriver) GetCommandQueueInfo(queue Handle, param QueueInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case QUEUE_CONTEXT:
		data = EncodeHandles(q.context.handle)
	case QUEUE_DEVICE:
		data = EncodeHandles(q.device.Handle)
	case QUEUE_REFERENCE_COUNT:
		data = EncodeUint32(uint32(q.refCount))
	case QUEUE_PROPERTIES:
		data = EncodeUint64(uint64(q.properties))
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) Flush(queue Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ret := d.queue(queue)
	return ret
}

// Finish returns immediately since every command completes at enqueue time.
func (d *MockDriver) Finish(queue Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ret := d.queue(queue)
	return ret
}

// checkWaitList must be called with the lock held.
func (d *MockDriver) checkWaitList(waitList []Handle) Return {
	for _, h := range waitList {
		if _, ok := d.objects[h].(*mockEvent); !ok {
			return INVALID_EVENT_WAIT_LIST
		}
	}
	return SUCCESS
}

// newEvent must be called with the lock held. cost is the simulated device
// time in nanoseconds.
func (d *MockDriver) newEvent(q *mockQueue, command CommandType, cost uint64) Handle {
	e := &mockEvent{handle: nextHandle(), refCount: 1, queue: q, command: command, status: COMPLETE}
	queued := d.clock
	submit := queued + 5
	start := submit + 10
	if cost == 0 {
		cost = 1
	}
	end := start + cost
	d.clock = end + 1
	e.times = [4]uint64{queued, submit, start, end}
	d.objects[e.handle] = e
	return e.handle
}

func (d *MockDriver) EnqueueMarkerWithWaitList(queue Handle, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return 0, ret
	}
	if ret := d.checkWaitList(waitList); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_MARKER, 1), SUCCESS
}

func (d *MockDriver) EnqueueBarrierWithWaitList(queue Handle, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return 0, ret
	}
	if ret := d.checkWaitList(waitList); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_BARRIER, 1), SUCCESS
}

func (d *MockDriver) event(h Handle) (*mockEvent, Return) {
	e, ok := d.objects[h].(*mockEvent)
	if !ok {
		return nil, INVALID_EVENT
	}
	return e, SUCCESS
}

func (d *MockDriver) WaitForEvents(events []Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(events) == 0 {
		return INVALID_VALUE
	}
	for _, h := range events {
		if _, ret := d.event(h); ret != SUCCESS {
			return ret
		}
	}
	return SUCCESS
}

func (d *MockDriver) RetainEvent(event Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ret := d.event(event)
	if ret != SUCCESS {
		return ret
	}
	e.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseEvent(event Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ret := d.event(event)
	if ret != SUCCESS {
		return ret
	}
	e.refCount--
	if e.refCount == 0 {
		delete(d.objects, event)
	}
	return SUCCESS
}

func (d *MockDriver) GetEventInfo(event Handle, param EventInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ret := d.event(event)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case EVENT_COMMAND_QUEUE:
		data = EncodeHandles(e.queue.handle)
	case EVENT_CONTEXT:
		data = EncodeHandles(e.queue.context.handle)
	case EVENT_COMMAND_TYPE:
		data = EncodeUint32(uint32(e.command))
	case EVENT_COMMAND_EXECUTION_STATUS:
		data = EncodeInt32(e.status)
	case EVENT_REFERENCE_COUNT:
		data = EncodeUint32(uint32(e.refCount))
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) GetEventProfilingInfo(event Handle, param ProfilingInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ret := d.event(event)
	if ret != SUCCESS {
		return 0, ret
	}
	if e.queue.properties&QUEUE_PROFILING_ENABLE == 0 || e.untimed {
		return 0, PROFILING_INFO_NOT_AVAILABLE
	}
	if param < PROFILING_COMMAND_QUEUED || param > PROFILING_COMMAND_END {
		return 0, INVALID_VALUE
	}
	if value != nil {
		d.count("GetEventProfilingInfo")
	}
	return CopyInfo(EncodeUint64(e.times[param-PROFILING_COMMAND_QUEUED]), value)
}
