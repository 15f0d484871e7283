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
	"encoding/binary"
	"math"
)

// MockKernelFunc is the host implementation of a kernel. It is called once
// per work-item; work-items of a group run one after the other.
type MockKernelFunc func(wi *MockWorkItem, args []MockArg)

// MockWorkItem identifies the work-item being executed.
type MockWorkItem struct {
	Dims         int
	GlobalID     [3]int
	LocalID      [3]int
	GroupID      [3]int
	GlobalSize   [3]int
	LocalSize    [3]int
	GlobalOffset [3]int
}

// MockArg is a kernel argument as seen by a MockKernelFunc. Exactly one field
// is set, except for NULL buffers where none is.
type MockArg struct {
	Value   []byte
	Buffer  []byte
	Image   *MockImage
	Sampler *MockSampler
	Local   []byte
}

// MockImage gives kernels access to the texels of an image argument.
type MockImage struct {
	Format ImageFormat
	Width  int
	Height int
	Depth  int

	elemSize   int
	rowPitch   int
	slicePitch int
	data       []byte
}

type MockSampler struct {
	Normalized bool
	Addressing AddressingMode
	Filter     FilterMode
}

type mockArgValue struct {
	set     bool
	value   []byte
	mem     *mockMem
	sampler *mockSampler
	local   int
}

type mockKernel struct {
	handle   Handle
	refCount int
	program  *mockProgram
	decl     *mockKernelDecl
	args     []mockArgValue
}

func (a MockArg) Uint32() uint32 {
	return binary.LittleEndian.Uint32(a.Value)
}

func (a MockArg) Int32() int32 {
	return int32(a.Uint32())
}

func (a MockArg) Float32() float32 {
	return math.Float32frombits(a.Uint32())
}

func (a MockArg) Uint64() uint64 {
	return binary.LittleEndian.Uint64(a.Value)
}

func (a MockArg) mem() []byte {
	if a.Local != nil {
		return a.Local
	}
	return a.Buffer
}

// GetUint32 returns element i of a buffer or local argument.
func (a MockArg) GetUint32(i int) uint32 {
	return binary.LittleEndian.Uint32(a.mem()[4*i:])
}

// SetUint32 sets element i of a buffer or local argument.
func (a MockArg) SetUint32(i int, v uint32) {
	binary.LittleEndian.PutUint32(a.mem()[4*i:], v)
}

func (a MockArg) GetInt32(i int) int32 {
	return int32(a.GetUint32(i))
}

func (a MockArg) SetInt32(i int, v int32) {
	a.SetUint32(i, uint32(v))
}

func (a MockArg) GetFloat32(i int) float32 {
	return math.Float32frombits(a.GetUint32(i))
}

func (a MockArg) SetFloat32(i int, v float32) {
	a.SetUint32(i, math.Float32bits(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (img *MockImage) texel(x, y, z int) []byte {
	x = clamp(x, 0, img.Width-1)
	y = clamp(y, 0, img.Height-1)
	z = clamp(z, 0, img.Depth-1)
	off := z*img.slicePitch + y*img.rowPitch + x*img.elemSize
	return img.data[off : off+img.elemSize]
}

// ReadUint4 returns the channels of the texel at (x, y, z) as unsigned
// integers, clamping coordinates to the image edge. Channels missing from the
// image format read as zero.
func (img *MockImage) ReadUint4(x, y, z int) [4]uint32 {
	var v [4]uint32
	t := img.texel(x, y, z)
	size := img.Format.ChannelType.ChannelSize()
	if size == 0 {
		return v
	}
	for c := 0; c < img.Format.ChannelOrder.Channels() && c < 4; c++ {
		ch := t[c*size : (c+1)*size]
		switch size {
		case 1:
			v[c] = uint32(ch[0])
		case 2:
			v[c] = uint32(binary.LittleEndian.Uint16(ch))
		case 4:
			v[c] = binary.LittleEndian.Uint32(ch)
		}
	}
	return v
}

// WriteUint4 stores the channels of the texel at (x, y, z), truncating each
// value to the channel size.
func (img *MockImage) WriteUint4(x, y, z int, v [4]uint32) {
	t := img.texel(x, y, z)
	size := img.Format.ChannelType.ChannelSize()
	for c := 0; c < img.Format.ChannelOrder.Channels() && c < 4 && size > 0; c++ {
		ch := t[c*size : (c+1)*size]
		switch size {
		case 1:
			ch[0] = byte(v[c])
		case 2:
			binary.LittleEndian.PutUint16(ch, uint16(v[c]))
		case 4:
			binary.LittleEndian.PutUint32(ch, v[c])
		}
	}
}

// ReadFloat4 returns the channels of the texel at (x, y, z) as floats.
// Normalized integer channels are scaled to [0, 1].
func (img *MockImage) ReadFloat4(x, y, z int) [4]float32 {
	var f [4]float32
	u := img.ReadUint4(x, y, z)
	for c := range u {
		switch img.Format.ChannelType {
		case FLOAT:
			f[c] = math.Float32frombits(u[c])
		case UNORM_INT8:
			f[c] = float32(u[c]) / 255
		case UNORM_INT16:
			f[c] = float32(u[c]) / 65535
		default:
			f[c] = float32(u[c])
		}
	}
	return f
}

func (d *MockDriver) CreateKernel(program Handle, name string) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return 0, ret
	}
	if !p.anyExecutable() {
		return 0, INVALID_PROGRAM_EXECUTABLE
	}
	decl := p.decl(name)
	if decl == nil {
		return 0, INVALID_KERNEL_NAME
	}
	k := &mockKernel{
		handle:   nextHandle(),
		refCount: 1,
		program:  p,
		decl:     decl,
		args:     make([]mockArgValue, len(decl.params)),
	}
	p.refCount++
	p.kernels++
	d.objects[k.handle] = k
	return k.handle, SUCCESS
}

func (d *MockDriver) kernel(h Handle) (*mockKernel, Return) {
	k, ok := d.objects[h].(*mockKernel)
	if !ok {
		return nil, INVALID_KERNEL
	}
	return k, SUCCESS
}

func (d *MockDriver) RetainKernel(kernel Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return ret
	}
	k.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseKernel(kernel Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return ret
	}
	k.refCount--
	if k.refCount == 0 {
		delete(d.objects, kernel)
		k.program.kernels--
		d.releaseProgram(k.program)
	}
	return SUCCESS
}

func (d *MockDriver) SetKernelArg(kernel Handle, index int, size int, value []byte) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return ret
	}
	if index < 0 || index >= len(k.decl.params) {
		return INVALID_ARG_INDEX
	}
	p := k.decl.params[index]
	var arg mockArgValue
	switch p.kind {
	case paramMem, paramImage:
		if size != HandleSize {
			return INVALID_ARG_SIZE
		}
		if value == nil {
			if p.kind == paramImage {
				return INVALID_ARG_VALUE
			}
			break
		}
		m, ret := d.mem(Handle(DecodeUint64(value)))
		if ret != SUCCESS {
			return ret
		}
		if (p.kind == paramImage) != (m.memType != MEM_OBJECT_BUFFER) {
			return INVALID_MEM_OBJECT
		}
		arg.mem = m
	case paramSampler:
		if size != HandleSize {
			return INVALID_ARG_SIZE
		}
		if value == nil {
			return INVALID_SAMPLER
		}
		s, ret := d.sampler(Handle(DecodeUint64(value)))
		if ret != SUCCESS {
			return ret
		}
		arg.sampler = s
	case paramLocal:
		if value != nil {
			return INVALID_ARG_VALUE
		}
		if size <= 0 {
			return INVALID_ARG_SIZE
		}
		arg.local = size
	default:
		if value == nil {
			return INVALID_ARG_VALUE
		}
		if (p.size != 0 && size != p.size) || len(value) < size {
			return INVALID_ARG_SIZE
		}
		arg.value = append([]byte(nil), value[:size]...)
	}
	arg.set = true
	k.args[index] = arg
	return SUCCESS
}

func (d *MockDriver) GetKernelInfo(kernel Handle, param KernelInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case KERNEL_FUNCTION_NAME:
		data = EncodeString(k.decl.name)
	case KERNEL_NUM_ARGS:
		data = EncodeUint32(uint32(len(k.decl.params)))
	case KERNEL_REFERENCE_COUNT:
		data = EncodeUint32(uint32(k.refCount))
	case KERNEL_CONTEXT:
		data = EncodeHandles(k.program.context.handle)
	case KERNEL_PROGRAM:
		data = EncodeHandles(k.program.handle)
	case KERNEL_ATTRIBUTES:
		data = EncodeString(k.decl.attributes)
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) GetKernelArgInfo(kernel Handle, index int, param KernelArgInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return 0, ret
	}
	if index < 0 || index >= len(k.decl.params) {
		return 0, INVALID_ARG_INDEX
	}
	if !k.program.fromSource {
		return 0, KERNEL_ARG_INFO_NOT_AVAILABLE
	}
	p := k.decl.params[index]
	var data []byte
	switch param {
	case KERNEL_ARG_ADDRESS_QUALIFIER:
		data = EncodeUint32(p.address)
	case KERNEL_ARG_ACCESS_QUALIFIER:
		data = EncodeUint32(p.access)
	case KERNEL_ARG_TYPE_NAME:
		data = EncodeString(p.typeName)
	case KERNEL_ARG_TYPE_QUALIFIER:
		data = EncodeUint64(uint64(p.qualifier))
	case KERNEL_ARG_NAME:
		data = EncodeString(p.name)
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (k *mockKernel) localMemSize() int {
	total := 0
	for _, a := range k.args {
		total += a.local
	}
	return total
}

func (d *MockDriver) GetKernelWorkGroupInfo(kernel Handle, device Handle, param KernelWorkGroupInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value != nil {
		d.count("GetKernelWorkGroupInfo")
	}
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		return 0, ret
	}
	var dev *MockDevice
	switch {
	case device == 0 && len(k.program.devices) == 1:
		dev = k.program.devices[0]
	default:
		for _, pdev := range k.program.devices {
			if pdev.Handle == device {
				dev = pdev
			}
		}
	}
	if dev == nil {
		return 0, INVALID_DEVICE
	}
	var data []byte
	switch param {
	case KERNEL_WORK_GROUP_SIZE:
		data = EncodeSizeTs(dev.sizeT(DEVICE_MAX_WORK_GROUP_SIZE))
	case KERNEL_COMPILE_WORK_GROUP_SIZE:
		data = EncodeSizeTs(k.decl.reqdSize[:]...)
	case KERNEL_LOCAL_MEM_SIZE:
		data = EncodeUint64(uint64(k.localMemSize()))
	case KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE:
		data = EncodeSizeTs(dev.PreferredWorkGroupSizeMultiple)
	case KERNEL_PRIVATE_MEM_SIZE:
		data = EncodeUint64(0)
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

// defaultLocalSize picks, per dimension, the largest divisor of the global
// size that keeps the work-group within the device limits.
func defaultLocalSize(dims int, gws []int, maxItems []int, maxGroup int) [3]int {
	lws := [3]int{1, 1, 1}
	total := 1
	for i := 0; i < dims; i++ {
		for l := min(gws[i], maxItems[i], maxGroup/total); l >= 1; l-- {
			if gws[i]%l == 0 {
				lws[i] = l
				break
			}
		}
		total *= lws[i]
	}
	return lws
}

func (d *MockDriver) EnqueueNDRangeKernel(queue Handle, kernel Handle, dims int, offset []int, globalSize []int, localSize []int, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		d.mu.Unlock()
		return 0, ret
	}
	k, ret := d.kernel(kernel)
	if ret != SUCCESS {
		d.mu.Unlock()
		return 0, ret
	}
	wi, ret := d.checkNDRange(q, k, dims, offset, globalSize, localSize, waitList)
	if ret != SUCCESS {
		d.mu.Unlock()
		return 0, ret
	}

	args := make([]MockArg, len(k.args))
	for i, a := range k.args {
		switch {
		case a.mem != nil && a.mem.memType == MEM_OBJECT_BUFFER:
			args[i].Buffer = a.mem.data
		case a.mem != nil:
			args[i].Image = &MockImage{
				Format:     a.mem.format,
				Width:      a.mem.desc.Width,
				Height:     a.mem.desc.Height,
				Depth:      a.mem.desc.Depth,
				elemSize:   a.mem.elemSize,
				rowPitch:   a.mem.rowPitch,
				slicePitch: a.mem.slicePitch,
				data:       a.mem.data,
			}
		case a.sampler != nil:
			args[i].Sampler = &MockSampler{
				Normalized: a.sampler.normalized,
				Addressing: a.sampler.addressing,
				Filter:     a.sampler.filter,
			}
		case a.value != nil:
			args[i].Value = a.value
		}
	}
	locals := make([]int, len(k.args))
	for i, a := range k.args {
		locals[i] = a.local
	}
	items := wi.GlobalSize[0] * wi.GlobalSize[1] * wi.GlobalSize[2]
	fn := d.Kernels[k.decl.name]
	event := d.newEvent(q, COMMAND_NDRANGE_KERNEL, uint64(items))
	d.mu.Unlock()

	if fn != nil {
		runNDRange(fn, wi, args, locals)
	}
	return event, SUCCESS
}

// checkNDRange must be called with the lock held. It returns the work-item
// template holding the sizes and offsets of the launch.
func (d *MockDriver) checkNDRange(q *mockQueue, k *mockKernel, dims int, offset []int, globalSize []int, localSize []int, waitList []Handle) (*MockWorkItem, Return) {
	if k.program.context != q.context {
		return nil, INVALID_CONTEXT
	}
	dev := q.device
	if !k.program.executableFor(dev) {
		return nil, INVALID_PROGRAM_EXECUTABLE
	}
	maxItems := dev.maxWorkItemSizes()
	if dims < 1 || dims > 3 || dims > len(maxItems) {
		return nil, INVALID_WORK_DIMENSION
	}
	if len(globalSize) < dims {
		return nil, INVALID_GLOBAL_WORK_SIZE
	}
	if offset != nil && len(offset) < dims {
		return nil, INVALID_GLOBAL_OFFSET
	}
	for _, a := range k.args {
		if !a.set {
			return nil, INVALID_KERNEL_ARGS
		}
	}
	if ret := d.checkWaitList(waitList); ret != SUCCESS {
		return nil, ret
	}

	wi := &MockWorkItem{
		Dims:       dims,
		GlobalSize: [3]int{1, 1, 1},
		LocalSize:  [3]int{1, 1, 1},
	}
	for i := 0; i < dims; i++ {
		if globalSize[i] <= 0 {
			return nil, INVALID_GLOBAL_WORK_SIZE
		}
		wi.GlobalSize[i] = globalSize[i]
		if offset != nil {
			wi.GlobalOffset[i] = offset[i]
		}
	}

	maxGroup := dev.sizeT(DEVICE_MAX_WORK_GROUP_SIZE)
	reqd := k.decl.reqdSize
	switch {
	case localSize == nil && reqd[0] != 0:
		copy(wi.LocalSize[:], reqd[:dims])
	case localSize == nil:
		wi.LocalSize = defaultLocalSize(dims, globalSize, maxItems, maxGroup)
	default:
		if len(localSize) < dims {
			return nil, INVALID_WORK_GROUP_SIZE
		}
		total := 1
		for i := 0; i < dims; i++ {
			if localSize[i] <= 0 {
				return nil, INVALID_WORK_GROUP_SIZE
			}
			if localSize[i] > maxItems[i] {
				return nil, INVALID_WORK_ITEM_SIZE
			}
			if reqd[0] != 0 && localSize[i] != reqd[i] {
				return nil, INVALID_WORK_GROUP_SIZE
			}
			wi.LocalSize[i] = localSize[i]
			total *= localSize[i]
		}
		if total > maxGroup {
			return nil, INVALID_WORK_GROUP_SIZE
		}
	}
	for i := 0; i < dims; i++ {
		if wi.GlobalSize[i]%wi.LocalSize[i] != 0 {
			return nil, INVALID_WORK_GROUP_SIZE
		}
	}
	if k.localMemSize() > int(DecodeUint64(dev.Info[DEVICE_LOCAL_MEM_SIZE])) {
		return nil, OUT_OF_RESOURCES
	}
	return wi, SUCCESS
}

func runNDRange(fn MockKernelFunc, tmpl *MockWorkItem, args []MockArg, locals []int) {
	var groups [3]int
	for i := range groups {
		groups[i] = tmpl.GlobalSize[i] / tmpl.LocalSize[i]
	}
	groupArgs := make([]MockArg, len(args))
	for gz := 0; gz < groups[2]; gz++ {
		for gy := 0; gy < groups[1]; gy++ {
			for gx := 0; gx < groups[0]; gx++ {
				copy(groupArgs, args)
				for i, n := range locals {
					if n > 0 {
						groupArgs[i].Local = make([]byte, n)
					}
				}
				runGroup(fn, tmpl, [3]int{gx, gy, gz}, groupArgs)
			}
		}
	}
}

func runGroup(fn MockKernelFunc, tmpl *MockWorkItem, group [3]int, args []MockArg) {
	wi := *tmpl
	wi.GroupID = group
	for lz := 0; lz < tmpl.LocalSize[2]; lz++ {
		for ly := 0; ly < tmpl.LocalSize[1]; ly++ {
			for lx := 0; lx < tmpl.LocalSize[0]; lx++ {
				wi.LocalID = [3]int{lx, ly, lz}
				for i := range wi.GlobalID {
					wi.GlobalID[i] = tmpl.GlobalOffset[i] + group[i]*tmpl.LocalSize[i] + wi.LocalID[i]
				}
				fn(&wi, args)
			}
		}
	}
}

func (d *MockDriver) EnqueueNativeKernel(queue Handle, fn NativeKernelFunc, args []byte, memobjs []Handle, memLocations []int, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		d.mu.Unlock()
		return 0, ret
	}
	ret = d.checkNative(q, fn, args, memobjs, memLocations, waitList)
	if ret != SUCCESS {
		d.mu.Unlock()
		return 0, ret
	}
	blob := append([]byte(nil), args...)
	mems := make([][]byte, len(memobjs))
	for i, h := range memobjs {
		mems[i] = d.objects[h].(*mockMem).data
		binary.LittleEndian.PutUint64(blob[memLocations[i]:], uint64(i))
	}
	event := d.newEvent(q, COMMAND_NATIVE_KERNEL, 1)
	d.mu.Unlock()

	fn(blob, mems)
	return event, SUCCESS
}

// checkNative must be called with the lock held.
func (d *MockDriver) checkNative(q *mockQueue, fn NativeKernelFunc, args []byte, memobjs []Handle, memLocations []int, waitList []Handle) Return {
	if fn == nil || len(memobjs) != len(memLocations) {
		return INVALID_VALUE
	}
	if args == nil && len(memobjs) > 0 {
		return INVALID_VALUE
	}
	caps := Bitfield(DecodeUint64(q.device.Info[DEVICE_EXECUTION_CAPABILITIES]))
	if caps&EXEC_NATIVE_KERNEL == 0 {
		return INVALID_OPERATION
	}
	for i, h := range memobjs {
		m, ret := d.mem(h)
		if ret != SUCCESS {
			return ret
		}
		if m.context != q.context {
			return INVALID_CONTEXT
		}
		if memLocations[i] < 0 || memLocations[i]+HandleSize > len(args) {
			return INVALID_VALUE
		}
	}
	return d.checkWaitList(waitList)
}
