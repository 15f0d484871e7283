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

type mockMem struct {
	handle    Handle
	refCount  int
	context   *mockContext
	flags     MemFlags
	memType   MemObjectType
	data      []byte
	hostPtr   bool
	parent    *mockMem
	offset    int
	mapCount  int
	callbacks []DestructorCallback

	// Image objects only.
	format     ImageFormat
	desc       ImageDesc
	elemSize   int
	rowPitch   int
	slicePitch int
}

type mockSampler struct {
	handle     Handle
	refCount   int
	context    *mockContext
	normalized bool
	addressing AddressingMode
	filter     FilterMode
}

// MockImageFormats are the formats reported as supported for every image
// type when a context has a device with image support.
var MockImageFormats = []ImageFormat{
	{RGBA, UNORM_INT8},
	{RGBA, UNSIGNED_INT8},
	{RGBA, SIGNED_INT32},
	{RGBA, UNSIGNED_INT32},
	{RGBA, FLOAT},
	{BGRA, UNORM_INT8},
	{R, UNSIGNED_INT32},
	{R, FLOAT},
}

func (ctx *mockContext) imageSupport() bool {
	for _, dev := range ctx.devices {
		if dev.hasImageSupport() {
			return true
		}
	}
	return false
}

func (ctx *mockContext) maxAllocSize() int {
	size := 0
	for _, dev := range ctx.devices {
		s := int(DecodeUint64(dev.Info[DEVICE_MAX_MEM_ALLOC_SIZE]))
		if size == 0 || s < size {
			size = s
		}
	}
	return size
}

func checkMemFlags(flags MemFlags, size int, host []byte) Return {
	access := 0
	for _, f := range []MemFlags{MEM_READ_WRITE, MEM_WRITE_ONLY, MEM_READ_ONLY} {
		if flags&f != 0 {
			access++
		}
	}
	if access > 1 {
		return INVALID_VALUE
	}
	if flags&MEM_USE_HOST_PTR != 0 && flags&(MEM_ALLOC_HOST_PTR|MEM_COPY_HOST_PTR) != 0 {
		return INVALID_VALUE
	}
	wantsHost := flags&(MEM_USE_HOST_PTR|MEM_COPY_HOST_PTR) != 0
	if wantsHost != (host != nil) {
		return INVALID_HOST_PTR
	}
	if host != nil && len(host) < size {
		return INVALID_HOST_PTR
	}
	return SUCCESS
}

func newMemData(flags MemFlags, size int, host []byte) []byte {
	switch {
	case flags&MEM_USE_HOST_PTR != 0:
		return host[:size:size]
	case flags&MEM_COPY_HOST_PTR != 0:
		data := make([]byte, size)
		copy(data, host)
		return data
	}
	return make([]byte, size)
}

func (d *MockDriver) CreateBuffer(context Handle, flags MemFlags, size int, host []byte) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	if size <= 0 || size > ctx.maxAllocSize() {
		return 0, INVALID_BUFFER_SIZE
	}
	if ret := checkMemFlags(flags, size, host); ret != SUCCESS {
		return 0, ret
	}
	if flags == 0 {
		flags = MEM_READ_WRITE
	}
	m := &mockMem{
		handle:   nextHandle(),
		refCount: 1,
		context:  ctx,
		flags:    flags,
		memType:  MEM_OBJECT_BUFFER,
		data:     newMemData(flags, size, host),
		hostPtr:  flags&MEM_USE_HOST_PTR != 0,
	}
	d.objects[m.handle] = m
	return m.handle, SUCCESS
}

func (d *MockDriver) CreateSubBuffer(buffer Handle, flags MemFlags, origin int, size int) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	parent, ret := d.mem(buffer)
	if ret != SUCCESS {
		return 0, ret
	}
	if parent.memType != MEM_OBJECT_BUFFER || parent.parent != nil {
		return 0, INVALID_MEM_OBJECT
	}
	if size <= 0 || origin < 0 || origin+size > len(parent.data) {
		return 0, INVALID_VALUE
	}
	for _, dev := range parent.context.devices {
		align := int(dev.uint32(DEVICE_MEM_BASE_ADDR_ALIGN)) / 8
		if align > 0 && origin%align != 0 {
			return 0, MISALIGNED_SUB_BUFFER_OFFSET
		}
	}
	if flags&(MEM_USE_HOST_PTR|MEM_ALLOC_HOST_PTR|MEM_COPY_HOST_PTR) != 0 {
		return 0, INVALID_VALUE
	}
	if flags&(MEM_READ_WRITE|MEM_WRITE_ONLY|MEM_READ_ONLY) == 0 {
		flags |= parent.flags & (MEM_READ_WRITE | MEM_WRITE_ONLY | MEM_READ_ONLY)
	}
	m := &mockMem{
		handle:   nextHandle(),
		refCount: 1,
		context:  parent.context,
		flags:    flags,
		memType:  MEM_OBJECT_BUFFER,
		data:     parent.data[origin : origin+size : origin+size],
		parent:   parent,
		offset:   origin,
	}
	parent.refCount++
	d.objects[m.handle] = m
	return m.handle, SUCCESS
}

func (d *MockDriver) CreateImage(context Handle, flags MemFlags, format ImageFormat, desc ImageDesc, host []byte) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	if !ctx.imageSupport() {
		return 0, INVALID_OPERATION
	}
	elemSize := format.ElemSize()
	if elemSize == 0 {
		return 0, INVALID_IMAGE_FORMAT_DESCRIPTOR
	}
	supported := false
	for _, f := range MockImageFormats {
		if f == format {
			supported = true
		}
	}
	if !supported {
		return 0, IMAGE_FORMAT_NOT_SUPPORTED
	}

	width, height, depth := desc.Width, 1, 1
	switch desc.Type {
	case MEM_OBJECT_IMAGE1D:
	case MEM_OBJECT_IMAGE1D_ARRAY:
		height = desc.ArraySize
	case MEM_OBJECT_IMAGE2D:
		height = desc.Height
	case MEM_OBJECT_IMAGE2D_ARRAY:
		height, depth = desc.Height, desc.ArraySize
	case MEM_OBJECT_IMAGE3D:
		height, depth = desc.Height, desc.Depth
	default:
		return 0, INVALID_IMAGE_DESCRIPTOR
	}
	if width <= 0 || height <= 0 || depth <= 0 {
		return 0, INVALID_IMAGE_SIZE
	}
	rowPitch := width * elemSize
	if desc.RowPitch != 0 {
		if host == nil || desc.RowPitch < rowPitch || desc.RowPitch%elemSize != 0 {
			return 0, INVALID_IMAGE_DESCRIPTOR
		}
		rowPitch = desc.RowPitch
	}
	slicePitch := rowPitch * height
	if desc.SlicePitch != 0 {
		if host == nil || desc.SlicePitch < slicePitch {
			return 0, INVALID_IMAGE_DESCRIPTOR
		}
		slicePitch = desc.SlicePitch
	}
	size := slicePitch * depth
	if ret := checkMemFlags(flags, size, host); ret != SUCCESS {
		return 0, ret
	}
	if flags == 0 {
		flags = MEM_READ_WRITE
	}
	m := &mockMem{
		handle:     nextHandle(),
		refCount:   1,
		context:    ctx,
		flags:      flags,
		memType:    desc.Type,
		data:       newMemData(flags, size, host),
		hostPtr:    flags&MEM_USE_HOST_PTR != 0,
		format:     format,
		desc:       desc,
		elemSize:   elemSize,
		rowPitch:   rowPitch,
		slicePitch: slicePitch,
	}
	m.desc.Height, m.desc.Depth = height, depth
	d.objects[m.handle] = m
	return m.handle, SUCCESS
}

func (d *MockDriver) mem(h Handle) (*mockMem, Return) {
	m, ok := d.objects[h].(*mockMem)
	if !ok {
		return nil, INVALID_MEM_OBJECT
	}
	return m, SUCCESS
}

func (d *MockDriver) RetainMemObject(memobj Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ret := d.mem(memobj)
	if ret != SUCCESS {
		return ret
	}
	m.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseMemObject(memobj Handle) Return {
	d.mu.Lock()
	m, ret := d.mem(memobj)
	if ret != SUCCESS {
		d.mu.Unlock()
		return ret
	}
	fire := d.releaseMem(m)
	d.mu.Unlock()

	for _, f := range fire {
		f()
	}
	return SUCCESS
}

// releaseMem must be called with the lock held. It returns the destructor
// callbacks to run once the lock is dropped.
func (d *MockDriver) releaseMem(m *mockMem) []func() {
	m.refCount--
	if m.refCount > 0 {
		return nil
	}
	delete(d.objects, m.handle)
	var fire []func()
	for _, cb := range m.callbacks {
		cb, h := cb, m.handle
		fire = append(fire, func() { cb(h) })
	}
	if m.parent != nil {
		fire = append(fire, d.releaseMem(m.parent)...)
	}
	return fire
}

func (d *MockDriver) SetMemObjectDestructorCallback(memobj Handle, callback DestructorCallback) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ret := d.mem(memobj)
	if ret != SUCCESS {
		return ret
	}
	if callback == nil {
		return INVALID_VALUE
	}
	m.callbacks = append(m.callbacks, callback)
	return SUCCESS
}

func (d *MockDriver) GetMemObjectInfo(memobj Handle, param MemInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ret := d.mem(memobj)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case MEM_TYPE:
		data = EncodeUint32(uint32(m.memType))
	case MEM_FLAGS:
		data = EncodeUint64(uint64(m.flags))
	case MEM_SIZE:
		data = EncodeSizeTs(len(m.data))
	case MEM_HOST_PTR:
		// The object handle stands in for the host address.
		var ptr Handle
		if m.hostPtr {
			ptr = m.handle
		}
		data = EncodeHandles(ptr)
	case MEM_MAP_COUNT:
		data = EncodeUint32(uint32(m.mapCount))
	case MEM_REFERENCE_COUNT:
		data = EncodeUint32(uint32(m.refCount))
	case MEM_CONTEXT:
		data = EncodeHandles(m.context.handle)
	case MEM_ASSOCIATED_MEMOBJECT:
		var parent Handle
		if m.parent != nil {
			parent = m.parent.handle
		}
		data = EncodeHandles(parent)
	case MEM_OFFSET:
		data = EncodeSizeTs(m.offset)
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) GetImageInfo(image Handle, param ImageInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ret := d.mem(image)
	if ret != SUCCESS {
		return 0, ret
	}
	if m.memType == MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	var data []byte
	switch param {
	case IMAGE_FORMAT:
		data = append(EncodeUint32(uint32(m.format.ChannelOrder)), EncodeUint32(uint32(m.format.ChannelType))...)
	case IMAGE_ELEMENT_SIZE:
		data = EncodeSizeTs(m.elemSize)
	case IMAGE_ROW_PITCH:
		data = EncodeSizeTs(m.rowPitch)
	case IMAGE_SLICE_PITCH:
		slice := 0
		if m.memType == MEM_OBJECT_IMAGE3D || m.memType == MEM_OBJECT_IMAGE2D_ARRAY {
			slice = m.slicePitch
		}
		data = EncodeSizeTs(slice)
	case IMAGE_WIDTH:
		data = EncodeSizeTs(m.desc.Width)
	case IMAGE_HEIGHT:
		height := 0
		if m.memType != MEM_OBJECT_IMAGE1D && m.memType != MEM_OBJECT_IMAGE1D_ARRAY {
			height = m.desc.Height
		}
		data = EncodeSizeTs(height)
	case IMAGE_DEPTH:
		depth := 0
		if m.memType == MEM_OBJECT_IMAGE3D {
			depth = m.desc.Depth
		}
		data = EncodeSizeTs(depth)
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) GetSupportedImageFormats(context Handle, flags MemFlags, imageType MemObjectType) ([]ImageFormat, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return nil, ret
	}
	switch imageType {
	case MEM_OBJECT_IMAGE1D, MEM_OBJECT_IMAGE1D_ARRAY, MEM_OBJECT_IMAGE1D_BUFFER,
		MEM_OBJECT_IMAGE2D, MEM_OBJECT_IMAGE2D_ARRAY, MEM_OBJECT_IMAGE3D:
	default:
		return nil, INVALID_VALUE
	}
	d.count("GetSupportedImageFormats")
	if !ctx.imageSupport() {
		return []ImageFormat{}, SUCCESS
	}
	formats := make([]ImageFormat, len(MockImageFormats))
	copy(formats, MockImageFormats)
	return formats, SUCCESS
}

func (d *MockDriver) CreateSampler(context Handle, normalized bool, addressing AddressingMode, filter FilterMode) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	if !ctx.imageSupport() {
		return 0, INVALID_OPERATION
	}
	if addressing < ADDRESS_NONE || addressing > ADDRESS_MIRRORED_REPEAT {
		return 0, INVALID_VALUE
	}
	if filter != FILTER_NEAREST && filter != FILTER_LINEAR {
		return 0, INVALID_VALUE
	}
	s := &mockSampler{
		handle:     nextHandle(),
		refCount:   1,
		context:    ctx,
		normalized: normalized,
		addressing: addressing,
		filter:     filter,
	}
	d.objects[s.handle] = s
	return s.handle, SUCCESS
}

func (d *MockDriver) CreateSamplerWithProperties(context Handle, properties []SamplerProperty) (Handle, Return) {
	normalized := true
	addressing := ADDRESS_CLAMP
	filter := FILTER_NEAREST
	for _, p := range properties {
		switch p.Name {
		case SAMPLER_NORMALIZED_COORDS:
			normalized = p.Value != 0
		case SAMPLER_ADDRESSING_MODE:
			addressing = AddressingMode(p.Value)
		case SAMPLER_FILTER_MODE:
			filter = FilterMode(p.Value)
		default:
			return 0, INVALID_VALUE
		}
	}
	return d.CreateSampler(context, normalized, addressing, filter)
}

func (d *MockDriver) sampler(h Handle) (*mockSampler, Return) {
	s, ok := d.objects[h].(*mockSampler)
	if !ok {
		return nil, INVALID_SAMPLER
	}
	return s, SUCCESS
}

func (d *MockDriver) RetainSampler(sampler Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ret := d.sampler(sampler)
	if ret != SUCCESS {
		return ret
	}
	s.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseSampler(sampler Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ret := d.sampler(sampler)
	if ret != SUCCESS {
		return ret
	}
	s.refCount--
	if s.refCount == 0 {
		delete(d.objects, sampler)
	}
	return SUCCESS
}

func (d *MockDriver) GetSamplerInfo(sampler Handle, param SamplerInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ret := d.sampler(sampler)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case SAMPLER_REFERENCE_COUNT:
		data = EncodeUint32(uint32(s.refCount))
	case SAMPLER_CONTEXT:
		data = EncodeHandles(s.context.handle)
	case SAMPLER_NORMALIZED_COORDS:
		data = EncodeBool(s.normalized)
	case SAMPLER_ADDRESSING_MODE:
		data = EncodeUint32(uint32(s.addressing))
	case SAMPLER_FILTER_MODE:
		data = EncodeUint32(uint32(s.filter))
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

// enqueueMem validates the common arguments of a memory command and must be
// called with the lock held.
func (d *MockDriver) enqueueMem(queue Handle, memobj Handle, waitList []Handle) (*mockQueue, *mockMem, Return) {
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return nil, nil, ret
	}
	m, ret := d.mem(memobj)
	if ret != SUCCESS {
		return nil, nil, ret
	}
	if m.context != q.context {
		return nil, nil, INVALID_CONTEXT
	}
	if ret := d.checkWaitList(waitList); ret != SUCCESS {
		return nil, nil, ret
	}
	return q, m, SUCCESS
}

func transferCost(size int) uint64 {
	return uint64(size/8 + 1)
}

func (d *MockDriver) EnqueueReadBuffer(queue Handle, buffer Handle, blocking bool, offset int, size int, host []byte, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, buffer, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	if m.memType != MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if offset < 0 || size <= 0 || offset+size > len(m.data) || len(host) < size {
		return 0, INVALID_VALUE
	}
	copy(host[:size], m.data[offset:offset+size])
	return d.newEvent(q, COMMAND_READ_BUFFER, transferCost(size)), SUCCESS
}

func (d *MockDriver) EnqueueWriteBuffer(queue Handle, buffer Handle, blocking bool, offset int, size int, host []byte, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, buffer, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	if m.memType != MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if offset < 0 || size <= 0 || offset+size > len(m.data) || len(host) < size {
		return 0, INVALID_VALUE
	}
	copy(m.data[offset:offset+size], host[:size])
	return d.newEvent(q, COMMAND_WRITE_BUFFER, transferCost(size)), SUCCESS
}

func (d *MockDriver) EnqueueCopyBuffer(queue Handle, src Handle, dst Handle, srcOffset int, dstOffset int, size int, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, s, ret := d.enqueueMem(queue, src, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	t, ret := d.mem(dst)
	if ret != SUCCESS {
		return 0, ret
	}
	if t.context != q.context {
		return 0, INVALID_CONTEXT
	}
	if s.memType != MEM_OBJECT_BUFFER || t.memType != MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if size <= 0 || srcOffset < 0 || dstOffset < 0 ||
		srcOffset+size > len(s.data) || dstOffset+size > len(t.data) {
		return 0, INVALID_VALUE
	}
	if s == t && srcOffset < dstOffset+size && dstOffset < srcOffset+size {
		return 0, MEM_COPY_OVERLAP
	}
	copy(t.data[dstOffset:dstOffset+size], s.data[srcOffset:srcOffset+size])
	return d.newEvent(q, COMMAND_COPY_BUFFER, transferCost(size)), SUCCESS
}

// imageRegion validates an image region and returns the byte length of one
// row of the region.
func (m *mockMem) imageRegion(origin [3]int, region [3]int) (int, Return) {
	dims := [3]int{m.desc.Width, m.desc.Height, m.desc.Depth}
	for i := range dims {
		if origin[i] < 0 || region[i] <= 0 || origin[i]+region[i] > dims[i] {
			return 0, INVALID_VALUE
		}
	}
	return region[0] * m.elemSize, SUCCESS
}

func (m *mockMem) imageOffset(x, y, z int) int {
	return z*m.slicePitch + y*m.rowPitch + x*m.elemSize
}

// copyImageRegion moves a region between the image and a host layout with
// the given pitches. toHost selects the direction.
func (m *mockMem) copyImageRegion(origin, region [3]int, rowPitch, slicePitch int, host []byte, toHost bool) Return {
	rowBytes, ret := m.imageRegion(origin, region)
	if ret != SUCCESS {
		return ret
	}
	if rowPitch == 0 {
		rowPitch = rowBytes
	}
	if slicePitch == 0 {
		slicePitch = rowPitch * region[1]
	}
	if rowPitch < rowBytes || slicePitch < rowPitch*region[1] {
		return INVALID_VALUE
	}
	if len(host) < slicePitch*(region[2]-1)+rowPitch*(region[1]-1)+rowBytes {
		return INVALID_VALUE
	}
	for z := 0; z < region[2]; z++ {
		for y := 0; y < region[1]; y++ {
			img := m.imageOffset(origin[0], origin[1]+y, origin[2]+z)
			h := z*slicePitch + y*rowPitch
			if toHost {
				copy(host[h:h+rowBytes], m.data[img:img+rowBytes])
			} else {
				copy(m.data[img:img+rowBytes], host[h:h+rowBytes])
			}
		}
	}
	return SUCCESS
}

func (d *MockDriver) EnqueueReadImage(queue Handle, image Handle, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, image, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	if m.memType == MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if ret := m.copyImageRegion(origin, region, rowPitch, slicePitch, host, true); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_READ_IMAGE, transferCost(region[0]*region[1]*region[2]*m.elemSize)), SUCCESS
}

func (d *MockDriver) EnqueueWriteImage(queue Handle, image Handle, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, image, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	if m.memType == MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if ret := m.copyImageRegion(origin, region, rowPitch, slicePitch, host, false); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_WRITE_IMAGE, transferCost(region[0]*region[1]*region[2]*m.elemSize)), SUCCESS
}

func (d *MockDriver) EnqueueCopyBufferToImage(queue Handle, src Handle, dst Handle, srcOffset int, dstOrigin [3]int, region [3]int, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, s, ret := d.enqueueMem(queue, src, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	img, ret := d.mem(dst)
	if ret != SUCCESS {
		return 0, ret
	}
	if img.context != q.context {
		return 0, INVALID_CONTEXT
	}
	if s.memType != MEM_OBJECT_BUFFER || img.memType == MEM_OBJECT_BUFFER {
		return 0, INVALID_MEM_OBJECT
	}
	if srcOffset < 0 || srcOffset > len(s.data) {
		return 0, INVALID_VALUE
	}
	if ret := img.copyImageRegion(dstOrigin, region, 0, 0, s.data[srcOffset:], false); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_COPY_BUFFER_TO_IMAGE, transferCost(region[0]*region[1]*region[2]*img.elemSize)), SUCCESS
}

func (d *MockDriver) EnqueueMapBuffer(queue Handle, buffer Handle, blocking bool, flags MapFlags, offset int, size int, waitList []Handle) ([]byte, Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, buffer, waitList)
	if ret != SUCCESS {
		return nil, 0, ret
	}
	if m.memType != MEM_OBJECT_BUFFER {
		return nil, 0, INVALID_MEM_OBJECT
	}
	if offset < 0 || size <= 0 || offset+size > len(m.data) {
		return nil, 0, INVALID_VALUE
	}
	if flags&MAP_WRITE_INVALIDATE_REGION != 0 && flags&(MAP_READ|MAP_WRITE) != 0 {
		return nil, 0, INVALID_VALUE
	}
	m.mapCount++
	mapped := m.data[offset : offset+size : offset+size]
	return mapped, d.newEvent(q, COMMAND_MAP_BUFFER, 1), SUCCESS
}

func (d *MockDriver) EnqueueUnmapMemObject(queue Handle, memobj Handle, mapped []byte, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, m, ret := d.enqueueMem(queue, memobj, waitList)
	if ret != SUCCESS {
		return 0, ret
	}
	if mapped == nil || m.mapCount == 0 {
		return 0, INVALID_VALUE
	}
	m.mapCount--
	return d.newEvent(q, COMMAND_UNMAP_MEM_OBJECT, 1), SUCCESS
}

func (d *MockDriver) EnqueueMigrateMemObjects(queue Handle, memobjs []Handle, flags MemMigrationFlags, waitList []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	q, ret := d.queue(queue)
	if ret != SUCCESS {
		return 0, ret
	}
	if len(memobjs) == 0 {
		return 0, INVALID_VALUE
	}
	for _, h := range memobjs {
		m, ret := d.mem(h)
		if ret != SUCCESS {
			return 0, ret
		}
		if m.context != q.context {
			return 0, INVALID_CONTEXT
		}
	}
	if ret := d.checkWaitList(waitList); ret != SUCCESS {
		return 0, ret
	}
	return d.newEvent(q, COMMAND_MIGRATE_MEM_OBJECTS, 1), SUCCESS
}
