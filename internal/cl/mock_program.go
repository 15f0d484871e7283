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
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// mockBinaryMagic prefixes every binary produced by the in-memory driver. It
// is followed by one byte holding the binary type and then the source.
const mockBinaryMagic = "CLWRAPBIN\x00"

type mockProgram struct {
	handle     Handle
	refCount   int
	context    *mockContext
	devices    []*MockDevice
	source     string
	fromSource bool
	builtIn    bool
	decls      []*mockKernelDecl
	builds     map[Handle]*mockBuild
	kernels    int
}

type mockBuild struct {
	status     BuildStatus
	options    string
	log        string
	binaryType BinaryType
}

func (p *mockProgram) build(dev *MockDevice) *mockBuild {
	b, ok := p.builds[dev.Handle]
	if !ok {
		b = &mockBuild{status: BUILD_NONE, binaryType: PROGRAM_BINARY_TYPE_NONE}
		p.builds[dev.Handle] = b
	}
	return b
}

func (p *mockProgram) binary(dev *MockDevice) []byte {
	b := p.build(dev)
	if b.binaryType == PROGRAM_BINARY_TYPE_NONE || p.builtIn {
		return nil
	}
	bin := append([]byte(mockBinaryMagic), byte(b.binaryType))
	return append(bin, p.source...)
}

func (p *mockProgram) executableFor(dev *MockDevice) bool {
	b, ok := p.builds[dev.Handle]
	return ok && b.status == BUILD_SUCCESS && b.binaryType == PROGRAM_BINARY_TYPE_EXECUTABLE
}

func (p *mockProgram) anyExecutable() bool {
	for _, dev := range p.devices {
		if p.executableFor(dev) {
			return true
		}
	}
	return false
}

func (p *mockProgram) decl(name string) *mockKernelDecl {
	for _, k := range p.decls {
		if k.name == name {
			return k
		}
	}
	return nil
}

func newMockProgram(ctx *mockContext, devices []*MockDevice) *mockProgram {
	return &mockProgram{
		handle:   nextHandle(),
		refCount: 1,
		context:  ctx,
		devices:  devices,
		builds:   make(map[Handle]*mockBuild),
	}
}

// contextDevices resolves handles to devices of ctx. A nil list selects every
// device of the context.
func (d *MockDriver) contextDevices(ctx *mockContext, handles []Handle) ([]*MockDevice, Return) {
	if handles == nil {
		return ctx.devices, SUCCESS
	}
	if len(handles) == 0 {
		return nil, INVALID_VALUE
	}
	devices := make([]*MockDevice, 0, len(handles))
	for _, h := range handles {
		var found *MockDevice
		for _, dev := range ctx.devices {
			if dev.Handle == h {
				found = dev
			}
		}
		if found == nil {
			return nil, INVALID_DEVICE
		}
		devices = append(devices, found)
	}
	return devices, SUCCESS
}

func (d *MockDriver) programDevices(p *mockProgram, handles []Handle) ([]*MockDevice, Return) {
	if handles == nil {
		return p.devices, SUCCESS
	}
	devices, ret := d.contextDevices(p.context, handles)
	if ret != SUCCESS {
		return nil, ret
	}
	for _, dev := range devices {
		found := false
		for _, pdev := range p.devices {
			if pdev == dev {
				found = true
			}
		}
		if !found {
			return nil, INVALID_DEVICE
		}
	}
	return devices, SUCCESS
}

func (d *MockDriver) CreateProgramWithSource(context Handle, sources []string) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	if len(sources) == 0 {
		return 0, INVALID_VALUE
	}
	for _, s := range sources {
		if s == "" {
			return 0, INVALID_VALUE
		}
	}
	p := newMockProgram(ctx, ctx.devices)
	p.source = strings.Join(sources, "")
	p.fromSource = true
	d.objects[p.handle] = p
	return p.handle, SUCCESS
}

func (d *MockDriver) CreateProgramWithBinary(context Handle, devices []Handle, binaries [][]byte) (Handle, []Return, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, nil, ret
	}
	if len(devices) == 0 || len(devices) != len(binaries) {
		return 0, nil, INVALID_VALUE
	}
	devs, ret := d.contextDevices(ctx, devices)
	if ret != SUCCESS {
		return 0, nil, ret
	}

	status := make([]Return, len(binaries))
	types := make([]BinaryType, len(binaries))
	source := ""
	failed := false
	for i, bin := range binaries {
		if len(bin) <= len(mockBinaryMagic) || !bytes.HasPrefix(bin, []byte(mockBinaryMagic)) {
			status[i] = INVALID_BINARY
			failed = true
			continue
		}
		types[i] = BinaryType(bin[len(mockBinaryMagic)])
		source = string(bin[len(mockBinaryMagic)+1:])
		status[i] = SUCCESS
	}
	if failed {
		return 0, status, INVALID_BINARY
	}

	p := newMockProgram(ctx, devs)
	p.source = source
	for i, dev := range devs {
		p.build(dev).binaryType = types[i]
	}
	d.objects[p.handle] = p
	return p.handle, status, SUCCESS
}

func (d *MockDriver) CreateProgramWithBuiltInKernels(context Handle, devices []Handle, kernelNames string) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	devs, ret := d.contextDevices(ctx, devices)
	if ret != SUCCESS {
		return 0, ret
	}
	if devices == nil {
		return 0, INVALID_VALUE
	}
	names := strings.Split(kernelNames, ";")
	for _, dev := range devs {
		available := strings.Split(DecodeString(dev.Info[DEVICE_BUILT_IN_KERNELS]), ";")
		for _, name := range names {
			found := false
			for _, a := range available {
				if a == name {
					found = true
				}
			}
			if !found {
				return 0, INVALID_VALUE
			}
		}
	}

	p := newMockProgram(ctx, devs)
	p.builtIn = true
	for _, name := range names {
		p.decls = append(p.decls, &mockKernelDecl{name: name})
	}
	for _, dev := range devs {
		b := p.build(dev)
		b.status = BUILD_SUCCESS
		b.binaryType = PROGRAM_BINARY_TYPE_EXECUTABLE
	}
	d.objects[p.handle] = p
	return p.handle, SUCCESS
}

func (d *MockDriver) program(h Handle) (*mockProgram, Return) {
	p, ok := d.objects[h].(*mockProgram)
	if !ok {
		return nil, INVALID_PROGRAM
	}
	return p, SUCCESS
}

func (d *MockDriver) RetainProgram(program Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return ret
	}
	p.refCount++
	return SUCCESS
}

func (d *MockDriver) ReleaseProgram(program Handle) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return ret
	}
	d.releaseProgram(p)
	return SUCCESS
}

func (d *MockDriver) releaseProgram(p *mockProgram) {
	p.refCount--
	if p.refCount == 0 {
		delete(d.objects, p.handle)
	}
}

// compile checks the syntax of the program source and records the outcome
// for every device.
func (p *mockProgram) compile(devices []*MockDevice, options string, binaryType BinaryType) bool {
	line, col, msg := checkSyntax(p.source)
	for _, dev := range devices {
		b := p.build(dev)
		b.options = options
		if msg != "" {
			b.status = BUILD_ERROR
			b.log = fmt.Sprintf("<kernel>:%d:%d: error: %s\n", line, col, msg)
			b.binaryType = PROGRAM_BINARY_TYPE_NONE
			continue
		}
		b.status = BUILD_SUCCESS
		b.log = ""
		b.binaryType = binaryType
	}
	if msg != "" {
		return false
	}
	p.decls = parseKernels(p.source)
	return true
}

func (d *MockDriver) BuildProgram(program Handle, devices []Handle, options string) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return ret
	}
	devs, ret := d.programDevices(p, devices)
	if ret != SUCCESS {
		return ret
	}
	if p.kernels > 0 {
		return INVALID_OPERATION
	}
	if ret := checkOptions(options); ret != SUCCESS {
		return ret
	}
	if p.builtIn {
		return SUCCESS
	}
	if !p.fromSource {
		for _, dev := range devs {
			if p.build(dev).binaryType == PROGRAM_BINARY_TYPE_NONE {
				return INVALID_BINARY
			}
		}
	}
	if !p.compile(devs, options, PROGRAM_BINARY_TYPE_EXECUTABLE) {
		return BUILD_PROGRAM_FAILURE
	}
	return SUCCESS
}

func (d *MockDriver) CompileProgram(program Handle, devices []Handle, options string, headers []Handle, headerNames []string) Return {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return ret
	}
	devs, ret := d.programDevices(p, devices)
	if ret != SUCCESS {
		return ret
	}
	if len(headers) != len(headerNames) {
		return INVALID_VALUE
	}
	for _, h := range headers {
		if _, ret := d.program(h); ret != SUCCESS {
			return INVALID_OPERATION
		}
	}
	if !p.fromSource || p.kernels > 0 {
		return INVALID_OPERATION
	}
	if ret := checkOptions(options); ret != SUCCESS {
		return INVALID_COMPILER_OPTIONS
	}
	if !p.compile(devs, options, PROGRAM_BINARY_TYPE_COMPILED_OBJECT) {
		return COMPILE_PROGRAM_FAILURE
	}
	return SUCCESS
}

func (d *MockDriver) LinkProgram(context Handle, devices []Handle, options string, programs []Handle) (Handle, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ret := d.context(context)
	if ret != SUCCESS {
		return 0, ret
	}
	devs, ret := d.contextDevices(ctx, devices)
	if ret != SUCCESS {
		return 0, ret
	}
	if len(programs) == 0 {
		return 0, INVALID_VALUE
	}
	if ret := checkOptions(options); ret != SUCCESS {
		return 0, INVALID_LINKER_OPTIONS
	}
	binaryType := PROGRAM_BINARY_TYPE_EXECUTABLE
	if strings.Contains(options, "-create-library") {
		binaryType = PROGRAM_BINARY_TYPE_LIBRARY
	}

	linked := newMockProgram(ctx, devs)
	var sources []string
	for _, h := range programs {
		p, ret := d.program(h)
		if ret != SUCCESS {
			return 0, INVALID_PROGRAM
		}
		if p.context != ctx {
			return 0, INVALID_CONTEXT
		}
		for _, dev := range devs {
			b, ok := p.builds[dev.Handle]
			if !ok || b.status != BUILD_SUCCESS ||
				(b.binaryType != PROGRAM_BINARY_TYPE_COMPILED_OBJECT && b.binaryType != PROGRAM_BINARY_TYPE_LIBRARY) {
				return 0, INVALID_OPERATION
			}
		}
		for _, k := range p.decls {
			if linked.decl(k.name) != nil {
				return 0, LINK_PROGRAM_FAILURE
			}
			linked.decls = append(linked.decls, k)
		}
		sources = append(sources, p.source)
	}
	linked.source = strings.Join(sources, "\n")
	linked.fromSource = true
	for _, dev := range devs {
		b := linked.build(dev)
		b.status = BUILD_SUCCESS
		b.options = options
		b.binaryType = binaryType
	}
	d.objects[linked.handle] = linked
	return linked.handle, SUCCESS
}

func (d *MockDriver) GetProgramInfo(program Handle, param ProgramInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return 0, ret
	}
	var data []byte
	switch param {
	case PROGRAM_REFERENCE_COUNT:
		data = EncodeUint32(uint32(p.refCount))
	case PROGRAM_CONTEXT:
		data = EncodeHandles(p.context.handle)
	case PROGRAM_NUM_DEVICES:
		data = EncodeUint32(uint32(len(p.devices)))
	case PROGRAM_DEVICES:
		for _, dev := range p.devices {
			data = append(data, EncodeHandles(dev.Handle)...)
		}
	case PROGRAM_SOURCE:
		if p.fromSource {
			data = EncodeString(p.source)
		} else {
			data = EncodeString("")
		}
	case PROGRAM_BINARY_SIZES:
		for _, dev := range p.devices {
			data = append(data, EncodeSizeTs(len(p.binary(dev)))...)
		}
	case PROGRAM_BINARIES:
		// Binaries are returned back to back in device order.
		for _, dev := range p.devices {
			data = append(data, p.binary(dev)...)
		}
	case PROGRAM_NUM_KERNELS, PROGRAM_KERNEL_NAMES:
		if !p.anyExecutable() {
			return 0, INVALID_PROGRAM_EXECUTABLE
		}
		if param == PROGRAM_NUM_KERNELS {
			data = EncodeSizeTs(len(p.decls))
			break
		}
		names := make([]string, len(p.decls))
		for i, k := range p.decls {
			names[i] = k.name
		}
		data = EncodeString(strings.Join(names, ";"))
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

func (d *MockDriver) GetProgramBuildInfo(program Handle, device Handle, param ProgramBuildInfo, value []byte) (int, Return) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ret := d.program(program)
	if ret != SUCCESS {
		return 0, ret
	}
	var dev *MockDevice
	for _, pdev := range p.devices {
		if pdev.Handle == device {
			dev = pdev
		}
	}
	if dev == nil {
		return 0, INVALID_DEVICE
	}
	b := p.build(dev)
	var data []byte
	switch param {
	case PROGRAM_BUILD_STATUS:
		data = EncodeInt32(int32(b.status))
	case PROGRAM_BUILD_OPTIONS:
		data = EncodeString(b.options)
	case PROGRAM_BUILD_LOG:
		data = EncodeString(b.log)
	case PROGRAM_BINARY_TYPE:
		data = EncodeUint32(uint32(b.binaryType))
	default:
		return 0, INVALID_VALUE
	}
	return CopyInfo(data, value)
}

var knownOptions = []string{"-D", "-I", "-w", "-Werror", "-cl-", "-create-library", "-enable-link-options"}

func checkOptions(options string) Return {
	for _, opt := range strings.Fields(options) {
		if !strings.HasPrefix(opt, "-") {
			// Values of -D and -I may be given as separate words.
			continue
		}
		known := false
		for _, k := range knownOptions {
			if strings.HasPrefix(opt, k) {
				known = true
			}
		}
		if !known {
			return INVALID_BUILD_OPTIONS
		}
	}
	return SUCCESS
}

// checkSyntax reports the position and description of the first syntax error
// found in src, or an empty message when none is found. Only comments,
// literals, bracket balance and stray characters are checked.
func checkSyntax(src string) (int, int, string) {
	type open struct {
		ch        byte
		line, col int
	}
	closing := map[byte]byte{')': '(', ']': '[', '}': '{'}
	var stack []open
	line, col := 1, 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		col++
		if c == '\n' {
			line, col = line+1, 0
			continue
		}
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return line, col, "unterminated /* comment"
			}
			stop := i + 2 + end + 2
			for k := i + 1; k < stop; k++ {
				if src[k] == '\n' {
					line, col = line+1, 0
				} else {
					col++
				}
			}
			i = stop - 1
		case c == '"' || c == '\'':
			startLine, startCol := line, col
			j := i + 1
			for j < len(src) && src[j] != c && src[j] != '\n' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(src) || src[j] != c {
				return startLine, startCol, fmt.Sprintf("missing terminating %c character", c)
			}
			col += j - i
			i = j
		case c == '(' || c == '[' || c == '{':
			stack = append(stack, open{c, line, col})
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != closing[c] {
				return line, col, fmt.Sprintf("extraneous closing '%c'", c)
			}
			stack = stack[:len(stack)-1]
		case c == '@' || c == '$' || c == '`' || c >= 0x80:
			return line, col, fmt.Sprintf("stray '%c' in program", c)
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return top.line, top.col, fmt.Sprintf("expected matching closing bracket for '%c'", top.ch)
	}
	return 0, 0, ""
}

var (
	kernelDeclRE = regexp.MustCompile(`(?:__kernel|\bkernel)\s+((?:__attribute__\s*\(\(.*?\)\)\s*)*)void\s+(\w+)\s*\(([^)]*)\)`)
	reqdSizeRE   = regexp.MustCompile(`reqd_work_group_size\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	commentRE    = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
)

type paramKind int

const (
	paramValue paramKind = iota
	paramMem
	paramImage
	paramSampler
	paramLocal
)

type mockParam struct {
	name      string
	typeName  string
	address   uint32
	access    uint32
	qualifier Bitfield
	kind      paramKind
	size      int
}

type mockKernelDecl struct {
	name       string
	attributes string
	reqdSize   [3]int
	params     []mockParam
}

func parseKernels(src string) []*mockKernelDecl {
	src = commentRE.ReplaceAllString(src, " ")
	var decls []*mockKernelDecl
	for _, m := range kernelDeclRE.FindAllStringSubmatch(src, -1) {
		k := &mockKernelDecl{name: m[2], attributes: strings.TrimSpace(m[1])}
		if r := reqdSizeRE.FindStringSubmatch(m[1]); r != nil {
			for i := range k.reqdSize {
				k.reqdSize[i], _ = strconv.Atoi(r[i+1])
			}
		}
		params := strings.TrimSpace(m[3])
		if params != "" && params != "void" {
			for _, p := range strings.Split(params, ",") {
				k.params = append(k.params, parseParam(p))
			}
		}
		decls = append(decls, k)
	}
	return decls
}

func parseParam(decl string) mockParam {
	p := mockParam{
		address: KERNEL_ARG_ADDRESS_PRIVATE,
		access:  KERNEL_ARG_ACCESS_NONE,
	}
	fields := strings.Fields(strings.ReplaceAll(decl, "*", " * "))
	if len(fields) == 0 {
		return p
	}
	p.name = fields[len(fields)-1]
	var typeWords []string
	pointer := false
	for _, f := range fields[:len(fields)-1] {
		switch strings.TrimPrefix(f, "__") {
		case "global":
			p.address = KERNEL_ARG_ADDRESS_GLOBAL
		case "local":
			p.address = KERNEL_ARG_ADDRESS_LOCAL
		case "constant":
			p.address = KERNEL_ARG_ADDRESS_CONSTANT
		case "private":
			p.address = KERNEL_ARG_ADDRESS_PRIVATE
		case "read_only":
			p.access = KERNEL_ARG_ACCESS_READ_ONLY
		case "write_only":
			p.access = KERNEL_ARG_ACCESS_WRITE_ONLY
		case "read_write":
			p.access = KERNEL_ARG_ACCESS_READ_WRITE
		case "const":
			p.qualifier |= KERNEL_ARG_TYPE_CONST
		case "restrict":
			p.qualifier |= KERNEL_ARG_TYPE_RESTRICT
		case "volatile":
			p.qualifier |= KERNEL_ARG_TYPE_VOLATILE
		case "*":
			pointer = true
		default:
			typeWords = append(typeWords, f)
		}
	}
	base := strings.Join(typeWords, " ")
	p.typeName = base
	if pointer {
		p.typeName += "*"
	}

	switch {
	case pointer && p.address == KERNEL_ARG_ADDRESS_LOCAL:
		p.kind = paramLocal
	case pointer:
		p.kind = paramMem
		if p.address == KERNEL_ARG_ADDRESS_PRIVATE {
			p.address = KERNEL_ARG_ADDRESS_GLOBAL
		}
	case strings.HasPrefix(base, "image"):
		p.kind = paramImage
		p.address = KERNEL_ARG_ADDRESS_GLOBAL
		if p.access == KERNEL_ARG_ACCESS_NONE {
			p.access = KERNEL_ARG_ACCESS_READ_ONLY
		}
	case base == "sampler_t":
		p.kind = paramSampler
	default:
		p.kind = paramValue
		p.size = scalarSize(base)
	}
	if p.kind == paramValue || p.kind == paramSampler {
		p.qualifier &^= KERNEL_ARG_TYPE_RESTRICT
	}
	return p
}

var scalarSizes = map[string]int{
	"bool": 1, "char": 1, "uchar": 1, "unsigned char": 1,
	"short": 2, "ushort": 2, "unsigned short": 2, "half": 2,
	"int": 4, "uint": 4, "unsigned int": 4, "unsigned": 4, "float": 4,
	"long": 8, "ulong": 8, "unsigned long": 8, "double": 8,
	"size_t": 8, "ptrdiff_t": 8, "intptr_t": 8, "uintptr_t": 8,
}

var vectorRE = regexp.MustCompile(`^([a-z]+)(2|3|4|8|16)$`)

// scalarSize returns the size of a by-value argument type, or 0 when the
// size cannot be derived from the type name.
func scalarSize(typeName string) int {
	if s, ok := scalarSizes[typeName]; ok {
		return s
	}
	if m := vectorRE.FindStringSubmatch(typeName); m != nil {
		s, ok := scalarSizes[m[1]]
		if !ok {
			return 0
		}
		n, _ := strconv.Atoi(m[2])
		if n == 3 {
			n = 4
		}
		return s * n
	}
	return 0
}
