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

package matmult

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
	"github.com/NVIDIA/clwrap/pkg/prof"
)

// Event names of the profiled commands.
const (
	EventWriteA = "Transfer matrix A to device"
	EventWriteB = "Transfer matrix B to device"
	EventKernel = "Kernel execution (Matmult)"
	EventReadC  = "Transfer matrix C to host"
)

// Config describes a multiplication.
type Config struct {
	Kernel string
	// Sizes are given as (cols, rows).
	ASize [2]int
	BSize [2]int
	// LWS holds the largest acceptable local work size per dimension.
	LWS             [2]int
	Range           [2]int
	Seed            uint64
	KernelFile      string
	CompilerOptions string
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Kernel: KernelAB,
		ASize:  [2]int{128, 256},
		BSize:  [2]int{16, 128},
		LWS:    [2]int{32, 16},
		Range:  [2]int{-100, 100},
	}
}

// CSize returns the (cols, rows) of the result matrix.
func (c *Config) CSize() [2]int {
	if c.Kernel == KernelAAT {
		return [2]int{c.ASize[1], c.ASize[1]}
	}
	return [2]int{c.BSize[0], c.ASize[1]}
}

func (c *Config) Check() error {
	if _, err := FunctionName(c.Kernel); err != nil {
		return err
	}
	for _, s := range [][2]int{c.ASize, c.BSize} {
		if s[0] < 1 || s[1] < 1 {
			return fmt.Errorf("matrix sizes must be positive, got %d,%d", s[0], s[1])
		}
	}
	if c.Kernel == KernelAB && c.ASize[0] != c.BSize[1] {
		return fmt.Errorf("number of columns in A (%d) must be equal to number of rows in B (%d)", c.ASize[0], c.BSize[1])
	}
	if c.LWS[0] < 0 || c.LWS[1] < 0 {
		return fmt.Errorf("local work sizes must not be negative, got %d,%d", c.LWS[0], c.LWS[1])
	}
	if c.Range[0] >= c.Range[1] {
		return fmt.Errorf("invalid range [%d, %d)", c.Range[0], c.Range[1])
	}
	return nil
}

// Matrix is a row-major matrix of 32-bit integers.
type Matrix struct {
	Cols int
	Rows int
	Data []int32
}

func NewMatrix(cols, rows int) *Matrix {
	return &Matrix{Cols: cols, Rows: rows, Data: make([]int32, cols*rows)}
}

// RandomMatrix fills a matrix with values in [lo, hi).
func RandomMatrix(r *rand.Rand, cols, rows, lo, hi int) *Matrix {
	m := NewMatrix(cols, rows)
	for i := range m.Data {
		m.Data[i] = int32(lo + r.IntN(hi-lo))
	}
	return m
}

func (m *Matrix) At(row, col int) int32 {
	return m.Data[row*m.Cols+col]
}

func (m *Matrix) Bytes() []byte {
	b := make([]byte, 4*len(m.Data))
	for i, v := range m.Data {
		binary.LittleEndian.PutUint32(b[4*i:], uint32(v))
	}
	return b
}

func (m *Matrix) SetBytes(b []byte) {
	for i := range m.Data {
		m.Data[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
	}
}

func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, len(m.Data))
	for i, v := range m.Data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.Rows, m.Cols, data)
}

// Result holds the outcome of a multiplication. Profile must be destroyed
// by the caller.
type Result struct {
	DeviceName   string
	DeviceVendor string
	PlatformName string

	GWS [2]int
	LWS [2]int
	// GlobalMem is the device memory used by the matrices, in bytes.
	GlobalMem int

	A *Matrix
	B *Matrix
	C *Matrix
	// Reference is C computed on the host.
	Reference *Matrix

	Profile  *prof.Profile
	HostTime time.Duration
	// Error is the sum of the absolute differences between C and Reference.
	Error int64
}

// SpeedUp returns how much faster the device was than the host.
func (r *Result) SpeedUp() float64 {
	device := r.Profile.Elapsed()
	if device == 0 {
		return 0
	}
	return r.HostTime.Seconds() / device.Seconds()
}

// Multiply runs the multiplication described by cfg on the first device
// selected by filters and checks it against a host computation.
func Multiply(drv cl.Interface, filters *ccl.Filters, cfg *Config) (*Result, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	funcName, _ := FunctionName(cfg.Kernel)

	ctx, err := ccl.NewContextFromFilters(drv, filters)
	if err != nil {
		return nil, fmt.Errorf("error creating context: %w", err)
	}
	defer ctx.Destroy()

	dev, err := ctx.Device(0)
	if err != nil {
		return nil, fmt.Errorf("error getting device: %w", err)
	}

	result := &Result{}
	if result.DeviceName, err = dev.Name(); err != nil {
		return nil, fmt.Errorf("error getting device name: %w", err)
	}
	if result.DeviceVendor, err = dev.Vendor(); err != nil {
		return nil, fmt.Errorf("error getting device vendor: %w", err)
	}
	platform, err := ctx.Platform()
	if err != nil {
		return nil, fmt.Errorf("error getting platform: %w", err)
	}
	if result.PlatformName, err = platform.Name(); err != nil {
		return nil, fmt.Errorf("error getting platform name: %w", err)
	}
	log.Debugf("Using device '%s' from platform '%s'", result.DeviceName, result.PlatformName)

	prg, err := newProgram(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer prg.Destroy()

	if err := prg.Build(cfg.CompilerOptions); err != nil {
		if buildLog, _ := prg.BuildLog(); buildLog != "" {
			log.Errorf("Build log:\n%s", buildLog)
		}
		return nil, fmt.Errorf("error building program: %w", err)
	}

	kernel, err := prg.GetKernel(funcName)
	if err != nil {
		return nil, fmt.Errorf("error getting kernel '%s': %w", funcName, err)
	}

	q, err := ccl.NewQueue(ctx, dev, cl.QUEUE_PROFILING_ENABLE)
	if err != nil {
		return nil, fmt.Errorf("error creating queue: %w", err)
	}
	defer q.Destroy()

	cSize := cfg.CSize()
	realSize := []int{cSize[0], cSize[1]}
	gws := make([]int, 2)
	lws := []int{cfg.LWS[0], cfg.LWS[1]}
	if err := ccl.SuggestWorksizes(kernel, dev, 2, realSize, gws, lws); err != nil {
		return nil, fmt.Errorf("error determining work sizes: %w", err)
	}
	result.GWS = [2]int{gws[0], gws[1]}
	result.LWS = [2]int{lws[0], lws[1]}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	result.A = RandomMatrix(r, cfg.ASize[0], cfg.ASize[1], cfg.Range[0], cfg.Range[1])
	if cfg.Kernel == KernelAB {
		result.B = RandomMatrix(r, cfg.BSize[0], cfg.BSize[1], cfg.Range[0], cfg.Range[1])
	}
	result.C = NewMatrix(cSize[0], cSize[1])

	result.Profile = prof.New()
	if err := runDevice(ctx, q, kernel, cfg, result); err != nil {
		result.Profile.Destroy()
		return nil, err
	}

	start := time.Now()
	result.Reference = reference(cfg, result.A, result.B)
	result.HostTime = time.Since(start)

	for i, v := range result.C.Data {
		diff := int64(v) - int64(result.Reference.Data[i])
		if diff < 0 {
			diff = -diff
		}
		result.Error += diff
	}

	return result, nil
}

func newProgram(ctx *ccl.Context, cfg *Config) (*ccl.Program, error) {
	if cfg.KernelFile != "" {
		prg, err := ccl.NewProgramFromFile(ctx, cfg.KernelFile)
		if err != nil {
			return nil, fmt.Errorf("error loading kernel file: %w", err)
		}
		return prg, nil
	}
	prg, err := ccl.NewProgramFromSource(ctx, Source)
	if err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}
	return prg, nil
}

func runDevice(ctx *ccl.Context, q *ccl.Queue, kernel *ccl.Kernel, cfg *Config, result *Result) error {
	p := result.Profile
	p.Start()

	aBytes := result.A.Bytes()
	aDev, err := ccl.NewBuffer(ctx, cl.MEM_READ_ONLY, len(aBytes), nil)
	if err != nil {
		return fmt.Errorf("error creating device buffer for matrix A: %w", err)
	}
	defer aDev.Destroy()
	result.GlobalMem = len(aBytes)

	cBytes := make([]byte, 4*len(result.C.Data))
	cDev, err := ccl.NewBuffer(ctx, cl.MEM_WRITE_ONLY, len(cBytes), nil)
	if err != nil {
		return fmt.Errorf("error creating device buffer for matrix C: %w", err)
	}
	defer cDev.Destroy()
	result.GlobalMem += len(cBytes)

	e, err := aDev.EnqueueWrite(q, true, 0, len(aBytes), aBytes, nil)
	if err != nil {
		return fmt.Errorf("error writing matrix A: %w", err)
	}
	e.SetName(EventWriteA)

	dimA := ccl.ArgPriv([2]int32{int32(cfg.ASize[0]), int32(cfg.ASize[1])})
	args := []ccl.Arg{aDev}

	if cfg.Kernel == KernelAB {
		bBytes := result.B.Bytes()
		bDev, err := ccl.NewBuffer(ctx, cl.MEM_READ_ONLY, len(bBytes), nil)
		if err != nil {
			return fmt.Errorf("error creating device buffer for matrix B: %w", err)
		}
		defer bDev.Destroy()
		result.GlobalMem += len(bBytes)

		e, err := bDev.EnqueueWrite(q, true, 0, len(bBytes), bBytes, nil)
		if err != nil {
			return fmt.Errorf("error writing matrix B: %w", err)
		}
		e.SetName(EventWriteB)

		dimB := ccl.ArgPriv([2]int32{int32(cfg.BSize[0]), int32(cfg.BSize[1])})
		args = append(args, bDev, cDev, dimA, dimB)
	} else {
		args = append(args, cDev, dimA)
	}

	gws := []int{result.GWS[0], result.GWS[1]}
	lws := []int{result.LWS[0], result.LWS[1]}
	e, err = kernel.SetArgsAndEnqueueNDRangeV(q, 2, nil, gws, lws, nil, args)
	if err != nil {
		return fmt.Errorf("error running kernel: %w", err)
	}
	e.SetName(EventKernel)

	e, err = cDev.EnqueueRead(q, true, 0, len(cBytes), cBytes, nil)
	if err != nil {
		return fmt.Errorf("error reading matrix C: %w", err)
	}
	e.SetName(EventReadC)

	if err := q.Finish(); err != nil {
		return fmt.Errorf("error waiting for queue: %w", err)
	}
	p.Stop()
	result.C.SetBytes(cBytes)

	if err := p.AddQueue("Main", q); err != nil {
		return fmt.Errorf("error adding queue to profile: %w", err)
	}
	if err := p.Calc(); err != nil {
		return fmt.Errorf("error calculating profile: %w", err)
	}
	return nil
}

// reference computes the expected result on the host.
func reference(cfg *Config, a, b *Matrix) *Matrix {
	ad := a.Dense()
	var cd mat.Dense
	if cfg.Kernel == KernelAAT {
		cd.Mul(ad, ad.T())
	} else {
		cd.Mul(ad, b.Dense())
	}

	rows, cols := cd.Dims()
	c := NewMatrix(cols, rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c.Data[row*cols+col] = int32(cd.At(row, col))
		}
	}
	return c
}
