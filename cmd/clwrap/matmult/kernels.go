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
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/NVIDIA/clwrap/internal/cl"
)

const (
	// KernelAB computes C = A * B.
	KernelAB = "ab"
	// KernelAAT computes C = A * A^T.
	KernelAAT = "aat"
)

//go:embed matmult.cl
var Source string

var kernelFuncs = map[string]string{
	KernelAB:  "matmult_ab",
	KernelAAT: "matmult_aat",
}

// FunctionName returns the name of the device function implementing kernel.
func FunctionName(kernel string) (string, error) {
	name, exists := kernelFuncs[kernel]
	if !exists {
		return "", fmt.Errorf("unknown kernel: %v", kernel)
	}
	return name, nil
}

// RegisterKernels installs host implementations of the functions in Source
// on drv.
func RegisterKernels(drv *cl.MockDriver) {
	drv.RegisterKernel(kernelFuncs[KernelAB], matmultAB)
	drv.RegisterKernel(kernelFuncs[KernelAAT], matmultAAT)
}

// dims decodes an int2 argument holding (cols, rows).
func dims(a cl.MockArg) (int, int) {
	return int(a.Int32()), int(int32(binary.LittleEndian.Uint32(a.Value[4:])))
}

func matmultAB(wi *cl.MockWorkItem, args []cl.MockArg) {
	col, row := wi.GlobalID[0], wi.GlobalID[1]
	aCols, aRows := dims(args[3])
	bCols, _ := dims(args[4])
	if row >= aRows || col >= bCols {
		return
	}

	var sum int32
	for i := 0; i < aCols; i++ {
		sum += args[0].GetInt32(row*aCols+i) * args[1].GetInt32(i*bCols+col)
	}
	args[2].SetInt32(row*bCols+col, sum)
}

func matmultAAT(wi *cl.MockWorkItem, args []cl.MockArg) {
	col, row := wi.GlobalID[0], wi.GlobalID[1]
	aCols, aRows := dims(args[2])
	if row >= aRows || col >= aRows {
		return
	}

	var sum int32
	for i := 0; i < aCols; i++ {
		sum += args[0].GetInt32(row*aCols+i) * args[0].GetInt32(col*aCols+i)
	}
	args[1].SetInt32(row*aRows+col, sum)
}
