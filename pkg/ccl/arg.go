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
	"encoding/binary"
	"fmt"
)

// Arg is a kernel argument. Buffers, images and samplers implement Arg
// directly.
type Arg interface {
	// argSize is the size passed to the driver arg setter.
	argSize() int
	// argValue is the value passed to the driver arg setter. A nil value
	// requests local memory of argSize bytes.
	argValue() []byte
}

// ArgValue is a by-value or local memory kernel argument.
type ArgValue struct {
	value []byte
	size  int
}

type skipArg struct{}

// ArgSkip leaves the argument at its position untouched when passed to
// Kernel.SetArgs.
var ArgSkip Arg = skipArg{}

func (skipArg) argSize() int     { return 0 }
func (skipArg) argValue() []byte { return nil }

func (a *ArgValue) argSize() int {
	return a.size
}

func (a *ArgValue) argValue() []byte {
	return a.value
}

// Size returns the size in bytes of the argument.
func (a *ArgValue) Size() int {
	return a.size
}

// ArgPriv captures a private kernel argument. v must be a fixed-size value,
// such as an int32, a float32 or an array or struct of them; it is encoded
// little-endian. Passing any other value panics.
func ArgPriv(v interface{}) *ArgValue {
	value, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		panic(fmt.Sprintf("invalid private kernel argument of type %T: %v", v, err))
	}
	return &ArgValue{value: value, size: len(value)}
}

// ArgFull creates an argument from raw bytes. A nil value requests size
// bytes of local memory.
func ArgFull(value []byte, size int) *ArgValue {
	if value != nil {
		value = append([]byte(nil), value[:size]...)
	}
	return &ArgValue{value: value, size: size}
}

// ArgLocal requests local memory for n elements of elemSize bytes each.
func ArgLocal(n int, elemSize int) *ArgValue {
	return &ArgValue{size: n * elemSize}
}
