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
	"encoding/binary"
)

// Info buffers hold scalars in little-endian order. Strings are NUL
// terminated, booleans are 32-bit, size_t and bitfields are 64-bit.

// SizeTSize is the size in bytes of a size_t value in an info buffer.
const SizeTSize = 8

func EncodeUint32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func EncodeInt32(v int32) []byte {
	return EncodeUint32(uint32(v))
}

func EncodeUint64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func EncodeBool(v bool) []byte {
	if v {
		return EncodeUint32(1)
	}
	return EncodeUint32(0)
}

func EncodeString(s string) []byte {
	return append([]byte(s), 0)
}

func EncodeSizeTs(vs ...int) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint64(b, uint64(v))
	}
	return b
}

func EncodeUint64s(vs ...uint64) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint64(b, v)
	}
	return b
}

func EncodeHandles(hs ...Handle) []byte {
	var b []byte
	for _, h := range hs {
		b = binary.LittleEndian.AppendUint64(b, uint64(h))
	}
	return b
}

func DecodeUint32(b []byte) uint32 {
	if len(b) < 4 {
		var padded [4]byte
		copy(padded[:], b)
		return binary.LittleEndian.Uint32(padded[:])
	}
	return binary.LittleEndian.Uint32(b)
}

func DecodeUint64(b []byte) uint64 {
	if len(b) < 8 {
		var padded [8]byte
		copy(padded[:], b)
		return binary.LittleEndian.Uint64(padded[:])
	}
	return binary.LittleEndian.Uint64(b)
}

func DecodeString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func DecodeSizeTs(b []byte) []int {
	vs := make([]int, 0, len(b)/SizeTSize)
	for i := 0; i+SizeTSize <= len(b); i += SizeTSize {
		vs = append(vs, int(binary.LittleEndian.Uint64(b[i:])))
	}
	return vs
}

func DecodeHandles(b []byte) []Handle {
	hs := make([]Handle, 0, len(b)/HandleSize)
	for i := 0; i+HandleSize <= len(b); i += HandleSize {
		hs = append(hs, Handle(binary.LittleEndian.Uint64(b[i:])))
	}
	return hs
}

// CopyInfo implements the size-probe protocol for a fully encoded value.
func CopyInfo(data []byte, value []byte) (int, Return) {
	if value == nil {
		return len(data), SUCCESS
	}
	if len(value) < len(data) {
		return 0, INVALID_VALUE
	}
	copy(value, data)
	return len(data), SUCCESS
}
