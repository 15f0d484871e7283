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

// Channels returns the number of channels of an image channel order, or 0
// for an unknown order.
func (o ChannelOrder) Channels() int {
	switch o {
	case R, A, INTENSITY, LUMINANCE:
		return 1
	case RG, RA:
		return 2
	case RGB:
		return 3
	case RGBA, BGRA, ARGB:
		return 4
	}
	return 0
}

// ChannelSize returns the size in bytes of a single channel, or 0 for
// packed and unknown types.
func (t ChannelType) ChannelSize() int {
	switch t {
	case SNORM_INT8, UNORM_INT8, SIGNED_INT8, UNSIGNED_INT8:
		return 1
	case SNORM_INT16, UNORM_INT16, SIGNED_INT16, UNSIGNED_INT16, HALF_FLOAT:
		return 2
	case SIGNED_INT32, UNSIGNED_INT32, FLOAT:
		return 4
	}
	return 0
}

// ElemSize returns the size in bytes of one image element, or 0 when the
// channel order and type cannot be combined.
func (f ImageFormat) ElemSize() int {
	switch f.ChannelType {
	case UNORM_SHORT_565, UNORM_SHORT_555:
		if f.ChannelOrder == RGB {
			return 2
		}
		return 0
	case UNORM_INT_101010:
		if f.ChannelOrder == RGB {
			return 4
		}
		return 0
	}
	if f.ChannelOrder == RGB {
		return 0
	}
	return f.ChannelOrder.Channels() * f.ChannelType.ChannelSize()
}
