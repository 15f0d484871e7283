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
	"github.com/NVIDIA/clwrap/internal/cl"
)

// Sampler wraps a driver sampler. Samplers can be passed directly as kernel
// arguments.
type Sampler struct {
	wrapper
}

var _ Arg = (*Sampler)(nil)

func wrapSampler(drv cl.Interface, h cl.Handle) *Sampler {
	return wrap(drv, h, func() *Sampler { return &Sampler{} })
}

// WrapSampler adopts a sampler created directly through the driver.
func WrapSampler(drv cl.Interface, h cl.Handle) *Sampler {
	return wrapSampler(drv, h)
}

func NewSampler(ctx *Context, normalized bool, addressing cl.AddressingMode, filter cl.FilterMode) (*Sampler, error) {
	h, ret := ctx.drv.CreateSampler(ctx.handle, normalized, addressing, filter)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create sampler")
	}
	return wrapSampler(ctx.drv, h), nil
}

// NewSamplerWithProperties creates a sampler from a property list. Missing
// properties take the driver defaults.
func NewSamplerWithProperties(ctx *Context, properties []cl.SamplerProperty) (*Sampler, error) {
	h, ret := ctx.drv.CreateSamplerWithProperties(ctx.handle, properties)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create sampler with properties")
	}
	return wrapSampler(ctx.drv, h), nil
}

func (s *Sampler) releaseDriver() cl.Return {
	return s.drv.ReleaseSampler(s.handle)
}

func (s *Sampler) releaseFields() {}

func (s *Sampler) Destroy() error {
	_, err := unref(s)
	return err
}

func (s *Sampler) argSize() int {
	return cl.HandleSize
}

func (s *Sampler) argValue() []byte {
	return cl.EncodeHandles(s.handle)
}

func (s *Sampler) query(param cl.SamplerInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return s.drv.GetSamplerInfo(s.handle, param, value)
	}
}

func (s *Sampler) GetInfo(param cl.SamplerInfo) (*Info, error) {
	return s.getInfo(infoKey{param: uint32(param)}, s.query(param), true)
}

func (s *Sampler) NormalizedCoords() (bool, error) {
	return infoBool(s.GetInfo(cl.SAMPLER_NORMALIZED_COORDS))
}

func (s *Sampler) AddressingMode() (cl.AddressingMode, error) {
	mode, err := infoUint32(s.GetInfo(cl.SAMPLER_ADDRESSING_MODE))
	return cl.AddressingMode(mode), err
}

func (s *Sampler) FilterMode() (cl.FilterMode, error) {
	mode, err := infoUint32(s.GetInfo(cl.SAMPLER_FILTER_MODE))
	return cl.FilterMode(mode), err
}
