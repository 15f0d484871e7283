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
	log "github.com/sirupsen/logrus"
)

// SuggestWorksizes suggests work sizes for running k on dev over a problem
// of real work-items per dimension. k may be nil, in which case only device
// limits are considered.
//
// On input, a nonzero lws[i] is the largest local size acceptable for
// dimension i. On output lws holds the suggested local sizes. When gws is
// not nil it receives global sizes rounded up to a multiple of lws;
// otherwise every lws[i] divides real[i].
func SuggestWorksizes(k *Kernel, dev *Device, dims int, real []int, gws []int, lws []int) error {
	if dims < 1 || len(real) < dims || len(lws) < dims || (gws != nil && len(gws) < dims) {
		return newError(CodeArgs, "invalid work size arguments for %d dimensions", dims)
	}
	for i := 0; i < dims; i++ {
		if real[i] < 1 {
			return newError(CodeArgs, "real work size of dimension %d must be positive, got %d", i, real[i])
		}
	}

	devDims, err := dev.MaxWorkItemDimensions()
	if err != nil {
		return err
	}
	if dims > int(devDims) {
		return newError(CodeUnsupportedOCL, "device only supports a max. of %d dimensions, but %d were requested", devDims, dims)
	}

	devSizes, err := dev.MaxWorkItemSizes()
	if err != nil {
		return err
	}
	maxSizes := make([]int, dims)
	for i := range maxSizes {
		maxSizes[i] = max(devSizes[i], 1)
		if lws[i] > 0 {
			maxSizes[i] = min(maxSizes[i], lws[i])
		}
	}

	wgMax, wgMult, err := workGroupLimits(k, dev)
	if err != nil {
		return err
	}

	wgSize := 1
	for i := 0; i < dims; i++ {
		lws[i] = min(wgMult, maxSizes[i])
		for lws[i] > real[i] {
			lws[i] /= 2
		}
		wgSize *= lws[i]
	}

	for wgSize > wgMax {
		prev := wgSize
		for i := dims - 1; i >= 0 && wgSize > wgMax; i-- {
			if lws[i] > 1 {
				wgSize = wgSize / lws[i] * (lws[i] / 2)
				lws[i] /= 2
			}
		}
		if wgSize == prev {
			return newError(CodeOther, "unable to determine a work size within the device limit (%d)", wgMax)
		}
	}

	if gws != nil {
		for i := 0; i < dims; i++ {
			gws[i] = (real[i] + lws[i] - 1) / lws[i] * lws[i]
		}
		return nil
	}

	divisors := true
	for i := 0; i < dims; i++ {
		if real[i]%lws[i] != 0 {
			divisors = false
		}
	}
	if divisors {
		return nil
	}

	wgSize = 1
	for i := 0; i < dims; i++ {
		if real[i]%lws[i] != 0 || lws[i]*wgSize > wgMax {
			best := 1
			for j := 2; j <= real[i]; j++ {
				if wgSize*j > wgMax || j > maxSizes[i] {
					break
				}
				if real[i]%j == 0 {
					best = j
				}
			}
			lws[i] = best
		}
		wgSize *= lws[i]
	}

	return nil
}

// workGroupLimits returns the maximum work-group size and the preferred
// work-group size multiple for k on dev, or for any kernel on dev when k is
// nil.
func workGroupLimits(k *Kernel, dev *Device) (int, int, error) {
	if k == nil {
		wgMax, err := dev.MaxWorkGroupSize()
		if err != nil {
			return 0, 0, err
		}
		wgMax = max(wgMax, 1)
		return wgMax, wgMax, nil
	}

	wgMax, err := infoSizeT(k.WorkGroupInfo(dev, cl.KERNEL_WORK_GROUP_SIZE))
	if err != nil {
		return 0, 0, err
	}
	wgMax = max(wgMax, 1)

	version, err := k.OpenCLVersion()
	if err != nil {
		return 0, 0, err
	}
	if version < 110 {
		return wgMax, wgMax, nil
	}

	wgMult, err := infoSizeT(k.WorkGroupInfo(dev, cl.KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE))
	if err != nil {
		return 0, 0, err
	}
	if wgMult < 1 {
		log.Debugf("Kernel %#x reports a preferred work-group size multiple of %d", k.handle, wgMult)
		wgMult = wgMax
	}
	return wgMax, wgMult, nil
}
