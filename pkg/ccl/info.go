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

// Info is an immutable value returned by a driver info query.
type Info struct {
	value []byte
}

// infoKey identifies a cached Info. secondary is set for queries that take a
// second object, such as build info per device.
type infoKey struct {
	param     uint32
	secondary cl.Handle
}

// infoQuery follows the size-probe protocol of the driver info functions.
type infoQuery func(value []byte) (int, cl.Return)

// Value returns the raw bytes of the info value. They must not be modified.
func (i *Info) Value() []byte {
	return i.value
}

func (i *Info) Size() int {
	return len(i.value)
}

func (i *Info) Uint32() uint32 {
	return cl.DecodeUint32(i.value)
}

func (i *Info) Int32() int32 {
	return int32(cl.DecodeUint32(i.value))
}

func (i *Info) Uint64() uint64 {
	return cl.DecodeUint64(i.value)
}

func (i *Info) SizeT() int {
	return int(cl.DecodeUint64(i.value))
}

func (i *Info) SizeTs() []int {
	return cl.DecodeSizeTs(i.value)
}

func (i *Info) Bool() bool {
	return cl.DecodeUint32(i.value) != 0
}

func (i *Info) String() string {
	return cl.DecodeString(i.value)
}

func (i *Info) Handle() cl.Handle {
	return cl.Handle(cl.DecodeUint64(i.value))
}

func (i *Info) Handles() []cl.Handle {
	return cl.DecodeHandles(i.value)
}

// getInfo returns the value of an info parameter. With useCache false any
// cached value is dropped and the driver is queried again. Failed queries
// are never cached.
func (w *wrapper) getInfo(key infoKey, query infoQuery, useCache bool) (*Info, error) {
	if w.info == nil {
		w.info = make(map[infoKey]*Info)
	}

	if !useCache {
		delete(w.info, key)
	} else if info, exists := w.info[key]; exists {
		return info, nil
	}

	size, ret := query(nil)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to get size of info parameter 0x%X of object %#x", key.param, w.handle)
	}
	if size == 0 {
		// The driver may report an empty value this way; it is still
		// treated as unavailable.
		log.Debugf("Info parameter 0x%X of object %#x has size 0", key.param, w.handle)
		return nil, newError(CodeInfoUnavailable, "info parameter 0x%X of object %#x is not available", key.param, w.handle)
	}

	value := make([]byte, size)
	if _, ret := query(value); ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to get info parameter 0x%X of object %#x", key.param, w.handle)
	}

	info := &Info{value}
	w.info[key] = info
	return info, nil
}

func infoString(info *Info, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return info.String(), nil
}

func infoUint32(info *Info, err error) (uint32, error) {
	if err != nil {
		return 0, err
	}
	return info.Uint32(), nil
}

func infoUint64(info *Info, err error) (uint64, error) {
	if err != nil {
		return 0, err
	}
	return info.Uint64(), nil
}

func infoSizeT(info *Info, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return info.SizeT(), nil
}

func infoSizeTs(info *Info, err error) ([]int, error) {
	if err != nil {
		return nil, err
	}
	return info.SizeTs(), nil
}

func infoBool(info *Info, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return info.Bool(), nil
}

func infoHandle(info *Info, err error) (cl.Handle, error) {
	if err != nil {
		return 0, err
	}
	return info.Handle(), nil
}

func infoHandles(info *Info, err error) ([]cl.Handle, error) {
	if err != nil {
		return nil, err
	}
	return info.Handles(), nil
}
