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

// Image wraps a driver image.
type Image struct {
	memObject
	format *cl.ImageFormat
}

var _ MemObject = (*Image)(nil)

func wrapImage(drv cl.Interface, h cl.Handle) *Image {
	return wrap(drv, h, func() *Image { return &Image{} })
}

// WrapImage adopts an image created directly through the driver.
func WrapImage(drv cl.Interface, h cl.Handle) *Image {
	return wrapImage(drv, h)
}

// NewImage creates an image described by format and desc.
func NewImage(ctx *Context, flags cl.MemFlags, format cl.ImageFormat, desc cl.ImageDesc, host []byte) (*Image, error) {
	if ret := checkHostFlags(flags, host); ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create image: invalid host memory flags")
	}

	h, ret := ctx.drv.CreateImage(ctx.handle, flags, format, desc, host)
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to create image")
	}

	img := wrapImage(ctx.drv, h)
	img.format = &format

	return img, nil
}

func (img *Image) releaseFields() {}

func (img *Image) Destroy() error {
	_, err := unref(img)
	return err
}

func (img *Image) imageQuery(param cl.ImageInfo) infoQuery {
	return func(value []byte) (int, cl.Return) {
		return img.drv.GetImageInfo(img.handle, param, value)
	}
}

// ImageInfo returns the value of an image specific info parameter. Image
// selectors share the cache with memory object selectors, which never
// overlap them.
func (img *Image) ImageInfo(param cl.ImageInfo) (*Info, error) {
	return img.getInfo(infoKey{param: uint32(param)}, img.imageQuery(param), true)
}

// Format returns the channel order and type of the image.
func (img *Image) Format() (cl.ImageFormat, error) {
	if img.format != nil {
		return *img.format, nil
	}
	info, err := img.ImageInfo(cl.IMAGE_FORMAT)
	if err != nil {
		return cl.ImageFormat{}, err
	}
	if info.Size() < 8 {
		return cl.ImageFormat{}, newError(CodeInvalidData, "unexpected image format size %d", info.Size())
	}
	format := cl.ImageFormat{
		ChannelOrder: cl.ChannelOrder(cl.DecodeUint32(info.Value()[0:4])),
		ChannelType:  cl.ChannelType(cl.DecodeUint32(info.Value()[4:8])),
	}
	img.format = &format
	return format, nil
}

// ElemSize returns the size in bytes of one image element, derived from the
// channel order and channel type.
func (img *Image) ElemSize() (int, error) {
	format, err := img.Format()
	if err != nil {
		return 0, err
	}
	size := format.ElemSize()
	if size == 0 {
		return 0, newError(CodeInvalidData, "unknown element size for image format %+v", format)
	}
	return size, nil
}

func (img *Image) Width() (int, error) {
	return infoSizeT(img.ImageInfo(cl.IMAGE_WIDTH))
}

func (img *Image) Height() (int, error) {
	return infoSizeT(img.ImageInfo(cl.IMAGE_HEIGHT))
}

func (img *Image) Depth() (int, error) {
	return infoSizeT(img.ImageInfo(cl.IMAGE_DEPTH))
}

func (img *Image) RowPitch() (int, error) {
	return infoSizeT(img.ImageInfo(cl.IMAGE_ROW_PITCH))
}

// EnqueueRead copies region at origin into host. Zero pitches are computed
// from the region.
func (img *Image) EnqueueRead(q *Queue, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, wl *EventWaitList) (*Event, error) {
	h, ret := img.drv.EnqueueReadImage(q.handle, img.handle, blocking, origin, region, rowPitch, slicePitch, host, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue image read")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}

// EnqueueWrite copies host into region at origin.
func (img *Image) EnqueueWrite(q *Queue, blocking bool, origin [3]int, region [3]int, rowPitch int, slicePitch int, host []byte, wl *EventWaitList) (*Event, error) {
	h, ret := img.drv.EnqueueWriteImage(q.handle, img.handle, blocking, origin, region, rowPitch, slicePitch, host, wl.Handles())
	if ret != cl.SUCCESS {
		return nil, driverError(ret, "unable to enqueue image write")
	}
	wl.Clear()
	return q.ProduceEvent(h), nil
}
