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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NVIDIA/clwrap/internal/cl"
)

// MenuOptions controls the interactive selection performed by DepMenu and
// DepPlatform.
type MenuOptions struct {
	// Index preselects an entry. When nil or negative the user is asked.
	Index *int
	// In defaults to os.Stdin and Out to os.Stdout.
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

type menuKind struct {
	noun    string
	title   string
	prompt  string
	missing string
}

var deviceMenu = menuKind{
	noun:    "device",
	title:   "\nList of available OpenCL devices:\n",
	prompt:  "\n (?) Select device (0-%d) > ",
	missing: "\n   (!) No device at index %d!\n",
}

var platformMenu = menuKind{
	noun:    "platform",
	title:   "\nList of available OpenCL platforms:\n",
	prompt:  "\n (?) Select platform (0-%d) > ",
	missing: "\n   (!) No platform at index %d!\n",
}

func (o *MenuOptions) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// lineReader keeps a single buffered reader so that consecutive menus
// sharing the options do not lose buffered input.
func (o *MenuOptions) lineReader() *bufio.Reader {
	if o.reader == nil {
		in := o.In
		if in == nil {
			in = os.Stdin
		}
		o.reader = bufio.NewReader(in)
	}
	return o.reader
}

func (o *MenuOptions) list(items []string, selected int) {
	w := o.out()
	fmt.Fprintf(w, "\n")
	for i, item := range items {
		marker := "   "
		if i == selected {
			marker = "(*)"
		}
		fmt.Fprintf(w, " %s %s\n", marker, item)
	}
}

func (o *MenuOptions) query(kind menuKind, items []string) (int, error) {
	w := o.out()
	fmt.Fprint(w, kind.title)
	o.list(items, -1)

	if len(items) == 1 {
		return 0, nil
	}

	r := o.lineReader()
	for {
		fmt.Fprintf(w, kind.prompt, len(items)-1)
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			return -1, newError(CodeInvalidData, "unable to read %s selection: %v", kind.noun, err)
		}

		var index int
		if _, serr := fmt.Sscanf(strings.TrimSpace(line), "%d", &index); serr == nil && index >= 0 && index < len(items) {
			return index, nil
		}
		fmt.Fprintf(w, " (!) Invalid choice, please insert a value between 0 and %d.\n", len(items)-1)

		if err != nil {
			return -1, newError(CodeInvalidData, "unable to read %s selection: %v", kind.noun, err)
		}
	}
}

// choose returns the index of the selected item.
func (o *MenuOptions) choose(kind menuKind, items []string) (int, error) {
	if len(items) == 0 {
		return -1, newError(CodeDeviceNotFound, "no %s to select from", kind.noun)
	}

	if o.Index != nil {
		index := *o.Index
		if index >= 0 && index < len(items) {
			o.list(items, index)
			return index, nil
		}
		if index >= 0 {
			fmt.Fprintf(o.out(), kind.missing, index)
		}
	}

	return o.query(kind, items)
}

// deviceStrings describes each device as "<index>. <name> [<platform>]".
func deviceStrings(devices []*Device) ([]string, error) {
	strs := make([]string, len(devices))
	for i, d := range devices {
		name, err := d.Name()
		if err != nil {
			return nil, err
		}
		platformName, err := devicePlatformName(d)
		if err != nil {
			return nil, err
		}
		strs[i] = fmt.Sprintf("%d. %s [%s]", i, name, platformName)
	}
	return strs, nil
}

// DeviceStrings describes every device available on drv.
func DeviceStrings(drv cl.Interface) ([]string, error) {
	devices, err := allDevices(drv)
	if err != nil {
		return nil, err
	}
	defer DestroyDevices(devices)

	return deviceStrings(devices)
}

// PrintDeviceStrings writes the description of every device available on
// drv to w, one per line.
func PrintDeviceStrings(drv cl.Interface, w io.Writer) error {
	strs, err := DeviceStrings(drv)
	if err != nil {
		return err
	}
	for _, s := range strs {
		if _, err := fmt.Fprintf(w, "%s\n", s); err != nil {
			return newError(CodeStreamWrite, "unable to write device strings: %v", err)
		}
	}
	return nil
}
