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

// Package devquery maps device information parameter names to their
// selectors, descriptions and value formatters.
package devquery

import (
	"slices"
	"sort"
	"strings"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

// Param describes a device information parameter.
type Param struct {
	// Name is the selector name without the CL_DEVICE_ or CL_ prefix.
	Name        string
	Selector    cl.DeviceInfo
	Description string
	Format      Formatter
	Units       string
}

// FormatValue renders value with the formatter and units of the parameter.
func (p *Param) FormatValue(value []byte) string {
	return p.Format(value, p.Units)
}

// Query reads the parameter from dev and formats it.
func (p *Param) Query(dev *ccl.Device) (string, error) {
	info, err := dev.GetInfo(p.Selector)
	if err != nil {
		return "", err
	}
	return p.FormatValue(info.Value()), nil
}

// Catalog returns every known parameter, sorted by name.
func Catalog() []Param {
	return append([]Param(nil), catalog...)
}

// NormalizeName converts names such as "cl_device_endian_little" or
// "endian_little" to the form used in the catalog.
func NormalizeName(name string) string {
	upper := strings.ToUpper(name)
	if s, ok := strings.CutPrefix(upper, "CL_DEVICE_"); ok {
		return s
	}
	if s, ok := strings.CutPrefix(upper, "CL_"); ok {
		return s
	}
	return upper
}

// Lookup returns a copy of the parameter with the given name, or nil.
func Lookup(name string) *Param {
	name = NormalizeName(name)
	i := sort.Search(len(catalog), func(i int) bool {
		return catalog[i].Name >= name
	})
	if i < len(catalog) && catalog[i].Name == name {
		p := catalog[i]
		return &p
	}
	return nil
}

// Name returns the selector of the parameter with the given name.
func Name(name string) (cl.DeviceInfo, bool) {
	p := Lookup(name)
	if p == nil {
		return 0, false
	}
	return p.Selector, true
}

// Prefix returns a copy of the contiguous run of parameters whose names
// start with prefix, or nil when there are none.
func Prefix(prefix string) []Param {
	prefix = NormalizeName(prefix)
	start := sort.Search(len(catalog), func(i int) bool {
		return catalog[i].Name >= prefix
	})
	end := start
	for end < len(catalog) && strings.HasPrefix(catalog[end].Name, prefix) {
		end++
	}
	if end == start {
		return nil
	}
	return slices.Clone(catalog[start:end])
}

// Match returns a copy of the next parameter at or after *idx whose name contains
// substr, ignoring case, and advances *idx past it. It returns nil once the
// catalog is exhausted.
//
//	i := 0
//	for p := devquery.Match("mem", &i); p != nil; p = devquery.Match("mem", &i) {
//	}
func Match(substr string, idx *int) *Param {
	substr = strings.ToUpper(substr)
	for ; *idx < len(catalog); *idx++ {
		if strings.Contains(catalog[*idx].Name, substr) {
			p := catalog[*idx]
			*idx++
			return &p
		}
	}
	return nil
}
