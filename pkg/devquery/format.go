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

package devquery

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/NVIDIA/clwrap/internal/cl"
)

// Formatter renders the raw value of a device information parameter,
// followed by units where the parameter has them.
type Formatter func(value []byte, units string) string

func withUnits(s string, units string) string {
	if units == "" {
		return s
	}
	return s + " " + units
}

// FormatUint formats a cl_uint.
func FormatUint(value []byte, units string) string {
	return withUnits(fmt.Sprintf("%d", cl.DecodeUint32(value)), units)
}

// FormatHex formats the value as a hexadecimal number, most significant
// byte first and without leading zero bytes.
func FormatHex(value []byte, units string) string {
	var sb strings.Builder
	sb.WriteString("0x")
	start := false
	for i := len(value) - 1; i >= 0; i-- {
		if value[i] != 0 {
			start = true
		}
		if start {
			fmt.Fprintf(&sb, "%02x", value[i])
		}
	}
	if !start {
		sb.WriteString("0")
	}
	return withUnits(sb.String(), units)
}

// FormatSizeT formats a size_t.
func FormatSizeT(value []byte, units string) string {
	return withUnits(fmt.Sprintf("%d", cl.DecodeUint64(value)), units)
}

// FormatBytes renders a byte quantity, scaled to KiB, MiB or GiB when
// large enough.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes < 1<<10:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < 1<<20:
		return fmt.Sprintf("%.1f KiB (%d bytes)", float64(bytes)/(1<<10), bytes)
	case bytes < 1<<30:
		return fmt.Sprintf("%.1f MiB (%d bytes)", float64(bytes)/(1<<20), bytes)
	}
	return fmt.Sprintf("%.1f GiB (%d bytes)", float64(bytes)/(1<<30), bytes)
}

func FormatUintBytes(value []byte, _ string) string {
	return FormatBytes(uint64(cl.DecodeUint32(value)))
}

func FormatUlongBytes(value []byte, _ string) string {
	return FormatBytes(cl.DecodeUint64(value))
}

func FormatSizeTBytes(value []byte, _ string) string {
	return FormatBytes(cl.DecodeUint64(value))
}

// FormatSizeTVec formats a vector of size_t as "(a, b, c)".
func FormatSizeTVec(value []byte, _ string) string {
	var parts []string
	for _, v := range cl.DecodeSizeTs(value) {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func FormatYesNo(value []byte, _ string) string {
	if cl.DecodeUint32(value) != 0 {
		return "Yes"
	}
	return "No"
}

func FormatString(value []byte, units string) string {
	return withUnits(cl.DecodeString(value), units)
}

// FormatPointer formats a handle or address.
func FormatPointer(value []byte, _ string) string {
	return fmt.Sprintf("0x%x", cl.DecodeUint64(value))
}

func FormatDeviceType(value []byte, _ string) string {
	return cl.DeviceType(cl.DecodeUint64(value)).String()
}

type flagName struct {
	flag cl.Bitfield
	name string
}

func formatFlags(v cl.Bitfield, names []flagName) string {
	var set []string
	for _, n := range names {
		if v&n.flag != 0 {
			set = append(set, n.name)
		}
	}
	return strings.Join(set, " ")
}

var fpConfigNames = []flagName{
	{cl.FP_DENORM, "DENORM"},
	{cl.FP_INF_NAN, "INF_NAN"},
	{cl.FP_ROUND_TO_NEAREST, "ROUND_TO_NEAREST"},
	{cl.FP_ROUND_TO_ZERO, "ROUND_TO_ZERO"},
	{cl.FP_ROUND_TO_INF, "ROUND_TO_INF"},
	{cl.FP_FMA, "FMA"},
	{cl.FP_SOFT_FLOAT, "SOFT_FLOAT"},
	{cl.FP_CORRECTLY_ROUNDED_DIVIDE_SQRT, "CORRECTLY_ROUNDED_DIVIDE_SQRT"},
}

// FormatFPConfig lists the floating-point capabilities set.
func FormatFPConfig(value []byte, _ string) string {
	return formatFlags(cl.Bitfield(cl.DecodeUint64(value)), fpConfigNames)
}

var execCapabilityNames = []flagName{
	{cl.EXEC_KERNEL, "KERNEL"},
	{cl.EXEC_NATIVE_KERNEL, "NATIVE_KERNEL"},
}

func FormatExecCapabilities(value []byte, _ string) string {
	return formatFlags(cl.Bitfield(cl.DecodeUint64(value)), execCapabilityNames)
}

func FormatLocalMemType(value []byte, _ string) string {
	switch cl.DecodeUint32(value) {
	case cl.LOCAL:
		return "LOCAL"
	case cl.GLOBAL:
		return "GLOBAL"
	case cl.NONE:
		return "NONE"
	}
	return "UNKNOWN"
}

func FormatCacheType(value []byte, _ string) string {
	switch cl.DecodeUint32(value) {
	case cl.READ_ONLY_CACHE:
		return "READ_ONLY"
	case cl.READ_WRITE_CACHE:
		return "READ_WRITE"
	case cl.NONE:
		return "NONE"
	}
	return "UNKNOWN"
}

var partitionPropertyNames = map[uint64]string{
	cl.DEVICE_PARTITION_EQUALLY:                "EQUALLY",
	cl.DEVICE_PARTITION_BY_COUNTS:              "BY_COUNTS",
	cl.DEVICE_PARTITION_BY_AFFINITY_DOMAIN:     "BY_AFFINITY_DOMAIN",
	cl.DEVICE_PARTITION_EQUALLY_EXT:            "EQUALLY_EXT",
	cl.DEVICE_PARTITION_BY_COUNTS_EXT:          "BY_COUNTS_EXT",
	cl.DEVICE_PARTITION_BY_NAMES_EXT:           "BY_NAMES_EXT",
	cl.DEVICE_PARTITION_BY_AFFINITY_DOMAIN_EXT: "BY_AFFINITY_DOMAIN_EXT",
}

var affinityDomainExtNames = map[uint64]string{
	cl.AFFINITY_DOMAIN_L1_CACHE_EXT:         "L1_CACHE_EXT",
	cl.AFFINITY_DOMAIN_L2_CACHE_EXT:         "L2_CACHE_EXT",
	cl.AFFINITY_DOMAIN_L3_CACHE_EXT:         "L3_CACHE_EXT",
	cl.AFFINITY_DOMAIN_L4_CACHE_EXT:         "L4_CACHE_EXT",
	cl.AFFINITY_DOMAIN_NUMA_EXT:             "NUMA_EXT",
	cl.AFFINITY_DOMAIN_NEXT_FISSIONABLE_EXT: "NEXT_FISSIONABLE_EXT",
}

// formatPropertyList names each element of a zero-terminated list of
// 64-bit properties.
func formatPropertyList(value []byte, names map[uint64]string) string {
	var set []string
	for i := 0; i+8 <= len(value); i += 8 {
		p := cl.DecodeUint64(value[i : i+8])
		if p == 0 {
			break
		}
		if name, ok := names[p]; ok {
			set = append(set, name)
			continue
		}
		set = append(set, fmt.Sprintf("UNKNOWN(0x%x)", p))
	}
	return strings.Join(set, " ")
}

func FormatPartitionProperties(value []byte, _ string) string {
	return formatPropertyList(value, partitionPropertyNames)
}

func FormatAffinityDomainsExt(value []byte, _ string) string {
	return formatPropertyList(value, affinityDomainExtNames)
}

var affinityDomainNames = []flagName{
	{cl.DEVICE_AFFINITY_DOMAIN_NUMA, "NUMA"},
	{cl.DEVICE_AFFINITY_DOMAIN_L4_CACHE, "L4_CACHE"},
	{cl.DEVICE_AFFINITY_DOMAIN_L3_CACHE, "L3_CACHE"},
	{cl.DEVICE_AFFINITY_DOMAIN_L2_CACHE, "L2_CACHE"},
	{cl.DEVICE_AFFINITY_DOMAIN_L1_CACHE, "L1_CACHE"},
	{cl.DEVICE_AFFINITY_DOMAIN_NEXT_PARTITIONABLE, "NEXT_PARTITIONABLE"},
}

func FormatAffinityDomain(value []byte, _ string) string {
	return formatFlags(cl.Bitfield(cl.DecodeUint64(value)), affinityDomainNames)
}

var queuePropertyNames = []flagName{
	{cl.Bitfield(cl.QUEUE_OUT_OF_ORDER_EXEC_MODE_ENABLE), "OUT_OF_ORDER_EXEC_MODE_ENABLE"},
	{cl.Bitfield(cl.QUEUE_PROFILING_ENABLE), "PROFILING_ENABLE"},
}

func FormatQueueProperties(value []byte, _ string) string {
	return formatFlags(cl.Bitfield(cl.DecodeUint64(value)), queuePropertyNames)
}

var svmCapabilityNames = []flagName{
	{cl.DEVICE_SVM_COARSE_GRAIN_BUFFER, "COARSE_GRAIN_BUFFER"},
	{cl.DEVICE_SVM_FINE_GRAIN_BUFFER, "FINE_GRAIN_BUFFER"},
	{cl.DEVICE_SVM_FINE_GRAIN_SYSTEM, "FINE_GRAIN_SYSTEM"},
	{cl.DEVICE_SVM_ATOMICS, "ATOMICS"},
}

func FormatSVMCapabilities(value []byte, _ string) string {
	return formatFlags(cl.Bitfield(cl.DecodeUint64(value)), svmCapabilityNames)
}

// FormatUUID formats a 16 byte UUID in its canonical form. Values of any
// other length are rendered as hexadecimal.
func FormatUUID(value []byte, units string) string {
	id, err := uuid.FromBytes(value)
	if err != nil {
		return FormatHex(value, units)
	}
	return id.String()
}
