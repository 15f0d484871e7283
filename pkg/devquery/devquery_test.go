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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clwrap/internal/cl"
	"github.com/NVIDIA/clwrap/pkg/ccl"
)

func TestCatalogSorted(t *testing.T) {
	params := Catalog()
	require.Greater(t, len(params), 120)
	for i := 1; i < len(params); i++ {
		require.Less(t, params[i-1].Name, params[i].Name)
	}
	for _, p := range params {
		require.NotNil(t, p.Format, p.Name)
		require.NotEmpty(t, p.Description, p.Name)
	}

	params[0].Name = "changed"
	require.Equal(t, "ADDRESS_BITS", Catalog()[0].Name)
}

func TestName(t *testing.T) {
	testCases := []struct {
		description string
		name        string
		expected    cl.DeviceInfo
		found       bool
	}{
		{"full name", "CL_DEVICE_ENDIAN_LITTLE", cl.DEVICE_ENDIAN_LITTLE, true},
		{"short name", "ENDIAN_LITTLE", cl.DEVICE_ENDIAN_LITTLE, true},
		{"lower case", "endian_little", cl.DEVICE_ENDIAN_LITTLE, true},
		{"lower case full name", "cl_device_max_work_item_sizes", cl.DEVICE_MAX_WORK_ITEM_SIZES, true},
		{"driver prefix", "CL_DRIVER_VERSION", cl.DRIVER_VERSION, true},
		{"first entry", "address_bits", cl.DEVICE_ADDRESS_BITS, true},
		{"last entry", "WAVEFRONT_WIDTH_AMD", cl.DEVICE_WAVEFRONT_WIDTH_AMD, true},
		{"vendor extension", "cl_device_uuid_khr", cl.DEVICE_UUID_KHR, true},
		{"unknown", "FLUX_CAPACITY", 0, false},
		{"prefix only", "MAX_WORK", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			selector, found := Name(tc.name)
			require.Equal(t, tc.found, found)
			require.Equal(t, tc.expected, selector)
		})
	}
}

func TestPrefix(t *testing.T) {
	testCases := []struct {
		prefix   string
		expected []string
	}{
		{
			"MAX_WORK",
			[]string{"MAX_WORK_GROUP_SIZE", "MAX_WORK_ITEM_DIMENSIONS", "MAX_WORK_ITEM_SIZES"},
		},
		{
			"cl_device_image3d",
			[]string{"IMAGE3D_MAX_DEPTH", "IMAGE3D_MAX_HEIGHT", "IMAGE3D_MAX_WIDTH"},
		},
		{
			"vendor",
			[]string{"VENDOR", "VENDOR_ID"},
		},
		{
			"wavefront_width_amd",
			[]string{"WAVEFRONT_WIDTH_AMD"},
		},
		{
			"ZZZ",
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("prefix %q", tc.prefix), func(t *testing.T) {
			var names []string
			for _, p := range Prefix(tc.prefix) {
				names = append(names, p.Name)
			}
			require.Equal(t, tc.expected, names)
		})
	}

	require.Len(t, Prefix("PREFERRED_VECTOR_WIDTH"), 7)
}

func TestMatch(t *testing.T) {
	expected := 0
	for _, p := range Catalog() {
		if strings.Contains(p.Name, "MEM") {
			expected++
		}
	}
	require.Greater(t, expected, 10)

	var matched []string
	i := 0
	for p := Match("mem", &i); p != nil; p = Match("mem", &i) {
		require.Contains(t, p.Name, "MEM")
		matched = append(matched, p.Name)
	}
	require.Len(t, matched, expected)
	require.Equal(t, "EXT_MEM_PADDING_IN_BYTES_QCOM", matched[0])
	require.Nil(t, Match("mem", &i))

	i = 0
	require.Nil(t, Match("nothing like this", &i))
}

func TestFormatters(t *testing.T) {
	testCases := []struct {
		description string
		format      Formatter
		value       []byte
		units       string
		expected    string
	}{
		{"uint", FormatUint, cl.EncodeUint32(64), "bits", "64 bits"},
		{"uint without units", FormatUint, cl.EncodeUint32(9), "", "9"},
		{"hex", FormatHex, cl.EncodeUint32(0x10DE), "", "0x10de"},
		{"hex with units", FormatHex, []byte{0x01, 0x00, 0xff}, "px", "0xff0001 px"},
		{"hex zero", FormatHex, cl.EncodeUint32(0), "", "0x0"},
		{"size_t", FormatSizeT, cl.EncodeSizeTs(16384), "px", "16384 px"},
		{"bytes", FormatUintBytes, cl.EncodeUint32(128), "", "128 bytes"},
		{"kibibytes", FormatUlongBytes, cl.EncodeUint64(48 << 10), "", "48.0 KiB (49152 bytes)"},
		{"mebibytes", FormatSizeTBytes, cl.EncodeSizeTs(1<<20 + 1<<19), "", "1.5 MiB (1572864 bytes)"},
		{"gibibytes", FormatUlongBytes, cl.EncodeUint64(4 << 30), "", "4.0 GiB (4294967296 bytes)"},
		{"size_t vector", FormatSizeTVec, cl.EncodeSizeTs(1024, 1024, 64), "", "(1024, 1024, 64)"},
		{"yes", FormatYesNo, cl.EncodeBool(true), "", "Yes"},
		{"no", FormatYesNo, cl.EncodeBool(false), "", "No"},
		{"string", FormatString, cl.EncodeString("OpenCL C 1.2"), "", "OpenCL C 1.2"},
		{"pointer", FormatPointer, cl.EncodeHandles(0x2a), "", "0x2a"},
		{"device type", FormatDeviceType, cl.EncodeUint64(uint64(cl.DEVICE_TYPE_GPU)), "", "GPU"},
		{
			"fp config",
			FormatFPConfig,
			cl.EncodeUint64(uint64(cl.FP_DENORM | cl.FP_INF_NAN | cl.FP_FMA)),
			"",
			"DENORM INF_NAN FMA",
		},
		{
			"execution capabilities",
			FormatExecCapabilities,
			cl.EncodeUint64(uint64(cl.EXEC_KERNEL | cl.EXEC_NATIVE_KERNEL)),
			"",
			"KERNEL NATIVE_KERNEL",
		},
		{"local memory", FormatLocalMemType, cl.EncodeUint32(cl.LOCAL), "", "LOCAL"},
		{"global local memory", FormatLocalMemType, cl.EncodeUint32(cl.GLOBAL), "", "GLOBAL"},
		{"cache type", FormatCacheType, cl.EncodeUint32(cl.READ_WRITE_CACHE), "", "READ_WRITE"},
		{"no cache", FormatCacheType, cl.EncodeUint32(cl.NONE), "", "NONE"},
		{
			"partition properties",
			FormatPartitionProperties,
			cl.EncodeUint64s(cl.DEVICE_PARTITION_EQUALLY, cl.DEVICE_PARTITION_BY_COUNTS_EXT, 0x77),
			"",
			"EQUALLY BY_COUNTS_EXT UNKNOWN(0x77)",
		},
		{
			"partition properties terminated",
			FormatPartitionProperties,
			cl.EncodeUint64s(cl.DEVICE_PARTITION_BY_COUNTS, 0, cl.DEVICE_PARTITION_EQUALLY),
			"",
			"BY_COUNTS",
		},
		{
			"affinity domain",
			FormatAffinityDomain,
			cl.EncodeUint64(uint64(cl.DEVICE_AFFINITY_DOMAIN_NUMA | cl.DEVICE_AFFINITY_DOMAIN_L2_CACHE)),
			"",
			"NUMA L2_CACHE",
		},
		{
			"affinity domains ext",
			FormatAffinityDomainsExt,
			cl.EncodeUint64s(cl.AFFINITY_DOMAIN_L1_CACHE_EXT, cl.AFFINITY_DOMAIN_NUMA_EXT, cl.PROPERTIES_LIST_END_EXT),
			"",
			"L1_CACHE_EXT NUMA_EXT",
		},
		{
			"queue properties",
			FormatQueueProperties,
			cl.EncodeUint64(uint64(cl.QUEUE_PROFILING_ENABLE)),
			"",
			"PROFILING_ENABLE",
		},
		{
			"svm capabilities",
			FormatSVMCapabilities,
			cl.EncodeUint64(uint64(cl.DEVICE_SVM_COARSE_GRAIN_BUFFER | cl.DEVICE_SVM_ATOMICS)),
			"",
			"COARSE_GRAIN_BUFFER ATOMICS",
		},
		{"short uuid", FormatUUID, []byte{0x12, 0x34}, "", "0x3412"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.format(tc.value, tc.units))
		})
	}

	id := uuid.MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	require.Equal(t, id.String(), FormatUUID(id[:], ""))
}

func TestQuery(t *testing.T) {
	drv := cl.NewMockDriverOnWorkstation()
	platforms, err := ccl.NewPlatforms(drv)
	require.Nil(t, err)
	defer platforms.Destroy()

	gpu, err := platforms.Get(0).Device(0)
	require.Nil(t, err)
	cpu, err := platforms.Get(1).Device(0)
	require.Nil(t, err)

	testCases := []struct {
		description string
		device      *ccl.Device
		name        string
		expected    string
	}{
		{"gpu name", gpu, "NAME", "Mock GeForce RTX 3080"},
		{"gpu type", gpu, "TYPE", "GPU"},
		{"gpu work items", gpu, "MAX_WORK_ITEM_SIZES", "(1024, 1024, 64)"},
		{"gpu work group", gpu, "MAX_WORK_GROUP_SIZE", "1024 work-items"},
		{"gpu global memory", gpu, "GLOBAL_MEM_SIZE", "4.0 GiB (4294967296 bytes)"},
		{"gpu vendor id", gpu, "VENDOR_ID", "0x10de"},
		{"gpu warp size", gpu, "WARP_SIZE_NV", "32"},
		{"gpu queue properties", gpu, "QUEUE_PROPERTIES", "OUT_OF_ORDER_EXEC_MODE_ENABLE PROFILING_ENABLE"},
		{"cpu type", cpu, "TYPE", "CPU"},
		{"cpu capabilities", cpu, "EXECUTION_CAPABILITIES", "KERNEL NATIVE_KERNEL"},
		{"cpu partitions", cpu, "PARTITION_PROPERTIES", "EQUALLY BY_COUNTS"},
		{"cpu local memory", cpu, "LOCAL_MEM_TYPE", "GLOBAL"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			p := Lookup(tc.name)
			require.NotNil(t, p)
			value, err := p.Query(tc.device)
			require.Nil(t, err)
			require.Equal(t, tc.expected, value)
		})
	}

	value, err := Lookup("UUID_KHR").Query(gpu)
	require.Nil(t, err)
	_, err = uuid.Parse(value)
	require.Nil(t, err)

	_, err = Lookup("BOARD_NAME_AMD").Query(gpu)
	require.ErrorIs(t, err, cl.INVALID_VALUE)

	_, err = Lookup("PARTITION_TYPE").Query(gpu)
	require.ErrorIs(t, err, ccl.ErrInfoUnavailable)
}

func TestLookupsReturnCopies(t *testing.T) {
	p := Lookup("vendor")
	require.NotNil(t, p)
	p.Description = "changed"
	p.Units = "changed"

	i := 0
	m := Match("vendor", &i)
	require.NotNil(t, m)
	m.Name = "changed"

	prefixed := Prefix("vendor")
	prefixed[0].Selector = 0

	original := Lookup("vendor")
	require.Equal(t, "VENDOR", original.Name)
	require.Equal(t, cl.DEVICE_VENDOR, original.Selector)
	require.NotEqual(t, "changed", original.Description)
	require.Empty(t, original.Units)
}
