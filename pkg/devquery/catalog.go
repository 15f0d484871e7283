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
	"github.com/NVIDIA/clwrap/internal/cl"
)

// catalog is sorted by name.
var catalog = []Param{
	{"ADDRESS_BITS", cl.DEVICE_ADDRESS_BITS,
		"Address space size in bits",
		FormatUint, "bits"},
	{"AFFINITY_DOMAINS_EXT", cl.DEVICE_AFFINITY_DOMAINS_EXT,
		"Ext.: Affinity domains supported for partitioning the device",
		FormatAffinityDomainsExt, ""},
	{"AVAILABLE", cl.DEVICE_AVAILABLE,
		"Is device available",
		FormatYesNo, ""},
	{"BOARD_NAME_AMD", cl.DEVICE_BOARD_NAME_AMD,
		"AMD ext.: Name of the GPU board and model of the device",
		FormatString, ""},
	{"BUILT_IN_KERNELS", cl.DEVICE_BUILT_IN_KERNELS,
		"Device built-in kernels",
		FormatString, ""},
	{"COMPILER_AVAILABLE", cl.DEVICE_COMPILER_AVAILABLE,
		"Is a compiler available for device",
		FormatYesNo, ""},
	{"COMPUTE_CAPABILITY_MAJOR_NV", cl.DEVICE_COMPUTE_CAPABILITY_MAJOR_NV,
		"NVIDIA ext.: Major revision of the CUDA compute capability of the device",
		FormatUint, ""},
	{"COMPUTE_CAPABILITY_MINOR_NV", cl.DEVICE_COMPUTE_CAPABILITY_MINOR_NV,
		"NVIDIA ext.: Minor revision of the CUDA compute capability of the device",
		FormatUint, ""},
	{"DOUBLE_FP_CONFIG", cl.DEVICE_DOUBLE_FP_CONFIG,
		"Floating-point device configuration (double)",
		FormatFPConfig, ""},
	{"DRIVER_UUID_KHR", cl.DRIVER_UUID_KHR,
		"KHR ext.: Universally unique identifier of the driver",
		FormatUUID, ""},
	{"DRIVER_VERSION", cl.DRIVER_VERSION,
		"Driver version",
		FormatString, ""},
	{"ENDIAN_LITTLE", cl.DEVICE_ENDIAN_LITTLE,
		"Is device little endian",
		FormatYesNo, ""},
	{"ERROR_CORRECTION_SUPPORT", cl.DEVICE_ERROR_CORRECTION_SUPPORT,
		"Error correction support",
		FormatYesNo, ""},
	{"EXECUTION_CAPABILITIES", cl.DEVICE_EXECUTION_CAPABILITIES,
		"Execution capabilities",
		FormatExecCapabilities, ""},
	{"EXTENSIONS", cl.DEVICE_EXTENSIONS,
		"Extensions",
		FormatString, ""},
	{"EXT_MEM_PADDING_IN_BYTES_QCOM", cl.DEVICE_EXT_MEM_PADDING_IN_BYTES_QCOM,
		"Qualcomm ext.: Padding required at the end of a buffer",
		FormatSizeTBytes, ""},
	{"GLOBAL_FREE_MEMORY_AMD", cl.DEVICE_GLOBAL_FREE_MEMORY_AMD,
		"AMD ext.: Free device memory",
		FormatUlongBytes, ""},
	{"GLOBAL_MEM_CACHELINE_SIZE", cl.DEVICE_GLOBAL_MEM_CACHELINE_SIZE,
		"Global mem. cache line size",
		FormatUintBytes, ""},
	{"GLOBAL_MEM_CACHE_SIZE", cl.DEVICE_GLOBAL_MEM_CACHE_SIZE,
		"Global mem. cache size",
		FormatUlongBytes, ""},
	{"GLOBAL_MEM_CACHE_TYPE", cl.DEVICE_GLOBAL_MEM_CACHE_TYPE,
		"Global mem. cache type",
		FormatCacheType, ""},
	{"GLOBAL_MEM_CHANNELS_AMD", cl.DEVICE_GLOBAL_MEM_CHANNELS_AMD,
		"AMD ext.: Global mem. channels",
		FormatUint, ""},
	{"GLOBAL_MEM_CHANNEL_BANKS_AMD", cl.DEVICE_GLOBAL_MEM_CHANNEL_BANKS_AMD,
		"AMD ext.: Global mem. channel banks",
		FormatUint, ""},
	{"GLOBAL_MEM_CHANNEL_BANK_WIDTH_AMD", cl.DEVICE_GLOBAL_MEM_CHANNEL_BANK_WIDTH_AMD,
		"AMD ext.: Global mem. channel bank width",
		FormatUint, ""},
	{"GLOBAL_MEM_SIZE", cl.DEVICE_GLOBAL_MEM_SIZE,
		"Global mem. size",
		FormatUlongBytes, ""},
	{"GLOBAL_VARIABLE_PREFERRED_TOTAL_SIZE", cl.DEVICE_GLOBAL_VARIABLE_PREFERRED_TOTAL_SIZE,
		"Max. preferred total size of all program variables in the global address space",
		FormatSizeTBytes, ""},
	{"GPU_OVERLAP_NV", cl.DEVICE_GPU_OVERLAP_NV,
		"NVIDIA ext.: Can the device copy memory while executing a kernel",
		FormatYesNo, ""},
	{"HALF_FP_CONFIG", cl.DEVICE_HALF_FP_CONFIG,
		"Floating-point device configuration (half)",
		FormatFPConfig, ""},
	{"HOST_UNIFIED_MEMORY", cl.DEVICE_HOST_UNIFIED_MEMORY,
		"Host unified memory subsystem",
		FormatYesNo, ""},
	{"IMAGE2D_MAX_HEIGHT", cl.DEVICE_IMAGE2D_MAX_HEIGHT,
		"Max. height of 2D image (pixels)",
		FormatSizeT, "px"},
	{"IMAGE2D_MAX_WIDTH", cl.DEVICE_IMAGE2D_MAX_WIDTH,
		"Max. width of 1D/2D image (pixels)",
		FormatSizeT, "px"},
	{"IMAGE3D_MAX_DEPTH", cl.DEVICE_IMAGE3D_MAX_DEPTH,
		"Max. depth of 3D image (pixels)",
		FormatSizeT, "px"},
	{"IMAGE3D_MAX_HEIGHT", cl.DEVICE_IMAGE3D_MAX_HEIGHT,
		"Max. height of 3D image (pixels)",
		FormatSizeT, "px"},
	{"IMAGE3D_MAX_WIDTH", cl.DEVICE_IMAGE3D_MAX_WIDTH,
		"Max. width of 3D image (pixels)",
		FormatSizeT, "px"},
	{"IMAGE_BASE_ADDRESS_ALIGNMENT", cl.DEVICE_IMAGE_BASE_ADDRESS_ALIGNMENT,
		"Min. alignment of the host pointer of a buffer used to create a 2D image",
		FormatUint, "px"},
	{"IMAGE_MAX_ARRAY_SIZE", cl.DEVICE_IMAGE_MAX_ARRAY_SIZE,
		"Max. images in a 1D or 2D image array",
		FormatSizeT, "images"},
	{"IMAGE_MAX_BUFFER_SIZE", cl.DEVICE_IMAGE_MAX_BUFFER_SIZE,
		"Max. pixels for 1D image from buffer object",
		FormatSizeT, "px"},
	{"IMAGE_PITCH_ALIGNMENT", cl.DEVICE_IMAGE_PITCH_ALIGNMENT,
		"Row pitch alignment in pixels for 2D images created from a buffer",
		FormatUint, "px"},
	{"IMAGE_SUPPORT", cl.DEVICE_IMAGE_SUPPORT,
		"Image support",
		FormatYesNo, ""},
	{"INTEGRATED_MEMORY_NV", cl.DEVICE_INTEGRATED_MEMORY_NV,
		"NVIDIA ext.: Is device integrated with the memory subsystem",
		FormatYesNo, ""},
	{"KERNEL_EXEC_TIMEOUT_NV", cl.DEVICE_KERNEL_EXEC_TIMEOUT_NV,
		"NVIDIA ext.: Is there a limit for kernels executed on device",
		FormatYesNo, ""},
	{"LINKER_AVAILABLE", cl.DEVICE_LINKER_AVAILABLE,
		"Linker available",
		FormatYesNo, ""},
	{"LOCAL_MEM_BANKS_AMD", cl.DEVICE_LOCAL_MEM_BANKS_AMD,
		"AMD ext.: Local mem. banks",
		FormatUint, ""},
	{"LOCAL_MEM_SIZE", cl.DEVICE_LOCAL_MEM_SIZE,
		"Local mem. size",
		FormatUlongBytes, ""},
	{"LOCAL_MEM_SIZE_PER_COMPUTE_UNIT_AMD", cl.DEVICE_LOCAL_MEM_SIZE_PER_COMPUTE_UNIT_AMD,
		"AMD ext.: Local mem. size per compute unit",
		FormatUintBytes, ""},
	{"LOCAL_MEM_TYPE", cl.DEVICE_LOCAL_MEM_TYPE,
		"Local mem. type",
		FormatLocalMemType, ""},
	{"MAX_ATOMIC_COUNTERS_EXT", cl.DEVICE_MAX_ATOMIC_COUNTERS_EXT,
		"Ext.: Max. atomic counters",
		FormatUint, ""},
	{"MAX_CLOCK_FREQUENCY", cl.DEVICE_MAX_CLOCK_FREQUENCY,
		"Max. clock frequency (MHz)",
		FormatUint, "MHz"},
	{"MAX_COMPUTE_UNITS", cl.DEVICE_MAX_COMPUTE_UNITS,
		"Number of compute units in device",
		FormatUint, ""},
	{"MAX_CONSTANT_ARGS", cl.DEVICE_MAX_CONSTANT_ARGS,
		"Max. number of __constant args in kernel",
		FormatUint, ""},
	{"MAX_CONSTANT_BUFFER_SIZE", cl.DEVICE_MAX_CONSTANT_BUFFER_SIZE,
		"Max. size in bytes of a constant buffer allocation",
		FormatUlongBytes, ""},
	{"MAX_GLOBAL_VARIABLE_SIZE", cl.DEVICE_MAX_GLOBAL_VARIABLE_SIZE,
		"Max. storage of a single program scope variable in the global address space",
		FormatSizeTBytes, ""},
	{"MAX_MEM_ALLOC_SIZE", cl.DEVICE_MAX_MEM_ALLOC_SIZE,
		"Max. size of memory object allocation in bytes",
		FormatUlongBytes, ""},
	{"MAX_ON_DEVICE_EVENTS", cl.DEVICE_MAX_ON_DEVICE_EVENTS,
		"Max. number of events in use by a device queue",
		FormatUint, ""},
	{"MAX_ON_DEVICE_QUEUES", cl.DEVICE_MAX_ON_DEVICE_QUEUES,
		"Max. number of device queues that can be created per context",
		FormatUint, ""},
	{"MAX_PARAMETER_SIZE", cl.DEVICE_MAX_PARAMETER_SIZE,
		"Max. size in bytes of the arguments that can be passed to a kernel",
		FormatSizeTBytes, ""},
	{"MAX_PIPE_ARGS", cl.DEVICE_MAX_PIPE_ARGS,
		"Max. pipe objects that can be passed as arguments to a kernel",
		FormatUint, ""},
	{"MAX_READ_IMAGE_ARGS", cl.DEVICE_MAX_READ_IMAGE_ARGS,
		"Max. number of simultaneous image objects that can be read by a kernel",
		FormatUint, "images"},
	{"MAX_READ_WRITE_IMAGE_ARGS", cl.DEVICE_MAX_READ_WRITE_IMAGE_ARGS,
		"Max. image arguments of a kernel declared with the read_write qualifier",
		FormatUint, ""},
	{"MAX_SAMPLERS", cl.DEVICE_MAX_SAMPLERS,
		"Max. samplers that can be used in kernel",
		FormatUint, "samplers"},
	{"MAX_WORK_GROUP_SIZE", cl.DEVICE_MAX_WORK_GROUP_SIZE,
		"Max. work-items in a work-group executing a kernel on a single compute unit",
		FormatSizeT, "work-items"},
	{"MAX_WORK_ITEM_DIMENSIONS", cl.DEVICE_MAX_WORK_ITEM_DIMENSIONS,
		"Max. dimensions of the global and local work-item IDs",
		FormatUint, ""},
	{"MAX_WORK_ITEM_SIZES", cl.DEVICE_MAX_WORK_ITEM_SIZES,
		"Max. work-items in each dimension of a work-group",
		FormatSizeTVec, ""},
	{"MAX_WRITE_IMAGE_ARGS", cl.DEVICE_MAX_WRITE_IMAGE_ARGS,
		"Max. simultaneous image objects that can be written to by a kernel",
		FormatUint, "images"},
	{"MEM_BASE_ADDR_ALIGN", cl.DEVICE_MEM_BASE_ADDR_ALIGN,
		"Size in bits of the largest built-in data type supported by the device",
		FormatUint, "bits"},
	{"MIN_DATA_TYPE_ALIGN_SIZE", cl.DEVICE_MIN_DATA_TYPE_ALIGN_SIZE,
		"Smallest alignment which can be used for any data type (deprecated in OpenCL 1.2)",
		FormatUintBytes, ""},
	{"NAME", cl.DEVICE_NAME,
		"Name of device",
		FormatString, ""},
	{"NATIVE_VECTOR_WIDTH_CHAR", cl.DEVICE_NATIVE_VECTOR_WIDTH_CHAR,
		"Native ISA char vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_DOUBLE", cl.DEVICE_NATIVE_VECTOR_WIDTH_DOUBLE,
		"Native ISA double vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_FLOAT", cl.DEVICE_NATIVE_VECTOR_WIDTH_FLOAT,
		"Native ISA float vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_HALF", cl.DEVICE_NATIVE_VECTOR_WIDTH_HALF,
		"Native ISA half vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_INT", cl.DEVICE_NATIVE_VECTOR_WIDTH_INT,
		"Native ISA int vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_LONG", cl.DEVICE_NATIVE_VECTOR_WIDTH_LONG,
		"Native ISA long vector width (scalar elements per vector)",
		FormatUint, ""},
	{"NATIVE_VECTOR_WIDTH_SHORT", cl.DEVICE_NATIVE_VECTOR_WIDTH_SHORT,
		"Native ISA short vector width (scalar elements per vector)",
		FormatUint, ""},
	{"OPENCL_C_VERSION", cl.DEVICE_OPENCL_C_VERSION,
		"Highest OpenCL C version supported by the device compiler",
		FormatString, ""},
	{"PAGE_SIZE_QCOM", cl.DEVICE_PAGE_SIZE_QCOM,
		"Qualcomm ext.: Page size of device",
		FormatSizeTBytes, ""},
	{"PARENT_DEVICE", cl.DEVICE_PARENT_DEVICE,
		"Parent device of a sub-device",
		FormatPointer, ""},
	{"PARENT_DEVICE_EXT", cl.DEVICE_PARENT_DEVICE_EXT,
		"Ext.: Parent device of a sub-device",
		FormatHex, ""},
	{"PARTITION_AFFINITY_DOMAIN", cl.DEVICE_PARTITION_AFFINITY_DOMAIN,
		"Affinity domains supported for partitioning the device by affinity domain",
		FormatAffinityDomain, ""},
	{"PARTITION_MAX_SUB_DEVICES", cl.DEVICE_PARTITION_MAX_SUB_DEVICES,
		"Max. sub-devices that can be created when device is partitioned",
		FormatUint, "devices"},
	{"PARTITION_PROPERTIES", cl.DEVICE_PARTITION_PROPERTIES,
		"Partition types supported by device",
		FormatPartitionProperties, ""},
	{"PARTITION_STYLE_EXT", cl.DEVICE_PARTITION_STYLE_EXT,
		"Ext.: Partition properties used to create the sub-device",
		FormatAffinityDomainsExt, ""},
	{"PARTITION_TYPE", cl.DEVICE_PARTITION_TYPE,
		"Properties used to create the device if it is a sub-device",
		FormatPartitionProperties, ""},
	{"PARTITION_TYPES_EXT", cl.DEVICE_PARTITION_TYPES_EXT,
		"Ext.: Partition types supported by device",
		FormatPartitionProperties, ""},
	{"PIPE_MAX_ACTIVE_RESERVATIONS", cl.DEVICE_PIPE_MAX_ACTIVE_RESERVATIONS,
		"Max. active reservations for a pipe per work-item in a kernel",
		FormatUint, ""},
	{"PIPE_MAX_PACKET_SIZE", cl.DEVICE_PIPE_MAX_PACKET_SIZE,
		"Max. size of pipe packet",
		FormatUintBytes, ""},
	{"PLATFORM", cl.DEVICE_PLATFORM,
		"Platform associated with device",
		FormatPointer, ""},
	{"PREFERRED_GLOBAL_ATOMIC_ALIGNMENT", cl.DEVICE_PREFERRED_GLOBAL_ATOMIC_ALIGNMENT,
		"Preferred alignment for OpenCL 2.0 atomic types to global memory",
		FormatUintBytes, ""},
	{"PREFERRED_INTEROP_USER_SYNC", cl.DEVICE_PREFERRED_INTEROP_USER_SYNC,
		"Does device prefer the user to synchronize memory objects shared with other APIs",
		FormatYesNo, ""},
	{"PREFERRED_LOCAL_ATOMIC_ALIGNMENT", cl.DEVICE_PREFERRED_LOCAL_ATOMIC_ALIGNMENT,
		"Preferred alignment for OpenCL 2.0 atomic types to local memory",
		FormatUintBytes, ""},
	{"PREFERRED_PLATFORM_ATOMIC_ALIGNMENT", cl.DEVICE_PREFERRED_PLATFORM_ATOMIC_ALIGNMENT,
		"Preferred alignment for OpenCL 2.0 fine-grained SVM atomic types",
		FormatUintBytes, ""},
	{"PREFERRED_VECTOR_WIDTH_CHAR", cl.DEVICE_PREFERRED_VECTOR_WIDTH_CHAR,
		"Preferred ISA char vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_DOUBLE", cl.DEVICE_PREFERRED_VECTOR_WIDTH_DOUBLE,
		"Preferred ISA double vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_FLOAT", cl.DEVICE_PREFERRED_VECTOR_WIDTH_FLOAT,
		"Preferred ISA float vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_HALF", cl.DEVICE_PREFERRED_VECTOR_WIDTH_HALF,
		"Preferred ISA half vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_INT", cl.DEVICE_PREFERRED_VECTOR_WIDTH_INT,
		"Preferred ISA int vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_LONG", cl.DEVICE_PREFERRED_VECTOR_WIDTH_LONG,
		"Preferred ISA long vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PREFERRED_VECTOR_WIDTH_SHORT", cl.DEVICE_PREFERRED_VECTOR_WIDTH_SHORT,
		"Preferred ISA short vector width (scalar elements per vector)",
		FormatUint, ""},
	{"PRINTF_BUFFER_SIZE", cl.DEVICE_PRINTF_BUFFER_SIZE,
		"Max. size of the buffer holding the output of printf calls from a kernel",
		FormatSizeTBytes, ""},
	{"PROFILE", cl.DEVICE_PROFILE,
		"Profile name supported by the device (FULL or EMBEDDED)",
		FormatString, ""},
	{"PROFILING_TIMER_OFFSET_AMD", cl.DEVICE_PROFILING_TIMER_OFFSET_AMD,
		"AMD ext.: Offset between event timestamps in nanoseconds",
		FormatSizeT, "ns"},
	{"PROFILING_TIMER_RESOLUTION", cl.DEVICE_PROFILING_TIMER_RESOLUTION,
		"Resolution of device timer in nanoseconds",
		FormatSizeT, "ns"},
	{"QUEUE_ON_DEVICE_MAX_SIZE", cl.DEVICE_QUEUE_ON_DEVICE_MAX_SIZE,
		"Max. size of the device queue",
		FormatUintBytes, ""},
	{"QUEUE_ON_DEVICE_PREFERRED_SIZE", cl.DEVICE_QUEUE_ON_DEVICE_PREFERRED_SIZE,
		"Size of the device queue preferred by the implementation",
		FormatUintBytes, ""},
	{"QUEUE_ON_DEVICE_PROPERTIES", cl.DEVICE_QUEUE_ON_DEVICE_PROPERTIES,
		"On-device command-queue properties supported by the device",
		FormatQueueProperties, ""},
	{"QUEUE_ON_HOST_PROPERTIES", cl.DEVICE_QUEUE_ON_HOST_PROPERTIES,
		"On-host command-queue properties supported by the device",
		FormatQueueProperties, ""},
	{"QUEUE_PROPERTIES", cl.DEVICE_QUEUE_PROPERTIES,
		"Command-queue properties supported by device",
		FormatQueueProperties, ""},
	{"REFERENCE_COUNT", cl.DEVICE_REFERENCE_COUNT,
		"Device reference count",
		FormatUint, ""},
	{"REFERENCE_COUNT_EXT", cl.DEVICE_REFERENCE_COUNT_EXT,
		"Ext.: Device reference count",
		FormatUint, ""},
	{"REGISTERS_PER_BLOCK_NV", cl.DEVICE_REGISTERS_PER_BLOCK_NV,
		"NVIDIA ext.: Max. number of 32-bit registers available to a work-group",
		FormatUint, ""},
	{"SIMD_INSTRUCTION_WIDTH_AMD", cl.DEVICE_SIMD_INSTRUCTION_WIDTH_AMD,
		"AMD ext.: SIMD instruction width",
		FormatUint, ""},
	{"SIMD_PER_COMPUTE_UNIT_AMD", cl.DEVICE_SIMD_PER_COMPUTE_UNIT_AMD,
		"AMD ext.: SIMD per compute unit",
		FormatUint, ""},
	{"SIMD_WIDTH_AMD", cl.DEVICE_SIMD_WIDTH_AMD,
		"AMD ext.: SIMD width",
		FormatUint, ""},
	{"SINGLE_FP_CONFIG", cl.DEVICE_SINGLE_FP_CONFIG,
		"Floating-point device configuration (single)",
		FormatFPConfig, ""},
	{"SPIR_VERSIONS", cl.DEVICE_SPIR_VERSIONS,
		"Space separated list of SPIR versions supported by the device",
		FormatString, ""},
	{"SVM_CAPABILITIES", cl.DEVICE_SVM_CAPABILITIES,
		"Shared virtual memory allocation types supported by the device",
		FormatSVMCapabilities, ""},
	{"TERMINATE_CAPABILITY_KHR", cl.DEVICE_TERMINATE_CAPABILITY_KHR,
		"KHR ext.: Termination capability of the device",
		FormatHex, ""},
	{"THREAD_TRACE_SUPPORTED_AMD", cl.DEVICE_THREAD_TRACE_SUPPORTED_AMD,
		"AMD ext.: Is thread trace supported",
		FormatYesNo, ""},
	{"TOPOLOGY_AMD", cl.DEVICE_TOPOLOGY_AMD,
		"AMD ext.: Topology used to connect the device to the host",
		FormatHex, ""},
	{"TYPE", cl.DEVICE_TYPE,
		"Type of device",
		FormatDeviceType, ""},
	{"UUID_KHR", cl.DEVICE_UUID_KHR,
		"KHR ext.: Universally unique identifier of the device",
		FormatUUID, ""},
	{"VENDOR", cl.DEVICE_VENDOR,
		"Vendor of device",
		FormatString, ""},
	{"VENDOR_ID", cl.DEVICE_VENDOR_ID,
		"Unique device vendor identifier",
		FormatHex, ""},
	{"VERSION", cl.DEVICE_VERSION,
		"OpenCL version supported by the device",
		FormatString, ""},
	{"WARP_SIZE_NV", cl.DEVICE_WARP_SIZE_NV,
		"NVIDIA ext.: Warp size in work-items",
		FormatUint, ""},
	{"WAVEFRONT_WIDTH_AMD", cl.DEVICE_WAVEFRONT_WIDTH_AMD,
		"AMD ext.: Wavefront width",
		FormatUint, ""},
}
