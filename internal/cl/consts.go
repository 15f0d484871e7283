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

// Return codes.
const (
	SUCCESS                                   Return = 0
	DEVICE_NOT_FOUND                          Return = -1
	DEVICE_NOT_AVAILABLE                      Return = -2
	COMPILER_NOT_AVAILABLE                    Return = -3
	MEM_OBJECT_ALLOCATION_FAILURE             Return = -4
	OUT_OF_RESOURCES                          Return = -5
	OUT_OF_HOST_MEMORY                        Return = -6
	PROFILING_INFO_NOT_AVAILABLE              Return = -7
	MEM_COPY_OVERLAP                          Return = -8
	IMAGE_FORMAT_MISMATCH                     Return = -9
	IMAGE_FORMAT_NOT_SUPPORTED                Return = -10
	BUILD_PROGRAM_FAILURE                     Return = -11
	MAP_FAILURE                               Return = -12
	MISALIGNED_SUB_BUFFER_OFFSET              Return = -13
	EXEC_STATUS_ERROR_FOR_EVENTS_IN_WAIT_LIST Return = -14
	COMPILE_PROGRAM_FAILURE                   Return = -15
	LINKER_NOT_AVAILABLE                      Return = -16
	LINK_PROGRAM_FAILURE                      Return = -17
	DEVICE_PARTITION_FAILED                   Return = -18
	KERNEL_ARG_INFO_NOT_AVAILABLE             Return = -19
	INVALID_VALUE                             Return = -30
	INVALID_DEVICE_TYPE                       Return = -31
	INVALID_PLATFORM                          Return = -32
	INVALID_DEVICE                            Return = -33
	INVALID_CONTEXT                           Return = -34
	INVALID_QUEUE_PROPERTIES                  Return = -35
	INVALID_COMMAND_QUEUE                     Return = -36
	INVALID_HOST_PTR                          Return = -37
	INVALID_MEM_OBJECT                        Return = -38
	INVALID_IMAGE_FORMAT_DESCRIPTOR           Return = -39
	INVALID_IMAGE_SIZE                        Return = -40
	INVALID_SAMPLER                           Return = -41
	INVALID_BINARY                            Return = -42
	INVALID_BUILD_OPTIONS                     Return = -43
	INVALID_PROGRAM                           Return = -44
	INVALID_PROGRAM_EXECUTABLE                Return = -45
	INVALID_KERNEL_NAME                       Return = -46
	INVALID_KERNEL_DEFINITION                 Return = -47
	INVALID_KERNEL                            Return = -48
	INVALID_ARG_INDEX                         Return = -49
	INVALID_ARG_VALUE                         Return = -50
	INVALID_ARG_SIZE                          Return = -51
	INVALID_KERNEL_ARGS                       Return = -52
	INVALID_WORK_DIMENSION                    Return = -53
	INVALID_WORK_GROUP_SIZE                   Return = -54
	INVALID_WORK_ITEM_SIZE                    Return = -55
	INVALID_GLOBAL_OFFSET                     Return = -56
	INVALID_EVENT_WAIT_LIST                   Return = -57
	INVALID_EVENT                             Return = -58
	INVALID_OPERATION                         Return = -59
	INVALID_GL_OBJECT                         Return = -60
	INVALID_BUFFER_SIZE                       Return = -61
	INVALID_MIP_LEVEL                         Return = -62
	INVALID_GLOBAL_WORK_SIZE                  Return = -63
	INVALID_PROPERTY                          Return = -64
	INVALID_IMAGE_DESCRIPTOR                  Return = -65
	INVALID_COMPILER_OPTIONS                  Return = -66
	INVALID_LINKER_OPTIONS                    Return = -67
	INVALID_DEVICE_PARTITION_COUNT            Return = -68
	INVALID_PIPE_SIZE                         Return = -69
	INVALID_DEVICE_QUEUE                      Return = -70

	PLATFORM_NOT_FOUND_KHR Return = -1001
)

// Platform info selectors.
const (
	PLATFORM_PROFILE    PlatformInfo = 0x0900
	PLATFORM_VERSION    PlatformInfo = 0x0901
	PLATFORM_NAME       PlatformInfo = 0x0902
	PLATFORM_VENDOR     PlatformInfo = 0x0903
	PLATFORM_EXTENSIONS PlatformInfo = 0x0904
)

// Device types.
const (
	DEVICE_TYPE_DEFAULT     DeviceType = 1 << 0
	DEVICE_TYPE_CPU         DeviceType = 1 << 1
	DEVICE_TYPE_GPU         DeviceType = 1 << 2
	DEVICE_TYPE_ACCELERATOR DeviceType = 1 << 3
	DEVICE_TYPE_CUSTOM      DeviceType = 1 << 4
	DEVICE_TYPE_ALL         DeviceType = 0xFFFFFFFF
)

// Device info selectors.
const (
	DEVICE_TYPE                                 DeviceInfo = 0x1000
	DEVICE_VENDOR_ID                            DeviceInfo = 0x1001
	DEVICE_MAX_COMPUTE_UNITS                    DeviceInfo = 0x1002
	DEVICE_MAX_WORK_ITEM_DIMENSIONS             DeviceInfo = 0x1003
	DEVICE_MAX_WORK_GROUP_SIZE                  DeviceInfo = 0x1004
	DEVICE_MAX_WORK_ITEM_SIZES                  DeviceInfo = 0x1005
	DEVICE_PREFERRED_VECTOR_WIDTH_CHAR          DeviceInfo = 0x1006
	DEVICE_PREFERRED_VECTOR_WIDTH_SHORT         DeviceInfo = 0x1007
	DEVICE_PREFERRED_VECTOR_WIDTH_INT           DeviceInfo = 0x1008
	DEVICE_PREFERRED_VECTOR_WIDTH_LONG          DeviceInfo = 0x1009
	DEVICE_PREFERRED_VECTOR_WIDTH_FLOAT         DeviceInfo = 0x100A
	DEVICE_PREFERRED_VECTOR_WIDTH_DOUBLE        DeviceInfo = 0x100B
	DEVICE_MAX_CLOCK_FREQUENCY                  DeviceInfo = 0x100C
	DEVICE_ADDRESS_BITS                         DeviceInfo = 0x100D
	DEVICE_MAX_READ_IMAGE_ARGS                  DeviceInfo = 0x100E
	DEVICE_MAX_WRITE_IMAGE_ARGS                 DeviceInfo = 0x100F
	DEVICE_MAX_MEM_ALLOC_SIZE                   DeviceInfo = 0x1010
	DEVICE_IMAGE2D_MAX_WIDTH                    DeviceInfo = 0x1011
	DEVICE_IMAGE2D_MAX_HEIGHT                   DeviceInfo = 0x1012
	DEVICE_IMAGE3D_MAX_WIDTH                    DeviceInfo = 0x1013
	DEVICE_IMAGE3D_MAX_HEIGHT                   DeviceInfo = 0x1014
	DEVICE_IMAGE3D_MAX_DEPTH                    DeviceInfo = 0x1015
	DEVICE_IMAGE_SUPPORT                        DeviceInfo = 0x1016
	DEVICE_MAX_PARAMETER_SIZE                   DeviceInfo = 0x1017
	DEVICE_MAX_SAMPLERS                         DeviceInfo = 0x1018
	DEVICE_MEM_BASE_ADDR_ALIGN                  DeviceInfo = 0x1019
	DEVICE_MIN_DATA_TYPE_ALIGN_SIZE             DeviceInfo = 0x101A
	DEVICE_SINGLE_FP_CONFIG                     DeviceInfo = 0x101B
	DEVICE_GLOBAL_MEM_CACHE_TYPE                DeviceInfo = 0x101C
	DEVICE_GLOBAL_MEM_CACHELINE_SIZE            DeviceInfo = 0x101D
	DEVICE_GLOBAL_MEM_CACHE_SIZE                DeviceInfo = 0x101E
	DEVICE_GLOBAL_MEM_SIZE                      DeviceInfo = 0x101F
	DEVICE_MAX_CONSTANT_BUFFER_SIZE             DeviceInfo = 0x1020
	DEVICE_MAX_CONSTANT_ARGS                    DeviceInfo = 0x1021
	DEVICE_LOCAL_MEM_TYPE                       DeviceInfo = 0x1022
	DEVICE_LOCAL_MEM_SIZE                       DeviceInfo = 0x1023
	DEVICE_ERROR_CORRECTION_SUPPORT             DeviceInfo = 0x1024
	DEVICE_PROFILING_TIMER_RESOLUTION           DeviceInfo = 0x1025
	DEVICE_ENDIAN_LITTLE                        DeviceInfo = 0x1026
	DEVICE_AVAILABLE                            DeviceInfo = 0x1027
	DEVICE_COMPILER_AVAILABLE                   DeviceInfo = 0x1028
	DEVICE_EXECUTION_CAPABILITIES               DeviceInfo = 0x1029
	DEVICE_QUEUE_PROPERTIES                     DeviceInfo = 0x102A
	DEVICE_QUEUE_ON_HOST_PROPERTIES             DeviceInfo = 0x102A
	DEVICE_NAME                                 DeviceInfo = 0x102B
	DEVICE_VENDOR                               DeviceInfo = 0x102C
	DRIVER_VERSION                              DeviceInfo = 0x102D
	DEVICE_PROFILE                              DeviceInfo = 0x102E
	DEVICE_VERSION                              DeviceInfo = 0x102F
	DEVICE_EXTENSIONS                           DeviceInfo = 0x1030
	DEVICE_PLATFORM                             DeviceInfo = 0x1031
	DEVICE_DOUBLE_FP_CONFIG                     DeviceInfo = 0x1032
	DEVICE_HALF_FP_CONFIG                       DeviceInfo = 0x1033
	DEVICE_PREFERRED_VECTOR_WIDTH_HALF          DeviceInfo = 0x1034
	DEVICE_HOST_UNIFIED_MEMORY                  DeviceInfo = 0x1035
	DEVICE_NATIVE_VECTOR_WIDTH_CHAR             DeviceInfo = 0x1036
	DEVICE_NATIVE_VECTOR_WIDTH_SHORT            DeviceInfo = 0x1037
	DEVICE_NATIVE_VECTOR_WIDTH_INT              DeviceInfo = 0x1038
	DEVICE_NATIVE_VECTOR_WIDTH_LONG             DeviceInfo = 0x1039
	DEVICE_NATIVE_VECTOR_WIDTH_FLOAT            DeviceInfo = 0x103A
	DEVICE_NATIVE_VECTOR_WIDTH_DOUBLE           DeviceInfo = 0x103B
	DEVICE_NATIVE_VECTOR_WIDTH_HALF             DeviceInfo = 0x103C
	DEVICE_OPENCL_C_VERSION                     DeviceInfo = 0x103D
	DEVICE_LINKER_AVAILABLE                     DeviceInfo = 0x103E
	DEVICE_BUILT_IN_KERNELS                     DeviceInfo = 0x103F
	DEVICE_IMAGE_MAX_BUFFER_SIZE                DeviceInfo = 0x1040
	DEVICE_IMAGE_MAX_ARRAY_SIZE                 DeviceInfo = 0x1041
	DEVICE_PARENT_DEVICE                        DeviceInfo = 0x1042
	DEVICE_PARTITION_MAX_SUB_DEVICES            DeviceInfo = 0x1043
	DEVICE_PARTITION_PROPERTIES                 DeviceInfo = 0x1044
	DEVICE_PARTITION_AFFINITY_DOMAIN            DeviceInfo = 0x1045
	DEVICE_PARTITION_TYPE                       DeviceInfo = 0x1046
	DEVICE_REFERENCE_COUNT                      DeviceInfo = 0x1047
	DEVICE_PREFERRED_INTEROP_USER_SYNC          DeviceInfo = 0x1048
	DEVICE_PRINTF_BUFFER_SIZE                   DeviceInfo = 0x1049
	DEVICE_IMAGE_PITCH_ALIGNMENT                DeviceInfo = 0x104A
	DEVICE_IMAGE_BASE_ADDRESS_ALIGNMENT         DeviceInfo = 0x104B
	DEVICE_MAX_READ_WRITE_IMAGE_ARGS            DeviceInfo = 0x104C
	DEVICE_MAX_GLOBAL_VARIABLE_SIZE             DeviceInfo = 0x104D
	DEVICE_QUEUE_ON_DEVICE_PROPERTIES           DeviceInfo = 0x104E
	DEVICE_QUEUE_ON_DEVICE_PREFERRED_SIZE       DeviceInfo = 0x104F
	DEVICE_QUEUE_ON_DEVICE_MAX_SIZE             DeviceInfo = 0x1050
	DEVICE_MAX_ON_DEVICE_QUEUES                 DeviceInfo = 0x1051
	DEVICE_MAX_ON_DEVICE_EVENTS                 DeviceInfo = 0x1052
	DEVICE_SVM_CAPABILITIES                     DeviceInfo = 0x1053
	DEVICE_GLOBAL_VARIABLE_PREFERRED_TOTAL_SIZE DeviceInfo = 0x1054
	DEVICE_MAX_PIPE_ARGS                        DeviceInfo = 0x1055
	DEVICE_PIPE_MAX_ACTIVE_RESERVATIONS         DeviceInfo = 0x1056
	DEVICE_PIPE_MAX_PACKET_SIZE                 DeviceInfo = 0x1057
	DEVICE_PREFERRED_PLATFORM_ATOMIC_ALIGNMENT  DeviceInfo = 0x1058
	DEVICE_PREFERRED_GLOBAL_ATOMIC_ALIGNMENT    DeviceInfo = 0x1059
	DEVICE_PREFERRED_LOCAL_ATOMIC_ALIGNMENT     DeviceInfo = 0x105A
	DEVICE_UUID_KHR                             DeviceInfo = 0x106A
	DRIVER_UUID_KHR                             DeviceInfo = 0x106B

	DEVICE_TERMINATE_CAPABILITY_KHR DeviceInfo = 0x2031

	DEVICE_COMPUTE_CAPABILITY_MAJOR_NV DeviceInfo = 0x4000
	DEVICE_COMPUTE_CAPABILITY_MINOR_NV DeviceInfo = 0x4001
	DEVICE_REGISTERS_PER_BLOCK_NV      DeviceInfo = 0x4002
	DEVICE_WARP_SIZE_NV                DeviceInfo = 0x4003
	DEVICE_GPU_OVERLAP_NV              DeviceInfo = 0x4004
	DEVICE_KERNEL_EXEC_TIMEOUT_NV      DeviceInfo = 0x4005
	DEVICE_INTEGRATED_MEMORY_NV        DeviceInfo = 0x4006

	DEVICE_MAX_ATOMIC_COUNTERS_EXT DeviceInfo = 0x4032

	DEVICE_PROFILING_TIMER_OFFSET_AMD          DeviceInfo = 0x4036
	DEVICE_TOPOLOGY_AMD                        DeviceInfo = 0x4037
	DEVICE_BOARD_NAME_AMD                      DeviceInfo = 0x4038
	DEVICE_GLOBAL_FREE_MEMORY_AMD              DeviceInfo = 0x4039
	DEVICE_SIMD_PER_COMPUTE_UNIT_AMD           DeviceInfo = 0x4040
	DEVICE_SIMD_WIDTH_AMD                      DeviceInfo = 0x4041
	DEVICE_SIMD_INSTRUCTION_WIDTH_AMD          DeviceInfo = 0x4042
	DEVICE_WAVEFRONT_WIDTH_AMD                 DeviceInfo = 0x4043
	DEVICE_GLOBAL_MEM_CHANNELS_AMD             DeviceInfo = 0x4044
	DEVICE_GLOBAL_MEM_CHANNEL_BANKS_AMD        DeviceInfo = 0x4045
	DEVICE_GLOBAL_MEM_CHANNEL_BANK_WIDTH_AMD   DeviceInfo = 0x4046
	DEVICE_LOCAL_MEM_SIZE_PER_COMPUTE_UNIT_AMD DeviceInfo = 0x4047
	DEVICE_LOCAL_MEM_BANKS_AMD                 DeviceInfo = 0x4048
	DEVICE_THREAD_TRACE_SUPPORTED_AMD          DeviceInfo = 0x4049

	DEVICE_PARENT_DEVICE_EXT    DeviceInfo = 0x4054
	DEVICE_PARTITION_TYPES_EXT  DeviceInfo = 0x4055
	DEVICE_AFFINITY_DOMAINS_EXT DeviceInfo = 0x4056
	DEVICE_REFERENCE_COUNT_EXT  DeviceInfo = 0x4057
	DEVICE_PARTITION_STYLE_EXT  DeviceInfo = 0x4058

	DEVICE_EXT_MEM_PADDING_IN_BYTES_QCOM DeviceInfo = 0x40A0
	DEVICE_PAGE_SIZE_QCOM                DeviceInfo = 0x40A1

	DEVICE_SPIR_VERSIONS DeviceInfo = 0x40E0
)

// Device FP config bits.
const (
	FP_DENORM                        Bitfield = 1 << 0
	FP_INF_NAN                       Bitfield = 1 << 1
	FP_ROUND_TO_NEAREST              Bitfield = 1 << 2
	FP_ROUND_TO_ZERO                 Bitfield = 1 << 3
	FP_ROUND_TO_INF                  Bitfield = 1 << 4
	FP_FMA                           Bitfield = 1 << 5
	FP_SOFT_FLOAT                    Bitfield = 1 << 6
	FP_CORRECTLY_ROUNDED_DIVIDE_SQRT Bitfield = 1 << 7
)

// Device execution capabilities.
const (
	EXEC_KERNEL        Bitfield = 1 << 0
	EXEC_NATIVE_KERNEL Bitfield = 1 << 1
)

// Global memory cache types.
const (
	NONE             uint32 = 0x0
	READ_ONLY_CACHE  uint32 = 0x1
	READ_WRITE_CACHE uint32 = 0x2
)

// Local memory types.
const (
	LOCAL  uint32 = 0x1
	GLOBAL uint32 = 0x2
)

// Device partition properties.
const (
	DEVICE_PARTITION_EQUALLY            uint64 = 0x1086
	DEVICE_PARTITION_BY_COUNTS          uint64 = 0x1087
	DEVICE_PARTITION_BY_COUNTS_LIST_END uint64 = 0x0
	DEVICE_PARTITION_BY_AFFINITY_DOMAIN uint64 = 0x1088

	DEVICE_PARTITION_EQUALLY_EXT            uint64 = 0x4050
	DEVICE_PARTITION_BY_COUNTS_EXT          uint64 = 0x4051
	DEVICE_PARTITION_BY_NAMES_EXT           uint64 = 0x4052
	DEVICE_PARTITION_BY_AFFINITY_DOMAIN_EXT uint64 = 0x4053
	PROPERTIES_LIST_END_EXT                 uint64 = 0x0
)

// Device affinity domains.
const (
	DEVICE_AFFINITY_DOMAIN_NUMA               Bitfield = 1 << 0
	DEVICE_AFFINITY_DOMAIN_L4_CACHE           Bitfield = 1 << 1
	DEVICE_AFFINITY_DOMAIN_L3_CACHE           Bitfield = 1 << 2
	DEVICE_AFFINITY_DOMAIN_L2_CACHE           Bitfield = 1 << 3
	DEVICE_AFFINITY_DOMAIN_L1_CACHE           Bitfield = 1 << 4
	DEVICE_AFFINITY_DOMAIN_NEXT_PARTITIONABLE Bitfield = 1 << 5

	AFFINITY_DOMAIN_L1_CACHE_EXT         uint64 = 0x1
	AFFINITY_DOMAIN_L2_CACHE_EXT         uint64 = 0x2
	AFFINITY_DOMAIN_L3_CACHE_EXT         uint64 = 0x3
	AFFINITY_DOMAIN_L4_CACHE_EXT         uint64 = 0x4
	AFFINITY_DOMAIN_NUMA_EXT             uint64 = 0x10
	AFFINITY_DOMAIN_NEXT_FISSIONABLE_EXT uint64 = 0x100
)

// Device SVM capabilities.
const (
	DEVICE_SVM_COARSE_GRAIN_BUFFER Bitfield = 1 << 0
	DEVICE_SVM_FINE_GRAIN_BUFFER   Bitfield = 1 << 1
	DEVICE_SVM_FINE_GRAIN_SYSTEM   Bitfield = 1 << 2
	DEVICE_SVM_ATOMICS             Bitfield = 1 << 3
)

// Context info selectors and properties.
const (
	CONTEXT_REFERENCE_COUNT ContextInfo = 0x1080
	CONTEXT_DEVICES         ContextInfo = 0x1081
	CONTEXT_PROPERTIES      ContextInfo = 0x1082
	CONTEXT_NUM_DEVICES     ContextInfo = 0x1083
	CONTEXT_PLATFORM        ContextInfo = 0x1084
)

// Command queue info selectors and properties.
const (
	QUEUE_CONTEXT         QueueInfo = 0x1090
	QUEUE_DEVICE          QueueInfo = 0x1091
	QUEUE_REFERENCE_COUNT QueueInfo = 0x1092
	QUEUE_PROPERTIES      QueueInfo = 0x1093

	QUEUE_OUT_OF_ORDER_EXEC_MODE_ENABLE QueueProperties = 1 << 0
	QUEUE_PROFILING_ENABLE              QueueProperties = 1 << 1
)

// Memory flags.
const (
	MEM_READ_WRITE      MemFlags = 1 << 0
	MEM_WRITE_ONLY      MemFlags = 1 << 1
	MEM_READ_ONLY       MemFlags = 1 << 2
	MEM_USE_HOST_PTR    MemFlags = 1 << 3
	MEM_ALLOC_HOST_PTR  MemFlags = 1 << 4
	MEM_COPY_HOST_PTR   MemFlags = 1 << 5
	MEM_HOST_WRITE_ONLY MemFlags = 1 << 7
	MEM_HOST_READ_ONLY  MemFlags = 1 << 8
	MEM_HOST_NO_ACCESS  MemFlags = 1 << 9
)

// Memory migration flags.
const (
	MIGRATE_MEM_OBJECT_HOST              MemMigrationFlags = 1 << 0
	MIGRATE_MEM_OBJECT_CONTENT_UNDEFINED MemMigrationFlags = 1 << 1
)

// Map flags.
const (
	MAP_READ                    MapFlags = 1 << 0
	MAP_WRITE                   MapFlags = 1 << 1
	MAP_WRITE_INVALIDATE_REGION MapFlags = 1 << 2
)

// Memory object types.
const (
	MEM_OBJECT_BUFFER         MemObjectType = 0x10F0
	MEM_OBJECT_IMAGE2D        MemObjectType = 0x10F1
	MEM_OBJECT_IMAGE3D        MemObjectType = 0x10F2
	MEM_OBJECT_IMAGE2D_ARRAY  MemObjectType = 0x10F3
	MEM_OBJECT_IMAGE1D        MemObjectType = 0x10F4
	MEM_OBJECT_IMAGE1D_ARRAY  MemObjectType = 0x10F5
	MEM_OBJECT_IMAGE1D_BUFFER MemObjectType = 0x10F6
)

// Memory object and image info selectors.
const (
	MEM_TYPE                 MemInfo = 0x1100
	MEM_FLAGS                MemInfo = 0x1101
	MEM_SIZE                 MemInfo = 0x1102
	MEM_HOST_PTR             MemInfo = 0x1103
	MEM_MAP_COUNT            MemInfo = 0x1104
	MEM_REFERENCE_COUNT      MemInfo = 0x1105
	MEM_CONTEXT              MemInfo = 0x1106
	MEM_ASSOCIATED_MEMOBJECT MemInfo = 0x1107
	MEM_OFFSET               MemInfo = 0x1108

	IMAGE_FORMAT       ImageInfo = 0x1110
	IMAGE_ELEMENT_SIZE ImageInfo = 0x1111
	IMAGE_ROW_PITCH    ImageInfo = 0x1112
	IMAGE_SLICE_PITCH  ImageInfo = 0x1113
	IMAGE_WIDTH        ImageInfo = 0x1114
	IMAGE_HEIGHT       ImageInfo = 0x1115
	IMAGE_DEPTH        ImageInfo = 0x1116
)

// Image channel orders.
const (
	R         ChannelOrder = 0x10B0
	A         ChannelOrder = 0x10B1
	RG        ChannelOrder = 0x10B2
	RA        ChannelOrder = 0x10B3
	RGB       ChannelOrder = 0x10B4
	RGBA      ChannelOrder = 0x10B5
	BGRA      ChannelOrder = 0x10B6
	ARGB      ChannelOrder = 0x10B7
	INTENSITY ChannelOrder = 0x10B8
	LUMINANCE ChannelOrder = 0x10B9
)

// Image channel data types.
const (
	SNORM_INT8       ChannelType = 0x10D0
	SNORM_INT16      ChannelType = 0x10D1
	UNORM_INT8       ChannelType = 0x10D2
	UNORM_INT16      ChannelType = 0x10D3
	UNORM_SHORT_565  ChannelType = 0x10D4
	UNORM_SHORT_555  ChannelType = 0x10D5
	UNORM_INT_101010 ChannelType = 0x10D6
	SIGNED_INT8      ChannelType = 0x10D7
	SIGNED_INT16     ChannelType = 0x10D8
	SIGNED_INT32     ChannelType = 0x10D9
	UNSIGNED_INT8    ChannelType = 0x10DA
	UNSIGNED_INT16   ChannelType = 0x10DB
	UNSIGNED_INT32   ChannelType = 0x10DC
	HALF_FLOAT       ChannelType = 0x10DD
	FLOAT            ChannelType = 0x10DE
)

// Sampler modes and info selectors.
const (
	ADDRESS_NONE            AddressingMode = 0x1130
	ADDRESS_CLAMP_TO_EDGE   AddressingMode = 0x1131
	ADDRESS_CLAMP           AddressingMode = 0x1132
	ADDRESS_REPEAT          AddressingMode = 0x1133
	ADDRESS_MIRRORED_REPEAT AddressingMode = 0x1134

	FILTER_NEAREST FilterMode = 0x1140
	FILTER_LINEAR  FilterMode = 0x1141

	SAMPLER_REFERENCE_COUNT   SamplerInfo = 0x1150
	SAMPLER_CONTEXT           SamplerInfo = 0x1151
	SAMPLER_NORMALIZED_COORDS SamplerInfo = 0x1152
	SAMPLER_ADDRESSING_MODE   SamplerInfo = 0x1153
	SAMPLER_FILTER_MODE       SamplerInfo = 0x1154
)

// Program info and build info selectors.
const (
	PROGRAM_REFERENCE_COUNT ProgramInfo = 0x1160
	PROGRAM_CONTEXT         ProgramInfo = 0x1161
	PROGRAM_NUM_DEVICES     ProgramInfo = 0x1162
	PROGRAM_DEVICES         ProgramInfo = 0x1163
	PROGRAM_SOURCE          ProgramInfo = 0x1164
	PROGRAM_BINARY_SIZES    ProgramInfo = 0x1165
	PROGRAM_BINARIES        ProgramInfo = 0x1166
	PROGRAM_NUM_KERNELS     ProgramInfo = 0x1167
	PROGRAM_KERNEL_NAMES    ProgramInfo = 0x1168

	PROGRAM_BUILD_STATUS  ProgramBuildInfo = 0x1181
	PROGRAM_BUILD_OPTIONS ProgramBuildInfo = 0x1182
	PROGRAM_BUILD_LOG     ProgramBuildInfo = 0x1183
	PROGRAM_BINARY_TYPE   ProgramBuildInfo = 0x1184
)

// Program build status values.
const (
	BUILD_SUCCESS     BuildStatus = 0
	BUILD_NONE        BuildStatus = -1
	BUILD_ERROR       BuildStatus = -2
	BUILD_IN_PROGRESS BuildStatus = -3
)

// Program binary types.
const (
	PROGRAM_BINARY_TYPE_NONE            BinaryType = 0x0
	PROGRAM_BINARY_TYPE_COMPILED_OBJECT BinaryType = 0x1
	PROGRAM_BINARY_TYPE_LIBRARY         BinaryType = 0x2
	PROGRAM_BINARY_TYPE_EXECUTABLE      BinaryType = 0x4
)

// Kernel info, arg info and work-group info selectors.
const (
	KERNEL_FUNCTION_NAME   KernelInfo = 0x1190
	KERNEL_NUM_ARGS        KernelInfo = 0x1191
	KERNEL_REFERENCE_COUNT KernelInfo = 0x1192
	KERNEL_CONTEXT         KernelInfo = 0x1193
	KERNEL_PROGRAM         KernelInfo = 0x1194
	KERNEL_ATTRIBUTES      KernelInfo = 0x1195

	KERNEL_ARG_ADDRESS_QUALIFIER KernelArgInfo = 0x1196
	KERNEL_ARG_ACCESS_QUALIFIER  KernelArgInfo = 0x1197
	KERNEL_ARG_TYPE_NAME         KernelArgInfo = 0x1198
	KERNEL_ARG_TYPE_QUALIFIER    KernelArgInfo = 0x1199
	KERNEL_ARG_NAME              KernelArgInfo = 0x119A

	KERNEL_ARG_ADDRESS_GLOBAL   uint32 = 0x119B
	KERNEL_ARG_ADDRESS_LOCAL    uint32 = 0x119C
	KERNEL_ARG_ADDRESS_CONSTANT uint32 = 0x119D
	KERNEL_ARG_ADDRESS_PRIVATE  uint32 = 0x119E

	KERNEL_ARG_ACCESS_READ_ONLY  uint32 = 0x11A0
	KERNEL_ARG_ACCESS_WRITE_ONLY uint32 = 0x11A1
	KERNEL_ARG_ACCESS_READ_WRITE uint32 = 0x11A2
	KERNEL_ARG_ACCESS_NONE       uint32 = 0x11A3

	KERNEL_ARG_TYPE_NONE     Bitfield = 0
	KERNEL_ARG_TYPE_CONST    Bitfield = 1 << 0
	KERNEL_ARG_TYPE_RESTRICT Bitfield = 1 << 1
	KERNEL_ARG_TYPE_VOLATILE Bitfield = 1 << 2

	KERNEL_WORK_GROUP_SIZE                    KernelWorkGroupInfo = 0x11B0
	KERNEL_COMPILE_WORK_GROUP_SIZE            KernelWorkGroupInfo = 0x11B1
	KERNEL_LOCAL_MEM_SIZE                     KernelWorkGroupInfo = 0x11B2
	KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE KernelWorkGroupInfo = 0x11B3
	KERNEL_PRIVATE_MEM_SIZE                   KernelWorkGroupInfo = 0x11B4
)

// Event info selectors, command types and execution status.
const (
	EVENT_COMMAND_QUEUE            EventInfo = 0x11D0
	EVENT_COMMAND_TYPE             EventInfo = 0x11D1
	EVENT_REFERENCE_COUNT          EventInfo = 0x11D2
	EVENT_COMMAND_EXECUTION_STATUS EventInfo = 0x11D3
	EVENT_CONTEXT                  EventInfo = 0x11D4

	COMMAND_NDRANGE_KERNEL       CommandType = 0x11F0
	COMMAND_TASK                 CommandType = 0x11F1
	COMMAND_NATIVE_KERNEL        CommandType = 0x11F2
	COMMAND_READ_BUFFER          CommandType = 0x11F3
	COMMAND_WRITE_BUFFER         CommandType = 0x11F4
	COMMAND_COPY_BUFFER          CommandType = 0x11F5
	COMMAND_READ_IMAGE           CommandType = 0x11F6
	COMMAND_WRITE_IMAGE          CommandType = 0x11F7
	COMMAND_COPY_IMAGE           CommandType = 0x11F8
	COMMAND_COPY_IMAGE_TO_BUFFER CommandType = 0x11F9
	COMMAND_COPY_BUFFER_TO_IMAGE CommandType = 0x11FA
	COMMAND_MAP_BUFFER           CommandType = 0x11FB
	COMMAND_MAP_IMAGE            CommandType = 0x11FC
	COMMAND_UNMAP_MEM_OBJECT     CommandType = 0x11FD
	COMMAND_MARKER               CommandType = 0x11FE
	COMMAND_ACQUIRE_GL_OBJECTS   CommandType = 0x11FF
	COMMAND_RELEASE_GL_OBJECTS   CommandType = 0x1200
	COMMAND_READ_BUFFER_RECT     CommandType = 0x1201
	COMMAND_WRITE_BUFFER_RECT    CommandType = 0x1202
	COMMAND_COPY_BUFFER_RECT     CommandType = 0x1203
	COMMAND_USER                 CommandType = 0x1204
	COMMAND_BARRIER              CommandType = 0x1205
	COMMAND_MIGRATE_MEM_OBJECTS  CommandType = 0x1206
	COMMAND_FILL_BUFFER          CommandType = 0x1207
	COMMAND_FILL_IMAGE           CommandType = 0x1208

	COMPLETE  int32 = 0x0
	RUNNING   int32 = 0x1
	SUBMITTED int32 = 0x2
	QUEUED    int32 = 0x3
)

// Event profiling info selectors.
const (
	PROFILING_COMMAND_QUEUED ProfilingInfo = 0x1280
	PROFILING_COMMAND_SUBMIT ProfilingInfo = 0x1281
	PROFILING_COMMAND_START  ProfilingInfo = 0x1282
	PROFILING_COMMAND_END    ProfilingInfo = 0x1283
)
