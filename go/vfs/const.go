package vfs

const (
	ClusterSize = 1024

	SuperblockSize  = 288
	InodeBitmapSize = 128
	DataBitmapSize  = 128
	InodeTableSize  = 4096

	InodeSize = 38
	// the table is the harder cap, the inode bitmap has 128 units
	InodeCount = InodeTableSize / InodeSize

	DirItemSize      = 16
	MaxNameLen       = 11
	DirItemsPerBlock = ClusterSize / DirItemSize

	DirectBlocks     = 5
	PointersPerBlock = ClusterSize / 4
	MaxFileBlocks    = DirectBlocks + 2*PointersPerBlock // 517

	RootInode = 0
	RootBlock = 0

	BytesPerMB = 1 << 20
)

const (
	DefaultSignature  = "klepac"
	DefaultDescriptor = "ZOS_FS_2025"
)
