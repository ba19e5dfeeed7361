package vfs

// Stats is the statfs result: the superblock plus allocator occupancy.
type Stats struct {
	Signature    string
	Descriptor   string
	DiskSize     int32
	ClusterSize  int32
	ClusterCount int32
	MaxBlocks    int32
	UsedInodes   int32
	FreeInodes   int32
	UsedBlocks   int32
	FreeBlocks   int32
}

func (v *Volume) Statfs() (*Stats, error) {
	sb, err := v.superblock()
	if err != nil {
		return nil, err
	}
	usedInodes, err := v.inodeBitmap(sb).Used(v.raw)
	if err != nil {
		return nil, err
	}
	usedBlocks, err := v.dataBitmap(sb).Used(v.raw)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Signature:    sb.SignatureString(),
		Descriptor:   sb.DescriptorString(),
		DiskSize:     sb.DiskSize,
		ClusterSize:  sb.ClusterSize,
		ClusterCount: sb.ClusterCount,
		MaxBlocks:    sb.MaxDataBlocks(),
		UsedInodes:   usedInodes,
		FreeInodes:   sb.MaxInodes() - usedInodes,
		UsedBlocks:   usedBlocks,
		FreeBlocks:   sb.MaxDataBlocks() - usedBlocks,
	}, nil
}

// FileInfo is the info result for a single name in the current directory.
type FileInfo struct {
	Name        string
	Inode       int32
	IsDirectory bool
	References  int8
	FileSize    int32
	Direct      [DirectBlocks]int32
	Indirect    [2]int32
	Blocks      []int32
}

func (v *Volume) Info(name string) (*FileInfo, error) {
	sb, err := v.superblock()
	if err != nil {
		return nil, err
	}
	item, ino, err := v.lookupFile(sb, name)
	if err != nil {
		return nil, err
	}
	info := &FileInfo{
		Name:        name,
		Inode:       item.Inode,
		IsDirectory: ino.IsDirectory,
		References:  ino.References,
		FileSize:    ino.FileSize,
		Direct:      ino.Direct,
		Indirect:    ino.Indirect,
	}
	if !ino.IsDirectory {
		blocks, err := v.contentBlocks(sb, ino)
		if err != nil {
			return nil, err
		}
		info.Blocks = blocks
	} else {
		info.Blocks = []int32{ino.Direct[0]}
	}
	return info, nil
}

// BitmapSnapshot returns copies of both allocation bitmaps, used by the
// report renderer.
func (v *Volume) BitmapSnapshot() (inodes []byte, blocks []byte, err error) {
	sb, err := v.superblock()
	if err != nil {
		return nil, nil, err
	}
	inodes = make([]byte, InodeBitmapSize)
	blocks = make([]byte, DataBitmapSize)
	if _, err := v.raw.ReadAt(inodes, int64(sb.InodeBitmapStart)); err != nil {
		return nil, nil, err
	}
	if _, err := v.raw.ReadAt(blocks, int64(sb.DataBitmapStart)); err != nil {
		return nil, nil, err
	}
	return inodes, blocks, nil
}
