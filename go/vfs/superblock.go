package vfs

import (
	"bytes"

	"github.com/tomasklepac/Virtual-Filesystem/go/bio"
)

var _ bio.Diskable = new(Superblock)

// Superblock sits at offset 0 and records the byte layout of the whole
// disk: [Superblock][InodeBitmap][DataBitmap][InodeTable][DataRegion].
type Superblock struct {
	Signature        [9]byte
	VolumeDescriptor [251]byte
	DiskSize         int32
	ClusterSize      int32
	ClusterCount     int32
	InodeBitmapStart int32
	DataBitmapStart  int32
	InodeTableStart  int32
	DataStart        int32
}

// NewSuperblock computes the region offsets for a disk of the given size.
// ClusterCount covers the data region only, whatever is left after the
// fixed metadata.
func NewSuperblock(sizeBytes int64) *Superblock {
	sb := &Superblock{
		DiskSize:    int32(sizeBytes),
		ClusterSize: ClusterSize,
	}
	copy(sb.Signature[:], DefaultSignature)
	copy(sb.VolumeDescriptor[:], DefaultDescriptor)

	sb.InodeBitmapStart = SuperblockSize
	sb.DataBitmapStart = sb.InodeBitmapStart + InodeBitmapSize
	sb.InodeTableStart = sb.DataBitmapStart + DataBitmapSize
	sb.DataStart = sb.InodeTableStart + InodeTableSize
	sb.ClusterCount = (sb.DiskSize - sb.DataStart) / sb.ClusterSize
	return sb
}

func (s *Superblock) Size() int {
	return SuperblockSize
}

func (s *Superblock) ReadDisk(r *bio.Reader) error {
	copy(s.Signature[:], r.Byte(len(s.Signature)))
	copy(s.VolumeDescriptor[:], r.Byte(len(s.VolumeDescriptor)))
	s.DiskSize = r.Int32()
	s.ClusterSize = r.Int32()
	s.ClusterCount = r.Int32()
	s.InodeBitmapStart = r.Int32()
	s.DataBitmapStart = r.Int32()
	s.InodeTableStart = r.Int32()
	s.DataStart = r.Int32()
	return nil
}

func (s *Superblock) WriteDisk(w *bio.Writer) {
	w.Byte(s.Signature[:])
	w.Byte(s.VolumeDescriptor[:])
	w.Int32(s.DiskSize)
	w.Int32(s.ClusterSize)
	w.Int32(s.ClusterCount)
	w.Int32(s.InodeBitmapStart)
	w.Int32(s.DataBitmapStart)
	w.Int32(s.InodeTableStart)
	w.Int32(s.DataStart)
}

// IsFormatted reports whether the superblock describes a formatted disk.
// A zero-valued superblock means the backing file was never formatted.
func (s *Superblock) IsFormatted() bool {
	return s.DiskSize != 0
}

func (s *Superblock) SignatureString() string {
	return cstring(s.Signature[:])
}

func (s *Superblock) DescriptorString() string {
	return cstring(s.VolumeDescriptor[:])
}

// InodeOffset is the byte offset of the inode record with the given id.
func (s *Superblock) InodeOffset(id int32) int64 {
	return int64(s.InodeTableStart) + int64(id)*InodeSize
}

// BlockOffset is the byte offset of the data block with the given id.
func (s *Superblock) BlockOffset(id int32) int64 {
	return int64(s.DataStart) + int64(id)*int64(s.ClusterSize)
}

// MaxDataBlocks is the true allocation ceiling of the data region: the
// bitmap capacity bounds it even when the cluster count is larger.
func (s *Superblock) MaxDataBlocks() int32 {
	if s.ClusterCount < DataBitmapSize {
		return s.ClusterCount
	}
	return DataBitmapSize
}

// MaxInodes bounds inode ids by both the table and the inode bitmap.
func (s *Superblock) MaxInodes() int32 {
	if InodeCount < InodeBitmapSize {
		return InodeCount
	}
	return InodeBitmapSize
}

func cstring(b []byte) string {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		return string(b[:idx])
	}
	return string(b)
}
