package vfs

import (
	"github.com/chzyer/logex"

	"github.com/tomasklepac/Virtual-Filesystem/go/bio"
	"github.com/tomasklepac/Virtual-Filesystem/go/disk"
)

// Volume is the filesystem handle: one open backing file plus the
// working-directory cursor. All state lives in the backing file, the
// cursor is the only piece of session state.
type Volume struct {
	raw     *disk.File
	current int32
}

func Open(path string) (*Volume, error) {
	raw, err := disk.NewFile(path)
	if err != nil {
		return nil, logex.Trace(err)
	}
	return &Volume{raw: raw, current: RootInode}, nil
}

func (v *Volume) Close() error {
	return v.raw.Close()
}

func (v *Volume) Name() string {
	return v.raw.Name()
}

// CurrentDir exposes the working-directory cursor.
func (v *Volume) CurrentDir() int32 {
	return v.current
}

// Superblock reads the superblock from offset 0. A backing file that was
// never formatted yields a zero-valued superblock, callers detect that
// via IsFormatted.
func (v *Volume) Superblock() (*Superblock, error) {
	size, err := v.raw.Size()
	if err != nil {
		return nil, logex.Trace(err)
	}
	sb := new(Superblock)
	if size < SuperblockSize {
		return sb, nil
	}
	if err := bio.ReadAt(v.raw, 0, sb); err != nil {
		return nil, logex.Trace(err)
	}
	return sb, nil
}

// superblock is the variant every operation starts with: it fails with
// NOT FORMATTED instead of handing out a zero layout.
func (v *Volume) superblock() (*Superblock, error) {
	sb, err := v.Superblock()
	if err != nil {
		return nil, err
	}
	if !sb.IsFormatted() {
		return nil, ErrNotFormatted.Trace()
	}
	return sb, nil
}

func (v *Volume) inodeBitmap(sb *Superblock) *Bitmap {
	return NewBitmap(sb.InodeBitmapStart, InodeBitmapSize, sb.MaxInodes())
}

func (v *Volume) dataBitmap(sb *Superblock) *Bitmap {
	return NewBitmap(sb.DataBitmapStart, DataBitmapSize, sb.MaxDataBlocks())
}

// Format initializes the backing file as an empty filesystem of the given
// size: superblock, both bitmaps (unit 0 reserved for the root inode and
// its block), the inode table with root at slot 0, and the root directory
// block holding "." and ".." pointing back at inode 0. The file is then
// extended to the full requested size and the cursor reset to root.
func (v *Volume) Format(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return ErrInvalidInput.Trace(sizeBytes)
	}
	sb := NewSuperblock(sizeBytes)
	if sb.ClusterCount < 1 {
		return ErrCannotCreate.Trace(sizeBytes)
	}

	if err := bio.WriteAt(v.raw, 0, sb); err != nil {
		return ErrCannotCreate.Trace(err)
	}

	inodeBitmap := make([]byte, InodeBitmapSize)
	dataBitmap := make([]byte, DataBitmapSize)
	inodeBitmap[RootInode] = 1
	dataBitmap[RootBlock] = 1
	if _, err := v.raw.WriteAt(inodeBitmap, int64(sb.InodeBitmapStart)); err != nil {
		return ErrCannotCreate.Trace(err)
	}
	if _, err := v.raw.WriteAt(dataBitmap, int64(sb.DataBitmapStart)); err != nil {
		return ErrCannotCreate.Trace(err)
	}

	table := make([]byte, InodeTableSize)
	root := &Inode{
		Id:          RootInode,
		IsDirectory: true,
		References:  1,
		FileSize:    2 * DirItemSize,
	}
	root.WriteDisk(bio.NewWriter(table[:InodeSize]))
	if _, err := v.raw.WriteAt(table, int64(sb.InodeTableStart)); err != nil {
		return ErrCannotCreate.Trace(err)
	}

	block := make([]byte, 2*DirItemSize)
	w := bio.NewWriter(block)
	dot := NewDirectoryItem(RootInode, ".")
	dotdot := NewDirectoryItem(RootInode, "..")
	w.WriteDisk(&dot)
	w.WriteDisk(&dotdot)
	if _, err := v.raw.WriteAt(block, sb.BlockOffset(RootBlock)); err != nil {
		return ErrCannotCreate.Trace(err)
	}

	if err := v.raw.Resize(sizeBytes); err != nil {
		return ErrCannotCreate.Trace(err)
	}

	v.current = RootInode
	return nil
}

// readInode returns the record at the given table slot. There is no
// existence check beyond the bitmap: an unallocated id reads as a
// zero-valued inode.
func (v *Volume) readInode(sb *Superblock, id int32) (*Inode, error) {
	if id < 0 || id >= sb.MaxInodes() {
		return nil, ErrFileNotFound.Trace(id)
	}
	ino := new(Inode)
	if err := bio.ReadAt(v.raw, sb.InodeOffset(id), ino); err != nil {
		return nil, logex.Trace(err)
	}
	return ino, nil
}

func (v *Volume) writeInode(sb *Superblock, id int32, ino *Inode) error {
	if id < 0 || id >= sb.MaxInodes() {
		return ErrFileNotFound.Trace(id)
	}
	return logex.Trace(bio.WriteAt(v.raw, sb.InodeOffset(id), ino))
}
