package vfs

import "github.com/tomasklepac/Virtual-Filesystem/go/bio"

var _ bio.Diskable = new(Inode)

// Inode is a fixed-layout record in the inode table. Its id equals its
// position in the table. A zero-valued record is an unallocated slot and
// must never be treated as live data.
type Inode struct {
	Id          int32
	IsDirectory bool
	References  int8
	FileSize    int32
	Direct      [DirectBlocks]int32
	Indirect    [2]int32
}

func (n *Inode) Size() int {
	return InodeSize
}

func (n *Inode) ReadDisk(r *bio.Reader) error {
	n.Id = r.Int32()
	n.IsDirectory = r.Int8() != 0
	n.References = r.Int8()
	n.FileSize = r.Int32()
	for i := range n.Direct {
		n.Direct[i] = r.Int32()
	}
	for i := range n.Indirect {
		n.Indirect[i] = r.Int32()
	}
	return nil
}

func (n *Inode) WriteDisk(w *bio.Writer) {
	w.Int32(n.Id)
	if n.IsDirectory {
		w.Int8(1)
	} else {
		w.Int8(0)
	}
	w.Int8(n.References)
	w.Int32(n.FileSize)
	for i := range n.Direct {
		w.Int32(n.Direct[i])
	}
	for i := range n.Indirect {
		w.Int32(n.Indirect[i])
	}
}

// BlockCount is how many data blocks the current content occupies.
func (n *Inode) BlockCount() int {
	return blocksNeeded(int(n.FileSize))
}

func blocksNeeded(size int) int {
	return (size + ClusterSize - 1) / ClusterSize
}

// EntryCount is the number of directory entries, directories keep their
// size a multiple of DirItemSize.
func (n *Inode) EntryCount() int32 {
	return n.FileSize / DirItemSize
}
