package vfs

import (
	"encoding/binary"

	"github.com/chzyer/logex"
)

// Logical block k of a file maps to:
//
//	k in [0,5)     direct slot k
//	k in [5,261)   indirect block 1, pointer k-5
//	k in [261,517) indirect block 2, pointer k-261
//
// A pointer value of 0 means "not allocated", physical block 0 is
// permanently the root directory block and never holds file content.

func (v *Volume) readPointer(sb *Superblock, indirect int32, slot int) (int32, error) {
	buf := make([]byte, 4)
	off := sb.BlockOffset(indirect) + int64(slot)*4
	if _, err := v.raw.ReadAt(buf, off); err != nil {
		return 0, logex.Trace(err)
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

func (v *Volume) writePointer(sb *Superblock, indirect int32, slot int, blk int32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(blk))
	off := sb.BlockOffset(indirect) + int64(slot)*4
	if _, err := v.raw.WriteAt(buf, off); err != nil {
		return logex.Trace(err)
	}
	return nil
}

// blockAt resolves logical index k to a physical block id, 0 if the slot
// was never allocated.
func (v *Volume) blockAt(sb *Superblock, ino *Inode, k int) (int32, error) {
	switch {
	case k < DirectBlocks:
		return ino.Direct[k], nil
	case k < DirectBlocks+PointersPerBlock:
		if ino.Indirect[0] == 0 {
			return 0, nil
		}
		return v.readPointer(sb, ino.Indirect[0], k-DirectBlocks)
	case k < MaxFileBlocks:
		if ino.Indirect[1] == 0 {
			return 0, nil
		}
		return v.readPointer(sb, ino.Indirect[1], k-DirectBlocks-PointersPerBlock)
	}
	return 0, ErrNoSpace.Trace(k)
}

// allocIndirect reserves a block for a pointer array and zero-fills it so
// stale data never reads as live pointers.
func (v *Volume) allocIndirect(sb *Superblock) (int32, error) {
	blk, err := v.dataBitmap(sb).AllocFirstFree(v.raw)
	if err != nil {
		return 0, err
	}
	zero := make([]byte, sb.ClusterSize)
	if _, err := v.raw.WriteAt(zero, sb.BlockOffset(blk)); err != nil {
		return 0, logex.Trace(err)
	}
	return blk, nil
}

// setBlockAt binds logical index k to a physical block, allocating the
// indirection block lazily on first use. The inode is mutated in memory,
// the caller persists it once the content is in place.
func (v *Volume) setBlockAt(sb *Superblock, ino *Inode, k int, blk int32) error {
	switch {
	case k < DirectBlocks:
		ino.Direct[k] = blk
		return nil
	case k < DirectBlocks+PointersPerBlock:
		if ino.Indirect[0] == 0 {
			ind, err := v.allocIndirect(sb)
			if err != nil {
				return err
			}
			ino.Indirect[0] = ind
		}
		return v.writePointer(sb, ino.Indirect[0], k-DirectBlocks, blk)
	case k < MaxFileBlocks:
		if ino.Indirect[1] == 0 {
			ind, err := v.allocIndirect(sb)
			if err != nil {
				return err
			}
			ino.Indirect[1] = ind
		}
		return v.writePointer(sb, ino.Indirect[1], k-DirectBlocks-PointersPerBlock, blk)
	}
	return ErrNoSpace.Trace(k)
}

// contentBlocks walks the slot order and collects the physical block ids
// backing the current content.
func (v *Volume) contentBlocks(sb *Superblock, ino *Inode) ([]int32, error) {
	n := ino.BlockCount()
	blocks := make([]int32, 0, n)
	for k := 0; k < n; k++ {
		blk, err := v.blockAt(sb, ino, k)
		if err != nil {
			return nil, err
		}
		if blk == 0 {
			return nil, ErrInconsistentDir.Trace(ino.Id, k)
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// readContent reconstructs exactly FileSize bytes in block order.
func (v *Volume) readContent(sb *Superblock, ino *Inode) ([]byte, error) {
	blocks, err := v.contentBlocks(sb, ino)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, ino.FileSize)
	for k, blk := range blocks {
		lo := k * ClusterSize
		hi := lo + ClusterSize
		if hi > len(buf) {
			hi = len(buf)
		}
		if _, err := v.raw.ReadAt(buf[lo:hi], sb.BlockOffset(blk)); err != nil {
			return nil, logex.Trace(err)
		}
	}
	return buf, nil
}

// writeContent replaces the whole content of the inode. Already-allocated
// slots are reused in position order, new blocks are allocated only for
// the shortfall and surplus blocks (plus emptied indirection blocks) are
// returned to the bitmap. The inode record is persisted last.
func (v *Volume) writeContent(sb *Superblock, id int32, ino *Inode, content []byte) error {
	need := blocksNeeded(len(content))
	if need > MaxFileBlocks {
		return ErrNoSpace.Trace(need)
	}

	old, err := v.contentBlocks(sb, ino)
	if err != nil {
		return err
	}
	have := len(old)
	db := v.dataBitmap(sb)

	for k := have; k < need; k++ {
		blk, err := db.AllocFirstFree(v.raw)
		if err != nil {
			return err
		}
		if err := v.setBlockAt(sb, ino, k, blk); err != nil {
			return err
		}
	}
	for k := need; k < have; k++ {
		if err := db.Free(v.raw, old[k]); err != nil {
			return err
		}
		if err := v.setBlockAt(sb, ino, k, 0); err != nil {
			return err
		}
	}
	if err := v.releaseIndirect(sb, ino, need); err != nil {
		return err
	}

	for k := 0; k < need; k++ {
		blk, err := v.blockAt(sb, ino, k)
		if err != nil {
			return err
		}
		lo := k * ClusterSize
		hi := lo + ClusterSize
		if hi > len(content) {
			hi = len(content)
		}
		if _, err := v.raw.WriteAt(content[lo:hi], sb.BlockOffset(blk)); err != nil {
			return logex.Trace(err)
		}
	}

	ino.FileSize = int32(len(content))
	return v.writeInode(sb, id, ino)
}

// releaseIndirect frees indirection blocks that no longer back any
// content slot.
func (v *Volume) releaseIndirect(sb *Superblock, ino *Inode, need int) error {
	db := v.dataBitmap(sb)
	if need <= DirectBlocks+PointersPerBlock && ino.Indirect[1] != 0 {
		if err := db.Free(v.raw, ino.Indirect[1]); err != nil {
			return err
		}
		ino.Indirect[1] = 0
	}
	if need <= DirectBlocks && ino.Indirect[0] != 0 {
		if err := db.Free(v.raw, ino.Indirect[0]); err != nil {
			return err
		}
		ino.Indirect[0] = 0
	}
	return nil
}

// freeContent returns every content block and indirection block of the
// inode to the bitmap. Used when the file is removed.
func (v *Volume) freeContent(sb *Superblock, ino *Inode) error {
	blocks, err := v.contentBlocks(sb, ino)
	if err != nil {
		return err
	}
	db := v.dataBitmap(sb)
	for _, blk := range blocks {
		if err := db.Free(v.raw, blk); err != nil {
			return err
		}
	}
	if err := v.releaseIndirect(sb, ino, 0); err != nil {
		return err
	}
	for i := range ino.Direct {
		ino.Direct[i] = 0
	}
	ino.FileSize = 0
	return nil
}
