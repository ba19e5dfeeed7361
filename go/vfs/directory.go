package vfs

import (
	"github.com/chzyer/logex"

	"github.com/tomasklepac/Virtual-Filesystem/go/bio"
)

// Directory content is a contiguous array of DirectoryItems in the
// directory's first data block. Entry 0 is always ".", entry 1 is ".."
// (the root points both at itself). The single-block ceiling bounds a
// directory at DirItemsPerBlock entries.

func (v *Volume) dirEntries(sb *Superblock, dir *Inode) ([]DirectoryItem, error) {
	n := dir.EntryCount()
	buf := make([]byte, n*DirItemSize)
	if _, err := v.raw.ReadAt(buf, sb.BlockOffset(dir.Direct[0])); err != nil {
		return nil, logex.Trace(err)
	}
	r := bio.NewReader(buf)
	entries := make([]DirectoryItem, n)
	for i := range entries {
		if err := r.ReadDisk(&entries[i]); err != nil {
			return nil, logex.Trace(err)
		}
	}
	return entries, nil
}

// dirLookup finds the entry with the given name, case-sensitively.
func (v *Volume) dirLookup(sb *Superblock, dir *Inode, name string) (*DirectoryItem, error) {
	entries, err := v.dirEntries(sb, dir)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].NameString() == name {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func (v *Volume) dirContains(sb *Superblock, dir *Inode, name string) (bool, error) {
	item, err := v.dirLookup(sb, dir, name)
	if err != nil {
		return false, err
	}
	return item != nil, nil
}

// dirAppend writes the entry at offset FileSize and bumps the directory
// size by one entry.
func (v *Volume) dirAppend(sb *Superblock, dirId int32, dir *Inode, item DirectoryItem) error {
	if dir.EntryCount() >= DirItemsPerBlock {
		return ErrNoSpace.Trace(dirId)
	}
	off := sb.BlockOffset(dir.Direct[0]) + int64(dir.FileSize)
	if err := bio.WriteAt(v.raw, off, &item); err != nil {
		return logex.Trace(err)
	}
	dir.FileSize += DirItemSize
	return v.writeInode(sb, dirId, dir)
}

// dirRemove drops the named entry. A non-last entry is overwritten with
// the current last one, so listing order is not stable across removals.
func (v *Volume) dirRemove(sb *Superblock, dirId int32, dir *Inode, name string) error {
	entries, err := v.dirEntries(sb, dir)
	if err != nil {
		return err
	}
	idx := -1
	for i := range entries {
		if entries[i].NameString() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrFileNotFound.Trace(name)
	}
	last := len(entries) - 1
	if idx != last {
		off := sb.BlockOffset(dir.Direct[0]) + int64(idx)*DirItemSize
		if err := bio.WriteAt(v.raw, off, &entries[last]); err != nil {
			return logex.Trace(err)
		}
	}
	dir.FileSize -= DirItemSize
	return v.writeInode(sb, dirId, dir)
}

// parentOf reads the directory's second entry, by convention always "..".
func (v *Volume) parentOf(sb *Superblock, dir *Inode) (int32, error) {
	if !dir.IsDirectory || dir.EntryCount() < 2 {
		return -1, ErrInconsistentDir.Trace(dir.Id)
	}
	item := new(DirectoryItem)
	off := sb.BlockOffset(dir.Direct[0]) + DirItemSize
	if err := bio.ReadAt(v.raw, off, item); err != nil {
		return -1, logex.Trace(err)
	}
	if item.NameString() != ".." {
		return -1, ErrInconsistentDir.Trace(dir.Id)
	}
	return item.Inode, nil
}

// childName is the reverse lookup: the entry name in parent that maps to
// the child inode, skipping the "." and ".." links.
func (v *Volume) childName(sb *Superblock, parent *Inode, child int32) (string, error) {
	entries, err := v.dirEntries(sb, parent)
	if err != nil {
		return "", err
	}
	for i := range entries {
		if entries[i].Inode == child && !entries[i].IsDotLink() {
			return entries[i].NameString(), nil
		}
	}
	return "", ErrInconsistentDir.Trace(child)
}
