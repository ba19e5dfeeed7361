package vfs

import "github.com/tomasklepac/Virtual-Filesystem/go/bio"

// lookupFile resolves a name in the current directory to its entry and
// inode.
func (v *Volume) lookupFile(sb *Superblock, name string) (*DirectoryItem, *Inode, error) {
	if name == "" {
		return nil, nil, ErrInvalidInput.Trace()
	}
	dir, err := v.currentInode(sb)
	if err != nil {
		return nil, nil, err
	}
	item, err := v.dirLookup(sb, dir, name)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrFileNotFound.Trace(name)
	}
	ino, err := v.readInode(sb, item.Inode)
	if err != nil {
		return nil, nil, err
	}
	return item, ino, nil
}

// createFile allocates an inode for an empty file and links it into the
// current directory under the given name.
func (v *Volume) createFile(sb *Superblock, name string) (int32, error) {
	if err := validateName(name); err != nil {
		return -1, err
	}
	parent, err := v.currentInode(sb)
	if err != nil {
		return -1, err
	}
	if exists, err := v.dirContains(sb, parent, name); err != nil {
		return -1, err
	} else if exists {
		return -1, ErrExist.Trace(name)
	}
	if parent.EntryCount() >= DirItemsPerBlock {
		return -1, ErrNoSpace.Trace(v.current)
	}

	id, err := v.inodeBitmap(sb).AllocFirstFree(v.raw)
	if err != nil {
		return -1, err
	}
	ino := &Inode{Id: id, References: 1}
	if err := v.writeInode(sb, id, ino); err != nil {
		return -1, err
	}
	if err := v.dirAppend(sb, v.current, parent, NewDirectoryItem(id, name)); err != nil {
		return -1, err
	}
	return id, nil
}

// Touch creates an empty file in the current directory.
func (v *Volume) Touch(name string) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	_, err = v.createFile(sb, name)
	return err
}

// Write replaces the content of an existing file.
func (v *Volume) Write(name string, content []byte) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	item, ino, err := v.lookupFile(sb, name)
	if err != nil {
		return err
	}
	if ino.IsDirectory {
		return ErrIsDirectory.Trace(name)
	}
	return v.writeContent(sb, item.Inode, ino, content)
}

// Cat returns the full content of a file.
func (v *Volume) Cat(name string) ([]byte, error) {
	sb, err := v.superblock()
	if err != nil {
		return nil, err
	}
	_, ino, err := v.lookupFile(sb, name)
	if err != nil {
		return nil, err
	}
	if ino.IsDirectory {
		return nil, ErrIsDirectory.Trace(name)
	}
	return v.readContent(sb, ino)
}

// Remove deletes a file: content blocks, indirection blocks and the inode
// all go back to their bitmaps, then the directory entry is dropped.
func (v *Volume) Remove(name string) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	item, ino, err := v.lookupFile(sb, name)
	if err != nil {
		return err
	}
	if ino.IsDirectory {
		return ErrIsDirectory.Trace(name)
	}

	if err := v.freeContent(sb, ino); err != nil {
		return err
	}
	if err := v.inodeBitmap(sb).Free(v.raw, item.Inode); err != nil {
		return err
	}
	parent, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	return v.dirRemove(sb, v.current, parent, name)
}

// Copy duplicates a file under a new name in the current directory. The
// copy gets its own blocks.
func (v *Volume) Copy(src, dst string) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	_, ino, err := v.lookupFile(sb, src)
	if err != nil {
		return err
	}
	if ino.IsDirectory {
		return ErrIsDirectory.Trace(src)
	}
	content, err := v.readContent(sb, ino)
	if err != nil {
		return err
	}

	id, err := v.createFile(sb, dst)
	if err != nil {
		return err
	}
	copyIno, err := v.readInode(sb, id)
	if err != nil {
		return err
	}
	return v.writeContent(sb, id, copyIno, content)
}

// Move renames an entry, or, when dst names an existing directory, moves
// src into it. A moved directory gets its ".." link rewritten to the new
// parent.
func (v *Volume) Move(src, dst string) error {
	if src == "." || src == ".." {
		return ErrInvalidName.Trace(src)
	}
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	parent, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	item, err := v.dirLookup(sb, parent, src)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrFileNotFound.Trace(src)
	}
	srcId := item.Inode

	if target, err := v.dirLookup(sb, parent, dst); err != nil {
		return err
	} else if target != nil {
		targetIno, err := v.readInode(sb, target.Inode)
		if err != nil {
			return err
		}
		if !targetIno.IsDirectory {
			return ErrExist.Trace(dst)
		}
		return v.moveInto(sb, parent, src, srcId, target.Inode, targetIno)
	}

	if err := validateName(dst); err != nil {
		return err
	}
	return v.renameEntry(sb, parent, src, dst)
}

func (v *Volume) renameEntry(sb *Superblock, parent *Inode, src, dst string) error {
	entries, err := v.dirEntries(sb, parent)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].NameString() == src {
			item := NewDirectoryItem(entries[i].Inode, dst)
			off := sb.BlockOffset(parent.Direct[0]) + int64(i)*DirItemSize
			return bio.WriteAt(v.raw, off, &item)
		}
	}
	return ErrFileNotFound.Trace(src)
}

func (v *Volume) moveInto(sb *Superblock, parent *Inode, src string, srcId int32, dstId int32, dst *Inode) error {
	if exists, err := v.dirContains(sb, dst, src); err != nil {
		return err
	} else if exists {
		return ErrExist.Trace(src)
	}
	if dst.EntryCount() >= DirItemsPerBlock {
		return ErrNoSpace.Trace(dstId)
	}

	if err := v.dirRemove(sb, v.current, parent, src); err != nil {
		return err
	}
	if err := v.dirAppend(sb, dstId, dst, NewDirectoryItem(srcId, src)); err != nil {
		return err
	}

	moved, err := v.readInode(sb, srcId)
	if err != nil {
		return err
	}
	if moved.IsDirectory {
		item := NewDirectoryItem(dstId, "..")
		off := sb.BlockOffset(moved.Direct[0]) + DirItemSize
		return bio.WriteAt(v.raw, off, &item)
	}
	return nil
}

// Concat writes the concatenation of two files into out, creating it if
// needed and overwriting an existing file.
func (v *Volume) Concat(a, b, out string) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	first, err := v.Cat(a)
	if err != nil {
		return err
	}
	second, err := v.Cat(b)
	if err != nil {
		return err
	}
	content := append(first, second...)

	parent, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	item, err := v.dirLookup(sb, parent, out)
	if err != nil {
		return err
	}
	var outId int32
	if item == nil {
		outId, err = v.createFile(sb, out)
		if err != nil {
			return err
		}
	} else {
		outIno, err := v.readInode(sb, item.Inode)
		if err != nil {
			return err
		}
		if outIno.IsDirectory {
			return ErrIsDirectory.Trace(out)
		}
		outId = item.Inode
	}
	outIno, err := v.readInode(sb, outId)
	if err != nil {
		return err
	}
	return v.writeContent(sb, outId, outIno, content)
}

// Append appends the content of src to the end of dst.
func (v *Volume) Append(src, dst string) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	add, err := v.Cat(src)
	if err != nil {
		return err
	}
	item, ino, err := v.lookupFile(sb, dst)
	if err != nil {
		return err
	}
	if ino.IsDirectory {
		return ErrIsDirectory.Trace(dst)
	}
	content, err := v.readContent(sb, ino)
	if err != nil {
		return err
	}
	return v.writeContent(sb, item.Inode, ino, append(content, add...))
}

// ReadFile is the host-transfer read hook (outcp): raw bytes by name.
func (v *Volume) ReadFile(name string) ([]byte, error) {
	return v.Cat(name)
}

// WriteFile is the host-transfer write hook (incp): creates the file and
// stores the raw bytes.
func (v *Volume) WriteFile(name string, content []byte) error {
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	id, err := v.createFile(sb, name)
	if err != nil {
		return err
	}
	ino, err := v.readInode(sb, id)
	if err != nil {
		return err
	}
	return v.writeContent(sb, id, ino, content)
}
