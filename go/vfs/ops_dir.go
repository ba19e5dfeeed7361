package vfs

import "github.com/tomasklepac/Virtual-Filesystem/go/bio"

// DirEntry is one row of a directory listing.
type DirEntry struct {
	Name        string
	Inode       int32
	IsDirectory bool
}

func (v *Volume) currentInode(sb *Superblock) (*Inode, error) {
	dir, err := v.readInode(sb, v.current)
	if err != nil {
		return nil, err
	}
	if !dir.IsDirectory {
		return nil, ErrInconsistentDir.Trace(v.current)
	}
	return dir, nil
}

// Mkdir creates a directory in the current working directory: a fresh
// inode plus one data block holding "." and "..", then a new entry
// appended to the parent.
func (v *Volume) Mkdir(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	parent, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	if exists, err := v.dirContains(sb, parent, name); err != nil {
		return err
	} else if exists {
		return ErrExist.Trace(name)
	}
	if parent.EntryCount() >= DirItemsPerBlock {
		return ErrNoSpace.Trace(v.current)
	}

	id, err := v.inodeBitmap(sb).AllocFirstFree(v.raw)
	if err != nil {
		return err
	}
	blk, err := v.dataBitmap(sb).AllocFirstFree(v.raw)
	if err != nil {
		return err
	}

	dir := &Inode{
		Id:          id,
		IsDirectory: true,
		References:  1,
		FileSize:    2 * DirItemSize,
	}
	dir.Direct[0] = blk
	if err := v.writeInode(sb, id, dir); err != nil {
		return err
	}

	dot := NewDirectoryItem(id, ".")
	dotdot := NewDirectoryItem(v.current, "..")
	buf := make([]byte, 2*DirItemSize)
	dot.WriteDisk(bio.NewWriter(buf[:DirItemSize]))
	dotdot.WriteDisk(bio.NewWriter(buf[DirItemSize:]))
	if _, err := v.raw.WriteAt(buf, sb.BlockOffset(blk)); err != nil {
		return err
	}

	return v.dirAppend(sb, v.current, parent, NewDirectoryItem(id, name))
}

// Rmdir removes an empty directory from the current working directory.
func (v *Volume) Rmdir(name string) error {
	if name == "" {
		return ErrInvalidInput.Trace()
	}
	if name == "." || name == ".." {
		return ErrInvalidName.Trace(name)
	}
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	parent, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	item, err := v.dirLookup(sb, parent, name)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrPathNotFound.Trace(name)
	}
	dir, err := v.readInode(sb, item.Inode)
	if err != nil {
		return err
	}
	if !dir.IsDirectory {
		return ErrPathNotFound.Trace(name)
	}
	if dir.EntryCount() > 2 {
		return ErrNotEmpty.Trace(name)
	}

	if err := v.dataBitmap(sb).Free(v.raw, dir.Direct[0]); err != nil {
		return err
	}
	if err := v.inodeBitmap(sb).Free(v.raw, item.Inode); err != nil {
		return err
	}
	return v.dirRemove(sb, v.current, parent, name)
}

// List returns the entries of the current directory, or of the named
// subdirectory, without the "." and ".." links.
func (v *Volume) List(name string) ([]DirEntry, error) {
	sb, err := v.superblock()
	if err != nil {
		return nil, err
	}
	dir, err := v.currentInode(sb)
	if err != nil {
		return nil, err
	}
	if name != "" && name != "." {
		item, err := v.dirLookup(sb, dir, name)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, ErrPathNotFound.Trace(name)
		}
		dir, err = v.readInode(sb, item.Inode)
		if err != nil {
			return nil, err
		}
		if !dir.IsDirectory {
			return nil, ErrPathNotFound.Trace(name)
		}
	}

	entries, err := v.dirEntries(sb, dir)
	if err != nil {
		return nil, err
	}
	var ret []DirEntry
	for i := range entries {
		if entries[i].IsDotLink() {
			continue
		}
		child, err := v.readInode(sb, entries[i].Inode)
		if err != nil {
			return nil, err
		}
		ret = append(ret, DirEntry{
			Name:        entries[i].NameString(),
			Inode:       entries[i].Inode,
			IsDirectory: child.IsDirectory,
		})
	}
	return ret, nil
}

// ChangeDir moves the working-directory cursor. ".." follows the
// directory's parent link, any other name must be a directory in the
// current one, otherwise the cursor stays put.
func (v *Volume) ChangeDir(name string) error {
	if name == "" {
		return ErrInvalidInput.Trace()
	}
	sb, err := v.superblock()
	if err != nil {
		return err
	}
	dir, err := v.currentInode(sb)
	if err != nil {
		return err
	}
	if name == "." {
		return nil
	}
	if name == ".." {
		parent, err := v.parentOf(sb, dir)
		if err != nil {
			return err
		}
		v.current = parent
		return nil
	}

	item, err := v.dirLookup(sb, dir, name)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrPathNotFound.Trace(name)
	}
	target, err := v.readInode(sb, item.Inode)
	if err != nil {
		return err
	}
	if !target.IsDirectory {
		return ErrPathNotFound.Trace(name)
	}
	v.current = item.Inode
	return nil
}

// WorkingDir resolves the absolute path of the cursor by walking ".."
// links up to the root, collecting the child's name in each parent on the
// way. Root is "/", anything else ends with a trailing separator.
func (v *Volume) WorkingDir() (string, error) {
	sb, err := v.superblock()
	if err != nil {
		return "", err
	}
	if v.current == RootInode {
		return "/", nil
	}

	var parts []string
	id := v.current
	for id != RootInode {
		dir, err := v.readInode(sb, id)
		if err != nil {
			return "", err
		}
		parentId, err := v.parentOf(sb, dir)
		if err != nil {
			return "", err
		}
		parent, err := v.readInode(sb, parentId)
		if err != nil {
			return "", err
		}
		name, err := v.childName(sb, parent, id)
		if err != nil {
			return "", err
		}
		parts = append(parts, name)
		id = parentId
	}

	path := "/"
	for i := len(parts) - 1; i >= 0; i-- {
		path += parts[i] + "/"
	}
	return path, nil
}
