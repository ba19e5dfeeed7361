package vfs

import "github.com/tomasklepac/Virtual-Filesystem/go/bio"

var _ bio.Diskable = new(DirectoryItem)

// DirectoryItem binds a name to an inode id. Names are null-terminated
// with at most MaxNameLen usable characters.
type DirectoryItem struct {
	Inode int32
	Name  [12]byte
}

func NewDirectoryItem(ino int32, name string) DirectoryItem {
	item := DirectoryItem{Inode: ino}
	copy(item.Name[:len(item.Name)-1], name)
	return item
}

func (d *DirectoryItem) Size() int {
	return DirItemSize
}

func (d *DirectoryItem) ReadDisk(r *bio.Reader) error {
	d.Inode = r.Int32()
	copy(d.Name[:], r.Byte(len(d.Name)))
	return nil
}

func (d *DirectoryItem) WriteDisk(w *bio.Writer) {
	w.Int32(d.Inode)
	w.Byte(d.Name[:])
}

func (d *DirectoryItem) NameString() string {
	return cstring(d.Name[:])
}

func (d *DirectoryItem) IsDotLink() bool {
	name := d.NameString()
	return name == "." || name == ".."
}
