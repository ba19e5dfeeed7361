package vfs

import (
	"github.com/chzyer/logex"

	"github.com/tomasklepac/Virtual-Filesystem/go/disk"
)

var ErrBitmapRange = logex.Define("bitmap index out of range")

// Bitmap is a first-fit allocator over a fixed on-disk byte region, one
// byte per allocation unit. One instance covers inode ids, another covers
// data block ids.
type Bitmap struct {
	start int64
	size  int32 // on-disk region length in bytes
	units int32 // allocatable units, units <= size
}

func NewBitmap(start int32, size int32, units int32) *Bitmap {
	if units > size {
		units = size
	}
	return &Bitmap{start: int64(start), size: size, units: units}
}

func (b *Bitmap) load(d disk.Disk) ([]byte, error) {
	buf := make([]byte, b.size)
	if _, err := d.ReadAt(buf, b.start); err != nil {
		return nil, logex.Trace(err)
	}
	return buf, nil
}

func (b *Bitmap) store(d disk.Disk, buf []byte) error {
	if _, err := d.WriteAt(buf, b.start); err != nil {
		return logex.Trace(err)
	}
	return nil
}

// AllocFirstFree scans for the lowest free unit, marks it used, persists
// the bitmap and returns its index. Lowest index always wins, which makes
// id reuse after Free deterministic.
func (b *Bitmap) AllocFirstFree(d disk.Disk) (int32, error) {
	buf, err := b.load(d)
	if err != nil {
		return -1, err
	}
	for i := int32(0); i < b.units; i++ {
		if buf[i] == 0 {
			buf[i] = 1
			if err := b.store(d, buf); err != nil {
				return -1, err
			}
			return i, nil
		}
	}
	return -1, ErrNoSpace.Trace()
}

// Free clears the unit at idx. Indices outside the region are rejected.
func (b *Bitmap) Free(d disk.Disk, idx int32) error {
	if idx < 0 || idx >= b.units {
		return ErrBitmapRange.Trace(idx)
	}
	buf, err := b.load(d)
	if err != nil {
		return err
	}
	buf[idx] = 0
	return b.store(d, buf)
}

func (b *Bitmap) Set(d disk.Disk, idx int32) error {
	if idx < 0 || idx >= b.units {
		return ErrBitmapRange.Trace(idx)
	}
	buf, err := b.load(d)
	if err != nil {
		return err
	}
	buf[idx] = 1
	return b.store(d, buf)
}

func (b *Bitmap) IsSet(d disk.Disk, idx int32) (bool, error) {
	if idx < 0 || idx >= b.units {
		return false, ErrBitmapRange.Trace(idx)
	}
	buf, err := b.load(d)
	if err != nil {
		return false, err
	}
	return buf[idx] != 0, nil
}

// Used counts allocated units, for statfs reporting.
func (b *Bitmap) Used(d disk.Disk) (int32, error) {
	buf, err := b.load(d)
	if err != nil {
		return 0, err
	}
	var n int32
	for i := int32(0); i < b.units; i++ {
		if buf[i] != 0 {
			n++
		}
	}
	return n, nil
}

func (b *Bitmap) Units() int32 {
	return b.units
}
