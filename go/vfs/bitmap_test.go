package vfs

import (
	"testing"

	"github.com/chzyer/logex"
	"github.com/chzyer/test"

	"github.com/tomasklepac/Virtual-Filesystem/go/disk"
)

func testMemBitmap(start int32, size, units int32) (*Bitmap, disk.Disk) {
	md := test.NewMemDisk()
	if _, err := md.WriteAt(make([]byte, start+size), 0); err != nil {
		panic(err)
	}
	return NewBitmap(start, size, units), md
}

func TestBitmapAlloc(t *testing.T) {
	defer test.New(t)

	b, md := testMemBitmap(0, 128, 128)
	test.Equal(b.Units(), int32(128))

	for i := int32(0); i < 3; i++ {
		idx, err := b.AllocFirstFree(md)
		test.Nil(err)
		test.Equal(idx, i)
	}
	used, err := b.Used(md)
	test.Nil(err)
	test.Equal(used, int32(3))

	{ // the lowest freed unit is the next one handed out
		test.Nil(b.Free(md, 1))
		idx, err := b.AllocFirstFree(md)
		test.Nil(err)
		test.Equal(idx, int32(1))
	}

	set, err := b.IsSet(md, 2)
	test.Nil(err)
	test.Equal(set, true)
	test.Nil(b.Free(md, 2))
	set, err = b.IsSet(md, 2)
	test.Nil(err)
	test.Equal(set, false)
	test.Nil(b.Set(md, 2))
	set, err = b.IsSet(md, 2)
	test.Nil(err)
	test.Equal(set, true)
}

func TestBitmapExhausted(t *testing.T) {
	defer test.New(t)

	b, md := testMemBitmap(0, 128, 4)
	for i := int32(0); i < 4; i++ {
		idx, err := b.AllocFirstFree(md)
		test.Nil(err)
		test.Equal(idx, i)
	}
	_, err := b.AllocFirstFree(md)
	test.Equal(logex.Equal(err, ErrNoSpace), true)
}

func TestBitmapRange(t *testing.T) {
	defer test.New(t)

	b, md := testMemBitmap(16, 128, 128)
	test.Equal(logex.Equal(b.Free(md, -1), ErrBitmapRange), true)
	test.Equal(logex.Equal(b.Free(md, 128), ErrBitmapRange), true)
	test.Equal(logex.Equal(b.Set(md, 128), ErrBitmapRange), true)
	_, err := b.IsSet(md, 200)
	test.Equal(logex.Equal(err, ErrBitmapRange), true)

	// units never exceed the region size
	test.Equal(NewBitmap(0, 8, 16).Units(), int32(8))
}
