package vfs

import (
	"testing"

	"github.com/chzyer/test"
)

// The mapping is exercised directly here, file content can never reach the
// second indirection block because the data bitmap runs out first.
func TestBlockMapping(t *testing.T) {
	defer test.New(t)

	vol := testVolume()
	defer vol.Close()
	sb, err := vol.superblock()
	test.Nil(err)

	ino := &Inode{Id: 1}

	{ // unallocated slots read as zero in every range
		for _, k := range []int{0, 4, 5, 260, 261, 516} {
			blk, err := vol.blockAt(sb, ino, k)
			test.Nil(err)
			test.Equal(blk, int32(0))
		}
		_, err := vol.blockAt(sb, ino, MaxFileBlocks)
		test.Equal(Token(err), "NO SPACE")
	}

	db := vol.dataBitmap(sb)

	{ // direct range
		blk, err := db.AllocFirstFree(vol.raw)
		test.Nil(err)
		test.Nil(vol.setBlockAt(sb, ino, 0, blk))
		test.Equal(ino.Direct[0], blk)
		got, err := vol.blockAt(sb, ino, 0)
		test.Nil(err)
		test.Equal(got, blk)
	}

	{ // first indirection block appears lazily
		test.Equal(ino.Indirect[0], int32(0))
		blk, err := db.AllocFirstFree(vol.raw)
		test.Nil(err)
		test.Nil(vol.setBlockAt(sb, ino, DirectBlocks, blk))
		test.True(ino.Indirect[0] != 0)
		got, err := vol.blockAt(sb, ino, DirectBlocks)
		test.Nil(err)
		test.Equal(got, blk)

		// a freshly zeroed pointer array: the neighbour slot stays empty
		got, err = vol.blockAt(sb, ino, DirectBlocks+1)
		test.Nil(err)
		test.Equal(got, int32(0))
	}

	{ // second indirection block covers the top range
		blk, err := db.AllocFirstFree(vol.raw)
		test.Nil(err)
		k := DirectBlocks + PointersPerBlock
		test.Nil(vol.setBlockAt(sb, ino, k, blk))
		test.True(ino.Indirect[1] != 0)
		got, err := vol.blockAt(sb, ino, k)
		test.Nil(err)
		test.Equal(got, blk)

		got, err = vol.blockAt(sb, ino, MaxFileBlocks-1)
		test.Nil(err)
		test.Equal(got, int32(0))

		err = vol.setBlockAt(sb, ino, MaxFileBlocks, blk)
		test.Equal(Token(err), "NO SPACE")
	}

	{ // releaseIndirect drops only what the new size no longer needs
		test.Nil(vol.releaseIndirect(sb, ino, DirectBlocks+1))
		test.True(ino.Indirect[0] != 0)
		test.Equal(ino.Indirect[1], int32(0))
		test.Nil(vol.releaseIndirect(sb, ino, 1))
		test.Equal(ino.Indirect[0], int32(0))
	}
}
