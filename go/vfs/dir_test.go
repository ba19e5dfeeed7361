package vfs

import (
	"testing"

	"github.com/chzyer/test"
)

func TestMkdirList(t *testing.T) {
	defer test.New(t)

	vol := testVolume()
	defer vol.Close()

	test.Nil(vol.Mkdir("docs"))
	entries, err := vol.List("")
	test.Nil(err)
	test.Equal(len(entries), 1)
	test.Equal(entries[0].Name, "docs")
	test.Equal(entries[0].IsDirectory, true)

	{ // a fresh directory lists empty and carries the two dot links
		sub, err := vol.List("docs")
		test.Nil(err)
		test.Equal(len(sub), 0)

		sb, err := vol.superblock()
		test.Nil(err)
		dir, err := vol.readInode(sb, entries[0].Inode)
		test.Nil(err)
		test.Equal(dir.EntryCount(), int32(2))
		test.Equal(dir.FileSize%DirItemSize, int32(0))
		items, err := vol.dirEntries(sb, dir)
		test.Nil(err)
		test.Equal(items[0].NameString(), ".")
		test.Equal(items[0].Inode, entries[0].Inode)
		test.Equal(items[1].NameString(), "..")
		test.Equal(items[1].Inode, int32(RootInode))
	}

	test.Nil(vol.Touch("note"))
	entries, err = vol.List("")
	test.Nil(err)
	test.Equal(len(entries), 2)

	test.Equal(Token(vol.Mkdir("docs")), "EXIST")
	test.Equal(Token(vol.Mkdir("")), "INVALID NAME")
	test.Equal(Token(vol.Mkdir("abcdefghijkl")), "INVALID NAME") // 12 chars
	test.Equal(Token(vol.Mkdir("a/b")), "INVALID NAME")
	test.Nil(vol.Mkdir("abcdefghijk")) // 11 chars is the ceiling

	_, err = vol.List("note")
	test.Equal(Token(err), "PATH NOT FOUND")
	_, err = vol.List("ghost")
	test.Equal(Token(err), "PATH NOT FOUND")
}

func TestChangeDir(t *testing.T) {
	defer test.New(t)

	vol := testVolume()
	defer vol.Close()

	test.Nil(vol.Mkdir("docs"))
	test.Nil(vol.ChangeDir("docs"))
	wd, err := vol.WorkingDir()
	test.Nil(err)
	test.Equal(wd, "/docs/")

	test.Nil(vol.Mkdir("sub"))
	test.Nil(vol.ChangeDir("sub"))
	wd, err = vol.WorkingDir()
	test.Nil(err)
	test.Equal(wd, "/docs/sub/")

	{ // "." stays put, ".." climbs one level
		test.Nil(vol.ChangeDir("."))
		wd, err := vol.WorkingDir()
		test.Nil(err)
		test.Equal(wd, "/docs/sub/")

		test.Nil(vol.ChangeDir(".."))
		wd, err = vol.WorkingDir()
		test.Nil(err)
		test.Equal(wd, "/docs/")
	}

	{ // ".." at root is a no-op, root is its own parent
		test.Nil(vol.ChangeDir(".."))
		test.Nil(vol.ChangeDir(".."))
		wd, err := vol.WorkingDir()
		test.Nil(err)
		test.Equal(wd, "/")
	}

	{ // a failed cd leaves the cursor where it was
		test.Nil(vol.Touch("plain"))
		test.Equal(Token(vol.ChangeDir("plain")), "PATH NOT FOUND")
		test.Equal(Token(vol.ChangeDir("ghost")), "PATH NOT FOUND")
		test.Equal(Token(vol.ChangeDir("")), "INVALID INPUT")
		wd, err := vol.WorkingDir()
		test.Nil(err)
		test.Equal(wd, "/")
	}
}

func TestRmdir(t *testing.T) {
	defer test.New(t)

	vol := testVolume()
	defer vol.Close()

	test.Nil(vol.Mkdir("docs"))
	test.Nil(vol.ChangeDir("docs"))
	test.Nil(vol.Mkdir("inner"))
	test.Nil(vol.ChangeDir(".."))

	test.Equal(Token(vol.Rmdir("docs")), "NOT EMPTY")

	test.Nil(vol.ChangeDir("docs"))
	test.Nil(vol.Rmdir("inner"))
	test.Nil(vol.ChangeDir(".."))
	test.Nil(vol.Rmdir("docs"))

	entries, err := vol.List("")
	test.Nil(err)
	test.Equal(len(entries), 0)

	{ // removal returns the inode and the block to the bitmaps
		st, err := vol.Statfs()
		test.Nil(err)
		test.Equal(st.UsedInodes, int32(1))
		test.Equal(st.UsedBlocks, int32(1))
	}

	test.Equal(Token(vol.Rmdir("docs")), "PATH NOT FOUND")
	test.Nil(vol.Touch("plain"))
	test.Equal(Token(vol.Rmdir("plain")), "PATH NOT FOUND")
	test.Equal(Token(vol.Rmdir(".")), "INVALID NAME")
	test.Equal(Token(vol.Rmdir("..")), "INVALID NAME")
	test.Equal(Token(vol.Rmdir("")), "INVALID INPUT")
}
