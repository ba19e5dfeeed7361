package main

import (
	"fmt"
	"os"

	"github.com/chzyer/logex"

	"github.com/tomasklepac/Virtual-Filesystem/go/shell"
	"github.com/tomasklepac/Virtual-Filesystem/go/vfs"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: vfs <disk-image> [script]")
		os.Exit(1)
	}

	vol, err := vfs.Open(os.Args[1])
	if err != nil {
		logex.Fatal(err)
	}
	defer vol.Close()

	sh := shell.New(vol)
	if len(os.Args) > 2 {
		if err := sh.Load(os.Args[2]); err != nil {
			logex.Fatal(err)
		}
		return
	}
	if err := sh.Run(); err != nil {
		logex.Fatal(err)
	}
}
