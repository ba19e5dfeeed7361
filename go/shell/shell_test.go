package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/test"

	"github.com/tomasklepac/Virtual-Filesystem/go/vfs"
)

type testShell struct {
	*Shell
	vol *vfs.Volume
	fd  *os.File
}

func newTestShell() *testShell {
	root := test.Root()
	if err := os.MkdirAll(root, 0744); err != nil {
		panic(err)
	}
	vol, err := vfs.Open(filepath.Join(root, "disk.img"))
	test.Nil(err)
	s := New(vol)
	fd, err := os.Create(filepath.Join(root, "out.txt"))
	test.Nil(err)
	s.out = fd
	return &testShell{Shell: s, vol: vol, fd: fd}
}

func (s *testShell) close() {
	s.fd.Close()
	s.vol.Close()
}

// run executes the lines and returns the printed output split by line.
func (s *testShell) run(lines ...string) []string {
	off, err := s.fd.Seek(0, os.SEEK_END)
	test.Nil(err)
	for _, line := range lines {
		s.Exec(line)
	}
	end, err := s.fd.Seek(0, os.SEEK_END)
	test.Nil(err)
	buf := make([]byte, end-off)
	_, err = s.fd.ReadAt(buf, off)
	test.Nil(err)
	return strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
}

func TestExec(t *testing.T) {
	defer test.New(t)

	s := newTestShell()
	defer s.close()

	test.Equal(s.run("mkdir docs"), []string{"NOT FORMATTED"})
	test.Equal(s.run("format 1"), []string{"OK"})
	test.Equal(s.run("format", "format x", "format -2"), []string{
		"INVALID INPUT", "INVALID INPUT", "INVALID INPUT",
	})

	test.Equal(s.run("mkdir docs", "ls", "pwd"), []string{
		"OK", "DIR: docs", "/",
	})
	test.Equal(s.run("cd docs", "pwd"), []string{"OK", "/docs/"})

	test.Equal(s.run(
		"touch a.txt",
		"write a.txt hello world",
		"cat a.txt",
	), []string{"OK", "OK", "hello world"})

	test.Equal(s.run("ls"), []string{"FILE: a.txt"})
	test.Equal(s.run("info a.txt")[0], "FILE: a.txt")

	test.Equal(s.run("rm a.txt", "cat a.txt"), []string{"OK", "FILE NOT FOUND"})
	test.Equal(s.run("bogus"), []string{"unknown command: bogus"})
	test.Equal(s.run(""), []string{""})

	test.Equal(s.Exec("exit"), false)
	test.Equal(s.Exec("quit"), false)
	test.Equal(s.Exec("ls"), true)
}

func TestExecStatfs(t *testing.T) {
	defer test.New(t)

	s := newTestShell()
	defer s.close()

	s.run("format 1")
	out := s.run("statfs")
	test.Equal(len(out), 7)
	test.Equal(out[0], "signature: "+vfs.DefaultSignature)
	test.Equal(out[1], "descriptor: "+vfs.DefaultDescriptor)
	test.Equal(out[5], "inodes: 1 used / 106 free")
	test.Equal(out[6], "blocks: 1 used / 127 free")
}

func TestHostCopy(t *testing.T) {
	defer test.New(t)

	s := newTestShell()
	defer s.close()
	s.run("format 1")

	root := filepath.Dir(s.vol.Name())
	hostIn := filepath.Join(root, "host-in.bin")
	hostOut := filepath.Join(root, "host-out.bin")
	content := test.RandBytes(3000)
	test.Nil(os.WriteFile(hostIn, content, 0644))

	test.Equal(s.run("incp "+hostIn+" data"), []string{"OK"})
	test.Equal(s.run("outcp data "+hostOut), []string{"OK"})
	got, err := os.ReadFile(hostOut)
	test.Nil(err)
	test.EqualBytes(got, content)

	test.Equal(s.run("incp "+filepath.Join(root, "ghost")+" x"), []string{"FILE NOT FOUND"})
	test.Equal(s.run("outcp ghost "+hostOut), []string{"FILE NOT FOUND"})
	test.Equal(s.run("outcp data "+filepath.Join(root, "no", "dir")), []string{"PATH NOT FOUND"})
}

func TestLoad(t *testing.T) {
	defer test.New(t)

	s := newTestShell()
	defer s.close()

	root := filepath.Dir(s.vol.Name())
	script := filepath.Join(root, "setup.txt")
	body := strings.Join([]string{
		"# initial layout",
		"format 1",
		"mkdir docs",
		"cd docs",
		"",
		"pwd",
	}, "\n")
	test.Nil(os.WriteFile(script, []byte(body), 0644))

	test.Nil(s.Load(script))
	out := s.run("ls ..")
	test.Equal(out, []string{"DIR: docs"})

	test.Equal(s.run("load "+filepath.Join(root, "ghost.txt")), []string{"FILE NOT FOUND"})
}

func TestReport(t *testing.T) {
	defer test.New(t)

	s := newTestShell()
	defer s.close()
	s.run("format 1", "mkdir docs")

	path := filepath.Join(filepath.Dir(s.vol.Name()), "report.png")
	test.Equal(s.run("rep "+path), []string{"OK"})
	info, err := os.Stat(path)
	test.Nil(err)
	test.True(info.Size() > 0)
}
