package shell

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/logex"
	"github.com/chzyer/readline"

	"github.com/tomasklepac/Virtual-Filesystem/go/vfs"
)

// Shell is the interactive command layer over one mounted volume: parsing,
// token printing and host byte transfer live here, everything else is the
// core's business.
type Shell struct {
	vol *vfs.Volume
	out *os.File
}

func New(vol *vfs.Volume) *Shell {
	return &Shell{vol: vol, out: os.Stdout}
}

func (s *Shell) prompt() string {
	wd, err := s.vol.WorkingDir()
	if err != nil {
		return s.vol.Name() + "> "
	}
	return s.vol.Name() + ":" + wd + "> "
}

// Run reads commands until exit or EOF.
func (s *Shell) Run() error {
	rl, err := readline.New(s.prompt())
	if err != nil {
		return logex.Trace(err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if !s.Exec(line) {
			break
		}
	}
	return nil
}

// Load runs a batch script line by line, echoing each command the way the
// interactive prompt would show it.
func (s *Shell) Load(path string) error {
	fd, err := os.Open(path)
	if err != nil {
		return vfs.ErrFileNotFound.Trace(path)
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Fprintln(s.out, "> "+line)
		if !s.Exec(line) {
			break
		}
	}
	return logex.Trace(scanner.Err())
}

func (s *Shell) print(args ...interface{}) {
	fmt.Fprintln(s.out, args...)
}

func (s *Shell) token(err error) {
	s.print(vfs.Token(err))
}

// Exec runs one command line. It returns false when the session should
// end.
func (s *Shell) Exec(line string) bool {
	sp := strings.Fields(line)
	if len(sp) == 0 {
		return true
	}
	cmd, args := sp[0], sp[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "format":
		s.cmdFormat(args)
	case "mkdir":
		s.cmdName(args, s.vol.Mkdir)
	case "rmdir":
		s.cmdName(args, s.vol.Rmdir)
	case "touch":
		s.cmdName(args, s.vol.Touch)
	case "rm":
		s.cmdName(args, s.vol.Remove)
	case "cd":
		s.cmdName(args, s.vol.ChangeDir)
	case "ls":
		s.cmdList(args)
	case "pwd":
		s.cmdPwd()
	case "cat":
		s.cmdCat(args)
	case "write":
		s.cmdWrite(args, line)
	case "info":
		s.cmdInfo(args)
	case "statfs":
		s.cmdStatfs()
	case "cp":
		s.cmdPair(args, s.vol.Copy)
	case "mv":
		s.cmdPair(args, s.vol.Move)
	case "add":
		s.cmdPair(args, s.vol.Append)
	case "xcp":
		s.cmdConcat(args)
	case "incp":
		s.cmdIncp(args)
	case "outcp":
		s.cmdOutcp(args)
	case "load":
		s.cmdLoad(args)
	case "rep":
		s.cmdReport(args)
	default:
		s.print("unknown command:", cmd)
	}
	return true
}

func (s *Shell) cmdFormat(args []string) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	sizeMB, err := strconv.Atoi(args[0])
	if err != nil || sizeMB <= 0 {
		s.token(vfs.ErrInvalidInput.Trace(args[0]))
		return
	}
	s.token(s.vol.Format(int64(sizeMB) * vfs.BytesPerMB))
}

func (s *Shell) cmdName(args []string, op func(string) error) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	s.token(op(args[0]))
}

func (s *Shell) cmdPair(args []string, op func(string, string) error) {
	if len(args) != 2 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	s.token(op(args[0], args[1]))
}

func (s *Shell) cmdList(args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	entries, err := s.vol.List(name)
	if err != nil {
		s.token(err)
		return
	}
	for _, e := range entries {
		if e.IsDirectory {
			s.print("DIR: " + e.Name)
		} else {
			s.print("FILE: " + e.Name)
		}
	}
}

func (s *Shell) cmdPwd() {
	wd, err := s.vol.WorkingDir()
	if err != nil {
		s.token(err)
		return
	}
	s.print(wd)
}

func (s *Shell) cmdCat(args []string) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	content, err := s.vol.Cat(args[0])
	if err != nil {
		s.token(err)
		return
	}
	s.print(string(content))
}

// write keeps everything after the file name verbatim, spaces included.
func (s *Shell) cmdWrite(args []string, line string) {
	if len(args) < 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	name := args[0]
	rest := strings.TrimLeft(strings.TrimSpace(line)[len("write"):], " ")
	content := strings.TrimLeft(strings.TrimPrefix(rest, name), " ")
	s.token(s.vol.Write(name, []byte(content)))
}

func (s *Shell) cmdInfo(args []string) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	info, err := s.vol.Info(args[0])
	if err != nil {
		s.token(err)
		return
	}
	kind := "FILE"
	if info.IsDirectory {
		kind = "DIR"
	}
	s.print(fmt.Sprintf("%s: %s", kind, info.Name))
	s.print("inode:", info.Inode)
	s.print("references:", info.References)
	s.print("size:", info.FileSize)
	s.print("direct:", info.Direct)
	s.print("indirect:", info.Indirect)
	s.print("blocks:", info.Blocks)
}

func (s *Shell) cmdStatfs() {
	st, err := s.vol.Statfs()
	if err != nil {
		s.token(err)
		return
	}
	s.print("signature:", st.Signature)
	s.print("descriptor:", st.Descriptor)
	s.print("disk size:", st.DiskSize)
	s.print("cluster size:", st.ClusterSize)
	s.print("cluster count:", st.ClusterCount)
	s.print(fmt.Sprintf("inodes: %d used / %d free", st.UsedInodes, st.FreeInodes))
	s.print(fmt.Sprintf("blocks: %d used / %d free", st.UsedBlocks, st.FreeBlocks))
}

func (s *Shell) cmdConcat(args []string) {
	if len(args) != 3 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	s.token(s.vol.Concat(args[0], args[1], args[2]))
}

func (s *Shell) cmdIncp(args []string) {
	if len(args) != 2 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		s.token(vfs.ErrFileNotFound.Trace(args[0]))
		return
	}
	s.token(s.vol.WriteFile(args[1], content))
}

func (s *Shell) cmdOutcp(args []string) {
	if len(args) != 2 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	content, err := s.vol.ReadFile(args[0])
	if err != nil {
		s.token(err)
		return
	}
	if err := os.WriteFile(args[1], content, 0644); err != nil {
		s.token(vfs.ErrPathNotFound.Trace(args[1]))
		return
	}
	s.token(nil)
}

func (s *Shell) cmdLoad(args []string) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	if err := s.Load(args[0]); err != nil {
		s.token(err)
		return
	}
	s.token(nil)
}

func (s *Shell) cmdReport(args []string) {
	if len(args) != 1 {
		s.token(vfs.ErrInvalidInput.Trace())
		return
	}
	if err := Report(s.vol, args[0]); err != nil {
		s.token(err)
		return
	}
	s.token(nil)
}
