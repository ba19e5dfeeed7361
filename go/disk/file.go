package disk

import (
	"os"
	"sync/atomic"
	"syscall"

	"github.com/chzyer/logex"
)

var (
	ErrFileClosed = logex.Define("file is closed")
	ErrFileLocked = logex.Define("file is locked by another process")
)

// File is a single flat host file acting as the virtual disk. It keeps one
// open descriptor and holds an exclusive flock for its whole lifetime, there
// is assumed to be exactly one caller.
type File struct {
	path   string
	fd     *os.File
	closed int32
}

func NewFile(path string) (*File, error) {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, logex.Trace(err)
	}
	if err := syscall.Flock(int(fd.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		fd.Close()
		return nil, ErrFileLocked.Trace(path)
	}
	return &File{path: path, fd: fd}, nil
}

// Exists reports whether the virtual disk has been created already.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

func (f *File) Name() string {
	return f.path
}

func (f *File) ReadAt(b []byte, off int64) (int, error) {
	if atomic.LoadInt32(&f.closed) != 0 {
		return 0, ErrFileClosed.Trace()
	}
	n, err := f.fd.ReadAt(b, off)
	if err != nil {
		err = logex.Trace(err)
	}
	return n, err
}

func (f *File) WriteAt(b []byte, off int64) (int, error) {
	if atomic.LoadInt32(&f.closed) != 0 {
		return 0, ErrFileClosed.Trace()
	}
	n, err := f.fd.WriteAt(b, off)
	if err != nil {
		err = logex.Trace(err)
	}
	return n, err
}

// Resize extends (or shrinks) the backing file to the given size.
func (f *File) Resize(size int64) error {
	if atomic.LoadInt32(&f.closed) != 0 {
		return ErrFileClosed.Trace()
	}
	return logex.Trace(f.fd.Truncate(size))
}

func (f *File) Size() (int64, error) {
	info, err := f.fd.Stat()
	if err != nil {
		return 0, logex.Trace(err)
	}
	return info.Size(), nil
}

func (f *File) Sync() error {
	return logex.Trace(f.fd.Sync())
}

func (f *File) Close() error {
	if !atomic.CompareAndSwapInt32(&f.closed, 0, 1) {
		return nil
	}
	syscall.Flock(int(f.fd.Fd()), syscall.LOCK_UN)
	return f.fd.Close()
}
