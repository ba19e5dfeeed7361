package bio

// RawDisker is the minimal surface the backing store has to provide.
type RawDisker interface {
	ReadAt(b []byte, off int64) (n int, err error)
	WriteAt(b []byte, off int64) (n int, err error)
}

// Diskable is a fixed-layout on-disk record.
type Diskable interface {
	Size() int
	ReadDisk(r *Reader) error
	WriteDisk(w *Writer)
}
