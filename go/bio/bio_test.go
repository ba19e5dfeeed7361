package bio

import (
	"testing"

	"github.com/chzyer/logex"
	"github.com/chzyer/test"
)

type testRecord struct {
	A int32
	B int8
	C int64
}

func (r *testRecord) Size() int { return 13 }

func (r *testRecord) ReadDisk(rd *Reader) error {
	r.A = rd.Int32()
	r.B = rd.Int8()
	r.C = rd.Int64()
	return nil
}

func (r *testRecord) WriteDisk(w *Writer) {
	w.Int32(r.A)
	w.Int8(r.B)
	w.Int64(r.C)
}

func TestReadWriter(t *testing.T) {
	defer test.New(t)

	buf := make([]byte, 32)
	w := NewWriter(buf)
	w.Int32(-259)
	w.Int8(7)
	w.Int64(1 << 40)
	w.Byte([]byte("ab"))
	w.Skip(2)
	test.Equal(w.Offset(), 17)
	test.Equal(w.Available(), 15)

	// on disk the low byte comes first
	test.Equal(buf[0], byte(0xfd))
	test.Equal(buf[1], byte(0xfe))

	r := NewReader(buf)
	test.Equal(r.Int32(), int32(-259))
	test.Equal(r.Int8(), int8(7))
	test.Equal(r.Int64(), int64(1<<40))
	test.EqualBytes(r.Byte(2), []byte("ab"))
	r.Skip(2)
	test.Equal(r.Offset(), 17)
	test.Equal(r.Available(), 15)
}

func TestReadWriterDisk(t *testing.T) {
	defer test.New(t)

	buf := make([]byte, 13)
	rec := &testRecord{A: 42, B: -1, C: 1024}
	test.Nil(NewWriter(buf).WriteDisk(rec))

	got := new(testRecord)
	test.Nil(NewReader(buf).ReadDisk(got))
	test.Equal(got, rec)

	{ // record does not fit
		small := make([]byte, 12)
		err := NewWriter(small).WriteDisk(rec)
		test.Equal(logex.Equal(err, ErrWriterBufferFull), true)
		err = NewReader(small).ReadDisk(new(testRecord))
		test.Equal(logex.Equal(err, ErrReaderBufferFull), true)
	}
}

func TestReadWriteAt(t *testing.T) {
	defer test.New(t)

	md := test.NewMemDisk()
	rec := &testRecord{A: 1, B: 2, C: 3}
	test.Nil(WriteAt(md, 64, rec))

	got := new(testRecord)
	test.Nil(ReadAt(md, 64, got))
	test.Equal(got, rec)
}
