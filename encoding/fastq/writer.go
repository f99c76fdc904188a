package fastq

import (
	"bufio"
	"io"
)

// Writer is a buffered FASTQ writer. Every record is written as four
// newline-terminated lines. The first error is sticky: once a write fails,
// later writes are dropped and return the same error.
//
// The buffer is flushed only between records, so the underlying writer
// never receives part of a record unless a single record is larger than
// the buffer.
type Writer struct {
	w   *bufio.Writer
	n   int64
	err error
}

const writerBufSize = 256 << 10

// NewWriter constructs a new FASTQ writer that writes reads to the
// underlying writer w. Flush must be called before w is closed.
func NewWriter(w io.Writer) *Writer {
	return newWriterSize(w, writerBufSize)
}

func newWriterSize(w io.Writer, size int) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, size)}
}

// Write writes the read r in FASTQ format.
func (w *Writer) Write(r *Read) error {
	if w.err == nil && w.w.Buffered() > 0 &&
		len(r.ID)+len(r.Seq)+len(r.Unk)+len(r.Qual)+4 > w.w.Available() {
		w.err = w.w.Flush()
	}
	w.writeln(r.ID)
	w.writeln(r.Seq)
	w.writeln(r.Unk)
	w.writeln(r.Qual)
	if w.err == nil {
		w.n++
	}
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	if _, w.err = w.w.WriteString(line); w.err == nil {
		w.err = w.w.WriteByte('\n')
	}
}

// N returns the number of records written.
func (w *Writer) N() int64 { return w.n }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}
