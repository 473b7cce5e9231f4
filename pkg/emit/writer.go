package emit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrBufferTooSmall    = errors.New("source buffer too small")
)

// Writer is the program's output sink. Every operation appends to one
// buffered stream in call order; nothing reaches the underlying writer
// until Flush or until the buffer fills.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) WriteInt(v int32) error {
	w.buf = strconv.AppendInt(w.buf[:0], int64(v), 10)
	return w.flushScratch()
}

// WriteChar writes the low byte of c, as putchar does.
func (w *Writer) WriteChar(c int32) error {
	return w.w.WriteByte(byte(c))
}

// WriteFloat writes f in the C "%a" hexadecimal form.
func (w *Writer) WriteFloat(f float32) error {
	w.buf = AppendHexFloat(w.buf[:0], float64(f), -1, false)
	return w.flushScratch()
}

// WriteIntArray writes the first n elements of a separated by single
// spaces. A non-positive n writes nothing.
func (w *Writer) WriteIntArray(n int, a []int32) error {
	if n > len(a) {
		return fmt.Errorf("%w: %d elements requested, %d available", ErrBufferTooSmall, n, len(a))
	}
	w.buf = w.buf[:0]
	for i := 0; i < n; i++ {
		if i > 0 {
			w.buf = append(w.buf, ' ')
		}
		w.buf = strconv.AppendInt(w.buf, int64(a[i]), 10)
	}
	return w.flushScratch()
}

func (w *Writer) WriteFloatArray(n int, a []float32) error {
	if n > len(a) {
		return fmt.Errorf("%w: %d elements requested, %d available", ErrBufferTooSmall, n, len(a))
	}
	w.buf = w.buf[:0]
	for i := 0; i < n; i++ {
		if i > 0 {
			w.buf = append(w.buf, ' ')
		}
		w.buf = AppendHexFloat(w.buf, float64(a[i]), -1, false)
	}
	return w.flushScratch()
}

// WriteFormatted formats args according to format (see Format) and writes
// the result. Nothing is written when the format or arguments are invalid.
func (w *Writer) WriteFormatted(format string, args ...any) error {
	b, err := appendFormat(w.buf[:0], format, args)
	if err != nil {
		return err
	}
	w.buf = b
	return w.flushScratch()
}

// Write appends raw bytes to the sink.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) flushScratch() error {
	_, err := w.w.Write(w.buf)
	return err
}
