package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWriter(&buf), &buf
}

func TestWriteIntArrayThenNewline(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.WriteIntArray(3, []int32{1, 2, 3}))
	require.NoError(t, w.WriteChar('\n'))
	require.NoError(t, w.Flush())

	assert.Equal(t, "1 2 3\n", buf.String())
}

func TestWriteScalarsHaveNoSeparators(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.WriteInt(-12))
	require.NoError(t, w.WriteInt(34))
	require.NoError(t, w.WriteChar('x'))
	require.NoError(t, w.WriteFloat(3.5))
	require.NoError(t, w.WriteChar(0x100+'!'))
	require.NoError(t, w.Flush())

	assert.Equal(t, "-1234x0x1.cp+1!", buf.String())
}

func TestWriteArrays(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer) error
		want  string
	}{
		{
			name:  "Prefix of int array",
			write: func(w *Writer) error { return w.WriteIntArray(2, []int32{7, -8, 9}) },
			want:  "7 -8",
		},
		{
			name:  "Empty int array",
			write: func(w *Writer) error { return w.WriteIntArray(0, nil) },
			want:  "",
		},
		{
			name:  "Negative count",
			write: func(w *Writer) error { return w.WriteIntArray(-3, []int32{1}) },
			want:  "",
		},
		{
			name:  "Float array",
			write: func(w *Writer) error { return w.WriteFloatArray(3, []float32{1, 0.5, -2}) },
			want:  "0x1p+0 0x1p-1 -0x1p+1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, buf := newTestWriter()
			require.NoError(t, tt.write(w))
			require.NoError(t, w.Flush())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteArrayBufferTooSmall(t *testing.T) {
	w, buf := newTestWriter()

	assert.ErrorIs(t, w.WriteIntArray(4, []int32{1, 2}), ErrBufferTooSmall)
	assert.ErrorIs(t, w.WriteFloatArray(1, nil), ErrBufferTooSmall)
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())
}

func TestOutputIsBufferedAndOrdered(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.WriteInt(1))
	require.NoError(t, w.WriteFormatted(" %d ", 2))
	_, err := w.Write([]byte("three"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	require.NoError(t, w.Flush())
	assert.Equal(t, "1 2 three", buf.String())
}

func TestWriteFormattedRejectsWithoutWriting(t *testing.T) {
	w, buf := newTestWriter()

	err := w.WriteFormatted("ok %d then %q", 1, 2)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())
}
