package diskcodec

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSetRoundTrip(t *testing.T) {
	data := EncodeSet("hello", "world")

	dec := NewDecoder(bytes.NewReader(data))
	cmd, n, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, OpSet, cmd.Op)
	require.Equal(t, "hello", cmd.Key)
	require.Equal(t, "world", cmd.Value)
	require.Equal(t, int64(len(data)), n)
}

func TestEncodeDecodeRemoveRoundTrip(t *testing.T) {
	data := EncodeRemove("hello")

	dec := NewDecoder(bytes.NewReader(data))
	cmd, n, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, OpRemove, cmd.Op)
	require.Equal(t, "hello", cmd.Key)
	require.Equal(t, int64(len(data)), n)
}

func TestDecoderReportsNextOffsetAcrossMultipleRecords(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(EncodeSet("a", "1"))
	buf.Write(EncodeSet("b", "22"))
	buf.Write(EncodeRemove("a"))

	dec := NewDecoder(&buf)

	cmd1, n1, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, "a", cmd1.Key)

	cmd2, n2, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, "b", cmd2.Key)
	require.Equal(t, "22", cmd2.Value)

	cmd3, n3, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, OpRemove, cmd3.Op)

	require.Equal(t, int64(len(EncodeSet("a", "1"))), n1)
	require.Equal(t, int64(len(EncodeSet("b", "22"))), n2)
	require.Equal(t, int64(len(EncodeRemove("a"))), n3)

	_, _, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestEncodeSetWithEmptyValue(t *testing.T) {
	data := EncodeSet("key", "")
	cmd, err := DecodeOne(data)
	require.NoError(t, err)
	require.Equal(t, "key", cmd.Key)
	require.Equal(t, "", cmd.Value)
}

func TestDecodeOneRejectsTrailingBytes(t *testing.T) {
	data := append(EncodeSet("k", "v"), 'X')
	_, err := DecodeOne(data)
	require.Error(t, err)
}

func TestDecoderRejectsMalformedHeader(t *testing.T) {
	dec := NewDecoder(bytes.NewReader([]byte("GARBAGE\n")))
	_, _, err := dec.Next()
	require.Error(t, err)
}

func TestDecoderRejectsTruncatedPayload(t *testing.T) {
	full := EncodeSet("key", "value")
	truncated := full[:len(full)-2]
	dec := NewDecoder(bytes.NewReader(truncated))
	_, _, err := dec.Next()
	require.Error(t, err)
}
