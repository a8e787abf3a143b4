package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := &Request{Op: OpSet, Key: "key", Value: "value"}

	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestResponseRoundTripWithValue(t *testing.T) {
	var buf bytes.Buffer
	value := "value"
	resp := &Response{OK: true, Value: &value}

	require.NoError(t, WriteResponse(&buf, resp))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.True(t, got.OK)
	require.NotNil(t, got.Value)
	require.Equal(t, value, *got.Value)
}

func TestResponseRoundTripWithoutValue(t *testing.T) {
	var buf bytes.Buffer
	resp := &Response{OK: true, Value: nil}

	require.NoError(t, WriteResponse(&buf, resp))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.True(t, got.OK)
	require.Nil(t, got.Value)
}

func TestErrorResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	resp := &Response{OK: false, Err: "Key not found"}

	require.NoError(t, WriteResponse(&buf, resp))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	require.False(t, got.OK)
	require.Equal(t, "Key not found", got.Err)
}

func TestReadRequestRejectsOversizedMessage(t *testing.T) {
	var buf bytes.Buffer
	var lenPrefix [4]byte
	lenPrefix[0] = 0xFF // forces a length far beyond maxMessageSize
	buf.Write(lenPrefix[:])

	_, err := ReadRequest(&buf)
	require.Error(t, err)
}

func TestReadRequestRejectsShortLengthPrefix(t *testing.T) {
	_, err := ReadRequest(bytes.NewReader([]byte{0, 0}))
	require.Error(t, err)
}
