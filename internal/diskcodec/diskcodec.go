// Package diskcodec implements the on-disk framing for command records: the
// self-delimiting text encoding that segment files are made of.
//
// Each record carries its own lengths in an ASCII header line, so a decoder
// can tell exactly how many bytes it consumed without parsing whatever comes
// next. That is what lets the index store (offset, length) pointers and
// re-read a single record later without touching its neighbors.
//
// This framing is independent of the wire protocol in internal/protocol:
// changing one never requires changing the other.
package diskcodec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// Op identifies which command variant a record encodes.
type Op uint8

const (
	OpSet Op = iota
	OpRemove
)

// Command is the decoded form of one on-disk record.
type Command struct {
	Op    Op
	Key   string
	Value string // Empty and meaningless for OpRemove.
}

const (
	setTag = "SET"
	rmTag  = "RM"
)

// EncodeSet renders a Set command as "SET <keyLen> <valLen>\n<key><value>".
func EncodeSet(key, value string) []byte {
	header := fmt.Sprintf("%s %d %d\n", setTag, len(key), len(value))
	buf := make([]byte, 0, len(header)+len(key)+len(value))
	buf = append(buf, header...)
	buf = append(buf, key...)
	buf = append(buf, value...)
	return buf
}

// EncodeRemove renders a Remove command as "RM <keyLen>\n<key>".
func EncodeRemove(key string) []byte {
	header := fmt.Sprintf("%s %d\n", rmTag, len(key))
	buf := make([]byte, 0, len(header)+len(key))
	buf = append(buf, header...)
	buf = append(buf, key...)
	return buf
}

// Decoder streams records off an io.Reader, one at a time, reporting the
// total number of bytes each record occupied.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r for sequential record decoding.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next reads and decodes the next record. It returns io.EOF (unwrapped) once
// the reader is exhausted at a record boundary. Any other error indicates a
// malformed or truncated record.
func (d *Decoder) Next() (*Command, int64, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, 0, io.EOF
		}
		return nil, 0, errors.NewStorageError(
			err, errors.ErrorCodeSerde, "failed to read record header",
		).WithDetail("partialHeader", line)
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, 0, errors.NewStorageError(
			nil, errors.ErrorCodeSerde, "empty record header",
		)
	}

	switch fields[0] {
	case setTag:
		if len(fields) != 3 {
			return nil, 0, errors.NewStorageError(
				nil, errors.ErrorCodeSerde, "malformed SET header",
			).WithDetail("header", line)
		}
		keyLen, err1 := strconv.Atoi(fields[1])
		valLen, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || keyLen < 0 || valLen < 0 {
			return nil, 0, errors.NewStorageError(
				nil, errors.ErrorCodeSerde, "invalid SET lengths",
			).WithDetail("header", line)
		}

		payload := make([]byte, keyLen+valLen)
		if _, err := io.ReadFull(d.r, payload); err != nil {
			return nil, 0, errors.NewStorageError(
				err, errors.ErrorCodeSerde, "truncated SET payload",
			).WithDetail("header", line)
		}

		cmd := &Command{Op: OpSet, Key: string(payload[:keyLen]), Value: string(payload[keyLen:])}
		return cmd, int64(len(line) + keyLen + valLen), nil

	case rmTag:
		if len(fields) != 2 {
			return nil, 0, errors.NewStorageError(
				nil, errors.ErrorCodeSerde, "malformed RM header",
			).WithDetail("header", line)
		}
		keyLen, err1 := strconv.Atoi(fields[1])
		if err1 != nil || keyLen < 0 {
			return nil, 0, errors.NewStorageError(
				nil, errors.ErrorCodeSerde, "invalid RM length",
			).WithDetail("header", line)
		}

		payload := make([]byte, keyLen)
		if _, err := io.ReadFull(d.r, payload); err != nil {
			return nil, 0, errors.NewStorageError(
				err, errors.ErrorCodeSerde, "truncated RM payload",
			).WithDetail("header", line)
		}

		cmd := &Command{Op: OpRemove, Key: string(payload)}
		return cmd, int64(len(line) + keyLen), nil

	default:
		return nil, 0, errors.NewStorageError(
			nil, errors.ErrorCodeSerde, "unrecognized record tag",
		).WithDetail("tag", fields[0])
	}
}

// DecodeOne decodes exactly one record out of buf, which must contain
// nothing but that record's bytes (as read via a pointer's offset/length).
// It is used by Get, where the full record has already been read with a
// single ReadAt.
func DecodeOne(buf []byte) (*Command, error) {
	cmd, n, err := NewDecoder(bytes.NewReader(buf)).Next()
	if err != nil {
		return nil, err
	}
	if n != int64(len(buf)) {
		return nil, errors.NewStorageError(
			nil, errors.ErrorCodeSerde, "record did not consume the entire pointer range",
		).WithDetail("consumed", n).WithDetail("bufLen", len(buf))
	}
	return cmd, nil
}
