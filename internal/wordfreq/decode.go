package wordfreq

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// decoder reads the msgpack subset used by wordfreq data files. Maps decode
// to map[string]any and binary blobs to strings.
type decoder struct {
	r *bufio.Reader
}

// maxPrealloc bounds capacity taken from length prefixes, which come from
// the file and are not trusted.
const maxPrealloc = 1 << 12

func decode(r io.Reader) (any, error) {
	d := decoder{r: bufio.NewReader(r)}
	return d.value()
}

func (d decoder) value() (any, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case b <= 0x7f:
		return int64(b), nil
	case b >= 0xe0:
		return int64(int8(b)), nil
	case b&0xe0 == 0xa0:
		return d.str(int(b & 0x1f))
	case b&0xf0 == 0x90:
		return d.array(int(b & 0x0f))
	case b&0xf0 == 0x80:
		return d.dict(int(b & 0x0f))
	}

	switch b {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xca:
		v, err := d.readUint(4)
		return float64(math.Float32frombits(uint32(v))), err
	case 0xcb:
		v, err := d.readUint(8)
		return math.Float64frombits(v), err
	case 0xcc, 0xcd, 0xce, 0xcf:
		v, err := d.readUint(1 << (b - 0xcc))
		return int64(v), err
	case 0xd0, 0xd1, 0xd2, 0xd3:
		size := 1 << (b - 0xd0)
		v, err := d.readUint(size)
		return signExtend(v, size), err
	case 0xc4, 0xc5, 0xc6, 0xd9, 0xda, 0xdb:
		size := 1 << (b - 0xc4)
		if b >= 0xd9 {
			size = 1 << (b - 0xd9)
		}
		n, err := d.readUint(size)
		if err != nil {
			return nil, err
		}
		return d.str(int(n))
	case 0xdc, 0xdd:
		n, err := d.readUint(2 << (b - 0xdc))
		if err != nil {
			return nil, err
		}
		return d.array(int(n))
	case 0xde, 0xdf:
		n, err := d.readUint(2 << (b - 0xde))
		if err != nil {
			return nil, err
		}
		return d.dict(int(n))
	}
	return nil, fmt.Errorf("unsupported msgpack prefix 0x%x", b)
}

func (d decoder) readUint(size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[8-size:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func signExtend(v uint64, size int) int64 {
	shift := uint(64 - 8*size)
	return int64(v<<shift) >> shift
}

func (d decoder) str(n int) (string, error) {
	buf, err := io.ReadAll(io.LimitReader(d.r, int64(n)))
	if err != nil {
		return "", err
	}
	if len(buf) < n {
		return "", io.ErrUnexpectedEOF
	}
	return string(buf), nil
}

func (d decoder) array(n int) ([]any, error) {
	out := make([]any, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := d.value()
		if err != nil {
			return nil, truncated(err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (d decoder) dict(n int) (map[string]any, error) {
	out := make(map[string]any, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		k, err := d.value()
		if err != nil {
			return nil, truncated(err)
		}
		v, err := d.value()
		if err != nil {
			return nil, truncated(err)
		}
		out[fmt.Sprint(k)] = v
	}
	return out, nil
}

// truncated reports a clean EOF inside a container as a short read.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
