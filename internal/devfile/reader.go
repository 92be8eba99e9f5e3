package devfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/pborges/ascii01/internal/device"
)

type reader struct {
	data   []byte
	offset int
}

func (r *reader) need(n int) error {
	if len(r.data)-r.offset < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortData, n, r.offset, len(r.data)-r.offset)
	}
	return nil
}

func (r *reader) readBytes(n int) []byte {
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b
}

func (r *reader) readByte() byte {
	b := r.data[r.offset]
	r.offset++
	return b
}

func (r *reader) readUint(w device.Width) uint64 {
	if w == device.Width32 {
		return uint64(binary.LittleEndian.Uint32(r.readBytes(4)))
	}
	return binary.LittleEndian.Uint64(r.readBytes(8))
}

func (r *reader) decode(runtime device.Width) (*device.Descriptor, error) {
	if err := r.need(headerSize); err != nil {
		return nil, err
	}
	if v := r.readByte(); v != Version {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrVersionMismatch, Version, v)
	}
	file := device.Width(r.readByte())
	if !file.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadWidth, int(file))
	}
	if err := r.need(Size(file) - headerSize); err != nil {
		return nil, err
	}
	if file != runtime {
		slog.Debug("devfile: converting width", "file", int(file), "runtime", int(runtime))
	}

	d := device.New(runtime)
	name := r.readBytes(device.NameLength)
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	d.Name = string(name)

	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"memory size", &d.MemorySize},
		{"block size", &d.BlockSize},
		{"start address", &d.StartAddress},
	} {
		v := r.readUint(file)
		if !runtime.Fits(v) {
			return nil, fmt.Errorf("%w: %s %d", ErrValueTooLarge, f.name, v)
		}
		*f.dst = v
	}

	d.AddressStepPerWord = r.readByte()
	d.WordLength = r.readByte()
	d.AddressLength = r.readByte()

	capacity := runtime.Bits()
	for i, o := range d.Orders() {
		raw := r.readBytes(file.Bits())
		for j, b := range raw {
			s := device.BitSymbol(int8(b))
			if j >= capacity {
				if s != device.Unused {
					return nil, fmt.Errorf("%w: order %d entry %d", ErrOrderTooLong, i, j)
				}
				continue
			}
			if !s.Valid(file) {
				return nil, fmt.Errorf("%w: order %d entry %d is %d", ErrBadSymbol, i, j, int8(b))
			}
			o[j] = s
		}
	}
	return d, nil
}
