package devfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pborges/ascii01/internal/device"
)

type writer struct {
	buf   *bytes.Buffer
	width device.Width
}

func newWriter(w device.Width) *writer {
	b := bytes.NewBuffer(make([]byte, 0, Size(w)))
	return &writer{buf: b, width: w}
}

func (w *writer) encode(d *device.Descriptor) ([]byte, error) {
	if len(d.Name) >= device.NameLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(d.Name))
	}
	w.buf.WriteByte(Version)
	w.buf.WriteByte(uint8(w.width))

	var name [device.NameLength]byte
	copy(name[:], d.Name)
	w.buf.Write(name[:])

	for _, f := range []struct {
		name string
		v    uint64
	}{
		{"memory size", d.MemorySize},
		{"block size", d.BlockSize},
		{"start address", d.StartAddress},
	} {
		if !w.width.Fits(f.v) {
			return nil, fmt.Errorf("%w: %s %d", ErrValueTooLarge, f.name, f.v)
		}
		w.writeUint(f.v)
	}

	w.buf.WriteByte(d.AddressStepPerWord)
	w.buf.WriteByte(d.WordLength)
	w.buf.WriteByte(d.AddressLength)

	n := w.width.Bits()
	for i, o := range d.Orders() {
		for j := n; j < len(o); j++ {
			if o[j] != device.Unused {
				return nil, fmt.Errorf("%w: order %d has entries past %d", ErrOrderTooLong, i, n)
			}
		}
		for _, s := range o[:n] {
			w.buf.WriteByte(byte(s))
		}
	}
	return w.buf.Bytes(), nil
}

func (w *writer) writeUint(v uint64) {
	var b [8]byte
	if w.width == device.Width32 {
		binary.LittleEndian.PutUint32(b[:4], uint32(v))
		w.buf.Write(b[:4])
		return
	}
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}
