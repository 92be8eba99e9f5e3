// Package devfile reads and writes compiled device descriptors.
//
// Layout, little endian, no padding:
//
//	version        u8   (Version)
//	width          u8   (32 or 64)
//	name           [NameLength]byte, NUL padded
//	memorySize     width/8 bytes
//	blockSize      width/8 bytes
//	startAddress   width/8 bytes
//	addressStep    u8
//	wordLength     u8
//	addressLength  u8
//	8 bit orders   width × int8 each: wordData, wordAddress, preBlock,
//	               postBlock, each as program then verify
//
// Bytes after the last bit order are ignored.
package devfile

import (
	"errors"
	"fmt"

	"github.com/pborges/ascii01/internal/device"
)

// Version is the only format version this package reads and writes.
const Version uint8 = 1

const headerSize = 2

var (
	ErrVersionMismatch = errors.New("version mismatch")
	ErrBadWidth        = errors.New("unsupported width marker")
	ErrShortData       = errors.New("unexpected end of data")
	ErrValueTooLarge   = errors.New("value does not fit at this width")
	ErrOrderTooLong    = errors.New("bit order too long for this width")
	ErrBadSymbol       = errors.New("invalid bit order entry")
	ErrNameTooLong     = errors.New("device name too long")
)

// Size returns the encoded size of a descriptor at width w.
func Size(w device.Width) int {
	return headerSize + device.NameLength + 3*w.Bytes() + 3 + 8*w.Bits()
}

func checkWidth(w device.Width) error {
	if !w.Valid() {
		return fmt.Errorf("%w: %d", ErrBadWidth, int(w))
	}
	return nil
}

// Marshal encodes d at d.Width.
func Marshal(d *device.Descriptor) ([]byte, error) {
	if err := checkWidth(d.Width); err != nil {
		return nil, err
	}
	w := newWriter(d.Width)
	return w.encode(d)
}

// Unmarshal decodes data into a descriptor of the runtime width. A file
// written at another width is converted; narrowing fails instead of
// dropping information.
func Unmarshal(data []byte, runtime device.Width) (*device.Descriptor, error) {
	if err := checkWidth(runtime); err != nil {
		return nil, err
	}
	r := &reader{data: data}
	return r.decode(runtime)
}
