package devfile

import (
	"encoding/hex"
	"os"

	"github.com/zeebo/blake3"

	"github.com/pborges/ascii01/internal/device"
	"github.com/pborges/ascii01/internal/errs"
)

// Save writes d to path.
func Save(d *device.Descriptor, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return &errs.FormatError{Path: path, Message: "cannot encode", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &errs.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Load reads the device file at path at the runtime width. On failure no
// descriptor is returned.
func Load(path string, runtime device.Width) (*device.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IOError{Op: "read", Path: path, Err: err}
	}
	d, err := Unmarshal(data, runtime)
	if err != nil {
		return nil, &errs.FormatError{Path: path, Message: "cannot decode", Err: err}
	}
	return d, nil
}

// Digest returns the hex BLAKE3-256 digest of an encoded descriptor.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileDigest reads path and returns its digest.
func FileDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &errs.IOError{Op: "read", Path: path, Err: err}
	}
	return Digest(data), nil
}
