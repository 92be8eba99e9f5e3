package pattern

import (
	"log/slog"

	"github.com/pborges/ascii01/internal/devfile"
	"github.com/pborges/ascii01/internal/device"
)

// CompileFile compiles the source at in and writes the device file to out.
// Nothing is written when compilation fails.
func CompileFile(in, out string, width device.Width) error {
	slog.Debug("compile: start", "input", in, "output", out, "width", int(width))
	d, err := ParseFile(in, width)
	if err != nil {
		return err
	}
	if err := devfile.Save(d, out); err != nil {
		return err
	}
	if sum, err := devfile.FileDigest(out); err == nil {
		slog.Debug("compile: done", "device", d.Name, "output", out, "blake3", sum)
	}
	return nil
}

// Check compiles the source at path without writing anything.
func Check(path string, width device.Width) (*device.Descriptor, error) {
	return ParseFile(path, width)
}
