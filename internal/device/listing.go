package device

import (
	"fmt"
	"io"
	"strings"
)

// WriteListing prints a human readable summary of d: the scalar fields
// followed by all eight bit orders.
func (d *Descriptor) WriteListing(w io.Writer) error {
	var buf strings.Builder
	fmt.Fprintf(&buf, "device: %s\n\n", d.Name)
	fmt.Fprintf(&buf, "width:              %d bits\n", d.Width.Bits())
	fmt.Fprintf(&buf, "memory size:        %d bytes\n", d.MemorySize)
	fmt.Fprintf(&buf, "block size:         %d bytes\n", d.BlockSize)
	fmt.Fprintf(&buf, "start address:      %d\n", d.StartAddress)
	fmt.Fprintf(&buf, "word length:        %d bits\n", d.WordLength)
	fmt.Fprintf(&buf, "address length:     %d bits\n", d.AddressLength)
	fmt.Fprintf(&buf, "addresses per word: %d\n", d.AddressStepPerWord)

	for _, v := range Variants {
		buf.WriteByte('\n')
		writeOrder(&buf, v.String()+" word bit order", &d.WordData[v])
		writeOrder(&buf, v.String()+" word address bit order", &d.WordAddress[v])
		writeOrder(&buf, v.String()+" block address bit order before data", &d.PreBlockAddress[v])
		writeOrder(&buf, v.String()+" block address bit order after data", &d.PostBlockAddress[v])
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// Listing returns the WriteListing output as a string.
func (d *Descriptor) Listing() string {
	var sb strings.Builder
	_ = d.WriteListing(&sb)
	return sb.String()
}

func writeOrder(buf *strings.Builder, title string, o *BitOrder) {
	buf.WriteString(title)
	buf.WriteString(":\n   ")
	buf.WriteString(o.String())
	buf.WriteByte('\n')
}
