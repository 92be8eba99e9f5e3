package testutil

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/pborges/ascii01/internal/device"
)

// Listing is a parsed descriptor listing: "key: value" lines and bit order
// sections whose entries follow on the next indented line.
type Listing struct {
	Fields map[string]string
	Orders map[string][]device.BitSymbol
}

func ParseListing(data []byte) (Listing, error) {
	l := Listing{Fields: map[string]string{}, Orders: map[string][]device.BitSymbol{}}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	pending := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), " \t\r")
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if pending != "" {
			if raw == line {
				return l, fmt.Errorf("line %d: expected indented bit order for %q", lineNo, pending)
			}
			syms, err := ParseSymbols(line)
			if err != nil {
				return l, fmt.Errorf("line %d: %w", lineNo, err)
			}
			l.Orders[pending] = syms
			pending = ""
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return l, fmt.Errorf("line %d: invalid listing line %q", lineNo, line)
		}
		val = strings.TrimSpace(val)
		if val == "" {
			pending = key
			continue
		}
		l.Fields[strings.TrimSpace(key)] = val
	}
	if err := scanner.Err(); err != nil {
		return l, err
	}
	if pending != "" {
		return l, fmt.Errorf("missing bit order for %q", pending)
	}
	return l, nil
}

// CompareListing returns a readable diff, or "" when the listings agree.
func CompareListing(got, want Listing) string {
	var buf bytes.Buffer
	for _, k := range sortedKeys(want.Fields, got.Fields) {
		g, gok := got.Fields[k]
		w, wok := want.Fields[k]
		switch {
		case !gok:
			fmt.Fprintf(&buf, "  %s: missing, want %q\n", k, w)
		case !wok:
			fmt.Fprintf(&buf, "  %s: unexpected %q\n", k, g)
		case g != w:
			fmt.Fprintf(&buf, "  %s: got %q want %q\n", k, g, w)
		}
	}
	for _, k := range sortedKeys(want.Orders, got.Orders) {
		g, gok := got.Orders[k]
		w, wok := want.Orders[k]
		switch {
		case !gok:
			fmt.Fprintf(&buf, "  %s: missing\n", k)
		case !wok:
			fmt.Fprintf(&buf, "  %s: unexpected %s\n", k, FormatSymbols(g))
		case FormatSymbols(g) != FormatSymbols(w):
			fmt.Fprintf(&buf, "  %s:\n    got  %s\n    want %s\n", k, FormatSymbols(g), FormatSymbols(w))
		}
	}
	if buf.Len() == 0 {
		return ""
	}
	return "listing mismatch:\n" + buf.String()
}

func sortedKeys[V any](a, b map[string]V) []string {
	seen := map[string]bool{}
	var keys []string
	for _, m := range []map[string]V{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// ParseSymbols reads the compact bit order notation used in listings and
// tests: comma separated indices, ranges such as 7-0, the literals '0' and
// '1', or a lone "-" for an empty order.
func ParseSymbols(s string) ([]device.BitSymbol, error) {
	s = strings.TrimSpace(s)
	if s == "-" || s == "" {
		return []device.BitSymbol{}, nil
	}
	var out []device.BitSymbol
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "'0'":
			out = append(out, device.LiteralZero)
			continue
		case "'1'":
			out = append(out, device.LiteralOne)
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid bit %q", part)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(hi); err != nil {
				return nil, fmt.Errorf("invalid bit range %q", part)
			}
		}
		step := 1
		if b < a {
			step = -1
		}
		for i := a; ; i += step {
			out = append(out, device.Index(i))
			if i == b {
				break
			}
		}
	}
	return out, nil
}

// MustSymbols is ParseSymbols for test tables.
func MustSymbols(s string) []device.BitSymbol {
	syms, err := ParseSymbols(s)
	if err != nil {
		panic(err)
	}
	return syms
}

// MustOrder builds a bit order from the compact notation.
func MustOrder(s string) device.BitOrder {
	return device.MustBitOrder(MustSymbols(s)...)
}

// FormatSymbols renders syms the way a listing does.
func FormatSymbols(syms []device.BitSymbol) string {
	o, err := device.NewBitOrder(syms, device.MaxWidth)
	if err != nil {
		return fmt.Sprint(syms)
	}
	return o.String()
}

// WriteFile writes content to name inside a fresh temp dir and returns the
// path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
