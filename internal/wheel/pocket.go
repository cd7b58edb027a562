package wheel

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is the colour of a pocket. Zero pockets are Green.
type Color uint8

const (
	Green Color = iota
	Red
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "green"
	}
}

// ParseColor parses "red" or "black" (case-insensitive).
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "black":
		return Black, nil
	}
	return Green, fmt.Errorf("unknown color %q", s)
}

// redNumbers has bit n set for every red number n.
const redNumbers uint64 = 1<<1 | 1<<3 | 1<<5 | 1<<7 | 1<<9 | 1<<12 | 1<<14 | 1<<16 | 1<<18 |
	1<<19 | 1<<21 | 1<<23 | 1<<25 | 1<<27 | 1<<30 | 1<<32 | 1<<34 | 1<<36

// PocketKind tags a Pocket as a numbered pocket or a zero pocket.
type PocketKind uint8

const (
	NumberKind PocketKind = iota + 1
	ZeroKind
)

// Pocket is a single slot on the wheel. Numbered pockets carry 1..36, zero
// pockets carry how many zeros appear on their label (0, 00, 000).
// The zero value is not a valid pocket.
type Pocket struct {
	kind  PocketKind
	value uint8
}

// Number returns the numbered pocket n (1..36).
func Number(n int) Pocket {
	if n < 1 || n > 36 {
		panic(fmt.Sprintf("pocket number %d out of range", n))
	}
	return Pocket{kind: NumberKind, value: uint8(n)}
}

// Zero returns the zero pocket whose label has k zeros (1..3).
func Zero(k int) Pocket {
	if k < 1 || k > 3 {
		panic(fmt.Sprintf("zero pocket %d out of range", k))
	}
	return Pocket{kind: ZeroKind, value: uint8(k)}
}

// NumberPocket maps a straight-up number 0..36 to its pocket; 0 is the
// single "0" pocket present on every wheel.
func NumberPocket(n int) (Pocket, error) {
	switch {
	case n == 0:
		return Zero(1), nil
	case n >= 1 && n <= 36:
		return Number(n), nil
	}
	return Pocket{}, fmt.Errorf("pocket number %d out of range 0..36", n)
}

// ParsePocket parses a pocket label: "0", "00", "000" or "1".."36".
func ParsePocket(label string) (Pocket, error) {
	label = strings.TrimSpace(label)
	switch label {
	case "0":
		return Zero(1), nil
	case "00":
		return Zero(2), nil
	case "000":
		return Zero(3), nil
	}
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 || n > 36 || strings.HasPrefix(label, "0") || strings.HasPrefix(label, "+") {
		return Pocket{}, fmt.Errorf("invalid pocket label %q", label)
	}
	return Number(n), nil
}

func (p Pocket) Kind() PocketKind { return p.kind }

// IsZero reports whether p is one of the zero pockets.
func (p Pocket) IsZero() bool { return p.kind == ZeroKind }

// Value is the number for numbered pockets and the zero count for zero pockets.
func (p Pocket) Value() int { return int(p.value) }

// Valid reports whether p was built by one of the constructors.
func (p Pocket) Valid() bool {
	switch p.kind {
	case NumberKind:
		return p.value >= 1 && p.value <= 36
	case ZeroKind:
		return p.value >= 1 && p.value <= 3
	}
	return false
}

// Color returns the pocket colour from the static red table.
func (p Pocket) Color() Color {
	if p.kind != NumberKind {
		return Green
	}
	if redNumbers&(1<<p.value) != 0 {
		return Red
	}
	return Black
}

func (p Pocket) String() string {
	switch p.kind {
	case NumberKind:
		return strconv.Itoa(int(p.value))
	case ZeroKind:
		return strings.Repeat("0", int(p.value))
	}
	return "?"
}
