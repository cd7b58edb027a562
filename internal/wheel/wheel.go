// Package wheel models a roulette wheel: its variant, its fixed pocket set
// and uniformly random spins.
package wheel

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Variant identifies how many zero pockets a wheel carries.
type Variant int

const (
	SingleZero Variant = iota + 1 // European, 37 pockets
	DoubleZero                    // American, 38 pockets
	TripleZero                    // 39 pockets
)

// ErrInvalidVariant is matched by every *InvalidVariantError.
var ErrInvalidVariant = errors.New("invalid wheel variant")

// InvalidVariantError is returned when a wheel is requested for a variant
// that does not exist.
type InvalidVariantError struct {
	Variant string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid wheel variant %q", e.Variant)
}

func (e *InvalidVariantError) Is(target error) bool {
	return target == ErrInvalidVariant
}

// ParseVariant accepts the common names for each wheel.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "european", "single", "single-zero":
		return SingleZero, nil
	case "american", "double", "double-zero":
		return DoubleZero, nil
	case "triple", "triple-zero":
		return TripleZero, nil
	}
	return 0, &InvalidVariantError{Variant: s}
}

func (v Variant) Valid() bool {
	return v >= SingleZero && v <= TripleZero
}

// Zeros is the number of zero pockets on the variant.
func (v Variant) Zeros() int {
	if !v.Valid() {
		return 0
	}
	return int(v)
}

// Pockets is the total pocket count: 36 numbers plus the zeros.
func (v Variant) Pockets() int {
	if !v.Valid() {
		return 0
	}
	return 36 + v.Zeros()
}

// HouseEdge is the theoretical expected loss per unit wagered on an
// even-money bet (and on a 35:1 straight-up bet): zeros / pockets.
func (v Variant) HouseEdge() float64 {
	if !v.Valid() {
		return 0
	}
	return float64(v.Zeros()) / float64(v.Pockets())
}

func (v Variant) String() string {
	switch v {
	case SingleZero:
		return "european"
	case DoubleZero:
		return "american"
	case TripleZero:
		return "triple"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Wheel draws pockets uniformly from a fixed set. It is not safe for
// concurrent use; give each simulation its own wheel and RNG.
type Wheel struct {
	variant Variant
	pockets []Pocket
	rng     *rand.Rand
}

// New builds the pocket set for variant. The RNG is required so every spin
// sequence is reproducible from its seed.
func New(variant Variant, rng *rand.Rand) (*Wheel, error) {
	if rng == nil {
		panic("rng is required for wheel creation")
	}
	if !variant.Valid() {
		return nil, &InvalidVariantError{Variant: variant.String()}
	}

	pockets := make([]Pocket, 0, variant.Pockets())
	for k := 1; k <= variant.Zeros(); k++ {
		pockets = append(pockets, Zero(k))
	}
	for n := 1; n <= 36; n++ {
		pockets = append(pockets, Number(n))
	}

	return &Wheel{variant: variant, pockets: pockets, rng: rng}, nil
}

// Spin returns one pocket drawn uniformly at random.
func (w *Wheel) Spin() Pocket {
	return w.pockets[w.rng.IntN(len(w.pockets))]
}

// PocketCount returns 37, 38 or 39.
func (w *Wheel) PocketCount() int {
	return len(w.pockets)
}

// ZeroCount returns the number of green pockets.
func (w *Wheel) ZeroCount() int {
	return w.variant.Zeros()
}

// Pockets returns a copy of the pocket set.
func (w *Wheel) Pockets() []Pocket {
	out := make([]Pocket, len(w.pockets))
	copy(out, w.pockets)
	return out
}

func (w *Wheel) Variant() Variant {
	return w.variant
}
