// Package runid generates sortable identifiers for simulation runs: a
// UUIDv7 encoded as 26 characters of Crockford base32.
package runid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random bits of an ID. *rand.Rand from math/rand/v2
// satisfies it, which keeps IDs reproducible from a run seed.
type RandSource interface {
	Uint64() uint64
}

// Generator stamps IDs with its clock's time.
type Generator struct {
	clock quartz.Clock
	src   RandSource
}

// NewGenerator returns a generator. A nil clock uses wall time and a nil
// source uses crypto/rand.
func NewGenerator(clock quartz.Clock, src RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, src: src}
}

// Generate creates a new ID using wall time and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns the next ID.
func (g *Generator) Generate() string {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits
	binary.BigEndian.PutUint64(id[0:8], uint64(g.clock.Now().UnixMilli())<<16)
	if g.src != nil {
		binary.BigEndian.PutUint16(id[6:8], uint16(g.src.Uint64()))
		binary.BigEndian.PutUint64(id[8:16], g.src.Uint64())
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id)
}

// encode writes the 128 bits right-aligned in 130, so the first character
// only carries 3 bits and is always 0-7.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[0:8])
	lo := binary.BigEndian.Uint64(id[8:16])

	out := make([]byte, 26)
	for i := 25; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters starting with 0-7.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("run ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
