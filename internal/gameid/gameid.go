// Package gameid generates session identifiers. An ID is a UUIDv7 encoded
// as 26 lowercase Crockford base32 characters, so IDs sort by creation time
// and are safe to use in file names.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID
const Length = 26

// Generator creates IDs drawing randomness from a reader
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate creates a new ID using crypto/rand
func Generate() string {
	id, err := NewGenerator(nil).Generate()
	if err != nil {
		panic("failed to generate session id: " + err.Error())
	}
	return id
}

// Generate creates a new ID
func (g *Generator) Generate() (string, error) {
	u, err := uuid.NewV7FromReader(g.rand)
	if err != nil {
		return "", fmt.Errorf("generating uuidv7: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are padded
// with two leading zero bits, so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters starting with 0-7
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
