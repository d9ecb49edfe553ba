package sharehash

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the 62-symbol set share hashes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of characters in a share hash. 62^10 possible
// values make accidental collisions negligible at any realistic scale,
// but callers still treat the hash as a unique key at the storage layer.
const Length = 10

// New generates a random share hash.
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func New() (string, error) {
	hash, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("generate share hash: %w", err)
	}
	return hash, nil
}
