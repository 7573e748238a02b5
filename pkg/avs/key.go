package avs

import "fmt"

const (
	// LegacySuffix is appended to the passphrase before key derivation by the legacy variant of the scheme.
	LegacySuffix = "Ammar"
)

// Key is a sequence of shift values, one per passphrase character.
type Key []byte

// DeriveKey creates the initial Key from the passphrase, mapping every character to its code point mod 256.
// An empty passphrase results in an empty Key.
func DeriveKey(pass string) Key {
	key := make(Key, 0, len(pass))
	for _, r := range pass {
		key = append(key, byte(r%256))
	}
	return key
}

// Evolve returns the key for the next round, mapping every value v to (v*7 + 3) mod 256.
// The receiver isn't modified.
func (k Key) Evolve() Key {
	next := make(Key, len(k))
	for i, v := range k {
		next[i] = v*7 + 3
	}
	return next
}

// RoundKeys builds the full round key schedule.
// Index 0 is the base key, and each subsequent key is the previous one evolved.
func RoundKeys(base Key, rounds int) ([]Key, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}
	if len(base) == 0 {
		return nil, ErrInvalidKey
	}
	keys := make([]Key, rounds)
	keys[0] = append(Key(nil), base...)
	for i := 1; i < rounds; i++ {
		keys[i] = keys[i-1].Evolve()
	}
	return keys, nil
}
