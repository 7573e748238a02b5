package avs

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const passphraseAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789-_.!@#%+="

// GenPassphrase will generate a random, printable passphrase with the given length.
// Characters are drawn from the OS entropy pool, and look-alike characters are excluded.
func GenPassphrase(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("asked to generate a 0-length passphrase")
	}
	var (
		limit = big.NewInt(int64(len(passphraseAlphabet)))
		buf   = make([]byte, length)
	)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random data: %w", err)
		}
		buf[i] = passphraseAlphabet[n.Int64()]
	}
	return string(buf), nil
}
