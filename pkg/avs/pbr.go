package avs

import (
	"bytes"
	"fmt"
)

const (
	// Sentinel is the byte used to pad the last PBR block.
	Sentinel byte = '~'
	// DefaultBlockSize is the PBR block size used when none is specified.
	DefaultBlockSize = 8
)

// PBREncrypt pads data to a multiple of blockSize with Sentinel, shifts every byte by the repeating keyword, and reverses the bytes within each block.
// The input slice isn't modified.
func PBREncrypt(data []byte, keyword Key, blockSize int) ([]byte, error) {
	if err := validatePBR(keyword, blockSize); err != nil {
		return nil, err
	}
	padded := len(data)
	if rem := padded % blockSize; rem != 0 {
		padded += blockSize - rem
	}
	out := make([]byte, padded)
	copy(out, data)
	for i := len(data); i < padded; i++ {
		out[i] = Sentinel
	}
	for i := range out {
		out[i] += keyword[i%len(keyword)]
	}
	reverseBlocks(out, blockSize)
	return out, nil
}

// PBRDecrypt reverses the bytes within each block, removes the keyword shift, and strips trailing Sentinel bytes.
// Every trailing Sentinel is removed, including any that were part of the original payload.
func PBRDecrypt(data []byte, keyword Key, blockSize int) ([]byte, error) {
	if err := validatePBR(keyword, blockSize); err != nil {
		return nil, err
	}
	out := append([]byte(nil), data...)
	reverseBlocks(out, blockSize)
	for i := range out {
		out[i] -= keyword[i%len(keyword)]
	}
	return bytes.TrimRight(out, string(Sentinel)), nil
}

func validatePBR(keyword Key, blockSize int) error {
	if blockSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockSize)
	}
	if len(keyword) == 0 {
		return fmt.Errorf("%w: PBR keyword is required", ErrInvalidKey)
	}
	return nil
}

// reverseBlocks reverses each blockSize chunk of data in place.
// A short final chunk is reversed as-is.
func reverseBlocks(data []byte, blockSize int) {
	for start := 0; start < len(data); start += blockSize {
		end := min(start+blockSize, len(data))
		for i, j := start, end-1; i < j; i, j = i+1, j-1 {
			data[i], data[j] = data[j], data[i]
		}
	}
}
