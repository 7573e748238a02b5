package avs

import "errors"

var (
	// ErrInvalidKey is returned when a derived key or PBR keyword is empty.
	ErrInvalidKey = errors.New("invalid key: key material is empty")

	// ErrInvalidBlockSize is returned when a PBR block size is less than 1.
	ErrInvalidBlockSize = errors.New("invalid block size: must be at least 1")

	// ErrInvalidRounds is returned when the round count is less than 1.
	ErrInvalidRounds = errors.New("invalid rounds: must be at least 1")

	// ErrBase64Decode is returned when a token isn't valid standard base64.
	ErrBase64Decode = errors.New("base64 decode error")

	// ErrPBRDecrypt wraps failures from the PBR inverse stage.
	ErrPBRDecrypt = errors.New("PBR decryption error")

	// ErrLossyDecode signals that decrypted bytes weren't valid UTF-8, and replacement characters were substituted.
	// It's a warning, and is never returned as the error from Decrypt.
	ErrLossyDecode = errors.New("decrypted bytes are not valid UTF-8")

	// ErrInvalidSettings is returned when a settings code can't be parsed.
	ErrInvalidSettings = errors.New("invalid settings code")
)
