package avs

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	DefaultRounds = 3
	DefaultUsePBR = true
)

// Params holds the settings shared by Encrypt and Decrypt.
// Tokens can only be reversed with the same Params they were created with.
type Params struct {
	rounds    int
	usePBR    bool
	blockSize int
	keySuffix string
}

// Opt operates on Params in a standard and predictable way.
// If any Opt returns an error, then NewParams returns it.
type Opt = func(*Params) error

// Rounds sets the number of additive rounds, which must be at least 1.
func Rounds(n int) Opt {
	return func(p *Params) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidRounds, n)
		}
		p.rounds = n
		return nil
	}
}

// UsePBR enables or disables the PBR pass.
func UsePBR(use bool) Opt {
	return func(p *Params) error {
		p.usePBR = use
		return nil
	}
}

// BlockSize sets the PBR block size.
// It's only validated when PBR is enabled.
func BlockSize(size int) Opt {
	return func(p *Params) error {
		p.blockSize = size
		return nil
	}
}

// KeySuffix appends a fixed literal to the passphrase before the round key is derived.
// The PBR keyword is always the bare passphrase.
func KeySuffix(suffix string) Opt {
	return func(p *Params) error {
		p.keySuffix = suffix
		return nil
	}
}

// LegacyVariant selects the original variant of the scheme, which derives the round key from the passphrase plus LegacySuffix and doesn't use PBR.
func LegacyVariant() Opt {
	return func(p *Params) error {
		p.keySuffix = LegacySuffix
		p.usePBR = false
		return nil
	}
}

// NewParams creates Params with DefaultRounds, DefaultUsePBR, and DefaultBlockSize, and then applies opts in order.
func NewParams(opts ...Opt) (*Params, error) {
	p := &Params{
		rounds:    DefaultRounds,
		usePBR:    DefaultUsePBR,
		blockSize: DefaultBlockSize,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Params) validate() error {
	if p.rounds < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRounds, p.rounds)
	}
	if p.usePBR && p.blockSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, p.blockSize)
	}
	return nil
}

func (p *Params) Rounds() int {
	return p.rounds
}

func (p *Params) UsePBR() bool {
	return p.usePBR
}

func (p *Params) BlockSize() int {
	return p.blockSize
}

func (p *Params) KeySuffix() string {
	return p.keySuffix
}

// Settings captures p as a Settings value that can be shared alongside a token.
func (p *Params) Settings() Settings {
	return Settings{
		Rounds:    p.rounds,
		UsePBR:    p.usePBR,
		BlockSize: p.blockSize,
		KeySuffix: p.keySuffix,
	}
}

// Schedule derives the round key schedule for pass.
func (p *Params) Schedule(pass string) ([]Key, error) {
	return RoundKeys(DeriveKey(pass+p.keySuffix), p.rounds)
}

// EncryptBytes runs the optional PBR pass and then every round over data.
func (p *Params) EncryptBytes(data []byte, pass string) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.usePBR {
		var err error
		data, err = PBREncrypt(data, DeriveKey(pass), p.blockSize)
		if err != nil {
			return nil, err
		}
	}
	keys, err := p.Schedule(pass)
	if err != nil {
		return nil, err
	}
	return applyRounds(data, keys, Forward)
}

// DecryptBytes undoes every round, last to first, and then the PBR pass if enabled.
func (p *Params) DecryptBytes(data []byte, pass string) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	keys, err := p.Schedule(pass)
	if err != nil {
		return nil, err
	}
	data, err = applyRounds(data, keys, Inverse)
	if err != nil {
		return nil, err
	}
	if p.usePBR {
		data, err = PBRDecrypt(data, DeriveKey(pass), p.blockSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPBRDecrypt, err)
		}
	}
	return data, nil
}

// Encrypt screens the UTF-8 bytes of plaintext and returns them as a padded, standard base64 token.
func (p *Params) Encrypt(plaintext, pass string) (string, error) {
	data, err := p.EncryptBytes([]byte(plaintext), pass)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decrypted is the result of decrypting a token.
type Decrypted struct {
	// Text is the recovered plain text.
	Text string
	// Lossy is true when the recovered bytes weren't valid UTF-8, and replacement characters were substituted in Text.
	Lossy bool
}

// Warning returns ErrLossyDecode if Text had replacement characters substituted, otherwise nil.
func (d *Decrypted) Warning() error {
	if d.Lossy {
		return ErrLossyDecode
	}
	return nil
}

// Decrypt reverses a token created by Encrypt with the same passphrase and Params.
// Surrounding whitespace in the token is ignored.
func (p *Params) Decrypt(token, pass string) (*Decrypted, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64Decode, err)
	}
	data, err = p.DecryptBytes(data, pass)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(data) {
		return &Decrypted{Text: string(data)}, nil
	}
	text, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return &Decrypted{Text: string(text), Lossy: true}, nil
}

// Encrypt creates Params from opts and encrypts plaintext with them.
func Encrypt(plaintext, pass string, opts ...Opt) (string, error) {
	p, err := NewParams(opts...)
	if err != nil {
		return "", err
	}
	return p.Encrypt(plaintext, pass)
}

// Decrypt creates Params from opts and decrypts token with them.
func Decrypt(token, pass string, opts ...Opt) (*Decrypted, error) {
	p, err := NewParams(opts...)
	if err != nil {
		return nil, err
	}
	return p.Decrypt(token, pass)
}
