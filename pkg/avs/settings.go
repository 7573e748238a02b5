package avs

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	bin "github.com/saylorsolutions/binmap"
)

const (
	settingsVersion uint8 = 1

	variantNone   uint8 = 0
	variantLegacy uint8 = 1
)

// Settings is a portable description of the Params used to create a token.
// Encode produces a short code that can be shared next to the token, and ParseSettings recovers it.
type Settings struct {
	Rounds    int
	UsePBR    bool
	BlockSize int
	KeySuffix string
}

// DefaultSettings matches the defaults used by NewParams.
func DefaultSettings() Settings {
	return Settings{
		Rounds:    DefaultRounds,
		UsePBR:    DefaultUsePBR,
		BlockSize: DefaultBlockSize,
	}
}

// Options converts s to the Opt values needed to reproduce its Params.
func (s Settings) Options() []Opt {
	return []Opt{
		Rounds(s.Rounds),
		UsePBR(s.UsePBR),
		BlockSize(s.BlockSize),
		KeySuffix(s.KeySuffix),
	}
}

func (s Settings) String() string {
	pbr := "No"
	if s.UsePBR {
		pbr = "Yes"
	}
	str := fmt.Sprintf("Rounds=%d, PBR=%s, Block Size=%d", s.Rounds, pbr, s.BlockSize)
	if len(s.KeySuffix) > 0 {
		str += ", Legacy=Yes"
	}
	return str
}

type settingsLayout struct {
	version   uint8
	rounds    uint64
	usePBR    uint8
	blockSize uint64
	variant   uint8
}

func (l *settingsLayout) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Byte(&l.version),
		bin.Int(&l.rounds),
		bin.Byte(&l.usePBR),
		bin.Int(&l.blockSize),
		bin.Byte(&l.variant),
	)
}

// Encode produces a URL safe code for s.
// Only an empty KeySuffix or LegacySuffix can be encoded.
func (s Settings) Encode() (string, error) {
	if s.Rounds < 1 {
		return "", fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidRounds)
	}
	if s.BlockSize < 0 {
		return "", fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidBlockSize)
	}
	layout := settingsLayout{
		version:   settingsVersion,
		rounds:    uint64(s.Rounds),
		blockSize: uint64(s.BlockSize),
	}
	if s.UsePBR {
		layout.usePBR = 1
	}
	switch s.KeySuffix {
	case "":
		layout.variant = variantNone
	case LegacySuffix:
		layout.variant = variantLegacy
	default:
		return "", fmt.Errorf("%w: custom key suffixes can't be encoded", ErrInvalidSettings)
	}

	var buf bytes.Buffer
	if err := layout.mapper().Write(&buf, binary.BigEndian); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseSettings decodes a code created with Settings.Encode.
func ParseSettings(code string) (Settings, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	var layout settingsLayout
	r := bytes.NewReader(data)
	if err := layout.mapper().Read(r, binary.BigEndian); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if r.Len() > 0 {
		return Settings{}, fmt.Errorf("%w: %d unexpected trailing bytes", ErrInvalidSettings, r.Len())
	}
	if layout.version != settingsVersion {
		return Settings{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSettings, layout.version)
	}
	const maxInt = uint64(int(^uint(0) >> 1))
	if layout.rounds < 1 || layout.rounds > maxInt {
		return Settings{}, fmt.Errorf("%w: rounds out of range", ErrInvalidSettings)
	}
	if layout.blockSize > maxInt {
		return Settings{}, fmt.Errorf("%w: block size out of range", ErrInvalidSettings)
	}
	s := Settings{
		Rounds:    int(layout.rounds),
		UsePBR:    layout.usePBR != 0,
		BlockSize: int(layout.blockSize),
	}
	if s.UsePBR && s.BlockSize < 1 {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidBlockSize)
	}
	switch layout.variant {
	case variantNone:
	case variantLegacy:
		s.KeySuffix = LegacySuffix
	default:
		return Settings{}, fmt.Errorf("%w: unknown variant %d", ErrInvalidSettings, layout.variant)
	}
	return s, nil
}
