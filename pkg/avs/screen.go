package avs

// Direction selects whether key bytes are added to or subtracted from the payload.
type Direction int

const (
	// Forward adds key bytes, and is used for encryption.
	Forward Direction = iota
	// Inverse subtracts key bytes, and is used for decryption.
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// roundScreen applies a whole round key schedule to one byte at a time.
// All keys in a schedule share the same length, so a single position is tracked.
type roundScreen struct {
	keys []Key
	dir  Direction
	cur  int
}

func newRoundScreen(keys []Key, dir Direction) (*roundScreen, error) {
	if len(keys) == 0 {
		return nil, ErrInvalidRounds
	}
	size := len(keys[0])
	if size == 0 {
		return nil, ErrInvalidKey
	}
	for _, k := range keys[1:] {
		if len(k) != size {
			return nil, ErrInvalidKey
		}
	}
	return &roundScreen{
		keys: keys,
		dir:  dir,
	}, nil
}

func (s *roundScreen) screen(b byte) byte {
	if s.dir == Forward {
		for _, k := range s.keys {
			b += k[s.cur]
		}
	} else {
		for i := len(s.keys) - 1; i >= 0; i-- {
			b -= s.keys[i][s.cur]
		}
	}
	s.cur = (s.cur + 1) % len(s.keys[0])
	return b
}

func (s *roundScreen) reset() {
	s.cur = 0
}
