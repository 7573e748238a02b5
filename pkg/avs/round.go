package avs

// ApplyRound runs a single round of the additive cipher over data, returning a new slice of the same length.
// With Forward, out[i] = data[i] + key[i mod len(key)] (mod 256). Inverse subtracts instead.
func ApplyRound(data []byte, key Key, dir Direction) ([]byte, error) {
	scr, err := newRoundScreen([]Key{key}, dir)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		out[i] = scr.screen(data[i])
	}
	return out, nil
}

// applyRounds runs every key in the schedule as its own round.
// Forward runs keys first to last, and Inverse runs them last to first.
func applyRounds(data []byte, keys []Key, dir Direction) ([]byte, error) {
	var err error
	if dir == Forward {
		for _, k := range keys {
			if data, err = ApplyRound(data, k, Forward); err != nil {
				return nil, err
			}
		}
		return data, nil
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if data, err = ApplyRound(data, keys[i], Inverse); err != nil {
			return nil, err
		}
	}
	return data, nil
}
