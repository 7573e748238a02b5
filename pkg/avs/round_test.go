package avs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRound(t *testing.T) {
	key := DeriveKey("test")
	out, err := ApplyRound([]byte("Hello"), key, Forward)
	require.NoError(t, err)
	assert.Equal(t, []byte{188, 202, 223, 224, 227}, out)

	back, err := ApplyRound(out, key, Inverse)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(back))
}

func TestApplyRound_LengthPreserved(t *testing.T) {
	key := Key{0xde, 0xad, 0xbe, 0xef}
	for _, size := range []int{0, 1, 3, 4, 5, 64} {
		data := make([]byte, size)
		out, err := ApplyRound(data, key, Forward)
		assert.NoError(t, err)
		assert.Len(t, out, size)
	}
}

func TestApplyRound_Neg(t *testing.T) {
	_, err := ApplyRound([]byte("data"), nil, Forward)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = ApplyRound([]byte("data"), Key{}, Inverse)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestApplyRounds_ReverseOrder(t *testing.T) {
	keys, err := RoundKeys(DeriveKey("a longer passphrase"), 5)
	require.NoError(t, err)
	data := []byte("Round order matters for the inverse")

	screened, err := applyRounds(data, keys, Forward)
	require.NoError(t, err)
	assert.NotEqual(t, data, screened)

	unscreened, err := applyRounds(screened, keys, Inverse)
	require.NoError(t, err)
	assert.Equal(t, data, unscreened)
}
