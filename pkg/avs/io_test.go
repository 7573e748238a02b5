package avs

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	data := "A string with some text"
	keys, err := RoundKeys(DeriveKey("test"), 3)
	require.NoError(t, err)
	var output strings.Builder

	in, err := NewReader(strings.NewReader(data), keys, Forward)
	assert.NoError(t, err)
	assert.NotNil(t, in)

	out, err := NewWriter(&output, keys, Inverse)
	assert.NoError(t, err)
	assert.NotNil(t, out)

	expectedLen := int64(len(data))
	n, err := io.Copy(out, in)
	assert.NoError(t, err)
	assert.Equal(t, expectedLen, n)
	assert.Equal(t, "A string with some text", output.String())
}

func TestWriter_MatchesRounds(t *testing.T) {
	params, err := NewParams(Rounds(3), UsePBR(false))
	require.NoError(t, err)
	keys, err := params.Schedule("test")
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, keys, Forward)
	require.NoError(t, err)
	// Split writes should keep the key position.
	_, err = w.Write([]byte("Hel"))
	require.NoError(t, err)
	_, err = w.Write([]byte("lo"))
	require.NoError(t, err)

	expected, err := params.EncryptBytes([]byte("Hello"), "test")
	require.NoError(t, err)
	assert.Equal(t, expected, buf.Bytes())
}

func TestWriter_Reset(t *testing.T) {
	var (
		outA bytes.Buffer
		outB bytes.Buffer
		in   = []byte{0x0, 0x1}
		keys = []Key{{0x1, 0x2, 0x3}}
	)
	w, err := NewWriter(&outA, keys, Forward)
	assert.NoError(t, err)
	n, err := w.Write(in)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x3}, outA.Bytes())

	w.Reset(&outB)
	n, err = w.Write(in)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x1, 0x3}, outB.Bytes())
}

func TestReader_Reset(t *testing.T) {
	var (
		outA = make([]byte, 2)
		outB = make([]byte, 2)
		in   = []byte{0x1, 0x3}
		keys = []Key{{0x1, 0x2, 0x3}}
	)
	r, err := NewReader(bytes.NewReader(in), keys, Inverse)
	assert.NoError(t, err)
	n, err := r.Read(outA)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x0, 0x1}, outA)

	r.Reset(bytes.NewReader(in))
	n, err = r.Read(outB)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x0, 0x1}, outB)
}

func TestNewReaderWriter_Neg(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), nil, Forward)
	assert.Error(t, err)
	_, err = NewWriter(io.Discard, []Key{{}}, Forward)
	assert.Error(t, err)
}
