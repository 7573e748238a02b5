package avs

import (
	"bytes"
	"io"
)

// Reader extends io.Reader, but also provides a way to reuse a round key schedule with a different source.
type Reader interface {
	io.Reader
	// Reset will use the provided io.Reader and reset the position within the key schedule.
	Reset(source io.Reader)
}

// Writer extends io.Writer, but also provides a way to reuse a round key schedule with a different target.
type Writer interface {
	io.Writer
	// Reset will use the provided io.Writer and reset the position within the key schedule.
	Reset(target io.Writer)
}

var _ Reader = (*reader)(nil)

type reader struct {
	source io.Reader
	scr    *roundScreen
}

func (r *reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	for i := 0; i < n; i++ {
		out[i] = r.scr.screen(out[i])
	}
	return n, err
}

func (r *reader) Reset(source io.Reader) {
	r.source = source
	r.scr.reset()
}

// NewReader constructs a Reader that applies every round in keys to all bytes read.
// The schedule is usually produced with RoundKeys.
// This covers the round stage only, PBR works on whole blocks and isn't available as a stream.
func NewReader(r io.Reader, keys []Key, dir Direction) (Reader, error) {
	scr, err := newRoundScreen(keys, dir)
	if err != nil {
		return nil, err
	}
	return &reader{
		source: r,
		scr:    scr,
	}, nil
}

var _ Writer = (*writer)(nil)

type writer struct {
	target io.Writer
	scr    *roundScreen
}

// NewWriter constructs a Writer that applies every round in keys to all bytes written.
func NewWriter(target io.Writer, keys []Key, dir Direction) (Writer, error) {
	scr, err := newRoundScreen(keys, dir)
	if err != nil {
		return nil, err
	}
	return &writer{
		target: target,
		scr:    scr,
	}, nil
}

func (w *writer) Write(in []byte) (n int, err error) {
	var buf bytes.Buffer
	buf.Grow(len(in))
	for i := 0; i < len(in); i++ {
		buf.WriteByte(w.scr.screen(in[i]))
	}
	return w.target.Write(buf.Bytes())
}

func (w *writer) Reset(target io.Writer) {
	w.target = target
	w.scr.reset()
}
