package haptics

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned by a Bell whose output is not a terminal.
var ErrNoTerminal = errors.New("haptics: output is not a terminal")

// Bell is the terminal stand-in for a tactile engine: it rings the BEL
// character for pulses at or above Min.
type Bell struct {
	W   io.Writer
	Min Intensity
}

// NewBell returns a Bell on w. Pulses fail with ErrNoTerminal when w is an
// *os.File that is not attached to a terminal.
func NewBell(w io.Writer, min Intensity) *Bell {
	return &Bell{W: w, Min: min}
}

func (b *Bell) Pulse(i Intensity) error {
	if i < b.Min {
		return nil
	}
	if f, ok := b.W.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return ErrNoTerminal
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}
