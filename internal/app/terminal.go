package app

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal is returned when the interactive browser is started without
// a terminal to draw on.
var ErrNoTerminal = errors.New("interactive mode needs a terminal on stdin and stdout; use -script to replay events headless")

// Terminal describes the terminal attached to the standard streams.
type Terminal struct {
	Interactive bool
	Width       int
	Height      int
}

// currentTerminal is swapped in tests.
var currentTerminal = func() Terminal {
	return detectTerminal(os.Stdin, os.Stdout)
}

// detectTerminal reports whether both in and out are terminals, with the
// size of out when it can be read.
func detectTerminal(in, out *os.File) Terminal {
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return Terminal{}
	}
	t := Terminal{Interactive: true}
	if w, h, err := term.GetSize(int(out.Fd())); err == nil {
		t.Width, t.Height = w, h
	}
	return t
}
