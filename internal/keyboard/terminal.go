package keyboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the file is not a terminal.
var ErrNotTerminal = errors.New("keyboard: not a terminal")

// Terminal holds a file switched to raw mode.
type Terminal struct {
	f     *os.File
	fd    int
	state *term.State
}

// Open switches f to raw mode. Close restores the previous mode.
func Open(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("keyboard: raw mode: %w", err)
	}
	return &Terminal{f: f, fd: fd, state: state}, nil
}

// Reader returns the raw input stream.
func (t *Terminal) Reader() io.Reader { return t.f }

// Close restores the terminal mode.
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(t.fd, t.state)
	t.state = nil
	return err
}

// Run reads key bytes from r and calls fn for every mapped key until fn
// returns false, r is exhausted, or ctx is done. A blocked read is
// abandoned, not interrupted, when ctx ends.
func Run(ctx context.Context, r io.Reader, fn func(Action) bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan byte)
	errc := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				select {
				case keys <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("keyboard: read: %w", err)
		case b := <-keys:
			a, ok := Lookup(b)
			if !ok {
				continue
			}
			if !fn(a) {
				return nil
			}
		}
	}
}
