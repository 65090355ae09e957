// Package terminal guards the terminal state around the dashboard.
//
// Bubble Tea switches the terminal into raw mode and the alternate screen
// while it runs. Session captures the state beforehand so it can be put back
// on every exit path, including panics.
package terminal

import (
	"os"
	"sync"

	"github.com/rileyhilliard/ptop/internal/errors"
	"golang.org/x/term"
)

// console is the slice of x/term a Session needs.
type console interface {
	IsTerminal(fd int) bool
	GetState(fd int) (*term.State, error)
	Restore(fd int, state *term.State) error
}

type xterm struct{}

func (xterm) IsTerminal(fd int) bool { return term.IsTerminal(fd) }

func (xterm) GetState(fd int) (*term.State, error) { return term.GetState(fd) }

func (xterm) Restore(fd int, state *term.State) error { return term.Restore(fd, state) }

// Session holds the terminal state captured at startup.
type Session struct {
	con   console
	fd    int
	state *term.State

	once sync.Once
	err  error
}

// Open checks that in and out are both terminals and captures the input
// state for Close to restore.
func Open(in, out *os.File) (*Session, error) {
	return open(xterm{}, in, out)
}

func open(con console, in, out *os.File) (*Session, error) {
	if in == nil || out == nil {
		return nil, errors.NewTerminalInitError(nil, "No terminal attached")
	}
	if !con.IsTerminal(int(out.Fd())) {
		return nil, errors.NewTerminalInitError(nil, "stdout is not a terminal")
	}
	fd := int(in.Fd())
	if !con.IsTerminal(fd) {
		return nil, errors.NewTerminalInitError(nil, "stdin is not a terminal")
	}

	state, err := con.GetState(fd)
	if err != nil {
		return nil, errors.NewTerminalInitError(err, "Can't read the terminal state")
	}
	return &Session{con: con, fd: fd, state: state}, nil
}

// Close restores the captured state. Only the first call does anything.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if err := s.con.Restore(s.fd, s.state); err != nil {
			s.err = errors.NewTerminalInitError(err, "Can't restore the terminal")
		}
	})
	return s.err
}

// Guard runs fn and restores the terminal if fn panics, then re-panics so
// the trace lands on a usable screen.
func (s *Session) Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			_ = s.Close()
			panic(r)
		}
	}()
	return fn()
}
