// Package confirm gates destructive actions behind a typed password.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrCancelled indicates the user backed out of the prompt.
	ErrCancelled = errors.New("cancelled")

	// ErrTooManyAttempts indicates every attempt was wrong.
	ErrTooManyAttempts = errors.New("too many incorrect attempts")
)

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm() (bool, error)
}

// Check reports whether input matches password, ignoring case
func Check(input, password string) bool {
	return strings.EqualFold(input, password)
}

// Always approves without asking
type Always struct{}

func (Always) Confirm() (bool, error) { return true, nil }

// Password prompts for a password. When In is a terminal the input is not
// echoed; otherwise one line is read per attempt.
type Password struct {
	Password string
	Attempts int
	In       io.Reader
	Out      io.Writer

	lines *bufio.Reader
}

// NewPassword returns a Password prompt on stdin and stderr
func NewPassword(password string, attempts int) *Password {
	return &Password{
		Password: password,
		Attempts: attempts,
		In:       os.Stdin,
		Out:      os.Stderr,
	}
}

// Confirm prompts until the right password is entered, the input is empty
// (cancel), or the attempts run out.
func (p *Password) Confirm() (bool, error) {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	fmt.Fprintln(p.Out, "Enter the password to shuffle the deck (empty to cancel):")
	for i := 0; i < attempts; i++ {
		fmt.Fprint(p.Out, "Password: ")
		input, err := p.read()
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("error reading password: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			return false, ErrCancelled
		}
		if Check(input, p.Password) {
			return true, nil
		}

		fmt.Fprintln(p.Out, "Incorrect password. Please try again.")
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return false, ErrTooManyAttempts
}

func (p *Password) read() (string, error) {
	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		return string(b), err
	}

	if p.lines == nil {
		p.lines = bufio.NewReader(p.In)
	}
	line, err := p.lines.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
