package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrEmptyPassword = errors.New("empty password is not allowed")

// PromptPassword reads a password from the terminal without echoing it.
// When confirm is true the password must be entered twice.
func PromptPassword(prompt string, confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal, use --password instead")
	}
	_, _ = fmt.Fprint(os.Stderr, prompt)
	pw1, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(pw1) == 0 {
		return "", ErrEmptyPassword
	}
	if confirm {
		_, _ = fmt.Fprint(os.Stderr, "Confirm password: ")
		pw2, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password confirmation: %w", err)
		}
		if string(pw1) != string(pw2) {
			return "", errors.New("passwords do not match")
		}
	}
	return string(pw1), nil
}

// ReadText reads all of r, dropping a single trailing line break.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", err
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
