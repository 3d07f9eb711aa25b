package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// test seams for the terminal
var (
	readPassword = term.ReadPassword
	isTerminal   = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// prompt prints label and reads one trimmed line
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(a.errOut, label); err != nil {
		return "", err
	}
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo on a terminal and falls back to a plain
// line otherwise.
func (a *App) promptSecret(label string) (string, error) {
	if !isTerminal() {
		return a.prompt(label)
	}
	fmt.Fprint(a.errOut, label)
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
