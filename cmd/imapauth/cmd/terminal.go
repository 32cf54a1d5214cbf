package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalReporter shows transient status messages by rewriting a
// single line in place, the way interactive mail clients do. Errors are
// printed on their own line so they stay visible.
type terminalReporter struct {
	w     io.Writer
	width int // width of the message currently displayed
}

func (r *terminalReporter) Notify(message string) {
	r.show(message)
}

func (r *terminalReporter) NotifyError(message string) {
	r.show(message)
	fmt.Fprintln(r.w)
	r.width = 0
}

func (r *terminalReporter) Clear() {
	if r.width == 0 {
		return
	}
	fmt.Fprintf(r.w, "\r%v\r", strings.Repeat(" ", r.width))
	r.width = 0
}

func (r *terminalReporter) show(message string) {
	pad := ""
	if n := r.width - len(message); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(r.w, "\r%v%v", message, pad)
	r.width = len(message)
}

// promptCredentials asks for the missing credential fields on the
// controlling terminal. The password never echoes.
type promptCredentials struct {
	username string
}

func (creds *promptCredentials) Username() (string, error) {
	if creds.username != "" {
		return creds.username, nil
	}
	fmt.Fprint(os.Stderr, "Username: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	creds.username = strings.TrimSpace(line)
	return creds.username, nil
}

func (creds *promptCredentials) Password() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("refusing to read a password from a non-terminal stdin")
	}
	fmt.Fprintf(os.Stderr, "Password for %v: ", creds.username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
