package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mrlokans/bookcourier/internal/auth"
)

// TerminalPrompt asks for a courier id and password on the terminal and
// answers with the password hash. The password is never echoed. When
// stdin is not a terminal the password is read as a plain line, which
// keeps the commands scriptable.
type TerminalPrompt struct {
	CourierID string // Asked for when empty
	Confirm   bool   // Ask for the password twice

	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm func(fd int) bool
	read   func(fd int) ([]byte, error)
}

func NewTerminalPrompt(courierID string) *TerminalPrompt {
	return &TerminalPrompt{
		CourierID: courierID,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stderr,
		fd:        int(os.Stdin.Fd()),
		isTerm:    term.IsTerminal,
		read:      term.ReadPassword,
	}
}

// Credentials implements desk.CredentialPrompt. An empty answer or EOF
// counts as cancel.
func (p *TerminalPrompt) Credentials(ctx context.Context) (string, string, bool) {
	id := p.CourierID
	if id == "" {
		fmt.Fprint(p.out, "Courier id: ")
		line, err := p.readLine()
		if err != nil || line == "" {
			return "", "", false
		}
		id = line
	}

	password, err := p.password("Password: ")
	if err != nil || password == "" {
		return "", "", false
	}
	if p.Confirm {
		again, err := p.password("Repeat password: ")
		if err != nil || again != password {
			fmt.Fprintln(p.out, "Passwords do not match")
			return "", "", false
		}
	}

	return id, auth.HashPassword(id, password), true
}

func (p *TerminalPrompt) password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if p.isTerm(p.fd) {
		b, err := p.read(p.fd)
		fmt.Fprintln(p.out)
		return string(b), err
	}
	return p.readLine()
}

func (p *TerminalPrompt) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
