package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/desk"
)

// HashPasswordCommand prints the hash a courier's password is stored as,
// for seeding the courier table by hand.
type HashPasswordCommand struct {
	CourierID string

	prompt desk.CredentialPrompt
	out    io.Writer
}

func NewHashPasswordCommand() *HashPasswordCommand {
	return &HashPasswordCommand{out: os.Stdout}
}

func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)

	fs.StringVar(&cmd.CourierID, "id", "", "Numeric courier id the hash is bound to (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-password -id <id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Read a password from the terminal and print its stored hash.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CourierID == "" {
		return fmt.Errorf("required flag -id not provided")
	}
	return nil
}

func (cmd *HashPasswordCommand) Run() error {
	prompt := cmd.prompt
	if prompt == nil {
		prompt = NewTerminalPrompt(cmd.CourierID)
	}

	_, hash, ok := prompt.Credentials(context.Background())
	if !ok {
		return auth.ErrPasswordRequired
	}
	fmt.Fprintln(cmd.out, hash)
	return nil
}
