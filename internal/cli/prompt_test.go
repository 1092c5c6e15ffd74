package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookcourier/internal/auth"
)

func scriptedPrompt(courierID, input string, tty bool) (*TerminalPrompt, *bytes.Buffer) {
	var out bytes.Buffer
	passwords := bufio.NewReader(strings.NewReader(input))
	return &TerminalPrompt{
		CourierID: courierID,
		in:        passwords,
		out:       &out,
		isTerm:    func(int) bool { return tty },
		read: func(int) ([]byte, error) {
			line, err := passwords.ReadString('\n')
			return []byte(strings.TrimSpace(line)), err
		},
	}, &out
}

func TestTerminalPrompt_AsksForIDAndPassword(t *testing.T) {
	p, out := scriptedPrompt("", "7\nsecret\n", false)

	id, hash, ok := p.Credentials(context.Background())

	assert.True(t, ok)
	assert.Equal(t, "7", id)
	assert.Equal(t, auth.HashPassword("7", "secret"), hash)
	assert.Contains(t, out.String(), "Courier id: ")
}

func TestTerminalPrompt_ReadsPasswordWithoutEcho(t *testing.T) {
	p, out := scriptedPrompt("7", "secret\n", true)

	_, hash, ok := p.Credentials(context.Background())

	assert.True(t, ok)
	assert.Equal(t, auth.HashPassword("7", "secret"), hash)
	assert.NotContains(t, out.String(), "secret")
}

func TestTerminalPrompt_EmptyInputCancels(t *testing.T) {
	p, _ := scriptedPrompt("", "", false)

	_, _, ok := p.Credentials(context.Background())

	assert.False(t, ok)
}

func TestTerminalPrompt_ConfirmMismatchCancels(t *testing.T) {
	p, out := scriptedPrompt("7", "secret\nsecreT\n", false)
	p.Confirm = true

	_, _, ok := p.Credentials(context.Background())

	assert.False(t, ok)
	assert.Contains(t, out.String(), "do not match")
}
