package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptCommand(input string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	stderr := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetErr(stderr)
	return cmd, stderr
}

func TestSecretOrPrompt_PipedInput(t *testing.T) {
	cmd, stderr := promptCommand("ana@example.com\nsecret\n")

	email, err := valueOrPrompt(cmd, "", "E-mail: ")
	require.NoError(t, err)
	password, err := secretOrPrompt(cmd, "", "Senha: ")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", email)
	assert.Equal(t, "secret", password)
	assert.Equal(t, "E-mail: Senha: ", stderr.String())
}

func TestSecretOrPrompt_FlagValueSkipsPrompt(t *testing.T) {
	cmd, stderr := promptCommand("")

	password, err := secretOrPrompt(cmd, "from-flag", "Senha: ")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", password)
	assert.Empty(t, stderr.String())
}

func TestSecretOrPrompt_EmptyInput(t *testing.T) {
	cmd, _ := promptCommand("\n")

	_, err := secretOrPrompt(cmd, "", "Senha: ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Senha is required")
}
