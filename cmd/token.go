package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Leochin1206/GeraApp/internal/config"
	"github.com/spf13/cobra"
)

var saveToken bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage web dashboard access tokens",
	Long:  `Generate and manage tokens that guard the web dashboard started by 'geraapp serve'.`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new dashboard access token",
	Long: `Generate a secure random token for dashboard access.

The token will be printed to stdout. Use --save to store it in ~/.geraapp/serve_tokens.
Generated tokens are 32 bytes (64 hex characters).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := generateSecureToken()
		if err != nil {
			return fmt.Errorf("generating token: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Generated token:")
		fmt.Fprintln(out, token)
		fmt.Fprintln(out)

		if saveToken {
			if err := appendServeToken(config.ServeTokensPath(), token); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			fmt.Fprintln(out, "Token saved to", config.ServeTokensPath())
		}

		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  - Set environment variable: export GERAAPP_AUTH_TOKENS="+token)
		fmt.Fprintln(out, "  - Or use the saved token file at ~/.geraapp/serve_tokens")
		fmt.Fprintln(out, "  - Include in requests: X-Auth-Token: <token>")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: Localhost requests (127.0.0.1, ::1) are always allowed without token.")

		return nil
	},
}

func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return "geraapp_token_" + hex.EncodeToString(bytes), nil
}

func appendServeToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening token file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, token); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func init() {
	tokenGenerateCmd.Flags().BoolVarP(&saveToken, "save", "s", false, "Save token to ~/.geraapp/serve_tokens")
	tokenCmd.AddCommand(tokenGenerateCmd)
	rootCmd.AddCommand(tokenCmd)
}
