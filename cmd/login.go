package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Leochin1206/GeraApp/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
	registerName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the GeraApp backend and save the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := valueOrPrompt(cmd, loginEmail, "E-mail: ")
		if err != nil {
			return err
		}
		password, err := secretOrPrompt(cmd, loginPassword, "Senha: ")
		if err != nil {
			return err
		}

		client := api.NewClient(cfg.APIURL, "", cfg.Timeout)
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		token, err := client.Login(ctx, email, password)
		if err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		store := tokenStore()
		if err := store.Save(token.AccessToken); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (token saved to %s)\n", email, store.Path())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tokenStore().Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := valueOrPrompt(cmd, registerName, "Nome: ")
		if err != nil {
			return err
		}
		email, err := valueOrPrompt(cmd, loginEmail, "E-mail: ")
		if err != nil {
			return err
		}
		password, err := secretOrPrompt(cmd, loginPassword, "Senha: ")
		if err != nil {
			return err
		}

		client := api.NewClient(cfg.APIURL, "", cfg.Timeout)
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		user, err := client.Register(ctx, api.NewUser{Name: name, Email: email, Password: password})
		if err != nil {
			return fmt.Errorf("registering: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run 'geraapp login' to sign in.\n", user.Name)
		return nil
	},
}

// valueOrPrompt returns value, or reads one line from the command's input
// when value is empty.
func valueOrPrompt(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := readLine(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.TrimSuffix(strings.TrimSpace(prompt), ":"))
	}
	return line, nil
}

// secretOrPrompt is valueOrPrompt without echo when the input is a terminal.
// Piped input is read line by line like any other prompt.
func secretOrPrompt(cmd *cobra.Command, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return valueOrPrompt(cmd, value, prompt)
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line := strings.TrimSpace(string(secret))
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.TrimSuffix(strings.TrimSpace(prompt), ":"))
	}
	return line, nil
}

// readLine reads up to the next newline without buffering past it, so
// successive prompts can share the same input.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account e-mail")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "full name")
	registerCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account e-mail")
	registerCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd)
}
