package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"extras-cli/internal/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the HTTP API bearer token",
	}
	cmd.AddCommand(newAuthSetTokenCmd(app))
	cmd.AddCommand(newAuthClearCmd(app))
	cmd.AddCommand(newAuthShowCmd(app))
	return cmd
}

func newAuthSetTokenCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store the API token in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := token
			if !cmd.Flags().Changed("token") {
				var err error
				tok, err = readToken(cmd)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := auth.SaveToken(tok); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"stored": true,
				"token":  auth.Mask(strings.TrimSpace(tok)),
			}})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Token value (default: prompt, or read stdin)")
	return cmd
}

// readToken prompts without echo on a terminal and otherwise reads the first
// line of stdin.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "API token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newAuthClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the API token from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.ClearToken(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"cleared": true}})
		},
	}
}

func newAuthShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show where the API token comes from (masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, src, err := auth.LoadToken()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"token":  auth.Mask(tok),
				"source": string(src),
			}})
		},
	}
}
