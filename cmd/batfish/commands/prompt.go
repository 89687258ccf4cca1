package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// confirm asks before a destructive operation. It returns
// ErrOperationCancelled unless the answer starts with y, or force is set.
func confirm(cmd *cobra.Command, force bool) error {
	if force {
		return nil
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), constants.ConfirmPrompt)

	answer, err := readLine(cmd.InOrStdin())
	if err != nil && answer == "" {
		return constants.ErrOperationCancelled
	}

	if !strings.HasPrefix(strings.ToLower(answer), "y") {
		return constants.ErrOperationCancelled
	}

	return nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')

	return strings.TrimSpace(line), err
}

// readToken reads a token without echo when stdin is a terminal, and a plain
// line otherwise.
func readToken(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Token: ")

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(cmd.OutOrStdout())

		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	token, err := readLine(cmd.InOrStdin())
	if err != nil && token == "" {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return token, nil
}

// maskToken keeps the last few characters of a token visible.
func maskToken(token string) string {
	if token == "" {
		return constants.None
	}

	if len(token) <= constants.MaskVisibleChars {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + token[len(token)-constants.MaskVisibleChars:]
}

func addForceFlag(cmd *cobra.Command, force *bool) {
	cmd.Flags().BoolVarP(force, "force", "f", false, "do not ask for confirmation")
}

func addWaitFlag(cmd *cobra.Command, wait *bool) {
	cmd.Flags().BoolVarP(wait, "wait", "w", false, "wait for the action to finish")
}
