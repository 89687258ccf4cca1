package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewShellCommand creates the interactive shell. newRoot must return a fresh
// command tree; one is built per line so flag values never leak between
// lines.
func NewShellCommand(newRoot func() *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Long: `Read commands at a prompt and run them as if given on the command line.

Type 'help' for the command list and 'quit' or 'exit' (or Ctrl-D) to leave.
Global flags given to 'batfish shell' apply to every command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, newRoot)
		},
	}
}

func runShell(cmd *cobra.Command, newRoot func() *cobra.Command) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// Shared so confirmation prompts read from the same buffer.
	in := bufio.NewReader(cmd.InOrStdin())

	var inherited []string

	cmd.Root().PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			inherited = append(inherited, "--"+flag.Name+"="+flag.Value.String())
		}
	})

	for {
		_, _ = fmt.Fprint(out, constants.ShellPrompt)

		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}

		if err != nil && strings.TrimSpace(line) == "" {
			_, _ = fmt.Fprintln(out)

			return nil
		}

		fields := strings.Fields(line)

		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "quit" || fields[0] == "exit":
			return nil
		case fields[0] == "shell":
			_, _ = fmt.Fprintln(errOut, "Already in the shell.")

			continue
		}

		root := newRoot()
		root.SetArgs(append(append([]string{}, inherited...), fields...))
		root.SetIn(in)
		root.SetOut(out)
		root.SetErr(errOut)

		if runErr := root.ExecuteContext(cmd.Context()); runErr != nil {
			_, _ = fmt.Fprintln(errOut, ErrorMessage(runErr))
		}
	}
}
