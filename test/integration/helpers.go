//go:build integration

package integration

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Token      string
	APIURL     string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Token:      os.Getenv("BATFISH_TOKEN"),
		APIURL:     os.Getenv("BATFISH_API"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("BATFISH_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the batfish binary.
func getBinaryPath() string {
	if path := os.Getenv("BATFISH_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../batfish",
		"./batfish",
		"../batfish",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				return abs
			}

			return candidate
		}
	}

	return "batfish"
}

// SkipIfMissingConfig skips the test unless a token and a binary are present.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" {
		t.Skip("BATFISH_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("batfish binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the batfish binary with an isolated HOME so the
// developer's token file and config are never touched.
type CommandRunner struct {
	config *TestConfig
	home   string
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config: config,
		home:   t.TempDir(),
		t:      t,
	}
}

// Home returns the isolated home directory.
func (runner *CommandRunner) Home() string {
	return runner.home
}

func (runner *CommandRunner) command(input string, args ...string) *exec.Cmd {
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Dir = runner.home
	cmd.Env = []string{
		"HOME=" + runner.home,
		"PATH=" + os.Getenv("PATH"),
	}

	if runner.config.APIURL != "" {
		cmd.Env = append(cmd.Env, "BATFISH_API="+runner.config.APIURL)
	}

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	return cmd
}

// Run executes a batfish command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a batfish command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := runner.command(input, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Authorize stores the configured token in the isolated home.
func (runner *CommandRunner) Authorize() error {
	_, stderr, err := runner.RunWithInput(runner.config.Token+"\n", "authorize")
	if err != nil {
		return fmt.Errorf("failed to authorize: %s", stderr)
	}

	return nil
}

// ExitCode extracts the process exit status from a Run error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// GenerateTestName creates a unique resource name that passes name
// validation.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}
