// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/honeydid/honeydid/internal/app"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// prompter reads answers line by line from the command input. A single prompter must be used per
// command so buffered input is not lost between prompts.
type prompter struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

func newPrompter(io IOTuple) *prompter {
	return &prompter{
		in:  bufio.NewReader(io.Reader),
		raw: io.Reader,
		out: io.Writer,
	}
}

// line prints label and returns the next input line without its line ending. io.EOF is returned
// only when the input ends before any character is read.
func (p *prompter) line(label string) (string, error) {
	_, _ = fmt.Fprint(p.out, label)

	text, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}

	return strings.TrimRight(text, "\r\n"), nil
}

// secret reads a line without echo when the input is a terminal.
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(p.out, label)
		value, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(value), nil
	}

	return p.line(label)
}

// confirmedSecret asks for a secret twice and fails when the entries differ.
func (p *prompter) confirmedSecret(label, confirmLabel string) (string, error) {
	value, err := p.secret(label)
	if err != nil {
		return "", err
	}
	again, err := p.secret(confirmLabel)
	if err != nil {
		return "", err
	}
	if value != again {
		return "", errors.New("entries do not match")
	}

	return value, nil
}

// confirm asks a yes/no question. Anything but y or yes counts as no.
func (p *prompter) confirm(label string) (bool, error) {
	answer, err := p.line(label + " [y/N]: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readSource reads a file, or the command input when path is "-".
func readSource(path string, in io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(path) //nolint:gosec // path is supplied by the user on the command line
}

// writeOutput writes data to path with owner-only permissions, or to the command output when path
// is empty or "-".
func writeOutput(path string, data []byte, out io.Writer) error {
	if path == "" || path == "-" {
		_, err := out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func outputJSON(v any, w io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, color.YellowString("!")+" "+fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, color.RedString("✗")+" "+fmt.Sprintf(format, args...))
}

func printHint(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}
