package commands

import (
	"context"
	"fmt"
	"log/slog"

	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

// RunPassphrase prints a random word passphrase and optionally copies it to the clipboard.
func RunPassphrase(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	copyToClipboard bool,
	copyFn func(string) error,
	io IOTuple,
) error {
	passphrase, err := documentUseCase.GeneratePassphrase(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate passphrase: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, passphrase)
	if copyToClipboard {
		copyPassphrase(passphrase, copyFn, logger, io.Writer)
	}

	return nil
}
