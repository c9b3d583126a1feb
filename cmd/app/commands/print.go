package commands

import (
	"context"
	"fmt"
	"log/slog"

	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

// RunPrint renders the working document as unencrypted printable HTML. The HTML goes to output, or
// to the command output when output is empty.
func RunPrint(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	output string,
	io IOTuple,
) error {
	html, err := documentUseCase.Print(ctx)
	if err != nil {
		return fmt.Errorf("failed to render printout: %w", err)
	}

	if err := writeOutput(output, html, io.Writer); err != nil {
		return fmt.Errorf("failed to write printout: %w", err)
	}

	if output != "" && output != "-" {
		logger.Info("printout written", slog.String("path", output))
		printSuccess(io.Writer, "Printout written to %s", output)
		printWarning(io.Writer, "This file is not encrypted. Delete it after printing.")
	}

	return nil
}

// RunRecoveryCard renders a printable card with the passphrase of an export and its QR code.
// The passphrase is asked for when empty.
func RunRecoveryCard(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	passphrase string,
	fileName string,
	output string,
	io IOTuple,
) error {
	if passphrase == "" {
		entered, err := newPrompter(io).secret("Passphrase: ")
		if err != nil {
			return fmt.Errorf("failed to read passphrase: %w", err)
		}
		passphrase = entered
	}

	html, err := documentUseCase.RecoveryCard(ctx, passphrase, fileName)
	if err != nil {
		return fmt.Errorf("failed to render recovery card: %w", err)
	}

	if err := writeOutput(output, html, io.Writer); err != nil {
		return fmt.Errorf("failed to write recovery card: %w", err)
	}

	if output != "" && output != "-" {
		logger.Info("recovery card written", slog.String("path", output))
		printSuccess(io.Writer, "Recovery card written to %s", output)
	}

	return nil
}
