package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// ExportInput holds the flags of the export command.
type ExportInput struct {
	// Passphrase is prompted for when empty and Generate is false.
	Passphrase string
	// Generate creates a random word passphrase and prints it.
	Generate bool
	// Copy puts a generated passphrase on the clipboard.
	Copy           bool
	IncludeWelcome bool
	// Output is the destination file. The user is asked when it is empty.
	Output string
}

// RunExport encrypts the working document with a passphrase and writes the exported HTML file.
// A declined destination cancels the export without an error.
func RunExport(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	input ExportInput,
	copyFn func(string) error,
	io IOTuple,
) error {
	p := newPrompter(io)

	passphrase := input.Passphrase
	switch {
	case input.Generate:
		generated, err := documentUseCase.GeneratePassphrase(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate passphrase: %w", err)
		}
		passphrase = generated
		_, _ = fmt.Fprintf(io.Writer, "Passphrase: %s\n", passphrase)
		printWarning(io.Writer, "Write this passphrase down. The file cannot be opened without it.")
		if input.Copy {
			copyPassphrase(passphrase, copyFn, logger, io.Writer)
		}
	case passphrase == "":
		entered, err := p.confirmedSecret("Passphrase: ", "Confirm passphrase: ")
		if err != nil {
			return fmt.Errorf("failed to read passphrase: %w", err)
		}
		passphrase = entered
	}

	artifact, err := documentUseCase.ExportSingle(ctx, exportDomain.SingleOptions{
		Passphrase:     passphrase,
		IncludeWelcome: input.IncludeWelcome,
	})
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	return saveArtifact(ctx, documentUseCase, logger, artifact, input.Output, p, io.Writer)
}

// RunExportQuestions encrypts the working document so it opens with the answers to the welcome
// screen questions. slidesPath optionally names a JSON array of slides that replaces the welcome
// screen slides for this export.
func RunExportQuestions(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	slidesPath string,
	fallbackPassphrase string,
	includeWelcome bool,
	output string,
	io IOTuple,
) error {
	p := newPrompter(io)

	var slides []documentDomain.QuestionSlide
	if slidesPath != "" {
		data, err := readSource(slidesPath, io.Reader)
		if err != nil {
			return fmt.Errorf("failed to read slides: %w", err)
		}
		if err := json.Unmarshal(data, &slides); err != nil {
			return fmt.Errorf("failed to parse slides JSON: %w", err)
		}
		if slides == nil {
			slides = []documentDomain.QuestionSlide{}
		}
	}

	artifact, err := documentUseCase.ExportDualKey(ctx, exportDomain.DualKeyOptions{
		Slides:             slides,
		FallbackPassphrase: fallbackPassphrase,
		IncludeWelcome:     includeWelcome,
	})
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	if err := saveArtifact(ctx, documentUseCase, logger, artifact, output, p, io.Writer); err != nil {
		return err
	}
	if fallbackPassphrase != "" {
		printHint(io.Writer, "The fallback passphrase also opens this file")
	}

	return nil
}

func saveArtifact(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	artifact *exportDomain.Artifact,
	output string,
	p *prompter,
	w io.Writer,
) error {
	path, err := documentUseCase.SaveExport(ctx, artifact, newDestinationChooser(output, p))
	if errors.Is(err, exportDomain.ErrExportCancelled) {
		printWarning(w, "Export cancelled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}

	logger.Info("document exported", slog.String("mode", string(artifact.Mode)), slog.String("path", path))
	printSuccess(w, "Exported to %s", path)

	return nil
}

// newDestinationChooser returns output when set. Otherwise it asks for a path, where a blank answer
// keeps the suggested name and closed input declines.
func newDestinationChooser(output string, p *prompter) exportDomain.DestinationChooser {
	return func(_ context.Context, suggestedName string) (string, bool, error) {
		if output != "" {
			return output, true, nil
		}

		answer, err := p.line(fmt.Sprintf("Save as [%s]: ", suggestedName))
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			return suggestedName, true, nil
		}
		return answer, true, nil
	}
}

func copyPassphrase(passphrase string, copyFn func(string) error, logger *slog.Logger, w io.Writer) {
	if err := copyFn(passphrase); err != nil {
		logger.Warn("failed to copy passphrase to clipboard", slog.Any("error", err))
		printFailure(w, "Could not copy the passphrase to the clipboard")
		return
	}
	printSuccess(w, "Passphrase copied to clipboard")
}
