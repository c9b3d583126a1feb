package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// RunImport opens an exported file. Without a passphrase the command asks for one, or for the
// answers to the file's questions when it was exported for question unlock. With replace or merge
// the opened document becomes part of the working document; otherwise only a summary is printed.
func RunImport(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	path string,
	passphrase string,
	replace bool,
	merge bool,
	io IOTuple,
) error {
	if replace && merge {
		return errors.New("--replace and --merge cannot be used together")
	}

	data, err := readSource(path, io.Reader)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > exportDomain.MaxImportSize {
		return fmt.Errorf("file is larger than %d bytes", exportDomain.MaxImportSize)
	}
	html := string(data)

	info, err := documentUseCase.Inspect(ctx, html)
	if err != nil {
		return fmt.Errorf("failed to open file: %s", cryptoDomain.PublicMessage(err))
	}

	creds := exportDomain.Credentials{Passphrase: passphrase}
	if passphrase == "" {
		p := newPrompter(io)
		if info.Mode == cryptoDomain.ModeDualKey {
			creds.Answers, err = askQuestions(p, info.Slides)
		} else {
			creds.Passphrase, err = p.secret("Passphrase: ")
		}
		if err != nil {
			return fmt.Errorf("failed to read credentials: %w", err)
		}
	}

	imported, err := documentUseCase.Import(ctx, html, creds)
	if err != nil {
		if cryptoDomain.IsDecryptionFailure(err) {
			printFailure(io.Writer, "%s", cryptoDomain.PublicDecryptionMessage)
			return errors.New(cryptoDomain.PublicDecryptionMessage)
		}
		return fmt.Errorf("failed to import file: %w", err)
	}

	var doc *documentDomain.Document
	switch {
	case replace:
		doc, err = documentUseCase.Replace(ctx, imported)
	case merge:
		doc, err = documentUseCase.Merge(ctx, imported)
	default:
		printSuccess(io.Writer, "File opened")
		outputSummary(imported, io.Writer)
		printHint(io.Writer, "Use --replace or --merge to keep this document")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("document imported", slog.String("mode", string(info.Mode)), slog.Bool("merge", merge))
	if merge {
		printSuccess(io.Writer, "Imported entries merged into the working document")
	} else {
		printSuccess(io.Writer, "Working document replaced")
	}
	outputSummary(doc, io.Writer)

	return nil
}

// askQuestions shows the public slides in order and collects one answer per question slide.
func askQuestions(p *prompter, slides []documentDomain.PublicSlide) ([]string, error) {
	var answers []string
	for _, slide := range slides {
		if slide.Kind != documentDomain.SlideQuestion {
			_, _ = fmt.Fprintln(p.out, slide.Text)
			continue
		}

		answer, err := p.line(slide.Text + " ")
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}

	return answers, nil
}
