package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
)

// RunShow prints the working document. The json format prints the full document, the text format
// prints one line per section with its item count.
func RunShow(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	format string,
	io IOTuple,
) error {
	doc, err := documentUseCase.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	logger.Debug("document loaded", slog.Int("custom_sections", len(doc.CustomSections)))

	switch format {
	case "json":
		return outputJSON(doc, io.Writer)
	case "text", "":
		outputSummary(doc, io.Writer)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// RunEdit replaces the working document with the JSON document read from path ("-" reads the
// command input).
func RunEdit(
	ctx context.Context,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
	path string,
	io IOTuple,
) error {
	data, err := readSource(path, io.Reader)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	var doc documentDomain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse document JSON: %w", err)
	}

	updated, err := documentUseCase.Update(ctx, &doc)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("document updated", slog.String("source", path))
	printSuccess(io.Writer, "Document saved")
	outputSummary(updated, io.Writer)

	return nil
}

func outputSummary(doc *documentDomain.Document, w io.Writer) {
	if doc.Meta.CreatorName != "" {
		_, _ = fmt.Fprintf(w, "Prepared by: %s\n", doc.Meta.CreatorName)
	}
	if doc.Meta.UpdatedAt != "" {
		_, _ = fmt.Fprintf(w, "Last updated: %s\n", doc.Meta.UpdatedAt)
	}

	for _, section := range doc.Summary() {
		_, _ = fmt.Fprintf(w, "  %-20s %d\n", section.Name, section.Items)
	}
}
