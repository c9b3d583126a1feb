// Package domain defines export artifacts, unlock credentials and export errors.
package domain

import (
	"context"
	"fmt"
	"time"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	"github.com/honeydid/honeydid/internal/errors"
)

const (
	// DataMarker precedes the encrypted payload JSON in every exported file.
	DataMarker = "const ENCRYPTED_DATA = "

	// SlidesMarker precedes the public slide array in dual-key exports.
	SlidesMarker = "const SLIDES = "

	// MaxImportSize bounds the HTML accepted by the importer.
	MaxImportSize = 50 * 1024 * 1024

	// MaxPassphraseLength bounds export and import passphrases, in bytes.
	MaxPassphraseLength = 1024
)

var (
	// ErrSerialization indicates the document could not be encoded or rendered.
	ErrSerialization = errors.New("failed to serialize document")

	// ErrNoFallbackPassphrase indicates a dual-key file without a passphrase key was opened with a
	// passphrase. Such a file can only be unlocked by answering its questions.
	ErrNoFallbackPassphrase = errors.Wrap(
		errors.ErrInvalidInput,
		"this file has no fallback passphrase and can only be opened by answering its questions",
	)

	// ErrEmptyPassphrase indicates an export was requested without a passphrase.
	ErrEmptyPassphrase = errors.Wrap(errors.ErrInvalidInput, "passphrase is required")

	// ErrPassphraseTooLong indicates a passphrase longer than MaxPassphraseLength bytes.
	ErrPassphraseTooLong = errors.Wrap(errors.ErrInvalidInput, "passphrase is too long")

	// ErrMissingCredentials indicates neither a passphrase nor answers were supplied.
	ErrMissingCredentials = errors.Wrap(errors.ErrInvalidInput, "a passphrase or question answers are required")

	// ErrPassphraseRequired indicates a single-passphrase file was opened with answers only.
	ErrPassphraseRequired = errors.Wrap(errors.ErrInvalidInput, "this file can only be opened with a passphrase")

	// ErrImportTooLarge indicates the HTML exceeds MaxImportSize.
	ErrImportTooLarge = errors.Wrap(errors.ErrInvalidInput, "file is too large to import")

	// ErrMarkerNotFound indicates the HTML carries no embedded payload.
	ErrMarkerNotFound = fmt.Errorf("%w: embedded data marker not found", cryptoDomain.ErrInvalidData)

	// ErrMalformedEmbedding indicates the embedded JSON is not balanced.
	ErrMalformedEmbedding = fmt.Errorf("%w: malformed embedded JSON", cryptoDomain.ErrInvalidData)

	// ErrExportCancelled indicates the user declined to choose a destination.
	ErrExportCancelled = errors.New("export cancelled")

	// ErrSaveFailed indicates the artifact could not be written to the chosen destination.
	ErrSaveFailed = errors.New("failed to save file")
)

// Artifact is a rendered export ready to be written.
type Artifact struct {
	HTML     []byte
	Mode     cryptoDomain.PayloadMode
	FileName string
}

// SingleOptions configures a single-passphrase export.
type SingleOptions struct {
	Passphrase string
	// IncludeWelcome shows the document's message slides before the passphrase box.
	IncludeWelcome bool
}

// DualKeyOptions configures a question-unlock export.
type DualKeyOptions struct {
	// Slides defaults to the document's welcome screen slides when nil.
	Slides []documentDomain.QuestionSlide
	// FallbackPassphrase, when non-empty, adds a passphrase key next to the question key.
	FallbackPassphrase string
	// IncludeWelcome keeps message slides in the unlock sequence. Question slides are always kept.
	IncludeWelcome bool
}

// Credentials unlock an exported file. Passphrase takes precedence over Answers for dual-key files.
type Credentials struct {
	Passphrase string
	Answers    []string
}

// FileInfo describes an exported file without opening it.
type FileInfo struct {
	Mode          cryptoDomain.PayloadMode
	HasPassphrase bool
	Slides        []documentDomain.PublicSlide
}

// DestinationChooser asks where to write an artifact. ok is false when the user declines.
type DestinationChooser func(ctx context.Context, suggestedName string) (path string, ok bool, err error)

// DefaultFileName is the suggested file name for an export created at now.
func DefaultFileName(now time.Time) string {
	return "honey-did-" + now.Format("2006-01-02") + ".html"
}
