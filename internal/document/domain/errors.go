package domain

import (
	"github.com/honeydid/honeydid/internal/errors"
)

// Question validation errors. They are raised before any cryptography runs.
var (
	ErrTooFewQuestions  = errors.Wrap(errors.ErrInvalidInput, "at least 2 questions required")
	ErrTooManyQuestions = errors.Wrap(errors.ErrInvalidInput, "maximum 5 questions allowed")
	ErrMissingAnswer    = errors.Wrap(errors.ErrInvalidInput, "all questions must have answers")

	// ErrWelcomeScreenDisabled indicates a dual-key export was requested without an enabled welcome screen.
	ErrWelcomeScreenDisabled = errors.Wrap(errors.ErrInvalidInput, "welcome screen not enabled")
)

// Document and app password errors.
var (
	// ErrDocumentRequired indicates a nil document was passed to an update.
	ErrDocumentRequired = errors.Wrap(errors.ErrInvalidInput, "document is required")

	// ErrIncorrectPassword indicates the app password did not match.
	ErrIncorrectPassword = errors.Wrap(errors.ErrUnauthorized, "incorrect password")
)
