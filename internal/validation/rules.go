// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/honeydid/honeydid/internal/errors"
)

// Input limits shared by the use case and the HTTP and CLI surfaces.
const (
	MinPassphraseLength = 1
	MaxPassphraseLength = 1024
	MinPasswordLength   = 8
	MaxPasswordLength   = 256
	MaxImportSize       = 50 * 1024 * 1024

	// ForceClearPhrase must be typed, in any case, to clear all data without the app password.
	ForceClearPhrase = "DELETE ALL DATA"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// ByteLength validates the length of a string in bytes, not runes. Unlike validation.Length an
// empty string is checked too.
type ByteLength struct {
	Min  int
	Max  int
	Name string
}

// Validate checks that value is a string whose byte length is within [Min, Max].
func (b ByteLength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_byte_length_type", "must be a string")
	}

	name := b.Name
	if name == "" {
		name = "value"
	}
	if len(s) < b.Min {
		if b.Min == 1 {
			return validation.NewError("validation_byte_length_empty", name+" cannot be empty")
		}
		return validation.NewError(
			"validation_byte_length_min",
			fmt.Sprintf("%s must be at least %d characters", name, b.Min),
		)
	}
	if b.Max > 0 && len(s) > b.Max {
		return validation.NewError("validation_byte_length_max", name+" is too long")
	}
	return nil
}

// Passphrase validates an export or import passphrase.
var Passphrase = ByteLength{Min: MinPassphraseLength, Max: MaxPassphraseLength, Name: "passphrase"}

// AppPassword validates a new app password.
var AppPassword = ByteLength{Min: MinPasswordLength, Max: MaxPasswordLength, Name: "password"}

// PasswordAttempt validates a password being verified. Old passwords may predate the minimum
// length, so only emptiness and the maximum are checked.
var PasswordAttempt = ByteLength{Min: 1, Max: MaxPasswordLength, Name: "password"}

// ImportContent validates the HTML of a file being imported.
var ImportContent = ByteLength{Min: 1, Max: MaxImportSize, Name: "file content"}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ConfirmationPhrase validates that a string equals ForceClearPhrase ignoring case.
var ConfirmationPhrase = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_confirmation_type", "must be a string")
	}
	if strings.ToUpper(s) != ForceClearPhrase {
		return validation.NewError(
			"validation_confirmation",
			"please type "+ForceClearPhrase+" to confirm",
		)
	}
	return nil
})
