// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
	customValidation "github.com/honeydid/honeydid/internal/validation"
)

// Import modes.
const (
	ImportModeReplace = "replace"
	ImportModeMerge   = "merge"
)

var fallbackPassphrase = customValidation.ByteLength{Max: customValidation.MaxPassphraseLength, Name: "fallback passphrase"}

// ExportRequest contains the parameters for a single-passphrase export.
type ExportRequest struct {
	Passphrase     string `json:"passphrase"`
	IncludeWelcome bool   `json:"include_welcome"`
}

// Validate checks if the export request is valid.
func (r *ExportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase, customValidation.Passphrase),
	)
}

// ToOptions converts the request to export options.
func (r *ExportRequest) ToOptions() exportDomain.SingleOptions {
	return exportDomain.SingleOptions{
		Passphrase:     r.Passphrase,
		IncludeWelcome: r.IncludeWelcome,
	}
}

// ExportQuestionsRequest contains the parameters for a question-unlock export. Slides and the
// fallback passphrase default to the document's welcome screen when omitted.
type ExportQuestionsRequest struct {
	Slides             []documentDomain.QuestionSlide `json:"slides"`
	FallbackPassphrase string                         `json:"fallback_passphrase"`
	IncludeWelcome     bool                           `json:"include_welcome"`
}

// Validate checks if the export request is valid. Question count and answers are checked by the
// exporter before any key is derived.
func (r *ExportQuestionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FallbackPassphrase, fallbackPassphrase),
	)
}

// ToOptions converts the request to export options.
func (r *ExportQuestionsRequest) ToOptions() exportDomain.DualKeyOptions {
	return exportDomain.DualKeyOptions{
		Slides:             r.Slides,
		FallbackPassphrase: r.FallbackPassphrase,
		IncludeWelcome:     r.IncludeWelcome,
	}
}

// FileRequest carries an exported HTML file either as text or base64 encoded.
type FileRequest struct {
	HTML       string `json:"html"`
	HTMLBase64 string `json:"html_base64"`
}

// Validate checks that exactly one form of the file is present.
func (r *FileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.HTML,
			validation.Required.When(r.HTMLBase64 == "").Error("html or html_base64 is required"),
			validation.Empty.When(r.HTMLBase64 != "").Error("only one of html and html_base64 may be set"),
		),
		validation.Field(&r.HTMLBase64, customValidation.Base64File),
	)
}

// Content returns the HTML text. Validate must have succeeded.
func (r *FileRequest) Content() string {
	if r.HTML != "" {
		return r.HTML
	}
	data, _ := base64.StdEncoding.DecodeString(r.HTMLBase64)
	return string(data)
}

// ImportRequest contains an exported file and the credentials to open it. With an empty mode the
// opened document is returned without changing the working document.
type ImportRequest struct {
	FileRequest
	Passphrase string   `json:"passphrase"`
	Answers    []string `json:"answers"`
	Mode       string   `json:"mode"`
}

// Validate checks if the import request is valid.
func (r *ImportRequest) Validate() error {
	if err := r.FileRequest.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase, fallbackPassphrase),
		validation.Field(&r.Answers,
			validation.Required.When(r.Passphrase == "").Error("a passphrase or answers are required"),
		),
		validation.Field(&r.Mode, validation.In("", ImportModeReplace, ImportModeMerge)),
	)
}

// Credentials returns the unlock credentials of the request.
func (r *ImportRequest) Credentials() exportDomain.Credentials {
	return exportDomain.Credentials{
		Passphrase: r.Passphrase,
		Answers:    r.Answers,
	}
}

// RecoveryCardRequest contains the parameters for a printable recovery card.
type RecoveryCardRequest struct {
	Passphrase string `json:"passphrase"`
	FileName   string `json:"file_name"`
}

// Validate checks if the recovery card request is valid.
func (r *RecoveryCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase, customValidation.Passphrase),
		validation.Field(&r.FileName, validation.Length(0, 255)),
	)
}

// PasswordRequest carries an app password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks that a password is present.
func (r *PasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// ChangePasswordRequest contains the current and the new app password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, customValidation.AppPassword),
	)
}

// ForceClearRequest carries the typed confirmation phrase.
type ForceClearRequest struct {
	Confirmation string `json:"confirmation"`
}

// Validate checks that the confirmation phrase matches.
func (r *ForceClearRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Confirmation, validation.Required, customValidation.ConfirmationPhrase),
	)
}

// SettingsRequest updates user settings.
type SettingsRequest struct {
	ClearOnExit *bool `json:"clear_on_exit"`
}

// Validate checks if the settings request is valid.
func (r *SettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClearOnExit, validation.NotNil),
	)
}
