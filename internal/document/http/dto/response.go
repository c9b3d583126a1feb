package dto

import (
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// FileInfoResponse describes an exported file without opening it.
type FileInfoResponse struct {
	Mode          string                       `json:"mode"`
	HasPassphrase bool                         `json:"has_passphrase"`
	Slides        []documentDomain.PublicSlide `json:"slides"`
}

// MapFileInfoToResponse converts file info to an API response.
func MapFileInfoToResponse(info *exportDomain.FileInfo) FileInfoResponse {
	slides := info.Slides
	if slides == nil {
		slides = []documentDomain.PublicSlide{}
	}
	return FileInfoResponse{
		Mode:          string(info.Mode),
		HasPassphrase: info.HasPassphrase,
		Slides:        slides,
	}
}

// PassphraseResponse carries a generated passphrase.
type PassphraseResponse struct {
	Passphrase string `json:"passphrase"` //nolint:gosec // generated for the caller
}

// VerifyPasswordResponse reports whether an app password matched.
type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

// PasswordStatusResponse reports whether an app password is set.
type PasswordStatusResponse struct {
	HasPassword bool `json:"has_password"`
}

// SettingsResponse represents user settings.
type SettingsResponse struct {
	ClearOnExit bool `json:"clear_on_exit"`
}
