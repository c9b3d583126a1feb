package dto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestExportRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := ExportRequest{Passphrase: "correct horse", IncludeWelcome: true}
		assert.NoError(t, req.Validate())
		assert.Equal(t, "correct horse", req.ToOptions().Passphrase)
		assert.True(t, req.ToOptions().IncludeWelcome)
	})

	t.Run("empty passphrase", func(t *testing.T) {
		req := ExportRequest{}
		err := req.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "passphrase cannot be empty")
	})

	t.Run("passphrase too long", func(t *testing.T) {
		req := ExportRequest{Passphrase: strings.Repeat("a", 1025)}
		assert.Error(t, req.Validate())
	})
}

func TestExportQuestionsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ExportQuestionsRequest{}).Validate())
	assert.NoError(t, (&ExportQuestionsRequest{FallbackPassphrase: "spare"}).Validate())
	assert.Error(t, (&ExportQuestionsRequest{FallbackPassphrase: strings.Repeat("a", 1025)}).Validate())
}

func TestImportRequest_Validate(t *testing.T) {
	html := "<html>const ENCRYPTED_DATA = {};</html>"

	tests := []struct {
		name    string
		req     ImportRequest
		wantErr bool
	}{
		{
			name: "html with passphrase",
			req:  ImportRequest{FileRequest: FileRequest{HTML: html}, Passphrase: "secret"},
		},
		{
			name: "base64 with answers and merge",
			req: ImportRequest{
				FileRequest: FileRequest{HTMLBase64: base64.StdEncoding.EncodeToString([]byte(html))},
				Answers:     []string{"paris", "rex"},
				Mode:        ImportModeMerge,
			},
		},
		{
			name:    "no file",
			req:     ImportRequest{Passphrase: "secret"},
			wantErr: true,
		},
		{
			name:    "both file forms",
			req:     ImportRequest{FileRequest: FileRequest{HTML: html, HTMLBase64: "aGk="}, Passphrase: "secret"},
			wantErr: true,
		},
		{
			name:    "invalid base64",
			req:     ImportRequest{FileRequest: FileRequest{HTMLBase64: "not base64!"}, Passphrase: "secret"},
			wantErr: true,
		},
		{
			name:    "no credentials",
			req:     ImportRequest{FileRequest: FileRequest{HTML: html}},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			req:     ImportRequest{FileRequest: FileRequest{HTML: html}, Passphrase: "secret", Mode: "append"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, html, tt.req.Content())
		})
	}
}

func TestAccountRequests_Validate(t *testing.T) {
	assert.Error(t, (&PasswordRequest{}).Validate())
	assert.NoError(t, (&PasswordRequest{Password: "x"}).Validate())

	assert.NoError(t, (&ChangePasswordRequest{OldPassword: "old", NewPassword: "new-password"}).Validate())
	assert.Error(t, (&ChangePasswordRequest{OldPassword: "old", NewPassword: "short"}).Validate())
	assert.Error(t, (&ChangePasswordRequest{NewPassword: "new-password"}).Validate())

	assert.NoError(t, (&ForceClearRequest{Confirmation: "Delete All Data"}).Validate())
	assert.Error(t, (&ForceClearRequest{Confirmation: "delete"}).Validate())
	assert.Error(t, (&ForceClearRequest{}).Validate())

	assert.NoError(t, (&SettingsRequest{ClearOnExit: boolPtr(false)}).Validate())
	assert.Error(t, (&SettingsRequest{}).Validate())

	assert.NoError(t, (&RecoveryCardRequest{Passphrase: "a-b-c"}).Validate())
	assert.Error(t, (&RecoveryCardRequest{}).Validate())
}
