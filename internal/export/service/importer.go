package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// Importer opens previously exported artifacts.
type Importer struct {
	cipher cryptoService.PayloadCipher
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(cipher cryptoService.PayloadCipher, logger *slog.Logger) *Importer {
	return &Importer{cipher: cipher, logger: logger}
}

// Import extracts the embedded payload from html and opens it with creds.
//
// A flat payload needs creds.Passphrase. A dual-key payload is opened with creds.Passphrase through
// its passphrase key when one is given, otherwise with creds.Answers through its question key.
// Callers should show failures to users through cryptoDomain.PublicMessage.
func (i *Importer) Import(
	ctx context.Context,
	html string,
	creds exportDomain.Credentials,
) (*documentDomain.Document, error) {
	if len(html) > exportDomain.MaxImportSize {
		return nil, exportDomain.ErrImportTooLarge
	}
	if len(creds.Passphrase) > exportDomain.MaxPassphraseLength {
		return nil, exportDomain.ErrPassphraseTooLong
	}

	raw, err := ExtractJSON(html, exportDomain.DataMarker)
	if err != nil {
		return nil, err
	}
	mode, err := cryptoDomain.DetectMode([]byte(raw))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var plaintext []byte
	switch mode {
	case cryptoDomain.ModeDualKey:
		plaintext, err = i.openDualKey([]byte(raw), creds)
	default:
		plaintext, err = i.openSingle([]byte(raw), creds)
	}
	if err != nil {
		i.logger.Debug("import failed", slog.String("mode", string(mode)), slog.Any("error", err))
		return nil, err
	}
	defer cryptoDomain.Zero(plaintext)

	var doc documentDomain.Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return nil, fmt.Errorf("%w: document is not valid JSON: %v", cryptoDomain.ErrInvalidData, err)
	}
	doc.Normalize()

	i.logger.Debug("document imported", slog.String("mode", string(mode)))
	return &doc, nil
}

func (i *Importer) openSingle(raw []byte, creds exportDomain.Credentials) ([]byte, error) {
	if creds.Passphrase == "" {
		if len(creds.Answers) > 0 {
			return nil, exportDomain.ErrPassphraseRequired
		}
		return nil, exportDomain.ErrMissingCredentials
	}

	payload, err := cryptoDomain.DecodePayload(raw)
	if err != nil {
		return nil, err
	}
	return i.cipher.OpenWithPassphrase(payload, creds.Passphrase, cryptoDomain.ProfilePBKDF2)
}

func (i *Importer) openDualKey(raw []byte, creds exportDomain.Credentials) ([]byte, error) {
	body, err := cryptoDomain.DecodeDualKeyPayload(raw)
	if err != nil {
		return nil, err
	}

	var wrapped *cryptoDomain.EncryptedPayload
	var passphrase string
	switch {
	case creds.Passphrase != "":
		if !body.HasPassphraseKey() {
			return nil, exportDomain.ErrNoFallbackPassphrase
		}
		wrapped, passphrase = body.PassphraseKey, creds.Passphrase
	case len(creds.Answers) > 0:
		wrapped, passphrase = body.QuestionKey, documentDomain.PassphraseFromAnswers(creds.Answers)
	default:
		return nil, exportDomain.ErrMissingCredentials
	}

	documentKey, err := i.cipher.UnwrapKey(wrapped, passphrase, cryptoDomain.ProfilePBKDF2)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(documentKey)

	return i.cipher.OpenWithKey(&cryptoDomain.EncryptedPayload{
		Nonce:      body.Document.Nonce,
		Ciphertext: body.Document.Ciphertext,
	}, documentKey)
}

// Inspect reports how an exported file can be unlocked without opening it.
func (i *Importer) Inspect(html string) (*exportDomain.FileInfo, error) {
	if len(html) > exportDomain.MaxImportSize {
		return nil, exportDomain.ErrImportTooLarge
	}

	raw, err := ExtractJSON(html, exportDomain.DataMarker)
	if err != nil {
		return nil, err
	}
	mode, err := cryptoDomain.DetectMode([]byte(raw))
	if err != nil {
		return nil, err
	}

	info := &exportDomain.FileInfo{Mode: mode}
	if mode != cryptoDomain.ModeDualKey {
		return info, nil
	}

	body, err := cryptoDomain.DecodeDualKeyPayload([]byte(raw))
	if err != nil {
		return nil, err
	}
	info.HasPassphrase = body.HasPassphraseKey()

	info.Slides, err = i.Questions(html)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Questions returns the public slides embedded in a dual-key export, in display order.
func (i *Importer) Questions(html string) ([]documentDomain.PublicSlide, error) {
	raw, err := ExtractJSON(html, exportDomain.SlidesMarker)
	if err != nil {
		return nil, err
	}
	var slides []documentDomain.PublicSlide
	if err := json.Unmarshal([]byte(raw), &slides); err != nil {
		return nil, fmt.Errorf("%w: slides are not valid JSON: %v", cryptoDomain.ErrInvalidData, err)
	}
	return slides, nil
}
