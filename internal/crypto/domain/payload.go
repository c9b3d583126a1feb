package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncryptedPayload is the transportable form of one sealed message: the KDF salt (empty when the
// key was not derived from a passphrase), the 12-byte nonce and the ciphertext with its appended
// 16-byte authentication tag.
//
// On the wire every field is standard base64 text:
//
//	{"salt": "...", "nonce": "...", "ciphertext": "..."}
//
// A payload sealed under a raw key has no salt field at all. Older exports wrote "salt": "" for
// the same case; both forms decode to an empty Salt.
type EncryptedPayload struct {
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// DocumentPayload is the dual-key document body, sealed directly under the document key.
type DocumentPayload struct {
	Nonce      []byte
	Ciphertext []byte
}

// DualKeyPayload is the artifact body of a dual-key export. The document key is wrapped once under
// the question-derived key and, optionally, once more under the fallback passphrase.
type DualKeyPayload struct {
	QuestionKey   *EncryptedPayload
	PassphraseKey *EncryptedPayload
	Document      DocumentPayload
}

// HasPassphraseKey reports whether the artifact can be opened with a fallback passphrase.
func (d *DualKeyPayload) HasPassphraseKey() bool {
	return d.PassphraseKey != nil
}

// PayloadMode tells which export mode produced an embedded payload.
type PayloadMode string

const (
	// ModeSinglePassphrase is a flat EncryptedPayload.
	ModeSinglePassphrase PayloadMode = "passphrase"
	// ModeDualKey is a DualKeyPayload.
	ModeDualKey PayloadMode = "questions"
)

type payloadWire struct {
	Salt       *string `json:"salt,omitempty"`
	Nonce      *string `json:"nonce"`
	Ciphertext *string `json:"ciphertext"`
}

type dualKeyWire struct {
	QuestionKey   *EncryptedPayload `json:"question_key"`
	PassphraseKey *EncryptedPayload `json:"passphrase_key,omitempty"`
	Document      *DocumentPayload  `json:"document"`
}

// MarshalJSON encodes the payload as base64 text fields.
func (p EncryptedPayload) MarshalJSON() ([]byte, error) {
	w := payloadWire{
		Nonce:      encodeField(p.Nonce),
		Ciphertext: encodeField(p.Ciphertext),
	}
	if len(p.Salt) > 0 {
		w.Salt = encodeField(p.Salt)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes and validates the payload. Any problem is reported as ErrInvalidData.
func (p *EncryptedPayload) UnmarshalJSON(data []byte) error {
	var w payloadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	nonce, ciphertext, err := decodeSealed(w.Nonce, w.Ciphertext)
	if err != nil {
		return err
	}

	var salt []byte
	if w.Salt != nil && *w.Salt != "" {
		salt, err = decodeField("salt", *w.Salt)
		if err != nil {
			return err
		}
		if len(salt) != SaltSize {
			return fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidData, SaltSize, len(salt))
		}
	}

	p.Salt = salt
	p.Nonce = nonce
	p.Ciphertext = ciphertext
	return nil
}

// MarshalJSON encodes the document payload as base64 text fields.
func (p DocumentPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadWire{
		Nonce:      encodeField(p.Nonce),
		Ciphertext: encodeField(p.Ciphertext),
	})
}

// UnmarshalJSON decodes and validates the document payload.
func (p *DocumentPayload) UnmarshalJSON(data []byte) error {
	var w payloadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	nonce, ciphertext, err := decodeSealed(w.Nonce, w.Ciphertext)
	if err != nil {
		return err
	}

	p.Nonce = nonce
	p.Ciphertext = ciphertext
	return nil
}

// MarshalJSON encodes the dual-key artifact body.
func (d DualKeyPayload) MarshalJSON() ([]byte, error) {
	doc := d.Document
	return json.Marshal(dualKeyWire{
		QuestionKey:   d.QuestionKey,
		PassphraseKey: d.PassphraseKey,
		Document:      &doc,
	})
}

// UnmarshalJSON decodes and validates the dual-key artifact body.
func (d *DualKeyPayload) UnmarshalJSON(data []byte) error {
	var w dualKeyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return wrapInvalid(err)
	}
	if w.QuestionKey == nil {
		return fmt.Errorf("%w: missing question_key", ErrInvalidData)
	}
	if w.Document == nil {
		return fmt.Errorf("%w: missing document", ErrInvalidData)
	}
	if len(w.QuestionKey.Salt) == 0 {
		return fmt.Errorf("%w: question_key has no salt", ErrInvalidData)
	}
	if w.PassphraseKey != nil && len(w.PassphraseKey.Salt) == 0 {
		return fmt.Errorf("%w: passphrase_key has no salt", ErrInvalidData)
	}

	d.QuestionKey = w.QuestionKey
	d.PassphraseKey = w.PassphraseKey
	d.Document = *w.Document
	return nil
}

// EncodePayload serializes a flat payload.
func EncodePayload(p *EncryptedPayload) ([]byte, error) {
	return json.Marshal(p)
}

// DecodePayload parses a flat payload.
func DecodePayload(data []byte) (*EncryptedPayload, error) {
	var p EncryptedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, wrapInvalid(err)
	}
	if len(p.Nonce) != NonceSize {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidData)
	}
	return &p, nil
}

// EncodeDualKeyPayload serializes a dual-key artifact body.
func EncodeDualKeyPayload(d *DualKeyPayload) ([]byte, error) {
	return json.Marshal(d)
}

// DecodeDualKeyPayload parses a dual-key artifact body.
func DecodeDualKeyPayload(data []byte) (*DualKeyPayload, error) {
	var d DualKeyPayload
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, wrapInvalid(err)
	}
	if d.QuestionKey == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidData)
	}
	return &d, nil
}

// DetectMode inspects an embedded payload and reports which export mode produced it.
// A "question_key" member means dual-key; anything else that is a JSON object is a flat payload.
func DetectMode(data []byte) (PayloadMode, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if _, ok := fields["question_key"]; ok {
		return ModeDualKey, nil
	}
	return ModeSinglePassphrase, nil
}

func encodeField(b []byte) *string {
	s := base64.StdEncoding.EncodeToString(b)
	return &s
}

func decodeField(name, value string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64: %v", ErrInvalidData, name, err)
	}
	return b, nil
}

func decodeSealed(nonceField, ciphertextField *string) (nonce, ciphertext []byte, err error) {
	if nonceField == nil || *nonceField == "" {
		return nil, nil, fmt.Errorf("%w: missing nonce", ErrInvalidData)
	}
	if ciphertextField == nil || *ciphertextField == "" {
		return nil, nil, fmt.Errorf("%w: missing ciphertext", ErrInvalidData)
	}

	nonce, err = decodeField("nonce", *nonceField)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != NonceSize {
		return nil, nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrInvalidData, NonceSize, len(nonce))
	}

	ciphertext, err = decodeField("ciphertext", *ciphertextField)
	if err != nil {
		return nil, nil, err
	}
	if len(ciphertext) < TagSize {
		return nil, nil, fmt.Errorf("%w: ciphertext shorter than authentication tag", ErrInvalidData)
	}

	return nonce, ciphertext, nil
}

// wrapInvalid keeps ErrInvalidData errors produced by nested decoders as they are and tags any
// other decoding error with it.
func wrapInvalid(err error) error {
	if IsDecryptionFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidData, err)
}
