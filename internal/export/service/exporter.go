// Package service builds and opens the self-contained encrypted HTML artifacts: the exporter seals
// a document and renders the decryptor page, the importer extracts and opens an embedded payload.
package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// Exporter seals documents into exported artifacts.
type Exporter struct {
	cipher   cryptoService.PayloadCipher
	renderer *Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewExporter creates an Exporter.
func NewExporter(cipher cryptoService.PayloadCipher, renderer *Renderer, logger *slog.Logger) *Exporter {
	return &Exporter{
		cipher:   cipher,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportSingle seals doc under a PBKDF2 key derived from opts.Passphrase.
func (e *Exporter) ExportSingle(
	ctx context.Context,
	doc *documentDomain.Document,
	opts exportDomain.SingleOptions,
) (*exportDomain.Artifact, error) {
	if err := checkPassphrase(opts.Passphrase); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plaintext, err := serialize(doc)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(plaintext)

	payload, err := e.cipher.SealWithPassphrase(plaintext, opts.Passphrase, cryptoDomain.ProfilePBKDF2)
	if err != nil {
		return nil, err
	}
	payloadJSON, err := cryptoDomain.EncodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}

	var welcome []documentDomain.PublicSlide
	if opts.IncludeWelcome && doc.WelcomeScreen != nil && doc.WelcomeScreen.Enabled {
		welcome = documentDomain.StripAnswers(documentDomain.MessageSlides(doc.WelcomeScreen.Slides))
	}

	html, err := e.renderer.RenderSingle(doc.Meta.CreatorName, payloadJSON, welcome)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("document exported",
		slog.String("mode", string(cryptoDomain.ModeSinglePassphrase)),
		slog.Int("welcome_slides", len(welcome)),
	)

	return &exportDomain.Artifact{
		HTML:     html,
		Mode:     cryptoDomain.ModeSinglePassphrase,
		FileName: exportDomain.DefaultFileName(e.now()),
	}, nil
}

// ExportDualKey seals doc under a fresh document key that is wrapped once under the key derived
// from the question answers and, when a fallback passphrase is given, once more under it.
//
// When opts.Slides is nil the document's welcome screen supplies the slides and the fallback
// passphrase. Question count and answers are validated before any key is derived.
func (e *Exporter) ExportDualKey(
	ctx context.Context,
	doc *documentDomain.Document,
	opts exportDomain.DualKeyOptions,
) (*exportDomain.Artifact, error) {
	slides := opts.Slides
	fallback := opts.FallbackPassphrase
	if slides == nil {
		ws := doc.WelcomeScreen
		if ws == nil || !ws.Enabled {
			return nil, documentDomain.ErrWelcomeScreenDisabled
		}
		slides = ws.Slides
		if fallback == "" {
			fallback = ws.Fallback()
		}
	}

	if err := documentDomain.ValidateQuestions(slides); err != nil {
		return nil, err
	}
	if len(fallback) > exportDomain.MaxPassphraseLength {
		return nil, exportDomain.ErrPassphraseTooLong
	}

	plaintext, err := serialize(doc)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(plaintext)

	documentKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(documentKey); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryption, err)
	}
	defer cryptoDomain.Zero(documentKey)

	sealed, err := e.cipher.SealWithKey(plaintext, documentKey)
	if err != nil {
		return nil, err
	}

	questionPassphrase := documentDomain.PassphraseFromAnswers(documentDomain.SlideAnswers(slides))
	body := &cryptoDomain.DualKeyPayload{
		Document: cryptoDomain.DocumentPayload{Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wrapped, err := e.cipher.WrapKey(documentKey, questionPassphrase, cryptoDomain.ProfilePBKDF2)
		if err != nil {
			return err
		}
		body.QuestionKey = wrapped
		return gctx.Err()
	})
	if fallback != "" {
		g.Go(func() error {
			wrapped, err := e.cipher.WrapKey(documentKey, fallback, cryptoDomain.ProfilePBKDF2)
			if err != nil {
				return err
			}
			body.PassphraseKey = wrapped
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	payloadJSON, err := cryptoDomain.EncodeDualKeyPayload(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}

	exported := slides
	if !opts.IncludeWelcome {
		exported = documentDomain.QuestionSlides(slides)
	}
	public := documentDomain.StripAnswers(exported)

	html, err := e.renderer.RenderQuestions(doc.Meta.CreatorName, payloadJSON, public, body.HasPassphraseKey())
	if err != nil {
		return nil, err
	}

	e.logger.Debug("document exported",
		slog.String("mode", string(cryptoDomain.ModeDualKey)),
		slog.Int("slides", len(public)),
		slog.Bool("fallback_passphrase", body.HasPassphraseKey()),
	)

	return &exportDomain.Artifact{
		HTML:     html,
		Mode:     cryptoDomain.ModeDualKey,
		FileName: exportDomain.DefaultFileName(e.now()),
	}, nil
}

func checkPassphrase(passphrase string) error {
	if passphrase == "" {
		return exportDomain.ErrEmptyPassphrase
	}
	if len(passphrase) > exportDomain.MaxPassphraseLength {
		return exportDomain.ErrPassphraseTooLong
	}
	return nil
}

func serialize(doc *documentDomain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", exportDomain.ErrSerialization)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	return b, nil
}
