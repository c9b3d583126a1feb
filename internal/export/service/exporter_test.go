package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/honeydid/honeydid/internal/crypto/domain"
	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

const (
	testPassphrase = "correct-horse-battery-staple"
	testFallback   = "open sesame please"
	// Answers contain spaces so they can never show up inside base64 ciphertext by accident.
	testAnswerOne = "the paris cafe"
	testAnswerTwo = "rex the dog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	return renderer
}

func newTestExporter(t *testing.T) (*Exporter, *Importer) {
	t.Helper()
	cipher := cryptoService.NewPayloadCipher(cryptoService.NewKeyDeriver())
	exporter := NewExporter(cipher, newTestRenderer(t), discardLogger())
	exporter.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return exporter, NewImporter(cipher, discardLogger())
}

func testDocument() *documentDomain.Document {
	doc := documentDomain.NewDocument(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	doc.Meta.CreatorName = "Pat"
	doc.Financial.BankAccounts = append(doc.Financial.BankAccounts, documentDomain.BankAccount{
		Name:        "Checking",
		Institution: "First Bank",
		LastFour:    "1234",
	})
	doc.Personal.Messages = append(doc.Personal.Messages, documentDomain.PersonalMessage{
		Recipient: "Sam",
		Message:   "Grüße, 你好 🐝",
	})
	return doc
}

func testSlides() []documentDomain.QuestionSlide {
	return []documentDomain.QuestionSlide{
		documentDomain.NewMessageSlide("Hello my love"),
		documentDomain.NewQuestionSlide("Where did we meet?", testAnswerOne),
		documentDomain.NewQuestionSlide("What was our first pet called?", testAnswerTwo),
	}
}

func withWelcome(doc *documentDomain.Document, fallback string) *documentDomain.Document {
	ws := &documentDomain.WelcomeScreen{Enabled: true, Slides: testSlides()}
	if fallback != "" {
		ws.FallbackPassphrase = &fallback
	}
	doc.WelcomeScreen = ws
	return doc
}

// unusedCipher panics on any call, proving validation happens before cryptography.
type unusedCipher struct {
	cryptoService.PayloadCipher
}

func TestExporter_ExportSingle(t *testing.T) {
	ctx := context.Background()
	exporter, importer := newTestExporter(t)

	t.Run("Success_RoundTrip", func(t *testing.T) {
		doc := testDocument()

		artifact, err := exporter.ExportSingle(ctx, doc, exportDomain.SingleOptions{Passphrase: testPassphrase})
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ModeSinglePassphrase, artifact.Mode)
		assert.Equal(t, "honey-did-2024-03-09.html", artifact.FileName)

		html := string(artifact.HTML)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, exportDomain.DataMarker+"{")
		assert.Contains(t, html, "const WELCOME_SLIDES = [];")
		assert.NotContains(t, html, "First Bank")

		imported, err := importer.Import(ctx, html, exportDomain.Credentials{Passphrase: testPassphrase})
		require.NoError(t, err)
		assert.Equal(t, doc, imported)
	})

	t.Run("Error_WrongPassphrase", func(t *testing.T) {
		artifact, err := exporter.ExportSingle(ctx, testDocument(), exportDomain.SingleOptions{Passphrase: testPassphrase})
		require.NoError(t, err)

		_, err = importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{Passphrase: "wrong-horse"})
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Equal(t, cryptoDomain.PublicDecryptionMessage, cryptoDomain.PublicMessage(err))
	})

	t.Run("Success_WelcomeSlidesWithoutQuestions", func(t *testing.T) {
		doc := withWelcome(testDocument(), "")

		artifact, err := exporter.ExportSingle(ctx, doc, exportDomain.SingleOptions{
			Passphrase:     testPassphrase,
			IncludeWelcome: true,
		})
		require.NoError(t, err)

		html := string(artifact.HTML)
		assert.Contains(t, html, "Hello my love")
		assert.NotContains(t, html, "Where did we meet?")
		assert.NotContains(t, html, testAnswerOne)
	})

	t.Run("Success_EscapesSlideText", func(t *testing.T) {
		doc := testDocument()
		doc.WelcomeScreen = &documentDomain.WelcomeScreen{
			Enabled: true,
			Slides:  []documentDomain.QuestionSlide{documentDomain.NewMessageSlide("</script><script>alert(1)</script>")},
		}
		doc.Meta.CreatorName = "<b>Pat</b>"

		artifact, err := exporter.ExportSingle(ctx, doc, exportDomain.SingleOptions{
			Passphrase:     testPassphrase,
			IncludeWelcome: true,
		})
		require.NoError(t, err)

		html := string(artifact.HTML)
		assert.NotContains(t, html, "<script>alert(1)")
		assert.NotContains(t, html, "<b>Pat</b>")
		assert.Contains(t, html, "&lt;b&gt;Pat&lt;/b&gt;")
	})

	t.Run("Success_CreatorNameContainsMarker", func(t *testing.T) {
		doc := testDocument()
		doc.Meta.CreatorName = exportDomain.DataMarker + "{}"

		artifact, err := exporter.ExportSingle(ctx, doc, exportDomain.SingleOptions{Passphrase: testPassphrase})
		require.NoError(t, err)

		imported, err := importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{Passphrase: testPassphrase})
		require.NoError(t, err)
		assert.Equal(t, doc, imported)
	})

	t.Run("Error_InvalidPassphrase", func(t *testing.T) {
		_, err := exporter.ExportSingle(ctx, testDocument(), exportDomain.SingleOptions{})
		assert.ErrorIs(t, err, exportDomain.ErrEmptyPassphrase)

		_, err = exporter.ExportSingle(ctx, testDocument(), exportDomain.SingleOptions{
			Passphrase: strings.Repeat("x", exportDomain.MaxPassphraseLength+1),
		})
		assert.ErrorIs(t, err, exportDomain.ErrPassphraseTooLong)
	})

	t.Run("Error_NilDocument", func(t *testing.T) {
		_, err := exporter.ExportSingle(ctx, nil, exportDomain.SingleOptions{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, exportDomain.ErrSerialization)
	})

	t.Run("Error_CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := exporter.ExportSingle(cancelled, testDocument(), exportDomain.SingleOptions{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExporter_ExportDualKey(t *testing.T) {
	ctx := context.Background()
	exporter, importer := newTestExporter(t)

	t.Run("Success_AnswersAndFallback", func(t *testing.T) {
		doc := withWelcome(testDocument(), testFallback)

		artifact, err := exporter.ExportDualKey(ctx, doc, exportDomain.DualKeyOptions{IncludeWelcome: true})
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ModeDualKey, artifact.Mode)

		html := string(artifact.HTML)
		assert.Contains(t, html, exportDomain.SlidesMarker+"[")
		assert.NotContains(t, html, testAnswerOne)
		assert.NotContains(t, html, testAnswerTwo)
		assert.NotContains(t, html, testFallback)

		info, err := importer.Inspect(html)
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ModeDualKey, info.Mode)
		assert.True(t, info.HasPassphrase)
		require.Len(t, info.Slides, 3)
		assert.Equal(t, documentDomain.SlideMessage, info.Slides[0].Kind)
		assert.Equal(t, "Where did we meet?", info.Slides[1].Text)

		byAnswers, err := importer.Import(ctx, html, exportDomain.Credentials{
			Answers: []string{"  The Paris Cafe\n", "REX THE DOG"},
		})
		require.NoError(t, err)
		assert.Equal(t, doc, byAnswers)

		byPassphrase, err := importer.Import(ctx, html, exportDomain.Credentials{Passphrase: testFallback})
		require.NoError(t, err)
		assert.Equal(t, doc, byPassphrase)
	})

	t.Run("Error_WrongAnswers", func(t *testing.T) {
		artifact, err := exporter.ExportDualKey(ctx, withWelcome(testDocument(), ""), exportDomain.DualKeyOptions{})
		require.NoError(t, err)

		_, err = importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{
			Answers: []string{testAnswerOne, "a cat"},
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		// Order matters.
		_, err = importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{
			Answers: []string{testAnswerTwo, testAnswerOne},
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_NoFallbackPassphrase", func(t *testing.T) {
		artifact, err := exporter.ExportDualKey(ctx, withWelcome(testDocument(), ""), exportDomain.DualKeyOptions{})
		require.NoError(t, err)

		info, err := importer.Inspect(string(artifact.HTML))
		require.NoError(t, err)
		assert.False(t, info.HasPassphrase)

		_, err = importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{Passphrase: testFallback})
		assert.ErrorIs(t, err, exportDomain.ErrNoFallbackPassphrase)
	})

	t.Run("Success_QuestionSlidesOnlyWithoutWelcome", func(t *testing.T) {
		artifact, err := exporter.ExportDualKey(ctx, withWelcome(testDocument(), ""), exportDomain.DualKeyOptions{})
		require.NoError(t, err)

		slides, err := importer.Questions(string(artifact.HTML))
		require.NoError(t, err)
		require.Len(t, slides, 2)
		for _, s := range slides {
			assert.Equal(t, documentDomain.SlideQuestion, s.Kind)
		}
	})

	t.Run("Success_ExplicitSlidesOverrideDocument", func(t *testing.T) {
		slides := []documentDomain.QuestionSlide{
			documentDomain.NewQuestionSlide("Favourite colour?", "deep blue"),
			documentDomain.NewQuestionSlide("Favourite city?", "new york"),
		}

		artifact, err := exporter.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{
			Slides:             slides,
			FallbackPassphrase: testFallback,
		})
		require.NoError(t, err)

		_, err = importer.Import(ctx, string(artifact.HTML), exportDomain.Credentials{
			Answers: []string{"Deep Blue", "New York"},
		})
		require.NoError(t, err)
	})

	t.Run("Success_AnswersLowercasedLikeTheBrowser", func(t *testing.T) {
		slides := []documentDomain.QuestionSlide{
			documentDomain.NewQuestionSlide("Street?", "ΟΔΟΣ"),
			documentDomain.NewQuestionSlide("City?", "İSTANBUL"),
		}

		artifact, err := exporter.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{Slides: slides})
		require.NoError(t, err)
		html := string(artifact.HTML)

		_, err = importer.Import(ctx, html, exportDomain.Credentials{
			Answers: []string{"οδος", "i\u0307stanbul"},
		})
		require.NoError(t, err)

		_, err = importer.Import(ctx, html, exportDomain.Credentials{
			Answers: []string{"οδοσ", "istanbul"},
		})
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_QuestionCountCheckedBeforeCrypto", func(t *testing.T) {
		guarded := NewExporter(unusedCipher{}, newTestRenderer(t), discardLogger())

		one := []documentDomain.QuestionSlide{documentDomain.NewQuestionSlide("Q1", "a")}
		_, err := guarded.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{Slides: one})
		assert.ErrorIs(t, err, documentDomain.ErrTooFewQuestions)

		six := make([]documentDomain.QuestionSlide, 0, 6)
		for i := 0; i < 6; i++ {
			six = append(six, documentDomain.NewQuestionSlide("Q", "a"))
		}
		_, err = guarded.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{Slides: six})
		assert.ErrorIs(t, err, documentDomain.ErrTooManyQuestions)

		blank := []documentDomain.QuestionSlide{
			documentDomain.NewQuestionSlide("Q1", "a"),
			documentDomain.NewQuestionSlide("Q2", "   "),
		}
		_, err = guarded.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{Slides: blank})
		assert.ErrorIs(t, err, documentDomain.ErrMissingAnswer)
	})

	t.Run("Error_WelcomeScreenDisabled", func(t *testing.T) {
		_, err := exporter.ExportDualKey(ctx, testDocument(), exportDomain.DualKeyOptions{})
		assert.ErrorIs(t, err, documentDomain.ErrWelcomeScreenDisabled)

		doc := withWelcome(testDocument(), "")
		doc.WelcomeScreen.Enabled = false
		_, err = exporter.ExportDualKey(ctx, doc, exportDomain.DualKeyOptions{})
		assert.ErrorIs(t, err, documentDomain.ErrWelcomeScreenDisabled)
	})
}

func TestImporter_Errors(t *testing.T) {
	ctx := context.Background()
	exporter, importer := newTestExporter(t)

	single, err := exporter.ExportSingle(ctx, testDocument(), exportDomain.SingleOptions{Passphrase: testPassphrase})
	require.NoError(t, err)

	t.Run("MissingMarker", func(t *testing.T) {
		_, err := importer.Import(ctx, "<html></html>", exportDomain.Credentials{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, exportDomain.ErrMarkerNotFound)
		assert.Equal(t, cryptoDomain.PublicDecryptionMessage, cryptoDomain.PublicMessage(err))
	})

	t.Run("TooLarge", func(t *testing.T) {
		huge := strings.Repeat("a", exportDomain.MaxImportSize+1)
		_, err := importer.Import(ctx, huge, exportDomain.Credentials{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, exportDomain.ErrImportTooLarge)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := importer.Import(ctx, string(single.HTML), exportDomain.Credentials{})
		assert.ErrorIs(t, err, exportDomain.ErrMissingCredentials)
	})

	t.Run("AnswersForSinglePassphraseFile", func(t *testing.T) {
		_, err := importer.Import(ctx, string(single.HTML), exportDomain.Credentials{Answers: []string{"a", "b"}})
		assert.ErrorIs(t, err, exportDomain.ErrPassphraseRequired)
	})

	t.Run("QuestionsOfSinglePassphraseFile", func(t *testing.T) {
		_, err := importer.Questions(string(single.HTML))
		assert.ErrorIs(t, err, exportDomain.ErrMarkerNotFound)

		info, err := importer.Inspect(string(single.HTML))
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ModeSinglePassphrase, info.Mode)
		assert.Empty(t, info.Slides)
	})

	t.Run("CorruptedPayload", func(t *testing.T) {
		html := "<script>" + exportDomain.DataMarker + `{"salt":"AAAA","nonce":"!!","ciphertext":"x"};</script>`
		_, err := importer.Import(ctx, html, exportDomain.Credentials{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidData)
		assert.Equal(t, cryptoDomain.PublicDecryptionMessage, cryptoDomain.PublicMessage(err))
	})

	t.Run("DecryptsToNonDocument", func(t *testing.T) {
		cipher := cryptoService.NewPayloadCipher(cryptoService.NewKeyDeriver())
		payload, err := cipher.SealWithPassphrase([]byte("not json"), testPassphrase, cryptoDomain.ProfilePBKDF2)
		require.NoError(t, err)
		data, err := cryptoDomain.EncodePayload(payload)
		require.NoError(t, err)

		html := "<script>" + exportDomain.DataMarker + string(data) + ";</script>"
		_, err = importer.Import(ctx, html, exportDomain.Credentials{Passphrase: testPassphrase})
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidData)
	})
}
