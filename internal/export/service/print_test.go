package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

var printTime = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

func TestBuildPrintView(t *testing.T) {
	t.Run("EmptyDocument", func(t *testing.T) {
		view := BuildPrintView(documentDomain.NewDocument(printTime), printTime)
		assert.Empty(t, view.Sections)
		assert.Equal(t, "March 9, 2024", view.GeneratedAt)
	})

	t.Run("SectionsInOrderWithoutEmptyValues", func(t *testing.T) {
		doc := testDocument()
		doc.Bills.Bills = append(doc.Bills.Bills, documentDomain.Bill{Name: "Power", Autopay: true})
		doc.Legal.Notes = "Ask the attorney first."

		view := BuildPrintView(doc, printTime)
		require.Len(t, view.Sections, 4)
		assert.Equal(t, "Financial", view.Sections[0].Title)
		assert.Equal(t, "Bills", view.Sections[1].Title)
		assert.Equal(t, "Legal", view.Sections[2].Title)
		assert.Equal(t, "Personal", view.Sections[3].Title)
		assert.Empty(t, view.Sections[2].Groups)
		assert.Equal(t, "Ask the attorney first.", view.Sections[2].Notes)

		bank := view.Sections[0].Groups[0]
		assert.Equal(t, "Bank Accounts", bank.Title)
		require.Len(t, bank.Items, 1)
		assert.Equal(t, "Checking", bank.Items[0].Title)
		assert.Equal(t, []PrintDetail{
			{Label: "Institution", Value: "First Bank"},
			{Label: "Last four", Value: "1234"},
		}, bank.Items[0].Details)

		bill := view.Sections[1].Groups[0].Items[0]
		assert.Equal(t, []PrintDetail{{Label: "Autopay", Value: "Yes"}}, bill.Details)
	})

	t.Run("CustomSections", func(t *testing.T) {
		parent := "financial"
		subsection := documentDomain.CustomSubsection{
			ID:   "sub-1",
			Name: "Safe Deposit Boxes",
			FieldDefinitions: []documentDomain.FieldDefinition{
				{ID: "f-bank", Name: "Bank", FieldType: documentDomain.FieldTypeText},
				{ID: "f-key", Name: "Has key", FieldType: documentDomain.FieldTypeBoolean},
				{ID: "f-spare", Name: "Spare key", FieldType: documentDomain.FieldTypeBoolean},
			},
			Items: []documentDomain.CustomItem{
				{ID: "i-1", Values: map[string]string{"f-bank": "First Bank", "f-key": "true", "f-spare": "false"}},
			},
		}

		doc := documentDomain.NewDocument(printTime)
		doc.CustomSections = []documentDomain.CustomSection{
			{ID: "c-1", Name: "Boxes", Parent: &parent, Subsections: []documentDomain.CustomSubsection{subsection}},
			{ID: "c-2", Name: "Garden", Subsections: []documentDomain.CustomSubsection{{
				ID:               "sub-2",
				Name:             "Plants",
				FieldDefinitions: []documentDomain.FieldDefinition{{ID: "f-name", Name: "Name"}},
				Items:            []documentDomain.CustomItem{{ID: "i-2", Values: map[string]string{"f-name": "Roses"}}},
			}}},
		}

		view := BuildPrintView(doc, printTime)
		require.Len(t, view.Sections, 2)

		assert.Equal(t, "Financial", view.Sections[0].Title)
		boxes := view.Sections[0].Groups[0]
		assert.Equal(t, "Safe Deposit Boxes", boxes.Title)
		assert.Equal(t, []PrintDetail{
			{Label: "Bank", Value: "First Bank"},
			{Label: "Has key", Value: "Yes"},
		}, boxes.Items[0].Details)

		assert.Equal(t, "Garden", view.Sections[1].Title)
		assert.Equal(t, "Roses", view.Sections[1].Groups[0].Items[0].Details[0].Value)
	})
}

func TestPrinter(t *testing.T) {
	printer := NewPrinter(newTestRenderer(t))
	printer.now = func() time.Time { return printTime }

	t.Run("Print", func(t *testing.T) {
		doc := testDocument()
		doc.Meta.CreatorName = "<b>Pat</b>"

		html, err := printer.Print(doc)
		require.NoError(t, err)

		out := string(html)
		assert.Contains(t, out, "First Bank")
		assert.Contains(t, out, "Grüße, 你好 🐝")
		assert.Contains(t, out, "&lt;b&gt;Pat&lt;/b&gt;")
		assert.Contains(t, out, "not encrypted")
		assert.NotContains(t, out, exportDomain.DataMarker)
	})

	t.Run("Print_NilDocument", func(t *testing.T) {
		_, err := printer.Print(nil)
		assert.ErrorIs(t, err, exportDomain.ErrSerialization)
	})

	t.Run("RecoveryCard", func(t *testing.T) {
		doc := withWelcome(testDocument(), testFallback)

		html, err := printer.RecoveryCard(doc, testFallback, "honey-did-2024-03-09.html")
		require.NoError(t, err)

		out := string(html)
		assert.Contains(t, out, testFallback)
		assert.Contains(t, out, `src="data:image/png;base64,`)
		assert.Contains(t, out, "honey-did-2024-03-09.html")
		assert.Contains(t, out, "What was our first pet called?")
		assert.NotContains(t, out, testAnswerTwo)
		assert.NotContains(t, out, "Hello my love")
	})

	t.Run("RecoveryCard_EmptyPassphrase", func(t *testing.T) {
		_, err := printer.RecoveryCard(testDocument(), "", "")
		assert.ErrorIs(t, err, exportDomain.ErrEmptyPassphrase)
	})
}

func TestGeneratePassphrase(t *testing.T) {
	known := make(map[string]bool, len(wordList))
	for _, w := range wordList {
		known[w] = true
	}
	require.Len(t, known, 256)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		passphrase, err := GeneratePassphrase()
		require.NoError(t, err)

		words := strings.Split(passphrase, "-")
		require.Len(t, words, PassphraseWords)

		distinct := make(map[string]bool, len(words))
		for _, w := range words {
			assert.True(t, known[w], "unknown word %q", w)
			distinct[w] = true
		}
		assert.Len(t, distinct, PassphraseWords)
		seen[passphrase] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGeneratePassphrase_LeavesWordListIntact(t *testing.T) {
	before := wordList

	for i := 0; i < 5; i++ {
		_, err := GeneratePassphrase()
		require.NoError(t, err)
	}

	assert.Equal(t, before, wordList)
}
