package service

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"github.com/skip2/go-qrcode"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

// qrCodeSize is the rendered QR code edge in pixels.
const qrCodeSize = 256

// Printer renders the unencrypted outputs: the printable document and the recovery card.
type Printer struct {
	renderer *Renderer
	now      func() time.Time
}

// NewPrinter creates a Printer.
func NewPrinter(renderer *Renderer) *Printer {
	return &Printer{renderer: renderer, now: time.Now}
}

// Print renders doc as a printable, unencrypted HTML page.
func (p *Printer) Print(doc *documentDomain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", exportDomain.ErrSerialization)
	}
	return p.renderer.RenderPrint(BuildPrintView(doc, p.now()))
}

// RecoveryCard renders a card carrying passphrase as text and as a QR code. When the document has
// question slides their texts are listed too, never their answers.
func (p *Printer) RecoveryCard(doc *documentDomain.Document, passphrase, fileName string) ([]byte, error) {
	if err := checkPassphrase(passphrase); err != nil {
		return nil, err
	}

	qr, err := qrDataURI(passphrase)
	if err != nil {
		return nil, err
	}

	view := &RecoveryCardView{
		FileName:   fileName,
		Passphrase: passphrase,
		QRCode:     qr,
		CreatedAt:  p.now().Format("January 2, 2006"),
	}
	if doc != nil {
		view.CreatorName = doc.Meta.CreatorName
		if ws := doc.WelcomeScreen; ws != nil && ws.Enabled {
			for _, q := range documentDomain.QuestionSlides(ws.Slides) {
				view.Questions = append(view.Questions, q.Text)
			}
		}
	}
	return p.renderer.RenderRecoveryCard(view)
}

func qrDataURI(content string) (template.URL, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrCodeSize)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate QR code: %v", exportDomain.ErrSerialization, err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
