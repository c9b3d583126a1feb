package service

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type singleView struct {
	CreatorName   string
	EncryptedData template.JS
	WelcomeSlides template.JS
}

type questionsView struct {
	CreatorName   string
	EncryptedData template.JS
	Slides        template.JS
	HasPassphrase bool
}

// RecoveryCardView is the data printed on a recovery card.
type RecoveryCardView struct {
	CreatorName string
	FileName    string
	Passphrase  string
	QRCode      template.URL
	Questions   []string
	CreatedAt   string
}

// Renderer turns payloads and documents into HTML using the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("export").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse export templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderSingle embeds a flat payload and the public welcome slides into the single-passphrase
// decryptor page.
func (r *Renderer) RenderSingle(
	creatorName string,
	payloadJSON []byte,
	welcome []documentDomain.PublicSlide,
) ([]byte, error) {
	slidesJSON, err := marshalSlides(welcome)
	if err != nil {
		return nil, err
	}
	return r.execute("single", singleView{
		CreatorName:   creatorName,
		EncryptedData: template.JS(payloadJSON),
		WelcomeSlides: template.JS(slidesJSON),
	})
}

// RenderQuestions embeds a dual-key payload and the public slides into the question-unlock page.
func (r *Renderer) RenderQuestions(
	creatorName string,
	payloadJSON []byte,
	slides []documentDomain.PublicSlide,
	hasPassphrase bool,
) ([]byte, error) {
	slidesJSON, err := marshalSlides(slides)
	if err != nil {
		return nil, err
	}
	return r.execute("questions", questionsView{
		CreatorName:   creatorName,
		EncryptedData: template.JS(payloadJSON),
		Slides:        template.JS(slidesJSON),
		HasPassphrase: hasPassphrase,
	})
}

// RenderPrint renders an unencrypted printable page.
func (r *Renderer) RenderPrint(view *PrintView) ([]byte, error) {
	return r.execute("print", view)
}

// RenderRecoveryCard renders a printable recovery card.
func (r *Renderer) RenderRecoveryCard(view *RecoveryCardView) ([]byte, error) {
	return r.execute("recovery_card", view)
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// marshalSlides always yields a JSON array so the page can iterate without null checks.
func marshalSlides(slides []documentDomain.PublicSlide) ([]byte, error) {
	if slides == nil {
		slides = []documentDomain.PublicSlide{}
	}
	b, err := json.Marshal(slides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exportDomain.ErrSerialization, err)
	}
	return b, nil
}
