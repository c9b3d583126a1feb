package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MinQuestions and MaxQuestions bound the question slides of a dual-key export.
	MinQuestions = 2
	MaxQuestions = 5
)

// SlideKind distinguishes message slides from question slides.
type SlideKind string

const (
	SlideMessage  SlideKind = "message"
	SlideQuestion SlideKind = "question"
)

// TransitionType controls how a slide advances.
type TransitionType string

const (
	TransitionClick TransitionType = "click"
	TransitionAuto  TransitionType = "auto"
)

// Transition is serialized as {"type":"click"} or {"type":"auto","seconds":N}.
type Transition struct {
	Type    TransitionType
	Seconds uint32
}

func (t Transition) MarshalJSON() ([]byte, error) {
	if t.Type == TransitionAuto {
		return json.Marshal(struct {
			Type    TransitionType `json:"type"`
			Seconds uint32         `json:"seconds"`
		}{TransitionAuto, t.Seconds})
	}
	return []byte(`{"type":"click"}`), nil
}

func (t *Transition) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type    TransitionType `json:"type"`
		Seconds uint32         `json:"seconds"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case TransitionAuto:
		*t = Transition{Type: TransitionAuto, Seconds: wire.Seconds}
	case TransitionClick, "":
		*t = Transition{Type: TransitionClick}
	default:
		return fmt.Errorf("unknown slide transition %q", wire.Type)
	}
	return nil
}

// QuestionSlide is one slide of the welcome sequence. Answer is only present in the editor.
type QuestionSlide struct {
	ID         string     `json:"id"`
	Kind       SlideKind  `json:"type"`
	Text       string     `json:"text"`
	Answer     *string    `json:"answer,omitempty"`
	Transition Transition `json:"transition"`
}

// NewMessageSlide creates a message slide with a fresh ID.
func NewMessageSlide(text string) QuestionSlide {
	return QuestionSlide{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Kind:       SlideMessage,
		Text:       text,
		Transition: Transition{Type: TransitionClick},
	}
}

// NewQuestionSlide creates a question slide with a fresh ID.
func NewQuestionSlide(text, answer string) QuestionSlide {
	return QuestionSlide{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Kind:       SlideQuestion,
		Text:       text,
		Answer:     &answer,
		Transition: Transition{Type: TransitionClick},
	}
}

// PublicSlide is the slide form embedded in exported HTML. It has no answer field.
type PublicSlide struct {
	ID         string     `json:"id"`
	Kind       SlideKind  `json:"type"`
	Text       string     `json:"text"`
	Transition Transition `json:"transition"`
}

// WelcomeScreen is the slide sequence shown before unlock.
type WelcomeScreen struct {
	Enabled            bool            `json:"enabled"`
	Slides             []QuestionSlide `json:"slides"`
	FallbackPassphrase *string         `json:"fallback_passphrase,omitempty"`
}

// Fallback returns the fallback passphrase or "".
func (w *WelcomeScreen) Fallback() string {
	if w == nil || w.FallbackPassphrase == nil {
		return ""
	}
	return *w.FallbackPassphrase
}

// QuestionSlides returns the question slides of slides in order.
func QuestionSlides(slides []QuestionSlide) []QuestionSlide {
	var out []QuestionSlide
	for _, s := range slides {
		if s.Kind == SlideQuestion {
			out = append(out, s)
		}
	}
	return out
}

// MessageSlides returns the message slides of slides in order.
func MessageSlides(slides []QuestionSlide) []QuestionSlide {
	var out []QuestionSlide
	for _, s := range slides {
		if s.Kind == SlideMessage {
			out = append(out, s)
		}
	}
	return out
}

// StripAnswers converts slides to their public form.
func StripAnswers(slides []QuestionSlide) []PublicSlide {
	out := make([]PublicSlide, 0, len(slides))
	for _, s := range slides {
		out = append(out, PublicSlide{ID: s.ID, Kind: s.Kind, Text: s.Text, Transition: s.Transition})
	}
	return out
}

// ValidateQuestions checks that slides carry between MinQuestions and MaxQuestions question
// slides and that every question has a non-blank answer.
func ValidateQuestions(slides []QuestionSlide) error {
	questions := QuestionSlides(slides)
	if len(questions) < MinQuestions {
		return ErrTooFewQuestions
	}
	if len(questions) > MaxQuestions {
		return ErrTooManyQuestions
	}
	for _, q := range questions {
		if q.Answer == nil || NormalizeAnswer(*q.Answer) == "" {
			return ErrMissingAnswer
		}
	}
	return nil
}

// NormalizeAnswer trims surrounding whitespace and lowercases an answer. The result must match
// answer.trim().toLowerCase() in the exported page: trimming uses the ECMAScript white space and
// line terminator set, and lowercasing applies the full Unicode mapping with final sigma.
func NormalizeAnswer(answer string) string {
	trimmed := strings.TrimFunc(answer, isECMAScriptSpace)
	// A Caser keeps state between calls and cannot be shared across goroutines.
	return cases.Lower(language.Und).String(trimmed)
}

// isECMAScriptSpace reports whether r is WhiteSpace or LineTerminator in ECMAScript. Unlike
// unicode.IsSpace it excludes U+0085 and includes U+FEFF.
func isECMAScriptSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', ' ', '\u00A0', '\uFEFF', '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// PassphraseFromAnswers normalizes each answer and concatenates them in order with no separator.
func PassphraseFromAnswers(answers []string) string {
	var b strings.Builder
	for _, a := range answers {
		b.WriteString(NormalizeAnswer(a))
	}
	return b.String()
}

// SlideAnswers returns the answers of the question slides in order.
func SlideAnswers(slides []QuestionSlide) []string {
	questions := QuestionSlides(slides)
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		if q.Answer != nil {
			answers = append(answers, *q.Answer)
		} else {
			answers = append(answers, "")
		}
	}
	return answers
}
