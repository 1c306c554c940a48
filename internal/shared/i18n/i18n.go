// Package i18n renders operator-facing audit comment text. It only
// formats strings; no state logic depends on it.
package i18n

import "fmt"

// Localizer translates a message template with arguments.
type Localizer interface {
	Translate(template string, args ...any) string
}

// Translator is a table-backed Localizer. Unknown templates pass through
// unchanged so new messages degrade to English rather than erroring.
type Translator struct {
	messages map[string]string
}

// NewTranslator creates a Translator with the given message overrides.
func NewTranslator(messages map[string]string) *Translator {
	return &Translator{messages: messages}
}

// Translate renders the template with args, using an override when one
// is registered for the template.
func (t *Translator) Translate(template string, args ...any) string {
	if t != nil && t.messages != nil {
		if m, ok := t.messages[template]; ok {
			template = m
		}
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
