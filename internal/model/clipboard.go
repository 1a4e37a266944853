package model

// ClipboardRepresentation is one typed rendering of a clipboard payload,
// e.g. plain text alongside a richer structured form.
type ClipboardRepresentation struct {
	Type string `json:"type" yaml:"type"`
	Data string `json:"data" yaml:"data"`
}

// TypePlainText is the representation type every text payload carries.
const TypePlainText = "text/plain"

// ClipboardPayload is the full clipboard content: every representation the
// clipboard service could read, so a later restore loses nothing.
type ClipboardPayload struct {
	Representations []ClipboardRepresentation `json:"representations" yaml:"representations"`
}

// TextPayload wraps a plain string as a single-representation payload.
func TextPayload(s string) ClipboardPayload {
	return ClipboardPayload{
		Representations: []ClipboardRepresentation{{Type: TypePlainText, Data: s}},
	}
}

// Text returns the plain-text representation, or "" if none exists.
func (p ClipboardPayload) Text() string {
	for _, r := range p.Representations {
		if r.Type == TypePlainText {
			return r.Data
		}
	}
	return ""
}

// Empty reports whether the payload has no representations at all.
func (p ClipboardPayload) Empty() bool {
	return len(p.Representations) == 0
}
