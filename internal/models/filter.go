package models

import "strings"

// FilterCriteria is a snapshot of the reviewer's search constraints.
// An empty string means the dimension is unset.
type FilterCriteria struct {
	PhysicianID string `json:"physician_id,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Sentiment   string `json:"sentiment,omitempty"`
	MessageText string `json:"message_text,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	State       string `json:"state,omitempty"`
}

// QueryTerm is one key=value pair of the /messages query string.
type QueryTerm struct {
	Key   string
	Value string
	// FreeText terms are percent-encoded on the wire.
	FreeText bool
}

// Terms lists the set dimensions in declaration order.
func (f FilterCriteria) Terms() []QueryTerm {
	all := []QueryTerm{
		{Key: "physician_id", Value: f.PhysicianID, FreeText: true},
		{Key: "start_date", Value: f.StartDate},
		{Key: "end_date", Value: f.EndDate},
		{Key: "topic", Value: f.Topic},
		{Key: "sentiment", Value: f.Sentiment},
		{Key: "message_text", Value: f.MessageText, FreeText: true},
		{Key: "specialty", Value: f.Specialty},
		{Key: "state", Value: f.State},
	}
	terms := all[:0]
	for _, term := range all {
		if term.Value != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// QueryString renders the criteria as the /messages query, without the leading '?'.
// Enumeration and date values are emitted verbatim.
func (f FilterCriteria) QueryString() string {
	terms := f.Terms()
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		value := term.Value
		if term.FreeText {
			value = EncodeComponent(value)
		}
		parts = append(parts, term.Key+"="+value)
	}
	return strings.Join(parts, "&")
}

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// ASCII letters, digits and -_.!~*'() pass through, everything else is %XX over UTF-8 bytes.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
