// Package message provides declarative wire-message schemas: ordered field
// specifications with validation rules, and serialization of a validated
// field set into the gateway's flat XML form.
package message

import (
	"bytes"
	"encoding/xml"
)

// FieldSpec describes one message field.
type FieldSpec struct {
	// Name is the logical field name, used in validation errors.
	Name string
	// Wire is the XML element name. Often equal to Name, but not always
	// (e.g. Amount is carried as AmountInput).
	Wire string
	// Max is the maximum value length in bytes. 0 means unlimited.
	Max int
	// Required marks fields that must be non-empty.
	Required bool
}

// Check is a message-level validator run after the per-field rules.
// It returns nil or a *ValidationError.
type Check func(fields map[string]string) error

// Schema is the ordered description of one wire message.
type Schema struct {
	// Root is the name of the message's single root element.
	Root string
	// Fields lists the message fields in wire declaration order.
	Fields []FieldSpec
	// Checks are cross-field semantic validators, run in order.
	Checks []Check
}

// Validate applies the schema rules to a field set, failing fast:
// required presence in declaration order, then length limits, then the
// message-level checks.
func (s Schema) Validate(fields map[string]string) error {
	for _, f := range s.Fields {
		if f.Required && fields[f.Name] == "" {
			return &ValidationError{Field: f.Name, Reason: ReasonMissing}
		}
	}
	for _, f := range s.Fields {
		if f.Max > 0 && len(fields[f.Name]) > f.Max {
			return &ValidationError{Field: f.Name, Reason: ReasonTooLong, Limit: f.Max}
		}
	}
	for _, c := range s.Checks {
		if err := c(fields); err != nil {
			return err
		}
	}
	return nil
}

// Serialize renders the field set as a single flat element. Children appear
// in declaration order, one per non-empty field; empty fields are omitted
// because the wire format has no explicit null. Values are XML-escaped.
//
// Serialize assumes Validate has already passed; it never fails.
func (s Schema) Serialize(fields map[string]string) string {
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.WriteString(s.Root)
	buf.WriteByte('>')
	for _, f := range s.Fields {
		v := fields[f.Name]
		if v == "" {
			continue
		}
		buf.WriteByte('<')
		buf.WriteString(f.Wire)
		buf.WriteByte('>')
		_ = xml.EscapeText(&buf, []byte(v)) // bytes.Buffer writes cannot fail
		buf.WriteString("</")
		buf.WriteString(f.Wire)
		buf.WriteByte('>')
	}
	buf.WriteString("</")
	buf.WriteString(s.Root)
	buf.WriteByte('>')
	return buf.String()
}

// WireName returns the wire element name for a logical field name.
func (s Schema) WireName(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Wire, true
		}
	}
	return "", false
}
