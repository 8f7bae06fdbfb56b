// Package tagstream provides a path-addressable reader over an XML document
// parsed into a flat, order-preserving sequence of tag events.
//
// The gateway's replies are small, flat documents. Rather than building a
// tree, the reader keeps the parsed tags as a linear array with explicit
// nesting levels and resolves slash-delimited paths ("Request/URI") by
// scanning that array. Sibling order is preserved and the first match at
// each level wins.
package tagstream

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind classifies a tag event.
type Kind int

const (
	// Open marks the start tag of an element that has child elements.
	Open Kind = iota
	// Close marks the end tag paired with an earlier Open at the same level.
	Close
	// Complete marks an element with no child elements; its text, if any,
	// is carried on the event itself.
	Complete
)

// TagEvent is one entry of the flat parsed-tag sequence.
type TagEvent struct {
	Level int
	Kind  Kind
	Tag   string
	Value string
	Attr  map[string]string
}

// ParseError reports a document that is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse xml: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader resolves hierarchical paths against a parsed document.
// Construction parses the input once; all queries afterwards are read-only,
// so a single Reader may be shared by concurrent readers.
type Reader struct {
	events []TagEvent
}

// NewReader parses doc into the flat event sequence.
// Index 0 of the sequence is a synthetic level-0 root, which lets the
// resolver use 0 both as the initial root index and as the "not found"
// sentinel; real events start at index 1.
func NewReader(doc string) (*Reader, error) {
	events := []TagEvent{{Level: 0, Kind: Open}}

	type frame struct {
		index    int    // position of the Open event in events
		text     string // character data seen so far
		children bool
	}
	var stack []frame

	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) > 0 {
				stack[len(stack)-1].children = true
			}
			ev := TagEvent{
				Level: len(stack) + 1,
				Kind:  Open,
				Tag:   t.Name.Local,
			}
			if len(t.Attr) > 0 {
				ev.Attr = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					ev.Attr[a.Name.Local] = a.Value
				}
			}
			events = append(events, ev)
			stack = append(stack, frame{index: len(events) - 1})

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}

		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.children {
				// Text directly under a branch element is only kept when it
				// is not inter-tag whitespace.
				if strings.TrimSpace(f.text) != "" {
					events[f.index].Value = f.text
				}
				events = append(events, TagEvent{
					Level: events[f.index].Level,
					Kind:  Close,
					Tag:   events[f.index].Tag,
				})
			} else {
				events[f.index].Kind = Complete
				events[f.index].Value = f.text
			}
		}
	}

	if len(events) == 1 {
		return nil, &ParseError{Err: fmt.Errorf("document has no root element")}
	}
	return &Reader{events: events}, nil
}

// Events exposes the parsed sequence (synthetic root included).
func (r *Reader) Events() []TagEvent { return r.events }

// GetValue resolves path and returns the element's text.
// Both an absent path and an element with empty text report ok=false: the
// wire format never sends empty leaf elements, so the two are not
// distinguished here.
func (r *Reader) GetValue(path string) (string, bool) {
	idx := r.resolve(path, 0)
	if idx == 0 || r.events[idx].Value == "" {
		return "", false
	}
	return r.events[idx].Value, true
}

// GetAttribute resolves path and returns the named attribute.
// ok is false when either the element or the attribute is missing.
func (r *Reader) GetAttribute(path, name string) (string, bool) {
	idx := r.resolve(path, 0)
	if idx == 0 {
		return "", false
	}
	v, ok := r.events[idx].Attr[name]
	return v, ok
}

// resolve descends one level per path segment starting at rootIndex.
// Returns the event index of the match, or 0 when any segment fails.
func (r *Reader) resolve(path string, rootIndex int) int {
	head, tail, nested := strings.Cut(path, "/")
	if !nested {
		return r.findChild(head, rootIndex)
	}
	mid := r.resolve(head, rootIndex)
	if mid == 0 {
		return 0
	}
	return r.resolve(tail, mid)
}

// findChild scans the direct children of the element at rootIndex for the
// first one named tag. The scan is bounded by the root's closing tag, so
// deeper descendants with the same name are never matched.
func (r *Reader) findChild(tag string, rootIndex int) int {
	root := r.events[rootIndex]
	if root.Kind == Complete {
		return 0
	}
	for i := rootIndex + 1; i < len(r.events); i++ {
		ev := r.events[i]
		if ev.Level == root.Level && ev.Kind == Close {
			return 0
		}
		if ev.Kind != Close && ev.Level == root.Level+1 && ev.Tag == tag {
			return i
		}
	}
	return 0
}
