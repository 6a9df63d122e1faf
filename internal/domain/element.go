package domain

import (
	"encoding/xml"
	"strings"
)

// element is a generic markup node. System files interleave <P>, <Block>,
// <Line> and nested <System> children in meaningful order, so they are
// decoded into this tree and mapped to model types afterwards.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []element  `xml:",any"`
}

func parseMarkup(text string) (*element, error) {
	var root element
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (e *element) tag() string { return e.XMLName.Local }

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) attrOr(name, fallback string) string {
	if v, ok := e.attr(name); ok {
		return v
	}
	return fallback
}

// child returns the first direct child with the given tag, or nil.
func (e *element) child(tag string) *element {
	for i := range e.Children {
		if e.Children[i].tag() == tag {
			return &e.Children[i]
		}
	}
	return nil
}

// descendant returns the first node with the given tag, depth-first,
// including the receiver.
func (e *element) descendant(tag string) *element {
	if e.tag() == tag {
		return e
	}
	for i := range e.Children {
		if found := e.Children[i].descendant(tag); found != nil {
			return found
		}
	}
	return nil
}

// text returns the node's character data with surrounding whitespace kept
// only when it is meaningful (scripts keep internal newlines).
func (e *element) text() string {
	return e.Text
}

// properties collects the <P Name="...">value</P> children of a node. A
// Ref attribute takes precedence over text content, matching the source
// convention for reference-valued properties.
func (e *element) properties() map[string]string {
	props := make(map[string]string)
	for i := range e.Children {
		c := &e.Children[i]
		if c.tag() != "P" {
			continue
		}
		name, ok := c.attr("Name")
		if !ok {
			continue
		}
		if ref, ok := c.attr("Ref"); ok {
			props[name] = ref
			continue
		}
		props[name] = c.text()
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

func isOn(value string) bool {
	return strings.EqualFold(value, "on") || value == "1" || strings.EqualFold(value, "true")
}
