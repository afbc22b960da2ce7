package rbx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/rbxvmf/pkg/encoding"
)

// ErrInvalidXML is returned when the input is not well-formed XML.
var ErrInvalidXML = errors.New("invalid XML")

// node is a minimal element tree. Offsets are byte positions in the input,
// kept for diagnostics.
type node struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*node
	start    int64
	end      int64
}

// readTree decodes the whole document into a tree rooted at a synthetic node.
// Documents declaring a non-UTF-8 encoding are transcoded.
func readTree(r io.Reader) (*node, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = encoding.NewReader
	root := &node{}
	stack := []*node{root}

	for {
		offset := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
		}

		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: t.Attr, start: offset}
			top.children = append(top.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			top.end = d.InputOffset()
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text.Write(t)
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: unexpected end of document", ErrInvalidXML)
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("%w: no root element", ErrInvalidXML)
	}
	return root, nil
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// child returns the first child element with the given tag.
func (n *node) child(tag string) *node {
	for _, c := range n.children {
		if c.name == tag {
			return c
		}
	}
	return nil
}

// childWithAttr returns the first child with the given tag whose attribute
// matches value.
func (n *node) childWithAttr(tag, attr, value string) *node {
	for _, c := range n.children {
		if c.name != tag {
			continue
		}
		if v, ok := c.attr(attr); ok && v == value {
			return c
		}
	}
	return nil
}

// property returns the trimmed text of the named property element.
func (n *node) property(tag, name string) (string, error) {
	c := n.childWithAttr(tag, "name", name)
	if c == nil {
		return "", fmt.Errorf("missing %s %q", tag, name)
	}
	return strings.TrimSpace(c.text.String()), nil
}

// childText returns the trimmed text of the first child with the given tag.
func (n *node) childText(tag string) (string, error) {
	c := n.child(tag)
	if c == nil {
		return "", fmt.Errorf("missing <%s>", tag)
	}
	return strings.TrimSpace(c.text.String()), nil
}

func (n *node) childFloat(tag string) (float64, error) {
	s, err := n.childText(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing <%s>: %w", tag, err)
	}
	return v, nil
}

func (n *node) floatProperty(name string) (float64, error) {
	s, err := n.property("float", name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}

func (n *node) tokenProperty(name string, bits int) (uint64, error) {
	s, err := n.property("token", name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}
