package xmltree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// ParseError reports an upload that is not a well-formed XML document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts raw XML into a Document. Elements without child elements
// become leaves holding their text; all other elements become branches and
// their interleaved text is dropped. Attributes and namespace prefixes are
// ignored.
func Parse(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Err: fmt.Errorf("no root element found")}
	}

	top := Branch()
	top.Add(root.Tag, convert(root))
	return NewDocument(top), nil
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML: %w", err)
	}
	return Parse(raw)
}

func convert(el *etree.Element) *Node {
	children := el.ChildElements()
	if len(children) == 0 {
		return Leaf(el.Text())
	}
	node := Branch()
	for _, child := range children {
		node.Add(child.Tag, convert(child))
	}
	return node
}
