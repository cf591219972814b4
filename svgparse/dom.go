package svgparse

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is a generic XML element tree node: the parser input. It is
// normally produced by decodeDocument, but callers holding their own
// XML infrastructure can build Elements directly and hand them to
// ParseDocument.
type Element struct {
	Name     string // local name, namespace stripped
	Attrs    []xml.Attr
	Children []*Element
	Text     string // concatenated character data
}

// Attr returns the value of the named attribute, or "" when absent.
// The namespace prefix of qualified attributes (xlink:href) is ignored.
func (e *Element) Attr(name string) string {
	v, _ := e.LookupAttr(name)
	return v
}

// LookupAttr is Attr plus a presence flag.
func (e *Element) LookupAttr(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// decodeDocument reads an XML byte stream into an Element tree,
// tolerating the charsets declared in the XML prolog.
func decodeDocument(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var root *Element
	var stack []*Element
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &Element{Name: se.Name.Local, Attrs: se.Attr}
			if len(stack) == 0 {
				if root != nil {
					// trailing garbage after the root element
					return nil, ErrInvalidDocument
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				if s := string(se); strings.TrimSpace(s) != "" {
					cur.Text += s
				}
			}
		}
	}
	if root == nil {
		return nil, ErrInvalidDocument
	}
	return root, nil
}
