package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node is one element of a parsed xml document. Children are grouped by
// their local tag name so that repeated sibling elements (list members, map
// entries) can be reordered as a group.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string
	Children map[string][]*Node
}

// XMLToStruct reads the token stream from d and builds the Node tree for the
// element opened by start. start is nil for the document root, in which
// case the returned Node's Children hold the document's top-level elements.
func XMLToStruct(d *xml.Decoder, start *xml.StartElement) (*Node, error) {
	out := &Node{Children: map[string][]*Node{}}
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, fmt.Errorf("malformed xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := t.Copy()
			child, err := XMLToStruct(d, &el)
			if err != nil {
				return out, err
			}
			child.Name = el.Name
			child.Attr = el.Attr
			out.Children[el.Name.Local] = append(out.Children[el.Name.Local], child)
		case xml.CharData:
			out.Text += string(t.Copy())
		case xml.EndElement:
			if start != nil && t.Name.Local == start.Name.Local {
				return out, nil
			}
			if start == nil {
				return out, fmt.Errorf("malformed xml: unexpected closing tag %s", t.Name.Local)
			}
		}
	}
}

// StructToXML writes node's children to e. When sorted is true, each group
// of same-named siblings is written in a canonical order rather than their
// original document order.
func StructToXML(e *xml.Encoder, node *Node, sorted bool) error {
	if err := writeChildren(e, node, sorted); err != nil {
		return err
	}
	return e.Flush()
}

func writeChildren(e *xml.Encoder, node *Node, sorted bool) error {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kids := node.Children[name]
		if sorted {
			kids = sortNodes(kids)
		}
		for _, kid := range kids {
			start := xml.StartElement{Name: xml.Name{Local: kid.Name.Local}, Attr: sortAttrs(kid.Attr)}
			if err := e.EncodeToken(start); err != nil {
				return err
			}
			if kid.Text != "" {
				if err := e.EncodeToken(xml.CharData(kid.Text)); err != nil {
					return err
				}
			}
			if err := writeChildren(e, kid, sorted); err != nil {
				return err
			}
			if err := e.EncodeToken(xml.EndElement{Name: start.Name}); err != nil {
				return err
			}
		}
	}
	return nil
}

// sortNodes orders a group of same-named siblings by their own canonical
// rendering, so that XML differing only in list or map entry order compares
// equal after sorting.
func sortNodes(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool {
		return canonicalString(out[i]) < canonicalString(out[j])
	})
	return out
}

func canonicalString(n *Node) string {
	wrapper := &Node{Children: map[string][]*Node{n.Name.Local: {n}}}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	_ = writeChildren(enc, wrapper, true)
	enc.Flush()
	return buf.String()
}

func sortAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name.Space != out[j].Name.Space {
			return out[i].Name.Space < out[j].Name.Space
		}
		if out[i].Name.Local != out[j].Name.Local {
			return out[i].Name.Local < out[j].Name.Local
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func trimText(n *Node) {
	n.Text = strings.TrimSpace(n.Text)
	for _, kids := range n.Children {
		for _, kid := range kids {
			trimText(kid)
		}
	}
}

// SortXML parses the xml document read from r and re-encodes it with every
// group of same-named sibling elements and every element's attributes in a
// canonical order, so that two documents differing only in unordered list,
// map, or attribute placement compare equal as strings. When ignoreIndentation
// is true, leading and trailing whitespace is trimmed from every element's
// text content before comparison.
func SortXML(r io.Reader, ignoreIndentation bool) (string, error) {
	d := xml.NewDecoder(r)
	root, err := XMLToStruct(d, nil)
	if err != nil {
		return "", err
	}
	if ignoreIndentation {
		trimText(root)
	}

	var buf bytes.Buffer
	e := xml.NewEncoder(&buf)
	if err := StructToXML(e, root, true); err != nil {
		return "", err
	}
	return buf.String(), nil
}
