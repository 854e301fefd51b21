package xmltree

import (
	"bytes"
	"github.com/antchfx/xmlquery"
)

const header = `<?xml version="1.0"?>`

// Element creates an element node. Nil children are skipped so optional
// fields can be passed inline while keeping declaration order.
func Element(name string, children ...*xmlquery.Node) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
	Append(n, children...)
	return n
}

// Text creates an element holding a single text value.
func Text(name, value string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: value})
	return n
}

// TextIf is Text when value is non-blank and nil otherwise.
func TextIf(name, value string) *xmlquery.Node {
	if isBlank(value) {
		return nil
	}
	return Text(name, value)
}

// When returns n if cond holds.
func When(cond bool, n *xmlquery.Node) *xmlquery.Node {
	if !cond {
		return nil
	}
	return n
}

func Append(parent *xmlquery.Node, children ...*xmlquery.Node) {
	for _, c := range children {
		if c != nil {
			xmlquery.AddChild(parent, c)
		}
	}
}

// Render serializes each root as its own XML document, one after another.
func Render(roots ...*xmlquery.Node) []byte {
	var b bytes.Buffer
	for _, root := range roots {
		if root == nil {
			continue
		}
		b.WriteString(header)
		b.WriteString(root.OutputXML(true))
	}
	return b.Bytes()
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
