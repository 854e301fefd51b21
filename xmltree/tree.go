// Package xmltree converts carrier XML into a nested map view and back.
//
// Element children become map entries keyed by element name. A name seen once
// maps to its value directly and a repeated name maps to a []any, which is the
// single-vs-list ambiguity EnsureList removes. Leaf elements map to their
// trimmed text. Attributes are not carried.
package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/antchfx/xmlquery"
	"strings"
)

type Map map[string]any

var ErrNoRoot = errors.New("xml document has no root element")

// Parse reads an XML document into a map holding its root element.
func Parse(data []byte) (Map, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	m := FromNode(doc)
	if len(m) == 0 {
		return nil, ErrNoRoot
	}
	return m, nil
}

// FromNode builds the map view of an already parsed tree. A document node
// yields its root element, an element node yields itself.
func FromNode(n *xmlquery.Node) Map {
	if n == nil {
		return nil
	}
	switch n.Type {
	case xmlquery.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				return Map{c.Data: value(c)}
			}
		}
		return nil
	case xmlquery.ElementNode:
		return Map{n.Data: value(n)}
	}
	return nil
}

// Coerce accepts any supported representation of a parsed response and
// returns its map view.
func Coerce(v any) (Map, error) {
	switch t := v.(type) {
	case Map:
		return t, nil
	case map[string]any:
		return Map(t), nil
	case *xmlquery.Node:
		if m := FromNode(t); len(m) > 0 {
			return m, nil
		}
		return nil, ErrNoRoot
	case []byte:
		return Parse(t)
	case string:
		return Parse([]byte(t))
	case nil:
		return nil, ErrNoRoot
	}
	return nil, fmt.Errorf("unsupported xml representation %T", v)
}

func value(n *xmlquery.Node) any {
	var (
		children Map
		text     strings.Builder
	)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			if children == nil {
				children = Map{}
			}
			v := value(c)
			prev, seen := children[c.Data]
			if !seen {
				children[c.Data] = v
			} else if list, ok := prev.([]any); ok {
				children[c.Data] = append(list, v)
			} else {
				children[c.Data] = []any{prev, v}
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}
	if children != nil {
		return children
	}
	return strings.TrimSpace(text.String())
}

// EnsureList normalizes a field that may hold one structure or many. A single
// value becomes a one-element list, a list passes through and an absent
// value becomes an empty list.
func EnsureList(v any) []any {
	if v == nil {
		return []any{}
	}
	if list, ok := asList(v); ok {
		return list
	}
	return []any{v}
}

// asList reports whether v is one of the list shapes a map view may carry.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []Map:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = Map(m)
		}
		return out, true
	}
	return nil, false
}

func asMap(v any) (Map, bool) {
	switch t := v.(type) {
	case Map:
		return t, true
	case map[string]any:
		return Map(t), true
	}
	return nil, false
}

// Get walks a path of element names. When an intermediate element repeats the
// walk continues through its first occurrence.
func (m Map) Get(path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		if list, ok := asList(cur); ok {
			if len(list) == 0 {
				return nil, false
			}
			cur = list[0]
		}
		node, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = node[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether the path exists.
func (m Map) Has(path ...string) bool {
	_, ok := m.Get(path...)
	return ok
}

// Map returns the structure at path, or nil when absent or not a structure.
func (m Map) Map(path ...string) Map {
	v, ok := m.Get(path...)
	if !ok {
		return nil
	}
	if list, isList := asList(v); isList {
		if len(list) == 0 {
			return nil
		}
		v = list[0]
	}
	out, _ := asMap(v)
	return out
}

// String returns the text at path, or "" when absent or not a leaf.
func (m Map) String(path ...string) string {
	v, ok := m.Get(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// List returns the entries at path as structures, applying EnsureList. An
// entry that is not a structure, such as an empty element, becomes an empty
// Map so the entry count is kept and required-field checks still fire.
func (m Map) List(path ...string) []Map {
	v, _ := m.Get(path...)
	items := EnsureList(v)
	out := make([]Map, 0, len(items))
	for _, item := range items {
		node, ok := asMap(item)
		if !ok {
			node = Map{}
		}
		out = append(out, node)
	}
	return out
}
