package jsx

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// ImportSpecifier is one named import: { Imported as Local }.
type ImportSpecifier struct {
	// Imported is the exported name in the source module.
	Imported string

	// Local is the binding name in this file (equals Imported when no alias).
	Local string
}

// ImportRecord is one top-of-file import declaration.
type ImportRecord struct {
	// Default is the default-imported local name, empty if none.
	Default string

	// Namespace is the local name of a namespace import (import * as X),
	// empty if none.
	Namespace string

	// Named are the named imports in source order.
	Named []ImportSpecifier

	// Path is the module path, unquoted.
	Path string

	// SideEffectOnly marks a bare `import "path"` with no bindings.
	SideEffectOnly bool
}

// ElementSpan is a top-level JSX element tree together with the byte range
// it occupies in the original source.
type ElementSpan struct {
	Element *Element
	Start   uint
	End     uint
}

// File is the parse result for one source file.
type File struct {
	// Source is the original input.
	Source []byte

	// Imports are the top-of-file import declarations in source order.
	Imports []ImportRecord

	// Elements are the top-level JSX element trees in source order.
	// Elements nested inside another JSX tree are reached through their
	// parent, not listed here.
	Elements []ElementSpan
}

// HasJSX reports whether the file contains any JSX element.
func (f *File) HasJSX() bool {
	return len(f.Elements) > 0
}

// jsLanguage is the tree-sitter JavaScript grammar, which includes JSX.
var jsLanguage = sitter.NewLanguage(tree_sitter_javascript.Language())

// Parse extracts import declarations and top-level JSX element trees from
// JavaScript source.
func Parse(source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(jsLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("jsx: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := 1
		if errNode := findErrorNode(root); errNode != nil {
			line = int(errNode.StartPosition().Row) + 1
		}
		return nil, fmt.Errorf("jsx: syntax error at line %d", line)
	}

	file := &File{Source: source}

	// Imports are only recognized as direct children of the program node.
	for i := uint(0); i < root.ChildCount(); i++ {
		ch := root.Child(i)
		if ch != nil && ch.Kind() == "import_statement" {
			if rec, ok := buildImport(ch, source); ok {
				file.Imports = append(file.Imports, rec)
			}
		}
	}

	if err := collectElements(root, source, file); err != nil {
		return nil, err
	}

	return file, nil
}

// collectElements walks the tree and builds every outermost JSX element.
// It does not descend into a JSX element; nested elements become children
// of the built tree.
func collectElements(n *sitter.Node, source []byte, file *File) error {
	kind := n.Kind()
	if kind == "jsx_element" || kind == "jsx_self_closing_element" {
		el, err := buildElement(n, source)
		if err != nil {
			return err
		}
		file.Elements = append(file.Elements, ElementSpan{
			Element: el,
			Start:   n.StartByte(),
			End:     n.EndByte(),
		})
		return nil
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		if err := collectElements(ch, source, file); err != nil {
			return err
		}
	}
	return nil
}

// buildElement converts a jsx_element or jsx_self_closing_element node into
// an Element tree.
func buildElement(n *sitter.Node, source []byte) (*Element, error) {
	switch n.Kind() {
	case "jsx_self_closing_element":
		el := &Element{SelfClosing: true}
		fillTagAndAttrs(n, source, el)
		return el, nil

	case "jsx_element":
		el := &Element{}
		for i := uint(0); i < n.ChildCount(); i++ {
			ch := n.Child(i)
			if ch == nil {
				continue
			}
			switch ch.Kind() {
			case "jsx_opening_element":
				fillTagAndAttrs(ch, source, el)

			case "jsx_closing_element":
				// Nothing to record.

			case "jsx_element", "jsx_self_closing_element":
				child, err := buildElement(ch, source)
				if err != nil {
					return nil, err
				}
				el.Children = append(el.Children, child)

			case "jsx_expression":
				if src := exprSource(ch, source); src != "" {
					el.Children = append(el.Children, Expr{Src: src})
				}

			case "jsx_text", "html_character_reference":
				if v := strings.TrimSpace(nodeText(ch, source)); v != "" {
					el.Children = append(el.Children, Text{Value: v})
				}
			}
		}
		return el, nil
	}

	return nil, fmt.Errorf("jsx: not an element node: %s", n.Kind())
}

// fillTagAndAttrs reads the tag name and attribute list from an opening or
// self-closing element node.
func fillTagAndAttrs(n *sitter.Node, source []byte, el *Element) {
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		switch ch.Kind() {
		case "identifier", "member_expression", "nested_identifier", "jsx_namespace_name":
			if el.Tag == "" {
				el.Tag = nodeText(ch, source)
			}
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, buildAttr(ch, source))
		}
	}
}

// buildAttr converts a jsx_attribute node. An attribute without a value is
// a bare boolean attribute.
func buildAttr(n *sitter.Node, source []byte) Attr {
	attr := Attr{Kind: AttrBare}
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		switch ch.Kind() {
		case "property_identifier", "jsx_namespace_name":
			if attr.Name == "" {
				attr.Name = nodeText(ch, source)
			}
		case "string":
			attr.Kind = AttrString
			attr.Value = unquote(nodeText(ch, source))
		case "jsx_expression":
			attr.Kind = AttrExpr
			attr.Value = exprSource(ch, source)
		}
	}
	return attr
}

// buildImport converts an import_statement node into an ImportRecord.
func buildImport(n *sitter.Node, source []byte) (ImportRecord, bool) {
	rec := ImportRecord{}

	if src := n.ChildByFieldName("source"); src != nil {
		rec.Path = unquote(nodeText(src, source))
	}
	if rec.Path == "" {
		return rec, false
	}

	var clause *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch != nil && ch.Kind() == "import_clause" {
			clause = ch
			break
		}
	}
	if clause == nil {
		rec.SideEffectOnly = true
		return rec, true
	}

	for i := uint(0); i < clause.ChildCount(); i++ {
		ch := clause.Child(i)
		if ch == nil {
			continue
		}
		switch ch.Kind() {
		case "identifier":
			rec.Default = nodeText(ch, source)
		case "namespace_import":
			for j := uint(0); j < ch.ChildCount(); j++ {
				inner := ch.Child(j)
				if inner != nil && inner.Kind() == "identifier" {
					rec.Namespace = nodeText(inner, source)
				}
			}
		case "named_imports":
			for j := uint(0); j < ch.ChildCount(); j++ {
				spec := ch.Child(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				var imported, local string
				if name := spec.ChildByFieldName("name"); name != nil {
					imported = unquote(nodeText(name, source))
				}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = nodeText(alias, source)
				}
				if local == "" {
					local = imported
				}
				if imported != "" {
					rec.Named = append(rec.Named, ImportSpecifier{Imported: imported, Local: local})
				}
			}
		}
	}

	return rec, true
}

// findErrorNode locates the shallowest ERROR node under n.
func findErrorNode(n *sitter.Node) *sitter.Node {
	if n.Kind() == "ERROR" {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil || !ch.HasError() {
			continue
		}
		if found := findErrorNode(ch); found != nil {
			return found
		}
	}
	return nil
}

// exprSource returns the source text inside a jsx_expression's braces.
func exprSource(n *sitter.Node, source []byte) string {
	start := n.StartByte() + 1
	end := n.EndByte() - 1
	if start >= end || end > uint(len(source)) {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}

// nodeText returns the source bytes spanned by a node.
func nodeText(n *sitter.Node, source []byte) string {
	start := n.StartByte()
	end := n.EndByte()
	if start >= end || end > uint(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// unquote strips one layer of matching string quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
