package jsx

import (
	"strconv"
	"strings"
)

// PureAnnotation marks a call as side-effect free so bundlers can tree-shake
// unused element trees.
const PureAnnotation = "/*#__PURE__*/"

// Print lowers a JSX element tree to a React.createElement call expression.
// The top-level call carries the pure annotation; nested calls do not.
func Print(el *Element) string {
	return PureAnnotation + printElement(el, 0)
}

// printElement renders one element at the given indent depth. An element
// without children renders on a single line; children go one per line.
func printElement(el *Element, depth int) string {
	var b strings.Builder

	b.WriteString("React.createElement(")
	b.WriteString(el.Tag)
	b.WriteString(", ")
	b.WriteString(printProps(el.Attrs))

	if len(el.Children) == 0 {
		b.WriteString(")")
		return b.String()
	}

	pad := strings.Repeat("  ", depth+1)
	for _, child := range el.Children {
		b.WriteString(",\n")
		b.WriteString(pad)
		b.WriteString(printChild(child, depth+1))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(")")

	return b.String()
}

// printProps renders the property bag, or null when there are no attributes.
func printProps(attrs []Attr) string {
	if len(attrs) == 0 {
		return "null"
	}

	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		switch a.Kind {
		case AttrString:
			parts = append(parts, a.Name+": "+strconv.Quote(a.Value))
		case AttrExpr:
			parts = append(parts, a.Name+": "+a.Value)
		case AttrBare:
			parts = append(parts, a.Name+": true")
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// printChild renders one child node.
func printChild(n Node, depth int) string {
	switch t := n.(type) {
	case Text:
		return strconv.Quote(t.Value)
	case Expr:
		return t.Src
	case *Element:
		return printElement(t, depth)
	}
	return ""
}

// PrintImport renders an import record as an import statement. A record with
// no bindings left (default elided, no named imports) renders as the empty
// string rather than an invalid empty clause.
func (r ImportRecord) PrintImport() string {
	if r.SideEffectOnly {
		return "import " + strconv.Quote(r.Path)
	}

	var clauses []string
	if r.Default != "" {
		clauses = append(clauses, r.Default)
	}
	if r.Namespace != "" {
		clauses = append(clauses, "* as "+r.Namespace)
	}
	if len(r.Named) > 0 {
		specs := make([]string, 0, len(r.Named))
		for _, s := range r.Named {
			if s.Local != "" && s.Local != s.Imported {
				specs = append(specs, s.Imported+" as "+s.Local)
			} else {
				specs = append(specs, s.Imported)
			}
		}
		clauses = append(clauses, "{ "+strings.Join(specs, ", ")+" }")
	}

	if len(clauses) == 0 {
		return ""
	}
	return "import " + strings.Join(clauses, ", ") + " from " + strconv.Quote(r.Path)
}
