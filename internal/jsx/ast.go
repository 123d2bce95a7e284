package jsx

// Node is one child of a JSX element: nested element, text run, or an
// embedded {expression}.
type Node interface {
	node()
}

// Text is a literal text child. Whitespace-only runs are dropped during
// parsing, so a Text value is never empty.
type Text struct {
	Value string
}

// Expr is an embedded {expression} child, carried as raw source text.
type Expr struct {
	Src string
}

// AttrKind distinguishes the three JSX attribute forms.
type AttrKind int

const (
	// AttrString is attr="literal".
	AttrString AttrKind = iota

	// AttrExpr is attr={expression}.
	AttrExpr

	// AttrBare is a bare boolean attribute with no value.
	AttrBare
)

// Attr is one attribute on a JSX element. Value holds the unquoted literal
// for AttrString, the raw expression source for AttrExpr, and is empty for
// AttrBare.
type Attr struct {
	Name  string
	Kind  AttrKind
	Value string
}

// Element is a parsed JSX element. Attribute and child order match the
// source exactly.
type Element struct {
	Tag         string
	Attrs       []Attr
	Children    []Node
	SelfClosing bool
}

func (Text) node()     {}
func (Expr) node()     {}
func (*Element) node() {}

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}
