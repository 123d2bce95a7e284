package prebuild

import (
	"strings"
	"testing"
)

func TestTransformJSXNoJSXIsNoOp(t *testing.T) {
	src := `const add = (a, b) => a + b

export default add
`
	out, err := TransformJSX([]byte(src))
	if err != nil {
		t.Fatalf("TransformJSX() error: %v", err)
	}
	if string(out) != src {
		t.Errorf("output differs from input for JSX-free source:\n%s", out)
	}
}

func TestTransformJSXLowersElements(t *testing.T) {
	src := `const Header = () => {
  return (
    <nav className="main">
      <Link to={routes.home()}>Home</Link>
    </nav>
  )
}
`
	out, err := TransformJSX([]byte(src))
	if err != nil {
		t.Fatalf("TransformJSX() error: %v", err)
	}
	code := string(out)

	if !strings.Contains(code, `/*#__PURE__*/React.createElement(nav, { className: "main" },`) {
		t.Errorf("missing lowered nav element:\n%s", code)
	}
	if !strings.Contains(code, `React.createElement(Link, { to: routes.home() },`) {
		t.Errorf("missing lowered Link element:\n%s", code)
	}
	if !strings.Contains(code, `"Home"`) {
		t.Errorf("missing text child:\n%s", code)
	}
	// Only the top-level call is annotated.
	if got := strings.Count(code, "/*#__PURE__*/"); got != 1 {
		t.Errorf("pure annotations = %d, want 1:\n%s", got, code)
	}
	// Surrounding code survives untouched.
	if !strings.Contains(code, "const Header = () => {") {
		t.Errorf("surrounding code not preserved:\n%s", code)
	}
}

func TestTransformJSXSelfClosingNullProps(t *testing.T) {
	out, err := TransformJSX([]byte(`const a = <Spinner />`))
	if err != nil {
		t.Fatalf("TransformJSX() error: %v", err)
	}
	if want := `const a = /*#__PURE__*/React.createElement(Spinner, null)`; string(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestTransformJSXMultipleTrees(t *testing.T) {
	src := `const A = () => <Badge />
const B = () => <Chip />
`
	out, err := TransformJSX([]byte(src))
	if err != nil {
		t.Fatalf("TransformJSX() error: %v", err)
	}
	code := string(out)

	if got := strings.Count(code, "/*#__PURE__*/"); got != 2 {
		t.Errorf("pure annotations = %d, want 2:\n%s", got, code)
	}
	if !strings.Contains(code, "React.createElement(Badge, null)") ||
		!strings.Contains(code, "React.createElement(Chip, null)") {
		t.Errorf("missing lowered trees:\n%s", code)
	}
}

func TestTransformJSXIdempotentOnOutput(t *testing.T) {
	src := `const A = () => <Badge />`
	once, err := TransformJSX([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	twice, err := TransformJSX(once)
	if err != nil {
		t.Fatal(err)
	}
	if string(once) != string(twice) {
		t.Errorf("transforming already-lowered output changed it:\n%s\nvs\n%s", once, twice)
	}
}

func TestTransformJSXParseError(t *testing.T) {
	if _, err := TransformJSX([]byte("const A = () => ( <Router> ")); err == nil {
		t.Fatal("expected parse error")
	}
}
