package prebuild

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/errors"
)

// newProject creates a project tree with redwood.toml, a routes file, and
// page directories, and returns the resolved paths.
func newProject(t *testing.T, routesSource string, pages ...string) *config.Paths {
	t.Helper()
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, "redwood.toml"), []byte("[web]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	srcDir := filepath.Join(root, "web", "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "Routes.js"), []byte(routesSource), 0644); err != nil {
		t.Fatal(err)
	}

	for _, page := range pages {
		dir := filepath.Join(srcDir, "pages", page)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, page+".js"), []byte("export default () => null\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return config.NewPaths(root)
}

const singleRouteSource = `import { Router, Route } from '@redwoodjs/router'

const Routes = () => {
  return (
    <Router>
      <Route path="/" page={HomePage} name="home" />
    </Router>
  )
}

export default Routes
`

func TestPrebuildRoutesBuildMode(t *testing.T) {
	paths := newProject(t, singleRouteSource, "HomePage")

	code, err := PrebuildRoutes([]byte(singleRouteSource), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if !strings.Contains(code, `import { Router, Route } from "@redwoodjs/router"`) {
		t.Errorf("missing router import:\n%s", code)
	}
	if !strings.Contains(code, "const HomePage = {") {
		t.Errorf("missing HomePage loader:\n%s", code)
	}
	if !strings.Contains(code, `name: "HomePage"`) {
		t.Errorf("missing loader name:\n%s", code)
	}
	if !strings.Contains(code, "prerenderLoader: name => ({ default: globalThis.__REDWOOD__PRERENDER_PAGES[name] })") {
		t.Errorf("missing globalThis prerenderLoader:\n%s", code)
	}
	if !strings.Contains(code, `LazyComponent: lazy(() => import("./pages/HomePage/HomePage"))`) {
		t.Errorf("missing LazyComponent:\n%s", code)
	}
	if !strings.Contains(code, `React.createElement(Route, { path: "/", page: HomePage, name: "home" })`) {
		t.Errorf("missing rewritten route call:\n%s", code)
	}
	// Code splitting: no eager import of the page module.
	if strings.Contains(code, `import "./pages/HomePage/HomePage"`) {
		t.Errorf("build mode must not emit a static page import:\n%s", code)
	}
}

func TestPrebuildRoutesPrerenderMode(t *testing.T) {
	paths := newProject(t, singleRouteSource, "HomePage")

	code, err := PrebuildRoutes([]byte(singleRouteSource), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if !strings.Contains(code, `prerenderLoader: name => require("./pages/HomePage/HomePage")`) {
		t.Errorf("missing require-based prerenderLoader:\n%s", code)
	}
	if !strings.Contains(code, `import "./pages/HomePage/HomePage"`) {
		t.Errorf("missing static page import:\n%s", code)
	}
	if !strings.Contains(code, `LazyComponent: lazy(() => import("./pages/HomePage/HomePage"))`) {
		t.Errorf("missing LazyComponent:\n%s", code)
	}
	if strings.Contains(code, "__REDWOOD__PRERENDER_PAGES") {
		t.Errorf("prerender mode with static imports must not use the globalThis loader:\n%s", code)
	}
}

func TestPrebuildRoutesPrerenderWithoutStaticImports(t *testing.T) {
	paths := newProject(t, singleRouteSource, "HomePage")

	code, err := PrebuildRoutes([]byte(singleRouteSource), paths, Options{ForPrerender: true, NoStaticImports: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if !strings.Contains(code, "globalThis.__REDWOOD__PRERENDER_PAGES[name]") {
		t.Errorf("expected globalThis fallback loader:\n%s", code)
	}
	if strings.Contains(code, `import "./pages/HomePage/HomePage"`) {
		t.Errorf("no static import without static imports:\n%s", code)
	}
}

const explicitImportSource = `import { Router, Route } from '@redwoodjs/router'
import EditJobPage, { NonDefaultExport } from 'src/pages/Jobs/EditJobPage'

const Routes = () => {
  return (
    <Router>
      <Route path="/" page={HomePage} name="home" />
      <Route path="/jobs/{id:Int}/edit" page={EditJobPage} name="editJob" />
    </Router>
  )
}

export default Routes
`

func TestPrebuildRoutesExplicitImportBuildMode(t *testing.T) {
	paths := newProject(t, explicitImportSource, "HomePage")

	code, err := PrebuildRoutes([]byte(explicitImportSource), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	// The combined import is preserved verbatim.
	if !strings.Contains(code, `import EditJobPage, { NonDefaultExport } from "src/pages/Jobs/EditJobPage"`) {
		t.Errorf("combined import not preserved:\n%s", code)
	}
	// Mode exclusivity: no loader for the explicitly imported page.
	if strings.Contains(code, "const EditJobPage = {") {
		t.Errorf("explicit page must not get a loader in build mode:\n%s", code)
	}
	// The route references the import directly.
	if !strings.Contains(code, "page: EditJobPage") {
		t.Errorf("route lost its page binding:\n%s", code)
	}
	// The implicit page still gets its loader.
	if !strings.Contains(code, "const HomePage = {") {
		t.Errorf("missing HomePage loader:\n%s", code)
	}
}

func TestPrebuildRoutesExplicitImportPrerenderMode(t *testing.T) {
	paths := newProject(t, explicitImportSource, "HomePage")

	code, err := PrebuildRoutes([]byte(explicitImportSource), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	// Default import dropped, named import retained on its own.
	if strings.Contains(code, "import EditJobPage") {
		t.Errorf("default import must be elided in prerender mode:\n%s", code)
	}
	if !strings.Contains(code, `import { NonDefaultExport } from "src/pages/Jobs/EditJobPage"`) {
		t.Errorf("named import not retained:\n%s", code)
	}
	// Loader synthesized under the user's local name, with the user's path.
	if !strings.Contains(code, "const EditJobPage = {") {
		t.Errorf("missing loader under user's name:\n%s", code)
	}
	if !strings.Contains(code, `prerenderLoader: name => require("src/pages/Jobs/EditJobPage")`) {
		t.Errorf("loader must use the user's import path:\n%s", code)
	}
	// The route keeps referencing the user's chosen name.
	if !strings.Contains(code, "page: EditJobPage") {
		t.Errorf("route lost its page binding:\n%s", code)
	}
}

const namedImportSource = `import { Router, Route } from '@redwoodjs/router'
import { FooPage } from 'src/pages/FooPage'

const Routes = () => {
  return (
    <Router>
      <Route path="/foo" page={FooPage} name="foo" />
    </Router>
  )
}

export default Routes
`

func TestPrebuildRoutesNamedImportBuildMode(t *testing.T) {
	paths := newProject(t, namedImportSource)

	code, err := PrebuildRoutes([]byte(namedImportSource), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	// A page bound by a named import is explicit: the import survives and
	// no loader doubles the binding.
	if !strings.Contains(code, `import { FooPage } from "src/pages/FooPage"`) {
		t.Errorf("named import not preserved:\n%s", code)
	}
	if strings.Contains(code, "const FooPage = {") {
		t.Errorf("named-import page must not get a loader in build mode:\n%s", code)
	}
	if !strings.Contains(code, "page: FooPage") {
		t.Errorf("route lost its page binding:\n%s", code)
	}
}

func TestPrebuildRoutesNamedImportPrerenderMode(t *testing.T) {
	paths := newProject(t, namedImportSource)

	code, err := PrebuildRoutes([]byte(namedImportSource), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	// The binding moves to the loader; the named import goes away so the
	// identifier stays bound exactly once.
	if strings.Contains(code, "import { FooPage }") {
		t.Errorf("named import must be elided when its binding becomes a loader:\n%s", code)
	}
	if !strings.Contains(code, "const FooPage = {") {
		t.Errorf("missing loader for named-import page:\n%s", code)
	}
	if !strings.Contains(code, `prerenderLoader: name => require("src/pages/FooPage")`) {
		t.Errorf("loader must use the user's import path:\n%s", code)
	}
	if !strings.Contains(code, `import "src/pages/FooPage"`) {
		t.Errorf("missing static import of the page module:\n%s", code)
	}
}

func TestPrebuildRoutesMergesDuplicateImportPaths(t *testing.T) {
	src := `import { Router } from '@redwoodjs/router'
import { Route } from '@redwoodjs/router'

const Routes = () => {
  return (
    <Router>
      <Route path="/" page={HomePage} name="home" />
    </Router>
  )
}
`
	paths := newProject(t, src, "HomePage")

	code, err := PrebuildRoutes([]byte(src), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if got := strings.Count(code, `from "@redwoodjs/router"`); got != 1 {
		t.Errorf("router path imported %d times, want 1:\n%s", got, code)
	}
	if !strings.Contains(code, `import { Router, Route } from "@redwoodjs/router"`) {
		t.Errorf("imports not merged:\n%s", code)
	}
}

func TestPrebuildRoutesDuplicateReference(t *testing.T) {
	src := `import { Router, Route } from '@redwoodjs/router'

const Routes = () => {
  return (
    <Router>
      <Route path="/" page={HomePage} name="home" />
      <Route path="/landing" page={HomePage} name="landing" />
    </Router>
  )
}
`
	paths := newProject(t, src, "HomePage")

	code, err := PrebuildRoutes([]byte(src), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if got := strings.Count(code, "const HomePage = {"); got != 1 {
		t.Errorf("loader declared %d times, want exactly once:\n%s", got, code)
	}
	if got := strings.Count(code, "page: HomePage"); got != 2 {
		t.Errorf("page references = %d, want 2:\n%s", got, code)
	}
}

func TestPrebuildRoutesNestedContainers(t *testing.T) {
	src := `import { Router, Route, Set, Private } from '@redwoodjs/router'

const Routes = () => {
  return (
    <Router>
      <Set wrap={AppLayout}>
        <Route path="/about" page={AboutPage} name="about" />
        <Private unauthenticated="home">
          <Route path="/admin" page={AdminPage} name="admin" />
        </Private>
      </Set>
    </Router>
  )
}
`
	paths := newProject(t, src, "AboutPage", "AdminPage")

	code, err := PrebuildRoutes([]byte(src), paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	// Containers pass through and keep their attributes.
	if !strings.Contains(code, "React.createElement(Set, { wrap: AppLayout },") {
		t.Errorf("missing Set container:\n%s", code)
	}
	if !strings.Contains(code, `React.createElement(Private, { unauthenticated: "home" },`) {
		t.Errorf("missing Private container:\n%s", code)
	}
	// Pages inside containers are collected, in tree order.
	about := strings.Index(code, "const AboutPage = {")
	admin := strings.Index(code, "const AdminPage = {")
	if about == -1 || admin == -1 {
		t.Fatalf("missing loaders:\n%s", code)
	}
	if about > admin {
		t.Errorf("loaders out of first-encountered order:\n%s", code)
	}
}

func TestPrebuildRoutesIdempotent(t *testing.T) {
	paths := newProject(t, explicitImportSource, "HomePage")

	first, err := PrebuildRoutes([]byte(explicitImportSource), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatal(err)
	}
	second, err := PrebuildRoutes([]byte(explicitImportSource), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("repeated invocations must produce byte-identical output")
	}
}

func TestPrebuildRoutesDropsDuplicateSideEffectImport(t *testing.T) {
	src := `import { Router, Route } from '@redwoodjs/router'
import './pages/HomePage/HomePage'

const Routes = () => {
  return (
    <Router>
      <Route path="/" page={HomePage} name="home" />
    </Router>
  )
}
`
	paths := newProject(t, src, "HomePage")

	code, err := PrebuildRoutes([]byte(src), paths, Options{ForPrerender: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error: %v", err)
	}

	if got := strings.Count(code, `import "./pages/HomePage/HomePage"`); got != 1 {
		t.Errorf("static page import emitted %d times, want 1:\n%s", got, code)
	}
}

func TestPrebuildRoutesUnresolvablePage(t *testing.T) {
	paths := newProject(t, singleRouteSource) // no pages on disk

	_, err := PrebuildRoutes([]byte(singleRouteSource), paths, Options{})
	if err == nil {
		t.Fatal("expected error for unresolvable page")
	}
	be, ok := err.(*errors.BuildError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.BuildError", err)
	}
	if be.Code != "E103" {
		t.Errorf("Code = %q, want E103", be.Code)
	}
	if !strings.Contains(be.Detail, "HomePage") {
		t.Errorf("error must identify the offending page, got %q", be.Detail)
	}
}

func TestPrebuildRoutesForJestSkipsProbe(t *testing.T) {
	paths := newProject(t, singleRouteSource) // no pages on disk

	code, err := PrebuildRoutes([]byte(singleRouteSource), paths, Options{ForJest: true})
	if err != nil {
		t.Fatalf("PrebuildRoutes() error with ForJest: %v", err)
	}
	if !strings.Contains(code, "const HomePage = {") {
		t.Errorf("missing loader:\n%s", code)
	}
}

func TestPrebuildRoutesNoRouter(t *testing.T) {
	src := `const Routes = () => null`
	paths := newProject(t, src)

	_, err := PrebuildRoutes([]byte(src), paths, Options{})
	if err == nil {
		t.Fatal("expected error when no Router element exists")
	}
}

func TestPrebuildWebFileSelection(t *testing.T) {
	paths := newProject(t, singleRouteSource, "HomePage")

	// The routes file is transformed.
	res, err := PrebuildWebFileWithPaths(paths.Web.Routes, paths, Options{})
	if err != nil {
		t.Fatalf("PrebuildWebFileWithPaths() error: %v", err)
	}
	if res == nil || !strings.Contains(res.Code, "const HomePage = {") {
		t.Errorf("routes file not transformed: %+v", res)
	}

	// Other files pass through as nil.
	other := filepath.Join(paths.Web.Src, "App.js")
	if err := os.WriteFile(other, []byte("export default () => null"), 0644); err != nil {
		t.Fatal(err)
	}
	res, err = PrebuildWebFileWithPaths(other, paths, Options{})
	if err != nil || res != nil {
		t.Errorf("non-routes file: res=%v err=%v, want nil, nil", res, err)
	}

	// Missing file: nil as well.
	res, err = PrebuildWebFileWithPaths(filepath.Join(paths.Web.Src, "Missing.js"), paths, Options{})
	if err != nil || res != nil {
		t.Errorf("missing file: res=%v err=%v, want nil, nil", res, err)
	}
}
