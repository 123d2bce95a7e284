package prebuild

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/saminightshift/redwood/internal/config"
	"github.com/saminightshift/redwood/internal/errors"
	"github.com/saminightshift/redwood/internal/jsx"
)

// Options selects the route-import generation mode.
type Options struct {
	// ForPrerender generates loaders that resolve pages synchronously via
	// require, for server-side prerendering. The default (false) generates
	// code-split loaders for the client bundle.
	ForPrerender bool

	// ForJest resolves page paths by convention without probing the disk,
	// for test runners that compile against a virtual filesystem. It does
	// not change output semantics.
	ForJest bool

	// NoStaticImports disables the eager import form in prerender mode;
	// loaders fall back to the globalThis lookup. Ignored in build mode.
	NoStaticImports bool
}

// Result is the transformed routes file.
type Result struct {
	Code string
}

// identRe matches a plain identifier; page attributes holding anything else
// are left untouched.
var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// PrebuildWebFile transforms the project's routes file. It returns
// (nil, nil) when the file does not exist or is not the routes file, so
// callers can feed it every web-side file and only the routes file is
// rewritten.
func PrebuildWebFile(path string, opts Options) (*Result, error) {
	paths, err := config.PathsFromDir(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return PrebuildWebFileWithPaths(path, paths, opts)
}

// PrebuildWebFileWithPaths is PrebuildWebFile with an already-resolved
// project layout.
func PrebuildWebFileWithPaths(path string, paths *config.Paths, opts Options) (*Result, error) {
	if !paths.IsRoutesFile(path) {
		return nil, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	code, err := PrebuildRoutes(source, paths, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Code: code}, nil
}

// PrebuildRoutes rewrites routes-file source into the mode-dependent
// executable form: a regenerated import block, one loader const per
// synthesized page binding, and the router tree as a createElement call.
func PrebuildRoutes(source []byte, paths *config.Paths, opts Options) (string, error) {
	file, err := jsx.Parse(source)
	if err != nil {
		return "", errors.New("E101").Wrap(err)
	}

	router := findRouter(file)
	if router == nil {
		return "", errors.New("E102")
	}

	catalog := newImportCatalog(file.Imports)

	pages, err := collectPages(router, catalog, paths, opts)
	if err != nil {
		return "", err
	}

	bindings := make(map[string]string, len(pages))
	for _, spec := range pages {
		bindings[spec.Name] = spec.Name
	}
	rewritten := rewriteTree(router, bindings)

	return assemble(file.Imports, pages, rewritten), nil
}

// findRouter returns the first top-level <Router> element.
func findRouter(file *jsx.File) *jsx.Element {
	for _, span := range file.Elements {
		if span.Element.Tag == "Router" {
			return span.Element
		}
	}
	return nil
}

// importCatalog indexes the file's explicit imports by every local name
// they bind: defaults, named-import locals, and namespace locals alike.
type importCatalog struct {
	byLocal map[string]jsx.ImportRecord
}

func newImportCatalog(imports []jsx.ImportRecord) *importCatalog {
	c := &importCatalog{byLocal: make(map[string]jsx.ImportRecord)}
	for _, rec := range imports {
		if rec.Default != "" {
			c.byLocal[rec.Default] = rec
		}
		if rec.Namespace != "" {
			c.byLocal[rec.Namespace] = rec
		}
		for _, spec := range rec.Named {
			c.byLocal[spec.Local] = rec
		}
	}
	return c
}

// explicitImport returns the import record that binds the given local
// name, if any.
func (c *importCatalog) explicitImport(name string) (jsx.ImportRecord, bool) {
	rec, ok := c.byLocal[name]
	return rec, ok
}

// collectPages walks the route tree and builds one PageLoaderSpec per
// distinct page identifier, in first-encountered order. Set/Private and
// other grouping elements are walked through transparently.
func collectPages(router *jsx.Element, catalog *importCatalog, paths *config.Paths, opts Options) ([]*PageLoaderSpec, error) {
	var specs []*PageLoaderSpec
	seen := make(map[string]bool)

	var walk func(el *jsx.Element) error
	walk = func(el *jsx.Element) error {
		if el.Tag == "Route" {
			if attr, ok := el.Attr("page"); ok && attr.Kind == jsx.AttrExpr && identRe.MatchString(attr.Value) {
				name := attr.Value
				if !seen[name] {
					seen[name] = true
					spec, err := buildSpec(name, catalog, paths, opts)
					if err != nil {
						return err
					}
					specs = append(specs, spec)
				}
			}
		}
		for _, child := range el.Children {
			if childEl, ok := child.(*jsx.Element); ok {
				if err := walk(childEl); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(router); err != nil {
		return nil, err
	}
	return specs, nil
}

// buildSpec resolves one page identifier to its binding policy and module
// path.
func buildSpec(name string, catalog *importCatalog, paths *config.Paths, opts Options) (*PageLoaderSpec, error) {
	rec, explicit := catalog.explicitImport(name)

	spec := &PageLoaderSpec{
		Name:     name,
		Mode:     selectMode(explicit, opts),
		Explicit: explicit,
	}

	if explicit {
		spec.Path = rec.Path
		return spec, nil
	}

	ref := paths.PagePath(name, opts.ForJest)
	if !ref.Exists {
		return nil, errors.New("E103").
			WithDetail("No page directory matches " + name + ". Expected " +
				filepath.Join("web", "src", "pages", name, name) + ".{js,jsx,ts,tsx}.").
			WithSuggestion("Run `rw generate page " + strings.TrimSuffix(name, "Page") + "` or import the page explicitly in the routes file.")
	}
	spec.Path = ref.ImportPath

	return spec, nil
}

// rewriteTree produces a new element tree with every Route page attribute
// substituted through the binding table. Attribute order, child order, and
// all other attributes are preserved.
func rewriteTree(el *jsx.Element, bindings map[string]string) *jsx.Element {
	out := &jsx.Element{
		Tag:         el.Tag,
		SelfClosing: el.SelfClosing,
	}

	for _, a := range el.Attrs {
		if el.Tag == "Route" && a.Name == "page" && a.Kind == jsx.AttrExpr {
			if bound, ok := bindings[a.Value]; ok {
				a.Value = bound
			}
		}
		out.Attrs = append(out.Attrs, a)
	}

	for _, child := range el.Children {
		if childEl, ok := child.(*jsx.Element); ok {
			out.Children = append(out.Children, rewriteTree(childEl, bindings))
		} else {
			out.Children = append(out.Children, child)
		}
	}

	return out
}

// mergeImports combines import records sharing a module path into one
// record at the first path's position, so the regenerated import block
// never repeats a path. A bare side-effect import is absorbed by any
// binding import of the same path.
func mergeImports(imports []jsx.ImportRecord) []jsx.ImportRecord {
	var out []jsx.ImportRecord
	index := make(map[string]int)

	for _, rec := range imports {
		i, seen := index[rec.Path]
		if !seen {
			index[rec.Path] = len(out)
			out = append(out, rec)
			continue
		}

		merged := out[i]
		switch {
		case rec.SideEffectOnly:
			// Nothing to add.
		case merged.SideEffectOnly:
			merged = rec
		default:
			if merged.Default == "" {
				merged.Default = rec.Default
			}
			if merged.Namespace == "" {
				merged.Namespace = rec.Namespace
			}
			merged.Named = append(append([]jsx.ImportSpecifier{}, merged.Named...), rec.Named...)
		}
		out[i] = merged
	}

	return out
}

// assemble writes the final module: import block, loader consts, router
// expression.
func assemble(imports []jsx.ImportRecord, pages []*PageLoaderSpec, router *jsx.Element) string {
	var b strings.Builder

	// Explicit page imports whose binding moved to a loader lose that
	// binding, whatever its form; other bindings riding along survive on
	// their own.
	elide := make(map[string]bool)
	for _, spec := range pages {
		if spec.Explicit && spec.NeedsLoader() {
			elide[spec.Name] = true
		}
	}

	emittedPaths := make(map[string]bool)

	for _, rec := range mergeImports(imports) {
		out := rec
		if elide[out.Default] {
			out.Default = ""
		}
		if elide[out.Namespace] {
			out.Namespace = ""
		}
		if len(out.Named) > 0 {
			kept := make([]jsx.ImportSpecifier, 0, len(out.Named))
			for _, spec := range out.Named {
				if !elide[spec.Local] {
					kept = append(kept, spec)
				}
			}
			out.Named = kept
		}

		line := out.PrintImport()
		if line == "" {
			continue
		}

		emittedPaths[out.Path] = true
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Side-effect static imports so prerender-time require calls resolve.
	for _, spec := range pages {
		if spec.NeedsStaticImport() && !emittedPaths[spec.Path] {
			emittedPaths[spec.Path] = true
			b.WriteString("import ")
			b.WriteString(strconv.Quote(spec.Path))
			b.WriteString("\n")
		}
	}

	for _, spec := range pages {
		if spec.NeedsLoader() {
			b.WriteString("\n")
			b.WriteString(spec.render())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(jsx.Print(router))
	b.WriteString("\n")

	return b.String()
}
