package prebuild

import (
	"fmt"
)

// bindingMode is the policy for how one page identifier is bound in the
// output. The mode is selected once per page from (explicit/implicit ×
// prerender/build × static imports available); the tree rewrite and output
// assembly only consume the result.
type bindingMode int

const (
	// bindExistingImport keeps the user's import and references it
	// directly. No loader is emitted. Build mode, explicit pages only.
	bindExistingImport bindingMode = iota

	// bindLazyLoader emits a loader whose prerenderLoader reads the page
	// from globalThis and whose LazyComponent dynamically imports the page
	// module, enabling code splitting. No static import is added.
	bindLazyLoader

	// bindStaticLoader emits a loader whose prerenderLoader requires the
	// page module synchronously, plus a side-effect static import so the
	// module is present at prerender time.
	bindStaticLoader
)

// selectMode picks the binding policy for one page.
func selectMode(explicit bool, opts Options) bindingMode {
	if !opts.ForPrerender {
		if explicit {
			return bindExistingImport
		}
		return bindLazyLoader
	}

	// Prerender mode. Without static imports the loader falls back to the
	// globalThis form even though a prerender was requested.
	if opts.NoStaticImports {
		return bindLazyLoader
	}
	return bindStaticLoader
}

// PageLoaderSpec is one synthesized page binding. One spec exists per
// distinct page identifier referenced by the route tree, in
// first-encountered order.
type PageLoaderSpec struct {
	// Name is the binding identifier in the output. For explicit pages
	// this is the user's chosen local name, for implicit pages the page
	// name itself; the two coincide with the identifier in the tree by
	// construction.
	Name string

	// Path is the module path used by require/import: the user's original
	// import path for explicit pages, ./pages/<Dir>/<Name> for implicit
	// ones.
	Path string

	// Mode is the selected binding policy.
	Mode bindingMode

	// Explicit marks pages the user imported themselves.
	Explicit bool
}

// NeedsLoader reports whether a loader const is emitted for this page.
func (s *PageLoaderSpec) NeedsLoader() bool {
	return s.Mode != bindExistingImport
}

// NeedsStaticImport reports whether a side-effect static import of the page
// module accompanies the loader.
func (s *PageLoaderSpec) NeedsStaticImport() bool {
	return s.Mode == bindStaticLoader
}

// render emits the loader const declaration for this page.
func (s *PageLoaderSpec) render() string {
	switch s.Mode {
	case bindStaticLoader:
		return fmt.Sprintf(`const %s = {
  name: %q,
  prerenderLoader: name => require(%q),
  LazyComponent: lazy(() => import(%q))
}`, s.Name, s.Name, s.Path, s.Path)

	case bindLazyLoader:
		return fmt.Sprintf(`const %s = {
  name: %q,
  prerenderLoader: name => ({ default: globalThis.__REDWOOD__PRERENDER_PAGES[name] }),
  LazyComponent: lazy(() => import(%q))
}`, s.Name, s.Name, s.Path)
	}

	return ""
}
