// Package prebuild rewrites web-side source before bundling.
//
// It has two jobs. TransformJSX lowers the JSX element trees in any
// component file to plain React.createElement calls, annotated so bundlers
// can tree-shake unused trees. PrebuildWebFile applies only to the
// project's routes file: it reconciles the <Router>/<Route> tree against
// the file's import declarations, synthesizes a loader object for every
// page the tree references, and re-emits the file as a new module whose
// shape depends on the build mode.
//
// In build mode (the default) pages the user did not import explicitly get
// a code-split loader whose LazyComponent performs a dynamic import; pages
// the user imported are referenced directly and the import is preserved
// verbatim. In prerender mode every page gets a loader capable of
// synchronous resolution via require, and explicit page imports are elided
// in favor of the loader (named exports riding on those imports survive as
// their own import statement).
//
// The transform is pure and idempotent: identical input and flags produce
// byte-identical output.
package prebuild
