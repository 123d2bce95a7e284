// Package errors provides structured, actionable error messages for the
// Redwood build tool.
//
// Every error carries a unique code (e.g. "E101") that maps to a short
// message, a detailed explanation, and a documentation URL. Errors can be
// enriched with a source location, surrounding context lines, and a fix
// suggestion before being formatted for terminal display.
//
// # Error Categories
//
//   - compile: errors raised while parsing or transforming web-side source
//   - config: project configuration errors (redwood.toml, project layout)
//   - cli: command-line usage and environment errors
//   - deploy: errors raised while publishing build output
//
// # Usage
//
//	err := errors.New("E103").
//	    WithLocation("web/src/Routes.js", 12, 28).
//	    WithSuggestion("Create web/src/pages/HomePage/HomePage.js")
//
//	fmt.Println(err.Format())
package errors
