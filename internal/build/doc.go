// Package build orchestrates the web-side build: it walks web/src, runs the
// routes file through the import/loader synthesizer, lowers JSX in every
// other component file, and writes the result to web/dist preserving the
// source layout. Files the transform does not apply to are copied through
// unchanged.
package build
