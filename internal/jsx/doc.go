// Package jsx parses JSX element trees and import declarations out of
// JavaScript source, and prints element trees back as plain
// React.createElement calls.
//
// Parsing is backed by the tree-sitter JavaScript grammar. The package does
// not understand the whole language; it extracts exactly the pieces the
// prebuild pipeline needs: the ordered list of top-of-file import
// declarations and every top-level JSX element tree with its byte span in
// the original source. Everything between those spans is left alone.
//
// Element trees are immutable once parsed. Rewrites produce new trees.
package jsx
