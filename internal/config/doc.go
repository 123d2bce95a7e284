// Package config loads redwood.toml and resolves project paths.
//
// A Redwood project is identified by a redwood.toml file at its root. The
// config file is discovered by walking up from a starting directory, so
// commands work from anywhere inside the project tree.
//
// The Paths type is the project-layout service consumed by the prebuild
// pipeline: it knows where the web side lives, which file is the routes
// file, and how a page name maps to a module under web/src/pages using the
// directory-of-same-name convention.
package config
