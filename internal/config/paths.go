package config

import (
	"os"
	"path/filepath"
)

// routesFileNames are the recognized routes file names, probed in order.
var routesFileNames = []string{"Routes.tsx", "Routes.jsx", "Routes.ts", "Routes.js"}

// pageFileExtensions are the recognized page entry extensions, probed in order.
var pageFileExtensions = []string{".tsx", ".jsx", ".ts", ".js"}

// Paths describes the layout of a Redwood project on disk.
type Paths struct {
	// Base is the project root (the directory containing redwood.toml).
	Base string

	// Config is the path to redwood.toml.
	Config string

	// Web contains web-side paths.
	Web WebPaths
}

// WebPaths contains web-side paths.
type WebPaths struct {
	// Src is web/src.
	Src string

	// Routes is the routes file (web/src/Routes.js or a sibling extension).
	// When no routes file exists on disk this holds the .js default.
	Routes string

	// Pages is web/src/pages.
	Pages string

	// Components is web/src/components.
	Components string

	// Dist is the build output directory, web/dist.
	Dist string
}

// PageRef is the resolution of a page name against web/src/pages.
type PageRef struct {
	// Name is the page identifier (e.g. "HomePage").
	Name string

	// Dir is the page directory on disk (web/src/pages/HomePage).
	Dir string

	// File is the page entry file on disk, empty when not found.
	File string

	// ImportPath is the module path relative to web/src
	// (./pages/HomePage/HomePage).
	ImportPath string

	// Exists reports whether the page entry file is present.
	Exists bool
}

// NewPaths builds the path set for a project rooted at base.
func NewPaths(base string) *Paths {
	webSrc := filepath.Join(base, "web", "src")

	p := &Paths{
		Base:   base,
		Config: filepath.Join(base, ConfigFileName),
		Web: WebPaths{
			Src:        webSrc,
			Pages:      filepath.Join(webSrc, "pages"),
			Components: filepath.Join(webSrc, "components"),
			Dist:       filepath.Join(base, "web", "dist"),
		},
	}

	p.Web.Routes = filepath.Join(webSrc, "Routes.js")
	for _, name := range routesFileNames {
		candidate := filepath.Join(webSrc, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			p.Web.Routes = candidate
			break
		}
	}

	return p
}

// PathsFromDir discovers the project root from startDir and builds paths.
func PathsFromDir(startDir string) (*Paths, error) {
	configPath, err := FindConfigPath(startDir)
	if err != nil {
		return nil, err
	}
	return NewPaths(filepath.Dir(configPath)), nil
}

// IsRoutesFile reports whether path refers to the project's routes file.
func (p *Paths) IsRoutesFile(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	routes, err := filepath.Abs(p.Web.Routes)
	if err != nil {
		return false
	}
	return abs == routes
}

// PagePath resolves a page name using the directory-of-same-name convention:
// web/src/pages/<Name>/<Name>.<ext>. When skipProbe is set the on-disk check
// is skipped and the page is reported as existing; test runners resolve
// pages against a virtual filesystem.
func (p *Paths) PagePath(name string, skipProbe bool) PageRef {
	ref := PageRef{
		Name:       name,
		Dir:        filepath.Join(p.Web.Pages, name),
		ImportPath: "./pages/" + name + "/" + name,
	}

	if skipProbe {
		ref.Exists = true
		return ref
	}

	for _, ext := range pageFileExtensions {
		candidate := filepath.Join(ref.Dir, name+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			ref.File = candidate
			ref.Exists = true
			return ref
		}
	}

	return ref
}
