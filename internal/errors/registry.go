package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Compile Errors (E100-E199)
	// ============================================

	"E101": {
		Category: CategoryCompile,
		Message:  "Failed to parse web-side source",
		Detail:   "The file contains syntax the JavaScript parser could not understand. The transform does not attempt partial recovery; fix the syntax error and rebuild.",
		DocURL:   "https://redwoodjs.com/docs/errors/E101",
	},
	"E102": {
		Category: CategoryCompile,
		Message:  "Routes file has no <Router> element",
		Detail:   "The routes file was recognized but no <Router> element tree was found. Route prebuilding requires a single top-level <Router>.",
		DocURL:   "https://redwoodjs.com/docs/errors/E102",
	},
	"E103": {
		Category: CategoryCompile,
		Message:  "Page not found for route",
		Detail:   "A <Route> references a page that is neither imported in the routes file nor present under web/src/pages using the directory-of-same-name convention.",
		DocURL:   "https://redwoodjs.com/docs/errors/E103",
	},
	"E104": {
		Category: CategoryCompile,
		Message:  "Route is missing a page attribute",
		Detail:   "Every non-redirect <Route> must bind a page component via the page attribute.",
		DocURL:   "https://redwoodjs.com/docs/errors/E104",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	"E201": {
		Category: CategoryConfig,
		Message:  "Could not find redwood.toml",
		Detail:   "No redwood.toml was found in this directory or any parent directory. Run the command from inside a Redwood project.",
		DocURL:   "https://redwoodjs.com/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid redwood.toml",
		Detail:   "redwood.toml exists but could not be decoded.",
		DocURL:   "https://redwoodjs.com/docs/errors/E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Routes file not found",
		Detail:   "No Routes.js, Routes.jsx, Routes.ts or Routes.tsx was found under web/src.",
		DocURL:   "https://redwoodjs.com/docs/errors/E203",
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E301": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		Detail:   "The command was invoked with conflicting or missing arguments.",
		DocURL:   "https://redwoodjs.com/docs/errors/E301",
	},

	// ============================================
	// Deploy Errors (E400-E499)
	// ============================================

	"E401": {
		Category: CategoryDeploy,
		Message:  "Build output missing",
		Detail:   "web/dist does not exist. Run `rw build` before deploying.",
		DocURL:   "https://redwoodjs.com/docs/errors/E401",
	},
	"E402": {
		Category: CategoryDeploy,
		Message:  "Upload failed",
		Detail:   "One or more objects could not be uploaded to the deploy target.",
		DocURL:   "https://redwoodjs.com/docs/errors/E402",
	},
}
