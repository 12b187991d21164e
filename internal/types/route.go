package types

// Route is one route declared in a template file, as reported by
// GET /api/routes.
type Route struct {
	Path       string   `json:"path"`
	Methods    []string `json:"methods"`
	Decorators []string `json:"decorators,omitempty"`
	File       string   `json:"file"`
}
