package classifier

// Status reports whether a classifier artifact is loaded.
type Status struct {
	Available bool   `json:"available"`
	Path      string `json:"path"`
	Error     string `json:"error,omitempty"`
}
