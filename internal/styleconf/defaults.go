package styleconf

import _ "embed"

// DefaultFileName is the document name looked up in a project directory.
const DefaultFileName = "tailcfg.yaml"

//go:embed default.yaml
var defaultDocument []byte

// DefaultDocument returns the starter document written by init.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}
