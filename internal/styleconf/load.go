package styleconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}

// FormatForPath picks the format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a YAML document without validating it. JSON written in
// YAML's flow style is accepted too; use Decode for strict JSON.
func Parse(data []byte) (*Document, error) {
	return Decode(data, FormatYAML)
}

// Decode decodes data in the given format without validating it. JSON goes
// through encoding/json, so any valid JSON text is accepted.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return &doc, nil
		}
		node, err := parseJSONNode(data)
		if err != nil {
			return nil, err
		}
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &doc, nil
}

// Marshal serializes doc. Loading the output yields an identical document.
func Marshal(doc *Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Warning reports a soft problem that does not stop the build.
type Warning struct {
	Theme   string
	Role    string
	Message string
}

func (w Warning) String() string {
	if w.Role == "" {
		return fmt.Sprintf("%s: %s", w.Theme, w.Message)
	}
	return fmt.Sprintf("%s.%s: %s", w.Theme, w.Role, w.Message)
}

// Report collects the warnings produced while validating a document.
type Report struct {
	Warnings []Warning
}

func (r *Report) warn(theme, role, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Theme: theme, Role: role, Message: fmt.Sprintf(format, args...)})
}

// LoadResult is a validated document and its warnings.
type LoadResult struct {
	Document *Document
	Report   *Report
}

// Loader reads and validates documents against a registry.
type Loader struct {
	registry    *Registry
	minContrast float64
	logger      zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithMinContrast sets the ratio below which content roles are reported.
// Zero or a negative ratio disables the check.
func WithMinContrast(ratio float64) Option {
	return func(l *Loader) {
		l.minContrast = ratio
	}
}

// WithLogger attaches a logger to the loader.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader resolving names against reg.
func NewLoader(reg *Registry, opts ...Option) *Loader {
	l := &Loader{
		registry:    reg,
		minContrast: DefaultMinContrast,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the registry the loader resolves against.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load reads, decodes and validates the document at path.
func (l *Loader) Load(path string) (*LoadResult, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	result, err := l.LoadFormat(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	result.Document.Source = path

	l.logger.Debug().
		Str("path", path).
		Int("content", len(result.Document.Content)).
		Int("plugins", len(result.Document.Plugins)).
		Int("themes", len(result.Document.DaisyUI.Themes)).
		Int("warnings", len(result.Report.Warnings)).
		Msg("document loaded")

	return result, nil
}

// LoadBytes decodes and validates an in-memory YAML document.
func (l *Loader) LoadBytes(data []byte) (*LoadResult, error) {
	return l.LoadFormat(data, FormatYAML)
}

// LoadFormat decodes data in the given format and validates it.
func (l *Loader) LoadFormat(data []byte, format Format) (*LoadResult, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	report, err := l.Validate(doc)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Document: doc, Report: report}, nil
}

// Load reads a document and validates it against the built-in registry.
func Load(path string) (*LoadResult, error) {
	reg, err := LoadBuiltinRegistry()
	if err != nil {
		return nil, err
	}
	return NewLoader(reg).Load(path)
}
