package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"biography-site/biography/model"
)

// Format identifies the encoding of a biography document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed data/biography.json
var embeddedDocument []byte

// FormatFor picks the document format from a file extension. JSON is the default.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the biography document at path. An empty path
// loads the embedded sample document.
func Load(path string) (*model.BiographyRecord, error) {
	if strings.TrimSpace(path) == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read biography %s: %w", path, err)
	}
	rec, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("load biography %s: %w", path, err)
	}
	return rec, nil
}

// LoadEmbedded decodes the sample document compiled into the binary.
func LoadEmbedded() (*model.BiographyRecord, error) {
	rec, err := Decode(embeddedDocument, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("load embedded biography: %w", err)
	}
	return rec, nil
}

// Decode parses data in the given format and validates the result.
// Unknown fields are rejected so typos surface at startup.
func Decode(data []byte, format Format) (*model.BiographyRecord, error) {
	var rec model.BiographyRecord
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("decode yaml: empty document")
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
