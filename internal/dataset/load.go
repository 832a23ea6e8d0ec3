package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a population file.
type Format string

// Supported formats.
const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// StdinPath selects standard input as the population source.
const StdinPath = "-"

// FormatForPath picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormat
	default:
		return JSONFormat
	}
}

// Load reads a population from path. StdinPath reads JSON from os.Stdin.
func Load(path string) (*Population, error) {
	if path == StdinPath {
		return Decode(os.Stdin, JSONFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open population %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	pop, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("decode population %s: %w", path, err)
	}
	return pop, nil
}

// Decode reads either a Population document or a bare list of people.
func Decode(r io.Reader, format Format) (*Population, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch format {
	case YAMLFormat:
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (*Population, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty population document")
	}
	if trimmed[0] == '[' {
		var people []RawPerson
		if err := json.Unmarshal(trimmed, &people); err != nil {
			return nil, err
		}
		return &Population{People: people}, nil
	}
	var pop Population
	if err := json.Unmarshal(trimmed, &pop); err != nil {
		return nil, err
	}
	return &pop, nil
}

func decodeYAML(data []byte) (*Population, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty population document")
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var people []RawPerson
		if err := root.Decode(&people); err != nil {
			return nil, err
		}
		return &Population{People: people}, nil
	}
	var pop Population
	if err := root.Decode(&pop); err != nil {
		return nil, err
	}
	return &pop, nil
}

// Write encodes a population in the given format.
func Write(w io.Writer, pop *Population, format Format) error {
	switch format {
	case YAMLFormat:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pop); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pop)
	}
}
