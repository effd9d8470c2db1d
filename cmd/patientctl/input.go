package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// readPayload reads a file, or stdin for "-".
func readPayload(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}

// decodeWith validates data as YAML for .yaml and .yml files and as JSON
// otherwise. Stdin payloads starting with "{" are JSON, anything else YAML.
func decodeWith(s *schema.Schema, source string, data []byte) (*schema.Record, error) {
	if isYAML(source, data) {
		return s.ValidateYAML(data)
	}
	return s.ValidateJSON(data)
}

func isYAML(source string, data []byte) bool {
	if source != "-" {
		switch strings.ToLower(filepath.Ext(source)) {
		case ".yaml", ".yml":
			return true
		}
		return false
	}
	return !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}
