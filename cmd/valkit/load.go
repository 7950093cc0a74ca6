package main

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

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// loadRules reads a field -> expression map from a YAML or JSON file.
func loadRules(path string, stdin io.Reader) (map[string]string, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rules map[string]string
	// YAML is a superset of JSON
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules %s: no fields defined", path)
	}
	return rules, nil
}

// loadValues reads a field -> value map. JSON numbers are kept as json.Number.
func loadValues(path string, stdin io.Reader) (map[string]any, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	values := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&values)
	}
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}
