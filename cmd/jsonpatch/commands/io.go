package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/docshift/jsonpatch"
)

// readBytes loads a file, or stdin when the path is "-". YAML input is
// converted to JSON so everything downstream deals with one format.
func readBytes(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s from YAML: %w", path, err)
		}
		return converted, nil
	default:
		return data, nil
	}
}

func readDocument(path string) (any, error) {
	data, err := readBytes(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	return doc, nil
}

func readPatch(path string) (jsonpatch.Patch, error) {
	data, err := readBytes(path)
	if err != nil {
		return nil, err
	}
	var patch jsonpatch.Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("failed to decode patch %s: %w", path, err)
	}
	return patch, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(v)
}
