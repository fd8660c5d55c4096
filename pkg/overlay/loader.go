package overlay

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and merges every JSON/YAML overlay file into one store.
// A nil fsys or a tree without overlay files yields an empty store. A type
// declared by two files is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}
		return store.merge(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile reads a single overlay document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse builds a store from one document. source names it in errors.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.merge(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Types map[string]typeFile `json:"types" yaml:"types"`
}

type typeFile struct {
	Fields  map[string]attributeFile `json:"fields" yaml:"fields"`
	Variant *attributeFile           `json:"variant" yaml:"variant"`
}

type attributeFile struct {
	Label   *string `json:"label" yaml:"label"`
	Display *string `json:"display" yaml:"display"`
	Skip    *bool   `json:"skip" yaml:"skip"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("overlay: parse %s: invalid JSON or YAML", source)
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
