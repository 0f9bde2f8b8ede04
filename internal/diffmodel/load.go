package diffmodel

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model file.
type Format int

// Model file formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks a Format from the extension of path. ok is false for anything other than .json, .yaml and .yml.
func FormatForPath(path string) (f Format, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return 0, false
}

// Decode reads a list of files from r and validates each one.
func Decode(r io.Reader, format Format) ([]File, error) {
	var files []File
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&files); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&files); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown model format %d", format)
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	glog.V(1).Infof("diffmodel: decoded %d files", len(files))
	return files, nil
}

// LoadFile reads a model file, choosing the format from its extension.
func LoadFile(path string) ([]File, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: not a model file (want .json, .yaml or .yml)", path)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	files, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return files, nil
}
