package state

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// LoadThemes parses a YAML theme table, e.g.
//
//	dark:
//	  body:
//	    background: "#1a1a1a"
//	    color: "#ffffff"
//
// The reserved "default" theme is added when the file does not define one.
func LoadThemes(r io.Reader) (map[string]Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read themes: %w", err)
	}

	var themes map[string]Theme
	if err := yaml.Unmarshal(data, &themes); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}
	if themes == nil {
		themes = map[string]Theme{}
	}
	if _, ok := themes["default"]; !ok {
		themes["default"] = DefaultTheme()
	}
	return themes, nil
}
