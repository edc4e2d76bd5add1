// Package config defines the YAML patch spec: the file that lists which
// layers to inject into a container and how to animate them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PatchSpec describes one patch run: the container to read, the layers
// to inject in order, and where to write the result.
type PatchSpec struct {
	Input    string  `yaml:"input"`
	Output   string  `yaml:"output"`
	Compress bool    `yaml:"compress"`
	Layers   []Layer `yaml:"layers"`
}

// Layer is one layer to synthesize. Content is the text body for text
// layers, the QR payload for qr layers, and a file path for image and
// pdf layers.
type Layer struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"` // text, image, pdf, qr
	Content   string   `yaml:"content"`
	Page      int      `yaml:"page,omitempty"` // pdf page index, zero-based
	Rect      Rect     `yaml:"rect"`
	Effects   []string `yaml:"effects,omitempty"` // pulse, float, shine
	Cycles    float64  `yaml:"cycles,omitempty"`
	Intensity float64  `yaml:"intensity,omitempty"`
	Font      string   `yaml:"font,omitempty"`
	FontSize  float64  `yaml:"fontSize,omitempty"`
	Color     string   `yaml:"color,omitempty"` // #RGB, #RRGGBB or #RRGGBBAA
}

// Rect is a layer's target rectangle in viewbox coordinates.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

var knownKinds = map[string]bool{"text": true, "image": true, "pdf": true, "qr": true}
var knownEffects = map[string]bool{"pulse": true, "float": true, "shine": true}

// Validate checks the spec for problems better reported before any
// decoding starts.
func (s *PatchSpec) Validate() error {
	if s.Input == "" {
		return fmt.Errorf("spec: input path is required")
	}
	if s.Output == "" {
		return fmt.Errorf("spec: output path is required")
	}
	for i, l := range s.Layers {
		if !knownKinds[l.Kind] {
			return fmt.Errorf("spec: layer %d (%q): unknown kind %q", i, l.Name, l.Kind)
		}
		for _, e := range l.Effects {
			if !knownEffects[e] {
				return fmt.Errorf("spec: layer %d (%q): unknown effect %q", i, l.Name, e)
			}
		}
		if (l.Kind == "image" || l.Kind == "pdf") && l.Content == "" {
			return fmt.Errorf("spec: layer %d (%q): kind %s needs a file path in content", i, l.Name, l.Kind)
		}
	}
	return nil
}

// Read loads a patch spec from a YAML file.
func Read(path string) (*PatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec PatchSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &spec, nil
}

// Write saves a patch spec as YAML.
func Write(spec *PatchSpec, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
