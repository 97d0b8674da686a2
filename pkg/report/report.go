// Package report defines the artifact report file a build emits to describe
// the artifacts it produced: one project descriptor, an optional main
// artifact, and any attached artifacts in production order.
package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DescriptorType is the packaging required of the descriptor entry.
const DescriptorType = "pom"

var ErrInvalidReport = errors.New("invalid artifact report")

// Entry names one artifact by coordinates and the file it lives in,
// relative to the build's artifact directory.
type Entry struct {
	Group      string `yaml:"group" json:"group"`
	Artifact   string `yaml:"artifact" json:"artifact"`
	Version    string `yaml:"version" json:"version"`
	Type       string `yaml:"type" json:"type"`
	Classifier string `yaml:"classifier,omitempty" json:"classifier,omitempty"`
	File       string `yaml:"file" json:"file"`
}

// Report is the parsed artifact report. Attached order is the order in the
// file and is preserved through every downstream operation.
type Report struct {
	Descriptor Entry   `yaml:"descriptor" json:"descriptor"`
	Main       *Entry  `yaml:"main,omitempty" json:"main,omitempty"`
	Attached   []Entry `yaml:"attached,omitempty" json:"attached,omitempty"`
}

// Parse decodes a YAML report. A descriptor entry with no type defaults to
// the descriptor packaging.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	if r.Descriptor.Type == "" {
		r.Descriptor.Type = DescriptorType
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses a report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Parse(data)
}

func (r *Report) Validate() error {
	if err := r.Descriptor.validate("descriptor"); err != nil {
		return err
	}
	if r.Descriptor.Type != DescriptorType {
		return fmt.Errorf("%w: descriptor type must be %s", ErrInvalidReport, DescriptorType)
	}
	if r.Main != nil {
		if err := r.Main.validate("main"); err != nil {
			return err
		}
	}
	for i, e := range r.Attached {
		if err := e.validate(fmt.Sprintf("attached[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func (e Entry) validate(role string) error {
	switch {
	case strings.TrimSpace(e.Group) == "":
		return fmt.Errorf("%w: %s: group is required", ErrInvalidReport, role)
	case strings.TrimSpace(e.Artifact) == "":
		return fmt.Errorf("%w: %s: artifact is required", ErrInvalidReport, role)
	case strings.TrimSpace(e.Version) == "":
		return fmt.Errorf("%w: %s: version is required", ErrInvalidReport, role)
	case strings.TrimSpace(e.Type) == "":
		return fmt.Errorf("%w: %s: type is required", ErrInvalidReport, role)
	case strings.TrimSpace(e.File) == "":
		return fmt.Errorf("%w: %s: file is required", ErrInvalidReport, role)
	}
	return nil
}
