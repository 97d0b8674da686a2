package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Build identifies one build execution and where its archived artifacts
// live on disk. Records keep it as a back-reference only; the build's
// lifecycle belongs to the CI server.
type Build struct {
	Project          string `json:"project"`
	Number           int64  `json:"number"`
	ArtifactsDir     string `json:"-"`
	ToolchainVersion string `json:"toolchain_version"`
}

// NewBuild places the build's artifact directory under root at
// project/number.
func NewBuild(root, project string, number int64, toolchainVersion string) *Build {
	return &Build{
		Project:          project,
		Number:           number,
		ArtifactsDir:     filepath.Join(root, project, strconv.FormatInt(number, 10)),
		ToolchainVersion: toolchainVersion,
	}
}

// ArtifactPath resolves a file name against the build's artifact directory.
// Artifacts never carry absolute paths of their own.
func (b *Build) ArtifactPath(name string) string {
	return filepath.Join(b.ArtifactsDir, name)
}

// URL returns the build's report path fragment.
func (b *Build) URL() string {
	return fmt.Sprintf("jobs/%s/builds/%d/", b.Project, b.Number)
}
