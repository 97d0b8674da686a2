package domain

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DescriptorType is the packaging of a project descriptor artifact.
const DescriptorType = "pom"

// Artifact describes one physical build output. Values are immutable after
// construction; the file name resolves only against the owning build.
type Artifact struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version"`
	Type       string `json:"type"`
	Classifier string `json:"classifier,omitempty"`
	FileName   string `json:"file_name"`
}

func (a Artifact) Validate() error {
	switch {
	case strings.TrimSpace(a.GroupID) == "":
		return fmt.Errorf("%w: group id is required", ErrInvalidArtifact)
	case strings.TrimSpace(a.ArtifactID) == "":
		return fmt.Errorf("%w: artifact id is required", ErrInvalidArtifact)
	case strings.TrimSpace(a.Version) == "":
		return fmt.Errorf("%w: version is required", ErrInvalidArtifact)
	case strings.TrimSpace(a.Type) == "":
		return fmt.Errorf("%w: type is required", ErrInvalidArtifact)
	case strings.TrimSpace(a.FileName) == "":
		return fmt.Errorf("%w: file name is required", ErrInvalidArtifact)
	}
	return nil
}

// IsDescriptor reports whether the artifact is a project descriptor.
func (a Artifact) IsDescriptor() bool {
	return a.Type == DescriptorType
}

// GAV returns the canonical coordinate string,
// group:artifact:version:type[:classifier].
func (a Artifact) GAV() string {
	s := a.GroupID + ":" + a.ArtifactID + ":" + a.Version + ":" + a.Type
	if a.Classifier != "" {
		s += ":" + a.Classifier
	}
	return s
}

// CoordinatesEqual reports whether both artifacts name the same coordinate
// tuple. File names are not part of the comparison.
func (a Artifact) CoordinatesEqual(other Artifact) bool {
	return a.GroupID == other.GroupID &&
		a.ArtifactID == other.ArtifactID &&
		a.Version == other.Version &&
		a.Type == other.Type &&
		a.Classifier == other.Classifier
}

// File resolves the artifact's physical path within the owning build. The
// path must exist; resolution failures propagate to the caller.
func (a Artifact) File(build *Build) (string, error) {
	if build == nil {
		return "", fmt.Errorf("%w: no owning build", ErrArtifactMissing)
	}
	path := build.ArtifactPath(a.FileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	return path, nil
}

// ToolArtifact constructs the toolchain-native artifact object, resolving
// the packaging's on-disk extension through the handler manager.
func (a Artifact) ToolArtifact(handlers HandlerManager, factory ArtifactFactory) ToolArtifact {
	return factory.Create(a, handlers.Extension(a.Type))
}

// RecordFingerprint asks the fingerprint subsystem to hash and persist the
// artifact's file, keyed by the owning build and file name.
func (a Artifact) RecordFingerprint(ctx context.Context, build *Build, fp Fingerprinter) error {
	file, err := a.File(build)
	if err != nil {
		return err
	}
	return fp.Record(ctx, build, a.FileName, file)
}
