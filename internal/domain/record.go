package domain

import (
	"context"
	"fmt"
)

// ArtifactRecord remembers which artifacts one build execution produced:
// the project descriptor, the main artifact, and any attached artifacts in
// production order. A record is built exactly once per build, at or after
// build completion, and is immutable afterward; it lives and dies with the
// owning build's data.
type ArtifactRecord struct {
	build      *Build
	descriptor Artifact
	main       Artifact
	attached   []Artifact
}

// NewArtifactRecord builds the record for one completed build. When the
// build produced no distinct main artifact, the descriptor takes its place,
// so every downstream path can assume a main artifact is present and
// descriptor-onlyness stays a coordinate comparison rather than a flag.
func NewArtifactRecord(build *Build, descriptor Artifact, main *Artifact, attached []Artifact) (*ArtifactRecord, error) {
	if build == nil {
		return nil, fmt.Errorf("%w: owning build is required", ErrInvalidRecord)
	}
	if err := descriptor.Validate(); err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	resolved := descriptor
	if main != nil {
		if err := main.Validate(); err != nil {
			return nil, fmt.Errorf("main artifact: %w", err)
		}
		resolved = *main
	}
	list := make([]Artifact, len(attached))
	copy(list, attached)
	for i, a := range list {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("attached artifact %d: %w", i, err)
		}
	}
	return &ArtifactRecord{
		build:      build,
		descriptor: descriptor,
		main:       resolved,
		attached:   list,
	}, nil
}

func (r *ArtifactRecord) Build() *Build {
	return r.build
}

func (r *ArtifactRecord) Descriptor() Artifact {
	return r.descriptor
}

func (r *ArtifactRecord) Main() Artifact {
	return r.main
}

func (r *ArtifactRecord) Attached() []Artifact {
	out := make([]Artifact, len(r.attached))
	copy(out, r.attached)
	return out
}

// DescriptorOnly reports whether the module produced only a descriptor: the
// main artifact carries the descriptor's own coordinates.
func (r *ArtifactRecord) DescriptorOnly() bool {
	return r.main.CoordinatesEqual(r.descriptor)
}

// URL returns the record's report fragment under the owning build.
func (r *ArtifactRecord) URL() string {
	return r.build.URL() + "artifacts/"
}

// Deploy publishes the record to repo: the main artifact first, then each
// attached artifact in production order, all through one deployment
// strategy resolved from the toolchain. One listener line precedes each
// artifact write.
//
// Deploy reconciles the repository's unique-versions setting with the
// toolchain generation recorded on the owning build and may mutate the
// caller-supplied repository handle while doing so. Failures surface
// unmodified on first occurrence; artifacts already deployed stay deployed.
func (r *ArtifactRecord) Deploy(ctx context.Context, tc Toolchain, repo RemoteRepository, listener BuildListener) error {
	handlers, err := tc.HandlerManager()
	if err != nil {
		return err
	}
	factory, err := tc.ArtifactFactory()
	if err != nil {
		return err
	}

	uniqueVersion := true
	if !repo.UniqueVersions() {
		if ModeForVersion(r.build.ToolchainVersion) == ModeModern {
			listener.Println("Non-unique versions are no longer supported by this toolchain; deploying with unique versions")
		} else {
			repo.SetUniqueVersions(false)
			uniqueVersion = false
		}
	} else {
		repo.SetUniqueVersions(true)
	}

	main := r.main.ToolArtifact(handlers, factory)
	if !r.DescriptorOnly() {
		descriptorFile, err := r.descriptor.File(r.build)
		if err != nil {
			return err
		}
		main.AttachMetadata(r.descriptor.FileName, descriptorFile)
	}

	strategy := StrategyDefault
	if !uniqueVersion {
		strategy = StrategyLegacy
	}
	deployer, err := tc.Deployer(strategy)
	if err != nil {
		return err
	}
	local, err := tc.LocalRepository()
	if err != nil {
		return err
	}

	mainFile, err := r.main.File(r.build)
	if err != nil {
		return err
	}
	listener.Println("Deploying the main artifact " + r.main.FileName)
	if err := deployer.Deploy(ctx, mainFile, main, repo, local); err != nil {
		return err
	}
	for _, a := range r.attached {
		file, err := a.File(r.build)
		if err != nil {
			return err
		}
		listener.Println("Deploying the attached artifact " + a.FileName)
		if err := deployer.Deploy(ctx, file, a.ToolArtifact(handlers, factory), repo, local); err != nil {
			return err
		}
	}
	return nil
}

// Install copies the record into the toolchain's local repository cache,
// main artifact first, then attached in order. The descriptor metadata rule
// matches Deploy. Installation is not atomic across the set.
func (r *ArtifactRecord) Install(ctx context.Context, tc Toolchain) error {
	handlers, err := tc.HandlerManager()
	if err != nil {
		return err
	}
	factory, err := tc.ArtifactFactory()
	if err != nil {
		return err
	}
	installer, err := tc.Installer()
	if err != nil {
		return err
	}
	local, err := tc.LocalRepository()
	if err != nil {
		return err
	}

	main := r.main.ToolArtifact(handlers, factory)
	if !r.DescriptorOnly() {
		descriptorFile, err := r.descriptor.File(r.build)
		if err != nil {
			return err
		}
		main.AttachMetadata(r.descriptor.FileName, descriptorFile)
	}
	mainFile, err := r.main.File(r.build)
	if err != nil {
		return err
	}
	if err := installer.Install(ctx, mainFile, main, local); err != nil {
		return err
	}
	for _, a := range r.attached {
		file, err := a.File(r.build)
		if err != nil {
			return err
		}
		if err := installer.Install(ctx, file, a.ToolArtifact(handlers, factory), local); err != nil {
			return err
		}
	}
	return nil
}

// RecordFingerprints hashes the main artifact and then each attached
// artifact in order. The first failure stops the sequence. A zero main
// artifact is tolerated for records assembled without the constructor.
func (r *ArtifactRecord) RecordFingerprints(ctx context.Context, fp Fingerprinter) error {
	if r.main != (Artifact{}) {
		if err := r.main.RecordFingerprint(ctx, r.build, fp); err != nil {
			return err
		}
	}
	for _, a := range r.attached {
		if err := a.RecordFingerprint(ctx, r.build, fp); err != nil {
			return err
		}
	}
	return nil
}
