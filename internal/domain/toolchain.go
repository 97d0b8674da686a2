package domain

import "context"

// Deployment strategy keys resolved through Toolchain.Deployer.
const (
	// StrategyDefault deploys unique, timestamped snapshot versions.
	StrategyDefault = "default"
	// StrategyLegacy preserves non-unique versions for legacy toolchains.
	StrategyLegacy = "legacy"
)

// Toolchain is the embedded package-management toolchain. Every lookup fails
// with ErrCapabilityUnavailable when the embedding cannot provide the
// capability.
type Toolchain interface {
	HandlerManager() (HandlerManager, error)
	ArtifactFactory() (ArtifactFactory, error)
	Deployer(strategy string) (Deployer, error)
	Installer() (Installer, error)
	LocalRepository() (LocalRepository, error)
}

// HandlerManager maps packaging types to their on-disk file extensions.
type HandlerManager interface {
	Extension(artifactType string) string
}

// ArtifactFactory builds toolchain-native artifact objects.
type ArtifactFactory interface {
	Create(a Artifact, extension string) ToolArtifact
}

// ToolArtifact is the toolchain-native representation of one artifact. The
// metadata list carries files that publish alongside the artifact, such as
// its project descriptor.
type ToolArtifact interface {
	Coordinates() Artifact
	Extension() string
	AttachMetadata(name, file string)
	Metadata() []ArtifactMetadata
}

type ArtifactMetadata struct {
	Name string
	File string
}

// Deployer publishes one artifact file to a remote repository. Deployments
// across a record are not atomic; callers own any compensation.
type Deployer interface {
	Deploy(ctx context.Context, file string, artifact ToolArtifact, repo RemoteRepository, local LocalRepository) error
}

// Installer copies one artifact file into the local repository cache.
type Installer interface {
	Install(ctx context.Context, file string, artifact ToolArtifact, local LocalRepository) error
}

// RemoteRepository is a caller-supplied deployment target. Deploy is
// permitted to mutate the unique-versions setting while reconciling it with
// the toolchain generation; the handle is not purely an input.
type RemoteRepository interface {
	ID() string
	URL() string
	UniqueVersions() bool
	SetUniqueVersions(unique bool)
}

// LocalRepository is the toolchain's local artifact cache.
type LocalRepository interface {
	Root() string
}
