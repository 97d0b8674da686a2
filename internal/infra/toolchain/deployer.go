package toolchain

import (
	"context"
	"time"

	"github.com/natpasukit/jenkins/internal/domain"
)

// repoDeployer publishes an artifact file and its sidecars (checksums,
// descriptor metadata, optional signature) using the repository layout. The
// unique flag selects timestamped snapshot file versions; the legacy
// strategy keeps symbolic versions in place.
type repoDeployer struct {
	unique bool
	up     *uploader
	now    func() time.Time
}

func (d *repoDeployer) Deploy(ctx context.Context, file string, artifact domain.ToolArtifact, repo domain.RemoteRepository, _ domain.LocalRepository) error {
	coords := artifact.Coordinates()
	fileVersion := coords.Version
	if d.unique {
		fileVersion = timestampedVersion(coords.Version, d.now(), 1)
	}

	if err := d.up.putFile(ctx, repo.URL(), layoutPath(coords, artifact.Extension(), fileVersion), file); err != nil {
		return err
	}
	for _, m := range artifact.Metadata() {
		if err := d.up.putFile(ctx, repo.URL(), metadataPath(coords, fileVersion), m.File); err != nil {
			return err
		}
	}
	return nil
}
