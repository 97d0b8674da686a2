package toolchain

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/natpasukit/jenkins/internal/domain"
)

const snapshotSuffix = "-SNAPSHOT"

// layoutPath returns the repository-relative path of an artifact file:
// group dirs, artifact id, symbolic version, then
// artifact-fileVersion[-classifier].ext.
func layoutPath(a domain.Artifact, ext, fileVersion string) string {
	name := a.ArtifactID + "-" + fileVersion
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	name += "." + ext
	return path.Join(groupPath(a.GroupID), a.ArtifactID, a.Version, name)
}

// metadataPath returns the repository-relative path of the descriptor that
// publishes alongside an artifact.
func metadataPath(a domain.Artifact, fileVersion string) string {
	name := a.ArtifactID + "-" + fileVersion + ".pom"
	return path.Join(groupPath(a.GroupID), a.ArtifactID, a.Version, name)
}

func groupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}

// timestampedVersion replaces a snapshot qualifier with a UTC timestamp and
// deploy counter so every unique deployment gets its own file version.
// Release versions pass through unchanged.
func timestampedVersion(version string, now time.Time, deployNo int) string {
	if !strings.HasSuffix(version, snapshotSuffix) {
		return version
	}
	base := strings.TrimSuffix(version, snapshotSuffix)
	return fmt.Sprintf("%s-%s-%d", base, now.UTC().Format("20060102.150405"), deployNo)
}
