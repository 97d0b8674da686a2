package toolchain

import "github.com/natpasukit/jenkins/internal/domain"

// defaultHandlers maps packaging types to their on-disk extensions. Unknown
// types keep the type itself as extension.
type defaultHandlers struct{}

var extensions = map[string]string{
	"pom":          "pom",
	"jar":          "jar",
	"war":          "war",
	"ear":          "ear",
	"rar":          "rar",
	"ejb":          "jar",
	"ejb-client":   "jar",
	"test-jar":     "jar",
	"maven-plugin": "jar",
	"java-source":  "jar",
	"javadoc":      "jar",
}

func (defaultHandlers) Extension(artifactType string) string {
	if ext, ok := extensions[artifactType]; ok {
		return ext
	}
	return artifactType
}

type artifactFactory struct{}

func (artifactFactory) Create(a domain.Artifact, extension string) domain.ToolArtifact {
	return &toolArtifact{coords: a, ext: extension}
}

// toolArtifact carries an artifact's coordinates, resolved extension, and
// the metadata files that publish alongside it.
type toolArtifact struct {
	coords   domain.Artifact
	ext      string
	metadata []domain.ArtifactMetadata
}

func (a *toolArtifact) Coordinates() domain.Artifact { return a.coords }
func (a *toolArtifact) Extension() string            { return a.ext }

func (a *toolArtifact) AttachMetadata(name, file string) {
	a.metadata = append(a.metadata, domain.ArtifactMetadata{Name: name, File: file})
}

func (a *toolArtifact) Metadata() []domain.ArtifactMetadata { return a.metadata }
