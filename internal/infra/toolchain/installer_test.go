package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/natpasukit/jenkins/internal/domain"
)

func TestInstallCopiesIntoLocalLayout(t *testing.T) {
	root := t.TempDir()
	local := NewLocalRepository(root)

	jar := writeTemp(t, "app.jar", "installed bits")
	pom := writeTemp(t, "app.pom", "<project/>")

	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "jar", FileName: "app.jar"}
	tool := artifactFactory{}.Create(a, "jar")
	tool.AttachMetadata("app-1.2.0.pom", pom)

	if err := (repoInstaller{}).Install(context.Background(), jar, tool, local); err != nil {
		t.Fatalf("Install: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "com", "acme", "app", "1.2.0", "app-1.2.0.jar"))
	if err != nil {
		t.Fatalf("read installed artifact: %v", err)
	}
	if string(data) != "installed bits" {
		t.Fatalf("installed content = %q", data)
	}
	md, err := os.ReadFile(filepath.Join(root, "com", "acme", "app", "1.2.0", "app-1.2.0.pom"))
	if err != nil {
		t.Fatalf("read installed descriptor: %v", err)
	}
	if string(md) != "<project/>" {
		t.Fatalf("descriptor content = %q", md)
	}
}

func TestInstallClassifiedArtifact(t *testing.T) {
	root := t.TempDir()
	local := NewLocalRepository(root)

	src := writeTemp(t, "app-sources.jar", "source bits")
	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "java-source", Classifier: "sources", FileName: "app-sources.jar"}
	tool := artifactFactory{}.Create(a, "jar")

	if err := (repoInstaller{}).Install(context.Background(), src, tool, local); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "com", "acme", "app", "1.2.0", "app-1.2.0-sources.jar")); err != nil {
		t.Fatalf("installed classified artifact: %v", err)
	}
}

func TestInstallWithoutLocalRepository(t *testing.T) {
	jar := writeTemp(t, "app.jar", "bits")
	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "jar", FileName: "app.jar"}
	tool := artifactFactory{}.Create(a, "jar")

	err := (repoInstaller{}).Install(context.Background(), jar, tool, nil)
	if !errors.Is(err, domain.ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestInstallMissingSourceFile(t *testing.T) {
	local := NewLocalRepository(t.TempDir())
	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "jar", FileName: "app.jar"}
	tool := artifactFactory{}.Create(a, "jar")

	if err := (repoInstaller{}).Install(context.Background(), filepath.Join(t.TempDir(), "gone.jar"), tool, local); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
