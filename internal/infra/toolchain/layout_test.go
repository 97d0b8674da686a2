package toolchain

import (
	"testing"
	"time"

	"github.com/natpasukit/jenkins/internal/domain"
)

func TestLayoutPath(t *testing.T) {
	a := domain.Artifact{GroupID: "com.acme.tools", ArtifactID: "app", Version: "1.2.0"}
	if got := layoutPath(a, "jar", "1.2.0"); got != "com/acme/tools/app/1.2.0/app-1.2.0.jar" {
		t.Fatalf("layoutPath = %s", got)
	}

	a.Classifier = "sources"
	if got := layoutPath(a, "jar", "1.2.0"); got != "com/acme/tools/app/1.2.0/app-1.2.0-sources.jar" {
		t.Fatalf("classified layoutPath = %s", got)
	}
}

func TestLayoutPathKeepsSymbolicVersionDirectory(t *testing.T) {
	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2-SNAPSHOT"}
	got := layoutPath(a, "jar", "1.2-20260825.093000-1")
	want := "com/acme/app/1.2-SNAPSHOT/app-1.2-20260825.093000-1.jar"
	if got != want {
		t.Fatalf("layoutPath = %s, want %s", got, want)
	}
}

func TestMetadataPath(t *testing.T) {
	a := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0"}
	if got := metadataPath(a, "1.2.0"); got != "com/acme/app/1.2.0/app-1.2.0.pom" {
		t.Fatalf("metadataPath = %s", got)
	}
}

func TestTimestampedVersion(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)

	if got := timestampedVersion("1.2-SNAPSHOT", now, 1); got != "1.2-20260825.093000-1" {
		t.Fatalf("snapshot = %s", got)
	}
	if got := timestampedVersion("1.2.0", now, 1); got != "1.2.0" {
		t.Fatalf("release must pass through, got %s", got)
	}

	local := now.In(time.FixedZone("CEST", 2*3600))
	if got := timestampedVersion("1.2-SNAPSHOT", local, 3); got != "1.2-20260825.093000-3" {
		t.Fatalf("timestamps must format in UTC, got %s", got)
	}
}
