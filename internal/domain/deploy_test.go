package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func deployableRecord(t *testing.T, toolchainVersion string, withMain bool, attachedFiles ...string) (*ArtifactRecord, *Build) {
	t.Helper()
	files := []string{"app-1.2.0.pom"}
	if withMain {
		files = append(files, "app-1.2.0.jar")
	}
	files = append(files, attachedFiles...)
	build := testBuild(t, toolchainVersion, files...)

	var main *Artifact
	if withMain {
		m := jarArtifact()
		main = &m
	}
	classifiers := []string{"sources", "javadoc", "tests"}
	list := make([]Artifact, 0, len(attachedFiles))
	for i, name := range attachedFiles {
		list = append(list, attached(classifiers[i%len(classifiers)], name))
	}
	rec, err := NewArtifactRecord(build, pomArtifact(), main, list)
	if err != nil {
		t.Fatalf("NewArtifactRecord: %v", err)
	}
	return rec, build
}

func TestDeployUniqueRepositoryForcesUniqueAndDefaultStrategy(t *testing.T) {
	for _, version := range []string{"2.2.1", "3.9.6"} {
		rec, _ := deployableRecord(t, version, true)
		tc := newFakeToolchain()
		repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

		if err := rec.Deploy(context.Background(), tc, repo, &lineListener{}); err != nil {
			t.Fatalf("Deploy (%s): %v", version, err)
		}
		if !repo.unique {
			t.Fatalf("repository uniqueness flipped off under %s", version)
		}
		if len(repo.setCalls) != 1 || !repo.setCalls[0] {
			t.Fatalf("expected one force-set to true, got %v", repo.setCalls)
		}
		if len(tc.strategies) != 1 || tc.strategies[0] != StrategyDefault {
			t.Fatalf("strategies = %v, want [default]", tc.strategies)
		}
	}
}

func TestDeployNonUniqueLegacyForcesNonUniqueAndLegacyStrategy(t *testing.T) {
	rec, _ := deployableRecord(t, "2.2.1", true)
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: false}
	listener := &lineListener{}

	if err := rec.Deploy(context.Background(), tc, repo, listener); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if repo.unique {
		t.Fatal("repository should remain non-unique under the legacy mode")
	}
	if len(repo.setCalls) != 1 || repo.setCalls[0] {
		t.Fatalf("expected one force-set to false, got %v", repo.setCalls)
	}
	if len(tc.strategies) != 1 || tc.strategies[0] != StrategyLegacy {
		t.Fatalf("strategies = %v, want [legacy]", tc.strategies)
	}
}

func TestDeployNonUniqueModernLogsDiagnosticAndUsesDefault(t *testing.T) {
	rec, _ := deployableRecord(t, "3.9.6", true)
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: false}
	listener := &lineListener{}

	if err := rec.Deploy(context.Background(), tc, repo, listener); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if len(repo.setCalls) != 0 {
		t.Fatalf("repository setting must be left unmodified, got set calls %v", repo.setCalls)
	}
	if repo.unique {
		t.Fatal("repository configuration itself must stay non-unique")
	}
	if len(tc.strategies) != 1 || tc.strategies[0] != StrategyDefault {
		t.Fatalf("strategies = %v, want [default]", tc.strategies)
	}
	if len(listener.lines) == 0 || !strings.Contains(listener.lines[0], "unique versions") {
		t.Fatalf("expected a diagnostic line first, got %v", listener.lines)
	}
}

func TestDeployOrderMainThenAttached(t *testing.T) {
	rec, _ := deployableRecord(t, "2.2.1", true, "a.jar", "b.jar", "c.jar")
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}
	listener := &lineListener{}

	if err := rec.Deploy(context.Background(), tc, repo, listener); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	want := []string{"app-1.2.0.jar", "a.jar", "b.jar", "c.jar"}
	if len(tc.deployer.calls) != len(want) {
		t.Fatalf("deploy calls = %d, want %d", len(tc.deployer.calls), len(want))
	}
	for i, call := range tc.deployer.calls {
		if !strings.HasSuffix(call.file, want[i]) {
			t.Fatalf("deploy call %d = %s, want suffix %s", i, call.file, want[i])
		}
	}
	wantLines := []string{
		"Deploying the main artifact app-1.2.0.jar",
		"Deploying the attached artifact a.jar",
		"Deploying the attached artifact b.jar",
		"Deploying the attached artifact c.jar",
	}
	if len(listener.lines) != len(wantLines) {
		t.Fatalf("listener lines = %v", listener.lines)
	}
	for i := range wantLines {
		if listener.lines[i] != wantLines[i] {
			t.Fatalf("line %d = %q, want %q", i, listener.lines[i], wantLines[i])
		}
	}
}

func TestDeployAttachesDescriptorMetadataToMain(t *testing.T) {
	rec, build := deployableRecord(t, "2.2.1", true, "a.jar")
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

	if err := rec.Deploy(context.Background(), tc, repo, &lineListener{}); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	main := tc.deployer.calls[0].artifact
	metadata := main.Metadata()
	if len(metadata) != 1 {
		t.Fatalf("main metadata = %v, want the descriptor", metadata)
	}
	if metadata[0].Name != "app-1.2.0.pom" || metadata[0].File != build.ArtifactPath("app-1.2.0.pom") {
		t.Fatalf("unexpected descriptor metadata %+v", metadata[0])
	}
	if got := tc.deployer.calls[1].artifact.Metadata(); len(got) != 0 {
		t.Fatalf("attached artifact must carry no metadata, got %v", got)
	}
}

func TestDeployDescriptorOnlySkipsSelfMetadata(t *testing.T) {
	rec, _ := deployableRecord(t, "2.2.1", false)
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

	if err := rec.Deploy(context.Background(), tc, repo, &lineListener{}); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	main := tc.deployer.calls[0].artifact
	if got := main.Coordinates(); !got.IsDescriptor() {
		t.Fatalf("descriptor-only record must deploy the descriptor, got %+v", got)
	}
	if got := main.Metadata(); len(got) != 0 {
		t.Fatalf("self-referential metadata must be skipped, got %v", got)
	}
}

func TestDeployFailureLeavesEarlierDeploysInPlace(t *testing.T) {
	rec, _ := deployableRecord(t, "2.2.1", true, "a.jar", "b.jar")
	tc := newFakeToolchain()
	boom := errors.New("repository rejected the write")
	tc.deployer.failAt = 3
	tc.deployer.err = boom
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

	err := rec.Deploy(context.Background(), tc, repo, &lineListener{})
	if err != boom {
		t.Fatalf("expected the deployer error unchanged, got %v", err)
	}
	if len(tc.deployer.calls) != 3 {
		t.Fatalf("deploy calls = %d, want 3 (main, first attached, failing second)", len(tc.deployer.calls))
	}
	if !strings.HasSuffix(tc.deployer.calls[1].file, "a.jar") {
		t.Fatalf("first attached artifact was not deployed before the failure: %v", tc.deployer.calls)
	}
}

func TestDeployLookupFailures(t *testing.T) {
	for _, missing := range []string{"handlers", "factory", "deployer", "local"} {
		rec, _ := deployableRecord(t, "2.2.1", true)
		tc := newFakeToolchain()
		tc.missing[missing] = true
		repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

		err := rec.Deploy(context.Background(), tc, repo, &lineListener{})
		if !errors.Is(err, ErrCapabilityUnavailable) {
			t.Fatalf("missing %s: expected ErrCapabilityUnavailable, got %v", missing, err)
		}
		if len(tc.deployer.calls) != 0 {
			t.Fatalf("missing %s: no artifact may be deployed, got %d calls", missing, len(tc.deployer.calls))
		}
	}
}

func TestDeployMissingArtifactFile(t *testing.T) {
	build := testBuild(t, "2.2.1", "app-1.2.0.pom")
	main := jarArtifact()
	rec, err := NewArtifactRecord(build, pomArtifact(), &main, nil)
	if err != nil {
		t.Fatalf("NewArtifactRecord: %v", err)
	}
	tc := newFakeToolchain()
	repo := &fakeRepo{id: "releases", url: "https://repo.example/releases", unique: true}

	if err := rec.Deploy(context.Background(), tc, repo, &lineListener{}); !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("expected ErrArtifactMissing, got %v", err)
	}
}
