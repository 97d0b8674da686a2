package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/natpasukit/jenkins/internal/domain"
)

type fakeRecordRepo struct {
	rec     *domain.ArtifactRecord
	findErr error
	saveErr error
	savedID string
	saved   []*domain.ArtifactRecord
}

func (r *fakeRecordRepo) Save(_ context.Context, rec *domain.ArtifactRecord) (string, error) {
	if r.saveErr != nil {
		return "", r.saveErr
	}
	r.saved = append(r.saved, rec)
	return r.savedID, nil
}

func (r *fakeRecordRepo) FindByBuild(_ context.Context, _ string, _ int64) (*domain.ArtifactRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.rec, nil
}

type fakeGate struct {
	result domain.PolicyResult
	err    error
	inputs []domain.DeployPolicyInput
}

func (g *fakeGate) Evaluate(_ context.Context, input domain.DeployPolicyInput) (domain.PolicyResult, error) {
	g.inputs = append(g.inputs, input)
	if g.err != nil {
		return domain.PolicyResult{}, g.err
	}
	return g.result, nil
}

type fakeFingerprinter struct {
	names []string
	err   error
}

func (f *fakeFingerprinter) Record(_ context.Context, _ *domain.Build, name, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.names = append(f.names, name)
	return nil
}

type fakeHandlers struct{}

func (fakeHandlers) Extension(artifactType string) string {
	if artifactType == "java-source" {
		return "jar"
	}
	return artifactType
}

type fakeToolArtifact struct {
	coords   domain.Artifact
	ext      string
	metadata []domain.ArtifactMetadata
}

func (a *fakeToolArtifact) Coordinates() domain.Artifact { return a.coords }
func (a *fakeToolArtifact) Extension() string            { return a.ext }
func (a *fakeToolArtifact) AttachMetadata(name, file string) {
	a.metadata = append(a.metadata, domain.ArtifactMetadata{Name: name, File: file})
}
func (a *fakeToolArtifact) Metadata() []domain.ArtifactMetadata { return a.metadata }

type fakeFactory struct{}

func (fakeFactory) Create(a domain.Artifact, ext string) domain.ToolArtifact {
	return &fakeToolArtifact{coords: a, ext: ext}
}

type toolCall struct {
	file     string
	artifact domain.ToolArtifact
}

type fakeDeployer struct {
	calls []toolCall
	err   error
}

func (d *fakeDeployer) Deploy(_ context.Context, file string, artifact domain.ToolArtifact, _ domain.RemoteRepository, _ domain.LocalRepository) error {
	if d.err != nil {
		return d.err
	}
	d.calls = append(d.calls, toolCall{file: file, artifact: artifact})
	return nil
}

type fakeInstaller struct {
	calls []toolCall
	err   error
}

func (i *fakeInstaller) Install(_ context.Context, file string, artifact domain.ToolArtifact, _ domain.LocalRepository) error {
	if i.err != nil {
		return i.err
	}
	i.calls = append(i.calls, toolCall{file: file, artifact: artifact})
	return nil
}

type fakeLocalRepo struct{}

func (fakeLocalRepo) Root() string { return "local" }

type fakeToolchain struct {
	deployer   *fakeDeployer
	installer  *fakeInstaller
	strategies []string
}

func (t *fakeToolchain) HandlerManager() (domain.HandlerManager, error) {
	return fakeHandlers{}, nil
}

func (t *fakeToolchain) ArtifactFactory() (domain.ArtifactFactory, error) {
	return fakeFactory{}, nil
}

func (t *fakeToolchain) Deployer(strategy string) (domain.Deployer, error) {
	t.strategies = append(t.strategies, strategy)
	return t.deployer, nil
}

func (t *fakeToolchain) Installer() (domain.Installer, error) {
	return t.installer, nil
}

func (t *fakeToolchain) LocalRepository() (domain.LocalRepository, error) {
	return fakeLocalRepo{}, nil
}

type fakeRepoHandle struct {
	id     string
	url    string
	unique bool
}

func (r *fakeRepoHandle) ID() string                    { return r.id }
func (r *fakeRepoHandle) URL() string                   { return r.url }
func (r *fakeRepoHandle) UniqueVersions() bool          { return r.unique }
func (r *fakeRepoHandle) SetUniqueVersions(unique bool) { r.unique = unique }

type lineRecorder struct {
	lines []string
}

func (l *lineRecorder) Println(line string) { l.lines = append(l.lines, line) }

// storedRecord builds a record whose artifact files exist under a temp
// artifacts root, the shape FindByBuild hands back.
func storedRecord(t *testing.T, toolchainVersion string) *domain.ArtifactRecord {
	t.Helper()
	build := domain.NewBuild(t.TempDir(), "acme/app", 7, toolchainVersion)
	if err := os.MkdirAll(build.ArtifactsDir, 0o755); err != nil {
		t.Fatalf("mkdir artifacts: %v", err)
	}
	for _, name := range []string{"app-1.2.0.pom", "app-1.2.0.jar", "app-1.2.0-sources.jar"} {
		if err := os.WriteFile(filepath.Join(build.ArtifactsDir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	descriptor := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "pom", FileName: "app-1.2.0.pom"}
	main := domain.Artifact{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "jar", FileName: "app-1.2.0.jar"}
	attached := []domain.Artifact{
		{GroupID: "com.acme", ArtifactID: "app", Version: "1.2.0", Type: "java-source", Classifier: "sources", FileName: "app-1.2.0-sources.jar"},
	}
	rec, err := domain.NewArtifactRecord(build, descriptor, &main, attached)
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	return rec
}
