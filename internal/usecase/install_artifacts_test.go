package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/natpasukit/jenkins/internal/domain"
)

func TestInstallArtifacts(t *testing.T) {
	rec := storedRecord(t, "3.9.6")
	tc := &fakeToolchain{deployer: &fakeDeployer{}, installer: &fakeInstaller{}}

	uc := &InstallArtifacts{Records: &fakeRecordRepo{rec: rec}, Toolchain: tc}
	resp, err := uc.Execute(context.Background(), InstallArtifactsRequest{Project: "acme/app", Number: 7})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(tc.installer.calls) != 2 {
		t.Fatalf("installs = %d, want 2", len(tc.installer.calls))
	}
	if got := tc.installer.calls[0].artifact.Coordinates().FileName; got != "app-1.2.0.jar" {
		t.Fatalf("first install = %s", got)
	}
	want := []string{"app-1.2.0.jar", "app-1.2.0-sources.jar"}
	if len(resp.Installed) != len(want) {
		t.Fatalf("installed = %v", resp.Installed)
	}
	for i, name := range want {
		if resp.Installed[i] != name {
			t.Fatalf("installed %d = %s, want %s", i, resp.Installed[i], name)
		}
	}
}

func TestInstallArtifactsRecordMissing(t *testing.T) {
	uc := &InstallArtifacts{
		Records:   &fakeRecordRepo{findErr: domain.ErrRecordNotFound},
		Toolchain: &fakeToolchain{installer: &fakeInstaller{}},
	}
	_, err := uc.Execute(context.Background(), InstallArtifactsRequest{Project: "acme/app", Number: 404})
	if err != domain.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound unchanged, got %v", err)
	}
}

func TestInstallArtifactsInstallerError(t *testing.T) {
	boom := errors.New("boom")
	uc := &InstallArtifacts{
		Records:   &fakeRecordRepo{rec: storedRecord(t, "3.9.6")},
		Toolchain: &fakeToolchain{installer: &fakeInstaller{err: boom}},
	}
	_, err := uc.Execute(context.Background(), InstallArtifactsRequest{Project: "acme/app", Number: 7})
	if err != boom {
		t.Fatalf("expected the installer error unchanged, got %v", err)
	}
}
