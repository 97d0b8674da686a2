package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/natpasukit/jenkins/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "records.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&RecordModel{}, &FingerprintModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func testRecord(t *testing.T) *domain.ArtifactRecord {
	t.Helper()
	build := domain.NewBuild("builds", "acme/app", 7, "3.9.6")
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

func TestRecordRepositorySaveAndFind(t *testing.T) {
	repo := NewRecordRepository(testDB(t), "builds")

	id, err := repo.Save(context.Background(), testRecord(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a record id")
	}

	loaded, err := repo.FindByBuild(context.Background(), "acme/app", 7)
	if err != nil {
		t.Fatalf("FindByBuild: %v", err)
	}
	build := loaded.Build()
	if build.Project != "acme/app" || build.Number != 7 || build.ToolchainVersion != "3.9.6" {
		t.Fatalf("build = %+v", build)
	}
	if build.ArtifactsDir != filepath.Join("builds", "acme/app", "7") {
		t.Fatalf("artifacts dir = %s", build.ArtifactsDir)
	}
	if loaded.Main().FileName != "app-1.2.0.jar" {
		t.Fatalf("main = %+v", loaded.Main())
	}
	if loaded.Descriptor().Type != domain.DescriptorType {
		t.Fatalf("descriptor = %+v", loaded.Descriptor())
	}
	if loaded.DescriptorOnly() {
		t.Fatal("record must not be descriptor-only")
	}
	attached := loaded.Attached()
	if len(attached) != 1 || attached[0].Classifier != "sources" {
		t.Fatalf("attached = %+v", attached)
	}
}

func TestRecordRepositoryDescriptorOnlyRoundtrip(t *testing.T) {
	repo := NewRecordRepository(testDB(t), "builds")

	build := domain.NewBuild("builds", "acme/lib", 3, "2.2.1")
	descriptor := domain.Artifact{GroupID: "com.acme", ArtifactID: "lib", Version: "0.9.0", Type: "pom", FileName: "lib-0.9.0.pom"}
	rec, err := domain.NewArtifactRecord(build, descriptor, nil, nil)
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	if _, err := repo.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.FindByBuild(context.Background(), "acme/lib", 3)
	if err != nil {
		t.Fatalf("FindByBuild: %v", err)
	}
	if !loaded.DescriptorOnly() {
		t.Fatal("record must stay descriptor-only across the store")
	}
}

func TestRecordRepositoryDuplicateBuild(t *testing.T) {
	repo := NewRecordRepository(testDB(t), "builds")

	if _, err := repo.Save(context.Background(), testRecord(t)); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if _, err := repo.Save(context.Background(), testRecord(t)); !errors.Is(err, domain.ErrRecordExists) {
		t.Fatalf("expected ErrRecordExists, got %v", err)
	}
}

func TestRecordRepositoryNotFound(t *testing.T) {
	repo := NewRecordRepository(testDB(t), "builds")
	if _, err := repo.FindByBuild(context.Background(), "acme/app", 404); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecordRepositoryWithoutDB(t *testing.T) {
	repo := NewRecordRepository(nil, "builds")
	if _, err := repo.Save(context.Background(), testRecord(t)); !errors.Is(err, domain.ErrCapabilityUnavailable) {
		t.Fatalf("Save without db = %v", err)
	}
	if _, err := repo.FindByBuild(context.Background(), "acme/app", 7); !errors.Is(err, domain.ErrCapabilityUnavailable) {
		t.Fatalf("FindByBuild without db = %v", err)
	}
}
