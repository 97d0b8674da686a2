package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/natpasukit/jenkins/internal/domain"
	"github.com/natpasukit/jenkins/pkg/report"
)

func run(args []string) int {
	if len(args) < 2 {
		usage(args)
		return 1
	}

	switch args[1] {
	case "deploy":
		return runDeploy(args[2:])
	case "install":
		return runInstall(args[2:])
	case "fingerprint":
		return runFingerprint(args[2:])
	case "record":
		return runRecord(args[2:])
	case "redeploy":
		return runRedeploy(args[2:])
	}

	usage(args)
	return 1
}

func usage(args []string) {
	name := "artifactctl"
	if len(args) > 0 && args[0] != "" {
		name = filepath.Base(args[0])
	}
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  %s deploy --report <file> --repo-url <url> [--repo-id <id>] [--unique-versions=<bool>] [--build-dir <dir>] [--project <name>] [--build <n>] [--toolchain-version <v>] [--username <user>] [--password <pass>] [--signing-key <file>] [--local-repo <dir>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s install --report <file> [--local-repo <dir>] [--build-dir <dir>] [--project <name>] [--build <n>] [--toolchain-version <v>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s fingerprint --report <file> [--build-dir <dir>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s record --report <file> --server <url> --project <name> --build <n> [--toolchain-version <v>] [--api-key <key>] [--out <file>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s redeploy --server <url> --project <name> --build <n> [--repo-url <url>] [--repo-id <id>] [--unique-versions=<bool>] [--api-key <key>]\n", name)
}

// loadRecord reconstructs an artifact record from a report file for offline
// operations. The build directory defaults to the report's own directory.
func loadRecord(reportPath, buildDir, project string, number int64, toolchainVersion string) (*domain.ArtifactRecord, error) {
	rep, err := report.Load(reportPath)
	if err != nil {
		return nil, err
	}
	if buildDir == "" {
		buildDir = filepath.Dir(reportPath)
	}
	build := &domain.Build{
		Project:          project,
		Number:           number,
		ArtifactsDir:     buildDir,
		ToolchainVersion: toolchainVersion,
	}
	var main *domain.Artifact
	if rep.Main != nil {
		m := entryToArtifact(*rep.Main)
		main = &m
	}
	attached := make([]domain.Artifact, 0, len(rep.Attached))
	for _, e := range rep.Attached {
		attached = append(attached, entryToArtifact(e))
	}
	return domain.NewArtifactRecord(build, entryToArtifact(rep.Descriptor), main, attached)
}

func entryToArtifact(e report.Entry) domain.Artifact {
	return domain.Artifact{
		GroupID:    e.Group,
		ArtifactID: e.Artifact,
		Version:    e.Version,
		Type:       e.Type,
		Classifier: e.Classifier,
		FileName:   e.File,
	}
}

func writeOutput(path string, payload []byte) error {
	if path == "" {
		if _, err := os.Stdout.Write(payload); err != nil {
			return err
		}
		_, err := fmt.Fprintln(os.Stdout)
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
