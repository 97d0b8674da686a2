package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natpasukit/jenkins/internal/domain"
)

// repoInstaller copies artifact files and their descriptor metadata into
// the local repository cache. Local installs keep symbolic versions; no
// timestamping applies.
type repoInstaller struct{}

func (repoInstaller) Install(_ context.Context, file string, artifact domain.ToolArtifact, local domain.LocalRepository) error {
	if local == nil || local.Root() == "" {
		return fmt.Errorf("%w: local repository", domain.ErrCapabilityUnavailable)
	}
	coords := artifact.Coordinates()
	dst := filepath.Join(local.Root(), filepath.FromSlash(layoutPath(coords, artifact.Extension(), coords.Version)))
	if err := copyFile(file, dst); err != nil {
		return err
	}
	for _, m := range artifact.Metadata() {
		mdst := filepath.Join(local.Root(), filepath.FromSlash(metadataPath(coords, coords.Version)))
		if err := copyFile(m.File, mdst); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("install %s: %w", filepath.Base(src), err)
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("install %s: %w", filepath.Base(src), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("install %s: %w", filepath.Base(src), err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("install %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
