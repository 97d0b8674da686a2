package fingerprint

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/natpasukit/jenkins/internal/domain"
)

// Store persists computed fingerprints.
type Store interface {
	Save(ctx context.Context, fp domain.Fingerprint) error
}

// Service hashes artifact files and records the digests through a Store.
type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) Record(ctx context.Context, build *domain.Build, name, file string) error {
	sha256Hex, md5Hex, size, err := Digest(file)
	if err != nil {
		return err
	}
	fp := domain.Fingerprint{
		Project:    build.Project,
		Number:     build.Number,
		Name:       name,
		SHA256:     sha256Hex,
		MD5:        md5Hex,
		SizeBytes:  size,
		RecordedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, fp); err != nil {
		return fmt.Errorf("store fingerprint %s: %w", name, err)
	}
	s.log.Debug("fingerprint recorded",
		zap.String("project", build.Project),
		zap.Int64("build", build.Number),
		zap.String("name", name),
		zap.Int64("size", size))
	return nil
}

// Digest hashes a file with SHA-256 and MD5 in a single pass and reports its
// size in bytes.
func Digest(file string) (sha256Hex, md5Hex string, size int64, err error) {
	f, err := os.Open(file)
	if err != nil {
		return "", "", 0, fmt.Errorf("open %s: %w", filepath.Base(file), err)
	}
	defer f.Close()

	sh := sha256.New()
	mh := md5.New()
	n, err := io.Copy(io.MultiWriter(sh, mh), f)
	if err != nil {
		return "", "", 0, fmt.Errorf("hash %s: %w", filepath.Base(file), err)
	}
	return hex.EncodeToString(sh.Sum(nil)), hex.EncodeToString(mh.Sum(nil)), n, nil
}
