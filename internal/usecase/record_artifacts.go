package usecase

import (
	"context"
	"fmt"

	"github.com/natpasukit/jenkins/internal/domain"
)

type RecordArtifactsRequest struct {
	Project          string
	Number           int64
	ToolchainVersion string
	Descriptor       domain.Artifact
	Main             *domain.Artifact
	Attached         []domain.Artifact
}

type RecordArtifactsResponse struct {
	RecordID      string
	Record        *domain.ArtifactRecord
	Fingerprinted int
}

// RecordArtifacts creates the one artifact record a finished build gets and
// fingerprints its files.
type RecordArtifacts struct {
	Records       RecordRepository
	Fingerprinter domain.Fingerprinter
	ArtifactsRoot string

	// DefaultToolchainVersion fills requests that do not name the
	// toolchain that produced the build.
	DefaultToolchainVersion string
}

func (uc *RecordArtifacts) Execute(ctx context.Context, req RecordArtifactsRequest) (*RecordArtifactsResponse, error) {
	if req.Project == "" || req.Number <= 0 {
		return nil, fmt.Errorf("%w: project and build number are required", domain.ErrInvalidRecord)
	}
	version := req.ToolchainVersion
	if version == "" {
		version = uc.DefaultToolchainVersion
	}

	build := domain.NewBuild(uc.ArtifactsRoot, req.Project, req.Number, version)
	rec, err := domain.NewArtifactRecord(build, req.Descriptor, req.Main, req.Attached)
	if err != nil {
		return nil, err
	}

	id, err := uc.Records.Save(ctx, rec)
	if err != nil {
		return nil, err
	}

	fingerprinted := 0
	if uc.Fingerprinter != nil {
		if err := rec.RecordFingerprints(ctx, uc.Fingerprinter); err != nil {
			return nil, fmt.Errorf("record %s saved, fingerprinting failed: %w", id, err)
		}
		fingerprinted = 1 + len(rec.Attached())
	}

	return &RecordArtifactsResponse{
		RecordID:      id,
		Record:        rec,
		Fingerprinted: fingerprinted,
	}, nil
}
