package usecase

import (
	"context"

	"github.com/natpasukit/jenkins/internal/domain"
)

type InstallArtifactsRequest struct {
	Project string
	Number  int64
}

type InstallArtifactsResponse struct {
	Record    *domain.ArtifactRecord
	Installed []string
}

// InstallArtifacts copies a stored record into the toolchain's local
// repository cache.
type InstallArtifacts struct {
	Records   RecordRepository
	Toolchain domain.Toolchain
}

func (uc *InstallArtifacts) Execute(ctx context.Context, req InstallArtifactsRequest) (*InstallArtifactsResponse, error) {
	rec, err := uc.Records.FindByBuild(ctx, req.Project, req.Number)
	if err != nil {
		return nil, err
	}
	if err := rec.Install(ctx, uc.Toolchain); err != nil {
		return nil, err
	}

	installed := []string{rec.Main().FileName}
	for _, a := range rec.Attached() {
		installed = append(installed, a.FileName)
	}
	return &InstallArtifactsResponse{
		Record:    rec,
		Installed: installed,
	}, nil
}
