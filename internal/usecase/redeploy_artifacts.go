package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/natpasukit/jenkins/internal/domain"
)

type RedeployArtifactsRequest struct {
	Project string
	Number  int64

	// Repository is the caller-supplied handle for the target repository.
	// Deploy may flip its unique-versions setting; the response reports the
	// final value.
	Repository domain.RemoteRepository

	// Listener receives the deploy log lines. Optional.
	Listener domain.BuildListener
}

type RedeployArtifactsResponse struct {
	Record         *domain.ArtifactRecord
	UniqueVersions bool
}

// RedeployArtifacts republishes a stored record to a repository, guarded by
// the deploy policy gate when one is configured.
type RedeployArtifacts struct {
	Records   RecordRepository
	Toolchain domain.Toolchain
	Gate      DeployGate
}

func (uc *RedeployArtifacts) Execute(ctx context.Context, req RedeployArtifactsRequest) (*RedeployArtifactsResponse, error) {
	rec, err := uc.Records.FindByBuild(ctx, req.Project, req.Number)
	if err != nil {
		return nil, err
	}

	if uc.Gate != nil {
		result, err := uc.Gate.Evaluate(ctx, gateInput(req, rec))
		if err != nil {
			return nil, fmt.Errorf("deploy policy: %w", err)
		}
		if !result.Allow {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeployRejected, denySummary(result.Deny))
		}
	}

	listener := req.Listener
	if listener == nil {
		listener = noopListener{}
	}
	if err := rec.Deploy(ctx, uc.Toolchain, req.Repository, listener); err != nil {
		return nil, err
	}

	return &RedeployArtifactsResponse{
		Record:         rec,
		UniqueVersions: req.Repository.UniqueVersions(),
	}, nil
}

func gateInput(req RedeployArtifactsRequest, rec *domain.ArtifactRecord) domain.DeployPolicyInput {
	names := []string{rec.Main().FileName}
	for _, a := range rec.Attached() {
		names = append(names, a.FileName)
	}
	return domain.DeployPolicyInput{
		Project:        req.Project,
		Number:         req.Number,
		RepositoryID:   req.Repository.ID(),
		RepositoryURL:  req.Repository.URL(),
		UniqueVersions: req.Repository.UniqueVersions(),
		Artifacts:      names,
	}
}

func denySummary(deny []domain.PolicyDeny) string {
	if len(deny) == 0 {
		return "denied by policy"
	}
	codes := make([]string, 0, len(deny))
	for _, d := range deny {
		codes = append(codes, d.Code)
	}
	return strings.Join(codes, ", ")
}

type noopListener struct{}

func (noopListener) Println(string) {}
