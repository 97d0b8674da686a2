package usecase

import (
	"context"

	"github.com/natpasukit/jenkins/internal/domain"
)

type RecordRepository interface {
	Save(ctx context.Context, rec *domain.ArtifactRecord) (string, error)
	FindByBuild(ctx context.Context, project string, number int64) (*domain.ArtifactRecord, error)
}

type DeployGate interface {
	Evaluate(ctx context.Context, input domain.DeployPolicyInput) (domain.PolicyResult, error)
}
