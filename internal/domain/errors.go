package domain

import "errors"

var (
	ErrInvalidArtifact       = errors.New("invalid artifact")
	ErrInvalidRecord         = errors.New("invalid artifact record")
	ErrArtifactMissing       = errors.New("artifact file missing")
	ErrCapabilityUnavailable = errors.New("toolchain capability unavailable")
	ErrRecordNotFound        = errors.New("artifact record not found")
	ErrRecordExists          = errors.New("artifact record already exists")
	ErrDeployRejected        = errors.New("deployment rejected by policy")
)
