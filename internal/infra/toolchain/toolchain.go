// Package toolchain is the service's embedded package-management toolchain:
// artifact handlers, repository layout, deployment strategies, and local
// installation.
package toolchain

import (
	"fmt"
	"net/http"
	"time"

	"github.com/natpasukit/jenkins/internal/domain"
)

type Options struct {
	LocalRepoPath string
	Username      string
	Password      string
	Signer        *Signer
	HTTPClient    *http.Client
	Now           func() time.Time

	// BytesWritten observes every repository entry written by a deploy,
	// including checksum and signature sidecars. Optional.
	BytesWritten func(int64)
}

// Toolchain resolves the capabilities record operations look up. Lookups
// fail with domain.ErrCapabilityUnavailable when the embedding was not
// configured for them.
type Toolchain struct {
	handlers  domain.HandlerManager
	factory   domain.ArtifactFactory
	deployers map[string]domain.Deployer
	installer domain.Installer
	local     domain.LocalRepository
}

func New(opts Options) *Toolchain {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	httpDo := http.DefaultClient.Do
	if opts.HTTPClient != nil {
		httpDo = opts.HTTPClient.Do
	}
	up := &uploader{
		httpDo:   httpDo,
		username: opts.Username,
		password: opts.Password,
		signer:   opts.Signer,
		observe:  opts.BytesWritten,
	}

	t := &Toolchain{
		handlers:  defaultHandlers{},
		factory:   artifactFactory{},
		installer: repoInstaller{},
		deployers: map[string]domain.Deployer{
			domain.StrategyDefault: &repoDeployer{unique: true, up: up, now: now},
			domain.StrategyLegacy:  &repoDeployer{unique: false, up: up, now: now},
		},
	}
	if opts.LocalRepoPath != "" {
		t.local = &localRepository{root: opts.LocalRepoPath}
	}
	return t
}

func (t *Toolchain) HandlerManager() (domain.HandlerManager, error) {
	if t.handlers == nil {
		return nil, fmt.Errorf("%w: handler manager", domain.ErrCapabilityUnavailable)
	}
	return t.handlers, nil
}

func (t *Toolchain) ArtifactFactory() (domain.ArtifactFactory, error) {
	if t.factory == nil {
		return nil, fmt.Errorf("%w: artifact factory", domain.ErrCapabilityUnavailable)
	}
	return t.factory, nil
}

func (t *Toolchain) Deployer(strategy string) (domain.Deployer, error) {
	d, ok := t.deployers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: deployer %q", domain.ErrCapabilityUnavailable, strategy)
	}
	return d, nil
}

func (t *Toolchain) Installer() (domain.Installer, error) {
	if t.installer == nil {
		return nil, fmt.Errorf("%w: installer", domain.ErrCapabilityUnavailable)
	}
	return t.installer, nil
}

func (t *Toolchain) LocalRepository() (domain.LocalRepository, error) {
	if t.local == nil {
		return nil, fmt.Errorf("%w: local repository", domain.ErrCapabilityUnavailable)
	}
	return t.local, nil
}

type localRepository struct {
	root string
}

func (r *localRepository) Root() string { return r.root }

// NewLocalRepository wraps a filesystem path as the local repository cache.
func NewLocalRepository(root string) domain.LocalRepository {
	return &localRepository{root: root}
}
