// Package http exposes the artifact record service over gin: recording a
// build's artifacts, fetching the record, redeploying it to a remote
// repository, installing it into the local repository cache, and listing
// fingerprints.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/natpasukit/jenkins/internal/config"
	"github.com/natpasukit/jenkins/internal/domain"
	"github.com/natpasukit/jenkins/internal/infra/db"
	"github.com/natpasukit/jenkins/internal/infra/deploypolicy"
	"github.com/natpasukit/jenkins/internal/infra/fingerprint"
	"github.com/natpasukit/jenkins/internal/infra/ratelimit"
	"github.com/natpasukit/jenkins/internal/infra/toolchain"
	"github.com/natpasukit/jenkins/internal/metrics"
	"github.com/natpasukit/jenkins/internal/usecase"
)

// FingerprintStore lists the digests recorded for one build.
type FingerprintStore interface {
	ListByBuild(ctx context.Context, project string, number int64) ([]domain.Fingerprint, error)
}

type Server struct {
	cfg   config.Config
	store *db.Store
	r     *gin.Engine
	log   *zap.Logger

	recordUC   *usecase.RecordArtifacts
	redeployUC *usecase.RedeployArtifacts
	installUC  *usecase.InstallArtifacts

	records      usecase.RecordRepository
	fingerprints FingerprintStore
	collector    *metrics.Collector

	adminAPIKey string

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool

	initErr error
}

// NewServer wires the service from configuration: the embedded toolchain,
// the record and fingerprint stores, the deploy policy gate, and rate
// limiting. Startup problems (an unreadable signing key, a broken policy
// bundle) are reported by Run.
func NewServer(cfg config.Config, store *db.Store, logger *zap.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, store: store, r: r, log: logger}
	s.initDeps()
	s.routes()
	return s
}

type ServerDeps struct {
	Record       *usecase.RecordArtifacts
	Redeploy     *usecase.RedeployArtifacts
	Install      *usecase.InstallArtifacts
	Records      usecase.RecordRepository
	Fingerprints FingerprintStore
	Collector    *metrics.Collector
	RateLimiter  domain.RateLimiter
	AdminAPIKey  string
	Logger       *zap.Logger
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:          cfg,
		r:            r,
		log:          deps.Logger,
		recordUC:     deps.Record,
		redeployUC:   deps.Redeploy,
		installUC:    deps.Install,
		records:      deps.Records,
		fingerprints: deps.Fingerprints,
		collector:    deps.Collector,
		adminAPIKey:  deps.AdminAPIKey,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.records == nil && s.recordUC != nil {
		s.records = s.recordUC.Records
	}
	s.initRateLimit(deps.RateLimiter)
	s.routes()
	return s
}

func (s *Server) initDeps() {
	s.adminAPIKey = s.cfg.AdminAPIKey

	s.collector = metrics.NewCollector(prometheus.DefaultRegisterer)

	var signer *toolchain.Signer
	if s.cfg.SigningKeyPath != "" {
		loaded, err := toolchain.NewSignerFromFile(s.cfg.SigningKeyPath, s.cfg.SigningKeyPassphrase)
		if err != nil {
			s.initErr = err
			return
		}
		signer = loaded
	}
	tc := toolchain.New(toolchain.Options{
		LocalRepoPath: s.cfg.LocalRepoPath,
		Username:      s.cfg.RemoteRepoUsername,
		Password:      s.cfg.RemoteRepoPassword,
		Signer:        signer,
		BytesWritten:  s.collector.DeployedBytes,
	})

	var gate usecase.DeployGate
	if s.cfg.PolicyBundlePath != "" {
		engine, err := deploypolicy.NewEngineFromBundlePath(context.Background(), s.cfg.PolicyBundlePath)
		if err != nil {
			s.initErr = err
			return
		}
		gate = engine
	}

	if s.store != nil && s.store.DB != nil {
		records := db.NewRecordRepository(s.store.DB, s.cfg.ArtifactsRoot)
		fingerprints := db.NewFingerprintRepository(s.store.DB)
		s.records = records
		s.fingerprints = fingerprints
		s.recordUC = &usecase.RecordArtifacts{
			Records:                 records,
			Fingerprinter:           fingerprint.NewService(fingerprints, s.log),
			ArtifactsRoot:           s.cfg.ArtifactsRoot,
			DefaultToolchainVersion: s.cfg.ToolchainVersion,
		}
		s.redeployUC = &usecase.RedeployArtifacts{
			Records:   records,
			Toolchain: tc,
			Gate:      gate,
		}
		s.installUC = &usecase.InstallArtifacts{
			Records:   records,
			Toolchain: tc,
		}
	}

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	if override != nil {
		s.rateLimiter = override
	}
	if s.rateLimiter == nil && s.cfg.RateLimitRequests > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.rateLimiter = limiter
			}
		}
		if s.rateLimiter == nil {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
				MaxKeys: s.cfg.RateLimitMaxKeys,
			})
		}
	}
	s.rateLimitRequests = s.cfg.RateLimitRequests
	s.rateLimitWindow = s.cfg.RateLimitWindow()
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		dbMode := "no-db"
		if s.store != nil && s.store.DB != nil {
			dbMode = "db"
			if err := s.store.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mode": dbMode})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
	})
	s.r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.r.Group("/v1")
	{
		v1.POST("/projects/:project/builds/:number/artifacts", s.handleRecordArtifacts)
		v1.GET("/projects/:project/builds/:number/artifacts", s.handleGetRecord)
		v1.GET("/projects/:project/builds/:number/fingerprints", s.handleListFingerprints)
	}

	// The redeploy/install verbs carry a colon gin cannot route, so they
	// dispatch through NoRoute.
	s.r.NoRoute(s.handleNoRoute)
}

// Handler exposes the router for embedding in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.r
}

// InitErr reports configuration problems found while wiring the server.
func (s *Server) InitErr() error {
	return s.initErr
}

func (s *Server) Run() error {
	if s.initErr != nil {
		return s.initErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}
