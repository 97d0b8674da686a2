package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natpasukit/jenkins/internal/domain"
	"github.com/natpasukit/jenkins/internal/infra/buildlog"
	"github.com/natpasukit/jenkins/internal/infra/toolchain"
	"github.com/natpasukit/jenkins/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type artifactPayload struct {
	Group      string `json:"group"`
	Artifact   string `json:"artifact"`
	Version    string `json:"version"`
	Type       string `json:"type"`
	Classifier string `json:"classifier,omitempty"`
	File       string `json:"file"`
}

type recordRequest struct {
	ToolchainVersion string            `json:"toolchain_version,omitempty"`
	Descriptor       artifactPayload   `json:"descriptor"`
	Main             *artifactPayload  `json:"main,omitempty"`
	Attached         []artifactPayload `json:"attached,omitempty"`
}

type recordResponse struct {
	RecordID         string            `json:"record_id,omitempty"`
	Project          string            `json:"project"`
	Number           int64             `json:"number"`
	ToolchainVersion string            `json:"toolchain_version"`
	DescriptorOnly   bool              `json:"descriptor_only"`
	URL              string            `json:"url"`
	Descriptor       artifactPayload   `json:"descriptor"`
	Main             artifactPayload   `json:"main"`
	Attached         []artifactPayload `json:"attached"`
	Fingerprinted    int               `json:"fingerprinted,omitempty"`
}

type repositoryPayload struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	UniqueVersions *bool  `json:"unique_versions,omitempty"`
}

type redeployRequest struct {
	Repository *repositoryPayload `json:"repository,omitempty"`
}

type redeployResponse struct {
	Repository     string   `json:"repository"`
	UniqueVersions bool     `json:"unique_versions"`
	Lines          []string `json:"lines"`
}

type installResponse struct {
	Installed []string `json:"installed"`
}

type fingerprintPayload struct {
	Name       string `json:"name"`
	SHA256     string `json:"sha256"`
	MD5        string `json:"md5"`
	SizeBytes  int64  `json:"size_bytes"`
	RecordedAt string `json:"recorded_at"`
}

type fingerprintsResponse struct {
	Project      string               `json:"project"`
	Number       int64                `json:"number"`
	Fingerprints []fingerprintPayload `json:"fingerprints"`
}

func (s *Server) handleRecordArtifacts(c *gin.Context) {
	if s.recordUC == nil {
		writeError(c, domain.ErrCapabilityUnavailable)
		return
	}
	project, number, ok := buildParams(c)
	if !ok {
		return
	}
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}

	ucReq := usecase.RecordArtifactsRequest{
		Project:          project,
		Number:           number,
		ToolchainVersion: req.ToolchainVersion,
		Descriptor:       req.Descriptor.toDomain(),
		Attached:         toDomainList(req.Attached),
	}
	if req.Main != nil {
		main := req.Main.toDomain()
		ucReq.Main = &main
	}

	resp, err := s.recordUC.Execute(c.Request.Context(), ucReq)
	if err != nil {
		writeError(c, err)
		return
	}
	if s.collector != nil {
		s.collector.RecordCreated(project)
		s.collector.FingerprintsRecorded(resp.Fingerprinted)
	}
	s.log.Info("artifact record created",
		zap.String("project", project),
		zap.Int64("build", number),
		zap.Int("attached", len(resp.Record.Attached())))

	out := buildRecordResponse(resp.Record)
	out.RecordID = resp.RecordID
	out.Fingerprinted = resp.Fingerprinted
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRecord(c *gin.Context) {
	if s.records == nil {
		writeError(c, domain.ErrCapabilityUnavailable)
		return
	}
	project, number, ok := buildParams(c)
	if !ok {
		return
	}
	rec, err := s.records.FindByBuild(c.Request.Context(), project, number)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildRecordResponse(rec))
}

func (s *Server) handleRedeploy(c *gin.Context, project string, number int64) {
	if s.redeployUC == nil {
		writeError(c, domain.ErrCapabilityUnavailable)
		return
	}
	if !s.requireAdmin(c) {
		return
	}
	if !s.enforceRateLimit(c, routeArtifactsRedeploy, project) {
		return
	}

	var req redeployRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
			return
		}
	}
	repo, ok := s.resolveRepository(c, req.Repository)
	if !ok {
		return
	}

	buffer := &buildlog.Buffer{}
	start := time.Now()
	resp, err := s.redeployUC.Execute(c.Request.Context(), usecase.RedeployArtifactsRequest{
		Project:    project,
		Number:     number,
		Repository: repo,
		Listener:   buildlog.Multi(buffer, buildlog.NewZap(s.log)),
	})
	if s.collector != nil {
		s.collector.DeployObserved(repo.ID(), time.Since(start).Seconds(), err)
	}
	if err != nil {
		writeDeployError(c, err)
		return
	}
	c.JSON(http.StatusOK, redeployResponse{
		Repository:     repo.ID(),
		UniqueVersions: resp.UniqueVersions,
		Lines:          buffer.Lines(),
	})
}

func (s *Server) handleInstall(c *gin.Context, project string, number int64) {
	if s.installUC == nil {
		writeError(c, domain.ErrCapabilityUnavailable)
		return
	}
	if !s.requireAdmin(c) {
		return
	}
	if !s.enforceRateLimit(c, routeArtifactsInstall, project) {
		return
	}

	resp, err := s.installUC.Execute(c.Request.Context(), usecase.InstallArtifactsRequest{
		Project: project,
		Number:  number,
	})
	if s.collector != nil {
		s.collector.InstallObserved(err)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, installResponse{Installed: resp.Installed})
}

func (s *Server) handleListFingerprints(c *gin.Context) {
	if s.fingerprints == nil {
		writeError(c, domain.ErrCapabilityUnavailable)
		return
	}
	project, number, ok := buildParams(c)
	if !ok {
		return
	}
	fps, err := s.fingerprints.ListByBuild(c.Request.Context(), project, number)
	if err != nil {
		writeError(c, err)
		return
	}
	out := fingerprintsResponse{
		Project:      project,
		Number:       number,
		Fingerprints: make([]fingerprintPayload, 0, len(fps)),
	}
	for _, fp := range fps {
		out.Fingerprints = append(out.Fingerprints, fingerprintPayload{
			Name:       fp.Name,
			SHA256:     fp.SHA256,
			MD5:        fp.MD5,
			SizeBytes:  fp.SizeBytes,
			RecordedAt: fp.RecordedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleNoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		if project, number, verb, ok := splitVerbPath(c.Request.URL.Path); ok {
			switch verb {
			case "redeploy":
				s.handleRedeploy(c, project, number)
				return
			case "install":
				s.handleInstall(c, project, number)
				return
			}
		}
	}
	writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "route not found")
}

// splitVerbPath matches /v1/projects/<project>/builds/<number>/artifacts:<verb>.
func splitVerbPath(path string) (project string, number int64, verb string, ok bool) {
	const prefix = "/v1/projects/"
	if !strings.HasPrefix(path, prefix) {
		return "", 0, "", false
	}
	parts := strings.Split(strings.TrimPrefix(path, prefix), "/")
	if len(parts) != 4 || parts[1] != "builds" {
		return "", 0, "", false
	}
	resource, verb, found := strings.Cut(parts[3], ":")
	if !found || resource != "artifacts" {
		return "", 0, "", false
	}
	number, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || number <= 0 {
		return "", 0, "", false
	}
	return parts[0], number, verb, true
}

func buildParams(c *gin.Context) (string, int64, bool) {
	project := c.Param("project")
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		writeErrorCode(c, http.StatusBadRequest, "VALIDATION_ERROR", "build number must be a positive integer")
		return "", 0, false
	}
	return project, number, true
}

// resolveRepository builds the deployment target from the request, falling
// back to the configured remote repository.
func (s *Server) resolveRepository(c *gin.Context, payload *repositoryPayload) (domain.RemoteRepository, bool) {
	id := s.cfg.RemoteRepoID
	url := s.cfg.RemoteRepoURL
	unique := s.cfg.RemoteRepoUniqueVersions
	if payload != nil {
		if payload.ID != "" {
			id = payload.ID
		}
		if payload.URL != "" {
			url = payload.URL
		}
		if payload.UniqueVersions != nil {
			unique = *payload.UniqueVersions
		}
	}
	if url == "" {
		writeErrorCode(c, http.StatusBadRequest, "VALIDATION_ERROR", "target repository url is required")
		return nil, false
	}
	if id == "" {
		id = url
	}
	return toolchain.NewRemoteRepo(id, url, unique), true
}

func buildRecordResponse(rec *domain.ArtifactRecord) recordResponse {
	build := rec.Build()
	attached := rec.Attached()
	out := recordResponse{
		Project:          build.Project,
		Number:           build.Number,
		ToolchainVersion: build.ToolchainVersion,
		DescriptorOnly:   rec.DescriptorOnly(),
		URL:              rec.URL(),
		Descriptor:       fromDomain(rec.Descriptor()),
		Main:             fromDomain(rec.Main()),
		Attached:         make([]artifactPayload, 0, len(attached)),
	}
	for _, a := range attached {
		out.Attached = append(out.Attached, fromDomain(a))
	}
	return out
}

func (p artifactPayload) toDomain() domain.Artifact {
	return domain.Artifact{
		GroupID:    p.Group,
		ArtifactID: p.Artifact,
		Version:    p.Version,
		Type:       p.Type,
		Classifier: p.Classifier,
		FileName:   p.File,
	}
}

func fromDomain(a domain.Artifact) artifactPayload {
	return artifactPayload{
		Group:      a.GroupID,
		Artifact:   a.ArtifactID,
		Version:    a.Version,
		Type:       a.Type,
		Classifier: a.Classifier,
		File:       a.FileName,
	}
}

func toDomainList(payloads []artifactPayload) []domain.Artifact {
	out := make([]domain.Artifact, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toDomain())
	}
	return out
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArtifact),
		errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, domain.ErrArtifactMissing):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrRecordNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrRecordExists):
		status, code = http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrDeployRejected):
		status, code = http.StatusForbidden, "POLICY_DENIED"
	case errors.Is(err, domain.ErrCapabilityUnavailable):
		status, code = http.StatusServiceUnavailable, "CAPABILITY_UNAVAILABLE"
	}
	writeErrorCode(c, status, code, err.Error())
}

// writeDeployError keeps the sentinel mappings and reports everything else
// as a failed write to the remote repository.
func writeDeployError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArtifact),
		errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, domain.ErrArtifactMissing),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrRecordExists),
		errors.Is(err, domain.ErrDeployRejected),
		errors.Is(err, domain.ErrCapabilityUnavailable):
		writeError(c, err)
	default:
		writeErrorCode(c, http.StatusBadGateway, "DEPLOY_FAILED", err.Error())
	}
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
