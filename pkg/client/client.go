// Package client is a Go client for the artifactd HTTP API. Build engines
// use it to record the artifacts a build produced and to trigger
// server-side redeploys and installs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/natpasukit/jenkins/pkg/report"
)

// Client calls a running artifactd instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = client
	}
}

// WithAPIKey sends the admin key with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.APIKey = key
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// RecordRequest is the payload for recording a build's artifacts.
type RecordRequest struct {
	ToolchainVersion string         `json:"toolchain_version,omitempty"`
	Descriptor       report.Entry   `json:"descriptor"`
	Main             *report.Entry  `json:"main,omitempty"`
	Attached         []report.Entry `json:"attached,omitempty"`
}

// Record is a stored artifact record as the server reports it.
type Record struct {
	RecordID         string         `json:"record_id,omitempty"`
	Project          string         `json:"project"`
	Number           int64          `json:"number"`
	ToolchainVersion string         `json:"toolchain_version"`
	DescriptorOnly   bool           `json:"descriptor_only"`
	URL              string         `json:"url"`
	Descriptor       report.Entry   `json:"descriptor"`
	Main             report.Entry   `json:"main"`
	Attached         []report.Entry `json:"attached"`
	Fingerprinted    int            `json:"fingerprinted,omitempty"`
}

// Repository selects the deployment target for a redeploy. Zero fields fall
// back to the server's configured repository.
type Repository struct {
	ID             string `json:"id,omitempty"`
	URL            string `json:"url,omitempty"`
	UniqueVersions *bool  `json:"unique_versions,omitempty"`
}

type redeployRequest struct {
	Repository *Repository `json:"repository,omitempty"`
}

// RedeployResult reports a completed server-side deploy.
type RedeployResult struct {
	Repository     string   `json:"repository"`
	UniqueVersions bool     `json:"unique_versions"`
	Lines          []string `json:"lines"`
}

// InstallResult lists the files an install wrote, relative to the local
// repository root.
type InstallResult struct {
	Installed []string `json:"installed"`
}

// Fingerprint is one recorded artifact digest.
type Fingerprint struct {
	Name       string `json:"name"`
	SHA256     string `json:"sha256"`
	MD5        string `json:"md5"`
	SizeBytes  int64  `json:"size_bytes"`
	RecordedAt string `json:"recorded_at"`
}

// FingerprintList holds the recorded digests for one build.
type FingerprintList struct {
	Project      string        `json:"project"`
	Number       int64         `json:"number"`
	Fingerprints []Fingerprint `json:"fingerprints"`
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("artifactd: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("artifactd: status %d: %s", e.StatusCode, e.Message)
}

// ErrorCode returns the server error code carried by err, or "" when err did
// not come from the API.
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func (c *Client) RecordArtifacts(ctx context.Context, project string, number int64, req RecordRequest) (*Record, error) {
	if err := validateBuild(project, number); err != nil {
		return nil, err
	}
	var out Record
	if err := c.do(ctx, http.MethodPost, buildPath(project, number, "artifacts"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRecord(ctx context.Context, project string, number int64) (*Record, error) {
	if err := validateBuild(project, number); err != nil {
		return nil, err
	}
	var out Record
	if err := c.do(ctx, http.MethodGet, buildPath(project, number, "artifacts"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Redeploy pushes the build's recorded artifacts to a remote repository. A
// nil repo deploys to the server's configured repository.
func (c *Client) Redeploy(ctx context.Context, project string, number int64, repo *Repository) (*RedeployResult, error) {
	if err := validateBuild(project, number); err != nil {
		return nil, err
	}
	var in any
	if repo != nil {
		in = redeployRequest{Repository: repo}
	}
	var out RedeployResult
	if err := c.do(ctx, http.MethodPost, buildPath(project, number, "artifacts:redeploy"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Install copies the build's recorded artifacts into the server's local
// repository.
func (c *Client) Install(ctx context.Context, project string, number int64) (*InstallResult, error) {
	if err := validateBuild(project, number); err != nil {
		return nil, err
	}
	var out InstallResult
	if err := c.do(ctx, http.MethodPost, buildPath(project, number, "artifacts:install"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListFingerprints(ctx context.Context, project string, number int64) (*FingerprintList, error) {
	if err := validateBuild(project, number); err != nil {
		return nil, err
	}
	var out FingerprintList
	if err := c.do(ctx, http.MethodGet, buildPath(project, number, "fingerprints"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c == nil {
		return fmt.Errorf("artifacts client is nil")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("artifactd base URL is required")
	}
	endpoint := c.BaseURL + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-Admin-Key", c.APIKey)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Code != "" {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}

func buildPath(project string, number int64, resource string) string {
	return fmt.Sprintf("/v1/projects/%s/builds/%d/%s", url.PathEscape(project), number, resource)
}

func validateBuild(project string, number int64) error {
	if strings.TrimSpace(project) == "" {
		return fmt.Errorf("project is required")
	}
	if number <= 0 {
		return fmt.Errorf("build number must be positive")
	}
	return nil
}
